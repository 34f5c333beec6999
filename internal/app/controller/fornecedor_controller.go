package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/backend-engeman/internal/app/service"
	apperrors "github.com/LICASKJS/backend-engeman/internal/errors"
	"github.com/LICASKJS/backend-engeman/internal/middleware"
)

type FornecedorController struct {
	qualificacaoService service.QualificacaoService
}

func NewFornecedorController(qualificacaoService service.QualificacaoService) *FornecedorController {
	return &FornecedorController{qualificacaoService: qualificacaoService}
}

// Homologacao devolve a visão consolidada de qualificação do fornecedor
// autenticado
// GET /api/v1/fornecedores/homologacao
func (ctrl *FornecedorController) Homologacao(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fornecedorID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	registro, err := ctrl.qualificacaoService.MontarRegistro(fornecedorID)
	if err != nil {
		if errors.Is(err, service.ErrFornecedorNaoEncontrado) {
			apperrors.NotFound(c, apperrors.FornecedorNotFound, "Fornecedor não encontrado")
			return
		}
		log.Error("Falha ao montar registro de qualificação", err, map[string]interface{}{
			"fornecedor_id": fornecedorID,
		})
		info := apperrors.ParseError(err, "consulta de homologação")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, registro)
}

// ConsultarHomologacao responde a consulta pública de situação na
// planilha de homologados, por nome e opcionalmente CNPJ
// GET /api/v1/homologacao
func (ctrl *FornecedorController) ConsultarHomologacao(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	nome := c.Query("fornecedor_nome")
	cnpj := c.Query("cnpj")
	if nome == "" && cnpj == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Informe o nome do fornecedor")
		return
	}

	consulta, err := ctrl.qualificacaoService.ConsultarHomologacao(nome, cnpj)
	if err != nil {
		log.Error("Falha na consulta pública de homologação", err, map[string]interface{}{
			"fornecedor_nome": nome,
		})
		info := apperrors.ParseError(err, "consulta de homologação")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, consulta)
}

// DocumentosNecessarios lista os documentos exigidos para a categoria
// informada na query (ou a do fornecedor, quando omitida pelo frontend)
// GET /api/v1/fornecedores/documentos-necessarios
func (ctrl *FornecedorController) DocumentosNecessarios(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categoria := c.Query("categoria")

	documentos, err := ctrl.qualificacaoService.DocumentosNecessarios(categoria)
	if err != nil {
		log.Error("Falha ao listar documentos necessários", err, map[string]interface{}{
			"categoria": categoria,
		})
		info := apperrors.ParseError(err, "documentos necessários")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categoria":  categoria,
		"documentos": documentos,
	})
}
