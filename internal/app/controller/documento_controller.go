package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/backend-engeman/internal/app/service"
	apperrors "github.com/LICASKJS/backend-engeman/internal/errors"
	"github.com/LICASKJS/backend-engeman/internal/middleware"
)

type DocumentoController struct {
	documentoService service.DocumentoService
}

func NewDocumentoController(documentoService service.DocumentoService) *DocumentoController {
	return &DocumentoController{documentoService: documentoService}
}

// Upload recebe um documento via multipart e o registra para o
// fornecedor autenticado
// POST /api/v1/documentos
func (ctrl *DocumentoController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fornecedorID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Envie o arquivo no campo 'arquivo'")
		return
	}
	categoria := c.PostForm("categoria")

	f, err := fileHeader.Open()
	if err != nil {
		log.Error("Falha ao abrir arquivo enviado", err)
		apperrors.InternalError(c, "")
		return
	}
	defer f.Close()

	documento, err := ctrl.documentoService.Upload(
		c.Request.Context(),
		fornecedorID,
		fileHeader.Filename,
		categoria,
		f,
		fileHeader.Size,
	)
	if err != nil {
		if errors.Is(err, service.ErrArquivoInvalido) {
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "O arquivo não atende aos requisitos de envio")
			return
		}
		log.Error("Falha no upload de documento", err, map[string]interface{}{
			"fornecedor_id": fornecedorID,
			"filename":      fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Erro ao enviar o arquivo. Tente novamente em instantes")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Documento enviado com sucesso",
		"documento": documento,
	})
}

// Listar devolve os documentos do fornecedor autenticado
// GET /api/v1/documentos
func (ctrl *DocumentoController) Listar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fornecedorID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	documentos, err := ctrl.documentoService.Listar(fornecedorID)
	if err != nil {
		log.Error("Falha ao listar documentos", err, map[string]interface{}{
			"fornecedor_id": fornecedorID,
		})
		info := apperrors.ParseError(err, "listagem de documentos")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documentos": documentos})
}

// Baixar devolve o conteúdo de um documento do fornecedor autenticado.
// Administradores podem baixar documentos de qualquer fornecedor.
// GET /api/v1/documentos/:id
func (ctrl *DocumentoController) Baixar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	documentoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de documento inválido")
		return
	}

	fornecedorID, _ := middleware.GetUserID(c)
	if role, _ := middleware.GetUserRole(c); role == middleware.RoleAdmin {
		// Admin não é dono de documento: a checagem de posse é liberada
		fornecedorID = 0
	}

	rc, documento, err := ctrl.documentoService.Abrir(c.Request.Context(), fornecedorID, uint(documentoID))
	if err != nil {
		if errors.Is(err, service.ErrDocumentoNaoEncontrado) {
			apperrors.NotFound(c, apperrors.DocumentoNotFound, "Documento não encontrado")
			return
		}
		log.Error("Falha ao abrir documento", err, map[string]interface{}{
			"documento_id": documentoID,
		})
		apperrors.InternalError(c, "")
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", documento.NomeDocumento))
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.Error("Falha ao transmitir documento", err, map[string]interface{}{
			"documento_id": documentoID,
		})
	}
}
