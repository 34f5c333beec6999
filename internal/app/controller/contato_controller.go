package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/backend-engeman/internal/app/service"
	apperrors "github.com/LICASKJS/backend-engeman/internal/errors"
	"github.com/LICASKJS/backend-engeman/internal/middleware"
)

type ContatoController struct {
	contatoService service.ContatoService
}

func NewContatoController(contatoService service.ContatoService) *ContatoController {
	return &ContatoController{contatoService: contatoService}
}

type ContatoRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Assunto  string `json:"assunto"`
	Mensagem string `json:"mensagem" binding:"required"`
}

// Enviar encaminha a mensagem do formulário público de contato
// POST /api/v1/contato
func (ctrl *ContatoController) Enviar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContatoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Preencha nome, e-mail e mensagem")
		return
	}

	if err := ctrl.contatoService.Enviar(req.Nome, req.Email, req.Assunto, req.Mensagem); err != nil {
		if errors.Is(err, service.ErrContatoInvalido) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Preencha nome, e-mail e mensagem")
			return
		}
		log.Error("Falha ao encaminhar contato", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalMailError, "Erro ao enviar a mensagem. Tente novamente em instantes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mensagem enviada com sucesso"})
}
