package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse é o corpo padrão de erro da API
type ErrorResponse struct {
	Error   string `json:"error"`   // código de erro (codes.go)
	Message string `json:"message"` // mensagem amigável em português
}

// RespondWithError envia a resposta de erro padronizada
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Atalhos para os casos mais frequentes

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "É necessário estar autenticado"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Você não tem permissão para acessar este recurso"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Ocorreu um erro no servidor. Tente novamente em instantes"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError agrupa erros por campo quando a validação acusa mais
// de um problema no mesmo payload
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Os dados informados não são válidos",
		Fields:  fields,
	})
}
