package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/backend-engeman/internal/app/service"
	apperrors "github.com/LICASKJS/backend-engeman/internal/errors"
	"github.com/LICASKJS/backend-engeman/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type CadastroRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	CNPJ      string `json:"cnpj" binding:"required"`
	Senha     string `json:"senha" binding:"required,min=6"`
	Categoria string `json:"categoria"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type RecuperarSenhaRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ValidarTokenRequest struct {
	Token string `json:"token" binding:"required,len=6"`
}

type RedefinirSenhaRequest struct {
	Token     string `json:"token" binding:"required,len=6"`
	NovaSenha string `json:"nova_senha" binding:"required,min=6"`
}

// Cadastrar registra um novo fornecedor
// POST /api/v1/auth/cadastro
func (ctrl *AuthController) Cadastrar(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Requisição de cadastro inválida", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	fornecedor, tokens, err := ctrl.authService.Cadastrar(req.Nome, req.Email, req.CNPJ, req.Senha, req.Categoria)
	if err != nil {
		if errors.Is(err, service.ErrEmailJaCadastrado) {
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Este e-mail já está cadastrado")
			return
		}
		log.Error("Falha no cadastro", err, map[string]interface{}{
			"email": req.Email,
		})
		info := apperrors.ParseError(err, "cadastro de fornecedor")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Cadastro realizado com sucesso",
		"fornecedor": gin.H{
			"id":        fornecedor.ID,
			"nome":      fornecedor.Nome,
			"email":     fornecedor.Email,
			"cnpj":      fornecedor.CNPJ,
			"categoria": fornecedor.Categoria,
		},
		"tokens": tokens,
	})
}

// Login autentica um fornecedor
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	fornecedor, tokens, err := ctrl.authService.Login(req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, service.ErrCredenciaisInvalidas) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "E-mail ou senha incorretos")
			return
		}
		log.Error("Falha no login", err, map[string]interface{}{
			"email": req.Email,
		})
		info := apperrors.ParseError(err, "login de fornecedor")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"fornecedor": gin.H{
			"id":        fornecedor.ID,
			"nome":      fornecedor.Nome,
			"email":     fornecedor.Email,
			"categoria": fornecedor.Categoria,
		},
		"tokens": tokens,
	})
}

// Logout revoga o token de acesso da sessão atual
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		log.Error("Falha ao revogar token", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}

// RecuperarSenha inicia o fluxo de recuperação. A resposta é a mesma
// para e-mails cadastrados ou não.
// POST /api/v1/auth/recuperar-senha
func (ctrl *AuthController) RecuperarSenha(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecuperarSenhaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Informe um e-mail válido")
		return
	}

	if err := ctrl.authService.SolicitarRecuperacao(req.Email); err != nil {
		log.Error("Falha na solicitação de recuperação", err, map[string]interface{}{
			"email": req.Email,
		})
		info := apperrors.ParseError(err, "recuperação de senha por e-mail")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Se o e-mail estiver cadastrado, o código de recuperação foi enviado",
	})
}

// ValidarToken confere o código de recuperação antes da redefinição
// POST /api/v1/auth/validar-token
func (ctrl *AuthController) ValidarToken(c *gin.Context) {
	var req ValidarTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Informe o código de 6 dígitos")
		return
	}

	if _, err := ctrl.authService.ValidarTokenRecuperacao(req.Token); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpirado):
			apperrors.BadRequest(c, apperrors.AuthCodeExpired, "O código de recuperação expirou")
		case errors.Is(err, service.ErrTokenInvalido):
			apperrors.BadRequest(c, apperrors.AuthCodeInvalid, "Código de recuperação inválido")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Código válido"})
}

// RedefinirSenha troca a senha usando o código de recuperação
// POST /api/v1/auth/redefinir-senha
func (ctrl *AuthController) RedefinirSenha(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RedefinirSenhaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	if err := ctrl.authService.RedefinirSenha(req.Token, req.NovaSenha); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpirado):
			apperrors.BadRequest(c, apperrors.AuthCodeExpired, "O código de recuperação expirou")
		case errors.Is(err, service.ErrTokenInvalido):
			apperrors.BadRequest(c, apperrors.AuthCodeInvalid, "Código de recuperação inválido")
		default:
			log.Error("Falha na redefinição de senha", err)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha redefinida com sucesso"})
}
