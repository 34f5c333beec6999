package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/app/service"
	apperrors "github.com/LICASKJS/backend-engeman/internal/errors"
	"github.com/LICASKJS/backend-engeman/internal/middleware"
	"github.com/LICASKJS/backend-engeman/internal/websocket"
)

type AdminController struct {
	authService         service.AuthService
	qualificacaoService service.QualificacaoService
	decisaoService      service.DecisaoService
	hub                 *websocket.Hub
	upgrader            gorillaws.Upgrader
}

func NewAdminController(
	authService service.AuthService,
	qualificacaoService service.QualificacaoService,
	decisaoService service.DecisaoService,
	hub *websocket.Hub,
	allowedOrigins []string,
) *AdminController {
	return &AdminController{
		authService:         authService,
		qualificacaoService: qualificacaoService,
		decisaoService:      decisaoService,
		hub:                 hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

type AdminLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type DecisaoRequest struct {
	Status     model.StatusDecisao `json:"status" binding:"required"`
	Nota       *float64            `json:"nota"`
	Observacao string              `json:"observacao"`
}

type HomologacaoRequest struct {
	IQF         float64 `json:"iqf" binding:"required"`
	Flag        string  `json:"flag" binding:"required"`
	Observacoes string  `json:"observacoes"`
}

// Login autentica um administrador do painel
// POST /api/v1/admin/login
func (ctrl *AdminController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	tokens, err := ctrl.authService.LoginAdmin(req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, service.ErrCredenciaisInvalidas) {
			log.Warn("Login administrativo recusado", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "E-mail ou senha incorretos")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"tokens":  tokens,
	})
}

// Dashboard devolve os contadores do painel
// GET /api/v1/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dashboard, err := ctrl.qualificacaoService.MontarDashboard()
	if err != nil {
		log.Error("Falha ao montar dashboard", err)
		info := apperrors.ParseError(err, "dashboard administrativo")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ListarFornecedores devolve todos os fornecedores com status resolvido
// GET /api/v1/admin/fornecedores
func (ctrl *AdminController) ListarFornecedores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fornecedores, err := ctrl.qualificacaoService.ListarFornecedores()
	if err != nil {
		log.Error("Falha ao listar fornecedores", err)
		info := apperrors.ParseError(err, "listagem de fornecedores")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fornecedores": fornecedores})
}

// RegistroFornecedor devolve a visão completa de um fornecedor
// GET /api/v1/admin/fornecedores/:id/homologacao
func (ctrl *AdminController) RegistroFornecedor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fornecedorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de fornecedor inválido")
		return
	}

	registro, err := ctrl.qualificacaoService.MontarRegistro(uint(fornecedorID))
	if err != nil {
		if errors.Is(err, service.ErrFornecedorNaoEncontrado) {
			apperrors.NotFound(c, apperrors.FornecedorNotFound, "Fornecedor não encontrado")
			return
		}
		log.Error("Falha ao montar registro do fornecedor", err, map[string]interface{}{
			"fornecedor_id": fornecedorID,
		})
		info := apperrors.ParseError(err, "registro de homologação")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, registro)
}

// RegistrarDecisao grava a decisão manual de aprovação ou reprovação
// PUT /api/v1/admin/fornecedores/:id/decisao
func (ctrl *AdminController) RegistrarDecisao(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fornecedorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de fornecedor inválido")
		return
	}

	var req DecisaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	avaliadorEmail, _ := middleware.GetUserEmail(c)

	decisao, err := ctrl.decisaoService.RegistrarDecisao(
		uint(fornecedorID),
		req.Status,
		req.Nota,
		req.Observacao,
		avaliadorEmail,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStatusDecisaoInvalido):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "O status deve ser APROVADO ou REPROVADO")
		case errors.Is(err, service.ErrFornecedorNaoEncontrado):
			apperrors.NotFound(c, apperrors.FornecedorNotFound, "Fornecedor não encontrado")
		default:
			log.Error("Falha ao registrar decisão", err, map[string]interface{}{
				"fornecedor_id": fornecedorID,
			})
			info := apperrors.ParseError(err, "registro de decisão")
			apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Decisão registrada com sucesso",
		"decisao": decisao,
	})
}

// RegistrarHomologacao grava o registro interno de homologação
// PUT /api/v1/admin/fornecedores/:id/homologacao
func (ctrl *AdminController) RegistrarHomologacao(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fornecedorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador de fornecedor inválido")
		return
	}

	var req HomologacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	homologacao, err := ctrl.decisaoService.RegistrarHomologacao(uint(fornecedorID), req.IQF, req.Flag, req.Observacoes)
	if err != nil {
		if errors.Is(err, service.ErrFornecedorNaoEncontrado) {
			apperrors.NotFound(c, apperrors.FornecedorNotFound, "Fornecedor não encontrado")
			return
		}
		log.Error("Falha ao registrar homologação", err, map[string]interface{}{
			"fornecedor_id": fornecedorID,
		})
		info := apperrors.ParseError(err, "registro de homologação")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Registro de homologação atualizado",
		"homologacao": homologacao,
	})
}

// NotificacoesRecentes devolve os últimos eventos do portal (cadastros,
// documentos e decisões) para o painel
// GET /api/v1/admin/notificacoes
func (ctrl *AdminController) NotificacoesRecentes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	eventos, err := ctrl.qualificacaoService.NotificacoesRecentes(limit)
	if err != nil {
		log.Error("Falha ao montar feed de notificações", err)
		info := apperrors.ParseError(err, "notificações do painel")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notificacoes": eventos})
}

// Notificacoes abre a conexão WebSocket do painel com os eventos do
// portal em tempo real
// GET /ws/admin/notificacoes
func (ctrl *AdminController) Notificacoes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Falha no upgrade da conexão WebSocket", err)
		return
	}

	client := websocket.NewClient(ctrl.hub, conn, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
