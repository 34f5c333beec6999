package router

import (
	"github.com/gin-gonic/gin"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/internal/app/controller"
	"github.com/LICASKJS/backend-engeman/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	fornecedorController *controller.FornecedorController
	documentoController  *controller.DocumentoController
	adminController      *controller.AdminController
	contatoController    *controller.ContatoController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	fornecedorController *controller.FornecedorController,
	documentoController *controller.DocumentoController,
	adminController *controller.AdminController,
	contatoController *controller.ContatoController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		fornecedorController: fornecedorController,
		documentoController:  documentoController,
		adminController:      adminController,
		contatoController:    contatoController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Portal de Fornecedores API em execução",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/cadastro", r.authController.Cadastrar)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.POST("/recuperar-senha", r.authController.RecuperarSenha)
			auth.POST("/validar-token", r.authController.ValidarToken)
			auth.POST("/redefinir-senha", r.authController.RedefinirSenha)
		}

		v1.POST("/contato", r.contatoController.Enviar)
		v1.GET("/homologacao", r.fornecedorController.ConsultarHomologacao)

		fornecedores := v1.Group("/fornecedores")
		fornecedores.Use(r.authMiddleware.Authenticate())
		{
			fornecedores.GET("/homologacao", r.fornecedorController.Homologacao)
			fornecedores.GET("/documentos-necessarios", r.fornecedorController.DocumentosNecessarios)
		}

		documentos := v1.Group("/documentos")
		documentos.Use(r.authMiddleware.Authenticate())
		{
			documentos.POST("", r.documentoController.Upload)
			documentos.GET("", r.documentoController.Listar)
			documentos.GET("/:id", r.documentoController.Baixar)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/login", r.adminController.Login)

			protegido := admin.Group("")
			protegido.Use(
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(middleware.RoleAdmin),
			)
			{
				protegido.GET("/dashboard", r.adminController.Dashboard)
				protegido.GET("/notificacoes", r.adminController.NotificacoesRecentes)
				protegido.GET("/fornecedores", r.adminController.ListarFornecedores)
				protegido.GET("/fornecedores/:id/homologacao", r.adminController.RegistroFornecedor)
				protegido.PUT("/fornecedores/:id/homologacao", r.adminController.RegistrarHomologacao)
				protegido.PUT("/fornecedores/:id/decisao", r.adminController.RegistrarDecisao)
			}
		}
	}

	router.GET("/ws/admin/notificacoes",
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(middleware.RoleAdmin),
		r.adminController.Notificacoes,
	)

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
