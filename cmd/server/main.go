package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/internal/app/controller"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/app/service"
	"github.com/LICASKJS/backend-engeman/internal/db"
	"github.com/LICASKJS/backend-engeman/internal/middleware"
	"github.com/LICASKJS/backend-engeman/internal/planilha"
	"github.com/LICASKJS/backend-engeman/internal/router"
	"github.com/LICASKJS/backend-engeman/internal/scheduler"
	"github.com/LICASKJS/backend-engeman/internal/storage"
	"github.com/LICASKJS/backend-engeman/internal/websocket"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/LICASKJS/backend-engeman/pkg/mailer"
	"github.com/LICASKJS/backend-engeman/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Falha ao carregar configuração", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console",
		EnableColor: true,
	})

	logger.Info("Iniciando Portal de Fornecedores", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Falha ao inicializar o banco de dados", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Falha ao encerrar conexão com o banco", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Falha ao executar migrações", err)
	}

	// Redis é opcional: sem ele o logout não revoga tokens
	usarRedis := true
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis indisponível, revogação de tokens desativada", map[string]interface{}{
			"error": err.Error(),
		})
		usarRedis = false
	} else {
		defer redis.Close()
	}

	// Repositórios
	fornecedorRepo := repository.NewFornecedorRepository(db.GetDB())
	documentoRepo := repository.NewDocumentoRepository(db.GetDB())
	homologacaoRepo := repository.NewHomologacaoRepository(db.GetDB())
	decisaoRepo := repository.NewDecisaoRepository(db.GetDB())

	// Infraestrutura
	smtpMailer := mailer.New(&cfg.Mail)
	carregador := planilha.NewCarregador(service.NovoLocator(&cfg.Planilhas))

	var documentoStorage storage.DocumentoStorage
	if cfg.S3.Enabled {
		documentoStorage = storage.NewS3Storage(&cfg.S3)
		logger.Info("Armazenamento de documentos no S3", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
		})
	} else {
		documentoStorage = storage.NewLocalStorage(cfg.Upload.Dir)
		logger.Info("Armazenamento de documentos em disco", map[string]interface{}{
			"dir": cfg.Upload.Dir,
		})
	}

	hub := websocket.NewHub()
	go hub.Run()

	// Serviços
	authService := service.NewAuthService(
		fornecedorRepo,
		smtpMailer,
		&cfg.JWT,
		&cfg.Admin,
		revogacao(usarRedis),
	)
	qualificacaoService := service.NewQualificacaoService(
		fornecedorRepo,
		homologacaoRepo,
		documentoRepo,
		decisaoRepo,
		carregador,
	)
	documentoService := service.NewDocumentoService(
		documentoRepo,
		fornecedorRepo,
		documentoStorage,
		smtpMailer,
		hub,
		&cfg.Upload,
		cfg.Mail.ContatoInbox,
	)
	decisaoService := service.NewDecisaoService(
		decisaoRepo,
		homologacaoRepo,
		fornecedorRepo,
		smtpMailer,
		hub,
	)
	contatoService := service.NewContatoService(smtpMailer, cfg.Mail.ContatoInbox)

	// Controllers
	authController := controller.NewAuthController(authService)
	fornecedorController := controller.NewFornecedorController(qualificacaoService)
	documentoController := controller.NewDocumentoController(documentoService)
	adminController := controller.NewAdminController(
		authService,
		qualificacaoService,
		decisaoService,
		hub,
		cfg.CORS.AllowedOrigins,
	)
	contatoController := controller.NewContatoController(contatoService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, usarRedis)

	// Agendador de vencimentos
	vencimentoScheduler := scheduler.NewVencimentoScheduler(fornecedorRepo, carregador, smtpMailer, hub)
	if err := vencimentoScheduler.Start(); err != nil {
		logger.Error("Falha ao iniciar agendador de vencimentos", err)
	}
	defer vencimentoScheduler.Stop()

	r := router.NewRouter(
		authController,
		fornecedorController,
		documentoController,
		adminController,
		contatoController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Servidor iniciado", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Falha ao iniciar servidor", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")
}

// revogacao entrega a função de blacklist quando o Redis está ativo
func revogacao(usarRedis bool) func(ctx context.Context, token string, expiry time.Duration) error {
	if !usarRedis {
		return nil
	}
	return redis.BlacklistToken
}
