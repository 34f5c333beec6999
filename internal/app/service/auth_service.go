package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/LICASKJS/backend-engeman/pkg/mailer"
	"github.com/LICASKJS/backend-engeman/pkg/util"
)

var (
	ErrEmailJaCadastrado    = errors.New("e-mail já cadastrado")
	ErrCredenciaisInvalidas = errors.New("e-mail ou senha incorretos")
	ErrTokenInvalido        = errors.New("código de recuperação inválido")
	ErrTokenExpirado        = errors.New("código de recuperação expirado")
)

// Validade do código de recuperação de senha
const validadeTokenRecuperacao = 30 * time.Minute

type AuthService interface {
	Cadastrar(nome, email, cnpj, senha, categoria string) (*model.Fornecedor, *util.TokenPair, error)
	Login(email, senha string) (*model.Fornecedor, *util.TokenPair, error)
	LoginAdmin(email, senha string) (*util.TokenPair, error)
	Logout(ctx context.Context, token string) error
	SolicitarRecuperacao(email string) error
	ValidarTokenRecuperacao(token string) (*model.Fornecedor, error)
	RedefinirSenha(token, novaSenha string) error
}

type authService struct {
	fornecedorRepo repository.FornecedorRepository
	mailer         mailer.Mailer
	jwtCfg         *config.JWTConfig
	adminCfg       *config.AdminConfig
	revogarToken   func(ctx context.Context, token string, expiry time.Duration) error
}

func NewAuthService(
	fornecedorRepo repository.FornecedorRepository,
	m mailer.Mailer,
	jwtCfg *config.JWTConfig,
	adminCfg *config.AdminConfig,
	revogarToken func(ctx context.Context, token string, expiry time.Duration) error,
) AuthService {
	return &authService{
		fornecedorRepo: fornecedorRepo,
		mailer:         m,
		jwtCfg:         jwtCfg,
		adminCfg:       adminCfg,
		revogarToken:   revogarToken,
	}
}

func (s *authService) Cadastrar(nome, email, cnpj, senha, categoria string) (*model.Fornecedor, *util.TokenPair, error) {
	logger.Info("Tentativa de cadastro de fornecedor", map[string]interface{}{
		"email": email,
	})

	existente, err := s.fornecedorRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Falha ao verificar e-mail existente", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existente != nil {
		logger.Warn("Cadastro recusado: e-mail já existe", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailJaCadastrado
	}

	senhaHash, err := util.HashPassword(senha)
	if err != nil {
		logger.Error("Falha ao gerar hash da senha", err)
		return nil, nil, err
	}

	fornecedor := &model.Fornecedor{
		Nome:      nome,
		Email:     email,
		CNPJ:      util.NormalizeCNPJ(cnpj),
		SenhaHash: senhaHash,
		Categoria: categoria,
	}
	if err := s.fornecedorRepo.Create(fornecedor); err != nil {
		return nil, nil, err
	}

	tokens, err := s.gerarTokens(fornecedor.ID, fornecedor.Email, "fornecedor")
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Fornecedor cadastrado", map[string]interface{}{
		"fornecedor_id": fornecedor.ID,
		"email":         email,
	})
	return fornecedor, tokens, nil
}

func (s *authService) Login(email, senha string) (*model.Fornecedor, *util.TokenPair, error) {
	logger.Info("Tentativa de login", map[string]interface{}{
		"email": email,
	})

	fornecedor, err := s.fornecedorRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login recusado: fornecedor não encontrado", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrCredenciaisInvalidas
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(fornecedor.SenhaHash, senha) {
		logger.Warn("Login recusado: senha incorreta", map[string]interface{}{
			"email":         email,
			"fornecedor_id": fornecedor.ID,
		})
		return nil, nil, ErrCredenciaisInvalidas
	}

	tokens, err := s.gerarTokens(fornecedor.ID, fornecedor.Email, "fornecedor")
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Login realizado", map[string]interface{}{
		"fornecedor_id": fornecedor.ID,
		"email":         email,
	})
	return fornecedor, tokens, nil
}

// LoginAdmin autentica contra a lista de e-mails autorizados e o hash
// de senha do painel, ambos vindos da configuração
func (s *authService) LoginAdmin(email, senha string) (*util.TokenPair, error) {
	autorizado := false
	for _, permitido := range s.adminCfg.AllowedEmails {
		if permitido == email {
			autorizado = true
			break
		}
	}
	if !autorizado || s.adminCfg.PasswordHash == "" {
		logger.Warn("Login administrativo recusado: e-mail não autorizado", map[string]interface{}{
			"email": email,
		})
		return nil, ErrCredenciaisInvalidas
	}

	if !util.VerifyPassword(s.adminCfg.PasswordHash, senha) {
		logger.Warn("Login administrativo recusado: senha incorreta", map[string]interface{}{
			"email": email,
		})
		return nil, ErrCredenciaisInvalidas
	}

	tokens, err := s.gerarTokens(0, email, "admin")
	if err != nil {
		return nil, err
	}

	logger.Info("Login administrativo realizado", map[string]interface{}{
		"email": email,
	})
	return tokens, nil
}

// Logout revoga o token de acesso até sua expiração natural
func (s *authService) Logout(ctx context.Context, token string) error {
	if s.revogarToken == nil {
		return nil
	}
	return s.revogarToken(ctx, token, s.jwtCfg.AccessTokenExpiry)
}

// SolicitarRecuperacao gera um código de 6 dígitos e o envia por
// e-mail. E-mail desconhecido não é erro: a resposta é idêntica para
// não revelar quais endereços estão cadastrados.
func (s *authService) SolicitarRecuperacao(email string) error {
	fornecedor, err := s.fornecedorRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("Recuperação solicitada para e-mail não cadastrado", map[string]interface{}{
				"email": email,
			})
			return nil
		}
		return err
	}

	token, err := util.GenerateRecoveryToken()
	if err != nil {
		logger.Error("Falha ao gerar código de recuperação", err)
		return err
	}

	expira := time.Now().Add(validadeTokenRecuperacao)
	fornecedor.TokenRecuperacao = &token
	fornecedor.TokenExpira = &expira
	if err := s.fornecedorRepo.Update(fornecedor); err != nil {
		return err
	}

	corpo := fmt.Sprintf(
		"<p>Olá, %s.</p><p>Seu código de recuperação de senha é: <strong>%s</strong></p><p>O código expira em 30 minutos.</p>",
		fornecedor.Nome, token,
	)
	if err := s.mailer.Send([]string{fornecedor.Email}, "Recuperação de senha - Portal de Fornecedores", corpo); err != nil {
		return err
	}

	logger.Info("Código de recuperação enviado", map[string]interface{}{
		"fornecedor_id": fornecedor.ID,
	})
	return nil
}

func (s *authService) ValidarTokenRecuperacao(token string) (*model.Fornecedor, error) {
	fornecedor, err := s.fornecedorRepo.FindByTokenRecuperacao(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalido
		}
		return nil, err
	}

	if fornecedor.TokenExpira == nil || time.Now().After(*fornecedor.TokenExpira) {
		return nil, ErrTokenExpirado
	}
	return fornecedor, nil
}

// RedefinirSenha troca a senha e invalida o código usado
func (s *authService) RedefinirSenha(token, novaSenha string) error {
	fornecedor, err := s.ValidarTokenRecuperacao(token)
	if err != nil {
		return err
	}

	senhaHash, err := util.HashPassword(novaSenha)
	if err != nil {
		logger.Error("Falha ao gerar hash da nova senha", err)
		return err
	}

	fornecedor.SenhaHash = senhaHash
	fornecedor.TokenRecuperacao = nil
	fornecedor.TokenExpira = nil
	if err := s.fornecedorRepo.Update(fornecedor); err != nil {
		return err
	}

	logger.Info("Senha redefinida", map[string]interface{}{
		"fornecedor_id": fornecedor.ID,
	})
	return nil
}

func (s *authService) gerarTokens(userID uint, email, role string) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		userID,
		email,
		role,
		s.jwtCfg.Secret,
		s.jwtCfg.AccessTokenExpiry,
		s.jwtCfg.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Falha ao gerar tokens", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return tokens, nil
}
