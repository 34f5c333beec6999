package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/db"
	"github.com/LICASKJS/backend-engeman/pkg/util"
)

// fakeMailer captura os envios sem tocar em SMTP
type fakeMailer struct {
	to      []string
	subject string
	body    string
	sent    int
}

func (f *fakeMailer) Send(to []string, subject, htmlBody string) error {
	f.to = to
	f.subject = subject
	f.body = htmlBody
	f.sent++
	return nil
}

func setupAuthTest(t *testing.T) (*gorm.DB, AuthService, *fakeMailer) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	m := &fakeMailer{}
	adminHash, err := util.HashPassword("senha-do-painel")
	require.NoError(t, err)

	service := NewAuthService(
		repository.NewFornecedorRepository(testDB),
		m,
		&config.JWTConfig{
			Secret:             "segredo-de-teste",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		&config.AdminConfig{
			AllowedEmails: []string{"qualidade@engeman.com.br"},
			PasswordHash:  adminHash,
		},
		nil,
	)
	return testDB, service, m
}

func TestAuthService_CadastrarELogin(t *testing.T) {
	testDB, service, _ := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	fornecedor, tokens, err := service.Cadastrar(
		"Aços Brasil Ltda",
		"contato@acosbrasil.com.br",
		"12.345.678/0001-90",
		"senha-forte",
		"Matéria-prima",
	)
	require.NoError(t, err)
	assert.NotZero(t, fornecedor.ID)
	assert.Equal(t, "12345678000190", fornecedor.CNPJ)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, "senha-forte", fornecedor.SenhaHash)

	// Cadastro repetido é recusado
	_, _, err = service.Cadastrar("Outra", "contato@acosbrasil.com.br", "98765432000110", "x", "Serviços")
	assert.ErrorIs(t, err, ErrEmailJaCadastrado)

	t.Run("login com credenciais corretas", func(t *testing.T) {
		logado, tokens, err := service.Login("contato@acosbrasil.com.br", "senha-forte")
		require.NoError(t, err)
		assert.Equal(t, fornecedor.ID, logado.ID)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("senha errada", func(t *testing.T) {
		_, _, err := service.Login("contato@acosbrasil.com.br", "senha-errada")
		assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
	})

	t.Run("email inexistente", func(t *testing.T) {
		_, _, err := service.Login("ninguem@exemplo.com", "senha")
		assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
	})
}

func TestAuthService_LoginAdmin(t *testing.T) {
	testDB, service, _ := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	t.Run("admin autorizado", func(t *testing.T) {
		tokens, err := service.LoginAdmin("qualidade@engeman.com.br", "senha-do-painel")
		require.NoError(t, err)

		claims, err := util.ValidateToken(tokens.AccessToken, "segredo-de-teste")
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("email fora da lista", func(t *testing.T) {
		_, err := service.LoginAdmin("intruso@exemplo.com", "senha-do-painel")
		assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
	})

	t.Run("senha errada", func(t *testing.T) {
		_, err := service.LoginAdmin("qualidade@engeman.com.br", "outra-senha")
		assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
	})
}

func TestAuthService_RecuperacaoDeSenha(t *testing.T) {
	testDB, service, m := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := service.Cadastrar(
		"Aços Brasil Ltda",
		"contato@acosbrasil.com.br",
		"12345678000190",
		"senha-antiga",
		"Matéria-prima",
	)
	require.NoError(t, err)

	require.NoError(t, service.SolicitarRecuperacao("contato@acosbrasil.com.br"))
	require.Equal(t, 1, m.sent)
	assert.Equal(t, []string{"contato@acosbrasil.com.br"}, m.to)

	// O código enviado fica gravado no fornecedor
	repo := repository.NewFornecedorRepository(testDB)
	fornecedor, err := repo.FindByEmail("contato@acosbrasil.com.br")
	require.NoError(t, err)
	require.NotNil(t, fornecedor.TokenRecuperacao)
	token := *fornecedor.TokenRecuperacao
	assert.Len(t, token, 6)
	assert.Contains(t, m.body, token)

	t.Run("valida o código", func(t *testing.T) {
		validado, err := service.ValidarTokenRecuperacao(token)
		require.NoError(t, err)
		assert.Equal(t, fornecedor.ID, validado.ID)
	})

	t.Run("código desconhecido", func(t *testing.T) {
		_, err := service.ValidarTokenRecuperacao("999999")
		assert.ErrorIs(t, err, ErrTokenInvalido)
	})

	t.Run("redefine a senha e invalida o código", func(t *testing.T) {
		require.NoError(t, service.RedefinirSenha(token, "senha-nova"))

		_, _, err := service.Login("contato@acosbrasil.com.br", "senha-nova")
		assert.NoError(t, err)

		_, _, err = service.Login("contato@acosbrasil.com.br", "senha-antiga")
		assert.ErrorIs(t, err, ErrCredenciaisInvalidas)

		_, err = service.ValidarTokenRecuperacao(token)
		assert.ErrorIs(t, err, ErrTokenInvalido)
	})

	t.Run("email não cadastrado não vaza informação", func(t *testing.T) {
		antes := m.sent
		assert.NoError(t, service.SolicitarRecuperacao("ninguem@exemplo.com"))
		assert.Equal(t, antes, m.sent)
	})

	t.Run("código expirado", func(t *testing.T) {
		require.NoError(t, service.SolicitarRecuperacao("contato@acosbrasil.com.br"))

		fornecedor, err := repo.FindByEmail("contato@acosbrasil.com.br")
		require.NoError(t, err)
		expirado := time.Now().Add(-time.Minute)
		fornecedor.TokenExpira = &expirado
		require.NoError(t, repo.Update(fornecedor))

		_, err = service.ValidarTokenRecuperacao(*fornecedor.TokenRecuperacao)
		assert.ErrorIs(t, err, ErrTokenExpirado)
	})
}
