package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/LICASKJS/backend-engeman/pkg/mailer"
)

var ErrContatoInvalido = errors.New("dados de contato incompletos")

type ContatoService interface {
	Enviar(nome, email, assunto, mensagem string) error
}

type contatoService struct {
	mailer mailer.Mailer
	inbox  string
}

func NewContatoService(m mailer.Mailer, inbox string) ContatoService {
	return &contatoService{mailer: m, inbox: inbox}
}

// Enviar encaminha a mensagem do formulário de contato para a caixa da
// equipe de suprimentos
func (s *contatoService) Enviar(nome, email, assunto, mensagem string) error {
	if strings.TrimSpace(nome) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(mensagem) == "" {
		return ErrContatoInvalido
	}
	if strings.TrimSpace(assunto) == "" {
		assunto = "Contato pelo Portal de Fornecedores"
	}

	corpo := fmt.Sprintf(
		"<p><strong>Nome:</strong> %s</p><p><strong>E-mail:</strong> %s</p><p><strong>Mensagem:</strong></p><p>%s</p>",
		nome, email, mensagem,
	)
	if err := s.mailer.Send([]string{s.inbox}, assunto, corpo); err != nil {
		return err
	}

	logger.Info("Mensagem de contato encaminhada", map[string]interface{}{
		"email": email,
	})
	return nil
}
