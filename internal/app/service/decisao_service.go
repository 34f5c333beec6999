package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/websocket"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/LICASKJS/backend-engeman/pkg/mailer"
)

var ErrStatusDecisaoInvalido = errors.New("status de decisão inválido")

type DecisaoService interface {
	RegistrarDecisao(fornecedorID uint, status model.StatusDecisao, nota *float64, observacao, avaliadorEmail string) (*model.DecisaoFornecedor, error)
	RegistrarHomologacao(fornecedorID uint, iqf float64, flag, observacoes string) (*model.Homologacao, error)
}

type decisaoService struct {
	decisaoRepo     repository.DecisaoRepository
	homologacaoRepo repository.HomologacaoRepository
	fornecedorRepo  repository.FornecedorRepository
	mailer          mailer.Mailer
	hub             *websocket.Hub
}

func NewDecisaoService(
	decisaoRepo repository.DecisaoRepository,
	homologacaoRepo repository.HomologacaoRepository,
	fornecedorRepo repository.FornecedorRepository,
	m mailer.Mailer,
	hub *websocket.Hub,
) DecisaoService {
	return &decisaoService{
		decisaoRepo:     decisaoRepo,
		homologacaoRepo: homologacaoRepo,
		fornecedorRepo:  fornecedorRepo,
		mailer:          m,
		hub:             hub,
	}
}

// RegistrarDecisao grava a decisão administrativa do fornecedor e avisa
// o fornecedor por e-mail. O envio é best-effort: a decisão vale mesmo
// quando o SMTP falha, e o carimbo de envio só é gravado em caso de
// sucesso.
func (s *decisaoService) RegistrarDecisao(fornecedorID uint, status model.StatusDecisao, nota *float64, observacao, avaliadorEmail string) (*model.DecisaoFornecedor, error) {
	if status != model.DecisaoAprovado && status != model.DecisaoReprovado {
		return nil, ErrStatusDecisaoInvalido
	}

	fornecedor, err := s.fornecedorRepo.FindByID(fornecedorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFornecedorNaoEncontrado
		}
		return nil, err
	}

	decisao := &model.DecisaoFornecedor{
		FornecedorID:   fornecedorID,
		Status:         status,
		NotaReferencia: nota,
		Observacao:     observacao,
		AvaliadorEmail: avaliadorEmail,
	}
	if err := s.decisaoRepo.Upsert(decisao); err != nil {
		return nil, err
	}

	if s.notificarFornecedor(fornecedor, decisao) {
		if err := s.decisaoRepo.MarcarEmailEnviado(decisao.ID); err == nil {
			logger.Debug("Carimbo de envio gravado", map[string]interface{}{
				"decisao_id": decisao.ID,
			})
		}
	}

	if s.hub != nil {
		s.hub.BroadcastEvento("decisao_registrada", map[string]interface{}{
			"fornecedor_id": fornecedorID,
			"fornecedor":    fornecedor.Nome,
			"status":        decisao.Status,
		})
	}

	logger.Info("Decisão registrada", map[string]interface{}{
		"fornecedor_id": fornecedorID,
		"status":        status,
		"avaliador":     avaliadorEmail,
	})
	return decisao, nil
}

// RegistrarHomologacao grava ou atualiza o registro interno de
// homologação usado como fonte quando as planilhas não têm o fornecedor
func (s *decisaoService) RegistrarHomologacao(fornecedorID uint, iqf float64, flag, observacoes string) (*model.Homologacao, error) {
	if _, err := s.fornecedorRepo.FindByID(fornecedorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFornecedorNaoEncontrado
		}
		return nil, err
	}

	homologacao := &model.Homologacao{
		IQF:          iqf,
		Homologacao:  flag,
		Observacoes:  observacoes,
		FornecedorID: fornecedorID,
	}
	if err := s.homologacaoRepo.Upsert(homologacao); err != nil {
		return nil, err
	}

	logger.Info("Registro interno de homologação atualizado", map[string]interface{}{
		"fornecedor_id": fornecedorID,
		"iqf":           iqf,
	})
	return homologacao, nil
}

func (s *decisaoService) notificarFornecedor(fornecedor *model.Fornecedor, decisao *model.DecisaoFornecedor) bool {
	if s.mailer == nil {
		return false
	}

	var assunto, corpo string
	if decisao.Status == model.DecisaoAprovado {
		assunto = "Homologação aprovada - Portal de Fornecedores"
		corpo = fmt.Sprintf(
			"<p>Olá, %s.</p><p>Sua empresa foi <strong>aprovada</strong> no processo de homologação.</p>",
			fornecedor.Nome,
		)
	} else {
		assunto = "Resultado da homologação - Portal de Fornecedores"
		corpo = fmt.Sprintf(
			"<p>Olá, %s.</p><p>Sua empresa não foi aprovada no processo de homologação.</p>",
			fornecedor.Nome,
		)
	}
	if decisao.Observacao != "" {
		corpo += fmt.Sprintf("<p>Observação do avaliador: %s</p>", decisao.Observacao)
	}

	if err := s.mailer.Send([]string{fornecedor.Email}, assunto, corpo); err != nil {
		logger.Warn("E-mail de decisão não enviado", map[string]interface{}{
			"fornecedor_id": fornecedor.ID,
			"error":         err.Error(),
		})
		return false
	}
	return true
}
