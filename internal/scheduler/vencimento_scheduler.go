package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/planilha"
	"github.com/LICASKJS/backend-engeman/internal/qualificacao"
	"github.com/LICASKJS/backend-engeman/internal/websocket"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/LICASKJS/backend-engeman/pkg/mailer"
)

// Homologações a menos de 30 dias do vencimento geram aviso
const janelaAviso = 30 * 24 * time.Hour

// Nome lógico da planilha de homologados, igual ao usado pelo serviço
// de qualificação
const planilhaHomologados = "homologados"

// VencimentoScheduler varre diariamente a planilha de homologados e
// avisa por e-mail os fornecedores com homologação prestes a vencer
type VencimentoScheduler struct {
	cron           *cron.Cron
	fornecedorRepo repository.FornecedorRepository
	carregador     *planilha.Carregador
	mailer         mailer.Mailer
	hub            *websocket.Hub
}

func NewVencimentoScheduler(
	fornecedorRepo repository.FornecedorRepository,
	carregador *planilha.Carregador,
	m mailer.Mailer,
	hub *websocket.Hub,
) *VencimentoScheduler {
	return &VencimentoScheduler{
		cron:           cron.New(),
		fornecedorRepo: fornecedorRepo,
		carregador:     carregador,
		mailer:         m,
		hub:            hub,
	}
}

// Start agenda a varredura diária às 7h e a limpeza de tokens de
// recuperação expirados de hora em hora
func (s *VencimentoScheduler) Start() error {
	if _, err := s.cron.AddFunc("0 7 * * *", s.VarrerVencimentos); err != nil {
		logger.Error("Falha ao agendar varredura de vencimentos", err)
		return err
	}

	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.fornecedorRepo.LimparTokensExpirados(); err != nil {
			logger.Error("Falha na limpeza de tokens expirados", err)
		}
	}); err != nil {
		logger.Error("Falha ao agendar limpeza de tokens", err)
		return err
	}

	s.cron.Start()
	logger.Info("Agendador de vencimentos iniciado (varredura diária às 7h)")
	return nil
}

func (s *VencimentoScheduler) Stop() {
	logger.Info("Encerrando agendador de vencimentos...")
	s.cron.Stop()
}

// VarrerVencimentos cruza os fornecedores cadastrados com a planilha de
// homologados e avisa os que vencem dentro da janela
func (s *VencimentoScheduler) VarrerVencimentos() {
	logger.Info("Iniciando varredura de vencimentos de homologação")

	tab, err := s.carregador.Carregar(planilhaHomologados)
	if err != nil {
		logger.Error("Varredura abortada: planilha de homologados indisponível", err)
		return
	}

	fornecedores, err := s.fornecedorRepo.FindAll()
	if err != nil {
		logger.Error("Varredura abortada: falha ao listar fornecedores", err)
		return
	}

	agora := time.Now()
	avisados := 0

	for i := range fornecedores {
		fornecedor := &fornecedores[i]

		linha, ok := qualificacao.MelhorLinha(tab, fornecedor.Nome, fornecedor.CNPJ)
		if !ok {
			continue
		}

		vencimento, ok := qualificacao.ParseData(linha.Valor("data_vencimento"))
		if !ok || vencimento.Before(agora) || vencimento.Sub(agora) > janelaAviso {
			continue
		}

		s.avisarFornecedor(fornecedor.Nome, fornecedor.Email, vencimento)
		if s.hub != nil {
			s.hub.BroadcastEvento("homologacao_vencendo", map[string]interface{}{
				"fornecedor_id": fornecedor.ID,
				"fornecedor":    fornecedor.Nome,
				"vencimento":    vencimento.Format("02/01/2006"),
			})
		}
		avisados++
	}

	logger.Info("Varredura de vencimentos concluída", map[string]interface{}{
		"fornecedores": len(fornecedores),
		"avisados":     avisados,
	})
}

func (s *VencimentoScheduler) avisarFornecedor(nome, email string, vencimento time.Time) {
	if s.mailer == nil {
		return
	}

	corpo := fmt.Sprintf(
		"<p>Olá, %s.</p><p>Sua homologação vence em <strong>%s</strong>. Atualize sua documentação no portal para manter o cadastro ativo.</p>",
		nome, vencimento.Format("02/01/2006"),
	)
	if err := s.mailer.Send([]string{email}, "Homologação próxima do vencimento", corpo); err != nil {
		logger.Warn("Aviso de vencimento não enviado", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}
}
