package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/LICASKJS/backend-engeman/config"
	"github.com/LICASKJS/backend-engeman/internal/app/model"
	"github.com/LICASKJS/backend-engeman/internal/app/repository"
	"github.com/LICASKJS/backend-engeman/internal/planilha"
	"github.com/LICASKJS/backend-engeman/internal/qualificacao"
	"github.com/LICASKJS/backend-engeman/pkg/logger"
	"github.com/LICASKJS/backend-engeman/pkg/util"
)

var ErrFornecedorNaoEncontrado = errors.New("fornecedor não encontrado")

// Nomes lógicos das planilhas de qualificação
const (
	PlanilhaHomologados       = "homologados"
	PlanilhaControleQualidade = "controle_qualidade"
	PlanilhaRequisitosLegais  = "requisitos_legais"
)

// RegistroQualificacao é a visão consolidada de um fornecedor: o que as
// planilhas, o banco e a decisão administrativa disseram sobre ele
type RegistroQualificacao struct {
	FornecedorID    uint                `json:"fornecedor_id"`
	Nome            string              `json:"nome"`
	CNPJ            string              `json:"cnpj"`
	Categoria       string              `json:"categoria"`
	Status          qualificacao.Status `json:"status"`
	FlagAprovado    string              `json:"flag_aprovado,omitempty"`
	IQFPlanilha     *float64            `json:"iqf_planilha,omitempty"`
	IQFAgregada     *float64            `json:"iqf_agregada,omitempty"`
	TotalNotasIQF   int                 `json:"total_notas_iqf"`
	NotaIQF         *float64            `json:"nota_iqf,omitempty"`
	NotaHomologacao *float64            `json:"nota_homologacao,omitempty"`
	DataVencimento  string              `json:"data_vencimento,omitempty"`
	Observacoes     []string            `json:"observacoes,omitempty"`
	Fontes          []string            `json:"fontes"`
	Decisao         *DecisaoResumo      `json:"decisao,omitempty"`
	Documentos      []model.Documento   `json:"documentos,omitempty"`
	UltimaAtividade time.Time           `json:"ultima_atividade"`
}

// DecisaoResumo expõe a decisão administrativa sem os campos internos
type DecisaoResumo struct {
	Status         model.StatusDecisao `json:"status"`
	NotaReferencia *float64            `json:"nota_referencia,omitempty"`
	Observacao     string              `json:"observacao,omitempty"`
	AvaliadorEmail string              `json:"avaliador_email,omitempty"`
	AtualizadoEm   time.Time           `json:"atualizado_em"`
}

// Dashboard agrupa os contadores exibidos no painel administrativo
type Dashboard struct {
	TotalFornecedores int64 `json:"total_fornecedores"`
	TotalDocumentos   int64 `json:"total_documentos"`
	Aprovados         int64 `json:"aprovados"`
	Reprovados        int64 `json:"reprovados"`
	SemDecisao        int64 `json:"sem_decisao"`
}

// ResumoFornecedor é a linha da listagem do painel administrativo
type ResumoFornecedor struct {
	ID           uint                `json:"id"`
	Nome         string              `json:"nome"`
	Email        string              `json:"email"`
	CNPJ         string              `json:"cnpj"`
	Categoria    string              `json:"categoria"`
	Status       qualificacao.Status `json:"status"`
	DataCadastro time.Time           `json:"data_cadastro"`
}

// ConsultaHomologacao é a resposta da consulta pública por nome, restrita
// ao que a planilha de homologados diz
type ConsultaHomologacao struct {
	Encontrado     bool                `json:"encontrado"`
	Status         qualificacao.Status `json:"status"`
	FlagAprovado   string              `json:"flag_aprovado,omitempty"`
	IQF            *float64            `json:"iqf,omitempty"`
	Nota           *float64            `json:"nota,omitempty"`
	DataVencimento string              `json:"data_vencimento,omitempty"`
}

// EventoRecente é uma entrada do feed de notificações do painel
type EventoRecente struct {
	Tipo         string    `json:"tipo"` // cadastro, documento ou decisao
	FornecedorID uint      `json:"fornecedor_id"`
	Fornecedor   string    `json:"fornecedor"`
	Detalhe      string    `json:"detalhe,omitempty"`
	Quando       time.Time `json:"quando"`
}

type QualificacaoService interface {
	MontarRegistro(fornecedorID uint) (*RegistroQualificacao, error)
	ConsultarHomologacao(nome, cnpj string) (*ConsultaHomologacao, error)
	ListarFornecedores() ([]ResumoFornecedor, error)
	DocumentosNecessarios(categoria string) ([]string, error)
	MontarDashboard() (*Dashboard, error)
	NotificacoesRecentes(limit int) ([]EventoRecente, error)
}

type qualificacaoService struct {
	fornecedorRepo  repository.FornecedorRepository
	homologacaoRepo repository.HomologacaoRepository
	documentoRepo   repository.DocumentoRepository
	decisaoRepo     repository.DecisaoRepository
	carregador      *planilha.Carregador
}

func NewQualificacaoService(
	fornecedorRepo repository.FornecedorRepository,
	homologacaoRepo repository.HomologacaoRepository,
	documentoRepo repository.DocumentoRepository,
	decisaoRepo repository.DecisaoRepository,
	carregador *planilha.Carregador,
) QualificacaoService {
	return &qualificacaoService{
		fornecedorRepo:  fornecedorRepo,
		homologacaoRepo: homologacaoRepo,
		documentoRepo:   documentoRepo,
		decisaoRepo:     decisaoRepo,
		carregador:      carregador,
	}
}

// NovoLocator monta o locator padrão a partir da configuração
func NovoLocator(cfg *config.PlanilhasConfig) planilha.Locator {
	return planilha.NewDirLocator(cfg.SearchDirs, map[string]string{
		PlanilhaHomologados:       cfg.Homologados,
		PlanilhaControleQualidade: cfg.ControleQualidade,
		PlanilhaRequisitosLegais:  cfg.RequisitosLegais,
	})
}

// MontarRegistro consolida as fontes na ordem: planilha de homologados,
// planilha de controle de qualidade, registro interno (só quando as
// planilhas não têm linha) e decisão administrativa. Planilha ausente
// ou ilegível não derruba a consulta: a fonte é tratada como vazia e o
// problema fica registrado no log.
func (s *qualificacaoService) MontarRegistro(fornecedorID uint) (*RegistroQualificacao, error) {
	fornecedor, err := s.fornecedorRepo.FindByIDCompleto(fornecedorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFornecedorNaoEncontrado
		}
		return nil, err
	}

	registro := &RegistroQualificacao{
		FornecedorID: fornecedor.ID,
		Nome:         fornecedor.Nome,
		CNPJ:         fornecedor.CNPJ,
		Categoria:    fornecedor.Categoria,
		Documentos:   fornecedor.Documentos,
	}
	evidencia := qualificacao.Evidencia{}

	// A planilha de controle grafa o nome como a de homologados; o nome
	// do cadastro é o fallback quando não há linha de homologados
	nomeControle := fornecedor.Nome

	// Planilha de homologados
	if tab := s.carregarFonte(PlanilhaHomologados); tab != nil {
		if linha, ok := qualificacao.MelhorLinha(tab, fornecedor.Nome, fornecedor.CNPJ); ok {
			evidencia.TemRegistro = true
			registro.Fontes = append(registro.Fontes, PlanilhaHomologados)

			if agente := strings.TrimSpace(linha.Valor("agente", "nome_fantasia")); agente != "" {
				nomeControle = agente
			}

			registro.FlagAprovado = linha.Valor("aprovado", "homologado")
			registro.DataVencimento = linha.Valor("data_vencimento")
			evidencia.FlagAprovado = registro.FlagAprovado

			if iqf, ok := util.ToFloat(linha.Valor("iqf")); ok {
				registro.IQFPlanilha = &iqf
				evidencia.IQFPlanilha = &iqf
			}
			if nota, ok := util.ToFloat(linha.Valor("nota_homologacao", "nota")); ok {
				registro.NotaHomologacao = &nota
				evidencia.NotaHomologacao = &nota
			}
		}
	}

	// Planilha de controle de qualidade
	if tab := s.carregarFonte(PlanilhaControleQualidade); tab != nil {
		linhas := qualificacao.EncontrarLinhas(tab, nomeControle, fornecedor.CNPJ)
		if len(linhas) == 0 && nomeControle != fornecedor.Nome {
			linhas = qualificacao.EncontrarLinhas(tab, fornecedor.Nome, fornecedor.CNPJ)
		}
		if len(linhas) > 0 {
			evidencia.TemRegistro = true
			registro.Fontes = append(registro.Fontes, PlanilhaControleQualidade)

			agregado := qualificacao.AgregarNotas(linhas)
			registro.IQFAgregada = agregado.Media
			registro.TotalNotasIQF = agregado.TotalNotas
			registro.Observacoes = append(registro.Observacoes, agregado.Observacoes...)
			evidencia.IQFAgregada = agregado.Media
		}
	}

	// Registro interno: só entra quando nenhuma planilha conhecia o
	// fornecedor, para não misturar fontes com pesos diferentes
	if !evidencia.TemRegistro && len(fornecedor.Homologacoes) > 0 {
		interno := fornecedor.Homologacoes[0]
		for _, h := range fornecedor.Homologacoes {
			if h.ID > interno.ID {
				interno = h
			}
		}

		evidencia.TemRegistro = true
		registro.Fontes = append(registro.Fontes, "registro_interno")

		registro.FlagAprovado = interno.Homologacao
		evidencia.FlagAprovado = interno.Homologacao
		if interno.IQF > 0 {
			iqf := interno.IQF
			registro.NotaHomologacao = &iqf
			evidencia.NotaHomologacao = &iqf
		}
		if obs := strings.TrimSpace(interno.Observacoes); obs != "" {
			registro.Observacoes = append(registro.Observacoes, obs)
		}
	}

	// Nota IQF final: a média do controle de qualidade prevalece sobre
	// o valor pontual da planilha de homologados
	if registro.IQFAgregada != nil {
		registro.NotaIQF = registro.IQFAgregada
	} else {
		registro.NotaIQF = registro.IQFPlanilha
	}

	// Decisão administrativa
	if fornecedor.DecisaoAdmin != nil {
		decisao := qualificacao.Status(fornecedor.DecisaoAdmin.Status)
		evidencia.Decisao = &decisao
		registro.Decisao = &DecisaoResumo{
			Status:         fornecedor.DecisaoAdmin.Status,
			NotaReferencia: fornecedor.DecisaoAdmin.NotaReferencia,
			Observacao:     fornecedor.DecisaoAdmin.Observacao,
			AvaliadorEmail: fornecedor.DecisaoAdmin.AvaliadorEmail,
			AtualizadoEm:   fornecedor.DecisaoAdmin.AtualizadoEm,
		}
	}

	registro.Status = qualificacao.ResolverStatus(evidencia)

	registro.UltimaAtividade = fornecedor.DataCadastro
	for _, doc := range fornecedor.Documentos {
		if doc.DataUpload.After(registro.UltimaAtividade) {
			registro.UltimaAtividade = doc.DataUpload
		}
	}
	if fornecedor.DecisaoAdmin != nil && fornecedor.DecisaoAdmin.AtualizadoEm.After(registro.UltimaAtividade) {
		registro.UltimaAtividade = fornecedor.DecisaoAdmin.AtualizadoEm
	}

	logger.Debug("Registro de qualificação montado", map[string]interface{}{
		"fornecedor_id": fornecedor.ID,
		"status":        registro.Status,
		"fontes":        registro.Fontes,
	})
	return registro, nil
}

// ListarFornecedores resolve o status de todos os fornecedores para a
// listagem do painel. As planilhas são carregadas uma única vez e
// reutilizadas para cada fornecedor.
func (s *qualificacaoService) ListarFornecedores() ([]ResumoFornecedor, error) {
	fornecedores, err := s.fornecedorRepo.FindAll()
	if err != nil {
		return nil, err
	}

	homologados := s.carregarFonte(PlanilhaHomologados)
	controle := s.carregarFonte(PlanilhaControleQualidade)

	resumos := make([]ResumoFornecedor, 0, len(fornecedores))
	for i := range fornecedores {
		fornecedor := &fornecedores[i]
		evidencia := qualificacao.Evidencia{}
		nomeControle := fornecedor.Nome

		if homologados != nil {
			if linha, ok := qualificacao.MelhorLinha(homologados, fornecedor.Nome, fornecedor.CNPJ); ok {
				evidencia.TemRegistro = true
				evidencia.FlagAprovado = linha.Valor("aprovado", "homologado")
				if agente := strings.TrimSpace(linha.Valor("agente", "nome_fantasia")); agente != "" {
					nomeControle = agente
				}
				if iqf, ok := util.ToFloat(linha.Valor("iqf")); ok {
					evidencia.IQFPlanilha = &iqf
				}
				if nota, ok := util.ToFloat(linha.Valor("nota_homologacao", "nota")); ok {
					evidencia.NotaHomologacao = &nota
				}
			}
		}
		if controle != nil {
			linhas := qualificacao.EncontrarLinhas(controle, nomeControle, fornecedor.CNPJ)
			if len(linhas) == 0 && nomeControle != fornecedor.Nome {
				linhas = qualificacao.EncontrarLinhas(controle, fornecedor.Nome, fornecedor.CNPJ)
			}
			if len(linhas) > 0 {
				evidencia.TemRegistro = true
				evidencia.IQFAgregada = qualificacao.AgregarNotas(linhas).Media
			}
		}
		if !evidencia.TemRegistro && len(fornecedor.Homologacoes) > 0 {
			interno := fornecedor.Homologacoes[0]
			for _, h := range fornecedor.Homologacoes {
				if h.ID > interno.ID {
					interno = h
				}
			}
			evidencia.TemRegistro = true
			evidencia.FlagAprovado = interno.Homologacao
			if interno.IQF > 0 {
				iqf := interno.IQF
				evidencia.NotaHomologacao = &iqf
			}
		}
		if fornecedor.DecisaoAdmin != nil {
			decisao := qualificacao.Status(fornecedor.DecisaoAdmin.Status)
			evidencia.Decisao = &decisao
		}

		resumos = append(resumos, ResumoFornecedor{
			ID:           fornecedor.ID,
			Nome:         fornecedor.Nome,
			Email:        fornecedor.Email,
			CNPJ:         fornecedor.CNPJ,
			Categoria:    fornecedor.Categoria,
			Status:       qualificacao.ResolverStatus(evidencia),
			DataCadastro: fornecedor.DataCadastro,
		})
	}

	return resumos, nil
}

// DocumentosNecessarios lista os documentos exigidos para a categoria
// do fornecedor a partir da planilha de requisitos legais
func (s *qualificacaoService) DocumentosNecessarios(categoria string) ([]string, error) {
	tab, err := s.carregador.Carregar(PlanilhaRequisitosLegais)
	if err != nil {
		logger.Error("Falha ao carregar planilha de requisitos legais", err)
		return nil, err
	}

	alvo := util.Normalize(categoria)
	var documentos []string
	vistos := make(map[string]bool)

	for _, linha := range tab.Linhas() {
		catLinha := util.Normalize(linha.Valor("categoria", "grupo"))
		if alvo != "" && catLinha != "" && catLinha != alvo &&
			!strings.Contains(catLinha, alvo) && !strings.Contains(alvo, catLinha) {
			continue
		}

		doc := strings.TrimSpace(linha.Valor("documento", "requisito", "descricao"))
		if doc == "" || vistos[util.Normalize(doc)] {
			continue
		}
		vistos[util.Normalize(doc)] = true
		documentos = append(documentos, doc)
	}

	return documentos, nil
}

func (s *qualificacaoService) MontarDashboard() (*Dashboard, error) {
	totalFornecedores, err := s.fornecedorRepo.Count()
	if err != nil {
		return nil, err
	}
	totalDocumentos, err := s.documentoRepo.Count()
	if err != nil {
		return nil, err
	}
	aprovados, err := s.decisaoRepo.CountPorStatus(model.DecisaoAprovado)
	if err != nil {
		return nil, err
	}
	reprovados, err := s.decisaoRepo.CountPorStatus(model.DecisaoReprovado)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalFornecedores: totalFornecedores,
		TotalDocumentos:   totalDocumentos,
		Aprovados:         aprovados,
		Reprovados:        reprovados,
		SemDecisao:        totalFornecedores - aprovados - reprovados,
	}, nil
}

// ConsultarHomologacao responde a consulta pública de homologação. Só a
// planilha de homologados é consultada: dados do cadastro interno não
// vazam para quem não está autenticado.
func (s *qualificacaoService) ConsultarHomologacao(nome, cnpj string) (*ConsultaHomologacao, error) {
	tab, err := s.carregador.Carregar(PlanilhaHomologados)
	if err != nil {
		logger.Error("Falha ao carregar planilha de homologados", err)
		return nil, err
	}

	linha, ok := qualificacao.MelhorLinha(tab, nome, cnpj)
	if !ok {
		return &ConsultaHomologacao{Status: qualificacao.StatusACadastrar}, nil
	}

	consulta := &ConsultaHomologacao{
		Encontrado:     true,
		FlagAprovado:   linha.Valor("aprovado", "homologado"),
		DataVencimento: linha.Valor("data_vencimento"),
	}
	evidencia := qualificacao.Evidencia{
		TemRegistro:  true,
		FlagAprovado: consulta.FlagAprovado,
	}
	if iqf, ok := util.ToFloat(linha.Valor("iqf")); ok {
		consulta.IQF = &iqf
		evidencia.IQFPlanilha = &iqf
	}
	if nota, ok := util.ToFloat(linha.Valor("nota_homologacao", "nota")); ok {
		consulta.Nota = &nota
		evidencia.NotaHomologacao = &nota
	}
	consulta.Status = qualificacao.ResolverStatus(evidencia)

	return consulta, nil
}

// NotificacoesRecentes monta o feed do painel juntando os últimos
// cadastros, envios de documento e decisões, em ordem decrescente
func (s *qualificacaoService) NotificacoesRecentes(limit int) ([]EventoRecente, error) {
	if limit <= 0 {
		limit = 20
	}

	fornecedores, err := s.fornecedorRepo.FindRecentes(limit)
	if err != nil {
		return nil, err
	}
	documentos, err := s.documentoRepo.FindRecentes(limit)
	if err != nil {
		return nil, err
	}
	decisoes, err := s.decisaoRepo.FindRecentes(limit)
	if err != nil {
		return nil, err
	}

	nomes := make(map[uint]string, len(fornecedores))
	for _, f := range fornecedores {
		nomes[f.ID] = f.Nome
	}
	nomeDe := func(fornecedorID uint) string {
		if nome, ok := nomes[fornecedorID]; ok {
			return nome
		}
		f, err := s.fornecedorRepo.FindByID(fornecedorID)
		if err != nil {
			return ""
		}
		nomes[fornecedorID] = f.Nome
		return f.Nome
	}

	eventos := make([]EventoRecente, 0, len(fornecedores)+len(documentos)+len(decisoes))
	for _, f := range fornecedores {
		eventos = append(eventos, EventoRecente{
			Tipo:         "cadastro",
			FornecedorID: f.ID,
			Fornecedor:   f.Nome,
			Quando:       f.DataCadastro,
		})
	}
	for _, d := range documentos {
		eventos = append(eventos, EventoRecente{
			Tipo:         "documento",
			FornecedorID: d.FornecedorID,
			Fornecedor:   nomeDe(d.FornecedorID),
			Detalhe:      d.NomeDocumento,
			Quando:       d.DataUpload,
		})
	}
	for _, d := range decisoes {
		eventos = append(eventos, EventoRecente{
			Tipo:         "decisao",
			FornecedorID: d.FornecedorID,
			Fornecedor:   nomeDe(d.FornecedorID),
			Detalhe:      string(d.Status),
			Quando:       d.AtualizadoEm,
		})
	}

	sort.SliceStable(eventos, func(i, j int) bool {
		return eventos[i].Quando.After(eventos[j].Quando)
	})
	if len(eventos) > limit {
		eventos = eventos[:limit]
	}
	return eventos, nil
}

func (s *qualificacaoService) carregarFonte(nomeLogico string) *planilha.Tabela {
	tab, err := s.carregador.Carregar(nomeLogico)
	if err != nil {
		logger.Warn("Fonte de qualificação indisponível", map[string]interface{}{
			"fonte": nomeLogico,
			"error": err.Error(),
		})
		return nil
	}
	return tab
}
