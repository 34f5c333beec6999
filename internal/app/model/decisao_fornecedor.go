package model

import (
	"time"
)

type StatusDecisao string

const (
	DecisaoAprovado  StatusDecisao = "APROVADO"
	DecisaoReprovado StatusDecisao = "REPROVADO"
)

// DecisaoFornecedor é a decisão administrativa manual: no máximo uma por
// fornecedor, e quando existe prevalece sobre qualquer status calculado
type DecisaoFornecedor struct {
	ID             uint          `gorm:"primarykey" json:"id"`
	FornecedorID   uint          `gorm:"uniqueIndex;not null" json:"fornecedor_id"`
	Status         StatusDecisao `gorm:"size:20;not null" json:"status"`
	NotaReferencia *float64      `json:"nota_referencia"`
	Observacao     string        `gorm:"type:text" json:"observacao"`
	AvaliadorEmail string        `gorm:"size:120" json:"avaliador_email"`
	AtualizadoEm   time.Time     `gorm:"autoUpdateTime" json:"atualizado_em"`
	EmailEnviadoEm *time.Time    `json:"email_enviado_em"`
}

func (DecisaoFornecedor) TableName() string {
	return "decisoes_fornecedor"
}
