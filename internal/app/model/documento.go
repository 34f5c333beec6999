package model

import (
	"time"
)

// Documento é imutável depois de criado: o histórico de envios de um
// fornecedor é append-only
type Documento struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	NomeDocumento string    `gorm:"size:100;not null" json:"nome"`
	Categoria     string    `gorm:"size:50;not null" json:"categoria"`
	Caminho       string    `gorm:"size:255" json:"-"` // chave no storage (S3 ou disco)
	DataUpload    time.Time `gorm:"autoCreateTime" json:"data_upload"`

	FornecedorID uint `gorm:"index;not null" json:"fornecedor_id"`
}

func (Documento) TableName() string {
	return "documentos"
}
