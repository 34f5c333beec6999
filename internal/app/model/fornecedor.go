package model

import (
	"time"
)

type Fornecedor struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	Nome             string     `gorm:"size:100;not null" json:"nome"`
	Email            string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CNPJ             string     `gorm:"column:cnpj;size:18;uniqueIndex;not null" json:"cnpj"`
	SenhaHash        string     `gorm:"size:256;not null" json:"-"`
	Categoria        string     `gorm:"size:100" json:"categoria"`
	TokenRecuperacao *string    `gorm:"size:6" json:"-"` // token de 6 dígitos da recuperação de senha
	TokenExpira      *time.Time `json:"-"`
	DataCadastro     time.Time  `gorm:"autoCreateTime" json:"data_cadastro"`

	Documentos   []Documento        `gorm:"foreignKey:FornecedorID" json:"documentos,omitempty"`
	Homologacoes []Homologacao      `gorm:"foreignKey:FornecedorID" json:"dados_homologacao,omitempty"`
	DecisaoAdmin *DecisaoFornecedor `gorm:"foreignKey:FornecedorID" json:"decisao_admin,omitempty"`
}

func (Fornecedor) TableName() string {
	return "fornecedores"
}
