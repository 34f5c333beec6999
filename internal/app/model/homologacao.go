package model

// Homologacao é o registro interno de homologação lançado manualmente.
// Quando a planilha externa não tem o fornecedor, o registro mais
// recente (maior id) serve de fonte reserva para as notas.
type Homologacao struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	IQF         float64 `gorm:"column:iqf;not null" json:"iqf"`
	Homologacao string  `gorm:"size:50;not null" json:"homologacao"`
	Observacoes string  `gorm:"type:text" json:"observacoes"`

	FornecedorID uint `gorm:"index;not null" json:"fornecedor_id"`
}

func (Homologacao) TableName() string {
	return "homologacoes"
}
