package models

// Hotel is read-only reference data; rows come from the startup seed.
type Hotel struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"column:nome;size:100;not null" json:"nome"`
	City   string  `gorm:"column:cidade;size:50" json:"cidade"`
	Price  float64 `gorm:"column:preco;type:decimal(12,2)" json:"preco"`
	Rating float64 `gorm:"column:avaliacao" json:"avaliacao"`
}

func (Hotel) TableName() string { return "hoteis" }
