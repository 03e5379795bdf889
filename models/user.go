package models

import (
	"strings"
	"time"
)

// User is a registered passenger. Never updated or deleted by this service.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:nome;size:100;not null" json:"nome"`
	Email     string    `gorm:"column:email;size:150;not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"column:telefone;size:30;default:''" json:"telefone"`
	Password  string    `gorm:"column:senha;size:255;not null" json:"-"` // bcrypt hash, never returned
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "usuario" }

// Passenger is the lightweight directory entry served by /api/passageiros.
type Passenger struct {
	ID   uint   `gorm:"column:id" json:"id"`
	Name string `gorm:"column:nome" json:"nome"`
}

// CreateUserRequest is the POST /api/usuario payload.
type CreateUserRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	Password string `json:"senha"`
}

func (r CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		r.Password == "" {
		return NewValidationError(MsgMissingUserFields)
	}
	return nil
}
