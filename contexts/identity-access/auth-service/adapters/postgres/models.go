package postgresadapter

import (
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/entities"
)

type userModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Nome        string     `gorm:"column:nome"`
	Email       string     `gorm:"column:email;uniqueIndex:idx_usuarios_email"`
	SenhaHash   string     `gorm:"column:senha_hash"`
	Tipo        string     `gorm:"column:tipo"`
	Ativo       bool       `gorm:"column:ativo"`
	UltimoLogin *time.Time `gorm:"column:ultimo_login"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "usuarios" }

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.ID,
		Name:         m.Nome,
		Email:        m.Email,
		PasswordHash: m.SenhaHash,
		Role:         entities.Role(m.Tipo),
		Active:       m.Ativo,
		LastLogin:    m.UltimoLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userModelFromEntity(u entities.User) userModel {
	return userModel{
		ID:          u.ID,
		Nome:        u.Name,
		Email:       u.Email,
		SenhaHash:   u.PasswordHash,
		Tipo:        string(u.Role),
		Ativo:       u.Active,
		UltimoLogin: u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
