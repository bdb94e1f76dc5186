package entities

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operador"
)

func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleOperator
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
