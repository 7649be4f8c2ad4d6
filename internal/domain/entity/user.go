package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta del sistema. Un usuario no-admin queda
// acotado a su cliente (ClientID) para lecturas de facturas.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin | user
	ClientID     string // vacío para admins sin cliente asociado
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
