package entity

import "time"

// Client representa un cliente facturable. Puede estar enlazado a lo sumo
// a una cuenta de usuario (User.ClientID).
type Client struct {
	ID        string
	Name      string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
