package entity

import "time"

// User roles.
const (
	RoleAdmin     = "admin"
	RoleWarehouse = "warehouse"
	RoleSales     = "sales"
)

// User is an application account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
