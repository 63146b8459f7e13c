package dto

import "time"

// DistributorRequest payload for creating or updating a distributor.
type DistributorRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"max=32"`
	Region   string `json:"region" validate:"max=100"`
	SalesRep string `json:"sales_rep" validate:"max=200"`
}

// DistributorResponse API shape of a distributor.
type DistributorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Region    string    `json:"region,omitempty"`
	SalesRep  string    `json:"sales_rep,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
