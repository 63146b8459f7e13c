package entity

import "time"

// Distributor is a reseller of the company's safety products.
type Distributor struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Region    string
	SalesRep  string // assigned sales representative
	CreatedAt time.Time
	UpdatedAt time.Time
}
