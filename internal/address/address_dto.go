package address

import "time"

type CreateAddressRequest struct {
	Label      string `json:"label" binding:"max=50"`
	Street     string `json:"street" binding:"required,max=255" validate:"required"`
	City       string `json:"city" binding:"required,max=100" validate:"required"`
	State      string `json:"state" binding:"required,max=100" validate:"required"`
	PostalCode string `json:"postalCode" binding:"required,max=20" validate:"required"`
	Country    string `json:"country" binding:"required,max=100" validate:"required"`
	IsPrimary  bool   `json:"isPrimary"`
}

type AddressResponse struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
	IsPrimary  bool      `json:"isPrimary"`
	CreatedAt  time.Time `json:"createdAt"`
}
