package request

import (
	"restaurant-pos/internal/domain/location"
	"restaurant-pos/internal/pkg/patch"

	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name" binding:"required"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Timezone     string    `json:"timezone"`
	TaxRate      float64   `json:"tax_rate" binding:"gte=0,lte=100"`
	Status       string    `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

func (r CreateLocationRequest) ToDomain() location.CreateInput {
	return location.CreateInput{
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Address:      r.Address,
		Phone:        r.Phone,
		Timezone:     r.Timezone,
		TaxRate:      r.TaxRate,
		Status:       location.Status(r.Status),
	}
}

type UpdateLocationRequest struct {
	Name     *string  `json:"name,omitempty"`
	Address  *string  `json:"address,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Timezone *string  `json:"timezone,omitempty"`
	TaxRate  *float64 `json:"tax_rate,omitempty" binding:"omitempty,gte=0,lte=100"`
	Status   *string  `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

func (r UpdateLocationRequest) ToDomain() location.UpdateInput {
	return location.UpdateInput{
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		Timezone: r.Timezone,
		TaxRate:  r.TaxRate,
		Status:   patch.Convert[string, location.Status](r.Status),
	}
}
