package response

import (
	"time"

	"restaurant-pos/internal/domain/location"

	"github.com/google/uuid"
)

type LocationResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurantId"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Timezone     string    `json:"timezone"`
	TaxRate      float64   `json:"taxRate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Selected  *LocationResponse  `json:"selected"`
}

func FromLocation(l location.Location) LocationResponse {
	return copyAs[LocationResponse](&l)
}

func FromLocations(locs []location.Location, selected *location.Location) LocationListResponse {
	resp := LocationListResponse{Locations: copyAll[LocationResponse](locs)}
	if selected != nil {
		sel := FromLocation(*selected)
		resp.Selected = &sel
	}
	return resp
}
