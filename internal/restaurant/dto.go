package restaurant

import "foodorder/internal/domain"

type CreateRestaurantRequest struct {
	RestaurantName string `json:"restaurantName"`
	Type           string `json:"type"`
	Location       string `json:"location"`
}

// UpdateRestaurantRequest only overwrites the fields that are present.
type UpdateRestaurantRequest struct {
	RestaurantName *string `json:"restaurantName"`
	Type           *string `json:"type"`
	Location       *string `json:"location"`
}

type RestaurantDTO struct {
	RestaurantID   string  `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	Type           string  `json:"type"`
	Location       string  `json:"location"`
	Rating         float64 `json:"rating"`
}

func toDTO(r domain.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		RestaurantID:   r.RestaurantID,
		RestaurantName: r.RestaurantName,
		Type:           r.Type,
		Location:       r.Location,
		Rating:         r.Rating,
	}
}

func toDTOs(rs []domain.Restaurant) []RestaurantDTO {
	out := make([]RestaurantDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toDTO(r))
	}
	return out
}
