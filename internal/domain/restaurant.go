package domain

type Restaurant struct {
	RestaurantID   string
	RestaurantName string
	Type           string
	Location       string
	Rating         float64
}

const (
	MinRating = 0
	MaxRating = 5
)
