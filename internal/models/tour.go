package models

import "time"

// Tour представляет тур из каталога.
type Tour struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Duration        int       `json:"duration"`
	MaxGroupSize    int       `json:"maxGroupSize"`
	Difficulty      string    `json:"difficulty"`
	Price           float64   `json:"price"`
	Summary         string    `json:"summary"`
	Description     string    `json:"description,omitempty"`
	RatingsAverage  float64   `json:"ratingsAverage"`
	RatingsQuantity int       `json:"ratingsQuantity"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Review представляет отзыв пользователя о туре. Пара (TourID, UserUID)
// уникальна: один пользователь оставляет не больше одного отзыва на тур.
type Review struct {
	ID        int       `json:"id"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	TourID    int       `json:"tourId"`
	UserUID   string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
