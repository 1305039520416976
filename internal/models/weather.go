package models

import "time"

// Weather is the cosmetic header widget data.
type Weather struct {
	TempC       int       `json:"temp_c"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	FetchedAt   time.Time `json:"fetched_at"`
}
