package domain

import (
	"strings"
	"time"
)

// Category classifies a trip and selects its packing list.
type Category string

const (
	CategoryBeach  Category = "BEACH"
	CategoryCity   Category = "CITY"
	CategoryForest Category = "FOREST"
	CategoryLake   Category = "LAKE"
	CategorySea    Category = "SEA"
	CategorySnow   Category = "SNOW"
)

// ParseCategory normalizes and validates a category string.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CategoryBeach, CategoryCity, CategoryForest, CategoryLake, CategorySea, CategorySnow:
		return c, true
	}
	return "", false
}

// Trip is a guided excursion offered by the service.
type Trip struct {
	ID        int64
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Longitude float64
	Latitude  float64
	Price     float64
	Category  Category
	GuideID   *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
