package model

import (
	"fmt"
	"time"
)

type Category int

const (
	CategoryTransport Category = iota + 1
	CategoryEnergy
	CategoryDiet
	CategoryShopping
)

var Categories = []Category{CategoryTransport, CategoryEnergy, CategoryDiet, CategoryShopping}

func ParseCategory(s string) (Category, error) {
	switch s {
	case "transport":
		return CategoryTransport, nil
	case "energy":
		return CategoryEnergy, nil
	case "diet":
		return CategoryDiet, nil
	case "shopping":
		return CategoryShopping, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) String() string {
	switch c {
	case CategoryTransport:
		return "transport"
	case CategoryEnergy:
		return "energy"
	case CategoryDiet:
		return "diet"
	case CategoryShopping:
		return "shopping"
	}
	return ""
}

func (c Category) Valid() bool {
	return c.String() != ""
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Activity struct {
	ID          string    `json:"id"`
	CreatedBy   string    `json:"created_by"`
	Category    Category  `json:"category"`
	Subcategory string    `json:"subcategory"`
	Description string    `json:"description"`
	CO2Impact   float64   `json:"co2_impact"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Date        Day       `json:"date"`
	CreatedAt   time.Time `json:"created_date"`
}

// IsOffset reports whether the activity reduces net emissions.
func (a *Activity) IsOffset() bool {
	return a.CO2Impact < 0
}
