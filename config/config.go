package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bnb-search/models"
)

// Config holds the runtime configuration
type Config struct {
	Catalogue struct {
		URL            string `yaml:"url"`
		File           string `yaml:"file"`
		RefreshMinutes int    `yaml:"refresh_minutes"`
	} `yaml:"catalogue"`

	Filters struct {
		MinPrice  float64 `yaml:"min_price"`
		MaxPrice  float64 `yaml:"max_price"`
		PlaceType string  `yaml:"place_type"`
	} `yaml:"filters"`

	Booking struct {
		MaxGuests      int `yaml:"max_guests"`
		MinStay        int `yaml:"min_stay"`
		MaxStay        int `yaml:"max_stay"`
		MaxAdvanceDays int `yaml:"max_advance_days"`
	} `yaml:"booking"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Catalogue.RefreshMinutes = 60
	cfg.Filters.MinPrice = 0
	cfg.Filters.MaxPrice = 0
	cfg.Filters.PlaceType = string(models.PlaceAny)
	cfg.Booking.MaxGuests = models.DefaultMaxGuests
	cfg.Booking.MinStay = models.DefaultMinStay
	cfg.Booking.MaxStay = models.DefaultMaxStay
	cfg.Booking.MaxAdvanceDays = models.DefaultMaxAdvanceBooking
	return cfg
}

// FilterState builds the starting filter selection from the configured
// defaults
func (c *Config) FilterState() models.FilterState {
	state := models.DefaultFilterState()
	if c.Filters.MinPrice > 0 {
		state.PriceMin = c.Filters.MinPrice
	}
	if c.Filters.MaxPrice > 0 {
		state.PriceMax = c.Filters.MaxPrice
	}
	if c.Filters.PlaceType != "" {
		state.PlaceType = models.PlaceType(c.Filters.PlaceType)
	}
	return state
}

// Constraints builds the fallback booking constraints from the configured
// defaults
func (c *Config) Constraints() models.BookingConstraints {
	bc := models.BookingConstraints{
		MaxGuests:         models.DefaultMaxGuests,
		MinStay:           models.DefaultMinStay,
		MaxStay:           models.DefaultMaxStay,
		MaxAdvanceBooking: models.DefaultMaxAdvanceBooking,
	}
	if c.Booking.MaxGuests > 0 {
		bc.MaxGuests = c.Booking.MaxGuests
	}
	if c.Booking.MinStay > 0 {
		bc.MinStay = c.Booking.MinStay
	}
	if c.Booking.MaxStay > 0 {
		bc.MaxStay = c.Booking.MaxStay
	}
	if c.Booking.MaxAdvanceDays > 0 {
		bc.MaxAdvanceBooking = c.Booking.MaxAdvanceDays
	}
	return bc
}
