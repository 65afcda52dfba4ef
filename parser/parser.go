package parser

import (
	"encoding/json"
	"fmt"
	"log"

	"bnb-search/models"
)

// Parser decodes upstream catalogue payloads into Listing records
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// rawListing mirrors the upstream JSON shape. Everything is optional; the
// catalogue is duck-typed and different sources flatten different fields.
type rawListing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Price float64 `json:"price"`

	PropertyType string `json:"propertyType"`
	RoomType     string `json:"roomType"`

	Bedrooms  *float64 `json:"bedrooms"`
	Bathrooms *float64 `json:"bathrooms"`
	Beds      *float64 `json:"beds"`

	MaxGuests *int               `json:"maxGuests"`
	Capacity  *rawGuestCapacity  `json:"guestCapacity"`
	Amenities []string           `json:"amenities"`
	Avail     *rawAvailability   `json:"availability"`
	Options   *rawBookingOptions `json:"bookingOptions"`

	InstantBook bool `json:"instantBook"`
	SelfCheckIn bool `json:"selfCheckIn"`
	AllowsPets  bool `json:"allowsPets"`
	FreeParking bool `json:"freeParking"`
	HasTV       bool `json:"hasTV"`

	Host *rawHost `json:"host"`

	Rating          float64 `json:"rating"`
	IsGuestFavorite bool    `json:"isGuestFavorite"`

	AccessibilityFeatures []string `json:"accessibilityFeatures"`
}

type rawGuestCapacity struct {
	Adults                int  `json:"adults"`
	Children              int  `json:"children"`
	Infants               int  `json:"infants"`
	Pets                  int  `json:"pets"`
	ServiceAnimalsAllowed bool `json:"serviceAnimalsAllowed"`
}

type rawAvailability struct {
	MinimumStay  int    `json:"minimumStay"`
	MaximumStay  int    `json:"maximumStay"`
	CheckInTime  string `json:"checkInTime"`
	CheckOutTime string `json:"checkOutTime"`
	InstantBook  bool   `json:"instantBook"`
}

type rawBookingOptions struct {
	InstantBook    bool `json:"instantBook"`
	SelfCheckIn    bool `json:"selfCheckIn"`
	AllowsPets     bool `json:"allowsPets"`
	SmokingAllowed bool `json:"smokingAllowed"`
	EventsAllowed  bool `json:"eventsAllowed"`
}

type rawHost struct {
	Languages   []string `json:"languages"`
	IsSuperhost bool     `json:"isSuperhost"`
}

// ParseCatalogue decodes a JSON catalogue payload into Listing records.
// The payload is either a bare array or an object with a "listings" key.
// Records without an ID are skipped with a warning rather than failing the
// whole batch.
func (p *Parser) ParseCatalogue(data []byte) ([]models.Listing, error) {
	var raws []rawListing
	if err := json.Unmarshal(data, &raws); err != nil {
		var wrapped struct {
			Listings []rawListing `json:"listings"`
		}
		if err2 := json.Unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("failed to decode catalogue payload: %w", err)
		}
		raws = wrapped.Listings
	}

	listings := make([]models.Listing, 0, len(raws))
	for i, raw := range raws {
		if raw.ID == "" {
			log.Printf("Warning: Skipping catalogue record %d without an ID\n", i)
			continue
		}
		listings = append(listings, raw.toListing())
	}

	return listings, nil
}

func (r rawListing) toListing() models.Listing {
	l := models.Listing{
		ID:                    r.ID,
		Title:                 r.Title,
		Description:           r.Description,
		City:                  r.City,
		State:                 r.State,
		Country:               r.Country,
		Address:               r.Address,
		Latitude:              r.Latitude,
		Longitude:             r.Longitude,
		Price:                 r.Price,
		PropertyType:          r.PropertyType,
		RoomType:              r.RoomType,
		Bedrooms:              r.Bedrooms,
		Bathrooms:             r.Bathrooms,
		Beds:                  r.Beds,
		MaxGuests:             r.MaxGuests,
		Amenities:             r.Amenities,
		InstantBook:           r.InstantBook,
		SelfCheckIn:           r.SelfCheckIn,
		AllowsPets:            r.AllowsPets,
		FreeParking:           r.FreeParking,
		HasTV:                 r.HasTV,
		Rating:                r.Rating,
		IsGuestFavorite:       r.IsGuestFavorite,
		AccessibilityFeatures: r.AccessibilityFeatures,
	}

	if r.Capacity != nil {
		l.Capacity = &models.GuestCapacity{
			Adults:                r.Capacity.Adults,
			Children:              r.Capacity.Children,
			Infants:               r.Capacity.Infants,
			Pets:                  r.Capacity.Pets,
			ServiceAnimalsAllowed: r.Capacity.ServiceAnimalsAllowed,
		}
	}
	if r.Avail != nil {
		l.Availability = &models.AvailabilitySettings{
			MinimumStay:  r.Avail.MinimumStay,
			MaximumStay:  r.Avail.MaximumStay,
			CheckInTime:  r.Avail.CheckInTime,
			CheckOutTime: r.Avail.CheckOutTime,
			InstantBook:  r.Avail.InstantBook,
		}
	}
	if r.Options != nil {
		l.Options = &models.BookingOptions{
			InstantBook:    r.Options.InstantBook,
			SelfCheckIn:    r.Options.SelfCheckIn,
			AllowsPets:     r.Options.AllowsPets,
			SmokingAllowed: r.Options.SmokingAllowed,
			EventsAllowed:  r.Options.EventsAllowed,
		}
	}
	if r.Host != nil {
		l.Host = &models.Host{
			Languages:   r.Host.Languages,
			IsSuperhost: r.Host.IsSuperhost,
		}
	}

	return l
}
