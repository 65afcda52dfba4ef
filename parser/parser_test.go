package parser

import (
	"testing"
)

const catalogueJSON = `[
	{
		"id": "l-1",
		"title": "Sunny family house",
		"city": "Austin",
		"state": "TX",
		"price": 180,
		"roomType": "Entire home",
		"bedrooms": 3,
		"maxGuests": 6,
		"amenities": ["Wifi", "Kitchen"],
		"guestCapacity": {"adults": 4, "children": 2, "pets": 1},
		"availability": {"minimumStay": 2, "maximumStay": 30},
		"host": {"languages": ["English", "Spanish"], "isSuperhost": true}
	},
	{
		"title": "Record without an id is skipped"
	},
	{
		"id": "l-2",
		"title": "Cozy room",
		"price": 85
	}
]`

func TestParseCatalogueBareArray(t *testing.T) {
	p := NewParser()

	listings, err := p.ParseCatalogue([]byte(catalogueJSON))
	if err != nil {
		t.Fatalf("ParseCatalogue() error = %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2 (ID-less record skipped)", len(listings))
	}

	first := listings[0]
	if first.ID != "l-1" || first.City != "Austin" || first.State != "TX" {
		t.Errorf("unexpected first listing: %+v", first)
	}
	if first.Bedrooms == nil || *first.Bedrooms != 3 {
		t.Errorf("Bedrooms = %v, want 3", first.Bedrooms)
	}
	if first.Capacity == nil || first.Capacity.Adults != 4 || first.Capacity.Pets != 1 {
		t.Errorf("Capacity = %+v, want adults 4 pets 1", first.Capacity)
	}
	if first.Availability == nil || first.Availability.MinimumStay != 2 {
		t.Errorf("Availability = %+v, want minimum stay 2", first.Availability)
	}
	if first.Host == nil || !first.Host.IsSuperhost || len(first.Host.Languages) != 2 {
		t.Errorf("Host = %+v, want superhost with 2 languages", first.Host)
	}

	second := listings[1]
	if second.ID != "l-2" {
		t.Errorf("second listing ID = %q, want l-2", second.ID)
	}
	if second.Bedrooms != nil || second.Capacity != nil || second.Host != nil {
		t.Error("omitted fields should stay nil")
	}
}

func TestParseCatalogueWrappedObject(t *testing.T) {
	p := NewParser()

	listings, err := p.ParseCatalogue([]byte(`{"listings": [{"id": "w-1", "title": "Wrapped"}]}`))
	if err != nil {
		t.Fatalf("ParseCatalogue() error = %v", err)
	}
	if len(listings) != 1 || listings[0].ID != "w-1" {
		t.Errorf("got %+v, want single w-1 listing", listings)
	}
}

func TestParseCatalogueInvalidPayload(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"wrong shape", `{"count": 3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings, err := p.ParseCatalogue([]byte(tt.data))
			if tt.name == "not json" && err == nil {
				t.Error("expected an error for a non-JSON payload")
			}
			if len(listings) != 0 {
				t.Errorf("got %d listings from invalid payload", len(listings))
			}
		})
	}
}
