package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// DefaultStoreName is used when the fiscal page carries no shop name
const DefaultStoreName = "Unknown Store"

// Store is a retail location receipts are issued by. Stores are unique by name.
type Store struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}

// NewStore creates a store with a fresh identifier
func NewStore(name, location string, createdAt time.Time) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrInvalidStore
	}

	return &Store{
		ID:        uuid.NewString(),
		Name:      name,
		Location:  strings.TrimSpace(location),
		CreatedAt: createdAt,
	}, nil
}

// StoreInfo is the best-effort store metadata scraped from a fiscal receipt page
type StoreInfo struct {
	Name     string
	Location string
	TaxID    string
}

// NewStoreInfo builds store metadata from the raw labels of a receipt page.
// Location is "address, city" or whichever of the two is present.
func NewStoreInfo(name, taxID, address, city string) StoreInfo {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultStoreName
	}

	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)

	var location string
	switch {
	case address != "" && city != "":
		location = address + ", " + city
	case address != "":
		location = address
	default:
		location = city
	}

	return StoreInfo{
		Name:     name,
		Location: location,
		TaxID:    strings.TrimSpace(taxID),
	}
}

// StoreSummary is the store part of a scan result
type StoreSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Summary returns the public view of the store
func (s *Store) Summary() *StoreSummary {
	return &StoreSummary{
		ID:       s.ID,
		Name:     s.Name,
		Location: s.Location,
	}
}
