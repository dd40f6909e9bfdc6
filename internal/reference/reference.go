// Package reference manages the privilege and publisher-type lookup tables.
// Both are tiny, seeded idempotently at startup, and safe to reload freely.
package reference

import (
	"context"

	"secretario/internal/publisher"
)

// Entry is one lookup row. ID matches the typed domain constant it encodes.
type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Store is the persistence boundary for the lookup tables.
type Store interface {
	SeedDefaults(ctx context.Context) error
	ListPrivileges(ctx context.Context) ([]Entry, error)
	ListPublisherTypes(ctx context.Context) ([]Entry, error)
}

// The canonical rows mirror the domain enums; the tables exist so imported
// spreadsheets and external reports can join on stable ids.
func defaultPrivileges() []Entry {
	return []Entry{
		{ID: int(publisher.PrivilegeElder), Name: publisher.PrivilegeElder.Label()},
		{ID: int(publisher.PrivilegeMinisterialServant), Name: publisher.PrivilegeMinisterialServant.Label()},
	}
}

func defaultPublisherTypes() []Entry {
	return []Entry{
		{ID: int(publisher.TypePublisher), Name: publisher.TypePublisher.Label()},
		{ID: int(publisher.TypeRegularPioneer), Name: publisher.TypeRegularPioneer.Label()},
		{ID: int(publisher.TypeAuxiliaryPioneer), Name: publisher.TypeAuxiliaryPioneer.Label()},
	}
}
