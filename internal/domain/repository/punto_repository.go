package repository

import (
	"context"

	"github.com/orekiez/pudu-field/internal/domain"
)

// PuntoRepository is the contract against the remote collection
// resource. Every call is single shot: no retries, no backoff. A
// failure is returned once and the caller decides what it means.
type PuntoRepository interface {
	// List returns every point the server knows about.
	List(ctx context.Context) ([]domain.Punto, error)

	// Create persists a draft without identity and returns the stored
	// record, server-assigned fields included.
	Create(ctx context.Context, draft domain.Punto) (*domain.Punto, error)

	// Update replaces the identified record. Re-sending the same draft
	// is safe.
	Update(ctx context.Context, id int64, draft domain.Punto) (*domain.Punto, error)

	// Delete removes the identified record.
	Delete(ctx context.Context, id int64) error
}
