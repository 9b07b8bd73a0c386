package animals

import (
	"context"

	"farm-livestock-records/internal/domain/lifecycle"
)

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, filter ListFilter) ([]Animal, error)
}

type ListFilter struct {
	Species []lifecycle.Species
	// Query busca en caravana y nombre.
	Query string
	// Limit 0 = sin límite (lo usa el barrido de recordatorios).
	Limit int
}
