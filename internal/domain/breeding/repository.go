package breeding

import "context"

type Repository interface {
	Create(ctx context.Context, r Record) error
	// ListByAnimal devuelve los servicios donde el animal es madre o padre.
	ListByAnimal(ctx context.Context, animalID string) ([]Record, error)
}
