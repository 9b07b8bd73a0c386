package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	GetByID(ctx context.Context, id string) (Treatment, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Treatment, error)

	AddCheckup(ctx context.Context, c Checkup) error
	// ListCheckups devuelve los chequeos ordenados por fecha ascendente.
	ListCheckups(ctx context.Context, treatmentID string) ([]Checkup, error)
}
