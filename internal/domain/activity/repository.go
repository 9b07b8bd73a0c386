package activity

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, e Entry) error
	ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	Types []EntryType
	From  *time.Time
	To    *time.Time
	Query string
	Limit int
}
