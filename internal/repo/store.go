package repo

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrOutOfRange = errors.New("index out of range")
	ErrEmptyID    = errors.New("record has no id")
)

type Record interface {
	Identifier() string
}

// Store is an ordered collection of records. Find hands out the stored
// record itself, so callers holding it mutate the collection in place.
type Store[T Record] interface {
	Find(ctx context.Context, id string) (T, int, error)
	Insert(ctx context.Context, rec T) error
	RemoveAt(ctx context.Context, index int) error
	All(ctx context.Context) ([]T, error)
}
