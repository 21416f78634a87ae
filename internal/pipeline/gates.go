package pipeline

import (
	"errors"
	"fmt"

	"github.com/grubdash-service/internal/apperr"
	"github.com/grubdash-service/internal/repo"
)

// Exists locates the record named by the route id and attaches it to the
// state.
func Exists[T repo.Record](store repo.Store[T], resource string) Gate[T] {
	return func(s *State[T]) error {
		rec, idx, err := store.Find(s.Ctx, s.Request.RouteID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound(resource, s.Request.RouteID)
		}
		if err != nil {
			return err
		}
		s.Record, s.Index, s.Found = rec, idx, true
		return nil
	}
}

// Requires rejects a payload that does not carry field.
func Requires[T any](resource, field string) Gate[T] {
	return func(s *State[T]) error {
		if s.Request.Data.Has(field) {
			return nil
		}
		return apperr.BadRequest(field, fmt.Sprintf("%s must include a %s", resource, field))
	}
}

// Scalars rejects a payload where any of fields holds an object or a list.
// Missing fields pass; Requires decides whether they must be there.
func Scalars[T any](resource string, fields ...string) Gate[T] {
	return func(s *State[T]) error {
		for _, field := range fields {
			if s.Request.Data.Has(field) && !Scalar(s.Request.Data[field]) {
				return apperr.BadRequest(field, fmt.Sprintf("%s %s must be a string or a number", resource, field))
			}
		}
		return nil
	}
}

// IDMatches rejects a payload whose id differs from the route id. A payload
// without an id passes.
func IDMatches[T any](resource string) Gate[T] {
	return func(s *State[T]) error {
		if !s.Request.Data.Has("id") {
			return nil
		}
		id := s.Request.Data.String("id")
		if id == s.Request.RouteID {
			return nil
		}
		return apperr.BadRequest("id", fmt.Sprintf(
			"%s id does not match route id. %s: %s, Route: %s.",
			resource, resource, id, s.Request.RouteID,
		))
	}
}
