// Package pipeline runs a request through an ordered list of gates and a
// terminal handler. A gate either lets the request continue by returning nil
// or ends the chain with an error; the handler runs only when every gate
// passed, so each request has exactly one outcome.
package pipeline

import (
	"context"
	"errors"

	"github.com/grubdash-service/internal/logger"
	"go.uber.org/zap"
)

var ErrNoHandler = errors.New("pipeline: chain has no handler")

type Request struct {
	RouteID string
	Data    Payload
}

type Response struct {
	Status int
	Data   any
}

// State is what gates and the handler share while a request is in flight.
// Record and Index are set by the lookup gate.
type State[T any] struct {
	Ctx     context.Context
	Request Request
	Record  T
	Index   int
	Found   bool
}

type Gate[T any] func(s *State[T]) error

type Handler[T any] func(s *State[T]) (Response, error)

// Observer is told about every request a chain rejects.
type Observer func(chain string, err error)

type Chain[T any] struct {
	name     string
	gates    []Gate[T]
	handler  Handler[T]
	observer Observer
}

func New[T any](name string, gates ...Gate[T]) *Chain[T] {
	return &Chain[T]{name: name, gates: gates}
}

func (c *Chain[T]) Then(h Handler[T]) *Chain[T] {
	c.handler = h
	return c
}

func (c *Chain[T]) Observe(o Observer) *Chain[T] {
	c.observer = o
	return c
}

func (c *Chain[T]) Name() string {
	return c.name
}

func (c *Chain[T]) Len() int {
	return len(c.gates)
}

func (c *Chain[T]) Run(ctx context.Context, req Request) (Response, error) {
	if c.handler == nil {
		return Response{}, ErrNoHandler
	}
	if req.Data == nil {
		req.Data = Payload{}
	}

	state := &State[T]{Ctx: ctx, Request: req, Index: -1}
	for _, gate := range c.gates {
		if err := gate(state); err != nil {
			c.reject(ctx, err)
			return Response{}, err
		}
	}

	resp, err := c.handler(state)
	if err != nil {
		c.reject(ctx, err)
		return Response{}, err
	}
	return resp, nil
}

func (c *Chain[T]) reject(ctx context.Context, err error) {
	logger.FromContext(ctx).Debug("request rejected",
		zap.String("chain", c.name),
		zap.String("reason", err.Error()),
	)
	if c.observer != nil {
		c.observer(c.name, err)
	}
}
