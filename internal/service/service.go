package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/grubdash-service/internal/events"
	"github.com/grubdash-service/internal/logger"
	"github.com/grubdash-service/internal/pipeline"
	"go.uber.org/zap"
)

// Event types published for record changes.
const (
	DishCreatedChannel  = "dish.created"
	DishUpdatedChannel  = "dish.updated"
	OrderCreatedChannel = "order.created"
	OrderUpdatedChannel = "order.updated"
	OrderDeletedChannel = "order.deleted"
)

// IDFunc allocates identifiers for new records.
type IDFunc func() string

func NewID() string {
	return uuid.New().String()
}

type Option func(*options)

type options struct {
	publisher events.Publisher
	nextID    IDFunc
	observer  pipeline.Observer
}

func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

func WithIDFunc(f IDFunc) Option {
	return func(o *options) { o.nextID = f }
}

// WithObserver registers a callback for every rejected request.
func WithObserver(obs pipeline.Observer) Option {
	return func(o *options) { o.observer = obs }
}

func newOptions(opts []Option) options {
	o := options{nextID: NewID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// publish announces a record change. A failed publish is logged and does not
// fail the request that caused it.
func (o options) publish(ctx context.Context, eventType, id string, record any) {
	if o.publisher == nil {
		return
	}
	log := logger.FromContext(ctx)
	event := events.NewEvent(eventType, id, logger.RequestID(ctx), record)
	if err := o.publisher.Publish(ctx, event); err != nil {
		log.Error("failed to publish event", zap.String("event", eventType), zap.String("id", id), zap.Error(err))
		return
	}
	log.Info("event published", zap.String("event", eventType), zap.String("id", id))
}
