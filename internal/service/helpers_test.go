package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/grubdash-service/internal/events"
	"github.com/grubdash-service/internal/model"
	"github.com/grubdash-service/internal/repo"
)


type mockPublisher struct {
	published []events.Event
	err       error
	mu        sync.Mutex
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) sent() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.published...)
}

func (m *mockPublisher) channels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.published))
	for i, p := range m.published {
		out[i] = p.Type
	}
	return out
}

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func seededOrders() *repo.MemoryStore[*model.Order] {
	return repo.NewMemoryStore(
		&model.Order{
			ID:           "1",
			DeliverTo:    "1 Main St",
			MobileNumber: "555-0100",
			Status:       model.StatusPending,
			Dishes:       []model.OrderDish{{"id": "d1", "name": "Taco", "price": 5, "quantity": 2}},
		},
		&model.Order{
			ID:           "7",
			DeliverTo:    "7 Elm St",
			MobileNumber: "555-0107",
			Status:       model.StatusDelivered,
			Dishes:       []model.OrderDish{{"id": "d2", "quantity": 1}},
		},
		&model.Order{
			ID:           "9",
			DeliverTo:    "9 Oak St",
			MobileNumber: "555-0109",
			Status:       model.StatusPreparing,
			Dishes:       []model.OrderDish{{"id": "d1", "quantity": 3}},
		},
	)
}
