package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingUpdater struct {
	calls []StatusMessage
	err   error
}

func (r *recordingUpdater) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	r.calls = append(r.calls, StatusMessage{ID: id, Status: status})
	return r.err
}

func TestConsumerHandle(t *testing.T) {
	updater := &recordingUpdater{}
	c := NewConsumer(nil, updater, zap.NewNop())

	err := c.handle(context.Background(), `{"id":"42","status":"preparing"}`)
	require.NoError(t, err)
	assert.Equal(t, []StatusMessage{{ID: "42", Status: "preparing"}}, updater.calls)
}

func TestConsumerHandleRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `preparing`},
		{name: "no id", payload: `{"status":"preparing"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updater := &recordingUpdater{}
			c := NewConsumer(nil, updater, zap.NewNop())

			assert.Error(t, c.handle(context.Background(), tt.payload))
			assert.Empty(t, updater.calls)
		})
	}
}

func TestConsumerHandlePropagatesUpdaterError(t *testing.T) {
	updater := &recordingUpdater{err: errors.New("A delivered order cannot be changed")}
	c := NewConsumer(nil, updater, zap.NewNop())

	err := c.handle(context.Background(), `{"id":"7","status":"pending"}`)
	assert.EqualError(t, err, "A delivered order cannot be changed")
}
