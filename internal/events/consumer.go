package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StatusUpdater applies a status change coming from the kitchen.
type StatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, id string, status string) error
}

// StatusMessage is published by the kitchen when an order moves along.
type StatusMessage struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Consumer struct {
	client  *redis.Client
	updater StatusUpdater
	log     *zap.Logger
}

func NewConsumer(client *redis.Client, updater StatusUpdater, log *zap.Logger) *Consumer {
	return &Consumer{client: client, updater: updater, log: log}
}

// Subscribe blocks until ctx is cancelled or the subscription is closed.
func (c *Consumer) Subscribe(ctx context.Context, channel string) {
	sub := c.client.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()

	c.log.Info("subscribed to channel", zap.String("channel", channel))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := c.handle(ctx, msg.Payload); err != nil {
				c.log.Warn("status message rejected",
					zap.String("channel", msg.Channel),
					zap.String("payload", msg.Payload),
					zap.Error(err),
				)
			}
		}
	}
}

func (c *Consumer) handle(ctx context.Context, payload string) error {
	var msg StatusMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return fmt.Errorf("decode status message: %w", err)
	}
	if msg.ID == "" {
		return errors.New("status message has no order id")
	}

	if err := c.updater.UpdateOrderStatus(ctx, msg.ID, msg.Status); err != nil {
		return err
	}
	c.log.Info("order status updated", zap.String("order_id", msg.ID), zap.String("status", msg.Status))
	return nil
}
