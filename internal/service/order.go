package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/grubdash-service/internal/apperr"
	"github.com/grubdash-service/internal/logger"
	"github.com/grubdash-service/internal/model"
	"github.com/grubdash-service/internal/pipeline"
	"github.com/grubdash-service/internal/repo"
	"go.uber.org/zap"
)

const orderNoun = "Order"

type orderState = pipeline.State[*model.Order]

// OrderService runs order requests through their chains one at a time.
type OrderService struct {
	mu    sync.Mutex
	store repo.Store[*model.Order]
	opts  options

	list         *pipeline.Chain[*model.Order]
	create       *pipeline.Chain[*model.Order]
	read         *pipeline.Chain[*model.Order]
	update       *pipeline.Chain[*model.Order]
	destroy      *pipeline.Chain[*model.Order]
	updateStatus *pipeline.Chain[*model.Order]
}

func NewOrderService(store repo.Store[*model.Order], opts ...Option) *OrderService {
	s := &OrderService{store: store, opts: newOptions(opts)}

	s.list = pipeline.New[*model.Order]("orders.list").Then(s.listOrders)
	s.create = pipeline.New("orders.create",
		pipeline.Requires[*model.Order](orderNoun, "deliverTo"),
		pipeline.Requires[*model.Order](orderNoun, "mobileNumber"),
		pipeline.Requires[*model.Order](orderNoun, "dishes"),
		pipeline.Scalars[*model.Order](orderNoun, "deliverTo", "mobileNumber"),
		dishesIsList,
		quantitiesAreValid,
	).Then(s.createOrder)
	s.read = pipeline.New("orders.read",
		pipeline.Exists(store, orderNoun),
	).Then(s.readOrder)
	s.update = pipeline.New("orders.update",
		pipeline.Exists(store, orderNoun),
		pipeline.Requires[*model.Order](orderNoun, "deliverTo"),
		pipeline.Requires[*model.Order](orderNoun, "status"),
		pipeline.Requires[*model.Order](orderNoun, "mobileNumber"),
		pipeline.Requires[*model.Order](orderNoun, "dishes"),
		pipeline.Scalars[*model.Order](orderNoun, "id", "deliverTo", "mobileNumber"),
		dishesIsList,
		quantitiesAreValid,
		statusNotDelivered,
		statusIsValid,
		pipeline.IDMatches[*model.Order](orderNoun),
	).Then(s.updateOrder)
	s.destroy = pipeline.New("orders.delete",
		pipeline.Exists(store, orderNoun),
		statusIsPending,
	).Then(s.deleteOrder)
	s.updateStatus = pipeline.New("orders.status",
		pipeline.Exists(store, orderNoun),
		pipeline.Requires[*model.Order](orderNoun, "status"),
		statusNotDelivered,
		statusIsValid,
	).Then(s.setStatus)

	for _, c := range []*pipeline.Chain[*model.Order]{s.list, s.create, s.read, s.update, s.destroy, s.updateStatus} {
		c.Observe(s.opts.observer)
	}
	return s
}

// List returns every order, or only the order with id when id is not empty.
func (s *OrderService) List(ctx context.Context, id string) (pipeline.Response, error) {
	return s.run(ctx, s.list, pipeline.Request{RouteID: id})
}

func (s *OrderService) Create(ctx context.Context, data pipeline.Payload) (pipeline.Response, error) {
	return s.run(ctx, s.create, pipeline.Request{Data: data})
}

func (s *OrderService) Read(ctx context.Context, id string) (pipeline.Response, error) {
	return s.run(ctx, s.read, pipeline.Request{RouteID: id})
}

func (s *OrderService) Update(ctx context.Context, id string, data pipeline.Payload) (pipeline.Response, error) {
	return s.run(ctx, s.update, pipeline.Request{RouteID: id, Data: data})
}

func (s *OrderService) Delete(ctx context.Context, id string) (pipeline.Response, error) {
	return s.run(ctx, s.destroy, pipeline.Request{RouteID: id})
}

// UpdateOrderStatus moves an order to status under the same rules as a full
// update. It is driven by the kitchen status feed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	_, err := s.run(ctx, s.updateStatus, pipeline.Request{
		RouteID: id,
		Data:    pipeline.Payload{"status": status},
	})
	return err
}

func (s *OrderService) run(ctx context.Context, c *pipeline.Chain[*model.Order], req pipeline.Request) (pipeline.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.Run(ctx, req)
}

func dishesIsList(st *orderState) error {
	if list, ok := st.Request.Data.List("dishes"); ok && len(list) > 0 {
		return nil
	}
	return apperr.BadRequest("dishes", "Order must include at least one dish.")
}

// quantitiesAreValid reports the first line whose quantity is missing or not
// a positive integer.
func quantitiesAreValid(st *orderState) error {
	list, _ := st.Request.Data.List("dishes")
	for i, item := range list {
		line, ok := pipeline.Object(item)
		if ok {
			if qty, isInt := line.Integer("quantity"); isInt && qty > 0 {
				continue
			}
		}
		return apperr.BadRequest("quantity",
			fmt.Sprintf("Dish %d must have a quantity that is an integer greater than 0", i))
	}
	return nil
}

func statusNotDelivered(st *orderState) error {
	if st.Record.Status.Final() {
		return apperr.BadRequest("status", "A delivered order cannot be changed")
	}
	return nil
}

func statusIsValid(st *orderState) error {
	if model.Status(st.Request.Data.String("status")).Valid() {
		return nil
	}
	return apperr.BadRequest("status", "Order must have a status of "+model.StatusList())
}

func statusIsPending(st *orderState) error {
	if st.Record.Status != model.StatusPending {
		return apperr.BadRequest("status", "An order cannot be deleted unless it is pending.")
	}
	return nil
}

// orderLines copies validated dish lines as the client sent them.
func orderLines(data pipeline.Payload) []model.OrderDish {
	list, _ := data.List("dishes")
	lines := make([]model.OrderDish, 0, len(list))
	for _, item := range list {
		line, _ := pipeline.Object(item)
		lines = append(lines, model.OrderDish(line).Clone())
	}
	return lines
}

func (s *OrderService) listOrders(st *orderState) (pipeline.Response, error) {
	all, err := s.store.All(st.Ctx)
	if err != nil {
		return pipeline.Response{}, err
	}
	orders := make([]model.Order, 0, len(all))
	for _, o := range all {
		if st.Request.RouteID != "" && o.ID != st.Request.RouteID {
			continue
		}
		orders = append(orders, o.Clone())
	}
	return pipeline.Response{Status: http.StatusOK, Data: orders}, nil
}

func (s *OrderService) createOrder(st *orderState) (pipeline.Response, error) {
	data := st.Request.Data
	order := &model.Order{
		ID:           s.opts.nextID(),
		DeliverTo:    data.String("deliverTo"),
		MobileNumber: data.String("mobileNumber"),
		Status:       model.StatusPending,
		Dishes:       orderLines(data),
	}

	if err := s.store.Insert(st.Ctx, order); err != nil {
		logger.FromContext(st.Ctx).Error("failed to store order", zap.Error(err))
		return pipeline.Response{}, err
	}
	logger.FromContext(st.Ctx).Info("order created", zap.String("order_id", order.ID))

	snapshot := order.Clone()
	s.opts.publish(st.Ctx, OrderCreatedChannel, order.ID, snapshot)
	return pipeline.Response{Status: http.StatusCreated, Data: snapshot}, nil
}

func (s *OrderService) readOrder(st *orderState) (pipeline.Response, error) {
	return pipeline.Response{Status: http.StatusOK, Data: st.Record.Clone()}, nil
}

func (s *OrderService) updateOrder(st *orderState) (pipeline.Response, error) {
	data := st.Request.Data
	order := st.Record

	order.DeliverTo = data.String("deliverTo")
	order.MobileNumber = data.String("mobileNumber")
	order.Status = model.Status(data.String("status"))
	order.Dishes = orderLines(data)

	logger.FromContext(st.Ctx).Info("order updated",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status.String()),
	)

	snapshot := order.Clone()
	s.opts.publish(st.Ctx, OrderUpdatedChannel, order.ID, snapshot)
	return pipeline.Response{Status: http.StatusOK, Data: snapshot}, nil
}

func (s *OrderService) deleteOrder(st *orderState) (pipeline.Response, error) {
	snapshot := st.Record.Clone()
	if err := s.store.RemoveAt(st.Ctx, st.Index); err != nil {
		logger.FromContext(st.Ctx).Error("failed to delete order", zap.String("order_id", snapshot.ID), zap.Error(err))
		return pipeline.Response{}, err
	}
	logger.FromContext(st.Ctx).Info("order deleted", zap.String("order_id", snapshot.ID))

	s.opts.publish(st.Ctx, OrderDeletedChannel, snapshot.ID, snapshot)
	return pipeline.Response{Status: http.StatusNoContent}, nil
}

func (s *OrderService) setStatus(st *orderState) (pipeline.Response, error) {
	order := st.Record
	order.Status = model.Status(st.Request.Data.String("status"))

	snapshot := order.Clone()
	s.opts.publish(st.Ctx, OrderUpdatedChannel, order.ID, snapshot)
	return pipeline.Response{Status: http.StatusOK, Data: snapshot}, nil
}
