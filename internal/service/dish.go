package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/grubdash-service/internal/apperr"
	"github.com/grubdash-service/internal/logger"
	"github.com/grubdash-service/internal/model"
	"github.com/grubdash-service/internal/pipeline"
	"github.com/grubdash-service/internal/repo"
	"go.uber.org/zap"
)

const dishNoun = "Dish"

type dishState = pipeline.State[*model.Dish]

// DishService runs dish requests through their chains one at a time.
type DishService struct {
	mu    sync.Mutex
	store repo.Store[*model.Dish]
	opts  options

	list   *pipeline.Chain[*model.Dish]
	create *pipeline.Chain[*model.Dish]
	read   *pipeline.Chain[*model.Dish]
	update *pipeline.Chain[*model.Dish]
}

func NewDishService(store repo.Store[*model.Dish], opts ...Option) *DishService {
	s := &DishService{store: store, opts: newOptions(opts)}

	s.list = pipeline.New[*model.Dish]("dishes.list").Then(s.listDishes)
	s.create = pipeline.New("dishes.create",
		pipeline.Requires[*model.Dish](dishNoun, "name"),
		pipeline.Requires[*model.Dish](dishNoun, "description"),
		pipeline.Requires[*model.Dish](dishNoun, "image_url"),
		pipeline.Requires[*model.Dish](dishNoun, "price"),
		pipeline.Scalars[*model.Dish](dishNoun, "name", "description", "image_url"),
		priceIsValid,
	).Then(s.createDish)
	s.read = pipeline.New("dishes.read",
		pipeline.Exists(store, dishNoun),
	).Then(s.readDish)
	s.update = pipeline.New("dishes.update",
		pipeline.Exists(store, dishNoun),
		pipeline.Requires[*model.Dish](dishNoun, "name"),
		pipeline.Requires[*model.Dish](dishNoun, "description"),
		pipeline.Requires[*model.Dish](dishNoun, "image_url"),
		pipeline.Scalars[*model.Dish](dishNoun, "id", "name", "description", "image_url"),
		priceIsValid,
		pipeline.IDMatches[*model.Dish](dishNoun),
	).Then(s.updateDish)

	for _, c := range []*pipeline.Chain[*model.Dish]{s.list, s.create, s.read, s.update} {
		c.Observe(s.opts.observer)
	}
	return s
}

// List returns every dish, or only the dish with id when id is not empty.
func (s *DishService) List(ctx context.Context, id string) (pipeline.Response, error) {
	return s.run(ctx, s.list, pipeline.Request{RouteID: id})
}

func (s *DishService) Create(ctx context.Context, data pipeline.Payload) (pipeline.Response, error) {
	return s.run(ctx, s.create, pipeline.Request{Data: data})
}

func (s *DishService) Read(ctx context.Context, id string) (pipeline.Response, error) {
	return s.run(ctx, s.read, pipeline.Request{RouteID: id})
}

func (s *DishService) Update(ctx context.Context, id string, data pipeline.Payload) (pipeline.Response, error) {
	return s.run(ctx, s.update, pipeline.Request{RouteID: id, Data: data})
}

func (s *DishService) run(ctx context.Context, c *pipeline.Chain[*model.Dish], req pipeline.Request) (pipeline.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.Run(ctx, req)
}

func priceIsValid(st *dishState) error {
	if price, ok := st.Request.Data.Integer("price"); ok && price > 0 {
		return nil
	}
	return apperr.BadRequest("price", "Dish must have a price that is an integer greater than 0")
}

func (s *DishService) listDishes(st *dishState) (pipeline.Response, error) {
	all, err := s.store.All(st.Ctx)
	if err != nil {
		return pipeline.Response{}, err
	}
	dishes := make([]model.Dish, 0, len(all))
	for _, d := range all {
		if st.Request.RouteID != "" && d.ID != st.Request.RouteID {
			continue
		}
		dishes = append(dishes, d.Clone())
	}
	return pipeline.Response{Status: http.StatusOK, Data: dishes}, nil
}

func (s *DishService) createDish(st *dishState) (pipeline.Response, error) {
	data := st.Request.Data
	price, _ := data.Integer("price")
	dish := &model.Dish{
		ID:          s.opts.nextID(),
		Name:        data.String("name"),
		Description: data.String("description"),
		Price:       price,
		ImageURL:    data.String("image_url"),
	}

	if err := s.store.Insert(st.Ctx, dish); err != nil {
		logger.FromContext(st.Ctx).Error("failed to store dish", zap.Error(err))
		return pipeline.Response{}, err
	}
	logger.FromContext(st.Ctx).Info("dish created", zap.String("dish_id", dish.ID))

	snapshot := dish.Clone()
	s.opts.publish(st.Ctx, DishCreatedChannel, dish.ID, snapshot)
	return pipeline.Response{Status: http.StatusCreated, Data: snapshot}, nil
}

func (s *DishService) readDish(st *dishState) (pipeline.Response, error) {
	return pipeline.Response{Status: http.StatusOK, Data: st.Record.Clone()}, nil
}

func (s *DishService) updateDish(st *dishState) (pipeline.Response, error) {
	data := st.Request.Data
	dish := st.Record
	price, _ := data.Integer("price")

	dish.Name = data.String("name")
	dish.Description = data.String("description")
	dish.Price = price
	dish.ImageURL = data.String("image_url")

	logger.FromContext(st.Ctx).Info("dish updated", zap.String("dish_id", dish.ID))

	snapshot := dish.Clone()
	s.opts.publish(st.Ctx, DishUpdatedChannel, dish.ID, snapshot)
	return pipeline.Response{Status: http.StatusOK, Data: snapshot}, nil
}
