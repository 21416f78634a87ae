// Package seed loads the records a fresh process starts with. The file is
// YAML; JSON is accepted as well since it is a subset.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/grubdash-service/internal/model"
	"github.com/grubdash-service/internal/pipeline"
	"github.com/grubdash-service/internal/repo"
	"gopkg.in/yaml.v3"
)

type Data struct {
	Dishes []model.Dish  `yaml:"dishes"`
	Orders []model.Order `yaml:"orders"`
}

func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if err := data.validate(); err != nil {
		return Data{}, fmt.Errorf("seed file %s: %w", path, err)
	}
	return data, nil
}

func (d Data) validate() error {
	seen := make(map[string]bool)
	for i, dish := range d.Dishes {
		if dish.ID == "" {
			return fmt.Errorf("dish %d has no id", i)
		}
		if seen["dish/"+dish.ID] {
			return fmt.Errorf("duplicate dish id %s", dish.ID)
		}
		seen["dish/"+dish.ID] = true
		if dish.Price <= 0 {
			return fmt.Errorf("dish %s must have a price greater than 0", dish.ID)
		}
	}
	for i, order := range d.Orders {
		if order.ID == "" {
			return fmt.Errorf("order %d has no id", i)
		}
		if seen["order/"+order.ID] {
			return fmt.Errorf("duplicate order id %s", order.ID)
		}
		seen["order/"+order.ID] = true
		if !order.Status.Valid() {
			return fmt.Errorf("order %s has invalid status %q", order.ID, order.Status)
		}
		if len(order.Dishes) == 0 {
			return fmt.Errorf("order %s has no dishes", order.ID)
		}
		for j, line := range order.Dishes {
			if qty, ok := pipeline.Integer(line["quantity"]); !ok || qty <= 0 {
				return fmt.Errorf("order %s dish %d must have a quantity greater than 0", order.ID, j)
			}
			if line.DishID() == "" {
				return fmt.Errorf("order %s dish %d has no dish id", order.ID, j)
			}
		}
	}
	return nil
}

// Apply inserts the seed records into the stores.
func (d Data) Apply(ctx context.Context, dishes repo.Store[*model.Dish], orders repo.Store[*model.Order]) error {
	for i := range d.Dishes {
		dish := d.Dishes[i]
		if err := dishes.Insert(ctx, &dish); err != nil {
			return fmt.Errorf("seed dish %s: %w", dish.ID, err)
		}
	}
	for i := range d.Orders {
		order := d.Orders[i].Clone()
		if err := orders.Insert(ctx, &order); err != nil {
			return fmt.Errorf("seed order %s: %w", order.ID, err)
		}
	}
	return nil
}
