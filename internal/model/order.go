package model

type Order struct {
	ID           string      `json:"id" yaml:"id"`
	DeliverTo    string      `json:"deliverTo" yaml:"deliverTo"`
	MobileNumber string      `json:"mobileNumber" yaml:"mobileNumber"`
	Status       Status      `json:"status" yaml:"status"`
	Dishes       []OrderDish `json:"dishes" yaml:"dishes"`
}

// OrderDish is a line of an order, kept exactly as the client sent it. Only
// the quantity is validated; the dish reference and any copied dish fields
// are stored untouched.
type OrderDish map[string]any

// DishID returns the dish the line refers to, read from "dishId" or "id".
func (d OrderDish) DishID() string {
	for _, key := range []string{"dishId", "id"} {
		if s, ok := d[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Clone returns a copy of the line that shares no memory with d.
func (d OrderDish) Clone() OrderDish {
	if d == nil {
		return nil
	}
	return OrderDish(cloneMap(d))
}

func (o *Order) Identifier() string {
	return o.ID
}

// Clone returns a copy that shares no memory with o.
func (o *Order) Clone() Order {
	c := *o
	c.Dishes = nil
	if o.Dishes != nil {
		c.Dishes = make([]OrderDish, len(o.Dishes))
		for i, line := range o.Dishes {
			c.Dishes[i] = line.Clone()
		}
	}
	return c
}

func cloneMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		c := make([]any, len(t))
		for i, item := range t {
			c[i] = cloneValue(item)
		}
		return c
	default:
		return v
	}
}
