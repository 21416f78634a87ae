package model

type Dish struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       int    `json:"price" yaml:"price"`
	ImageURL    string `json:"image_url" yaml:"image_url"`
}

func (d *Dish) Identifier() string {
	return d.ID
}

func (d *Dish) Clone() Dish {
	return *d
}
