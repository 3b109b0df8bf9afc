package domain

// Category groups courses. Name is the natural key.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategory creates a Category with a normalized name.
func NewCategory(name string) (*Category, error) {
	category := &Category{
		Name: NormalizeName(name),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}
