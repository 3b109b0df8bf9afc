package domain

// Course is something a user can subscribe to and study.
// Name is the natural key; CategoryID references a Category.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

// NewCourse creates a Course with a normalized name under categoryID.
func NewCourse(name string, categoryID int64) (*Course, error) {
	course := &Course{
		Name:       NormalizeName(name),
		CategoryID: categoryID,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.CategoryID <= 0 {
		return NewValidationError("category_id", "must reference a category", ErrInvalidID)
	}
	return nil
}
