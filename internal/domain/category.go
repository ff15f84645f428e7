package domain

// Category описывает категорию товара
type Category struct {
	ID          string // uuid
	Name        string
	Slug        string
	Description *string
}

func NewCategory(id, name, slug string, description *string) *Category {
	return &Category{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Description: description,
	}
}
