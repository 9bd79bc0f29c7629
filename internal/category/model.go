package category

type Category struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ProductCount  int      `json:"productCount"`
	Subcategories []string `json:"subcategories"`
}

// UpdateParams is a partial category update; nil pointers keep stored values.
type UpdateParams struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	ProductCount  *int      `json:"productCount"`
	Subcategories *[]string `json:"subcategories"`
}
