package domain

// Category represents a browsable product category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Product represents a catalog product with its variant dimensions and
// rate table. Products come from static fixtures; there is no inventory
// or stock concept.
type Product struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	CategoryID  string              `json:"category_id"`
	Image       string              `json:"image,omitempty"`
	Description string              `json:"description,omitempty"`
	Dimensions  []string            `json:"dimensions,omitempty"`
	Options     map[string][]string `json:"options,omitempty"`
	Rates       any                 `json:"rates"`
}
