package models

// ImportRow is one parsed CSV line. Invalid rows are retained so the
// preview can display them alongside their reasons.
type ImportRow struct {
	Dish  Dish   `json:"dish"`
	Error string `json:"error,omitempty"`
}

func (r ImportRow) Valid() bool {
	return r.Error == ""
}

// ImportPreview is the staged result of a CSV upload, held in the admin
// session between the preview and the confirm/cancel step. Errors starts
// with global notices (e.g. preview truncation) followed by per-row
// messages carrying 1-based file line numbers.
type ImportPreview struct {
	Total  int         `json:"total"`
	Valid  int         `json:"valid"`
	Errors []string    `json:"errors,omitempty"`
	Rows   []ImportRow `json:"rows"`
}

// ValidRows returns the importable dishes in file order.
func (p ImportPreview) ValidRows() []Dish {
	dishes := make([]Dish, 0, p.Valid)
	for _, row := range p.Rows {
		if row.Valid() {
			dishes = append(dishes, row.Dish)
		}
	}
	return dishes
}
