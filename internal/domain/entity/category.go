package entity

import "time"

// Category representa una categoría del catálogo con sus subcategorías ordenadas.
// El nombre es único sin distinguir mayúsculas; la unicidad se valida al escribir.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Subcategories []string  `json:"subcategories"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Synced indica si la última escritura llegó al servicio de persistencia.
	// false = escritura local pendiente (fallback). No viaja en el wire.
	Synced bool `json:"-"`
}
