package entity

import "time"

// Metadata registro singleton del almacén: versión del esquema y marcas de tiempo.
// Se toca (best effort) después de cada mutación remota exitosa del catálogo.
type Metadata struct {
	Version     string    `json:"version"`
	Created     time.Time `json:"created"`
	LastUpdated time.Time `json:"lastUpdated"`
}
