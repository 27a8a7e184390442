package repository

import "context"

// Colecciones expuestas por el servicio de persistencia. Cada una es un conjunto
// de registros JSON identificados por id opaco; metadata es un registro singleton.
const (
	CollectionCategories = "categories"
	CollectionProducts   = "products"
	CollectionUsers      = "users"
	CollectionOrders     = "orders"
	CollectionMetadata   = "metadata"
)

// RecordStore define el puerto hacia el almacén de registros REST genérico (DIP).
// El almacén no tiene lógica de negocio: solo CRUD por colección. Toda falla de
// red o estado no exitoso se reporta como domain.ErrRemoteUnavailable (salvo el
// 404 de Get, que es domain.ErrNotFound); la política de fallback local vive en
// el cliente de catálogo, no aquí.
type RecordStore interface {
	// List decodifica la colección completa en out (puntero a slice).
	List(ctx context.Context, collection string, out any) error
	// Get decodifica el registro id en out; domain.ErrNotFound si no existe.
	Get(ctx context.Context, collection, id string, out any) error
	// Create envía record (POST) y decodifica en out la versión devuelta por el
	// servidor, que puede traer campos asignados por él.
	Create(ctx context.Context, collection string, record, out any) error
	// Replace reemplaza el registro completo (PUT) y decodifica el eco en out.
	Replace(ctx context.Context, collection, id string, record, out any) error
	// Patch fusiona campos parciales (PATCH) y decodifica el resultado en out.
	Patch(ctx context.Context, collection, id string, fields, out any) error
	// Delete elimina el registro.
	Delete(ctx context.Context, collection, id string) error

	// GetSingleton y ReplaceSingleton operan sobre colecciones de registro único
	// (metadata), direccionadas sin id.
	GetSingleton(ctx context.Context, collection string, out any) error
	ReplaceSingleton(ctx context.Context, collection string, record any) error

	// Health sondeo ligero de alcanzabilidad. Solo alimenta el indicador de
	// estado de la UI; nunca condiciona operaciones funcionales.
	Health(ctx context.Context) bool
}
