package repository

// Claves de sesión conocidas.
const (
	SessionKeyCart        = "guestCart"
	SessionKeyCurrentUser = "currentUser"
)

// SessionStore define el puerto de almacenamiento local de sesión (análogo al
// localStorage del navegador): un valor JSON por clave, sin expiración.
type SessionStore interface {
	// Get decodifica el valor de key en out. Devuelve false si la clave no existe.
	Get(key string, out any) (bool, error)
	// Put serializa value y lo guarda bajo key de forma durable.
	Put(key string, value any) error
	// Delete elimina la clave; no-op si no existe.
	Delete(key string) error
}
