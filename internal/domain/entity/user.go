package entity

import "time"

// Tipos válidos de usuario.
const (
	UserTypeAdmin  = "admin"
	UserTypeClient = "client"
	UserTypeGuest  = "guest"
)

// User usuario del sistema, usado solo para el lookup de login.
// La contraseña viaja y se compara en texto plano contra el almacén de registros;
// el endurecimiento de autenticación está fuera del alcance de esta aplicación.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password,omitempty"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// WithoutPassword devuelve una copia sin la contraseña, apta para retener en
// memoria o persistir en la sesión.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
