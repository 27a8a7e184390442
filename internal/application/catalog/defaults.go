package catalog

import (
	"time"

	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
)

// seedDefaults puebla la caché con el dataset incorporado cuando el almacén
// remoto no responde en la carga inicial. Es un fallback requerido, no un error:
// la tienda abre aunque el servidor esté caído.
func (c *Client) seedDefaults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = defaultCategories()
	c.products = nil
	c.users = defaultUsers()
	c.metadata = newMetadata()
}

func defaultCategories() []entity.Category {
	now := time.Now()
	return []entity.Category{
		{
			ID:            "1",
			Name:          "Abarrotes",
			Description:   "Productos básicos de despensa",
			Subcategories: []string{"Cereales", "Enlatados", "Condimentos", "Pastas"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "2",
			Name:          "Bebidas",
			Description:   "Bebidas refrescantes y alcohólicas",
			Subcategories: []string{"Refrescos", "Jugos", "Agua", "Cervezas"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "3",
			Name:          "Lácteos",
			Description:   "Productos lácteos y derivados",
			Subcategories: []string{"Leche", "Yogurt", "Quesos", "Mantequilla"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "4",
			Name:          "Limpieza",
			Description:   "Productos de limpieza para el hogar",
			Subcategories: []string{"Detergentes", "Jabones", "Desinfectantes", "Papel"},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

func defaultUsers() []entity.User {
	now := time.Now()
	return []entity.User{
		{
			ID:        "1",
			Username:  "admin",
			Password:  "admin123",
			Type:      entity.UserTypeAdmin,
			Name:      "Administrador",
			Email:     "admin@abarroteria.com",
			CreatedAt: now,
		},
		{
			ID:        "2",
			Username:  "cliente",
			Password:  "cliente123",
			Type:      entity.UserTypeClient,
			Name:      "Cliente Demo",
			Email:     "cliente@email.com",
			CreatedAt: now,
		},
	}
}
