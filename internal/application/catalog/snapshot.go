package catalog

import (
	"time"

	"github.com/AlexanderChic/abarroteria-192/internal/application/dto"
	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
)

// Snapshot devuelve una instantánea completa del catálogo (exportación). La
// mecánica de descarga es de la capa de vista; aquí solo se arma el valor.
func (c *Client) Snapshot() dto.Database {
	c.mu.RLock()
	defer c.mu.RUnlock()

	db := dto.Database{
		Categories: append([]entity.Category{}, c.categories...),
		Products:   append([]entity.Product{}, c.products...),
		Users:      append([]entity.User{}, c.users...),
		Metadata:   c.metadata,
	}
	db.Metadata.LastUpdated = time.Now()
	return db
}

// Restore reemplaza la caché completa con una base importada. Categorías y
// productos son obligatorios; usuarios ausentes se reponen con los por defecto.
func (c *Client) Restore(db dto.Database) error {
	if db.Categories == nil || db.Products == nil {
		return &domain.ValidationError{Messages: []string{
			"Formato de base de datos inválido: debe contener categorías y productos",
		}}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = markSyncedCategories(db.Categories)
	c.products = markSyncedProducts(db.Products)
	if len(db.Users) > 0 {
		c.users = db.Users
	} else {
		c.users = defaultUsers()
	}
	if db.Metadata.Version != "" {
		c.metadata = db.Metadata
	} else {
		c.metadata = newMetadata()
	}
	return nil
}
