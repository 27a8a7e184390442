package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexanderChic/abarroteria-192/internal/application/dto"
	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
)

// Categories devuelve una copia de las categorías en orden de carga.
func (c *Client) Categories() []entity.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryByID busca una categoría por id.
func (c *Client) CategoryByID(id string) (entity.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return entity.Category{}, false
}

// IsCategoryNameUnique compara el nombre contra todas las categorías sin
// distinguir mayúsculas, excluyendo excludeID (la categoría en edición).
func (c *Client) IsCategoryNameUnique(name, excludeID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.ID != excludeID && strings.EqualFold(cat.Name, name) {
			return false
		}
	}
	return true
}

// CreateCategory valida, asigna id y marcas de tiempo e intenta la creación
// remota. Si el almacén responde, la versión del servidor gana (puede traer
// campos asignados por él); si no, la entidad construida localmente entra a la
// caché marcada como no sincronizada.
func (c *Client) CreateCategory(ctx context.Context, in dto.CreateCategoryInput) (entity.Category, error) {
	errs := ValidateCategory(in)
	if !c.IsCategoryNameUnique(in.Name, "") {
		errs = append(errs, msgCategoryNameTaken)
	}
	if len(errs) > 0 {
		return entity.Category{}, &domain.ValidationError{Messages: errs}
	}

	now := time.Now()
	cat := entity.Category{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Subcategories: in.Subcategories,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var saved entity.Category
	synced := c.applyRemote("crear categoría", func() error {
		return c.store.Create(ctx, repository.CollectionCategories, cat, &saved)
	})
	if synced {
		cat = saved
	}
	cat.Synced = synced

	c.mu.Lock()
	c.categories = append(c.categories, cat)
	c.mu.Unlock()

	if synced {
		c.touchMetadata(ctx)
	}
	return cat, nil
}

// UpdateCategory fusiona el patch sobre la categoría existente campo por campo y
// sube updatedAt. Devuelve nil si el id no existe. Misma política de fallback
// que la creación: la escritura local ocurre con o sin eco del servidor.
func (c *Client) UpdateCategory(ctx context.Context, id string, patch dto.CategoryPatch) (*entity.Category, error) {
	c.mu.RLock()
	idx := -1
	var cat entity.Category
	for i := range c.categories {
		if c.categories[i].ID == id {
			idx, cat = i, c.categories[i]
			break
		}
	}
	c.mu.RUnlock()
	if idx == -1 {
		return nil, nil
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, &domain.ValidationError{Messages: []string{msgCategoryNameRequired}}
		}
		if !c.IsCategoryNameUnique(name, id) {
			return nil, &domain.ValidationError{Messages: []string{msgCategoryNameTaken}}
		}
		cat.Name = name
	}
	if patch.Description != nil {
		cat.Description = *patch.Description
	}
	if patch.Subcategories != nil {
		cat.Subcategories = *patch.Subcategories
	}
	cat.UpdatedAt = time.Now()

	cat.Synced = c.applyRemote("actualizar categoría", func() error {
		var echo entity.Category
		return c.store.Replace(ctx, repository.CollectionCategories, id, cat, &echo)
	})

	c.mu.Lock()
	c.categories[idx] = cat
	c.mu.Unlock()

	if cat.Synced {
		c.touchMetadata(ctx)
	}
	return &cat, nil
}

// DeleteCategory elimina una categoría. Falla con ReferentialIntegrityError si
// algún producto la referencia, reportando cuántos la bloquean. El borrado es
// best effort contra el almacén: se honra en local aunque la llamada remota
// falle, a diferencia de create/update que conservan la entidad en ambos casos.
func (c *Client) DeleteCategory(ctx context.Context, id string) (bool, error) {
	c.mu.RLock()
	blocking := 0
	for _, p := range c.products {
		if p.Category == id {
			blocking++
		}
	}
	idx := -1
	for i := range c.categories {
		if c.categories[i].ID == id {
			idx = i
			break
		}
	}
	c.mu.RUnlock()

	if blocking > 0 {
		return false, &domain.ReferentialIntegrityError{CategoryID: id, Count: blocking}
	}
	if idx == -1 {
		return false, nil
	}

	synced := c.applyRemote("eliminar categoría", func() error {
		return c.store.Delete(ctx, repository.CollectionCategories, id)
	})

	c.mu.Lock()
	for i := range c.categories {
		if c.categories[i].ID == id {
			c.categories = append(c.categories[:i], c.categories[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	if synced {
		c.touchMetadata(ctx)
	}
	return true, nil
}
