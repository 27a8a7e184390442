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

// Products devuelve una copia de los productos en orden de carga.
func (c *Client) Products() []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductByID busca un producto por id.
func (c *Client) ProductByID(id string) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// CreateProduct valida, asigna id y marcas de tiempo e intenta la creación
// remota, con la misma política de fallback local que las categorías.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductInput) (entity.Product, error) {
	if errs := ValidateProduct(in); len(errs) > 0 {
		return entity.Product{}, &domain.ValidationError{Messages: errs}
	}

	now := time.Now()
	prod := entity.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Subcategory: in.Subcategory,
		BuyPrice:    in.BuyPrice,
		SellPrice:   in.SellPrice,
		Supplier:    strings.TrimSpace(in.Supplier),
		Stock:       in.Stock,
		Image:       in.Image,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var saved entity.Product
	synced := c.applyRemote("crear producto", func() error {
		return c.store.Create(ctx, repository.CollectionProducts, prod, &saved)
	})
	if synced {
		prod = saved
	}
	prod.Synced = synced

	c.mu.Lock()
	c.products = append(c.products, prod)
	c.mu.Unlock()

	if synced {
		c.touchMetadata(ctx)
	}
	return prod, nil
}

// UpdateProduct fusiona el patch tipado campo por campo, revalida el resultado
// completo y sube updatedAt. Devuelve nil si el id no existe.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch dto.ProductPatch) (*entity.Product, error) {
	c.mu.RLock()
	idx := -1
	var prod entity.Product
	for i := range c.products {
		if c.products[i].ID == id {
			idx, prod = i, c.products[i]
			break
		}
	}
	c.mu.RUnlock()
	if idx == -1 {
		return nil, nil
	}

	if patch.Name != nil {
		prod.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		prod.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		prod.Subcategory = *patch.Subcategory
	}
	if patch.BuyPrice != nil {
		prod.BuyPrice = *patch.BuyPrice
	}
	if patch.SellPrice != nil {
		prod.SellPrice = *patch.SellPrice
	}
	if patch.Supplier != nil {
		prod.Supplier = strings.TrimSpace(*patch.Supplier)
	}
	if patch.Stock != nil {
		prod.Stock = *patch.Stock
	}
	if patch.Image != nil {
		prod.Image = *patch.Image
	}
	if patch.Description != nil {
		prod.Description = *patch.Description
	}

	// Las invariantes (margen positivo, stock no negativo) deben sostenerse
	// también después de la fusión.
	merged := dto.CreateProductInput{
		Name:      prod.Name,
		Category:  prod.Category,
		BuyPrice:  prod.BuyPrice,
		SellPrice: prod.SellPrice,
		Supplier:  prod.Supplier,
		Stock:     prod.Stock,
	}
	if errs := ValidateProduct(merged); len(errs) > 0 {
		return nil, &domain.ValidationError{Messages: errs}
	}
	prod.UpdatedAt = time.Now()

	prod.Synced = c.applyRemote("actualizar producto", func() error {
		var echo entity.Product
		return c.store.Replace(ctx, repository.CollectionProducts, id, prod, &echo)
	})

	c.mu.Lock()
	c.products[idx] = prod
	c.mu.Unlock()

	if prod.Synced {
		c.touchMetadata(ctx)
	}
	return &prod, nil
}

// DeleteProduct elimina un producto; false si no existe. No hay guarda
// referencial: los pedidos desnormalizan sus líneas y no dependen del producto.
func (c *Client) DeleteProduct(ctx context.Context, id string) (bool, error) {
	c.mu.RLock()
	found := false
	for i := range c.products {
		if c.products[i].ID == id {
			found = true
			break
		}
	}
	c.mu.RUnlock()
	if !found {
		return false, nil
	}

	synced := c.applyRemote("eliminar producto", func() error {
		return c.store.Delete(ctx, repository.CollectionProducts, id)
	})

	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	if synced {
		c.touchMetadata(ctx)
	}
	return true, nil
}

// SearchProducts filtra por término (nombre, descripción o proveedor, sin
// distinguir mayúsculas) y opcionalmente por categoría.
func (c *Client) SearchProducts(term, categoryID string) []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	var out []entity.Product
	for _, p := range c.products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.Supplier), term) {
			continue
		}
		if categoryID != "" && p.Category != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProductsByCategory devuelve los productos cuya categoría es categoryID.
func (c *Client) ProductsByCategory(categoryID string) []entity.Product {
	return c.SearchProducts("", categoryID)
}
