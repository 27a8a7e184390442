package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/AlexanderChic/abarroteria-192/internal/application/dto"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
)

// Statistics computa las métricas del tablero sobre la caché actual. Derivación
// pura: no toca el almacén remoto.
func (c *Client) Statistics() dto.Statistics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	lowStock := 0
	for _, p := range c.products {
		total = total.Add(p.InventoryValue())
		if p.Stock < c.threshold {
			lowStock++
		}
	}

	return dto.Statistics{
		TotalProducts:   len(c.products),
		TotalCategories: len(c.categories),
		TotalValue:      total,
		LowStock:        lowStock,
	}
}

// LowStockProducts devuelve los productos con stock por debajo del umbral;
// threshold <= 0 usa el umbral configurado.
func (c *Client) LowStockProducts(threshold int) []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if threshold <= 0 {
		threshold = c.threshold
	}
	var out []entity.Product
	for _, p := range c.products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// RecentProducts devuelve hasta limit productos ordenados por creación descendente.
func (c *Client) RecentProducts(limit int) []entity.Product {
	products := c.Products()
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products
}

// CategoryStatistics anota cada categoría con cuántos productos la referencian.
func (c *Client) CategoryStatistics() []dto.CategoryStat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]int, len(c.categories))
	for _, p := range c.products {
		counts[p.Category]++
	}
	out := make([]dto.CategoryStat, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, dto.CategoryStat{Category: cat, ProductCount: counts[cat.ID]})
	}
	return out
}
