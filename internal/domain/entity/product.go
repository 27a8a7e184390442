package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Los precios se manejan con decimal
// para evitar errores de redondeo; SellPrice debe ser estrictamente mayor a BuyPrice.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"` // Category.ID
	Subcategory string          `json:"subcategory,omitempty"`
	BuyPrice    decimal.Decimal `json:"buyPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	Supplier    string          `json:"supplier"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Synced bool `json:"-"`
}

// InventoryValue devuelve SellPrice * Stock (aporte del producto al valor del inventario).
func (p Product) InventoryValue() decimal.Decimal {
	return p.SellPrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}
