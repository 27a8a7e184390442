package dto

import (
	"github.com/shopspring/decimal"

	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
)

// CreateCategoryInput entrada para crear una categoría.
type CreateCategoryInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Subcategories []string `json:"subcategories"`
}

// CategoryPatch actualización parcial tipada de una categoría: solo los campos
// no nulos se fusionan sobre el registro base.
type CategoryPatch struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Subcategories *[]string `json:"subcategories,omitempty"`
}

// CreateProductInput entrada para crear un producto.
type CreateProductInput struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	BuyPrice    decimal.Decimal `json:"buyPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	Supplier    string          `json:"supplier"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// ProductPatch actualización parcial tipada de un producto.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Subcategory *string          `json:"subcategory,omitempty"`
	BuyPrice    *decimal.Decimal `json:"buyPrice,omitempty"`
	SellPrice   *decimal.Decimal `json:"sellPrice,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// Statistics métricas derivadas del catálogo para el tablero. No se persisten.
type Statistics struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
	TotalValue      decimal.Decimal `json:"totalValue"` // Σ sellPrice*stock
	LowStock        int             `json:"lowStock"`   // productos con stock < umbral
}

// CategoryStat categoría anotada con cuántos productos la referencian.
type CategoryStat struct {
	Category     entity.Category `json:"category"`
	ProductCount int             `json:"productCount"`
}

// Database instantánea completa del catálogo, apta para exportar e importar.
type Database struct {
	Categories []entity.Category `json:"categories"`
	Products   []entity.Product  `json:"products"`
	Users      []entity.User     `json:"users"`
	Metadata   entity.Metadata   `json:"metadata"`
}
