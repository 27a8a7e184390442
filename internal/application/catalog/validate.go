package catalog

import (
	"strings"

	"github.com/AlexanderChic/abarroteria-192/internal/application/dto"
)

// Mensajes de validación que ve el usuario final.
const (
	msgProductNameRequired = "El nombre del producto es obligatorio"
	msgCategoryRequired    = "La categoría es obligatoria"
	msgSupplierRequired    = "El proveedor es obligatorio"
	msgBuyPricePositive    = "El precio de compra debe ser mayor a 0"
	msgSellPricePositive   = "El precio de venta debe ser mayor a 0"
	msgMargin              = "El precio de venta debe ser mayor al precio de compra"
	msgStockNegative       = "El stock no puede ser negativo"

	msgCategoryNameRequired = "El nombre de la categoría es obligatorio"
	msgCategoryNameTaken    = "Ya existe una categoría con ese nombre"
)

// ValidateProduct evalúa todas las reglas del producto sin cortocircuito, de modo
// que los errores aplicables se reporten juntos. Lista vacía = válido.
func ValidateProduct(in dto.CreateProductInput) []string {
	var errs []string

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, msgProductNameRequired)
	}
	if in.Category == "" {
		errs = append(errs, msgCategoryRequired)
	}
	if strings.TrimSpace(in.Supplier) == "" {
		errs = append(errs, msgSupplierRequired)
	}
	if !in.BuyPrice.IsPositive() {
		errs = append(errs, msgBuyPricePositive)
	}
	if !in.SellPrice.IsPositive() {
		errs = append(errs, msgSellPricePositive)
	}
	// El margen se evalúa siempre: sellPrice == buyPrice también es error.
	if !in.SellPrice.GreaterThan(in.BuyPrice) {
		errs = append(errs, msgMargin)
	}
	if in.Stock < 0 {
		errs = append(errs, msgStockNegative)
	}

	return errs
}

// ValidateCategory evalúa las reglas de la categoría. Lista vacía = válido.
func ValidateCategory(in dto.CreateCategoryInput) []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, msgCategoryNameRequired)
	}
	return errs
}
