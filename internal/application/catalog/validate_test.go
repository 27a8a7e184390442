package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AlexanderChic/abarroteria-192/internal/application/catalog"
	"github.com/AlexanderChic/abarroteria-192/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// ValidateProduct — todas las reglas corren sin cortocircuito.
// ──────────────────────────────────────────────────────────────────────────────

func validProductInput() dto.CreateProductInput {
	return dto.CreateProductInput{
		Name:      "Agua Pura 600ml",
		Category:  "cat-1",
		BuyPrice:  decimal.NewFromInt(5),
		SellPrice: decimal.NewFromInt(8),
		Supplier:  "Distribuidora Central",
		Stock:     12,
	}
}

func TestValidateProduct_EntradaValida_SinErrores(t *testing.T) {
	errs := catalog.ValidateProduct(validProductInput())
	assert.Empty(t, errs, "un producto válido no debe reportar errores")
}

func TestValidateProduct_MargenIgual_SiempreReportaError(t *testing.T) {
	in := validProductInput()
	in.SellPrice = in.BuyPrice // sellPrice == buyPrice también es error de margen

	errs := catalog.ValidateProduct(in)
	assert.Contains(t, errs, "El precio de venta debe ser mayor al precio de compra")
}

func TestValidateProduct_MargenInvertido_ReportaError(t *testing.T) {
	in := validProductInput()
	in.BuyPrice = decimal.NewFromInt(10)
	in.SellPrice = decimal.NewFromInt(7)

	errs := catalog.ValidateProduct(in)
	assert.Contains(t, errs, "El precio de venta debe ser mayor al precio de compra")
}

func TestValidateProduct_CamposVacios_ReportaTodosJuntos(t *testing.T) {
	errs := catalog.ValidateProduct(dto.CreateProductInput{})

	// Sin cortocircuito: nombre, categoría, proveedor, ambos precios y el margen
	// se reportan en la misma pasada.
	assert.Contains(t, errs, "El nombre del producto es obligatorio")
	assert.Contains(t, errs, "La categoría es obligatoria")
	assert.Contains(t, errs, "El proveedor es obligatorio")
	assert.Contains(t, errs, "El precio de compra debe ser mayor a 0")
	assert.Contains(t, errs, "El precio de venta debe ser mayor a 0")
	assert.Contains(t, errs, "El precio de venta debe ser mayor al precio de compra")
}

func TestValidateProduct_NombreSoloEspacios_EsInvalido(t *testing.T) {
	in := validProductInput()
	in.Name = "   "

	errs := catalog.ValidateProduct(in)
	assert.Contains(t, errs, "El nombre del producto es obligatorio")
}

func TestValidateProduct_StockNegativo_ReportaError(t *testing.T) {
	in := validProductInput()
	in.Stock = -3

	errs := catalog.ValidateProduct(in)
	assert.Contains(t, errs, "El stock no puede ser negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateCategory
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateCategory_NombreRequerido(t *testing.T) {
	errs := catalog.ValidateCategory(dto.CreateCategoryInput{Name: "  "})
	assert.Equal(t, []string{"El nombre de la categoría es obligatorio"}, errs)

	errs = catalog.ValidateCategory(dto.CreateCategoryInput{Name: "Bebidas"})
	assert.Empty(t, errs)
}
