package dto

import (
	"github.com/shopspring/decimal"

	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
)

// CheckoutForm campos capturados en el formulario de checkout. Los campos de
// texto se recortan antes de validar; todos salvo Colony y Notes son requeridos.
type CheckoutForm struct {
	CustomerName     string
	CustomerLastname string
	CustomerPhone    string
	DeliveryCluster  string
	DeliveryColony   string
	DeliveryAddress  string
	Notes            string
}

// OrderConfirmation artefacto de confirmación que la UI muestra tras crear el
// pedido: número, cliente, entrega y total.
type OrderConfirmation struct {
	OrderID  string
	Customer entity.OrderCustomer
	Delivery entity.OrderDelivery
	Total    decimal.Decimal
}
