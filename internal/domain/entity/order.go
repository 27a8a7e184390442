package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un pedido. El panel de administración solo avanza hacia
// adelante: pendiente -> enviado -> entregado.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusSent      = "enviado"
	OrderStatusDelivered = "entregado"
)

// Tipos de cliente que pueden originar un pedido.
const (
	CustomerTypeGuest  = "guest"
	CustomerTypeClient = "client"
)

// PaymentMethodCOD contra entrega: único método soportado por la tienda.
const PaymentMethodCOD = "contra_entrega"

// OrderCustomer datos del cliente capturados en el checkout.
type OrderCustomer struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// OrderDelivery datos de entrega dentro del residencial.
type OrderDelivery struct {
	Cluster string `json:"cluster"`
	Colony  string `json:"colony"`
	Address string `json:"address"`
}

// OrderItem línea de pedido desnormalizada: nombre y precios quedan congelados
// al momento de crear el pedido, independientes de ediciones posteriores del producto.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Order pedido creado desde el carrito. Solo muta vía transiciones de estado;
// no se elimina salvo acción explícita del administrador.
type Order struct {
	ID            string          `json:"id"`
	Customer      OrderCustomer   `json:"customer"`
	Delivery      OrderDelivery   `json:"delivery"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	CustomerType  string          `json:"customerType"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ValidOrderStatus reporta si s es uno de los tres estados conocidos.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusSent || s == OrderStatusDelivered
}
