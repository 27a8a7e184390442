// Package orders contiene la lógica fina del panel de pedidos del administrador:
// listado, filtros, conteos por estado y transiciones de estado.
package orders

import (
	"context"
	"fmt"
	"sort"

	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
)

// Client operaciones de pedidos del cliente de catálogo que el panel necesita.
type Client interface {
	Orders(ctx context.Context) []entity.Order
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*entity.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

// StatusCounts conteo de pedidos por estado para las tarjetas del panel.
type StatusCounts struct {
	Pending   int
	Sent      int
	Delivered int
}

// Total pedidos en cualquier estado.
func (s StatusCounts) Total() int {
	return s.Pending + s.Sent + s.Delivered
}

// Manager panel de pedidos. Capa de presentación delgada sobre el cliente.
type Manager struct {
	client Client
}

// NewManager construye el panel.
func NewManager(client Client) *Manager {
	return &Manager{client: client}
}

// List devuelve los pedidos más recientes primero.
func (m *Manager) List(ctx context.Context) []entity.Order {
	orders := m.client.Orders(ctx)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// FilterByStatus filtra el listado por estado; status vacío devuelve todos.
func (m *Manager) FilterByStatus(ctx context.Context, status string) []entity.Order {
	orders := m.List(ctx)
	if status == "" {
		return orders
	}
	var out []entity.Order
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Counts cuenta los pedidos por estado.
func (m *Manager) Counts(ctx context.Context) StatusCounts {
	var counts StatusCounts
	for _, o := range m.client.Orders(ctx) {
		switch o.Status {
		case entity.OrderStatusPending:
			counts.Pending++
		case entity.OrderStatusSent:
			counts.Sent++
		case entity.OrderStatusDelivered:
			counts.Delivered++
		}
	}
	return counts
}

// AdvanceStatus avanza el pedido un paso en el flujo
// pendiente -> enviado -> entregado. Cualquier otro movimiento (retroceso,
// salto, avanzar un entregado) es error: el panel solo ofrece avances.
func (m *Manager) AdvanceStatus(ctx context.Context, order entity.Order) (*entity.Order, error) {
	var next string
	switch order.Status {
	case entity.OrderStatusPending:
		next = entity.OrderStatusSent
	case entity.OrderStatusSent:
		next = entity.OrderStatusDelivered
	default:
		return nil, fmt.Errorf("pedido %s en estado %q no puede avanzar: %w",
			order.ID, order.Status, domain.ErrInvalidStatus)
	}
	return m.client.UpdateOrderStatus(ctx, order.ID, next)
}

// UpdateStatus aplica un estado arbitrario de los tres conocidos, sin validar el
// orden de la transición. Es la operación cruda que el almacén acepta; el flujo
// hacia adelante del panel vive en AdvanceStatus.
func (m *Manager) UpdateStatus(ctx context.Context, orderID, status string) (*entity.Order, error) {
	return m.client.UpdateOrderStatus(ctx, orderID, status)
}

// Delete elimina un pedido por acción explícita del administrador.
func (m *Manager) Delete(ctx context.Context, orderID string) error {
	return m.client.DeleteOrder(ctx, orderID)
}
