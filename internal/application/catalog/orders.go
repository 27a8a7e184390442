package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
)

// Los pedidos son remotos puros: no hay caché local ni fallback de escritura.
// Un pedido que "tuviera éxito" solo en local engañaría al cliente, así que la
// falla remota de creación sí se propaga (la única de todo el cliente).

// Orders devuelve todos los pedidos del almacén. Si el almacén no responde
// devuelve lista vacía: la vista degrada a "sin pedidos" en vez de romperse.
func (c *Client) Orders(ctx context.Context) []entity.Order {
	var orders []entity.Order
	if err := c.store.List(ctx, repository.CollectionOrders, &orders); err != nil {
		c.log.Warn().Err(err).Msg("no se pudieron cargar los pedidos")
		return []entity.Order{}
	}
	return orders
}

// CreateOrder asigna id, estado inicial pendiente y marcas de tiempo, y envía el
// pedido al almacén. Devuelve la versión guardada por el servidor.
func (c *Client) CreateOrder(ctx context.Context, draft entity.Order) (entity.Order, error) {
	draft.ID = uuid.NewString()
	draft.Status = entity.OrderStatusPending
	now := time.Now()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	var saved entity.Order
	if err := c.store.Create(ctx, repository.CollectionOrders, draft, &saved); err != nil {
		return entity.Order{}, fmt.Errorf("crear pedido: %w", err)
	}
	c.log.Info().Str("pedido", saved.ID).Msg("pedido creado")
	return saved, nil
}

// UpdateOrderStatus parchea el estado de un pedido existente. El valor debe ser
// uno de los tres estados conocidos; el orden de las transiciones lo controla el
// administrador (ver orders.Manager para el flujo estrictamente hacia adelante).
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidStatus)
	}

	fields := map[string]any{
		"status":    status,
		"updatedAt": time.Now(),
	}
	var updated entity.Order
	if err := c.store.Patch(ctx, repository.CollectionOrders, orderID, fields, &updated); err != nil {
		return nil, fmt.Errorf("actualizar estado del pedido %s: %w", orderID, err)
	}
	return &updated, nil
}

// DeleteOrder elimina un pedido (acción explícita del administrador).
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	if err := c.store.Delete(ctx, repository.CollectionOrders, orderID); err != nil {
		return fmt.Errorf("eliminar pedido %s: %w", orderID, err)
	}
	return nil
}
