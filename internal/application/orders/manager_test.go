package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderChic/abarroteria-192/internal/application/orders"
	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
)

// stubClient doble del cliente de catálogo: lista fija en memoria y registro de
// las transiciones pedidas.
type stubClient struct {
	orders      []entity.Order
	statusCalls []string
	deleted     []string
	updateErr   error
}

func (s *stubClient) Orders(_ context.Context) []entity.Order {
	out := make([]entity.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *stubClient) UpdateOrderStatus(_ context.Context, orderID, status string) (*entity.Order, error) {
	s.statusCalls = append(s.statusCalls, orderID+"->"+status)
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubClient) DeleteOrder(_ context.Context, orderID string) error {
	s.deleted = append(s.deleted, orderID)
	return nil
}

func pedido(id, status string, age time.Duration) entity.Order {
	return entity.Order{
		ID:        id,
		Status:    status,
		CreatedAt: time.Now().Add(-age),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y conteos
// ──────────────────────────────────────────────────────────────────────────────

func TestList_MasRecientesPrimero(t *testing.T) {
	stub := &stubClient{orders: []entity.Order{
		pedido("viejo", entity.OrderStatusPending, 2*time.Hour),
		pedido("nuevo", entity.OrderStatusPending, time.Minute),
		pedido("medio", entity.OrderStatusSent, time.Hour),
	}}
	m := orders.NewManager(stub)

	list := m.List(context.Background())
	require.Len(t, list, 3)
	assert.Equal(t, "nuevo", list[0].ID)
	assert.Equal(t, "medio", list[1].ID)
	assert.Equal(t, "viejo", list[2].ID)
}

func TestFilterByStatus(t *testing.T) {
	stub := &stubClient{orders: []entity.Order{
		pedido("a", entity.OrderStatusPending, time.Hour),
		pedido("b", entity.OrderStatusSent, time.Minute),
		pedido("c", entity.OrderStatusPending, time.Minute),
	}}
	m := orders.NewManager(stub)

	pendientes := m.FilterByStatus(context.Background(), entity.OrderStatusPending)
	require.Len(t, pendientes, 2)
	assert.Equal(t, "c", pendientes[0].ID, "el filtro conserva el orden más reciente primero")

	todos := m.FilterByStatus(context.Background(), "")
	assert.Len(t, todos, 3, "estado vacío devuelve todos")

	assert.Empty(t, m.FilterByStatus(context.Background(), entity.OrderStatusDelivered))
}

func TestCounts(t *testing.T) {
	stub := &stubClient{orders: []entity.Order{
		pedido("a", entity.OrderStatusPending, 0),
		pedido("b", entity.OrderStatusPending, 0),
		pedido("c", entity.OrderStatusSent, 0),
		pedido("d", entity.OrderStatusDelivered, 0),
	}}
	m := orders.NewManager(stub)

	counts := m.Counts(context.Background())
	assert.Equal(t, 2, counts.Pending)
	assert.Equal(t, 1, counts.Sent)
	assert.Equal(t, 1, counts.Delivered)
	assert.Equal(t, 4, counts.Total())
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado — el panel solo avanza hacia adelante
// ──────────────────────────────────────────────────────────────────────────────

func TestAdvanceStatus_PendienteAEnviadoAEntregado(t *testing.T) {
	stub := &stubClient{orders: []entity.Order{pedido("p1", entity.OrderStatusPending, 0)}}
	m := orders.NewManager(stub)

	updated, err := m.AdvanceStatus(context.Background(), stub.orders[0])
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusSent, updated.Status)

	updated, err = m.AdvanceStatus(context.Background(), *updated)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, updated.Status)

	assert.Equal(t, []string{"p1->enviado", "p1->entregado"}, stub.statusCalls)
}

func TestAdvanceStatus_EntregadoNoAvanza(t *testing.T) {
	stub := &stubClient{orders: []entity.Order{pedido("p1", entity.OrderStatusDelivered, 0)}}
	m := orders.NewManager(stub)

	updated, err := m.AdvanceStatus(context.Background(), stub.orders[0])
	assert.Nil(t, updated)
	require.True(t, errors.Is(err, domain.ErrInvalidStatus))
	assert.Empty(t, stub.statusCalls, "un estado terminal no genera llamadas al almacén")
}

func TestAdvanceStatus_EstadoDesconocidoEsError(t *testing.T) {
	stub := &stubClient{}
	m := orders.NewManager(stub)

	_, err := m.AdvanceStatus(context.Background(), entity.Order{ID: "x", Status: "cancelado"})
	require.True(t, errors.Is(err, domain.ErrInvalidStatus))
}

func TestUpdateStatus_EsPermisivo(t *testing.T) {
	stub := &stubClient{orders: []entity.Order{pedido("p1", entity.OrderStatusDelivered, 0)}}
	m := orders.NewManager(stub)

	// La operación cruda sí permite retroceder; la validación de valores
	// conocidos vive en el cliente de catálogo.
	updated, err := m.UpdateStatus(context.Background(), "p1", entity.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, updated.Status)
}

func TestDelete_DelegaAlCliente(t *testing.T) {
	stub := &stubClient{}
	m := orders.NewManager(stub)

	require.NoError(t, m.Delete(context.Background(), "p9"))
	assert.Equal(t, []string{"p9"}, stub.deleted)
}
