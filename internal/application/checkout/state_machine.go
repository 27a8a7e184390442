// Package checkout convierte un carrito validado más el formulario del cliente
// en un pedido, con una máquina de estados explícita que impide envíos
// duplicados: a lo sumo un pedido en vuelo por sesión.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/AlexanderChic/abarroteria-192/internal/application/cart"
	"github.com/AlexanderChic/abarroteria-192/internal/application/dto"
	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
	"github.com/AlexanderChic/abarroteria-192/pkg/logger"
)

// State estado de la máquina de envío.
type State int

const (
	// StateIdle sin envío en curso; se puede iniciar uno.
	StateIdle State = iota
	// StateSubmitting hay un pedido en vuelo; los reintentos son no-op.
	StateSubmitting
	// StateCompleted el último envío terminó bien; StartNewOrder vuelve a Idle.
	StateCompleted
	// StateFailed el último envío falló; el carrito se conserva para reintentar.
	StateFailed
)

// String para logs y mensajes de test.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Mensajes de validación del checkout.
const (
	msgMissingFields = "Por favor completa todos los campos requeridos"
	msgEmptyCart     = "El carrito está vacío"
)

// OrderCreator puerto hacia la creación remota de pedidos (lo satisface el
// cliente de catálogo; en tests se inyecta un doble).
type OrderCreator interface {
	CreateOrder(ctx context.Context, draft entity.Order) (entity.Order, error)
}

// Machine máquina de estados de envío de pedidos. Una por sesión.
type Machine struct {
	orders OrderCreator
	cart   *cart.Engine
	log    *logger.Logger

	mu    sync.Mutex
	state State
}

// NewMachine construye la máquina en estado Idle.
func NewMachine(orders OrderCreator, cartEngine *cart.Engine, log *logger.Logger) *Machine {
	if log == nil {
		log = logger.Nop()
	}
	return &Machine{orders: orders, cart: cartEngine, log: log, state: StateIdle}
}

// State devuelve el estado actual.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Submit intenta crear el pedido a partir del carrito y el formulario.
//
// Guarda de reentrada: si ya hay un envío en vuelo, la llamada es un no-op
// silencioso (nil, nil) sin tocar carrito ni almacén. Las precondiciones de
// validación (campos del formulario, carrito no vacío) se verifican antes de
// cualquier I/O y dejan la máquina en Idle.
//
// En éxito el carrito se vacía inmediatamente (y queda persistido vacío) y se
// devuelve la confirmación. En falla remota el carrito se conserva intacto y se
// devuelve ErrOrderSubmissionFailed, listo para reintentar.
func (m *Machine) Submit(ctx context.Context, form dto.CheckoutForm) (*dto.OrderConfirmation, error) {
	m.mu.Lock()
	if m.state == StateSubmitting {
		m.mu.Unlock()
		m.log.Debug().Msg("envío ya en curso, intento ignorado")
		return nil, nil
	}

	if err := validateForm(form); err != nil {
		m.state = StateIdle
		m.mu.Unlock()
		return nil, err
	}
	if m.cart.IsEmpty() {
		m.state = StateIdle
		m.mu.Unlock()
		return nil, &domain.ValidationError{Messages: []string{msgEmptyCart}}
	}

	draft := buildDraft(form, m.cart.Lines())
	m.state = StateSubmitting
	m.mu.Unlock()

	saved, err := m.orders.CreateOrder(ctx, draft)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateFailed
		m.log.Error().Err(err).Msg("falla al crear el pedido, carrito conservado")
		return nil, fmt.Errorf("%w: %w", domain.ErrOrderSubmissionFailed, err)
	}

	// Vaciar el carrito de inmediato evita que un doble envío posterior
	// duplique el pedido aunque la UI tarde en refrescarse.
	m.cart.Clear()
	m.state = StateCompleted

	return &dto.OrderConfirmation{
		OrderID:  saved.ID,
		Customer: saved.Customer,
		Delivery: saved.Delivery,
		Total:    saved.Total,
	}, nil
}

// StartNewOrder reinicia la máquina tras una confirmación: re-confirma que el
// carrito quedó vacío y persiste el estado, y vuelve a Idle.
func (m *Machine) StartNewOrder() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSubmitting {
		return
	}
	m.cart.Clear()
	m.state = StateIdle
}

// validateForm exige nombre, apellido, teléfono, cluster y dirección no vacíos
// tras recortar espacios. Colony y notas son opcionales.
func validateForm(form dto.CheckoutForm) error {
	if strings.TrimSpace(form.CustomerName) == "" ||
		strings.TrimSpace(form.CustomerLastname) == "" ||
		strings.TrimSpace(form.CustomerPhone) == "" ||
		strings.TrimSpace(form.DeliveryCluster) == "" ||
		strings.TrimSpace(form.DeliveryAddress) == "" {
		return &domain.ValidationError{Messages: []string{msgMissingFields}}
	}
	return nil
}

// buildDraft arma el pedido desnormalizando cada línea del carrito: nombre,
// precio unitario y total quedan congelados al momento del envío.
func buildDraft(form dto.CheckoutForm, lines []cart.Line) entity.Order {
	name := strings.TrimSpace(form.CustomerName)
	lastname := strings.TrimSpace(form.CustomerLastname)

	items := make([]entity.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		items = append(items, entity.OrderItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.SellPrice,
			TotalPrice:  l.Total(),
		})
		total = total.Add(l.Total())
	}

	return entity.Order{
		Customer: entity.OrderCustomer{
			Name:     name,
			Lastname: lastname,
			FullName: name + " " + lastname,
			Phone:    strings.TrimSpace(form.CustomerPhone),
		},
		Delivery: entity.OrderDelivery{
			Cluster: form.DeliveryCluster,
			Colony:  form.DeliveryColony,
			Address: strings.TrimSpace(form.DeliveryAddress),
		},
		Items:         items,
		Total:         total,
		CustomerType:  entity.CustomerTypeGuest,
		PaymentMethod: entity.PaymentMethodCOD,
		Notes:         strings.TrimSpace(form.Notes),
	}
}
