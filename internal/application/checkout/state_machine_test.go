package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderChic/abarroteria-192/internal/application/cart"
	"github.com/AlexanderChic/abarroteria-192/internal/application/catalog"
	"github.com/AlexanderChic/abarroteria-192/internal/application/checkout"
	"github.com/AlexanderChic/abarroteria-192/internal/application/dto"
	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
	"github.com/AlexanderChic/abarroteria-192/internal/infrastructure/localstore"
	"github.com/AlexanderChic/abarroteria-192/internal/infrastructure/recordstore"
	"github.com/AlexanderChic/abarroteria-192/internal/infrastructure/recordstore/storetest"
	"github.com/AlexanderChic/abarroteria-192/pkg/config"
	"github.com/AlexanderChic/abarroteria-192/pkg/logger"
)

// newTestMachine arma la cadena completa: almacén falso, cliente de catálogo,
// carrito en memoria y la máquina de checkout.
func newTestMachine(t *testing.T) (*checkout.Machine, *cart.Engine, *storetest.Fake) {
	t.Helper()
	fake := storetest.New(t)
	store := recordstore.NewClient(config.StoreConfig{
		BaseURL: fake.URL,
		Timeout: 5 * time.Second,
	})
	client := catalog.NewClient(store, logger.Nop(), 0)
	engine := cart.NewEngine(localstore.NewMemoryStore(), nil)
	return checkout.NewMachine(client, engine, logger.Nop()), engine, fake
}

func validForm() dto.CheckoutForm {
	return dto.CheckoutForm{
		CustomerName:     "María",
		CustomerLastname: "García",
		CustomerPhone:    "5555-1234",
		DeliveryCluster:  "Cluster 3",
		DeliveryColony:   "Jardines del Edén",
		DeliveryAddress:  "Casa 12",
		Notes:            "tocar el timbre",
	}
}

func fillCart(t *testing.T, engine *cart.Engine) {
	t.Helper()
	require.NoError(t, engine.AddLine(entity.Product{
		ID: "p-agua", Name: "Agua Pura", SellPrice: decimal.NewFromInt(8), Stock: 10,
	}, 2))
	require.NoError(t, engine.AddLine(entity.Product{
		ID: "p-jugo", Name: "Jugo de Naranja", SellPrice: decimal.NewFromInt(12), Stock: 5,
	}, 1))
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones — se verifican antes de tocar el almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_FormularioIncompleto_NoTocaElAlmacen(t *testing.T) {
	machine, engine, fake := newTestMachine(t)
	fillCart(t, engine)

	form := validForm()
	form.DeliveryAddress = "   "

	conf, err := machine.Submit(context.Background(), form)
	assert.Nil(t, conf)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Messages, "Por favor completa todos los campos requeridos")

	assert.Equal(t, 0, fake.Calls("POST", "orders"), "ninguna petición salió")
	assert.Equal(t, 3, engine.ItemCount(), "el carrito queda intacto")
	assert.Equal(t, checkout.StateIdle, machine.State())
}

func TestSubmit_CarritoVacio_Aborta(t *testing.T) {
	machine, _, fake := newTestMachine(t)

	conf, err := machine.Submit(context.Background(), validForm())
	assert.Nil(t, conf)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Messages, "El carrito está vacío")
	assert.Equal(t, 0, fake.Calls("POST", "orders"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío exitoso
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_Exitoso_ConfirmaYVaciaElCarrito(t *testing.T) {
	machine, engine, fake := newTestMachine(t)
	fillCart(t, engine)

	conf, err := machine.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.NotNil(t, conf)

	assert.NotEmpty(t, conf.OrderID)
	assert.Equal(t, "María García", conf.Customer.FullName)
	assert.Equal(t, "Casa 12", conf.Delivery.Address)
	assert.True(t, conf.Total.Equal(decimal.NewFromInt(28)),
		"total = 2*8 + 1*12 = 28, obtuvo %s", conf.Total)

	assert.True(t, engine.IsEmpty(), "el carrito se vacía de inmediato")
	assert.Equal(t, checkout.StateCompleted, machine.State())

	records := fake.Records("orders")
	require.Len(t, records, 1)
	assert.Equal(t, "pendiente", records[0]["status"])
	assert.Equal(t, "contra_entrega", records[0]["paymentMethod"])
	assert.Equal(t, "guest", records[0]["customerType"])
}

func TestStartNewOrder_VuelveAIdle(t *testing.T) {
	machine, engine, _ := newTestMachine(t)
	fillCart(t, engine)

	_, err := machine.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.Equal(t, checkout.StateCompleted, machine.State())

	machine.StartNewOrder()
	assert.Equal(t, checkout.StateIdle, machine.State())
	assert.True(t, engine.IsEmpty())
}

// ──────────────────────────────────────────────────────────────────────────────
// Falla remota — la única que se propaga al cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_FallaRemota_ConservaElCarritoYPermiteReintentar(t *testing.T) {
	machine, engine, fake := newTestMachine(t)
	fillCart(t, engine)
	fake.FailCollection("orders")

	conf, err := machine.Submit(context.Background(), validForm())
	assert.Nil(t, conf)
	require.True(t, errors.Is(err, domain.ErrOrderSubmissionFailed))
	assert.Equal(t, checkout.StateFailed, machine.State())
	assert.Equal(t, 3, engine.ItemCount(), "el carrito se conserva para reintentar")

	// El servidor se recupera: el reintento con el mismo carrito debe funcionar.
	fake.Restore()
	conf, err = machine.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.True(t, engine.IsEmpty())
	assert.Equal(t, checkout.StateCompleted, machine.State())
}

// ──────────────────────────────────────────────────────────────────────────────
// Guarda de reentrada — a lo sumo un pedido en vuelo
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_EnvioEnVuelo_ElSegundoIntentoEsNoOp(t *testing.T) {
	machine, engine, fake := newTestMachine(t)
	fillCart(t, engine)

	release := fake.Hold("POST", "orders")
	defer release()

	type result struct {
		conf *dto.OrderConfirmation
		err  error
	}
	done := make(chan result, 1)
	go func() {
		conf, err := machine.Submit(context.Background(), validForm())
		done <- result{conf, err}
	}()

	// Esperar a que el primer envío esté en vuelo de verdad.
	require.Eventually(t, func() bool {
		return machine.State() == checkout.StateSubmitting
	}, 5*time.Second, 10*time.Millisecond, "el primer envío nunca despegó")

	conf, err := machine.Submit(context.Background(), validForm())
	assert.Nil(t, conf, "el reintento en vuelo es un no-op silencioso")
	assert.NoError(t, err)

	release()
	first := <-done
	require.NoError(t, first.err)
	require.NotNil(t, first.conf)

	assert.Equal(t, 1, fake.Calls("POST", "orders"), "exactamente un pedido llegó al almacén")
	require.Len(t, fake.Records("orders"), 1)
	assert.Equal(t, checkout.StateCompleted, machine.State())
}
