// Package catalog implementa el cliente de datos de la tienda: única fuente de
// verdad del catálogo (categorías, productos, usuarios, metadata) frente a la UI.
// Mantiene una caché en memoria espejo del almacén remoto y enmascara sus fallas:
// cada mutación intenta la llamada remota y, si falla, degrada a una escritura
// local silenciosa. Los únicos fallos que ve el caller son los de validación y la
// guarda de integridad referencial al borrar categorías.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
	"github.com/AlexanderChic/abarroteria-192/pkg/logger"
)

// DefaultLowStockThreshold unidades por debajo de las cuales un producto cuenta
// como stock bajo si la configuración no indica otro umbral.
const DefaultLowStockThreshold = 10

// Client cliente de catálogo. Construir uno por sesión con NewClient; no es un
// singleton ambiental, lo que permite aislar tests y ejecutar sesiones en paralelo.
type Client struct {
	store     repository.RecordStore
	log       *logger.Logger
	threshold int

	mu         sync.RWMutex
	categories []entity.Category
	products   []entity.Product
	users      []entity.User
	metadata   entity.Metadata
}

// NewClient construye el cliente. lowStockThreshold <= 0 usa el umbral por defecto.
func NewClient(store repository.RecordStore, log *logger.Logger, lowStockThreshold int) *Client {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{store: store, log: log, threshold: lowStockThreshold}
}

// Load carga en bloque categorías, productos, usuarios y metadata desde el
// servicio de persistencia. Si categorías o productos no se pueden cargar, se
// puebla el dataset por defecto y se continúa: esta operación nunca falla hacia
// afuera. Usuarios y metadata son opcionales: su ausencia no degrada el catálogo.
func (c *Client) Load(ctx context.Context) {
	var (
		categories []entity.Category
		products   []entity.Product
		users      []entity.User
		metadata   entity.Metadata
	)

	catErr := c.store.List(ctx, repository.CollectionCategories, &categories)
	prodErr := c.store.List(ctx, repository.CollectionProducts, &products)

	if catErr != nil || prodErr != nil {
		c.log.Warn().
			AnErr("categories", catErr).
			AnErr("products", prodErr).
			Msg("almacén remoto inaccesible, usando dataset por defecto")
		c.seedDefaults()
		return
	}

	if err := c.store.List(ctx, repository.CollectionUsers, &users); err != nil {
		c.log.Debug().Err(err).Msg("usuarios no disponibles en el almacén")
		users = nil
	}
	if err := c.store.GetSingleton(ctx, repository.CollectionMetadata, &metadata); err != nil {
		c.log.Debug().Err(err).Msg("metadata no disponible en el almacén")
		metadata = newMetadata()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = markSyncedCategories(categories)
	c.products = markSyncedProducts(products)
	c.users = users
	c.metadata = metadata
	c.log.Info().
		Int("categorias", len(categories)).
		Int("productos", len(products)).
		Msg("catálogo cargado desde el almacén remoto")
}

// CheckServiceReachable sondeo de alcanzabilidad para el indicador de estado de
// la UI. No condiciona ninguna operación: el catálogo siempre degrada a local.
func (c *Client) CheckServiceReachable(ctx context.Context) bool {
	return c.store.Health(ctx)
}

// Users devuelve una copia de los usuarios en caché (lookup de login).
func (c *Client) Users() []entity.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.User, len(c.users))
	copy(out, c.users)
	return out
}

// Metadata devuelve la metadata actual del catálogo.
func (c *Client) Metadata() entity.Metadata {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metadata
}

// applyRemote ejecuta una llamada remota y devuelve si la mutación quedó
// sincronizada. Cualquier falla se registra y se degrada: la política de
// reconciliación es una sola para create/update/delete en lugar de un
// try/catch repetido por operación.
func (c *Client) applyRemote(op string, call func() error) bool {
	if err := call(); err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("falla remota, mutación aplicada solo en local")
		return false
	}
	return true
}

// touchMetadata marca lastUpdated y lo publica best effort tras una mutación
// remota exitosa. Una falla aquí no degrada la operación que la originó.
func (c *Client) touchMetadata(ctx context.Context) {
	c.mu.Lock()
	c.metadata.LastUpdated = time.Now()
	meta := c.metadata
	c.mu.Unlock()

	if err := c.store.ReplaceSingleton(ctx, repository.CollectionMetadata, meta); err != nil {
		c.log.Debug().Err(err).Msg("no se pudo actualizar metadata en el almacén")
	}
}

func newMetadata() entity.Metadata {
	now := time.Now()
	return entity.Metadata{Version: "1.0", Created: now, LastUpdated: now}
}

func markSyncedCategories(in []entity.Category) []entity.Category {
	for i := range in {
		in[i].Synced = true
	}
	return in
}

func markSyncedProducts(in []entity.Product) []entity.Product {
	for i := range in {
		in[i].Synced = true
	}
	return in
}
