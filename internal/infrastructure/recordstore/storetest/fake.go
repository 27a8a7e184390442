// Package storetest provee un almacén de registros falso en memoria, servido por
// Fiber sobre un puerto efímero. Habla el mismo contrato REST que el servicio de
// persistencia real (CRUD por colección, metadata singleton, /health) y agrega lo
// que los tests necesitan: conteo de llamadas por endpoint, inyección de fallas y
// compuertas para retener respuestas en vuelo.
package storetest

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Fake servidor de persistencia para tests.
type Fake struct {
	// URL base del servidor (http://127.0.0.1:puerto), lista para StoreConfig.
	URL string

	app *fiber.App

	mu          sync.Mutex
	collections map[string][]map[string]any
	metadata    map[string]any
	counts      map[string]int
	failAll     bool
	failing     map[string]bool
	gates       map[string]chan struct{}
}

// New levanta el servidor falso y registra su apagado en t.Cleanup.
func New(t *testing.T) *Fake {
	t.Helper()

	f := &Fake{
		collections: make(map[string][]map[string]any),
		metadata:    map[string]any{"version": "1.0"},
		counts:      make(map[string]int),
		failing:     make(map[string]bool),
		gates:       make(map[string]chan struct{}),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true, Immutable: true})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})
	app.Get("/metadata", f.getMetadata)
	app.Put("/metadata", f.putMetadata)
	app.Get("/:collection", f.list)
	app.Post("/:collection", f.create)
	app.Get("/:collection/:id", f.get)
	app.Put("/:collection/:id", f.replace)
	app.Patch("/:collection/:id", f.patch)
	app.Delete("/:collection/:id", f.remove)
	f.app = app

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("escuchar puerto efímero: %v", err)
	}
	f.URL = "http://" + ln.Addr().String()

	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.ShutdownWithTimeout(2 * time.Second)
	})

	return f
}

// ── Control desde los tests ───────────────────────────────────────────────────

// Seed agrega registros a una colección, serializándolos por JSON para aceptar
// tanto mapas como entidades tipadas.
func (f *Fake) Seed(collection string, records ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range records {
		f.collections[collection] = append(f.collections[collection], toMap(r))
	}
}

// Records devuelve una copia de la colección tal como la ve el servidor.
func (f *Fake) Records(collection string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, len(f.collections[collection]))
	copy(out, f.collections[collection])
	return out
}

// Calls devuelve cuántas peticiones llegaron a método+colección (ej. "POST", "orders").
func (f *Fake) Calls(method, collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[method+" "+collection]
}

// FailCollection hace que toda petición a la colección responda 500.
func (f *Fake) FailCollection(collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[collection] = true
}

// FailEverything hace que toda petición (salvo /health) responda 500.
func (f *Fake) FailEverything() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAll = true
}

// Restore quita toda inyección de fallas.
func (f *Fake) Restore() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAll = false
	f.failing = make(map[string]bool)
}

// Hold retiene las respuestas de método+colección hasta que se invoque release.
// Las peticiones llegan y se cuentan, pero no responden: simula un servidor lento
// para probar la guarda de reentrada del checkout.
func (f *Fake) Hold(method, collection string) (release func()) {
	key := method + " " + collection
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[key] = gate
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(gate)
			f.mu.Lock()
			delete(f.gates, key)
			f.mu.Unlock()
		})
	}
}

// ── Handlers ─────────────────────────────────────────────────────────────────

// track cuenta la llamada, espera la compuerta si existe y reporta si la
// petición debe fallar.
func (f *Fake) track(c *fiber.Ctx, collection string) (fail bool) {
	key := c.Method() + " " + collection
	f.mu.Lock()
	f.counts[key]++
	gate := f.gates[key]
	fail = f.failAll || f.failing[collection]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return fail
}

func (f *Fake) list(c *fiber.Ctx) error {
	collection := c.Params("collection")
	if f.track(c, collection) {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	records := f.collections[collection]
	if records == nil {
		records = []map[string]any{}
	}
	return c.JSON(records)
}

func (f *Fake) get(c *fiber.Ctx) error {
	collection, id := c.Params("collection"), c.Params("id")
	if f.track(c, collection) {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, rec := f.find(collection, id); rec != nil {
		return c.JSON(rec)
	}
	return fiber.NewError(fiber.StatusNotFound, "no existe")
}

func (f *Fake) create(c *fiber.Ctx) error {
	collection := c.Params("collection")
	if f.track(c, collection) {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	var rec map[string]any
	if err := json.Unmarshal(c.Body(), &rec); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "JSON inválido")
	}
	if _, ok := rec["id"]; !ok {
		rec["id"] = uuid.NewString()
	}
	f.mu.Lock()
	f.collections[collection] = append(f.collections[collection], rec)
	f.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (f *Fake) replace(c *fiber.Ctx) error {
	collection, id := c.Params("collection"), c.Params("id")
	if f.track(c, collection) {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	var rec map[string]any
	if err := json.Unmarshal(c.Body(), &rec); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "JSON inválido")
	}
	rec["id"] = id
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, old := f.find(collection, id)
	if old == nil {
		return fiber.NewError(fiber.StatusNotFound, "no existe")
	}
	f.collections[collection][idx] = rec
	return c.JSON(rec)
}

func (f *Fake) patch(c *fiber.Ctx) error {
	collection, id := c.Params("collection"), c.Params("id")
	if f.track(c, collection) {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "JSON inválido")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, rec := f.find(collection, id)
	if rec == nil {
		return fiber.NewError(fiber.StatusNotFound, "no existe")
	}
	for k, v := range fields {
		rec[k] = v
	}
	return c.JSON(rec)
}

func (f *Fake) remove(c *fiber.Ctx) error {
	collection, id := c.Params("collection"), c.Params("id")
	if f.track(c, collection) {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, rec := f.find(collection, id)
	if rec == nil {
		return fiber.NewError(fiber.StatusNotFound, "no existe")
	}
	f.collections[collection] = append(f.collections[collection][:idx], f.collections[collection][idx+1:]...)
	return c.JSON(fiber.Map{})
}

func (f *Fake) getMetadata(c *fiber.Ctx) error {
	if f.track(c, "metadata") {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return c.JSON(f.metadata)
}

func (f *Fake) putMetadata(c *fiber.Ctx) error {
	if f.track(c, "metadata") {
		return fiber.NewError(fiber.StatusInternalServerError, "falla inyectada")
	}
	var rec map[string]any
	if err := json.Unmarshal(c.Body(), &rec); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "JSON inválido")
	}
	f.mu.Lock()
	f.metadata = rec
	f.mu.Unlock()
	return c.JSON(rec)
}

// find busca por id dentro de una colección; el caller debe sostener el lock.
func (f *Fake) find(collection, id string) (int, map[string]any) {
	for i, rec := range f.collections[collection] {
		if fmt.Sprint(rec["id"]) == id {
			return i, rec
		}
	}
	return -1, nil
}

func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("storetest: serializar registro: %v", err))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("storetest: registro no es un objeto JSON: %v", err))
	}
	return m
}
