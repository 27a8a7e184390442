// Package cart mantiene la lista de compra pendiente de la sesión con las
// invariantes de stock: ninguna línea puede exceder el stock del producto al
// momento de la verificación. Cada mutación persiste la lista completa en el
// almacenamiento local de sesión para sobrevivir recargas.
package cart

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/entity"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
	"github.com/AlexanderChic/abarroteria-192/pkg/logger"
)

// Line línea del carrito: instantánea del producto tomada al agregarlo más la
// cantidad deseada. La instantánea congela nombre y precio frente a ediciones
// posteriores del catálogo; el stock de la instantánea es el tope vigente.
type Line struct {
	Product  entity.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Total precio de la línea: sellPrice * cantidad.
func (l Line) Total() decimal.Decimal {
	return l.Product.SellPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Engine carrito de una sesión. Construir uno por sesión con NewEngine; las
// líneas se restauran del almacenamiento local si existen.
type Engine struct {
	store repository.SessionStore
	log   *logger.Logger

	mu    sync.Mutex
	lines []Line
}

// NewEngine construye el carrito y restaura las líneas persistidas de la sesión.
func NewEngine(store repository.SessionStore, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{store: store, log: log}

	var saved []Line
	if ok, err := store.Get(repository.SessionKeyCart, &saved); err != nil {
		log.Warn().Err(err).Msg("no se pudo restaurar el carrito de la sesión")
	} else if ok {
		e.lines = saved
	}
	return e
}

// Lines devuelve una copia de las líneas en orden de inserción (orden de pantalla).
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// AddLine agrega quantity unidades del producto. Si ya hay una línea para el
// producto, la cantidad acumulada no puede exceder el stock; si la excede, la
// operación falla con ErrInsufficientStock y la línea queda intacta. Sin línea
// previa, quantity debe caber en el stock y la línea nueva se agrega al final.
func (e *Engine) AddLine(product entity.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("cantidad %d: %w", quantity, domain.ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].Product.ID == product.ID {
			next := e.lines[i].Quantity + quantity
			if next > product.Stock {
				return fmt.Errorf("producto %s: %w", product.Name, domain.ErrInsufficientStock)
			}
			e.lines[i].Quantity = next
			e.persistLocked()
			return nil
		}
	}

	if quantity > product.Stock {
		return fmt.Errorf("producto %s: %w", product.Name, domain.ErrInsufficientStock)
	}
	e.lines = append(e.lines, Line{Product: product, Quantity: quantity})
	e.persistLocked()
	return nil
}

// SetLineQuantity fija la cantidad exacta de la línea del producto. Cantidad
// <= 0 elimina la línea; por encima del stock falla con ErrInsufficientStock.
func (e *Engine) SetLineQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		e.RemoveLine(productID)
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			if quantity > e.lines[i].Product.Stock {
				return fmt.Errorf("producto %s: %w", e.lines[i].Product.Name, domain.ErrInsufficientStock)
			}
			e.lines[i].Quantity = quantity
			e.persistLocked()
			return nil
		}
	}
	return nil
}

// RemoveLine elimina la línea del producto; no-op si no existe.
func (e *Engine) RemoveLine(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			e.persistLocked()
			return
		}
	}
}

// Clear vacía el carrito y persiste la lista vacía.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
	e.persistLocked()
}

// Total devuelve Σ sellPrice * cantidad sobre todas las líneas.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, l := range e.lines {
		total = total.Add(l.Total())
	}
	return total
}

// ItemCount devuelve Σ cantidad (el número del badge del carrito).
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, l := range e.lines {
		count += l.Quantity
	}
	return count
}

// IsEmpty reporta si el carrito no tiene líneas.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines) == 0
}

// persistLocked guarda la lista completa bajo la clave fija de sesión. El caller
// debe sostener el lock. Una falla de persistencia no revierte la mutación en
// memoria; solo se registra.
func (e *Engine) persistLocked() {
	lines := e.lines
	if lines == nil {
		lines = []Line{}
	}
	if err := e.store.Put(repository.SessionKeyCart, lines); err != nil {
		e.log.Warn().Err(err).Msg("no se pudo persistir el carrito")
	}
}
