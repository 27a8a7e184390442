package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidStatus      = errors.New("estado de pedido inválido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// ErrRemoteUnavailable indica que el servicio de persistencia no respondió o
	// respondió con error. Nunca llega al caller de catálogo: se degrada a una
	// escritura local. Solo la creación de pedidos lo convierte en fallo visible.
	ErrRemoteUnavailable = errors.New("servicio de persistencia no disponible")

	// ErrOrderSubmissionFailed es el único fallo remoto que se muestra al usuario:
	// un pedido no puede "tener éxito" solo en local sin engañar al cliente.
	ErrOrderSubmissionFailed = errors.New("no se pudo procesar el pedido")
)

// ValidationError agrupa los mensajes de validación de una operación. Todas las
// reglas se evalúan (sin cortocircuito) para reportar los errores juntos.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Messages, "; ")
}

// ReferentialIntegrityError bloquea el borrado de una categoría aún referenciada
// por productos. Count es la cantidad de productos que la bloquean.
type ReferentialIntegrityError struct {
	CategoryID string
	Count      int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("no se puede eliminar la categoría: %d producto(s) la utilizan", e.Count)
}
