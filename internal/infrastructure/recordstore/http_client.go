package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AlexanderChic/abarroteria-192/internal/domain"
	"github.com/AlexanderChic/abarroteria-192/internal/domain/repository"
	"github.com/AlexanderChic/abarroteria-192/pkg/config"
)

var _ repository.RecordStore = (*Client)(nil)

// Client implementación del puerto RecordStore sobre HTTP/JSON.
// Habla el contrato del almacén de registros genérico: GET/POST/PUT/PATCH/DELETE
// por colección, sin lógica de negocio del lado del servidor.
type Client struct {
	httpClient *http.Client
	baseURL    string
	prefix     string
}

// NewClient construye el cliente HTTP del almacén. El timeout acota cada llamada;
// no hay reintentos: el fallback local es responsabilidad del caller.
func NewClient(cfg config.StoreConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		prefix:     strings.TrimRight(cfg.PathPrefix, "/"),
	}
}

func (c *Client) collectionURL(collection string) string {
	return c.baseURL + c.prefix + "/" + collection
}

func (c *Client) recordURL(collection, id string) string {
	return c.collectionURL(collection) + "/" + id
}

// List decodifica la colección completa en out.
func (c *Client) List(ctx context.Context, collection string, out any) error {
	return c.do(ctx, http.MethodGet, c.collectionURL(collection), nil, out)
}

// Get decodifica el registro id en out; domain.ErrNotFound si el servidor devuelve 404.
func (c *Client) Get(ctx context.Context, collection, id string, out any) error {
	return c.do(ctx, http.MethodGet, c.recordURL(collection, id), nil, out)
}

// Create envía el registro y decodifica en out la versión devuelta por el servidor.
func (c *Client) Create(ctx context.Context, collection string, record, out any) error {
	return c.do(ctx, http.MethodPost, c.collectionURL(collection), record, out)
}

// Replace reemplaza el registro completo.
func (c *Client) Replace(ctx context.Context, collection, id string, record, out any) error {
	return c.do(ctx, http.MethodPut, c.recordURL(collection, id), record, out)
}

// Patch fusiona campos parciales sobre el registro existente.
func (c *Client) Patch(ctx context.Context, collection, id string, fields, out any) error {
	return c.do(ctx, http.MethodPatch, c.recordURL(collection, id), fields, out)
}

// Delete elimina el registro.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, c.recordURL(collection, id), nil, nil)
}

// GetSingleton lee una colección de registro único (sin id en la ruta).
func (c *Client) GetSingleton(ctx context.Context, collection string, out any) error {
	return c.do(ctx, http.MethodGet, c.collectionURL(collection), nil, out)
}

// ReplaceSingleton reemplaza una colección de registro único.
func (c *Client) ReplaceSingleton(ctx context.Context, collection string, record any) error {
	return c.do(ctx, http.MethodPut, c.collectionURL(collection), record, nil)
}

// Health sondeo de alcanzabilidad contra /health (siempre en la raíz del servidor,
// fuera del prefijo de colecciones).
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// do ejecuta una llamada JSON y mapea fallas al vocabulario del dominio:
// error de transporte o estado no exitoso -> domain.ErrRemoteUnavailable,
// 404 en lecturas puntuales -> domain.ErrNotFound.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo %s %s: %w", method, url, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("construir petición %s %s: %w", method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, domain.ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && method == http.MethodGet {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: estado %d: %w", method, url, resp.StatusCode, domain.ErrRemoteUnavailable)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta %s %s: %w", method, url, domain.ErrRemoteUnavailable)
	}
	return nil
}
