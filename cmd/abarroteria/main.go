package main

import (
	"context"
	"time"

	"github.com/AlexanderChic/abarroteria-192/internal/application/auth"
	"github.com/AlexanderChic/abarroteria-192/internal/application/cart"
	"github.com/AlexanderChic/abarroteria-192/internal/application/catalog"
	"github.com/AlexanderChic/abarroteria-192/internal/application/checkout"
	"github.com/AlexanderChic/abarroteria-192/internal/application/orders"
	"github.com/AlexanderChic/abarroteria-192/internal/infrastructure/localstore"
	"github.com/AlexanderChic/abarroteria-192/internal/infrastructure/recordstore"
	"github.com/AlexanderChic/abarroteria-192/pkg/config"
	"github.com/AlexanderChic/abarroteria-192/pkg/logger"
)

// main arma una sesión completa de la tienda: configuración, almacenes local y
// remoto, catálogo, carrito, checkout y panel de pedidos. La capa de vista se
// conecta sobre estos servicios; aquí solo se inicializa y se reporta el estado.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.BaseURL+cfg.Store.PathPrefix).
		Msg("iniciando sesión de la tienda")

	sessionStore, err := localstore.NewFileStore(cfg.Session.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento local de sesión")
	}

	store := recordstore.NewClient(cfg.Store)
	client := catalog.NewClient(store, log, cfg.App.LowStockThreshold)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client.Load(ctx)

	cartEngine := cart.NewEngine(sessionStore, log)
	machine := checkout.NewMachine(client, cartEngine, log)
	adminPanel := orders.NewManager(client)
	session := auth.NewSession(store, sessionStore, client, log)

	stats := client.Statistics()
	log.Info().
		Int("productos", stats.TotalProducts).
		Int("categorias", stats.TotalCategories).
		Str("valor_inventario", stats.TotalValue.String()).
		Int("stock_bajo", stats.LowStock).
		Bool("almacen_alcanzable", client.CheckServiceReachable(ctx)).
		Int("lineas_carrito", len(cartEngine.Lines())).
		Str("checkout", machine.State().String()).
		Bool("sesion_activa", session.IsAuthenticated()).
		Msg("sesión lista")

	counts := adminPanel.Counts(ctx)
	log.Info().
		Int("pendientes", counts.Pending).
		Int("enviados", counts.Sent).
		Int("entregados", counts.Delivered).
		Msg("pedidos en el almacén")
}
