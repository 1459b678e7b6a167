package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/vintage-erp/internal/application/workflow"
	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
	"github.com/jhoicas/vintage-erp/internal/infrastructure/sqlitestore"
	"github.com/jhoicas/vintage-erp/internal/infrastructure/workbook"
	httpRouter "github.com/jhoicas/vintage-erp/internal/interfaces/http"
	"github.com/jhoicas/vintage-erp/pkg/config"
	"github.com/jhoicas/vintage-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	store, err := sqlitestore.Open(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("apertura de SQLite")
	}

	achats, stock, ventes, compta := loadTables(cfg, store, log)
	workflow.PrepareLoadedTables(achats, stock, ventes, compta, log)
	coordinator := workflow.NewCoordinator(achats, stock, ventes, compta, log)

	refresher := workflow.NewRefresher(coordinator, log)
	refresher.Start(context.Background())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Coordinator: coordinator,
		Refresher:   refresher,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	refresher.Stop()

	// Última foto del estado antes de salir.
	if err := coordinator.WithTables(func(achats, stock, _, _ *table.Table) error {
		return store.ReplaceAll(achats, stock)
	}); err != nil {
		log.Error().Err(err).Msg("persistencia final en SQLite")
	}

	log.Info().Msg("aplicación detenida")
}

// loadTables decide la fuente de datos inicial: la base SQLite si ya tiene
// contenido, el workbook semilla si existe, tablas vacías en último caso.
func loadTables(cfg *config.Config, store *sqlitestore.Store, log *logger.Logger) (achats, stock, ventes, compta *table.Table) {
	achats = table.New(schema.AchatsHeaders)
	stock = table.New(schema.StockHeaders)
	ventes = table.New(schema.VentesHeaders)
	compta = table.New(schema.ComptaHeaders)

	hasData, err := store.HasData()
	if err != nil {
		log.Fatal().Err(err).Msg("lectura de SQLite")
	}

	if hasData {
		if achats, err = store.LoadPurchases(); err != nil {
			log.Fatal().Err(err).Msg("carga de achats")
		}
		if stock, err = store.LoadStock(); err != nil {
			log.Fatal().Err(err).Msg("carga de stock")
		}
		log.Info().Int("achats", achats.Len()).Int("stock", stock.Len()).Msg("datos cargados desde SQLite")
	} else if _, statErr := os.Stat(cfg.Store.WorkbookPath); statErr == nil {
		sheets, loadErr := workbook.LoadMany(cfg.Store.WorkbookPath,
			schema.SheetAchats, schema.SheetStock, schema.SheetVentes, cfg.Store.LedgerSheet)
		if loadErr != nil {
			log.Fatal().Err(loadErr).Str("path", cfg.Store.WorkbookPath).Msg("carga del workbook semilla")
		}
		achats = sheets[schema.SheetAchats]
		stock = sheets[schema.SheetStock]
		ventes = sheets[schema.SheetVentes]
		compta = sheets[cfg.Store.LedgerSheet]
		log.Info().Str("path", cfg.Store.WorkbookPath).Msg("datos cargados desde el workbook semilla")
	} else {
		log.Info().Msg("sin datos previos, arrancando vacío")
	}

	// Ventes y Compta no se persisten en SQLite: si venimos de la base, el
	// workbook (si existe) sigue siendo su fuente.
	if hasData {
		if _, statErr := os.Stat(cfg.Store.WorkbookPath); statErr == nil {
			sheets, loadErr := workbook.LoadMany(cfg.Store.WorkbookPath,
				schema.SheetVentes, cfg.Store.LedgerSheet)
			if loadErr != nil {
				log.Warn().Err(loadErr).Msg("lectura de ventes/compta del workbook")
			} else {
				ventes = sheets[schema.SheetVentes]
				compta = sheets[cfg.Store.LedgerSheet]
			}
		}
	}
	return achats, stock, ventes, compta
}
