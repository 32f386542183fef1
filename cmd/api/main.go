package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/internal/application/usecase"
	"github.com/tekeliveli/stoktakip/internal/domain/repository"
	infrapdf "github.com/tekeliveli/stoktakip/internal/infrastructure/pdf"
	"github.com/tekeliveli/stoktakip/internal/infrastructure/postgres"
	infraredis "github.com/tekeliveli/stoktakip/internal/infrastructure/redis"
	"github.com/tekeliveli/stoktakip/internal/infrastructure/sqlite"
	httpRouter "github.com/tekeliveli/stoktakip/internal/interfaces/http"
	"github.com/tekeliveli/stoktakip/pkg/config"
	"github.com/tekeliveli/stoktakip/pkg/logger"
)

// stores repositorios del driver elegido (STORE_DRIVER).
type stores struct {
	txRunner       inventory.TxRunner
	materialRepo   repository.MaterialRepository
	movRepo        repository.StockMovementRepository
	withdrawalRepo repository.WithdrawalRepository
	queryRepo      repository.StockQueryRepository
	ping           func(ctx context.Context) error
	close          func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones PostgreSQL: %w", err)
		}
		return &stores{
			txRunner:       postgres.NewTxRunner(pool),
			materialRepo:   postgres.NewMaterialRepository(pool),
			movRepo:        postgres.NewStockMovementRepository(pool),
			withdrawalRepo: postgres.NewWithdrawalRepository(pool),
			queryRepo:      postgres.NewStockQueryRepository(pool),
			ping:           pool.Ping,
			close:          pool.Close,
		}, nil
	default:
		store, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite %s: %w", cfg.Store.SQLitePath, err)
		}
		return &stores{
			txRunner:       sqlite.NewTxRunner(store),
			materialRepo:   sqlite.NewMaterialRepository(store.DB()),
			movRepo:        sqlite.NewStockMovementRepository(store.DB()),
			withdrawalRepo: sqlite.NewWithdrawalRepository(store.DB()),
			queryRepo:      sqlite.NewStockQueryRepository(store.DB()),
			ping:           store.Ping,
			close:          func() { _ = store.Close() },
		}, nil
	}
}

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	// Caché de stock actual: opcional, el libro sigue siendo la fuente de verdad.
	var cache inventory.StockCache = inventory.NopStockCache{}
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, caché de stock desactivado")
		} else {
			defer client.Close()
			cache = infraredis.NewStockCache(client, cfg.Redis.StockTTL, log)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.StockTTL).Msg("caché de stock en Redis")
		}
	}

	materialUC := usecase.NewMaterialUseCase(st.materialRepo, st.txRunner, cache)
	ledgerUC := inventory.NewLedgerUseCase(st.txRunner, st.materialRepo, st.movRepo, st.queryRepo, cache)
	withdrawalUC := inventory.NewWithdrawalUseCase(st.txRunner, st.materialRepo, st.withdrawalRepo, cache)
	stockQueryUC := inventory.NewStockQueryUseCase(st.materialRepo, st.queryRepo, cache)

	// PDF: reporte del período + stock actual
	reportPDFUC := inventory.NewReportPDFUseCase(ledgerUC, stockQueryUC, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:  materialUC,
		Ledger:      ledgerUC,
		Withdrawal:  withdrawalUC,
		StockQuery:  stockQueryUC,
		ReportPDF:   reportPDFUC,
		Log:         log,
		ServiceName: cfg.App.Name,
		HealthCheck: st.ping,
		DocsEnabled: cfg.HTTP.DocsEnabled,
		StaticDir:   cfg.HTTP.StaticDir,
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

	log.Info().Msg("aplicación detenida")
}
