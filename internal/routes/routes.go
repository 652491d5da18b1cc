package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/securevault/securevault/internal/config"
	"github.com/securevault/securevault/internal/ledger"
	"github.com/securevault/securevault/internal/middleware"
	"github.com/securevault/securevault/internal/store"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. When a database is
// available the engine is restored from the last persisted snapshot; otherwise
// it starts empty.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var engine *ledger.Engine
	var snapshots *store.PostgresStore
	if d.DB != nil {
		snapshots = store.NewPostgresStore(d.DB)
		ctx := context.Background()
		if err := snapshots.EnsureSchema(ctx); err != nil {
			return err
		}
		snap, err := snapshots.Load(ctx)
		if err != nil {
			return err
		}
		if engine, err = ledger.FromSnapshot(snap); err != nil {
			return err
		}
		d.Logger.Info("ledger restored from snapshot",
			slog.Int("wallets", len(snap.Wallets)), slog.Int("records", len(snap.Log)))
	} else {
		engine = ledger.NewEngine()
	}

	handler := ledger.NewHandler(engine)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterWalletRoutes(api, handler)
	RegisterLedgerRoutes(api, handler)

	if snapshots != nil {
		api.Post("/snapshot", func(c *fiber.Ctx) error {
			snap := engine.Snapshot()
			if err := snapshots.Save(c.UserContext(), snap); err != nil {
				return fiber.NewError(http.StatusInternalServerError, err.Error())
			}
			return c.Status(http.StatusOK).JSON(fiber.Map{
				"wallets": len(snap.Wallets),
				"records": len(snap.Log),
			})
		})
	}

	return nil
}
