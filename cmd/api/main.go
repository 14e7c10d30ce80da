package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-approvals/internal/common/api"
	"go-approvals/internal/config"
	"go-approvals/internal/database"
	"go-approvals/internal/features/bulkops"
	"go-approvals/internal/features/decision"
	"go-approvals/internal/features/queue"
	"go-approvals/internal/features/savedfilter"
	"go-approvals/internal/features/stats"
	"go-approvals/internal/features/system"
	"go-approvals/internal/logger"
	"go-approvals/internal/middleware"
	"go-approvals/pkg/utils"

	_ "go-approvals/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" and calls Setup() on each one
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer starts Fiber in a goroutine and shuts it down on exit
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// sessionSourceAdapter exposes queue sessions through the narrow interface
// the bulk feature depends on
type sessionSourceAdapter struct {
	sessions *queue.SessionManager
}

func (a *sessionSourceAdapter) ForReviewer(reviewerID string) bulkops.QueueSession {
	return a.sessions.Session(reviewerID)
}

// refresherAdapter lets the decision feature reload a reviewer's queue
// without importing the queue feature's session type
type refresherAdapter struct {
	sessions *queue.SessionManager
}

func (a *refresherAdapter) RefreshQueue(ctx context.Context, reviewerID string) error {
	return a.sessions.Session(reviewerID).Refresh(ctx)
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			logger.NewLogger,
			NewFiberServer,

			// Repositories & data sources
			queue.NewQueueRepository,
			decision.NewExecutor,
			decision.NewHistoryRepository,
			bulkops.NewOperationRepository,
			savedfilter.NewPresetRepository,

			// Services & domain machinery
			queue.NewSessionManager,
			savedfilter.NewPresetService,
			stats.NewCollector,
			stats.NewHub,
			bulkops.NewManager,
			func(cfg *config.Config, l *zap.Logger) *bulkops.Validator {
				return bulkops.NewValidator(cfg.MaxSelection, l)
			},
			func(c *stats.MongoCollector, h *stats.Hub, cfg *config.Config, l *zap.Logger) *stats.Poller {
				return stats.NewPoller(c, h, cfg.StatsPollSpec, l)
			},

			// Interface adapters to break feature-level cycles
			func(m *queue.SessionManager) bulkops.SessionSource { return &sessionSourceAdapter{sessions: m} },
			func(m *queue.SessionManager) decision.Refresher { return &refresherAdapter{sessions: m} },
			func(c *stats.MongoCollector) stats.Collector { return c },
			func(h *stats.Hub) stats.Sink { return h },

			// Controllers
			queue.NewQueueController,
			decision.NewDecisionController,
			bulkops.NewBulkController,
			savedfilter.NewPresetController,
			stats.NewStatsController,

			// API routes
			AsRoute(queue.NewQueueApi),
			AsRoute(decision.NewDecisionApi),
			AsRoute(bulkops.NewBulkApi),
			AsRoute(savedfilter.NewPresetApi),
			AsRoute(stats.NewStatsApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, poller *stats.Poller) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return poller.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						poller.Stop()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
