package stats

import (
	"go-approvals/internal/config"
	"go-approvals/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type StatsApi struct {
	controller *StatsController
	hub        *Hub
	config     *config.Config
}

func NewStatsApi(controller *StatsController, hub *Hub, config *config.Config) *StatsApi {
	return &StatsApi{
		controller: controller,
		hub:        hub,
		config:     config,
	}
}

func (h *StatsApi) Setup(app *fiber.App) {
	app.Get("/api/stats", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.GetStats)
	app.Get("/ws/stats", websocket.New(h.hub.HandleConn))
}
