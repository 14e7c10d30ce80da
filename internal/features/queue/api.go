package queue

import (
	"go-approvals/internal/config"
	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type QueueApi struct {
	controller *QueueController
	config     *config.Config
}

func NewQueueApi(controller *QueueController, config *config.Config) *QueueApi {
	return &QueueApi{
		controller: controller,
		config:     config,
	}
}

func (h *QueueApi) Setup(app *fiber.App) {
	group := app.Group("/api/queue", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.LoadQueue)
	group.Post("/refresh", h.controller.RefreshQueue)
	group.Get("/state", h.controller.GetState)
	group.Put("/filters", h.controller.SetFilters)
	group.Put("/sort", h.controller.SetSort)
	group.Put("/page", h.controller.SetPage)
	group.Put("/page-size", h.controller.SetPageSize)

	group.Get("/selection", h.controller.GetSelection)
	group.Delete("/selection", h.controller.ClearSelection)
	group.Post("/selection/all", h.controller.SelectAll)
	group.Post("/selection/:id/toggle", h.controller.ToggleSelection)
}
