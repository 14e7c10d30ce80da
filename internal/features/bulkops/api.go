package bulkops

import (
	"go-approvals/internal/config"
	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BulkApi struct {
	controller *BulkController
	config     *config.Config
}

func NewBulkApi(controller *BulkController, config *config.Config) *BulkApi {
	return &BulkApi{
		controller: controller,
		config:     config,
	}
}

func (h *BulkApi) Setup(app *fiber.App) {
	group := app.Group("/api/bulk", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/validate", h.controller.ValidateSelection)
	group.Post("/execute", h.controller.ExecuteBulk)
	group.Get("/status", h.controller.GetStatus)
	group.Post("/reset", h.controller.ResetBulk)
	group.Get("/operations", h.controller.ListOperations)
}
