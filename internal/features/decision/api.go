package decision

import (
	"go-approvals/internal/config"
	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DecisionApi struct {
	controller *DecisionController
	config     *config.Config
}

func NewDecisionApi(controller *DecisionController, config *config.Config) *DecisionApi {
	return &DecisionApi{
		controller: controller,
		config:     config,
	}
}

func (h *DecisionApi) Setup(app *fiber.App) {
	group := app.Group("/api/approvals", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/:id/approve", h.controller.Approve)
	group.Post("/:id/reject", h.controller.Reject)
	group.Post("/:id/request-changes", h.controller.RequestChanges)
	group.Get("/:id/history", h.controller.GetHistory)
}
