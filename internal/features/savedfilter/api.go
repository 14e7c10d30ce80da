package savedfilter

import (
	"go-approvals/internal/config"
	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PresetApi struct {
	controller *PresetController
	config     *config.Config
}

func NewPresetApi(controller *PresetController, config *config.Config) *PresetApi {
	return &PresetApi{
		controller: controller,
		config:     config,
	}
}

func (h *PresetApi) Setup(app *fiber.App) {
	group := app.Group("/api/presets", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreatePreset)
	group.Get("/", h.controller.ListPresets)
	group.Get("/:id", h.controller.GetPreset)
	group.Put("/:id", h.controller.UpdatePreset)
	group.Delete("/:id", h.controller.DeletePreset)
	group.Post("/:id/apply", h.controller.ApplyPreset)
}
