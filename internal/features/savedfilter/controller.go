package savedfilter

import (
	"errors"

	"go-approvals/internal/features/queue"
	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PresetController struct {
	Service  PresetService
	Sessions *queue.SessionManager
}

func NewPresetController(service PresetService, sessions *queue.SessionManager) *PresetController {
	return &PresetController{Service: service, Sessions: sessions}
}

// CreatePreset godoc
// @Summary Save the current filters as a named preset
// @Tags presets
// @Accept json
// @Produce json
// @Param preset body Preset true "Preset"
// @Success 201 {object} Preset
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /api/presets [post]
func (c *PresetController) CreatePreset(ctx *fiber.Ctx) error {
	var preset Preset
	if err := ctx.BodyParser(&preset); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	preset.ReviewerID = middleware.ReviewerID(ctx)

	if err := c.Service.CreatePreset(ctx.UserContext(), &preset); err != nil {
		if errors.Is(err, ErrNoName) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(preset)
}

// ListPresets godoc
// @Summary List the reviewer's presets
// @Tags presets
// @Produce json
// @Success 200 {array} Preset
// @Router /api/presets [get]
func (c *PresetController) ListPresets(ctx *fiber.Ctx) error {
	presets, err := c.Service.ListPresets(ctx.UserContext(), middleware.ReviewerID(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(presets)
}

// GetPreset godoc
// @Summary Read one preset
// @Tags presets
// @Produce json
// @Param id path string true "Preset ID"
// @Success 200 {object} Preset
// @Failure 404 {object} map[string]string "Preset not found"
// @Router /api/presets/{id} [get]
func (c *PresetController) GetPreset(ctx *fiber.Ctx) error {
	preset, err := c.Service.GetPreset(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
	}
	return ctx.JSON(preset)
}

// UpdatePreset godoc
// @Summary Update a preset
// @Tags presets
// @Accept json
// @Produce json
// @Param id path string true "Preset ID"
// @Param preset body Preset true "Preset"
// @Success 200 {object} Preset
// @Failure 403 {object} map[string]string "Preset belongs to another reviewer"
// @Router /api/presets/{id} [put]
func (c *PresetController) UpdatePreset(ctx *fiber.Ctx) error {
	var preset Preset
	if err := ctx.BodyParser(&preset); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	existing, err := c.Service.GetPreset(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
	}
	preset.ID = existing.ID

	if err := c.Service.UpdatePreset(ctx.UserContext(), middleware.ReviewerID(ctx), &preset); err != nil {
		switch {
		case errors.Is(err, ErrNotOwner):
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrNoName):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(preset)
}

// DeletePreset godoc
// @Summary Delete a preset
// @Tags presets
// @Param id path string true "Preset ID"
// @Success 204
// @Failure 403 {object} map[string]string "Preset belongs to another reviewer"
// @Router /api/presets/{id} [delete]
func (c *PresetController) DeletePreset(ctx *fiber.Ctx) error {
	err := c.Service.DeletePreset(ctx.UserContext(), ctx.Params("id"), middleware.ReviewerID(ctx))
	if err != nil {
		if errors.Is(err, ErrNotOwner) {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ApplyPreset godoc
// @Summary Apply a preset to the queue
// @Description Replaces the session's filters with the preset's and reloads
// @Tags presets
// @Produce json
// @Param id path string true "Preset ID"
// @Success 200 {object} queue.View
// @Failure 404 {object} map[string]string "Preset not found"
// @Router /api/presets/{id}/apply [post]
func (c *PresetController) ApplyPreset(ctx *fiber.Ctx) error {
	preset, err := c.Service.GetPreset(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
	}

	session := c.Sessions.Session(middleware.ReviewerID(ctx))
	session.ReplaceFilters(preset.Filters)

	view, err := session.Load(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"view":  view,
		})
	}
	return ctx.JSON(view)
}
