package queue

import (
	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type QueueController struct {
	Sessions *SessionManager
}

func NewQueueController(sessions *SessionManager) *QueueController {
	return &QueueController{Sessions: sessions}
}

func (c *QueueController) session(ctx *fiber.Ctx) *Session {
	return c.Sessions.Session(middleware.ReviewerID(ctx))
}

// LoadQueue godoc
// @Summary Load the approval queue
// @Description Load the current page of the reviewer's approval queue
// @Tags queue
// @Produce json
// @Success 200 {object} View
// @Failure 502 {object} map[string]string "Data source failure (previous page stays visible)"
// @Router /api/queue [get]
func (c *QueueController) LoadQueue(ctx *fiber.Ctx) error {
	s := c.session(ctx)
	view, err := s.Load(ctx.UserContext())
	if err != nil {
		// Stale items stay visible; the client gets the banner plus context
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"view":  view,
		})
	}
	return ctx.JSON(view)
}

// RefreshQueue godoc
// @Summary Refresh the approval queue
// @Description Re-issue the load with the unchanged current state
// @Tags queue
// @Produce json
// @Success 200 {object} View
// @Router /api/queue/refresh [post]
func (c *QueueController) RefreshQueue(ctx *fiber.Ctx) error {
	s := c.session(ctx)
	view, err := s.Load(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"view":  view,
		})
	}
	return ctx.JSON(view)
}

// SetFilters godoc
// @Summary Update queue filters
// @Description Merge a partial filter set into the current filters; resets the page to 0
// @Tags queue
// @Accept json
// @Produce json
// @Param patch body FilterPatch true "Filter patch"
// @Success 200 {object} QueryState
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /api/queue/filters [put]
func (c *QueueController) SetFilters(ctx *fiber.Ctx) error {
	var patch FilterPatch
	if err := ctx.BodyParser(&patch); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// Negative amounts are a caller contract violation, rejected at the edge
	if (patch.MinAmount != nil && *patch.MinAmount < 0) || (patch.MaxAmount != nil && *patch.MaxAmount < 0) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amounts must be non-negative"})
	}

	s := c.session(ctx)
	s.SetFilters(patch)
	return ctx.JSON(s.State())
}

// SetSort godoc
// @Summary Update queue sort
// @Tags queue
// @Accept json
// @Produce json
// @Param sort body SortConfig true "Sort configuration"
// @Success 200 {object} QueryState
// @Router /api/queue/sort [put]
func (c *QueueController) SetSort(ctx *fiber.Ctx) error {
	var sort SortConfig
	if err := ctx.BodyParser(&sort); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	s := c.session(ctx)
	s.SetSort(sort)
	return ctx.JSON(s.State())
}

// SetPage godoc
// @Summary Move to a page
// @Tags queue
// @Accept json
// @Produce json
// @Success 200 {object} QueryState
// @Router /api/queue/page [put]
func (c *QueueController) SetPage(ctx *fiber.Ctx) error {
	var body struct {
		Page int `json:"page"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	s := c.session(ctx)
	s.SetPage(body.Page)
	return ctx.JSON(s.State())
}

// SetPageSize godoc
// @Summary Change the page size
// @Tags queue
// @Accept json
// @Produce json
// @Success 200 {object} QueryState
// @Router /api/queue/page-size [put]
func (c *QueueController) SetPageSize(ctx *fiber.Ctx) error {
	var body struct {
		Size int `json:"size"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	s := c.session(ctx)
	s.SetPageSize(body.Size)
	return ctx.JSON(s.State())
}

// ToggleSelection godoc
// @Summary Toggle one item in the selection
// @Tags queue
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} Summary
// @Failure 409 {object} map[string]string "Item is not on the loaded page"
// @Router /api/queue/selection/{id}/toggle [post]
func (c *QueueController) ToggleSelection(ctx *fiber.Ctx) error {
	s := c.session(ctx)
	if err := s.Toggle(ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(s.SelectionSummary())
}

// SelectAll godoc
// @Summary Select or deselect every loaded item
// @Description Toggle semantics: clears the selection when everything is already selected
// @Tags queue
// @Produce json
// @Success 200 {object} Summary
// @Router /api/queue/selection/all [post]
func (c *QueueController) SelectAll(ctx *fiber.Ctx) error {
	s := c.session(ctx)
	s.SelectAll()
	return ctx.JSON(s.SelectionSummary())
}

// ClearSelection godoc
// @Summary Clear the selection
// @Tags queue
// @Produce json
// @Success 200 {object} Summary
// @Router /api/queue/selection [delete]
func (c *QueueController) ClearSelection(ctx *fiber.Ctx) error {
	s := c.session(ctx)
	s.ClearSelection()
	return ctx.JSON(s.SelectionSummary())
}

// GetSelection godoc
// @Summary Read the selection aggregates
// @Tags queue
// @Produce json
// @Success 200 {object} Summary
// @Router /api/queue/selection [get]
func (c *QueueController) GetSelection(ctx *fiber.Ctx) error {
	return ctx.JSON(c.session(ctx).SelectionSummary())
}

// GetState godoc
// @Summary Read the current query state
// @Tags queue
// @Produce json
// @Success 200 {object} QueryState
// @Router /api/queue/state [get]
func (c *QueueController) GetState(ctx *fiber.Ctx) error {
	return ctx.JSON(c.session(ctx).State())
}
