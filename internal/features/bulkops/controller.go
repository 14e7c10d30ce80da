package bulkops

import (
	"errors"

	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SessionSource yields the reviewer's queue session without this package
// depending on the queue feature's concrete session type
type SessionSource interface {
	ForReviewer(reviewerID string) QueueSession
}

type BulkController struct {
	Manager  *Manager
	Sessions SessionSource
	Repo     OperationRepository
}

func NewBulkController(manager *Manager, sessions SessionSource, repo OperationRepository) *BulkController {
	return &BulkController{Manager: manager, Sessions: sessions, Repo: repo}
}

// ValidateSelection godoc
// @Summary Dry-run validation of the current selection
// @Description Runs the eligibility rules without executing anything
// @Tags bulk
// @Accept json
// @Produce json
// @Param request body Request true "Bulk action"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /api/bulk/validate [post]
func (c *BulkController) ValidateSelection(ctx *fiber.Ctx) error {
	var req Request
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !req.Action.Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown action"})
	}

	reviewerID := middleware.ReviewerID(ctx)
	session := c.Sessions.ForReviewer(reviewerID)
	result := c.Manager.Orchestrator(reviewerID).Validate(session, req)
	return ctx.JSON(result)
}

// ExecuteBulk godoc
// @Summary Execute a bulk action over the current selection
// @Description Validates first; a failing selection never reaches the server
// @Tags bulk
// @Accept json
// @Produce json
// @Param request body Request true "Bulk action"
// @Success 200 {object} Snapshot
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "An operation is already processing"
// @Failure 422 {object} Result "Selection failed validation"
// @Router /api/bulk/execute [post]
func (c *BulkController) ExecuteBulk(ctx *fiber.Ctx) error {
	var req Request
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !req.Action.Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown action"})
	}

	reviewerID := middleware.ReviewerID(ctx)
	session := c.Sessions.ForReviewer(reviewerID)
	orchestrator := c.Manager.Orchestrator(reviewerID)

	err := orchestrator.Execute(ctx.UserContext(), session, req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(Result{
				IsValid: false,
				Errors:  verr.Violations,
			})
		case errors.Is(err, ErrOperationInFlight):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		// Batch failure: the snapshot carries the FAILED state and message
		return ctx.Status(fiber.StatusBadGateway).JSON(orchestrator.Status())
	}
	return ctx.JSON(orchestrator.Status())
}

// GetStatus godoc
// @Summary Read the orchestrator snapshot
// @Tags bulk
// @Produce json
// @Success 200 {object} Snapshot
// @Router /api/bulk/status [get]
func (c *BulkController) GetStatus(ctx *fiber.Ctx) error {
	return ctx.JSON(c.Manager.Orchestrator(middleware.ReviewerID(ctx)).Status())
}

// ResetBulk godoc
// @Summary Acknowledge a finished operation
// @Description Returns to IDLE, clears the selection and refreshes the queue
// @Tags bulk
// @Produce json
// @Success 200 {object} Snapshot
// @Failure 409 {object} map[string]string "Operation still in flight"
// @Router /api/bulk/reset [post]
func (c *BulkController) ResetBulk(ctx *fiber.Ctx) error {
	reviewerID := middleware.ReviewerID(ctx)
	session := c.Sessions.ForReviewer(reviewerID)
	orchestrator := c.Manager.Orchestrator(reviewerID)

	if err := orchestrator.Reset(ctx.UserContext(), session); err != nil {
		if errors.Is(err, ErrNotResettable) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		// Refresh failure after the reset itself succeeded
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    err.Error(),
			"snapshot": orchestrator.Status(),
		})
	}
	return ctx.JSON(orchestrator.Status())
}

// ListOperations godoc
// @Summary List the reviewer's recent bulk operations
// @Tags bulk
// @Produce json
// @Success 200 {array} BulkOperation
// @Router /api/bulk/operations [get]
func (c *BulkController) ListOperations(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	ops, err := c.Repo.FindByReviewer(ctx.UserContext(), middleware.ReviewerID(ctx), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(ops)
}
