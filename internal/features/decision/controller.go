package decision

import (
	"context"
	"errors"

	"go-approvals/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Refresher re-loads a reviewer's queue view after a mutation. The
// refreshed page is the source of truth; nothing is patched locally.
type Refresher interface {
	RefreshQueue(ctx context.Context, reviewerID string) error
}

type DecisionController struct {
	Executor  Executor
	History   HistorySource
	Refresher Refresher
}

func NewDecisionController(executor Executor, history HistorySource, refresher Refresher) *DecisionController {
	return &DecisionController{
		Executor:  executor,
		History:   history,
		Refresher: refresher,
	}
}

// Approve godoc
// @Summary Approve a quotation
// @Description Approve one quotation and refresh the queue from the server
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Quotation not processable"
// @Failure 404 {object} map[string]string "Quotation not found"
// @Router /api/approvals/{id}/approve [post]
func (c *DecisionController) Approve(ctx *fiber.Ctx) error {
	return c.execute(ctx, ActionApprove, false)
}

// Reject godoc
// @Summary Reject a quotation
// @Description Reject one quotation with a reason and refresh the queue
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Missing reason"
// @Router /api/approvals/{id}/reject [post]
func (c *DecisionController) Reject(ctx *fiber.Ctx) error {
	return c.execute(ctx, ActionReject, true)
}

// RequestChanges godoc
// @Summary Return a quotation for changes
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} map[string]string
// @Router /api/approvals/{id}/request-changes [post]
func (c *DecisionController) RequestChanges(ctx *fiber.Ctx) error {
	return c.execute(ctx, ActionRequestChanges, false)
}

func (c *DecisionController) execute(ctx *fiber.Ctx, action Action, requireReason bool) error {
	quotationID := ctx.Params("id")

	var body struct {
		Comments string `json:"comments"`
		Reason   string `json:"reason"`
	}
	_ = ctx.BodyParser(&body)

	if requireReason && body.Reason == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A reason is required to reject"})
	}

	reviewerID := middleware.ReviewerID(ctx)
	opts := Opts{Comments: body.Comments, Reason: body.Reason, PerformedBy: reviewerID}

	newStatus, err := c.Executor.ExecuteDecision(ctx.UserContext(), quotationID, action, opts)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrNotProcessable):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			// State did not change, so no refresh
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	// Refresh from the server rather than patching the local item
	if err := c.Refresher.RefreshQueue(ctx.UserContext(), reviewerID); err != nil {
		return ctx.JSON(fiber.Map{
			"new_status":    newStatus,
			"refresh_error": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{"new_status": newStatus})
}

// GetHistory godoc
// @Summary Read a quotation's approval history
// @Description Audit trail ordered by timestamp descending
// @Tags approvals
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {array} HistoryEntry
// @Router /api/approvals/{id}/history [get]
func (c *DecisionController) GetHistory(ctx *fiber.Ctx) error {
	entries, err := c.History.FetchHistory(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(entries)
}
