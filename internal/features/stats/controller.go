package stats

import (
	"github.com/gofiber/fiber/v2"
)

type StatsController struct {
	Poller *Poller
	Hub    *Hub
}

func NewStatsController(poller *Poller, hub *Hub) *StatsController {
	return &StatsController{Poller: poller, Hub: hub}
}

// GetStats godoc
// @Summary Read the latest queue statistics
// @Tags stats
// @Produce json
// @Success 200 {object} Snapshot
// @Failure 503 {object} map[string]string "No snapshot collected yet"
// @Router /api/stats [get]
func (c *StatsController) GetStats(ctx *fiber.Ctx) error {
	snap, ok := c.Poller.Latest()
	if !ok {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Statistics not available yet"})
	}
	return ctx.JSON(snap)
}
