package day

import (
	"encoding/json"
	"errors"

	"daysync/core/logger"
	"daysync/core/merge"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the day endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the day routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/days")
	group.Post("/merge", h.HandleMerge)
	group.Post("/sync", h.HandleSyncAll)
	group.Post("/:date/sync", h.HandleSync)
}

type mergeRequest struct {
	Local  json.RawMessage `json:"local"`
	Remote json.RawMessage `json:"remote"`
}

// decodeSide reads one snapshot of a merge request. A missing side has no date.
func decodeSide(raw json.RawMessage) (merge.DayRecord, error) {
	if len(raw) == 0 {
		return merge.DayRecord{}, nil
	}
	return merge.DecodeDayRecord(raw)
}

// HandleMerge merges the two snapshots in the body.
// It answers 200 with the merged record, or 204 when they already agree.
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	var req mergeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	local, err := decodeSide(req.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid local record: " + err.Error()})
	}
	remote, err := decodeSide(req.Remote)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid remote record: " + err.Error()})
	}
	if !ValidDate(local.Date) || !ValidDate(remote.Date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "both records need a valid date"})
	}
	if local.Date != remote.Date {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "local and remote dates differ"})
	}

	res := h.service.Merge(local, remote)
	if res.NoOp {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(res.Record)
}

// HandleSync syncs one date. ?dry_run=true plans without writing.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	date := c.Params("date")
	l := logger.WithRayID(h.service.logger, c)

	res, err := h.service.Sync(c.UserContext(), date, c.QueryBool("dry_run"))
	if err != nil {
		return h.syncError(c, l, err)
	}
	return c.JSON(res)
}

// HandleSyncAll syncs every known date. ?dry_run=true plans without writing.
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.SyncAll(c.UserContext(), c.QueryBool("dry_run"))
	if err != nil {
		return h.syncError(c, l, err)
	}
	return c.JSON(report)
}

func (h *Handler) syncError(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrSyncUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error("Day sync failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
