package integrity

import (
	"daysync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/layout", h.HandleLayoutCheck)
	group.Get("/snapshots", h.HandleSnapshotCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck runs every check. A failing check is reported in place.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]any)

	if layout, err := h.service.CheckLayout(ctx); err != nil {
		report["layout"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["layout"] = layout
	}

	if snapshots, err := h.service.CheckSnapshots(ctx); err != nil {
		report["snapshots"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["snapshots"] = snapshots
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = fiber.Map{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	return c.JSON(report)
}

// HandleLayoutCheck checks the bucket. ?fix=true creates a missing bucket.
func (h *Handler) HandleLayoutCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.UserContext()

	report, err := h.service.CheckLayout(ctx)
	if err != nil {
		l.Error("Layout check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.BucketExists && c.QueryBool("fix") {
		l.Info("Attempting to create missing bucket")
		if err := h.service.FixLayout(ctx); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		if report, err = h.service.CheckLayout(ctx); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if len(report.Stray) > 0 {
		l.Warn("Stray objects next to day snapshots", zap.Strings("stray", report.Stray))
	}
	return c.JSON(report)
}

// HandleSnapshotCheck lists snapshots that cannot be decoded.
func (h *Handler) HandleSnapshotCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports, err := h.service.CheckSnapshots(c.UserContext())
	if err != nil {
		l.Error("Snapshot check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleSchemaCheck compares the local tables with the models.
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
