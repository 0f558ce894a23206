package catalog

import (
	"encoding/json"
	"errors"

	"daysync/core/logger"
	"daysync/core/merge"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the catalog endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/merge", h.HandleMerge)
	group.Post("/sync", h.HandleSync)
}

type mergeRequest struct {
	Local  json.RawMessage `json:"local"`
	Remote json.RawMessage `json:"remote"`
}

// MergeResponse is the body of a catalog merge.
type MergeResponse struct {
	Products []merge.Product   `json:"products"`
	Stats    merge.CatalogStats `json:"stats"`
}

func decodeSide(raw json.RawMessage) ([]merge.Product, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	return merge.DecodeProducts(raw)
}

// HandleMerge merges the two product lists in the body.
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	var req mergeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	local, err := decodeSide(req.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid local catalog: " + err.Error()})
	}
	remote, err := decodeSide(req.Remote)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid remote catalog: " + err.Error()})
	}

	products, stats := h.service.Merge(local, remote)
	if products == nil {
		products = []merge.Product{}
	}
	return c.JSON(MergeResponse{Products: products, Stats: stats})
}

// HandleSync syncs the catalog. ?dry_run=true plans without writing.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	res, err := h.service.Sync(c.UserContext(), c.QueryBool("dry_run"))
	if err != nil {
		if errors.Is(err, ErrSyncUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Catalog sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}
