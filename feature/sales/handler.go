package sales

import (
	"errors"
	"net/url"

	"sales-sync/core/logger"
	"sales-sync/core/reconcile"
	"sales-sync/core/snapshot"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SyncRequest is the body of POST /sales/sync.
type SyncRequest struct {
	Locator string `json:"locator"`
	DryRun  bool   `json:"dry_run"`
}

// Handler handles HTTP requests for sales.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sales routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sales")
	group.Post("/sync", h.HandleSync)
	group.Get("/:id", h.HandleGetSale)
}

// HandleSync runs a sync of the snapshot named in the body.
// A run that completes with record errors still answers 200; callers read "errors".
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Locator == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "locator is required"})
	}

	result, shared, err := h.service.SyncShared(c.UserContext(), req.Locator, RunOptions{DryRun: req.DryRun})
	if err != nil {
		l.Error("Sync request failed", zap.String("locator", req.Locator), zap.Error(err))
		return c.Status(syncStatus(err)).JSON(fiber.Map{
			"error":  err.Error(),
			"result": result,
		})
	}
	if shared {
		l.Info("Sync request joined a running sync", zap.String("locator", req.Locator))
	}

	return c.JSON(result)
}

func syncStatus(err error) int {
	var inputErr *snapshot.InputError
	switch {
	case errors.Is(err, snapshot.ErrLocatorNotAllowed):
		return fiber.StatusForbidden
	case errors.As(err, &inputErr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrEmptySnapshot), errors.Is(err, reconcile.ErrDuplicateIdentity):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleGetSale returns the stored sale with the given composite id.
func (h *Handler) HandleGetSale(c *fiber.Ctx) error {
	id, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	sale, err := h.service.Lookup(c.UserContext(), id)
	if errors.Is(err, ErrSaleNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Sale lookup failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sale)
}
