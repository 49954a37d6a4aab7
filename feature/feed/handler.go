package feed

import (
	_ "embed"
	"errors"

	"photofeed/core/logger"
	"photofeed/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed viewer.html
var viewerPage string

// Handler handles HTTP requests for the photo feed.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the feed routes. The read endpoint is public;
// administrative routes sit behind the API key.
func (h *Handler) RegisterRoutes(app fiber.Router, apiKey string) {
	app.Get("/", h.HandleFeed)

	admin := app.Group("/admin", auth.New(auth.Config{ApiKey: apiKey}))
	admin.Get("/folder", h.HandleGetFolder)
	admin.Put("/folder", h.HandleSetFolder)
	admin.Delete("/index", h.HandleClearIndex)
	admin.Post("/reconcile", h.HandleReconcile)
}

// HandleFeed serves the index or the HTML viewer.
// @Summary Photo feed
// @Description Returns the persisted index as a JSON array when action=index; otherwise serves the HTML viewer.
// @Tags feed
// @Produce json,html
// @Param action query string false "Set to 'index' for the JSON feed"
// @Success 200 {array} feed.Entry "Feed entries"
// @Router / [get]
func (h *Handler) HandleFeed(c *fiber.Ctx) error {
	if c.Query("action") != "index" {
		c.Type("html", "utf-8")
		return c.SendString(viewerPage)
	}

	l := logger.WithRayID(h.logger, c)
	entries, err := h.service.Index(c.Context())
	if err != nil {
		l.Error("Failed to load index", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if entries == nil {
		entries = []Entry{}
	}
	return c.JSON(entries)
}

// HandleGetFolder returns the effective folder reference.
// @Summary Get folder reference
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string "Folder"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /admin/folder [get]
func (h *Handler) HandleGetFolder(c *fiber.Ctx) error {
	folder, err := h.service.Folder(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"folder": folder})
}

type setFolderRequest struct {
	Folder string `json:"folder"`
}

// HandleSetFolder stores the folder reference in the property store.
// @Summary Set folder reference
// @Tags admin
// @Accept json
// @Produce json
// @Param body body feed.setFolderRequest true "Folder reference"
// @Success 200 {object} map[string]string "Folder"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /admin/folder [put]
func (h *Handler) HandleSetFolder(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req setFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Folder == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "folder is required"})
	}

	if err := h.service.SetFolder(c.Context(), req.Folder); err != nil {
		l.Error("Failed to store folder reference", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Folder reference updated", zap.String("folder", req.Folder))
	return c.JSON(fiber.Map{"folder": req.Folder})
}

// HandleClearIndex deletes the persisted index document.
// @Summary Clear index
// @Description Removes the persisted index document; the next pass rebuilds it from scratch.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string "Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /admin/index [delete]
func (h *Handler) HandleClearIndex(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if err := h.service.ClearIndex(c.Context()); err != nil {
		l.Error("Failed to clear index", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Index cleared")
	return c.JSON(fiber.Map{"status": "cleared"})
}

// HandleReconcile triggers a reconciliation pass.
// @Summary Run reconciliation
// @Description Runs one scan-diff-enrich-merge-persist pass and returns its report.
// @Tags admin
// @Produce json
// @Success 200 {object} feed.PassReport "Pass report"
// @Failure 409 {object} map[string]string "Folder not configured or not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /admin/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Manual reconciliation triggered")

	report, err := h.service.Reconcile(c.Context())
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrFolderNotConfigured) || errors.Is(err, ErrFolderNotFound) {
			status = fiber.StatusConflict
		}
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
