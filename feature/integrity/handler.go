package integrity

import (
	"errors"

	"laion-dataset/core/logger"
	"laion-dataset/core/shards"
	"laion-dataset/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.CatalogReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/shards", h.HandleShardsCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Shards, Structure, Catalog). Checking the full shard range may take a while.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	// Shards
	if shardReport, err := h.service.CheckShards(ctx, shards.Range{}); err != nil {
		report["shards"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["shards"] = shardReport
	}

	// Structure
	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	// Catalog
	if catalogReport, err := h.service.CheckCatalog(); err != nil {
		report["catalog"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["catalog"] = catalogReport
	}

	return c.JSON(report)
}

// HandleShardsCheck checks the shard files of the manual directory.
// @Summary Check Shard Files
// @Description Lists shards whose archive or metadata file is missing. Defaults to the configured shard range.
// @Tags integrity
// @Accept json
// @Produce json
// @Param start query int false "First shard index"
// @Param end query int false "End of the shard range (exclusive)"
// @Success 200 {object} checks.ShardReport "Shard Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/shards [get]
func (h *Handler) HandleShardsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	r := h.service.Range()
	r.Start = c.QueryInt("start", r.Start)
	r.End = c.QueryInt("end", r.End)

	report, err := h.service.CheckShards(c.Context(), r)
	if err != nil {
		if errors.Is(err, shards.ErrShardOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Shard check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched() {
		l.Warn("Missing shard files detected",
			zap.Int("missing_archives", len(report.MissingArchives)),
			zap.Int("missing_metadata", len(report.MissingMetadata)))
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the required folder structure exists in the storage bucket. Optionally fixes missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleCatalogCheck checks the catalog schema.
// @Summary Check Catalog Schema
// @Description Checks if the catalog database table matches the record model.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.CatalogReport "Catalog Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting catalog schema check")

	report, err := h.service.CheckCatalog()
	if err != nil {
		l.Error("Catalog schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
