package laion

import (
	"errors"
	"net/http"
	"strconv"

	"laion-dataset/core/logger"
	"laion-dataset/core/server"
	"laion-dataset/core/shards"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RecordView is the JSON form of a record, without image bytes.
type RecordView struct {
	Key        string         `json:"key"`
	ShardIdx   int            `json:"shard_idx"`
	RowIdx     int            `json:"row_idx"`
	MemberName string         `json:"member_name"`
	ImageSize  int            `json:"image_size"`
	Fields     map[string]any `json:"fields"`
}

// NewRecordView converts a record for JSON output.
func NewRecordView(rec Record) RecordView {
	return RecordView{
		Key:        rec.Key,
		ShardIdx:   rec.ShardIdx,
		RowIdx:     rec.RowIdx,
		MemberName: rec.MemberName,
		ImageSize:  len(rec.Image),
		Fields:     rec.Fields,
	}
}

// Handler handles HTTP requests for the dataset.
type Handler struct {
	service *Service
	server  server.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, cfg server.Config) *Handler {
	return &Handler{service: service, server: cfg}
}

// RegisterRoutes registers the dataset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dataset")
	group.Get("/info", h.HandleInfo)
	group.Get("/shards/:idx", h.HandleShard)
	group.Get("/shards/:idx/records", h.HandleShardRecords)
	group.Get("/records/:key", h.HandleRecord)
	group.Get("/records/:key/image", h.HandleRecordImage)
}

// HandleInfo returns the dataset description.
// @Summary Dataset Info
// @Description Returns the dataset name, version, shard count and feature schema.
// @Tags dataset
// @Produce json
// @Success 200 {object} laion.Info "Dataset Info"
// @Router /dataset/info [get]
func (h *Handler) HandleInfo(c *fiber.Ctx) error {
	return c.JSON(h.service.Info())
}

// HandleShard reports the files of one shard.
// @Summary Shard Status
// @Description Returns the expected archive and metadata paths of a shard and whether they exist.
// @Tags dataset
// @Produce json
// @Param idx path int true "Shard index"
// @Success 200 {object} laion.ShardStatus "Shard Status"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /dataset/shards/{idx} [get]
func (h *Handler) HandleShard(c *fiber.Ctx) error {
	idx, err := c.ParamsInt("idx")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid shard index"})
	}

	status, err := h.service.Shard(idx)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(status)
}

// HandleShardRecords lists the records of one shard.
// @Summary Shard Records
// @Description Generates the records of a shard in archive order. Image bytes are omitted.
// @Tags dataset
// @Produce json
// @Param idx path int true "Shard index"
// @Param limit query int false "Maximum number of records"
// @Success 200 {object} map[string]interface{} "Records"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Shard files missing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /dataset/shards/{idx}/records [get]
func (h *Handler) HandleShardRecords(c *fiber.Ctx) error {
	idx, err := c.ParamsInt("idx")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid shard index"})
	}
	limit := h.server.RecordLimit(c.QueryInt("limit", 0))

	records, err := h.service.ShardRecords(c.Context(), idx, limit)
	if err != nil {
		return h.fail(c, err)
	}

	views := make([]RecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, NewRecordView(rec))
	}
	return c.JSON(fiber.Map{
		"shard":   idx,
		"count":   len(views),
		"records": views,
	})
}

// HandleRecord returns the fields of one record.
// @Summary Get Record
// @Description Looks up a record by its "<shard>_<row>" key.
// @Tags dataset
// @Produce json
// @Param key path string true "Record key (e.g. '7_42')"
// @Success 200 {object} laion.RecordView "Record"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /dataset/records/{key} [get]
func (h *Handler) HandleRecord(c *fiber.Ctx) error {
	rec, err := h.service.Record(c.Context(), c.Params("key"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(NewRecordView(*rec))
}

// HandleRecordImage returns the image bytes of one record.
// @Summary Get Record Image
// @Description Streams the encoded image of a record.
// @Tags dataset
// @Produce octet-stream
// @Param key path string true "Record key (e.g. '7_42')"
// @Success 200 {file} binary "Image"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /dataset/records/{key}/image [get]
func (h *Handler) HandleRecordImage(c *fiber.Ctx) error {
	rec, err := h.service.Record(c.Context(), c.Params("key"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, http.DetectContentType(rec.Image))
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(rec.Image)))
	return c.Send(rec.Image)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Dataset request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps dataset errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shards.ErrShardOutOfRange), errors.Is(err, shards.ErrInvalidKey):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrRecordNotFound), IsNotExist(err):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
