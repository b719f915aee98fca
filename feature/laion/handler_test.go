package laion

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http/httptest"
	"testing"

	"laion-dataset/core/metadata"
	"laion-dataset/core/server"
	"laion-dataset/core/shards"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc, _ := newTestService(t)
	app := fiber.New()
	require.NoError(t, NewFeature(svc, server.Config{MaxRecordLimit: 2}).Load(app))
	return app
}

func TestHandler_Info(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/dataset/info", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var info Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, Version, info.Version)
	assert.Len(t, info.Features, 8)
}

func TestHandler_Shard(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/dataset/shards/2", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/dataset/shards/41455", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/dataset/shards/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandler_ShardRecords(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/dataset/shards/2/records?limit=50", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Count   int          `json:"count"`
		Records []RecordView `json:"records"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count, "limit is capped by MaxRecordLimit")
	assert.Equal(t, "2_0", body.Records[0].Key)
	assert.Equal(t, len("jpeg:0.jpg"), body.Records[0].ImageSize)

	resp, err = app.Test(httptest.NewRequest("GET", "/dataset/shards/9/records", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandler_Record(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/dataset/records/2_2", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var view RecordView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "2.jpg", view.MemberName)
	assert.Equal(t, "caption 2", view.Fields[FieldCaption])

	resp, err = app.Test(httptest.NewRequest("GET", "/dataset/records/2_3", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/dataset/records/bad", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandler_RecordImage(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/dataset/records/2_0/image", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg:0.jpg"), body)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(shards.ErrShardOutOfRange))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(shards.ErrInvalidKey))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(ErrRecordNotFound))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(&fs.PathError{Op: "open", Err: fs.ErrNotExist}))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(metadata.ErrRowOutOfRange))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(errors.New("boom")))
}
