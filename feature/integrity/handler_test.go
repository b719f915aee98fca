package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"laion-dataset/core/shards"
	"laion-dataset/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", setupSQLite(t), setupManualDir(t), shards.Range{Start: 0, End: 2}, zap.NewNop())
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient
}

func TestHandleStructureCheck(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	ch := make(chan minio.ObjectInfo)
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	req := httptest.NewRequest("GET", "/integrity/structure", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "checked", body["status"])
	assert.NotEmpty(t, body["missing"])
}

func TestHandleStructureFix(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	ch := make(chan minio.ObjectInfo)
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))
	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	req := httptest.NewRequest("GET", "/integrity/structure?fix=true", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "fixed", body["status"])
	mockClient.AssertNumberOfCalls(t, "PutObject", 2)
}

func TestHandleShardsCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/integrity/shards", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.EqualValues(t, 2, body["checked"])
	assert.Equal(t, []any{float64(1)}, body["missing_metadata"])

	req = httptest.NewRequest("GET", "/integrity/shards?start=5&end=3", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleCatalogCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/integrity/catalog", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, true, body["matched"])
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient := setupTestApp(t)

	// Fail BucketExists to verify the combined report carries per-check errors.
	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, assert.AnError)

	req := httptest.NewRequest("GET", "/integrity", nil)
	resp, err := app.Test(req, 2000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["structure"]["status"])
	assert.EqualValues(t, 2, body["shards"]["checked"])
	assert.Equal(t, true, body["catalog"]["matched"])
}

func TestHandleStructureCheck_Error(t *testing.T) {
	app, mockClient := setupTestApp(t)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, assert.AnError)

	req := httptest.NewRequest("GET", "/integrity/structure", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
