package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
	"github.com/rickyckwong/transfer-suggest/internal/service"
)

const datasetFixture = `Article,Article Description,RP Type,Site,OM,MOQ,SaSa Net Stock,Target,Pending Received,Safety Stock,Last Month Sold Qty,MTD Sold Qty
100001,Hand Cream 30ml,ND,S001,G1,0,10,0,0,0,1,0
100001,Hand Cream 30ml,RF,S002,G1,2,0,5,0,3,6,4
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewTransferHandler(service.NewTransferService(nil, nil, nil, nil), t.TempDir())
	router := gin.New()
	router.POST("/analyze", handler.Analyze)
	router.GET("/modes", handler.GetModes)
	router.GET("/runs", handler.GetRuns)
	router.GET("/runs/:id", handler.GetRun)
	router.GET("/reports", handler.GetReports)
	return router
}

func multipartDataset(t *testing.T, mode, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("mode", mode))
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(t)
	body, contentType := multipartDataset(t, "A", "inventory.csv", datasetFixture)

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.ModeConservative, result.Mode)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, 5, result.Recommendations[0].Qty)
}

func TestAnalyzeEndpointRejectsBadMode(t *testing.T) {
	router := newTestRouter(t)
	body, contentType := multipartDataset(t, "Z", "inventory.csv", datasetFixture)

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpointRejectsBadDataset(t *testing.T) {
	router := newTestRouter(t)
	body, contentType := multipartDataset(t, "A", "inventory.csv", "Article,Site\n100001,S001\n")

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required columns")
}

func TestAnalyzeEndpointRequiresFile(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("mode", "A"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetModesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/modes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var modes []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &modes))
	require.Len(t, modes, 3)
	assert.Equal(t, "A", modes[0]["mode"])
	assert.Equal(t, "Conservative Transfer", modes[0]["name"])
}

func TestGetRunsEndpointWithoutHistory(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetRunEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/runs/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/runs/abc", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReportsEndpointWithoutArchive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
