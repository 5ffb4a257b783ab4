package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lehigh-university-libraries/barcoder/internal/config"
	"github.com/lehigh-university-libraries/barcoder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService mimics the generation service's four endpoints
type fakeService struct {
	mu   sync.Mutex
	logs []models.GenerationLog
	srv  *httptest.Server
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate/", func(w http.ResponseWriter, r *http.Request) {
		var req models.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		log := models.GenerationLog{
			ID:       int64(len(f.logs) + 1),
			Filename: "qrcode_" + req.CodeType + "_1403_1.png",
			Data:     req.Data,
			Label:    req.Label,
			CodeType: req.CodeType,
			Date:     "14/03/2025",
			Time:     "09:26 am",
			ImageURL: f.srv.URL + "/media/qr_codes/qrcode_" + req.CodeType + "_1403_1.png",
		}
		f.logs = append([]models.GenerationLog{log}, f.logs...)
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.GenerateResponse{Success: true, Message: "Successfully generated " + req.CodeType, Log: log, ImageURL: log.ImageURL})
	})
	mux.HandleFunc("GET /api/logs/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.logs)
	})
	mux.HandleFunc("DELETE /api/logs/clear/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.logs = nil
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"message":"All logs cleared successfully"}`))
	})
	mux.HandleFunc("GET /api/logs/csv/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("filename,data,label,code_type,date,time,location\r\n"))
	})
	mux.HandleFunc("GET /media/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n"))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvTimeout, "")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateAndList(t *testing.T) {
	svc := newFakeService(t)
	apiURL := svc.srv.URL + "/api"
	saveDir := t.TempDir()

	out, err := run(t, "generate", "--api-url", apiURL, "--type", "Code39", "--data", " PRODUCT-123 ", "--save", saveDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated Successfully!")
	assert.Contains(t, out, "History now holds 1 generation(s)")

	image, err := os.ReadFile(filepath.Join(saveDir, "qrcode_Code39_1403_1.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), image)

	out, err = run(t, "logs", "list", "--api-url", apiURL)
	require.NoError(t, err)
	assert.Contains(t, out, "PRODUCT-123")
	assert.Contains(t, out, "Code39")
}

func TestGenerateValidationFailsOffline(t *testing.T) {
	// nothing listens here; validation must fail before any request
	_, err := run(t, "generate", "--api-url", "http://127.0.0.1:1/api", "--type", "EAN13", "--data", "1234567890123")
	require.Error(t, err)
	assert.Equal(t, "Data exceeds maximum length of 12 characters", err.Error())

	_, err = run(t, "generate", "--api-url", "http://127.0.0.1:1/api", "--data", "abc")
	require.Error(t, err)
	assert.Equal(t, "Please select a code type", err.Error())
}

func TestLogsClear(t *testing.T) {
	svc := newFakeService(t)
	apiURL := svc.srv.URL + "/api"
	svc.logs = []models.GenerationLog{{ID: 1, CodeType: "UPC"}}

	_, err := run(t, "logs", "clear", "--api-url", apiURL)
	require.Error(t, err)
	assert.Len(t, svc.logs, 1)

	out, err := run(t, "logs", "clear", "--yes", "--api-url", apiURL)
	require.NoError(t, err)
	assert.Contains(t, out, "All logs cleared successfully")
	assert.Empty(t, svc.logs)

	out, err = run(t, "logs", "--api-url", apiURL)
	require.NoError(t, err)
	assert.Contains(t, out, "No codes generated yet")
}

func TestLogsExport(t *testing.T) {
	svc := newFakeService(t)
	apiURL := svc.srv.URL + "/api"
	svc.logs = []models.GenerationLog{{ID: 1, CodeType: "UPC", Data: "12345678901"}}
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "qr_generation_log.csv")
	_, err := run(t, "logs", "export", "--api-url", apiURL, "--output", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "filename,data,label,code_type,date,time,location\r\n", string(data))

	out, err := run(t, "logs", "export", "--api-url", apiURL, "--format", "json", "--output", "-")
	require.NoError(t, err)
	var logs []models.GenerationLog
	require.NoError(t, json.Unmarshal([]byte(out), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "12345678901", logs[0].Data)

	parquetPath := filepath.Join(dir, "nested", "history.parquet")
	_, err = run(t, "logs", "export", "--api-url", apiURL, "--format", "parquet", "--output", parquetPath)
	require.NoError(t, err)
	info, err := os.Stat(parquetPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = run(t, "logs", "export", "--api-url", apiURL, "--format", "xlsx")
	assert.Error(t, err)
}

func TestTypes(t *testing.T) {
	out, err := run(t, "types", "Code128", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"max_length": 48`)

	_, err = run(t, "types", "Hanxin")
	assert.Error(t, err)
}

func TestInvalidAPIURL(t *testing.T) {
	_, err := run(t, "logs", "--api-url", "localhost:8000")
	assert.Error(t, err)
}
