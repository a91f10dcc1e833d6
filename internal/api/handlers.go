package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/KaramelBytes/datasight-cli/internal/analysis"
	"github.com/KaramelBytes/datasight-cli/internal/parser"
	"github.com/KaramelBytes/datasight-cli/internal/state"
	"github.com/go-chi/chi/v5"
)

const (
	defaultMaxUpload   = 10 << 20
	defaultRawFilename = "dataset.csv"
)

type Handler struct {
	Store          *state.Store
	Reporter       *analysis.Reporter
	MaxUploadBytes int64
	PreviewRows    int
}

func NewHandler(store *state.Store, reporter *analysis.Reporter, maxUploadBytes int64, previewRows int) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUpload
	}
	if previewRows <= 0 {
		previewRows = analysis.DefaultPreviewRows
	}
	if reporter == nil {
		reporter = analysis.NewReporter()
	}
	return &Handler{Store: store, Reporter: reporter, MaxUploadBytes: maxUploadBytes, PreviewRows: previewRows}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)
	r.Post("/api/analyze", h.AnalyzeRaw)
	r.Route("/api/datasets", func(r chi.Router) {
		r.Post("/", h.CreateDataset)
		r.Get("/{id}", h.GetDataset)
		r.Get("/{id}/preview", h.GetPreview)
		r.Get("/{id}/report", h.GetReport)
		r.Delete("/{id}", h.DeleteDataset)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// CreateDataset accepts a multipart upload (field "file"), analyzes it and
// keeps it as a session.
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		if isTooLarge(err) {
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !parser.Supports(header.Filename) {
		http.Error(w, "Only CSV files are allowed", http.StatusUnsupportedMediaType)
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading file", http.StatusBadRequest)
		return
	}
	rows, err := parser.ParseBytes(header.Filename, data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error processing file: %v", err), http.StatusBadRequest)
		return
	}
	sess := h.Store.Create(header.Filename, rows, analysis.AnalyzeDataset(rows))
	log.Printf("📁 Dataset %s loaded as %s (%d rows, %d columns)", sess.Filename, sess.ID, sess.Analysis.RowCount, sess.Analysis.ColumnCount)

	writeJSON(w, http.StatusCreated, h.datasetResponse(sess))
}

// AnalyzeRaw analyzes a CSV request body without keeping a session.
func (h *Handler) AnalyzeRaw(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = defaultRawFilename
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxUploadBytes))
	if err != nil {
		if isTooLarge(err) {
			http.Error(w, "Body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Error reading body", http.StatusBadRequest)
		return
	}
	rows := parser.ParseCSV(string(data))
	a := analysis.AnalyzeDataset(rows)
	writeJSON(w, http.StatusOK, DatasetResponse{
		Filename:  filename,
		Analysis:  a,
		Readiness: readinessResponse(a),
	})
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.datasetResponse(sess))
}

func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	n := h.PreviewRows
	if s := r.URL.Query().Get("rows"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			http.Error(w, "rows must be a positive integer", http.StatusBadRequest)
			return
		}
		n = v
	}
	writeJSON(w, http.StatusOK, analysis.BuildPreview(sess.Filename, sess.Rows, n))
}

// GetReport serves the text report as a file download.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	report := h.Reporter.Generate(sess.Filename, sess.Rows, sess.Analysis)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", analysis.ReportFilename(sess.Filename)))
	w.Write([]byte(report))
}

func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(id); err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*state.Session, bool) {
	sess, err := h.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, "Dataset not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return sess, true
}

func (h *Handler) datasetResponse(sess *state.Session) DatasetResponse {
	p := analysis.BuildPreview(sess.Filename, sess.Rows, h.PreviewRows)
	created := sess.CreatedAt
	return DatasetResponse{
		ID:        sess.ID,
		Filename:  sess.Filename,
		CreatedAt: &created,
		Analysis:  sess.Analysis,
		Readiness: readinessResponse(sess.Analysis),
		Preview:   &p,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
