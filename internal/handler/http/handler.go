package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"signup-form/internal/domain"
	"signup-form/internal/metrics"
	"signup-form/internal/validator"
)

// FormService defines the service methods needed by the handler
type FormService interface {
	ValidateSubmission(ctx context.Context, input any) validator.Result
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	formService  FormService
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(formService FormService, logger *slog.Logger, maxBodyBytes int64) *Handler {
	return &Handler{
		formService:  formService,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// SubmitForm handles POST /api/form.
//
// Validation failures are answered with 200 and a {"server": {...}} body
// holding the first message per field; clients must inspect the body, not the
// status. Bodies that cannot be validated at all get a 4xx ErrorResponse.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
		return
	}
	defer r.Body.Close()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.RecordMalformed(CodeBodyTooLarge)
			respondError(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "Request body too large")
			return
		}
		h.logger.Warn("Failed to read request body", "error", err)
		metrics.RecordMalformed(CodeInvalidJSON)
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON body")
		return
	}

	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		metrics.RecordMalformed(CodeInvalidJSON)
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON body")
		return
	}

	result := h.formService.ValidateSubmission(r.Context(), body)
	if root, ok := result.RootIssue(); ok {
		metrics.RecordMalformed(CodeNotAnObject)
		h.logger.Debug("Form body is not an object", "issue", root.Message)
		respondError(w, http.StatusBadRequest, CodeNotAnObject, "Request body must be a JSON object")
		return
	}

	if result.OK() {
		respondJSON(w, http.StatusOK, domain.Accepted())
		return
	}
	respondJSON(w, http.StatusOK, domain.Rejected(validator.FirstPerField(result.Issues)))
}

// HealthCheck handles GET /health/live
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
