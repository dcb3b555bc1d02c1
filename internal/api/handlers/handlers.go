package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rvaldes/finance-dashboard/internal/ai"
	"github.com/rvaldes/finance-dashboard/internal/api/middleware"
	"github.com/rvaldes/finance-dashboard/internal/dashboard"
	"github.com/rvaldes/finance-dashboard/internal/finance"
	"github.com/rvaldes/finance-dashboard/internal/jobs"
	"github.com/rvaldes/finance-dashboard/internal/notion"
	"github.com/rvaldes/finance-dashboard/internal/users"
)

// maxReceiptBytes caps receipt image uploads.
const maxReceiptBytes = 10 << 20

// DashboardHandler serves the normalized collections and the yearly summary.
type DashboardHandler struct {
	svc *dashboard.Service
	log zerolog.Logger
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(svc *dashboard.Service, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

// ListAccounts handles GET /api/accounts
func (h *DashboardHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.Accounts(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list accounts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, accounts)
}

// ListDebts handles GET /api/debts
func (h *DashboardHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.svc.Debts(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list debts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list debts")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, debts)
}

// ListTransactions handles GET /api/transactions
func (h *DashboardHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.Transactions(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, txs)
}

// GetSummary handles GET /api/summary?year=2024. The year defaults to the
// current calendar year; the UI pages through years with this parameter.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid year parameter")
			return
		}
		year = parsed
	}

	summary, err := h.svc.Summary(r.Context(), year)
	if err != nil {
		h.log.Error().Err(err).Int("year", year).Msg("Failed to compute summary")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, summary)
}

// AIService is the slice of the assistant the API exposes.
type AIService interface {
	SuggestCategory(ctx context.Context, description string) (string, error)
	Chat(ctx context.Context, history []ai.ChatMessage) (string, error)
	AssessRisk(ctx context.Context, summary finance.Summary) (*ai.RiskAssessment, error)
}

// AIHandler serves the AI prompt flow endpoints.
type AIHandler struct {
	assistant AIService
	svc       *dashboard.Service
	log       zerolog.Logger
}

// NewAIHandler creates an AI handler.
func NewAIHandler(assistant AIService, svc *dashboard.Service, log zerolog.Logger) *AIHandler {
	return &AIHandler{assistant: assistant, svc: svc, log: log}
}

// SuggestCategory handles POST /api/ai/categorize
func (h *AIHandler) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" {
		middleware.WriteError(w, http.StatusBadRequest, "description is required")
		return
	}

	category, err := h.assistant.SuggestCategory(r.Context(), req.Description)
	if err != nil {
		h.log.Error().Err(err).Msg("Category suggestion failed")
		middleware.WriteError(w, http.StatusBadGateway, "Category suggestion failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"category": category})
}

// Chat handles POST /api/ai/chat
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []ai.ChatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "messages are required")
		return
	}

	reply, err := h.assistant.Chat(r.Context(), req.Messages)
	if err != nil {
		h.log.Error().Err(err).Msg("Chat failed")
		middleware.WriteError(w, http.StatusBadGateway, "Chat failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// AssessRisk handles GET /api/ai/risk?year=2024. The current year's summary
// is computed and scored by the model.
func (h *AIHandler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid year parameter")
			return
		}
		year = parsed
	}

	summary, err := h.svc.Summary(r.Context(), year)
	if err != nil {
		h.log.Error().Err(err).Int("year", year).Msg("Failed to compute summary for risk scoring")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	assessment, err := h.assistant.AssessRisk(r.Context(), summary)
	if err != nil {
		h.log.Error().Err(err).Msg("Risk assessment failed")
		middleware.WriteError(w, http.StatusBadGateway, "Risk assessment failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, assessment)
}

// UploadFunc stages receipt bytes and returns the gs:// URI.
type UploadFunc func(ctx context.Context, data []byte, contentType string) (string, error)

// ReceiptsHandler accepts receipt image uploads and enqueues extraction.
type ReceiptsHandler struct {
	upload    UploadFunc
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewReceiptsHandler creates a receipts handler.
func NewReceiptsHandler(upload UploadFunc, publisher jobs.Publisher, log zerolog.Logger) *ReceiptsHandler {
	return &ReceiptsHandler{upload: upload, publisher: publisher, log: log}
}

// Upload handles POST /api/receipts. The request body is the raw image;
// extraction runs asynchronously and the response carries the job ID to
// poll.
func (h *ReceiptsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.upload == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Receipt uploads are not configured")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxReceiptBytes+1))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(data) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Image body is required")
		return
	}
	if len(data) > maxReceiptBytes {
		middleware.WriteError(w, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}

	ctx := r.Context()
	gcsURI, err := h.upload(ctx, data, contentType)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to stage receipt image")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to store receipt")
		return
	}

	job := &jobs.ExtractReceiptJob{
		GCSURI:      gcsURI,
		ContentType: contentType,
	}
	if err := h.publisher.PublishExtractReceipt(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue receipt extraction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue extraction")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("gcs_uri", gcsURI).Msg("Receipt extraction enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// UsersHandler resolves user records by email.
type UsersHandler struct {
	store   notion.Service
	usersDB string
	log     zerolog.Logger
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(store notion.Service, usersDB string, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{store: store, usersDB: usersDB, log: log}
}

// GetByEmail handles GET /api/users?email=ana@example.com
func (h *UsersHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		middleware.WriteError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := users.FindByEmail(r.Context(), h.store, h.usersDB, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to look up user")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to look up user")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

// JobsHandler serves receipt job status.
type JobsHandler struct {
	store jobs.Store
	log   zerolog.Logger
}

// NewJobsHandler creates a jobs handler.
func NewJobsHandler(store jobs.Store, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{store: store, log: log}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs?status=pending
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	status := jobs.Status(r.URL.Query().Get("status"))

	jobsList, err := h.store.ListJobs(r.Context(), status)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
