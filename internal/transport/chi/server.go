package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
	domnote "github.com/kailas-cloud/notekeep/internal/domain/note"
	"github.com/kailas-cloud/notekeep/internal/domain/note/patch"
	domusage "github.com/kailas-cloud/notekeep/internal/domain/usage"
	gen "github.com/kailas-cloud/notekeep/internal/transport/generated"
	healthuc "github.com/kailas-cloud/notekeep/internal/usecase/health"
	noteuc "github.com/kailas-cloud/notekeep/internal/usecase/note"
	usageuc "github.com/kailas-cloud/notekeep/internal/usecase/usage"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	notes         *noteuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	notes *noteuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		notes:    notes,
		usage:    usage,
		health:   health,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, gen.ErrorResponseErrorTypeNotFound),
		sentinelHandler(domain.ErrUnauthorized, http.StatusForbidden, gen.ErrorResponseErrorTypeForbidden),
		sentinelHandler(domain.ErrInvalidInput, http.StatusUnprocessableEntity, gen.ErrorResponseErrorTypeValidationError),
		sentinelHandler(domain.ErrEnrichmentFailed, http.StatusInternalServerError, gen.ErrorResponseErrorTypeEnrichmentFailed),
	}
	return s
}

// GetRoot handles GET /.
func (s *Server) GetRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(welcomePage)
}

// CreateNote handles POST /notes/.
func (s *Server) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req gen.CreateNoteJSONRequestBody
	if !s.decodeBody(w, r, &req) {
		return
	}

	n, err := s.notes.Create(r.Context(), *req.Content, *req.UserId)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, noteToGen(n))
}

// ListNotes handles GET /notes/. An empty user_id yields an empty list.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request, params gen.ListNotesParams) {
	items := []gen.Note{}
	if params.UserId == "" {
		writeJSON(w, http.StatusOK, items)
		return
	}

	notes, err := s.notes.List(r.Context(), params.UserId)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	for _, n := range notes {
		items = append(items, noteToGen(n))
	}
	writeJSON(w, http.StatusOK, items)
}

// GetNoteStats handles GET /notes/stats/info.
func (s *Server) GetNoteStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.notes.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, gen.NoteStats{
		TotalNotes:  st.TotalNotes,
		UniqueUsers: st.UniqueUsers,
		StorageType: st.StorageType,
	})
}

// GetNote handles GET /notes/{note_id}.
func (s *Server) GetNote(w http.ResponseWriter, r *http.Request, noteID gen.NoteId, params gen.GetNoteParams) {
	n, err := s.notes.Get(r.Context(), noteID, params.UserId)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToGen(n))
}

// UpdateNote handles PATCH /notes/{note_id}.
func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request, noteID gen.NoteId, params gen.UpdateNoteParams) {
	var req gen.UpdateNoteJSONRequestBody
	if !s.decodeBody(w, r, &req) {
		return
	}

	n, err := s.notes.Update(r.Context(), noteID, params.UserId, patchFromGen(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToGen(n))
}

// DeleteNote handles DELETE /notes/{note_id}.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request, noteID gen.NoteId, params gen.DeleteNoteParams) {
	if err := s.notes.Delete(r.Context(), noteID, params.UserId); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EnrichNote handles PATCH /notes/{note_id}/enrich.
func (s *Server) EnrichNote(w http.ResponseWriter, r *http.Request, noteID gen.NoteId, params gen.EnrichNoteParams) {
	ctx, usage := domain.NewContextWithUsage(r.Context())

	n, err := s.notes.Enrich(ctx, noteID, params.UserId)
	setEnrichmentHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToGen(n))
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request, params gen.GetUsageParams) {
	var raw string
	if params.Period != nil {
		raw = string(*params.Period)
	}
	period, ok := domusage.ParsePeriod(raw)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, gen.ErrorResponseErrorTypeValidationError,
			"period must be one of day, month, total")
		return
	}

	writeJSON(w, http.StatusOK, usageToGen(s.usage.GetReport(r.Context(), period)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	checks := make(map[string]gen.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}
	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeBody reads and validates a JSON body. It writes a 422 and returns false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		detail := "Invalid request body: " + err.Error()
		if errors.Is(err, io.EOF) {
			detail = "Request body is required"
		}
		writeError(w, http.StatusUnprocessableEntity, gen.ErrorResponseErrorTypeValidationError, detail)
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, gen.ErrorResponseErrorTypeValidationError,
			validationDetail(err))
		return false
	}
	return true
}

// validationDetail renders validator errors using the JSON field names.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: field %s", jsonFieldName(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func jsonFieldName(goName string) string {
	switch goName {
	case "UserId":
		return "user_id"
	default:
		return strings.ToLower(goName)
	}
}

func setEnrichmentHeaders(w http.ResponseWriter, usage *domain.EnrichmentUsage) {
	if usage.Attempts() > 0 {
		w.Header().Set("X-Enrichment-Tokens", strconv.Itoa(usage.TotalTokens()))
	}
}

func noteToGen(n domnote.Note) gen.Note {
	md := n.Metadata()
	if md == nil {
		md = map[string]any{}
	}
	return gen.Note{
		Id:        n.ID(),
		Content:   n.Content(),
		UserId:    n.UserID(),
		CreatedAt: n.CreatedAt(),
		UpdatedAt: n.UpdatedAt(),
		Metadata:  md,
	}
}

func patchFromGen(req gen.UpdateNoteRequest) patch.Patch {
	var metadata map[string]any
	if req.Metadata != nil {
		metadata = *req.Metadata
	}
	return patch.New(req.Content, metadata)
}

func usageToGen(r domusage.Report) gen.UsageResponse {
	b := r.Budget()
	resp := gen.UsageResponse{
		Period:     string(r.Period()),
		TokensUsed: r.TokensUsed(),
		Budget: gen.UsageBudget{
			TokensLimit:     b.TokensLimit,
			TokensRemaining: b.TokensRemaining,
			IsExhausted:     b.IsExhausted,
		},
	}
	if r.PeriodStart() != 0 {
		start, end := r.PeriodStart(), r.PeriodEnd()
		resp.PeriodStart, resp.PeriodEnd = &start, &end
	}
	if b.ResetsAt != 0 {
		resetsAt := b.ResetsAt
		resp.Budget.ResetsAt = &resetsAt
	}
	if p := r.Provider(); p != "" {
		resp.Provider = &p
	}
	return resp
}
