package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
	logpkg "github.com/kailas-cloud/notekeep/internal/logger"
	gen "github.com/kailas-cloud/notekeep/internal/transport/generated"
)

const internalErrorDetail = "Internal server error"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r).With(
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("client_ip", clientIP(r)),
	)
	log.Warn("domain error", zap.Error(err))

	var failed *domain.EnrichmentFailedError
	if errors.As(err, &failed) && failed.Cause != nil {
		log.Error("enrichment failed", zap.NamedError("cause", failed.Cause))
	}

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseErrorTypeInternalError, internalErrorDetail)
}

// requestLogger prefers the logger carrying request_id; the server logger covers calls outside the router.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if l, ok := logpkg.Lookup(r.Context()); ok {
		return l
	}
	return s.logger
}

func sentinelHandler(sentinel error, status int, errType gen.ErrorResponseErrorType) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, errType, msg)
		return true
	}
}

// safeDomainMessage maps known sentinels to client-facing details. Unknown errors never leak.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Note not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Access denied: Note does not belong to this user"
	case errors.Is(err, domain.ErrEnrichmentFailed):
		return "Enrichment failed"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input"
	default:
		return internalErrorDetail
	}
}

// paramErrorHandler renders parameter binding failures from the generated wrapper.
func paramErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusUnprocessableEntity, gen.ErrorResponseErrorTypeValidationError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType gen.ErrorResponseErrorType, detail string) {
	writeJSON(w, status, gen.ErrorResponse{
		Detail:    detail,
		ErrorType: errType,
	})
}
