package chi

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/metrics"
	gen "github.com/kailas-cloud/notekeep/internal/transport/generated"
)

//go:embed welcome.html
var welcomePage []byte

// NewRouter mounts the API on a chi router with the standard middleware stack.
func NewRouter(server *Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, gen.ErrorResponseErrorTypeNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, gen.ErrorResponseErrorTypeValidationError, "Method Not Allowed")
	})

	return gen.HandlerWithOptions(server, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: paramErrorHandler,
	})
}
