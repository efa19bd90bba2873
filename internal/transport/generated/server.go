package generated

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Welcome page
	// (GET /)
	GetRoot(w http.ResponseWriter, r *http.Request)
	// Service health
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Prometheus metrics
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
	// List a user's notes
	// (GET /notes/)
	ListNotes(w http.ResponseWriter, r *http.Request, params ListNotesParams)
	// Create a note
	// (POST /notes/)
	CreateNote(w http.ResponseWriter, r *http.Request)
	// Aggregate statistics
	// (GET /notes/stats/info)
	GetNoteStats(w http.ResponseWriter, r *http.Request)
	// Delete a note
	// (DELETE /notes/{note_id})
	DeleteNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params DeleteNoteParams)
	// Fetch a note
	// (GET /notes/{note_id})
	GetNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params GetNoteParams)
	// Update content and/or metadata
	// (PATCH /notes/{note_id})
	UpdateNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params UpdateNoteParams)
	// Enrich a note
	// (PATCH /notes/{note_id}/enrich)
	EnrichNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params EnrichNoteParams)
	// Enrichment token usage
	// (GET /usage)
	GetUsage(w http.ResponseWriter, r *http.Request, params GetUsageParams)
}

// Unimplemented server implementation that returns http.StatusNotImplemented for each endpoint.
type Unimplemented struct{}

// GetRoot (GET /)
func (_ Unimplemented) GetRoot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// HealthCheck (GET /health)
func (_ Unimplemented) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Metrics (GET /metrics)
func (_ Unimplemented) Metrics(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// ListNotes (GET /notes/)
func (_ Unimplemented) ListNotes(w http.ResponseWriter, r *http.Request, params ListNotesParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// CreateNote (POST /notes/)
func (_ Unimplemented) CreateNote(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// GetNoteStats (GET /notes/stats/info)
func (_ Unimplemented) GetNoteStats(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// DeleteNote (DELETE /notes/{note_id})
func (_ Unimplemented) DeleteNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params DeleteNoteParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// GetNote (GET /notes/{note_id})
func (_ Unimplemented) GetNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params GetNoteParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// UpdateNote (PATCH /notes/{note_id})
func (_ Unimplemented) UpdateNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params UpdateNoteParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// EnrichNote (PATCH /notes/{note_id}/enrich)
func (_ Unimplemented) EnrichNote(w http.ResponseWriter, r *http.Request, noteId NoteId, params EnrichNoteParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// GetUsage (GET /usage)
func (_ Unimplemented) GetUsage(w http.ResponseWriter, r *http.Request, params GetUsageParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// MiddlewareFunc wraps a handler.
type MiddlewareFunc func(http.Handler) http.Handler

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	handler := http.Handler(h)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// bindNoteID binds the "note_id" path parameter.
func (siw *ServerInterfaceWrapper) bindNoteID(w http.ResponseWriter, r *http.Request) (NoteId, bool) {
	var noteId NoteId
	err := runtime.BindStyledParameterWithOptions("simple", "note_id", chi.URLParam(r, "note_id"), &noteId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "note_id", Err: err})
		return noteId, false
	}
	return noteId, true
}

// bindUserID binds the required "user_id" query parameter. A present but empty value is accepted.
func (siw *ServerInterfaceWrapper) bindUserID(w http.ResponseWriter, r *http.Request) (UserId, bool) {
	var userId UserId
	query := r.URL.Query()

	// ------------- Required query parameter "user_id" -------------
	if _, ok := query["user_id"]; !ok {
		siw.ErrorHandlerFunc(w, r, &RequiredParamError{ParamName: "user_id"})
		return userId, false
	}
	if err := runtime.BindQueryParameter("form", true, true, "user_id", query, &userId); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "user_id", Err: err})
		return userId, false
	}
	return userId, true
}

// GetRoot operation middleware
func (siw *ServerInterfaceWrapper) GetRoot(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetRoot)
}

// HealthCheck operation middleware
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.HealthCheck)
}

// Metrics operation middleware
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Metrics)
}

// ListNotes operation middleware
func (siw *ServerInterfaceWrapper) ListNotes(w http.ResponseWriter, r *http.Request) {
	var params ListNotesParams
	var ok bool
	if params.UserId, ok = siw.bindUserID(w, r); !ok {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListNotes(w, r, params)
	})
}

// CreateNote operation middleware
func (siw *ServerInterfaceWrapper) CreateNote(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateNote)
}

// GetNoteStats operation middleware
func (siw *ServerInterfaceWrapper) GetNoteStats(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetNoteStats)
}

// DeleteNote operation middleware
func (siw *ServerInterfaceWrapper) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteId, ok := siw.bindNoteID(w, r)
	if !ok {
		return
	}
	var params DeleteNoteParams
	if params.UserId, ok = siw.bindUserID(w, r); !ok {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteNote(w, r, noteId, params)
	})
}

// GetNote operation middleware
func (siw *ServerInterfaceWrapper) GetNote(w http.ResponseWriter, r *http.Request) {
	noteId, ok := siw.bindNoteID(w, r)
	if !ok {
		return
	}
	var params GetNoteParams
	if params.UserId, ok = siw.bindUserID(w, r); !ok {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetNote(w, r, noteId, params)
	})
}

// UpdateNote operation middleware
func (siw *ServerInterfaceWrapper) UpdateNote(w http.ResponseWriter, r *http.Request) {
	noteId, ok := siw.bindNoteID(w, r)
	if !ok {
		return
	}
	var params UpdateNoteParams
	if params.UserId, ok = siw.bindUserID(w, r); !ok {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.UpdateNote(w, r, noteId, params)
	})
}

// EnrichNote operation middleware
func (siw *ServerInterfaceWrapper) EnrichNote(w http.ResponseWriter, r *http.Request) {
	noteId, ok := siw.bindNoteID(w, r)
	if !ok {
		return
	}
	var params EnrichNoteParams
	if params.UserId, ok = siw.bindUserID(w, r); !ok {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.EnrichNote(w, r, noteId, params)
	})
}

// GetUsage operation middleware
func (siw *ServerInterfaceWrapper) GetUsage(w http.ResponseWriter, r *http.Request) {
	var params GetUsageParams

	// ------------- Optional query parameter "period" -------------
	err := runtime.BindQueryParameter("form", true, false, "period", r.URL.Query(), &params.Period)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "period", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetUsage(w, r, params)
	})
}

// RequiredParamError reports a missing required parameter.
type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("Query argument %s is required, but not found", e.ParamName)
}

// InvalidParamFormatError reports a parameter with the wrong format.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions creates http.Handler with additional options.
// The notes collection is served both with and without the trailing slash.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/", wrapper.GetRoot)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/notes/", wrapper.ListNotes)
		r.Get(options.BaseURL+"/notes", wrapper.ListNotes)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/notes/", wrapper.CreateNote)
		r.Post(options.BaseURL+"/notes", wrapper.CreateNote)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/notes/stats/info", wrapper.GetNoteStats)
	})
	r.Group(func(r chi.Router) {
		r.Delete(options.BaseURL+"/notes/{note_id}", wrapper.DeleteNote)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/notes/{note_id}", wrapper.GetNote)
	})
	r.Group(func(r chi.Router) {
		r.Patch(options.BaseURL+"/notes/{note_id}", wrapper.UpdateNote)
	})
	r.Group(func(r chi.Router) {
		r.Patch(options.BaseURL+"/notes/{note_id}/enrich", wrapper.EnrichNote)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/usage", wrapper.GetUsage)
	})

	return r
}
