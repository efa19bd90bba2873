// Package generated provides primitives to interact with the openapi HTTP API.
//
// Code follows the oapi-codegen chi-server layout for api/openapi.yaml.
package generated

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for ErrorResponseErrorType.
const (
	ErrorResponseErrorTypeEnrichmentFailed ErrorResponseErrorType = "enrichment_failed"
	ErrorResponseErrorTypeForbidden        ErrorResponseErrorType = "forbidden"
	ErrorResponseErrorTypeInternalError    ErrorResponseErrorType = "internal_error"
	ErrorResponseErrorTypeNotFound         ErrorResponseErrorType = "not_found"
	ErrorResponseErrorTypeValidationError  ErrorResponseErrorType = "validation_error"
)

// Defines values for HealthResponseChecks.
const (
	HealthResponseChecksError HealthResponseChecks = "error"
	HealthResponseChecksOk    HealthResponseChecks = "ok"
)

// Defines values for HealthResponseStatus.
const (
	HealthResponseStatusDegraded  HealthResponseStatus = "degraded"
	HealthResponseStatusHealthy   HealthResponseStatus = "healthy"
	HealthResponseStatusUnhealthy HealthResponseStatus = "unhealthy"
)

// Defines values for GetUsageParamsPeriod.
const (
	GetUsageParamsPeriodDay   GetUsageParamsPeriod = "day"
	GetUsageParamsPeriodMonth GetUsageParamsPeriod = "month"
	GetUsageParamsPeriodTotal GetUsageParamsPeriod = "total"
)

// CreateNoteRequest defines model for CreateNoteRequest.
type CreateNoteRequest struct {
	// Content The content of the note
	Content *string `json:"content" validate:"required"`

	// UserId The user ID of the note's owner
	UserId *string `json:"user_id" validate:"required"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Detail    string                 `json:"detail"`
	ErrorType ErrorResponseErrorType `json:"error_type"`
}

// ErrorResponseErrorType defines model for ErrorResponse.ErrorType.
type ErrorResponseErrorType string

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Checks map[string]HealthResponseChecks `json:"checks"`
	Status HealthResponseStatus            `json:"status"`
}

// HealthResponseChecks defines model for HealthResponse.Checks.
type HealthResponseChecks string

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

// Note defines model for Note.
type Note struct {
	Content   string                 `json:"content"`
	CreatedAt time.Time              `json:"created_at"`
	Id        openapi_types.UUID     `json:"id"`
	Metadata  map[string]interface{} `json:"metadata"`
	UpdatedAt time.Time              `json:"updated_at"`
	UserId    string                 `json:"user_id"`
}

// NoteStats defines model for NoteStats.
type NoteStats struct {
	StorageType string `json:"storage_type"`
	TotalNotes  int    `json:"total_notes"`
	UniqueUsers int    `json:"unique_users"`
}

// UpdateNoteRequest defines model for UpdateNoteRequest.
type UpdateNoteRequest struct {
	// Content The updated content of the note
	Content *string `json:"content,omitempty"`

	// Metadata Keys merged into the note metadata
	Metadata *map[string]interface{} `json:"metadata,omitempty"`
}

// UsageBudget defines model for UsageBudget.
type UsageBudget struct {
	IsExhausted     bool   `json:"is_exhausted"`
	ResetsAt        *int64 `json:"resets_at,omitempty"`
	TokensLimit     int64  `json:"tokens_limit"`
	TokensRemaining int64  `json:"tokens_remaining"`
}

// UsageResponse defines model for UsageResponse.
type UsageResponse struct {
	Budget      UsageBudget `json:"budget"`
	Period      string      `json:"period"`
	PeriodEnd   *int64      `json:"period_end,omitempty"`
	PeriodStart *int64      `json:"period_start,omitempty"`
	Provider    *string     `json:"provider,omitempty"`
	TokensUsed  int64       `json:"tokens_used"`
}

// NoteId defines model for NoteId.
type NoteId = openapi_types.UUID

// UserId defines model for UserId.
type UserId = string

// ListNotesParams defines parameters for ListNotes.
type ListNotesParams struct {
	// UserId User ID to fetch notes for
	UserId UserId `form:"user_id" json:"user_id"`
}

// GetNoteParams defines parameters for GetNote.
type GetNoteParams struct {
	// UserId User ID to verify ownership
	UserId UserId `form:"user_id" json:"user_id"`
}

// UpdateNoteParams defines parameters for UpdateNote.
type UpdateNoteParams struct {
	// UserId User ID to verify ownership
	UserId UserId `form:"user_id" json:"user_id"`
}

// DeleteNoteParams defines parameters for DeleteNote.
type DeleteNoteParams struct {
	// UserId User ID to verify ownership
	UserId UserId `form:"user_id" json:"user_id"`
}

// EnrichNoteParams defines parameters for EnrichNote.
type EnrichNoteParams struct {
	// UserId User ID to verify ownership
	UserId UserId `form:"user_id" json:"user_id"`
}

// GetUsageParams defines parameters for GetUsage.
type GetUsageParams struct {
	// Period Aggregation period
	Period *GetUsageParamsPeriod `form:"period,omitempty" json:"period,omitempty"`
}

// GetUsageParamsPeriod defines parameters for GetUsage.
type GetUsageParamsPeriod string

// CreateNoteJSONRequestBody defines body for CreateNote for application/json ContentType.
type CreateNoteJSONRequestBody = CreateNoteRequest

// UpdateNoteJSONRequestBody defines body for UpdateNote for application/json ContentType.
type UpdateNoteJSONRequestBody = UpdateNoteRequest
