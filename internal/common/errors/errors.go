// Package errors provides the structured error taxonomy shared by the site
// server, the content store and the follow-up job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Store errors.
const (
	ErrCodeStoreUnavailable   ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeStoreWriteRejected ErrorCode = "STORE_WRITE_REJECTED"
	ErrCodeSectionNotSeeded   ErrorCode = "SECTION_NOT_SEEDED"
)

// Auth errors. Each maps to a redirect reason, never a user-facing failure.
const (
	ErrCodeUnauthenticated    ErrorCode = "AUTH_UNAUTHENTICATED"
	ErrCodeUnauthorized       ErrorCode = "AUTH_UNAUTHORIZED"
	ErrCodeInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	ErrCodeAuthProviderFailed ErrorCode = "AUTH_PROVIDER_FAILED"
)

// Validation and hand-off errors.
const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeStepIncomplete   ErrorCode = "STEP_INCOMPLETE"
	ErrCodeUnknownSection   ErrorCode = "UNKNOWN_SECTION"
	ErrCodeTicketNotFound   ErrorCode = "TICKET_NOT_FOUND"
	ErrCodeSubmitInFlight   ErrorCode = "SUBMIT_IN_FLIGHT"
	ErrCodeParseError       ErrorCode = "PARSE_ERROR"
	ErrCodeLeadEnqueue      ErrorCode = "LEAD_ENQUEUE_FAILED"
)

// Workflow engine errors.
const (
	ErrCodeWorkflowUnavailable ErrorCode = "WORKFLOW_UNAVAILABLE"
	ErrCodeWorkflowRejected    ErrorCode = "WORKFLOW_REJECTED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewStoreUnavailableError wraps a connectivity or query failure against the content store.
func NewStoreUnavailableError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Content store unavailable",
		Details:   fmt.Sprintf("op: %s, error: %v", op, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStoreWriteRejectedError is returned when the store refuses a write.
// The editor may retry by saving again.
func NewStoreWriteRejectedError(section string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteRejected,
		Message:   "Error saving changes",
		Details:   fmt.Sprintf("section: %s, error: %v", section, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSectionNotSeededError is returned by an update that matched no row.
func NewSectionNotSeededError(section string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSectionNotSeeded,
		Message:   "Section has not been seeded",
		Details:   fmt.Sprintf("section: %s", section),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnauthenticatedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthenticated,
		Message:   "Authentication required",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnauthorizedError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   "Administrator access required",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidCredentialsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCredentials,
		Message:   "Invalid email or password",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthProviderError wraps a transport or server failure from the identity provider.
func NewAuthProviderError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthProviderFailed,
		Message:   "Identity provider request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewValidationError reports a document that does not match its section schema.
func NewValidationError(section string, problems []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Document does not match section schema",
		Details:   strings.Join(problems, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"section": section, "problems": problems},
		Timestamp: time.Now().UTC(),
	}
}

// NewStepIncompleteError reports the first wizard step whose required fields are missing.
func NewStepIncompleteError(wizard string, step int) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepIncomplete,
		Message:   "Required fields are missing",
		Details:   fmt.Sprintf("wizard: %s, step: %d", wizard, step),
		Retryable: false,
		Metadata:  map[string]interface{}{"wizard": wizard, "step": step},
		Timestamp: time.Now().UTC(),
	}
}

func NewUnknownSectionError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownSection,
		Message:   "Unknown content section",
		Details:   fmt.Sprintf("section: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTicketNotFoundError(kind string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTicketNotFound,
		Message:   "Confirmation ticket not found or already used",
		Details:   fmt.Sprintf("kind: %s", kind),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSubmitInFlightError(wizard string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmitInFlight,
		Message:   "Submission already in progress",
		Details:   fmt.Sprintf("wizard: %s", wizard),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewLeadEnqueueError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadEnqueue,
		Message:   "Failed to queue lead for follow-up",
		Details:   fmt.Sprintf("sink: %s, error: %v", sink, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewWorkflowUnavailableError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowUnavailable,
		Message:   "Workflow engine unavailable",
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewWorkflowRejectedError covers requests the engine refused, such as an
// undeployed process id.
func NewWorkflowRejectedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowRejected,
		Message:   "Workflow engine rejected the request",
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Classification Helpers
// ==========================

// AsStandard extracts a StandardError from an error chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}

// IsStoreError reports whether err belongs to the store family.
func IsStoreError(err error) bool {
	stdErr, ok := AsStandard(err)
	return ok && GetErrorCategory(stdErr.Code) == "STORE"
}

// IsAuthError reports whether err belongs to the auth family.
func IsAuthError(err error) bool {
	stdErr, ok := AsStandard(err)
	return ok && GetErrorCategory(stdErr.Code) == "AUTH"
}

// RedirectReason maps an auth error to the query value appended to the login redirect.
func RedirectReason(code ErrorCode) string {
	switch code {
	case ErrCodeUnauthorized:
		return "unauthorized"
	case ErrCodeInvalidCredentials:
		return "invalid_credentials"
	case ErrCodeAuthProviderFailed:
		return "provider_unavailable"
	default:
		return "unauthenticated"
	}
}

// HTTPStatus maps an error code to the status returned by JSON endpoints.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeStoreUnavailable, ErrCodeStoreWriteRejected, ErrCodeAuthProviderFailed:
		return http.StatusServiceUnavailable
	case ErrCodeSectionNotSeeded:
		return http.StatusConflict
	case ErrCodeUnauthenticated, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeUnauthorized:
		return http.StatusForbidden
	case ErrCodeValidationFailed, ErrCodeStepIncomplete:
		return http.StatusUnprocessableEntity
	case ErrCodeUnknownSection, ErrCodeTicketNotFound:
		return http.StatusNotFound
	case ErrCodeSubmitInFlight:
		return http.StatusConflict
	case ErrCodeParseError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeStoreUnavailable:   "STORE_UNAVAILABLE",
	ErrCodeStoreWriteRejected: "STORE_WRITE_REJECTED",
	ErrCodeValidationFailed:   "VALIDATION_FAILED",
	ErrCodeParseError:         "PARSE_ERROR",
	ErrCodeLeadEnqueue:        "LEAD_ENQUEUE_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreUnavailable, ErrCodeLeadEnqueue, ErrCodeAuthProviderFailed, ErrCodeWorkflowUnavailable:
		return 3
	case ErrCodeStoreWriteRejected:
		return 1
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "STORE") || strings.HasPrefix(codeStr, "SECTION"):
		return "STORE"
	case strings.HasPrefix(codeStr, "AUTH"):
		return "AUTH"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "STEP") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	case strings.Contains(codeStr, "TICKET") || strings.Contains(codeStr, "SUBMIT"):
		return "HANDOFF"
	case strings.Contains(codeStr, "LEAD") || strings.HasPrefix(codeStr, "WORKFLOW"):
		return "LEADS"
	default:
		return "OTHER"
	}
}
