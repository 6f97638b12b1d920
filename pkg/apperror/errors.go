package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Distributed Lock (LOCK) ----

// ErrSyncAlreadyRunning signals lock contention: another run holds the
// process-type lock. Expected outcome, surfaced as a conflict.
func ErrSyncAlreadyRunning(processType string) *AppError {
	return New("LOCK_001", fmt.Sprintf("A %s synchronization is already running", processType), http.StatusConflict)
}

// ErrLockStoreUnavailable signals the lock store is unreachable or not
// configured. Mutual exclusion cannot be guaranteed, so the run must not proceed.
func ErrLockStoreUnavailable(err error) *AppError {
	return Wrap("LOCK_002", "Lock store unavailable", http.StatusServiceUnavailable, err)
}

// ---- Synchronization (SYNC) ----

func ErrProcessTypeDisabled(processType string) *AppError {
	return New("SYNC_001", fmt.Sprintf("Process type %q is not enabled for synchronization", processType), http.StatusBadRequest)
}

func ErrLoadEventNotFound(processType, loadID string) *AppError {
	return New("SYNC_002", fmt.Sprintf("No load event found for process type %q and load id %q", processType, loadID), http.StatusNotFound)
}

func ErrRunNotFound(id int64) *AppError {
	return New("SYNC_003", fmt.Sprintf("Sync run %d not found", id), http.StatusNotFound)
}

func ErrInvalidRunTransition(err error) *AppError {
	return Wrap("SYNC_004", "Invalid sync run state transition", http.StatusConflict, err)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_002", "Internal database error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("SYNC_005", message, http.StatusBadRequest)
}
