package infra

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type BackendErrorKind string

type BackendError struct {
	Kind BackendErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e BackendError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e BackendError) Unwrap() error {
	return e.err
}

func WrapBackendErr(slogger *slog.Logger, kind BackendErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	switch kind {
	case KindFailure, KindUnavailable:
		slogger.Error("Backend error: "+msg, logArgs...)
	default:
		slogger.Debug("Backend error: "+msg, logArgs...)
	}

	// Attach a stack without repeating msg in the message.
	err = errs.Wrap(err, "")

	return BackendError{Kind: kind, msg: msg, err: err}
}

// NewBackendErr builds a BackendError without logging, for callers that expect the failure.
func NewBackendErr(kind BackendErrorKind, msg string, err error) error {
	return BackendError{Kind: kind, msg: msg, err: errs.Wrap(err, "")}
}

func IsKind(err error, kind BackendErrorKind) bool {
	var e BackendError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Classify maps a driver error onto a kind.
func Classify(err error) BackendErrorKind {
	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case pgconv.IsNoRows(err):
		return KindNotFound
	case pgconv.IsUniqueViolation(err), pgconv.IsConstraintViolation(err):
		return KindConflict
	case pgconv.IsInvalidInput(err):
		return KindInvalidRequest
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err),
		errors.As(err, &connErr), errors.As(err, &netErr):
		return KindUnavailable
	default:
		return KindFailure
	}
}

// Backend-specific error kinds
const (
	KindNotFound           BackendErrorKind = "NOT_FOUND"
	KindInvalidCredentials BackendErrorKind = "INVALID_CREDENTIALS"
	KindConflict           BackendErrorKind = "CONFLICT"
	KindInvalidRequest     BackendErrorKind = "INVALID_REQUEST"
	KindUnavailable        BackendErrorKind = "UNAVAILABLE"
	KindFailure            BackendErrorKind = "FAILURE"
)
