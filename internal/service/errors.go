package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/goal"
	"github.com/mmynk/fintrack/internal/group"
	"github.com/mmynk/fintrack/internal/storage"
)

// toConnectError maps domain and storage errors onto Connect codes.
// Errors that already carry a code pass through unchanged.
func toConnectError(err error) error {
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return err
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, group.ErrDuplicateMember),
		errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, calculator.ErrUnsupportedSplitMethod),
		errors.Is(err, calculator.ErrEmptyMemberSet),
		errors.Is(err, calculator.ErrPercentageMismatch),
		errors.Is(err, goal.ErrInvalidTarget),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}
