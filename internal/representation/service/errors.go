package service

import (
	"context"
	"errors"

	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/sentinel"
)

// wrapLedgerErr maps ledger store failures that are not part of the
// operation's contract.
func wrapLedgerErr(err error, msg string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

// wrapCollaboratorErr maps identity and case failures. Anything that is not a
// timeout is reported as the collaborator being unavailable.
func wrapCollaboratorErr(err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) || dErrors.HasCode(err, dErrors.CodeTimeout) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
}
