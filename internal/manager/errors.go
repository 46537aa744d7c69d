package manager

import (
	"errors"

	"github.com/openkcm/rs-cli/internal/errs"
)

var (
	ErrEmptyPath     = errors.New("item path cannot be empty")
	ErrEmptyIdentity = errors.New("identity cannot be empty")
	ErrEmptyRole     = errors.New("role cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")

	ErrGetDataSource = errors.New("failed to get data source contents")
	ErrSetDataSource = errors.New("failed to set data source contents")
	ErrDeleteItem    = errors.New("failed to delete catalog item")
	ErrGetPolicies   = errors.New("failed to get policies")
	ErrSetPolicies   = errors.New("failed to set policies")

	ErrNoAccessToRevoke   = errors.New("no access to revoke for identity")
	ErrRoleAlreadyGranted = errors.New("role already granted to identity")
)

// OperationError is a failed catalog operation: Base says what failed, Target
// names the item path or identity and Err is the cause, if any.
type OperationError struct {
	Base   error
	Target string
	Err    error
}

func (e *OperationError) Error() string {
	return errs.WrapTarget(e.Base, e.Target, e.Err).Error()
}

func (e *OperationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Base}
	}

	return []error{e.Base, e.Err}
}

func newOperationError(base error, target string, err error) *OperationError {
	return &OperationError{
		Base:   base,
		Target: target,
		Err:    err,
	}
}
