package policy

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
)

var (
	// ErrInvalidArgument is returned for blank or malformed input. It is always detected before
	// any call to the policy service.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPolicyNotFound is returned when the service answers without a policy for a resource that
	// should have one.
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrMalformedPolicy is returned when a fetched policy lacks its etag or its bindings.
	ErrMalformedPolicy = errors.New("malformed policy")

	// ErrDuplicateMembership is returned when the member is already bound to the role.
	ErrDuplicateMembership = errors.New("member already bound to role")

	// ErrConcurrentModification is returned when the service rejects a write because the policy
	// changed after it was read. The whole read-modify-write sequence has to be repeated.
	ErrConcurrentModification = errors.New("policy was modified concurrently")
)

// RemoteServiceError describes a failed call to the policy service.
type RemoteServiceError struct {
	// Operation is the remote method, for example `getIamPolicy`.
	Operation string

	// Resource is the name of the resource the call was made for.
	Resource string

	// StatusCode is the HTTP status returned by the service, or zero if no response was received.
	StatusCode int

	// Code is the canonical status code of the failure.
	Code codes.Code

	// Reason is the machine readable reason reported by the service, if any.
	Reason string

	// Err is the error returned by the transport.
	Err error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s for '%s' failed: %v", e.Operation, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s for '%s' failed with status %d (%s): %v",
		e.Operation, e.Resource, e.StatusCode, e.Code, e.Err)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// Temporary reports if the failure is one that may go away when the call is repeated.
func (e *RemoteServiceError) Temporary() bool {
	switch e.Code {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Internal:
		return true
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}

type concurrentModificationError struct {
	remote *RemoteServiceError
}

// NewConcurrentModificationError marks a rejected write as a lost optimistic concurrency race. The
// result matches ErrConcurrentModification with errors.Is, and the given error with errors.As.
func NewConcurrentModificationError(remote *RemoteServiceError) error {
	return &concurrentModificationError{
		remote: remote,
	}
}

func (e *concurrentModificationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrConcurrentModification, e.remote)
}

func (e *concurrentModificationError) Is(target error) bool {
	return target == ErrConcurrentModification
}

func (e *concurrentModificationError) Unwrap() error {
	return e.remote
}
