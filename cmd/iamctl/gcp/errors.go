package gcp

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"

	"github.com/iamctl/iamctl/pkg/policy"
)

// Exit codes of the tool for the kinds of failures of the policy commands.
const (
	ExitFailure         = 1
	ExitInvalidArgument = 2
	ExitPolicyNotFound  = 3
	ExitDuplicate       = 4
	ExitConflict        = 5
	ExitRemote          = 6
)

// ExitCode returns the exit code of the tool for the given error.
func ExitCode(err error) int {
	var remote *policy.RemoteServiceError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, policy.ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, policy.ErrPolicyNotFound), errors.Is(err, policy.ErrMalformedPolicy):
		return ExitPolicyNotFound
	case errors.Is(err, policy.ErrDuplicateMembership):
		return ExitDuplicate
	case errors.Is(err, policy.ErrConcurrentModification):
		return ExitConflict
	case errors.As(err, &remote):
		return ExitRemote
	}
	return ExitFailure
}

// Hint returns a suggestion of what to do about the given error, or an empty string if there is
// nothing to suggest.
func Hint(err error) string {
	var remote *policy.RemoteServiceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, policy.ErrConcurrentModification):
		return "The IAM policy changed after it was read and nothing was written, run the command again."
	case errors.Is(err, policy.ErrDuplicateMembership):
		return "The member already has the role, nothing was written."
	case errors.Is(err, policy.ErrPolicyNotFound):
		return "Check that the resource exists and that the credentials can read its IAM policy."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out, try again with a larger --timeout."
	case errors.As(err, &remote):
		switch {
		case remote.Code == codes.PermissionDenied:
			return "The credentials aren't allowed to do this, they need the 'getIamPolicy' " +
				"and 'setIamPolicy' permissions on the resource."
		case remote.Code == codes.Unauthenticated:
			return "Check the --key-file or the 'key_file' configuration setting, or the " +
				"application default credentials."
		case remote.Code == codes.NotFound:
			return "Check that the resource exists."
		case remote.Temporary():
			return "The service is temporarily unavailable, try again later."
		}
	}
	return ""
}
