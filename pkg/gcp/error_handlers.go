package gcp

import (
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"

	"github.com/iamctl/iamctl/pkg/policy"
)

const (
	getIamPolicyOperation = "getIamPolicy"
	setIamPolicyOperation = "setIamPolicy"
)

// handleRemoteError classifies an error returned by the client. A write rejected with ABORTED
// means that the etag no longer matches, and is reported as a concurrent modification.
func handleRemoteError(operation, resource string, err error) error {
	if errors.Is(err, policy.ErrInvalidArgument) {
		return err
	}
	remote := &policy.RemoteServiceError{
		Operation: operation,
		Resource:  resource,
		Code:      codes.Unknown,
		Err:       err,
	}
	// The REST client wraps the API error, so the response status is only kept by the outer
	// googleapi error.
	var httpErr *googleapi.Error
	if errors.As(err, &httpErr) {
		remote.StatusCode = httpErr.Code
	}
	if apiErr, ok := apierror.FromError(err); ok {
		if httpCode := apiErr.HTTPCode(); remote.StatusCode == 0 && httpCode > 0 {
			remote.StatusCode = httpCode
		}
		if st := apiErr.GRPCStatus(); st != nil {
			remote.Code = st.Code()
		}
		remote.Reason = apiErr.Reason()
	}
	if operation == setIamPolicyOperation && remote.Code == codes.Aborted {
		return policy.NewConcurrentModificationError(remote)
	}
	return remote
}
