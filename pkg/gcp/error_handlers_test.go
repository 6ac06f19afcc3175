package gcp

import (
	"context"
	"errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	. "github.com/onsi/ginkgo/v2" // nolint
	. "github.com/onsi/gomega"    // nolint

	"github.com/iamctl/iamctl/pkg/policy"
)

var _ = Describe("Remote error handling", func() {
	const resource = "projects/my-project"

	DescribeTable("HTTP errors",
		func(operation string, httpCode int, expected codes.Code) {
			err := handleRemoteError(operation, resource, &googleapi.Error{
				Code:    httpCode,
				Message: "failed",
			})
			var remote *policy.RemoteServiceError
			Expect(errors.As(err, &remote)).To(BeTrue())
			Expect(remote.Operation).To(Equal(operation))
			Expect(remote.Resource).To(Equal(resource))
			Expect(remote.StatusCode).To(Equal(httpCode))
			Expect(remote.Code).To(Equal(expected))
		},
		Entry("Bad request", getIamPolicyOperation, 400, codes.InvalidArgument),
		Entry("Forbidden", getIamPolicyOperation, 403, codes.PermissionDenied),
		Entry("Not found", getIamPolicyOperation, 404, codes.NotFound),
		Entry("Conflict on read", getIamPolicyOperation, 409, codes.Aborted),
		Entry("Precondition", setIamPolicyOperation, 412, codes.FailedPrecondition),
		Entry("Throttled", setIamPolicyOperation, 429, codes.ResourceExhausted),
		Entry("Unavailable", setIamPolicyOperation, 503, codes.Unavailable),
		Entry("Other client error", setIamPolicyOperation, 418, codes.FailedPrecondition),
		Entry("Server error", getIamPolicyOperation, 500, codes.Internal),
	)

	It("Reports a conflicting write as a concurrent modification", func() {
		err := handleRemoteError(setIamPolicyOperation, resource, &googleapi.Error{
			Code:    409,
			Message: "There were concurrent policy changes.",
		})
		Expect(err).To(MatchError(policy.ErrConcurrentModification))
		var remote *policy.RemoteServiceError
		Expect(errors.As(err, &remote)).To(BeTrue())
		Expect(remote.StatusCode).To(Equal(409))
	})

	It("Doesn't report a conflicting read as a concurrent modification", func() {
		err := handleRemoteError(getIamPolicyOperation, resource, &googleapi.Error{Code: 409})
		Expect(errors.Is(err, policy.ErrConcurrentModification)).To(BeFalse())
	})

	It("Uses the code of gRPC errors", func() {
		err := handleRemoteError(setIamPolicyOperation, resource, status.Error(codes.Aborted, "etag mismatch"))
		Expect(err).To(MatchError(policy.ErrConcurrentModification))
	})

	It("Keeps transport errors without a response", func() {
		err := handleRemoteError(getIamPolicyOperation, resource, context.DeadlineExceeded)
		var remote *policy.RemoteServiceError
		Expect(errors.As(err, &remote)).To(BeTrue())
		Expect(remote.StatusCode).To(BeZero())
		Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
	})

	It("Passes invalid arguments through", func() {
		_, cause := resourceKindOf("bogus")
		err := handleRemoteError(getIamPolicyOperation, "bogus", cause)
		Expect(err).To(BeIdenticalTo(cause))
	})
})
