package gcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	"cloud.google.com/go/iam"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	. "github.com/onsi/ginkgo/v2" // nolint
	. "github.com/onsi/gomega"    // nolint

	"github.com/iamctl/iamctl/pkg/policy"
)

var _ = Describe("Client", func() {
	var (
		ctx      context.Context
		server   *httptest.Server
		requests []*http.Request
		bodies   []map[string]any
		status   int
		response string
		service  *PolicyService
	)

	BeforeEach(func() {
		ctx = context.Background()
		requests = nil
		bodies = nil
		status = http.StatusOK
		response = `{
			"version": 1,
			"etag": "BwXyz",
			"bindings": [
				{
					"role": "roles/viewer",
					"members": ["user:a@example.com"]
				}
			]
		}`
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			data, err := io.ReadAll(r.Body)
			Expect(err).ToNot(HaveOccurred())
			body := map[string]any{}
			if len(data) > 0 {
				Expect(json.Unmarshal(data, &body)).To(Succeed())
			}
			requests = append(requests, r)
			bodies = append(bodies, body)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, err = w.Write([]byte(response))
			Expect(err).ToNot(HaveOccurred())
		}))
		DeferCleanup(server.Close)

		client, err := NewGcpClient(ctx,
			option.WithEndpoint(server.URL+"/"),
			option.WithoutAuthentication(),
		)
		Expect(err).ToNot(HaveOccurred())
		service = NewPolicyService(client)
	})

	It("Reads the policy of a project", func() {
		result, err := service.GetPolicy(ctx, "projects/my-project")
		Expect(err).ToNot(HaveOccurred())
		Expect(requests).To(HaveLen(1))
		Expect(requests[0].Method).To(Equal(http.MethodPost))
		Expect(requests[0].URL.Path).To(Equal("/v3/projects/my-project:getIamPolicy"))
		Expect(bodies[0]).To(HaveKeyWithValue("options", HaveKeyWithValue("requestedPolicyVersion", BeEquivalentTo(3))))
		Expect(result.Etag).To(Equal("BwXyz"))
		Expect(result.Bindings[0].Role).To(Equal(iam.Viewer))
	})

	It("Reads the policy of a folder", func() {
		_, err := service.GetPolicy(ctx, "folders/123")
		Expect(err).ToNot(HaveOccurred())
		Expect(requests[0].URL.Path).To(Equal("/v3/folders/123:getIamPolicy"))
	})

	It("Reads the policy of an organization", func() {
		_, err := service.GetPolicy(ctx, "organizations/456")
		Expect(err).ToNot(HaveOccurred())
		Expect(requests[0].URL.Path).To(Equal("/v3/organizations/456:getIamPolicy"))
	})

	It("Writes the member added to the policy", func() {
		member, err := policy.NewPrincipal(policy.KindUser, "b@example.com")
		Expect(err).ToNot(HaveOccurred())

		_, err = policy.AddMember(ctx, service, "projects/my-project", "roles/viewer", member)
		Expect(err).ToNot(HaveOccurred())
		Expect(requests).To(HaveLen(2))
		Expect(requests[1].URL.Path).To(Equal("/v3/projects/my-project:setIamPolicy"))
		Expect(bodies[1]).To(HaveKeyWithValue("updateMask", "bindings,etag,auditConfigs"))
		Expect(bodies[1]).To(HaveKeyWithValue("policy", And(
			HaveKeyWithValue("etag", "BwXyz"),
			HaveKeyWithValue("version", BeEquivalentTo(3)),
			HaveKeyWithValue("bindings", ConsistOf(
				HaveKeyWithValue("members", ConsistOf("user:a@example.com", "user:b@example.com")),
			)),
		)))
	})

	It("Reports a rejected write as a concurrent modification", func() {
		proposed := &policy.Policy{
			Bindings: []policy.Binding{
				{
					Role:    iam.Viewer,
					Members: []string{"user:a@example.com"},
				},
			},
			Etag:    "BwOld",
			Version: policy.Version,
		}
		status = http.StatusConflict
		response = `{
			"error": {
				"code": 409,
				"message": "There were concurrent policy changes.",
				"status": "ABORTED"
			}
		}`

		_, err := service.SetPolicy(ctx, "projects/my-project", proposed)
		Expect(err).To(MatchError(policy.ErrConcurrentModification))
	})

	It("Reports a denied read as a remote error", func() {
		status = http.StatusForbidden
		response = `{
			"error": {
				"code": 403,
				"message": "The caller does not have permission",
				"status": "PERMISSION_DENIED"
			}
		}`

		_, err := service.GetPolicy(ctx, "projects/my-project")
		var remote *policy.RemoteServiceError
		Expect(err).To(BeAssignableToTypeOf(remote))
		remote = err.(*policy.RemoteServiceError)
		Expect(remote.StatusCode).To(Equal(http.StatusForbidden))
		Expect(remote.Code).To(Equal(codes.PermissionDenied))
		Expect(remote.Temporary()).To(BeFalse())
	})
	It("Reports an unavailable service as a temporary remote error", func() {
		status = http.StatusServiceUnavailable
		response = `{
			"error": {
				"code": 503,
				"message": "The service is currently unavailable.",
				"status": "UNAVAILABLE"
			}
		}`

		_, err := service.GetPolicy(ctx, "folders/123")
		var remote *policy.RemoteServiceError
		Expect(errors.As(err, &remote)).To(BeTrue())
		Expect(remote.StatusCode).To(Equal(http.StatusServiceUnavailable))
		Expect(remote.Operation).To(Equal("getIamPolicy"))
		Expect(remote.Resource).To(Equal("folders/123"))
		Expect(remote.Temporary()).To(BeTrue())
	})

	It("Keeps the status of a rejected write", func() {
		proposed := &policy.Policy{
			Bindings: []policy.Binding{
				{
					Role:    iam.Viewer,
					Members: []string{"user:a@example.com"},
				},
			},
			Etag:    "BwOld",
			Version: policy.Version,
		}
		status = http.StatusConflict
		response = `{
			"error": {
				"code": 409,
				"message": "There were concurrent policy changes.",
				"status": "ABORTED"
			}
		}`

		_, err := service.SetPolicy(ctx, "projects/my-project", proposed)
		var remote *policy.RemoteServiceError
		Expect(errors.As(err, &remote)).To(BeTrue())
		Expect(remote.StatusCode).To(Equal(http.StatusConflict))
		Expect(remote.Code).To(Equal(codes.Aborted))
	})
})
