package gcp

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"cloud.google.com/go/iam"
	"github.com/spf13/cobra"

	. "github.com/onsi/ginkgo/v2" // nolint
	. "github.com/onsi/gomega"    // nolint

	"github.com/iamctl/iamctl/pkg/config"
	"github.com/iamctl/iamctl/pkg/policy"
	"github.com/iamctl/iamctl/pkg/policy/policytest"
)

var _ = Describe("Commands", func() {
	const resource = "projects/my-project"

	var (
		service  *policytest.FakeService
		stdout   *bytes.Buffer
		stderr   *bytes.Buffer
		savedFactory func(context.Context, *cobra.Command, *config.Config) (policy.Service, error)
	)

	run := func(args ...string) error {
		cmd := NewGcpCmd()
		cmd.SetArgs(args)
		cmd.SetOut(stdout)
		cmd.SetErr(stderr)
		return cmd.Execute()
	}

	BeforeEach(func() {
		GinkgoT().Setenv(config.LocationEnv, filepath.Join(GinkgoT().TempDir(), "iamctl.json"))
		GetIamPolicyOpts = options{}
		AddIamPolicyBindingOpts = options{}
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}

		service = policytest.NewFakeService()
		service.Put(resource, &policy.Policy{
			Bindings: []policy.Binding{
				{
					Role:    iam.Viewer,
					Members: []string{"user:a@example.com"},
				},
			},
			Version: 1,
		})
		savedFactory = newPolicyService
		newPolicyService = func(context.Context, *cobra.Command, *config.Config) (policy.Service, error) {
			return service, nil
		}
	})

	AfterEach(func() {
		newPolicyService = savedFactory
	})

	It("Prints the policy of the project given in the configuration", func() {
		Expect(config.Save(&config.Config{Project: "my-project", Output: "table"})).To(Succeed())
		Expect(run("get", "iam-policy")).To(Succeed())
		Expect(stdout.String()).To(Equal(
			"ROLE          MEMBER              CONDITION\n" +
				"roles/viewer  user:a@example.com  NONE\n",
		))
	})

	It("Prefers the output flag to the configuration", func() {
		Expect(config.Save(&config.Config{Output: "table"})).To(Succeed())
		Expect(run("get", "iam-policy", "--project", "my-project", "-o", "json")).To(Succeed())
		Expect(stdout.String()).To(ContainSubstring(`"roles/viewer"`))
	})

	It("Rejects more than one resource", func() {
		err := run("get", "iam-policy", "--project", "my-project", "--folder", "123")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("can't be used together"))
	})

	It("Rejects an unknown output format", func() {
		err := run("get", "iam-policy", "--project", "my-project", "--output", "xml")
		Expect(err).To(MatchError(ContainSubstring("xml")))
	})

	It("Adds a binding", func() {
		Expect(run(
			"add", "iam-policy-binding",
			"--project", "my-project",
			"--role", "editor",
			"--member", "b@example.com",
			"--member-type", "user",
		)).To(Succeed())
		binding, found := service.Policy(resource).Binding(string(iam.Editor))
		Expect(found).To(BeTrue())
		Expect(binding.Members).To(Equal([]string{"user:b@example.com"}))
		Expect(stderr.String()).To(ContainSubstring("Added 'user:b@example.com' to role 'roles/editor'"))
	})

	It("Doesn't write in dry run mode", func() {
		Expect(run(
			"add", "iam-policy-binding",
			"--project", "my-project",
			"--role", "roles/viewer",
			"--member", "group:g@example.com",
			"--dry-run",
		)).To(Succeed())
		_, sets := service.Calls()
		Expect(sets).To(BeZero())
		Expect(stdout.String()).To(ContainSubstring("group:g@example.com"))
	})

	It("Requires the member type for bare identifiers", func() {
		err := run(
			"add", "iam-policy-binding",
			"--project", "my-project",
			"--role", "viewer",
			"--member", "b@example.com",
		)
		Expect(err).To(MatchError(ContainSubstring("Member type is required")))
	})

	It("Rejects an unknown member type", func() {
		err := run(
			"add", "iam-policy-binding",
			"--project", "my-project",
			"--role", "viewer",
			"--member", "b@example.com",
			"--member-type", "robot",
		)
		Expect(err).To(MatchError(ContainSubstring("member-type")))
	})

	It("Reports an existing membership", func() {
		err := run(
			"add", "iam-policy-binding",
			"--project", "my-project",
			"--role", "viewer",
			"--member", "user:a@example.com",
			"--yes",
		)
		Expect(err).To(MatchError(policy.ErrDuplicateMembership))
		Expect(ExitCode(err)).To(Equal(ExitDuplicate))
	})
	DescribeTable("Flag value completion",
		func(args []string, expected []string) {
			Expect(run(append([]string{cobra.ShellCompRequestCmd}, args...)...)).To(Succeed())
			lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
			Expect(lines[:len(lines)-1]).To(Equal(expected))
		},
		Entry("Member types",
			[]string{"add", "iam-policy-binding", "--member-type", ""},
			[]string{"user", "group", "service_account", "domain"},
		),
		Entry("Role shortcuts",
			[]string{"add", "iam-policy-binding", "--role", ""},
			[]string{"editor", "owner", "viewer"},
		),
		Entry("Output formats",
			[]string{"get", "iam-policy", "--output", ""},
			[]string{"json", "yaml", "table"},
		),
	)
})
