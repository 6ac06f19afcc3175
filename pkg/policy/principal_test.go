package policy

import (
	. "github.com/onsi/ginkgo/v2" // nolint
	. "github.com/onsi/gomega"    // nolint
)

var _ = Describe("Principal", func() {
	DescribeTable("Wire form",
		func(kind PrincipalKind, identifier, expected string) {
			principal, err := NewPrincipal(kind, identifier)
			Expect(err).ToNot(HaveOccurred())
			Expect(principal.String()).To(Equal(expected))
		},
		Entry("user", KindUser, "a@example.com", "user:a@example.com"),
		Entry("group", KindGroup, "admins@example.com", "group:admins@example.com"),
		Entry("service account", KindServiceAccount, "svc@proj.iam.gserviceaccount.com",
			"serviceAccount:svc@proj.iam.gserviceaccount.com"),
		Entry("domain", KindDomain, "example.com", "domain:example.com"),
		Entry("trimmed identifier", KindUser, "  a@example.com\t", "user:a@example.com"),
	)

	It("Rejects unknown kinds", func() {
		_, err := NewPrincipal(PrincipalKind(0), "a@example.com")
		Expect(err).To(MatchError(ErrInvalidArgument))
		_, err = NewPrincipal(PrincipalKind(42), "a@example.com")
		Expect(err).To(MatchError(ErrInvalidArgument))
	})

	It("Rejects blank identifiers", func() {
		_, err := NewPrincipal(KindUser, "   ")
		Expect(err).To(MatchError(ErrInvalidArgument))
	})

	It("Rejects a zero principal", func() {
		Expect(Principal{}.Validate()).To(MatchError(ErrInvalidArgument))
	})

	Describe("ParseKind", func() {
		DescribeTable("Accepts names and tokens",
			func(value string, expected PrincipalKind) {
				kind, err := ParseKind(value)
				Expect(err).ToNot(HaveOccurred())
				Expect(kind).To(Equal(expected))
			},
			Entry("user", "user", KindUser),
			Entry("group", "group", KindGroup),
			Entry("service_account", "service_account", KindServiceAccount),
			Entry("serviceAccount", "serviceAccount", KindServiceAccount),
			Entry("domain", " domain ", KindDomain),
		)

		It("Rejects other values", func() {
			for _, value := range []string{"", "User", "serviceaccount", "allUsers", "principal"} {
				_, err := ParseKind(value)
				Expect(err).To(MatchError(ErrInvalidArgument), "value %q", value)
			}
		})
	})

	Describe("ParsePrincipal", func() {
		It("Round trips the wire form", func() {
			principal, err := ParsePrincipal("serviceAccount:svc@proj.iam.gserviceaccount.com")
			Expect(err).ToNot(HaveOccurred())
			Expect(principal.Kind).To(Equal(KindServiceAccount))
			Expect(principal.Identifier).To(Equal("svc@proj.iam.gserviceaccount.com"))
			Expect(principal.String()).To(Equal("serviceAccount:svc@proj.iam.gserviceaccount.com"))
		})

		It("Doesn't accept kind names in place of tokens", func() {
			_, err := ParsePrincipal("service_account:svc@proj.iam.gserviceaccount.com")
			Expect(err).To(MatchError(ErrInvalidArgument))
		})

		It("Requires a separator", func() {
			_, err := ParsePrincipal("a@example.com")
			Expect(err).To(MatchError(ErrInvalidArgument))
		})
	})

	It("Lists the kind names in order", func() {
		Expect(KindNames()).To(Equal([]string{"user", "group", "service_account", "domain"}))
		Expect(KindServiceAccount.String()).To(Equal("service_account"))
		Expect(KindServiceAccount.Token()).To(Equal("serviceAccount"))
	})
})
