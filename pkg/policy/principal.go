package policy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// PrincipalKind is the closed set of identity types that may be granted a role.
type PrincipalKind int

const (
	KindUser PrincipalKind = iota + 1
	KindGroup
	KindServiceAccount
	KindDomain
)

// kindTable maps every kind to its name and to the token used in the wire form of a member. The
// service account token is spelled differently from its name and must stay that way.
var kindTable = []struct {
	kind  PrincipalKind
	name  string
	token string
}{
	{kind: KindUser, name: "user", token: "user"},
	{kind: KindGroup, name: "group", token: "group"},
	{kind: KindServiceAccount, name: "service_account", token: "serviceAccount"},
	{kind: KindDomain, name: "domain", token: "domain"},
}

// KindNames returns the names of the supported kinds, in declaration order.
func KindNames() []string {
	names := make([]string, len(kindTable))
	for i, entry := range kindTable {
		names[i] = entry.name
	}
	return names
}

// ParseKind converts a kind name, or its wire token, into a PrincipalKind.
func ParseKind(value string) (PrincipalKind, error) {
	value = strings.TrimSpace(value)
	for _, entry := range kindTable {
		if value == entry.name || value == entry.token {
			return entry.kind, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidArgument, "unknown principal kind '%s', expected one of %s",
		value, strings.Join(KindNames(), ", "))
}

// Valid checks if the kind is one of the recognized kinds.
func (k PrincipalKind) Valid() bool {
	_, ok := k.token()
	return ok
}

// String returns the name of the kind, for example `service_account`.
func (k PrincipalKind) String() string {
	for _, entry := range kindTable {
		if entry.kind == k {
			return entry.name
		}
	}
	return fmt.Sprintf("PrincipalKind(%d)", int(k))
}

// Token returns the prefix used for the kind in member strings, for example `serviceAccount`.
func (k PrincipalKind) Token() string {
	token, _ := k.token()
	return token
}

func (k PrincipalKind) token() (string, bool) {
	for _, entry := range kindTable {
		if entry.kind == k {
			return entry.token, true
		}
	}
	return "", false
}

// Principal identifies who a permission applies to.
type Principal struct {
	Kind       PrincipalKind
	Identifier string
}

// NewPrincipal creates a principal, trimming the identifier. It fails if the kind isn't recognized
// or if the identifier is blank.
func NewPrincipal(kind PrincipalKind, identifier string) (Principal, error) {
	principal := Principal{
		Kind:       kind,
		Identifier: strings.TrimSpace(identifier),
	}
	if err := principal.Validate(); err != nil {
		return Principal{}, err
	}
	return principal, nil
}

// ParsePrincipal parses a member in wire form, for example `serviceAccount:svc@p.iam.gserviceaccount.com`.
func ParsePrincipal(member string) (Principal, error) {
	token, identifier, found := strings.Cut(strings.TrimSpace(member), ":")
	if !found {
		return Principal{}, errors.Wrapf(ErrInvalidArgument,
			"member '%s' should have the form KIND:IDENTIFIER", member)
	}
	for _, entry := range kindTable {
		if token == entry.token {
			return NewPrincipal(entry.kind, identifier)
		}
	}
	return Principal{}, errors.Wrapf(ErrInvalidArgument, "member '%s' has an unknown kind '%s'", member, token)
}

// Validate checks that the kind is recognized and that the identifier isn't blank.
func (p Principal) Validate() error {
	if !p.Kind.Valid() {
		return errors.Wrapf(ErrInvalidArgument, "unknown principal kind %d", int(p.Kind))
	}
	if strings.TrimSpace(p.Identifier) == "" {
		return errors.Wrapf(ErrInvalidArgument, "identifier of %s principal is empty", p.Kind)
	}
	return nil
}

// String returns the wire form of the principal, as used in the members of a binding.
func (p Principal) String() string {
	return p.Kind.Token() + ":" + strings.TrimSpace(p.Identifier)
}
