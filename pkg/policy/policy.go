// Package policy contains the typed model of an IAM allow policy and the logic that adds members to
// its role bindings.
package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/iam"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/iamctl/iamctl/pkg/utils"
)

// Version is the only policy schema version that this package reads and writes.
const Version = 3

// Binding associates a role with the members that are granted it.
type Binding struct {
	Role    iam.RoleName `json:"role"`
	Members []string     `json:"members"`

	// Condition is the opaque condition expression of a conditional binding. It is passed through
	// untouched and conditional bindings are never selected for modification.
	Condition json.RawMessage `json:"condition,omitempty"`
}

// Policy is the complete access control document of a resource.
type Policy struct {
	Bindings []Binding `json:"bindings"`

	// AuditConfigs are passed through without interpretation.
	AuditConfigs []json.RawMessage `json:"auditConfigs,omitempty"`

	// Etag is the concurrency token issued by the service when the policy was read.
	Etag string `json:"etag"`

	Version int64 `json:"version"`
}

// IsEmpty checks if the policy carries no data at all, which the service uses to signal that there
// is no policy.
func (p *Policy) IsEmpty() bool {
	return p == nil ||
		(p.Bindings == nil && len(p.AuditConfigs) == 0 && p.Etag == "" && p.Version == 0)
}

// DeepCopy returns a copy of the policy that shares no memory with the original. A nil bindings
// sequence stays nil.
func (p *Policy) DeepCopy() *Policy {
	if p == nil {
		return nil
	}
	result := &Policy{
		Etag:    p.Etag,
		Version: p.Version,
	}
	if p.Bindings != nil {
		result.Bindings = make([]Binding, len(p.Bindings))
		for i, binding := range p.Bindings {
			result.Bindings[i] = binding.DeepCopy()
		}
	}
	if p.AuditConfigs != nil {
		result.AuditConfigs = make([]json.RawMessage, len(p.AuditConfigs))
		for i, config := range p.AuditConfigs {
			result.AuditConfigs[i] = append(json.RawMessage(nil), config...)
		}
	}
	return result
}

// DeepCopy returns a copy of the binding that shares no memory with the original.
func (b Binding) DeepCopy() Binding {
	result := Binding{
		Role: b.Role,
	}
	if b.Members != nil {
		result.Members = append([]string{}, b.Members...)
	}
	if b.Condition != nil {
		result.Condition = append(json.RawMessage(nil), b.Condition...)
	}
	return result
}

// Conditional checks if the binding only applies when a condition holds.
func (b Binding) Conditional() bool {
	trimmed := bytes.TrimSpace(b.Condition)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// HasMember checks if the member, in wire form, is bound to the role.
func (b Binding) HasMember(member string) bool {
	return utils.Contains(b.Members, member)
}

// Binding returns the first unconditional binding for the given role.
func (p *Policy) Binding(role string) (Binding, bool) {
	if i := p.bindingIndex(role); i >= 0 {
		return p.Bindings[i], true
	}
	return Binding{}, false
}

func (p *Policy) bindingIndex(role string) int {
	for i, binding := range p.Bindings {
		if string(binding.Role) == role && !binding.Conditional() {
			return i
		}
	}
	return -1
}

// Validate checks the invariants of the policy: every binding has a role, roles are unique and no
// member appears twice in the same binding. All the violations are reported together.
func (p *Policy) Validate() error {
	var result error
	roles := sets.New[string]()
	for i, binding := range p.Bindings {
		if strings.TrimSpace(string(binding.Role)) == "" {
			result = multierr.Append(result, fmt.Errorf("binding %d has no role", i))
			continue
		}
		// Conditional bindings may repeat a role with different conditions.
		key := string(binding.Role) + "\x00" + string(bytes.TrimSpace(binding.Condition))
		if roles.Has(key) {
			result = multierr.Append(result, fmt.Errorf("role '%s' is bound more than once", binding.Role))
		}
		roles.Insert(key)
		members := sets.New[string]()
		for _, member := range binding.Members {
			if members.Has(member) {
				result = multierr.Append(result,
					fmt.Errorf("member '%s' appears more than once in role '%s'", member, binding.Role))
			}
			members.Insert(member)
		}
	}
	return result
}

// CheckWritable verifies that the policy can be sent to the service. A policy without bindings is
// refused because writing it would revoke every role of the resource.
func CheckWritable(p *Policy) error {
	if p == nil {
		return errors.Wrap(ErrInvalidArgument, "refusing to write a nil policy")
	}
	if len(p.Bindings) == 0 {
		return errors.Wrap(ErrInvalidArgument,
			"refusing to write a policy without bindings, it would remove every role")
	}
	if p.Etag == "" {
		return errors.Wrap(ErrInvalidArgument, "refusing to write a policy without an etag")
	}
	if p.Version != Version {
		return errors.Wrapf(ErrInvalidArgument, "refusing to write policy version %d, only version %d is supported",
			p.Version, Version)
	}
	if err := p.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "refusing to write an inconsistent policy: %v", err)
	}
	return nil
}

// checkFetched verifies that a policy returned by the service carries what is needed to write it
// back.
func checkFetched(resource string, p *Policy) error {
	if p.IsEmpty() {
		return errors.Wrapf(ErrPolicyNotFound, "no IAM policy returned for '%s'", resource)
	}
	if p.Etag == "" {
		return errors.Wrapf(ErrMalformedPolicy, "IAM policy of '%s' has no etag", resource)
	}
	if p.Bindings == nil {
		return errors.Wrapf(ErrMalformedPolicy, "IAM policy of '%s' has no bindings", resource)
	}
	return nil
}

// WithMember returns a new policy where the member is bound to the role. The receiver isn't
// modified. If there is an unconditional binding for the role the member is appended to it,
// otherwise a new binding is appended to the end of the bindings. The etag is kept and the version
// is set to Version.
func (p *Policy) WithMember(role string, member Principal) (*Policy, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "role name is empty")
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}
	if p == nil || p.Etag == "" || p.Bindings == nil {
		return nil, errors.Wrap(ErrMalformedPolicy, "policy has no etag or no bindings")
	}

	result := p.DeepCopy()
	wire := member.String()
	if i := result.bindingIndex(role); i >= 0 {
		binding := &result.Bindings[i]
		if binding.HasMember(wire) {
			return nil, errors.Wrapf(ErrDuplicateMembership, "'%s' already has role '%s'", wire, role)
		}
		binding.Members = append(binding.Members, wire)
	} else {
		result.Bindings = append(result.Bindings, Binding{
			Role:    iam.RoleName(role),
			Members: []string{wire},
		})
	}
	if result.AuditConfigs == nil {
		result.AuditConfigs = []json.RawMessage{}
	}
	result.Version = Version
	return result, nil
}
