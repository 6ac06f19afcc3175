package policy

//go:generate mockgen -source=mutator.go -package=policy -destination=mock_service.go

import (
	"context"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Service is the remote store of policies. Both methods perform one round trip and keep no state
// between calls.
type Service interface {
	// GetPolicy returns the current policy of the resource.
	GetPolicy(ctx context.Context, resource string) (*Policy, error)

	// SetPolicy replaces the policy of the resource and returns the policy as committed by the
	// service, with a new etag.
	SetPolicy(ctx context.Context, resource string, policy *Policy) (*Policy, error)
}

// BeforeWriteFunc is called with the fetched policy and the policy that is about to be written. If
// it returns an error nothing is written and that error is returned to the caller unchanged.
type BeforeWriteFunc func(ctx context.Context, current, proposed *Policy) error

// MutatorBuilder contains the data and logic needed to create a mutator.
type MutatorBuilder struct {
	service     Service
	beforeWrite BeforeWriteFunc
}

// Mutator performs read-modify-write updates of policies. It holds no policy between calls, every
// update starts by fetching the current policy.
type Mutator struct {
	service     Service
	beforeWrite BeforeWriteFunc
}

// NewMutator creates a builder that can then be used to configure and create a mutator.
func NewMutator() *MutatorBuilder {
	return &MutatorBuilder{}
}

// Service sets the policy service. This is mandatory.
func (b *MutatorBuilder) Service(value Service) *MutatorBuilder {
	b.service = value
	return b
}

// BeforeWrite sets a function that is called before the modified policy is written.
func (b *MutatorBuilder) BeforeWrite(value BeforeWriteFunc) *MutatorBuilder {
	b.beforeWrite = value
	return b
}

// Build uses the data stored in the builder to create a mutator.
func (b *MutatorBuilder) Build() (*Mutator, error) {
	if b.service == nil {
		return nil, errors.New("policy service is mandatory")
	}
	return &Mutator{
		service:     b.service,
		beforeWrite: b.beforeWrite,
	}, nil
}

// AddMember binds the member to the role in the policy of the given resource, using a mutator
// without hooks.
func AddMember(ctx context.Context, service Service, resource, role string, member Principal) (*Policy, error) {
	mutator, err := NewMutator().Service(service).Build()
	if err != nil {
		return nil, err
	}
	return mutator.AddMember(ctx, resource, role, member)
}

// AddMember fetches the policy of the resource, binds the member to the role and writes the policy
// back with the etag that was read. Invalid arguments are rejected before any call to the service.
// A member that already has the role is reported with ErrDuplicateMembership and nothing is
// written. Errors returned by the service, including ErrConcurrentModification, are returned as
// they are, there is no retry.
func (m *Mutator) AddMember(ctx context.Context, resource, role string, member Principal) (*Policy, error) {
	resource = strings.TrimSpace(resource)
	role = strings.TrimSpace(role)
	if resource == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "resource name is empty")
	}
	if role == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "role name is empty")
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}

	current, err := m.service.GetPolicy(ctx, resource)
	if err != nil {
		return nil, err
	}
	if err := checkFetched(resource, current); err != nil {
		return nil, err
	}
	glog.V(1).Infof("Fetched IAM policy of '%s' with etag '%s' and %d bindings",
		resource, current.Etag, len(current.Bindings))

	proposed, err := current.WithMember(role, member)
	if err != nil {
		return nil, errors.Wrapf(err, "can't add member to IAM policy of '%s'", resource)
	}

	if m.beforeWrite != nil {
		if err := m.beforeWrite(ctx, current, proposed); err != nil {
			return nil, err
		}
	}

	committed, err := m.service.SetPolicy(ctx, resource, proposed)
	if err != nil {
		return nil, err
	}
	if committed != nil {
		glog.V(1).Infof("Committed IAM policy of '%s', new etag is '%s'", resource, committed.Etag)
	}
	return committed, nil
}
