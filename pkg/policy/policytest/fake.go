// Package policytest contains an in-memory policy service for tests.
package policytest

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc/codes"

	"github.com/iamctl/iamctl/pkg/policy"
)

// FakeService is a policy.Service that keeps policies in memory and enforces etag matching on
// writes, the way the real service does.
type FakeService struct {
	lock          sync.Mutex
	policies      map[string]*policy.Policy
	setErrors     []error
	generation    int
	getCalls      int
	setCalls      int
	beforeSetHook func(resource string)
}

var _ policy.Service = (*FakeService)(nil)

// NewFakeService creates an empty fake service.
func NewFakeService() *FakeService {
	return &FakeService{
		policies: map[string]*policy.Policy{},
	}
}

// Put stores a copy of the policy for the resource. A nil policy registers the resource without a
// policy, so that GetPolicy answers with nothing. If the policy has no etag one is assigned.
func (s *FakeService) Put(resource string, p *policy.Policy) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if p == nil {
		s.policies[resource] = nil
		return
	}
	stored := p.DeepCopy()
	if stored.Etag == "" {
		stored.Etag = s.nextEtag()
	}
	s.policies[resource] = stored
}

// Policy returns a copy of the policy currently stored for the resource.
func (s *FakeService) Policy(resource string) *policy.Policy {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.policies[resource].DeepCopy()
}

// AddSetPolicyError queues an error that will be returned by the next call to SetPolicy.
func (s *FakeService) AddSetPolicyError(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.setErrors = append(s.setErrors, err)
}

// OnSetPolicy registers a function called at the start of every SetPolicy, outside of the lock. It
// can be used to simulate a concurrent writer.
func (s *FakeService) OnSetPolicy(hook func(resource string)) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.beforeSetHook = hook
}

// Calls returns the number of GetPolicy and SetPolicy calls received.
func (s *FakeService) Calls() (gets, sets int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.getCalls, s.setCalls
}

func (s *FakeService) GetPolicy(ctx context.Context, resource string) (*policy.Policy, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.getCalls++
	stored, ok := s.policies[resource]
	if !ok {
		return nil, &policy.RemoteServiceError{
			Operation:  "getIamPolicy",
			Resource:   resource,
			StatusCode: 404,
			Code:       codes.NotFound,
			Err:        fmt.Errorf("resource '%s' doesn't exist", resource),
		}
	}
	return stored.DeepCopy(), nil
}

func (s *FakeService) SetPolicy(ctx context.Context, resource string,
	p *policy.Policy) (*policy.Policy, error) {
	s.lock.Lock()
	hook := s.beforeSetHook
	s.lock.Unlock()
	if hook != nil {
		hook(resource)
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.setCalls++
	if len(s.setErrors) > 0 {
		err := s.setErrors[0]
		s.setErrors = s.setErrors[1:]
		return nil, err
	}
	if err := policy.CheckWritable(p); err != nil {
		return nil, err
	}
	stored, ok := s.policies[resource]
	if !ok || stored == nil {
		return nil, &policy.RemoteServiceError{
			Operation:  "setIamPolicy",
			Resource:   resource,
			StatusCode: 404,
			Code:       codes.NotFound,
			Err:        fmt.Errorf("resource '%s' doesn't exist", resource),
		}
	}
	if stored.Etag != p.Etag {
		return nil, policy.NewConcurrentModificationError(&policy.RemoteServiceError{
			Operation:  "setIamPolicy",
			Resource:   resource,
			StatusCode: 409,
			Code:       codes.Aborted,
			Err:        fmt.Errorf("etag '%s' doesn't match current etag '%s'", p.Etag, stored.Etag),
		})
	}
	committed := p.DeepCopy()
	committed.Etag = s.nextEtag()
	s.policies[resource] = committed
	return committed.DeepCopy(), nil
}

func (s *FakeService) nextEtag() string {
	s.generation++
	return fmt.Sprintf("etag-%d", s.generation)
}
