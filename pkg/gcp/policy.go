package gcp

import (
	"context"
	"encoding/json"
	"strings"

	"cloud.google.com/go/iam"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	cloudresourcemanager "google.golang.org/api/cloudresourcemanager/v3"

	"github.com/iamctl/iamctl/pkg/policy"
)

// updateMask lists the policy fields that a write replaces.
const updateMask = "bindings,etag,auditConfigs"

// PolicyService implements the policy service on top of the cloud resource manager API.
type PolicyService struct {
	client GcpClient
}

var _ policy.Service = &PolicyService{}

// NewPolicyService creates a policy service that sends its requests with the given client.
func NewPolicyService(client GcpClient) *PolicyService {
	return &PolicyService{
		client: client,
	}
}

// GetPolicy fetches the current policy of the resource, asking for schema version 3.
func (s *PolicyService) GetPolicy(ctx context.Context, resource string) (*policy.Policy, error) {
	resource = strings.TrimSpace(resource)
	if _, err := resourceKindOf(resource); err != nil {
		return nil, err
	}
	request := &cloudresourcemanager.GetIamPolicyRequest{
		Options: &cloudresourcemanager.GetPolicyOptions{
			RequestedPolicyVersion: policy.Version,
		},
	}
	response, err := s.client.GetIamPolicy(ctx, resource, request)
	if err != nil {
		return nil, handleRemoteError(getIamPolicyOperation, resource, err)
	}
	result, err := fromRemotePolicy(response)
	if err != nil {
		return nil, errors.Wrapf(policy.ErrMalformedPolicy, "can't decode IAM policy of '%s': %v", resource, err)
	}
	if result.IsEmpty() {
		return nil, errors.Wrapf(policy.ErrPolicyNotFound, "no IAM policy returned for '%s'", resource)
	}
	glog.V(1).Infof("Fetched IAM policy of '%s' with etag '%s' and %d bindings",
		resource, result.Etag, len(result.Bindings))
	return result, nil
}

// SetPolicy replaces the policy of the resource. The policy is checked before it is sent, and a
// write rejected because of a stale etag fails with policy.ErrConcurrentModification.
func (s *PolicyService) SetPolicy(ctx context.Context, resource string,
	p *policy.Policy) (*policy.Policy, error) {
	resource = strings.TrimSpace(resource)
	if _, err := resourceKindOf(resource); err != nil {
		return nil, err
	}
	if err := policy.CheckWritable(p); err != nil {
		return nil, err
	}
	remote, err := toRemotePolicy(p)
	if err != nil {
		return nil, errors.Wrapf(policy.ErrInvalidArgument, "can't encode IAM policy of '%s': %v", resource, err)
	}
	request := &cloudresourcemanager.SetIamPolicyRequest{
		Policy:     remote,
		UpdateMask: updateMask,
	}
	response, err := s.client.SetIamPolicy(ctx, resource, request)
	if err != nil {
		return nil, handleRemoteError(setIamPolicyOperation, resource, err)
	}
	result, err := fromRemotePolicy(response)
	if err != nil {
		return nil, errors.Wrapf(policy.ErrMalformedPolicy, "can't decode IAM policy of '%s': %v", resource, err)
	}
	if result == nil {
		return nil, errors.Wrapf(policy.ErrMalformedPolicy, "no committed IAM policy returned for '%s'", resource)
	}
	glog.V(1).Infof("Committed IAM policy of '%s' with etag '%s'", resource, result.Etag)
	return result, nil
}

func fromRemotePolicy(remote *cloudresourcemanager.Policy) (*policy.Policy, error) {
	if remote == nil {
		return nil, nil
	}
	result := &policy.Policy{
		Etag:    remote.Etag,
		Version: remote.Version,
	}
	if remote.Bindings != nil {
		result.Bindings = make([]policy.Binding, 0, len(remote.Bindings))
		for _, binding := range remote.Bindings {
			if binding == nil {
				continue
			}
			converted := policy.Binding{
				Role:    iam.RoleName(binding.Role),
				Members: append([]string{}, binding.Members...),
			}
			if binding.Condition != nil {
				condition, err := json.Marshal(binding.Condition)
				if err != nil {
					return nil, errors.Wrapf(err, "condition of role '%s'", binding.Role)
				}
				converted.Condition = condition
			}
			result.Bindings = append(result.Bindings, converted)
		}
	}
	for _, config := range remote.AuditConfigs {
		if config == nil {
			continue
		}
		raw, err := json.Marshal(config)
		if err != nil {
			return nil, errors.Wrapf(err, "audit config of service '%s'", config.Service)
		}
		result.AuditConfigs = append(result.AuditConfigs, raw)
	}
	return result, nil
}

func toRemotePolicy(p *policy.Policy) (*cloudresourcemanager.Policy, error) {
	result := &cloudresourcemanager.Policy{
		Bindings: make([]*cloudresourcemanager.Binding, 0, len(p.Bindings)),
		Etag:     p.Etag,
		Version:  p.Version,
	}
	for _, binding := range p.Bindings {
		converted := &cloudresourcemanager.Binding{
			Role:    string(binding.Role),
			Members: append([]string{}, binding.Members...),
		}
		if binding.Conditional() {
			converted.Condition = &cloudresourcemanager.Expr{}
			if err := json.Unmarshal(binding.Condition, converted.Condition); err != nil {
				return nil, errors.Wrapf(err, "condition of role '%s'", binding.Role)
			}
		}
		result.Bindings = append(result.Bindings, converted)
	}
	// Audit configs are part of the update mask, so they are sent even when empty.
	result.AuditConfigs = make([]*cloudresourcemanager.AuditConfig, 0, len(p.AuditConfigs))
	for _, raw := range p.AuditConfigs {
		config := &cloudresourcemanager.AuditConfig{}
		if err := json.Unmarshal(raw, config); err != nil {
			return nil, errors.Wrap(err, "audit config")
		}
		result.AuditConfigs = append(result.AuditConfigs, config)
	}
	if len(result.AuditConfigs) == 0 {
		result.ForceSendFields = append(result.ForceSendFields, "AuditConfigs")
	}
	return result, nil
}
