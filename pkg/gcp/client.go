package gcp

//go:generate mockgen -source=client.go -package=gcp -destination=mock_client.go

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	cloudresourcemanager "google.golang.org/api/cloudresourcemanager/v3"
	"google.golang.org/api/option"
)

// GcpClient gives access to the IAM policies of resource manager resources. The resource is the
// full name of a project, folder or organization, for example `projects/my-project`.
type GcpClient interface {
	GetIamPolicy(ctx context.Context, resource string, request *cloudresourcemanager.GetIamPolicyRequest) (*cloudresourcemanager.Policy, error) //nolint:lll
	SetIamPolicy(ctx context.Context, resource string, request *cloudresourcemanager.SetIamPolicyRequest) (*cloudresourcemanager.Policy, error) //nolint:lll
}

type gcpClient struct {
	cloudResourceManager *cloudresourcemanager.Service
}

// NewGcpClient creates a client for the cloud resource manager API. Without options it uses the
// application default credentials, see ClientOptions for the options built from the configuration.
func NewGcpClient(ctx context.Context, opts ...option.ClientOption) (GcpClient, error) {
	cloudResourceManager, err := cloudresourcemanager.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create cloud resource manager client")
	}
	return &gcpClient{
		cloudResourceManager: cloudResourceManager,
	}, nil
}

func (c *gcpClient) GetIamPolicy(
	ctx context.Context,
	resource string,
	request *cloudresourcemanager.GetIamPolicyRequest,
) (*cloudresourcemanager.Policy, error) {
	kind, err := resourceKindOf(resource)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("Calling getIamPolicy for %s '%s'", kind, resource)
	switch kind {
	case folderResource:
		return c.cloudResourceManager.Folders.GetIamPolicy(resource, request).Context(ctx).Do()
	case organizationResource:
		return c.cloudResourceManager.Organizations.GetIamPolicy(resource, request).Context(ctx).Do()
	default:
		return c.cloudResourceManager.Projects.GetIamPolicy(resource, request).Context(ctx).Do()
	}
}

func (c *gcpClient) SetIamPolicy(
	ctx context.Context,
	resource string,
	request *cloudresourcemanager.SetIamPolicyRequest,
) (*cloudresourcemanager.Policy, error) {
	kind, err := resourceKindOf(resource)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("Calling setIamPolicy for %s '%s'", kind, resource)
	switch kind {
	case folderResource:
		return c.cloudResourceManager.Folders.SetIamPolicy(resource, request).Context(ctx).Do()
	case organizationResource:
		return c.cloudResourceManager.Organizations.SetIamPolicy(resource, request).Context(ctx).Do()
	default:
		return c.cloudResourceManager.Projects.SetIamPolicy(resource, request).Context(ctx).Do()
	}
}
