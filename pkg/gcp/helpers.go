package gcp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/iamctl/iamctl/pkg/policy"
)

// DefaultScopes are the OAuth scopes requested when the configuration doesn't give any.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/cloudplatformprojects",
}

type resourceKind string

const (
	projectResource      resourceKind = "project"
	folderResource       resourceKind = "folder"
	organizationResource resourceKind = "organization"
)

var resourcePrefixes = []struct {
	prefix string
	kind   resourceKind
}{
	{prefix: "projects/", kind: projectResource},
	{prefix: "folders/", kind: folderResource},
	{prefix: "organizations/", kind: organizationResource},
}

// ProjectResource returns the resource name of a project given its identifier.
func ProjectResource(projectId string) string {
	return fmt.Sprintf("projects/%s", strings.TrimSpace(projectId))
}

// FolderResource returns the resource name of a folder given its numeric identifier.
func FolderResource(folderId string) string {
	return fmt.Sprintf("folders/%s", strings.TrimSpace(folderId))
}

// OrganizationResource returns the resource name of an organization given its numeric identifier.
func OrganizationResource(organizationId string) string {
	return fmt.Sprintf("organizations/%s", strings.TrimSpace(organizationId))
}

func resourceKindOf(resource string) (resourceKind, error) {
	for _, entry := range resourcePrefixes {
		id, found := strings.CutPrefix(resource, entry.prefix)
		if !found {
			continue
		}
		if id == "" || strings.Contains(id, "/") {
			break
		}
		return entry.kind, nil
	}
	return "", errors.Wrapf(policy.ErrInvalidArgument,
		"resource '%s' should be 'projects/ID', 'folders/ID' or 'organizations/ID'", resource)
}

// ClientOptions builds the client options for the given key file, endpoint and scopes. Empty
// values are ignored, and the default scopes are used when none are given.
func ClientOptions(keyFile, endpoint string, scopes []string) []option.ClientOption {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	opts := []option.ClientOption{
		option.WithScopes(scopes...),
	}
	if keyFile != "" {
		opts = append(opts, option.WithCredentialsFile(keyFile))
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}
