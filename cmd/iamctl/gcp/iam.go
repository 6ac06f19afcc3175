package gcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/iam"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iamctl/iamctl/pkg/arguments"
	"github.com/iamctl/iamctl/pkg/config"
	"github.com/iamctl/iamctl/pkg/dump"
	"github.com/iamctl/iamctl/pkg/gcp"
	"github.com/iamctl/iamctl/pkg/output"
	"github.com/iamctl/iamctl/pkg/policy"
)

// basicRoles are the shortcuts accepted for the predefined basic roles.
var basicRoles = map[string]iam.RoleName{
	"owner":  iam.Owner,
	"editor": iam.Editor,
	"viewer": iam.Viewer,
}

// newPolicyService creates the service used by the commands to read and write policies. The
// '--key-file' flag takes precedence over the configuration. Tests replace it with a fake.
var newPolicyService = func(ctx context.Context, cmd *cobra.Command,
	cfg *config.Config) (policy.Service, error) {
	keyFile := cfg.KeyFile
	if flag := cmd.Flags().Lookup("key-file"); flag != nil && flag.Changed {
		keyFile = flag.Value.String()
	}
	client, err := gcp.NewGcpClient(ctx, gcp.ClientOptions(keyFile, cfg.Endpoint, cfg.Scopes)...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to initiate GCP client")
	}
	return gcp.NewPolicyService(client), nil
}

// commandContext returns the context of the command, with the deadline given by the '--timeout'
// flag when it is set.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil || timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func completeMemberTypes(cmd *cobra.Command, args []string,
	toComplete string) ([]string, cobra.ShellCompDirective) {
	return policy.KindNames(), cobra.ShellCompDirectiveNoFileComp
}

// completeBasicRoles offers the role shortcuts. Any other role name is accepted too.
func completeBasicRoles(cmd *cobra.Command, args []string,
	toComplete string) ([]string, cobra.ShellCompDirective) {
	roles := make([]string, 0, len(basicRoles))
	for shortcut := range basicRoles {
		roles = append(roles, shortcut)
	}
	sort.Strings(roles)
	return roles, cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(cmd *cobra.Command, args []string,
	toComplete string) ([]string, cobra.ShellCompDirective) {
	return output.Formats(), cobra.ShellCompDirectiveNoFileComp
}

func addResourceFlags(fs *pflag.FlagSet, opts *resourceOptions) {
	fs.StringVar(&opts.Project, "project", "", projectFlagDescription)
	fs.StringVar(&opts.Folder, "folder", "", folderFlagDescription)
	fs.StringVar(&opts.Organization, "organization", "", organizationFlagDescription)
}

func validateResourceFlags(fs *pflag.FlagSet) error {
	return arguments.CheckExclusive(fs, "project", "folder", "organization")
}

// resource returns the name of the resource selected by the flags, falling back to the project of
// the configuration.
func (o resourceOptions) resource(cfg *config.Config) (string, error) {
	switch {
	case strings.TrimSpace(o.Folder) != "":
		return gcp.FolderResource(o.Folder), nil
	case strings.TrimSpace(o.Organization) != "":
		return gcp.OrganizationResource(o.Organization), nil
	case strings.TrimSpace(o.Project) != "":
		return gcp.ProjectResource(o.Project), nil
	case cfg != nil && strings.TrimSpace(cfg.Project) != "":
		return gcp.ProjectResource(cfg.Project), nil
	}
	return "", errors.Wrap(policy.ErrInvalidArgument,
		"one of --project, --folder or --organization is required, "+
			"or the 'project' configuration setting")
}

// expandRole trims the role and replaces the basic role shortcuts with the full role names.
func expandRole(role string) (string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return "", errors.Wrap(policy.ErrInvalidArgument, "role is required")
	}
	if expanded, ok := basicRoles[strings.ToLower(role)]; ok {
		return string(expanded), nil
	}
	return role, nil
}

// parseMember builds the principal from the '--member' and '--member-type' flags. Without a type
// the member has to be in the complete 'type:identifier' form.
func parseMember(member, memberType string) (policy.Principal, error) {
	if strings.TrimSpace(memberType) == "" {
		return policy.ParsePrincipal(member)
	}
	kind, err := policy.ParseKind(memberType)
	if err != nil {
		return policy.Principal{}, err
	}
	return policy.NewPrincipal(kind, member)
}

// printPolicy writes the policy to the printer in the format of the printer.
func printPolicy(ctx context.Context, printer *output.Printer, p *policy.Policy) error {
	if printer.Format() == output.FormatTable {
		return printBindings(ctx, printer, p)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return errors.Wrapf(err, "can't marshal policy")
	}
	if printer.Format() == output.FormatYAML {
		return dump.YAML(printer, body)
	}
	return dump.Pretty(printer, body)
}

// printBindings writes a table with one row for each member of each binding.
func printBindings(ctx context.Context, printer *output.Printer, p *policy.Policy) error {
	table, err := printer.NewTable().
		Name("bindings").
		Build(ctx)
	if err != nil {
		return err
	}
	err = table.WriteHeaders()
	if err != nil {
		return err
	}
	for _, binding := range p.Bindings {
		for _, member := range binding.Members {
			err = table.WriteColumns([]any{binding.Role, member, conditionText(binding)})
			if err != nil {
				return err
			}
		}
	}
	return table.Close()
}

// conditionText returns the title of the condition of the binding, or its expression if it has no
// title. It returns nil for unconditional bindings.
func conditionText(binding policy.Binding) any {
	if !binding.Conditional() {
		return nil
	}
	var condition struct {
		Title      string `json:"title"`
		Expression string `json:"expression"`
	}
	if err := json.Unmarshal(binding.Condition, &condition); err != nil {
		return string(binding.Condition)
	}
	if condition.Title != "" {
		return condition.Title
	}
	return condition.Expression
}

// previewChange writes the difference between the bindings of the current and the proposed
// policies.
func previewChange(w io.Writer, resource string, current, proposed *policy.Policy) {
	diff := cmp.Diff(current.Bindings, proposed.Bindings)
	fmt.Fprintf(w, "Changes to the IAM policy of '%s' (-current +proposed):\n%s", resource, diff)
}
