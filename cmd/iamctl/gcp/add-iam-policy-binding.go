package gcp

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iamctl/iamctl/pkg/arguments"
	"github.com/iamctl/iamctl/pkg/config"
	"github.com/iamctl/iamctl/pkg/policy"
)

var (
	// AddIamPolicyBindingOpts captures the options that affect the addition of policy bindings
	AddIamPolicyBindingOpts = options{}

	errDryRun   = errors.New("dry run")
	errDeclined = errors.New("change declined")
)

// bindingRequest is a validated request to add a member to a role.
type bindingRequest struct {
	Resource string
	Role     string
	Member   policy.Principal
	DryRun   bool

	// Confirm is asked before writing. If nil the policy is written without asking.
	Confirm func(message string) (bool, error)
}

// NewAddIamPolicyBinding provides the "gcp add iam-policy-binding" subcommand
func NewAddIamPolicyBinding() *cobra.Command {
	addIamPolicyBindingCmd := &cobra.Command{
		Use:   "iam-policy-binding",
		Short: "Add a member to a role of the IAM policy of a project, folder or organization",
		Long: `Add a member to a role of an IAM policy.

The current policy is read, the member is added to the binding of the role, creating it
if needed, and the policy is written back. If the policy changes between the read and
the write nothing is written and the command has to be run again.`,
		Example: `  # Grant the viewer role to a user
  iamctl gcp add iam-policy-binding --project my-project --role viewer \
    --member alice@example.com --member-type user

  # Show what granting a role to a service account would change
  iamctl gcp add iam-policy-binding --project my-project --role roles/storage.admin \
    --member serviceAccount:svc@my-project.iam.gserviceaccount.com --dry-run`,
		Args:    cobra.NoArgs,
		PreRunE: validationForAddIamPolicyBindingCmd,
		RunE:    addIamPolicyBindingCmd,
	}

	fs := addIamPolicyBindingCmd.PersistentFlags()
	addResourceFlags(fs, &AddIamPolicyBindingOpts.resourceOptions)
	fs.StringVar(&AddIamPolicyBindingOpts.Role, "role", "", roleFlagDescription)
	addIamPolicyBindingCmd.MarkPersistentFlagRequired("role")
	fs.StringVar(&AddIamPolicyBindingOpts.Member, "member", "", memberFlagDescription)
	addIamPolicyBindingCmd.MarkPersistentFlagRequired("member")
	fs.StringVar(&AddIamPolicyBindingOpts.MemberType, "member-type", "", memberTypeFlagDescription)
	fs.BoolVar(&AddIamPolicyBindingOpts.DryRun, "dry-run", false, dryRunFlagDescription)
	arguments.AddYesFlag(fs, &AddIamPolicyBindingOpts.Yes)

	addIamPolicyBindingCmd.RegisterFlagCompletionFunc("member-type", completeMemberTypes)
	addIamPolicyBindingCmd.RegisterFlagCompletionFunc("role", completeBasicRoles)

	return addIamPolicyBindingCmd
}

func validationForAddIamPolicyBindingCmd(cmd *cobra.Command, argv []string) error {
	fs := cmd.Flags()
	if err := validateResourceFlags(fs); err != nil {
		return err
	}
	if strings.TrimSpace(AddIamPolicyBindingOpts.Role) == "" {
		return fmt.Errorf("Role is required")
	}
	if strings.TrimSpace(AddIamPolicyBindingOpts.Member) == "" {
		return fmt.Errorf("Member is required")
	}
	if !strings.Contains(AddIamPolicyBindingOpts.Member, ":") {
		err := arguments.PromptOneOf(fs, "member-type", "Member type:", policy.KindNames())
		if err != nil {
			return err
		}
		if strings.TrimSpace(AddIamPolicyBindingOpts.MemberType) == "" {
			return fmt.Errorf("Member type is required when the member isn't in the 'type:identifier' form")
		}
	}
	if AddIamPolicyBindingOpts.MemberType != "" {
		if _, err := policy.ParseKind(AddIamPolicyBindingOpts.MemberType); err != nil {
			return arguments.CheckOneOf(fs, "member-type", policy.KindNames())
		}
	}
	return nil
}

func addIamPolicyBindingCmd(cmd *cobra.Command, argv []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrapf(err, "can't load config file")
	}
	resource, err := AddIamPolicyBindingOpts.resource(cfg)
	if err != nil {
		return err
	}
	role, err := expandRole(AddIamPolicyBindingOpts.Role)
	if err != nil {
		return err
	}
	member, err := parseMember(AddIamPolicyBindingOpts.Member, AddIamPolicyBindingOpts.MemberType)
	if err != nil {
		return err
	}
	request := bindingRequest{
		Resource: resource,
		Role:     role,
		Member:   member,
		DryRun:   AddIamPolicyBindingOpts.DryRun,
	}
	if !AddIamPolicyBindingOpts.Yes && arguments.CanPrompt() {
		request.Confirm = arguments.Confirm
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	service, err := newPolicyService(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	return addIamPolicyBinding(ctx, service, logger, cmd.OutOrStdout(), request)
}

func addIamPolicyBinding(
	ctx context.Context,
	service policy.Service,
	logger *log.Logger,
	out io.Writer,
	request bindingRequest,
) error {
	preview := request.DryRun || request.Confirm != nil
	mutator, err := policy.NewMutator().
		Service(service).
		BeforeWrite(func(ctx context.Context, current, proposed *policy.Policy) error {
			if preview {
				previewChange(out, request.Resource, current, proposed)
			}
			if request.DryRun {
				return errDryRun
			}
			if request.Confirm == nil {
				return nil
			}
			confirmed, err := request.Confirm(fmt.Sprintf("Add '%s' to role '%s' of '%s'?",
				request.Member, request.Role, request.Resource))
			if err != nil {
				return err
			}
			if !confirmed {
				return errDeclined
			}
			return nil
		}).
		Build()
	if err != nil {
		return err
	}

	logger.Printf("Adding '%s' to role '%s' of '%s'...", request.Member, request.Role, request.Resource)
	committed, err := mutator.AddMember(ctx, request.Resource, request.Role, request.Member)
	switch {
	case errors.Is(err, errDryRun):
		logger.Printf("Dry run, the IAM policy of '%s' wasn't modified", request.Resource)
		return nil
	case errors.Is(err, errDeclined):
		logger.Printf("The IAM policy of '%s' wasn't modified", request.Resource)
		return nil
	case err != nil:
		return errors.Wrapf(err, "failed to add IAM policy binding")
	}
	if committed == nil {
		logger.Printf("Added '%s' to role '%s' of '%s'", request.Member, request.Role, request.Resource)
		return nil
	}
	logger.Printf("Added '%s' to role '%s' of '%s', the new etag is '%s'",
		request.Member, request.Role, request.Resource, committed.Etag)
	return nil
}
