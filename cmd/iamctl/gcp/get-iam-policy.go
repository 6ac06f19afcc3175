package gcp

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iamctl/iamctl/pkg/arguments"
	"github.com/iamctl/iamctl/pkg/config"
	"github.com/iamctl/iamctl/pkg/output"
	"github.com/iamctl/iamctl/pkg/policy"
)

var (
	// GetIamPolicyOpts captures the options that affect the retrieval of IAM policies
	GetIamPolicyOpts = options{}
)

// NewGetIamPolicy provides the "gcp get iam-policy" subcommand
func NewGetIamPolicy() *cobra.Command {
	getIamPolicyCmd := &cobra.Command{
		Use:   "iam-policy",
		Short: "Get the IAM policy of a project, folder or organization",
		Example: `  # Print the IAM policy of a project as YAML
  iamctl gcp get iam-policy --project my-project --output yaml

  # List the members of each role of a folder
  iamctl gcp get iam-policy --folder 123456789 --output table`,
		Args:    cobra.NoArgs,
		PreRunE: validationForGetIamPolicyCmd,
		RunE:    getIamPolicyCmd,
	}

	fs := getIamPolicyCmd.PersistentFlags()
	addResourceFlags(fs, &GetIamPolicyOpts.resourceOptions)
	arguments.AddOutputFlag(fs, &GetIamPolicyOpts.Output)

	getIamPolicyCmd.RegisterFlagCompletionFunc("output", completeFormats)

	return getIamPolicyCmd
}

func validationForGetIamPolicyCmd(cmd *cobra.Command, argv []string) error {
	if err := validateResourceFlags(cmd.Flags()); err != nil {
		return err
	}
	if strings.TrimSpace(GetIamPolicyOpts.Output) != "" {
		if _, err := output.ParseFormat(GetIamPolicyOpts.Output); err != nil {
			return err
		}
	}
	return nil
}

func getIamPolicyCmd(cmd *cobra.Command, argv []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrapf(err, "can't load config file")
	}
	resource, err := GetIamPolicyOpts.resource(cfg)
	if err != nil {
		return err
	}
	format := GetIamPolicyOpts.Output
	if strings.TrimSpace(format) == "" {
		format = cfg.Output
	}
	parsedFormat, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	service, err := newPolicyService(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	printer, err := output.NewPrinter().
		Writer(cmd.OutOrStdout()).
		Pager(cfg.Pager).
		Format(parsedFormat).
		Build(ctx)
	if err != nil {
		return errors.Wrapf(err, "can't create output printer")
	}
	defer printer.Close()

	return getIamPolicy(ctx, service, printer, resource)
}

func getIamPolicy(ctx context.Context, service policy.Service, printer *output.Printer, resource string) error {
	current, err := service.GetPolicy(ctx, resource)
	if err != nil {
		return errors.Wrapf(err, "failed to get IAM policy of '%s'", resource)
	}
	if current.IsEmpty() {
		return errors.Wrapf(policy.ErrPolicyNotFound, "no IAM policy returned for '%s'", resource)
	}
	return printPolicy(ctx, printer, current)
}
