package gcp

import (
	"github.com/spf13/cobra"
)

type resourceOptions struct {
	Project      string
	Folder       string
	Organization string
}

type options struct {
	resourceOptions

	Output     string
	Role       string
	Member     string
	MemberType string
	DryRun     bool
	Yes        bool
}

// NewGcpCmd implements the "gcp" subcommand for the management of IAM policies
func NewGcpCmd() *cobra.Command {
	gcpCmd := &cobra.Command{
		Use:   "gcp COMMAND",
		Short: "Perform actions related to GCP IAM policies",
		Long:  "Inspect and modify the IAM policies of GCP projects, folders and organizations.",
		Args:  cobra.MinimumNArgs(1),
	}

	gcpCmd.AddCommand(NewGetCmd())
	gcpCmd.AddCommand(NewAddCmd())

	return gcpCmd
}

// NewGetCmd implements the "get" subcommand
func NewGetCmd() *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get COMMAND",
		Short: "Get resources",
		Long:  "Get resources.",
		Args:  cobra.MinimumNArgs(1),
	}
	getCmd.AddCommand(NewGetIamPolicy())
	return getCmd
}

// NewAddCmd implements the "add" subcommand
func NewAddCmd() *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add COMMAND",
		Short: "Add resources",
		Long:  "Add resources.",
		Args:  cobra.MinimumNArgs(1),
	}
	addCmd.AddCommand(NewAddIamPolicyBinding())
	return addCmd
}
