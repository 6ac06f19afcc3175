/*
Copyright (c) 2018 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

  http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iamctl/iamctl/cmd/iamctl/completion"
	"github.com/iamctl/iamctl/cmd/iamctl/config"
	"github.com/iamctl/iamctl/cmd/iamctl/gcp"
	"github.com/iamctl/iamctl/pkg/arguments"
)

var root = &cobra.Command{
	Use:           "iamctl",
	Long:          "Command line tool to inspect and grant roles in the IAM policies of GCP resources.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var args struct {
	keyFile arguments.FilePath
}

func init() {
	// Send logs to the standard error stream by default:
	err := flag.Set("logtostderr", "true")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't set default error stream: %v\n", err)
		os.Exit(1)
	}

	// Register the options that are managed by the 'flag' package, so that they will also be parsed
	// by the 'pflag' package:
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	// Add the command line flags:
	fs := root.PersistentFlags()
	arguments.AddDebugFlag(fs)
	arguments.AddKeyFileFlag(fs, &args.keyFile)
	fs.Duration(
		"timeout",
		0,
		"Maximum time to wait for the API, for example '30s'. Zero means no limit.",
	)

	// Register the subcommands:
	root.AddCommand(gcp.NewGcpCmd())
	root.AddCommand(config.Cmd)
	root.AddCommand(completion.Cmd)
}

func main() {
	// This is needed to make `glog` believe that the flags have already been parsed, otherwise
	// every log messages is prefixed by an error message stating the the flags haven't been
	// parsed.
	err := flag.CommandLine.Parse([]string{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Can't parse empty command line to satisfy 'glog': %v\n", err)
		os.Exit(1)
	}

	// Execute the root command:
	root.SetArgs(os.Args[1:])
	err = root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := gcp.Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "%s\n", hint)
		}
		os.Exit(gcp.ExitCode(err))
	}
}
