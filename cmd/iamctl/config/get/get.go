/*
Copyright (c) 2019 Red Hat, Inc.

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

package get

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamctl/iamctl/pkg/config"
)

var Cmd = &cobra.Command{
	Use:   "get VARIABLE",
	Short: "Prints the config variable",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func run(cmd *cobra.Command, argv []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("Can't load config file: %v", err)
	}

	out := cmd.OutOrStdout()
	switch argv[0] {
	case "key_file":
		fmt.Fprintf(out, "%s\n", cfg.KeyFile)
	case "project":
		fmt.Fprintf(out, "%s\n", cfg.Project)
	case "endpoint":
		fmt.Fprintf(out, "%s\n", cfg.Endpoint)
	case "scopes":
		fmt.Fprintf(out, "%s\n", strings.Join(cfg.Scopes, ","))
	case "pager":
		fmt.Fprintf(out, "%s\n", cfg.Pager)
	case "output":
		fmt.Fprintf(out, "%s\n", cfg.Output)
	default:
		return fmt.Errorf("Unknown setting '%s'", argv[0])
	}

	return nil
}
