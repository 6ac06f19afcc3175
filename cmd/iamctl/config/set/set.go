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

package set

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamctl/iamctl/pkg/config"
	"github.com/iamctl/iamctl/pkg/output"
)

var Cmd = &cobra.Command{
	Use:   "set VARIABLE VALUE",
	Short: "Sets the variable's value",
	Long: "Sets the variable's value in the configuration file. An empty value removes the " +
		"setting. Scopes are given as a comma separated list.",
	Args: cobra.ExactArgs(2),
	RunE: run,
}

func run(cmd *cobra.Command, argv []string) error {
	// Environment variables aren't applied, otherwise they would be saved to the file.
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("Can't load config file: %v", err)
	}
	value := strings.TrimSpace(argv[1])

	switch argv[0] {
	case "key_file":
		cfg.KeyFile = value
	case "project":
		cfg.Project = value
	case "endpoint":
		cfg.Endpoint = value
	case "scopes":
		cfg.Scopes = nil
		for _, scope := range strings.Split(value, ",") {
			scope = strings.TrimSpace(scope)
			if scope != "" {
				cfg.Scopes = append(cfg.Scopes, scope)
			}
		}
	case "pager":
		cfg.Pager = value
	case "output":
		if value != "" {
			format, err := output.ParseFormat(value)
			if err != nil {
				return err
			}
			value = string(format)
		}
		cfg.Output = value
	default:
		return fmt.Errorf("Unknown setting '%s'", argv[0])
	}

	err = config.Save(cfg)
	if err != nil {
		return fmt.Errorf("Can't save config file: %v", err)
	}

	return nil
}
