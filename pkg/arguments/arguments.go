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

// This file contains functions that add common arguments to the command line.

package arguments

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/iamctl/iamctl/pkg/debug"
	"github.com/iamctl/iamctl/pkg/output"
)

// FilePath is a flag value that only accepts paths of existing files.
type FilePath string

func (f *FilePath) String() string {
	return string(*f)
}

func (f *FilePath) Set(v string) error {
	_, err := os.Stat(v)
	if err != nil {
		return err
	}
	*f = FilePath(v)
	return nil
}

func (f *FilePath) Type() string {
	return "filepath"
}

// AddDebugFlag adds the '--debug' flag to the given set of command line flags.
func AddDebugFlag(fs *pflag.FlagSet) {
	debug.AddFlag(fs)
}

// AddKeyFileFlag adds the '--key-file' flag to the given set of command line flags.
func AddKeyFileFlag(fs *pflag.FlagSet, value *FilePath) {
	fs.Var(
		value,
		"key-file",
		"Path of the service account key file used to authenticate. Overrides the 'key_file' "+
			"configuration setting. If neither is set the application default credentials "+
			"are used.",
	)
}

// AddOutputFlag adds the '--output' flag to the given set of command line flags.
func AddOutputFlag(fs *pflag.FlagSet, value *string) {
	fs.StringVarP(
		value,
		"output",
		"o",
		"",
		fmt.Sprintf(
			"Output format, one of %s. Overrides the 'output' configuration setting, "+
				"the default is '%s'.",
			strings.Join(output.Formats(), ", "), output.FormatJSON,
		),
	)
}

// AddYesFlag adds the '--yes' flag to the given set of command line flags.
func AddYesFlag(fs *pflag.FlagSet, value *bool) {
	fs.BoolVarP(
		value,
		"yes",
		"y",
		false,
		"Don't ask for confirmation before modifying the policy.",
	)
}

// CheckOneOf returns error if flag has been set and is not one of given options.
// It's appropriate for both optional flags (no error not given)
// and required flags (Cobra validated they're given before command .Run).
func CheckOneOf(fs *pflag.FlagSet, flagName string, options []string) error {
	if fs.Changed(flagName) {
		return requireOneOf(fs, flagName, options)
	}
	return nil
}

// requireOneOf returns error if flag is not one of given options.
func requireOneOf(fs *pflag.FlagSet, flagName string, options []string) error {
	flag := fs.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf("no such flag %q", flagName)
	}

	if !sets.New(options...).Has(flag.Value.String()) {
		return fmt.Errorf("A valid --%s must be specified.\nValid options: %+v", flagName, options)
	}
	return nil
}

// CheckExclusive returns error if more than one of the given flags has been set.
func CheckExclusive(fs *pflag.FlagSet, flagNames ...string) error {
	var changed []string
	for _, name := range flagNames {
		if fs.Changed(name) {
			changed = append(changed, "--"+name)
		}
	}
	if len(changed) > 1 {
		return fmt.Errorf("flags %s can't be used together", strings.Join(changed, " and "))
	}
	return nil
}
