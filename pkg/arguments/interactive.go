/*
Copyright (c) 2020 Red Hat, Inc.

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

// This file contains functions to prompt for flags interactively.

package arguments

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// CanPrompt checks if both the standard input and the standard output are terminals, so that the
// user can answer questions.
func CanPrompt() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Confirm asks the user a yes or no question. The default answer is no.
func Confirm(message string) (bool, error) {
	response := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	err := survey.AskOne(prompt, &response)
	if err != nil {
		return false, fmt.Errorf("can't read confirmation: %v", err)
	}
	return response, nil
}

// PromptOneOf sets a string flag value by asking the user to select one of the options, unless
// the flag has already been set. Does nothing when the user can't be prompted.
func PromptOneOf(fs *pflag.FlagSet, flagName, question string, options []string) error {
	flag := fs.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf("no such flag %q", flagName)
	}
	if flag.Changed || !CanPrompt() {
		return nil
	}
	response := flag.Value.String()
	prompt := &survey.Select{
		Message: question,
		Help:    flag.Usage,
		Options: options,
	}
	if response != "" {
		prompt.Default = response
	}
	err := survey.AskOne(prompt, &response)
	if err != nil {
		return err
	}
	return fs.Set(flagName, response)
}
