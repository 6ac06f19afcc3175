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

// This file contains the implementation of the '--debug' flag.

package debug

import (
	"flag"
	"strconv"

	"github.com/spf13/pflag"
)

// AddFlag adds the debug flag to the given set of command line flags.
func AddFlag(flags *pflag.FlagSet) {
	flags.Var(&value, "debug", "Enable debug mode, printing the requests sent to the API.")
	flags.Lookup("debug").NoOptDefVal = "true"
}

// Enabled returns a boolean flag that indicates if the debug mode is enabled.
func Enabled() bool {
	return bool(value)
}

// debugValue is a boolean flag that also raises the verbosity of 'glog' to 1 when enabled.
type debugValue bool

var value debugValue

func (v *debugValue) String() string {
	return strconv.FormatBool(bool(*v))
}

func (v *debugValue) Set(text string) error {
	enabled, err := strconv.ParseBool(text)
	if err != nil {
		return err
	}
	*v = debugValue(enabled)
	verbosity := "0"
	if enabled {
		verbosity = "1"
	}
	// The 'v' flag is registered by 'glog', it is absent only in programs that don't link it.
	if flag.Lookup("v") != nil {
		return flag.Set("v", verbosity)
	}
	return nil
}

func (v *debugValue) Type() string {
	return "bool"
}
