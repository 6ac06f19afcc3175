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

package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamctl/iamctl/cmd/iamctl/config/get"
	"github.com/iamctl/iamctl/cmd/iamctl/config/set"
	"github.com/iamctl/iamctl/pkg/config"
)

func configVarDocs() (ret string) {
	configType := reflect.TypeOf(config.Config{})
	fieldHelps := make([]string, configType.NumField())
	for i := 0; i < len(fieldHelps); i++ {
		tag := configType.Field(i).Tag
		name := strings.Split(tag.Get("json"), ",")[0]
		doc := tag.Get("doc")
		env := config.EnvPrefix + "_" + tag.Get("envconfig")
		fieldHelps[i] = fmt.Sprintf("\t%-10s%-18s%s", name, env, doc)
	}
	ret = strings.Join(fieldHelps, "\n")
	return
}

func longHelp() (ret string) {
	loc, err := config.Location()
	if err != nil {
		loc = fmt.Sprintf("UNKNOWN (%s)", err)
	}
	ret = fmt.Sprintf(`Get or set variables from a configuration file.

The location of the configuration file is gleaned from the '%s' environment variable,
or ~/.iamctl.json if that file exists, or 'iamctl/iamctl.json' inside the user configuration
directory. Currently using: %s

Each variable can also be given with the environment variable shown next to it, which takes
precedence over the file. The following variables are supported:

%s`, config.LocationEnv, loc, configVarDocs())
	return
}

var Cmd = &cobra.Command{
	Use:   "config COMMAND VARIABLE",
	Short: "get or set configuration variables",
	Long:  longHelp(),
}

func init() {
	Cmd.AddCommand(get.Cmd)
	Cmd.AddCommand(set.Cmd)
}
