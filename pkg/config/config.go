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

// This file contains the types and functions used to manage the configuration of the command line
// client.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	homedir "github.com/mitchellh/go-homedir"
)

// EnvPrefix is the prefix of the environment variables that override the configuration file, for
// example `IAMCTL_PROJECT`.
const EnvPrefix = "IAMCTL"

// LocationEnv is the environment variable that points to an alternative configuration file.
const LocationEnv = "IAMCTL_CONFIG"

// Config is the type used to store the configuration of the client.
// nolint:lll
type Config struct {
	KeyFile  string   `json:"key_file,omitempty" envconfig:"KEY_FILE" doc:"Path of the service account key file. If empty the application default credentials are used."`
	Project  string   `json:"project,omitempty" envconfig:"PROJECT" doc:"Default project identifier, used when no resource flag is given."`
	Endpoint string   `json:"endpoint,omitempty" envconfig:"ENDPOINT" doc:"URL of the resource manager API. If empty the public endpoint is used."`
	Scopes   []string `json:"scopes,omitempty" envconfig:"SCOPES" doc:"OAuth scopes. If this option is used it will replace completely the default scopes. Can be repeated multiple times to specify multiple scopes."`
	Pager    string   `json:"pager,omitempty" envconfig:"PAGER" doc:"Pager command, for example 'less'. If empty no pager will be used."`
	Output   string   `json:"output,omitempty" envconfig:"OUTPUT" doc:"Default output format of policies, one of 'json', 'yaml' or 'table'."`
}

// Load loads the configuration file and then applies the `IAMCTL_*` environment variables on top
// of it. Use LoadFile to get only the content of the file, for example before saving it.
func Load() (cfg *Config, err error) {
	cfg, err = LoadFile()
	if err != nil {
		return
	}
	err = envconfig.Process(EnvPrefix, cfg)
	if err != nil {
		err = fmt.Errorf("can't load configuration from environment: %v", err)
		cfg = nil
	}
	return
}

// LoadFile loads the configuration from the configuration file. If the configuration file doesn't
// exist it will return an empty configuration object.
func LoadFile() (cfg *Config, err error) {
	file, err := Location()
	if err != nil {
		return
	}
	_, err = os.Stat(file)
	if os.IsNotExist(err) {
		cfg = &Config{}
		err = nil
		return
	}
	if err != nil {
		err = fmt.Errorf("can't check if config file '%s' exists: %v", file, err)
		return
	}
	// #nosec G304
	data, err := os.ReadFile(file)
	if err != nil {
		err = fmt.Errorf("can't read config file '%s': %v", file, err)
		return
	}
	cfg = &Config{}
	if len(data) == 0 {
		return
	}
	err = json.Unmarshal(data, cfg)
	if err != nil {
		err = fmt.Errorf("can't parse config file '%s': %v", file, err)
		cfg = nil
		return
	}
	return
}

// Save saves the given configuration to the configuration file.
func Save(cfg *Config) error {
	file, err := Location()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("can't marshal config: %v", err)
	}

	dir := filepath.Dir(file)
	err = os.MkdirAll(dir, os.FileMode(0755))
	if err != nil {
		return fmt.Errorf("can't create directory %s: %v", dir, err)
	}
	err = os.WriteFile(file, data, 0600)
	if err != nil {
		return fmt.Errorf("can't write file '%s': %v", file, err)
	}
	return nil
}

// Location returns the location of the configuration file. If a configuration file
// already exists in the HOME directory, it uses that, otherwise it prefers to
// use the XDG config directory.
func Location() (path string, err error) {
	if location := os.Getenv(LocationEnv); location != "" {
		return location, nil
	}

	// Determine home directory to use for the legacy file path
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	path = filepath.Join(home, ".iamctl.json")

	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		// Determine standard config directory
		configDir, err := os.UserConfigDir()
		if err != nil {
			return path, err
		}

		// Use standard config directory
		path = filepath.Join(configDir, "iamctl", "iamctl.json")
	}

	return path, nil
}
