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

package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion scripts for various shells",
	Long: `Generate the completion script of iamctl for the given shell, bash by default.

Besides commands and flag names the scripts complete the values of the flags that accept a
fixed set of values: '--member-type', the role shortcuts of '--role' and '--output'.

To load completions:

Bash:

$ source <(iamctl completion bash)

# To load completions for each session, execute once:
Linux:
  $ iamctl completion bash > /etc/bash_completion.d/iamctl
MacOS:
  $ iamctl completion bash > /usr/local/etc/bash_completion.d/iamctl

Zsh:

# If shell completion is not already enabled in your environment you will need
# to enable it.  You can execute the following once:

$ echo "autoload -U compinit; compinit" >> ~/.zshrc

# To load completions for each session, execute once:
$ iamctl completion zsh > "${fpath[1]}/_iamctl"

# You will need to start a new shell for this setup to take effect.

Fish:

$ iamctl completion fish | source

# To load completions for each session, execute once:
$ iamctl completion fish > ~/.config/fish/completions/iamctl.fish

PowerShell:

PS> iamctl completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"bash"}
		}

		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		default:
			return fmt.Errorf("invalid shell %q", args[0])
		}
	},
}
