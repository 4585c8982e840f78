// Copyright 2026 The Vaultdump Authors
//
// Use of this source code is governed by an MIT license that is located
// in this project's root folder, and can also be found online at:
//
// https://github.com/vaultdump/vaultdump/LICENSE
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vaultdump/vaultdump/helpers"
	"github.com/vaultdump/vaultdump/logger"
)

type rootCommandVals struct {
	configPath string
	logDebug   bool
}

var sharedRootCommandVals = &rootCommandVals{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vaultdump",
	Short: "Vaultdump - Encrypted Postgres backups to object storage",
	Long:  "Vaultdump - Encrypted Postgres backups to object storage",
	Run: func(cmd *cobra.Command, args []string) {
		if len(os.Args) == 1 {
			_ = cmd.Help()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			helpers.ExitCode = helpers.ExitCodePanicInExecute
			fmt.Printf("Panic recovered in cmd.Execute(): %s\n", r)
		}
	}()

	err := rootCmd.Execute()
	if err != nil {
		helpers.ExitCode = helpers.ExitCodeErrorReturnedToExecute
	}
}

func init() {
	cmd := GetRootCmd()
	cmd.PersistentFlags().StringVarP(&sharedRootCommandVals.configPath, "config", "c", "", "The path of the config file to use.  Defaults to the per-user config location.")
	cmd.PersistentFlags().BoolVarP(&sharedRootCommandVals.logDebug, "log-debug", "g", false, "Enables debug logging output")

	cobra.OnInitialize(func() {
		logger.SetDebug(sharedRootCommandVals.logDebug)
	})
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
