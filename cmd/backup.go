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
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultdump/vaultdump/backup"
	"github.com/vaultdump/vaultdump/helpers"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Dumps the configured database, encrypts it and uploads it to the object store",
	Long:  "Dumps the configured database, encrypts it and uploads it to the object store",
	Run: func(cmd *cobra.Command, args []string) {
		runBackup()
	},
}

type backupCommandVals struct {
	// verbose forwards -v to pg_dump
	verbose bool
}

var localBackupCommandVals = &backupCommandVals{}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().BoolVarP(&localBackupCommandVals.verbose, "verbose", "v", false, "Enables verbose pg_dump output")
}

func runBackup() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Panic recovered in runBackup(): %s\n", r)
		}
	}()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Unable to load config: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	runner, err := backup.NewRunner(cfg)
	if err != nil {
		fmt.Printf("Unable to initialize backup: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	if err = runner.Execute(context.Background(), localBackupCommandVals.verbose); err != nil {
		fmt.Printf("Backup failed: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeRequestFailed
		return
	}

	fmt.Println("Backup complete.")
}
