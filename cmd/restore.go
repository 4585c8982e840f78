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
	"time"

	"github.com/spf13/cobra"
	"github.com/vaultdump/vaultdump/backup"
	"github.com/vaultdump/vaultdump/helpers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Downloads a backup from the object store, decrypts it and restores the database",
	Long:  "Downloads a backup from the object store, decrypts it and restores the database",
	Run: func(cmd *cobra.Command, args []string) {
		runRestore()
	},
}

type restoreCommandVals struct {
	// dumpDateText is the date of the backup to restore, formatted
	// yyyy-mm-dd.  Defaults to today.
	dumpDateText string

	// verbose forwards verbose mode to psql
	verbose bool
}

var localRestoreCommandVals = &restoreCommandVals{}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().StringVarP(&localRestoreCommandVals.dumpDateText, "date", "d", "", "The date of the backup to restore, as yyyy-mm-dd.  Defaults to today.")
	restoreCmd.Flags().BoolVarP(&localRestoreCommandVals.verbose, "verbose", "v", false, "Enables verbose psql output")
}

func runRestore() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Panic recovered in runRestore(): %s\n", r)
		}
	}()

	dumpDate := time.Now()
	if localRestoreCommandVals.dumpDateText != "" {
		var err error
		dumpDate, err = time.Parse("2006-01-02", localRestoreCommandVals.dumpDateText)
		if err != nil {
			fmt.Printf("Invalid date %q: expected yyyy-mm-dd\n", localRestoreCommandVals.dumpDateText)
			helpers.ExitCode = helpers.ExitCodeInvalidInput
			return
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Unable to load config: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	restorer, err := backup.NewRestorer(cfg)
	if err != nil {
		fmt.Printf("Unable to initialize restore: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	if err = restorer.Execute(context.Background(), dumpDate, localRestoreCommandVals.verbose); err != nil {
		fmt.Printf("Restore failed: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeRequestFailed
		return
	}

	fmt.Println("Restore complete.")
}
