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

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vaultdump/vaultdump/helpers"
	"github.com/vaultdump/vaultdump/security"
	"github.com/vaultdump/vaultdump/vaultfiles"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt <container>",
	Short: "Decrypts a container back into the original file, verifying its hash",
	Long:  "Decrypts a container back into the original file, verifying its hash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		decryptFile(args[0])
	},
}

type decryptCommandVals struct {
	// Command line provided symmetric key.  Prompted for when empty and
	// no configured key exists.
	keyInputText string
}

var localDecryptCommandVals = &decryptCommandVals{}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVarP(&localDecryptCommandVals.keyInputText, "key", "k", "", "The base64 key to decrypt with. Prompted for if not provided and not configured.")
}

func decryptFile(containerPath string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Panic recovered in decryptFile(): %s\n", r)
		}
	}()

	if !helpers.FileExists(containerPath) {
		fmt.Printf("Container file does not exist: %s\n", containerPath)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Unable to load config: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	key, err := resolveKey(localDecryptCommandVals.keyInputText, cfg)
	if err != nil {
		fmt.Printf("Unable to acquire decryption key: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	defer security.Wipe(key)

	decryptor, err := vaultfiles.NewDecryptor(key)
	if err != nil {
		fmt.Printf("Unable to initialize decryptor: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeRequestFailed
		return
	}

	restoredPath, err := decryptor.DecryptFile(containerPath)
	if err != nil {
		fmt.Printf("Error decrypting file: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeRequestFailed
		return
	}

	fmt.Println("Decrypt complete.")
	fmt.Printf("Restored File: %s\n", restoredPath)
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("Bytes Written: %d\n", helpers.FileSize(restoredPath))
}
