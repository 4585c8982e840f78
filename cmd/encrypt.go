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

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt <file>",
	Short: "Encrypts a file into a chunked container, replacing the original",
	Long:  "Encrypts a file into a chunked container, replacing the original",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		encryptFile(args[0])
	},
}

type encryptCommandVals struct {
	// Command line provided symmetric key.  Prompted for when empty and
	// no configured key exists.
	keyInputText string

	// chunkSize is the plaintext chunk size in bytes.  Zero means the
	// default.
	chunkSize int
}

var localEncryptCommandVals = &encryptCommandVals{}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVarP(&localEncryptCommandVals.keyInputText, "key", "k", "", "The base64 key to encrypt with. Prompted for if not provided and not configured.")
	encryptCmd.Flags().IntVarP(&localEncryptCommandVals.chunkSize, "chunk-size", "", 0, "The plaintext chunk size in bytes.  Defaults to 64 MiB.")
}

func encryptFile(inputPath string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Panic recovered in encryptFile(): %s\n", r)
		}
	}()

	if !helpers.FileExists(inputPath) {
		fmt.Printf("Input file does not exist: %s\n", inputPath)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Unable to load config: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	key, err := resolveKey(localEncryptCommandVals.keyInputText, cfg)
	if err != nil {
		fmt.Printf("Unable to acquire encryption key: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeInvalidInput
		return
	}

	defer security.Wipe(key)

	var options []vaultfiles.PipelineOption
	if localEncryptCommandVals.chunkSize > 0 {
		options = append(options, vaultfiles.WithChunkSize(localEncryptCommandVals.chunkSize))
	}

	encryptor, err := vaultfiles.NewEncryptor(key, options...)
	if err != nil {
		fmt.Printf("Unable to initialize encryptor: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeRequestFailed
		return
	}

	containerPath, err := encryptor.EncryptFile(inputPath)
	if err != nil {
		fmt.Printf("Error encrypting file: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeRequestFailed
		return
	}

	fmt.Println("Encrypt complete.")
	fmt.Printf("Container    : %s\n", containerPath)
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("Bytes Written: %d\n", helpers.FileSize(containerPath))
}
