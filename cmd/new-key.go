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
	"github.com/vaultdump/vaultdump/cipher"
	"github.com/vaultdump/vaultdump/helpers"
)

// newKeyCmd represents the new-key command
var newKeyCmd = &cobra.Command{
	Use:   "new-key",
	Short: "Generates a new random encryption key and prints it",
	Long:  "Generates a new random encryption key and prints it",
	Run: func(cmd *cobra.Command, args []string) {
		newKey()
	},
}

func init() {
	rootCmd.AddCommand(newKeyCmd)
}

func newKey() {
	key, err := cipher.NewKey()
	if err != nil {
		fmt.Printf("Unable to generate key: %s\n", err)
		helpers.ExitCode = helpers.ExitCodeRequestFailed
		return
	}

	fmt.Println(cipher.EncodeKey(key))
}
