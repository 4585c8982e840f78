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

package helpers

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// GetPasswordInput prompts for a secret value without echoing it to the
// terminal.
func GetPasswordInput(promptText string) (inputText string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("error reading input: %s", r)
		}
	}()

	if promptText != "" {
		fmt.Printf("%s: ", promptText)
	}

	inputBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println("")
	if err != nil {
		return "", err
	}

	return string(inputBytes), nil
}
