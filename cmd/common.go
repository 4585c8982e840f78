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

	"github.com/vaultdump/vaultdump/cipher"
	"github.com/vaultdump/vaultdump/config"
	"github.com/vaultdump/vaultdump/helpers"
)

// loadConfig reads the config file named by --config, or the per-user
// default location when the flag is empty.  Environment overrides are
// applied by the config package itself.
func loadConfig() (*config.Config, error) {
	return config.Load(sharedRootCommandVals.configPath)
}

// resolveKey picks the encryption key for a command: an explicit --key
// flag wins, then the configured key (file or ENC_KEY), then a hidden
// terminal prompt.
func resolveKey(flagValue string, cfg *config.Config) ([]byte, error) {
	keyText := flagValue
	if keyText == "" && cfg != nil {
		keyText = cfg.Key
	}

	if keyText == "" {
		var err error
		keyText, err = helpers.GetPasswordInput("Enter the encryption key: ")
		if err != nil {
			return nil, fmt.Errorf("unable to acquire key input: %w", err)
		}
		fmt.Println("")
	}

	return cipher.ParseKey(keyText)
}
