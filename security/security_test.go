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

package security

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeOverwritesInPlace(t *testing.T) {
	original := bytes.Repeat([]byte{0xAB}, 32)
	key := bytes.Clone(original)

	Wipe(key)
	assert.NotEqual(t, original, key)
	assert.Len(t, key, 32)
}

func TestWipeEmptyIsNoop(t *testing.T) {
	Wipe(nil)
	Wipe([]byte{})
}
