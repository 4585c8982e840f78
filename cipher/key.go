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

package cipher

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/vaultdump/vaultdump/faults"
)

// NewKey returns a fresh random symmetric key.
func NewKey() ([]byte, error) {
	key := make([]byte, KeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, faults.Wrap(faults.Other, "new key", err)
	}

	return key, nil
}

// ParseKey decodes a URL-safe base64 key string into the raw key bytes.
// The key is opaque caller-supplied material; no derivation is performed.
// A bad encoding or wrong decoded length fails before any stream is touched.
func ParseKey(text string) ([]byte, error) {
	if text == "" {
		return nil, faults.New(faults.Config, "parse key", "no key provided")
	}

	key, err := base64.URLEncoding.DecodeString(text)
	if err != nil {
		// Tolerate unpadded input, since key generators differ on padding.
		key, err = base64.RawURLEncoding.DecodeString(text)
	}
	if err != nil {
		return nil, faults.Wrap(faults.Config, "parse key", err)
	}

	if len(key) != KeyLen {
		return nil, faults.Newf(faults.Config, "parse key",
			"invalid decoded key length: %d. Expected: %d bytes", len(key), KeyLen)
	}

	return key, nil
}

// EncodeKey is the inverse of ParseKey, used by key generation tooling.
func EncodeKey(key []byte) string {
	return base64.URLEncoding.EncodeToString(key)
}
