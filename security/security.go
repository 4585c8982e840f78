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

// Package security holds helpers for handling raw key material.
package security

import (
	"crypto/rand"
	"io"
)

// Wipe overwrites key material in place with random bytes.  Callers keep
// raw keys alive only as long as a pipeline needs them.
func Wipe(refBytes []byte) {
	if len(refBytes) != 0 {
		_, _ = io.ReadFull(rand.Reader, refBytes[:])
	}
}
