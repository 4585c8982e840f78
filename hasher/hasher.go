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

// Package hasher computes streaming SHA-256 digests.  Sources are consumed
// in bounded reads, so memory use is independent of input size.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/vaultdump/vaultdump/faults"
)

// ReadBlockSize is the read granularity for digest passes.
const ReadBlockSize = 1024 * 1024

// HashReader digests every byte of r and returns the hex-encoded SHA-256.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, ReadBlockSize)

	_, err := io.CopyBuffer(h, r, buf)
	if err != nil {
		return "", faults.Wrap(faults.IO, "hash stream", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile digests the file at path and returns the hex-encoded SHA-256.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", faults.Wrap(faults.IO, "hash file", fmt.Errorf("unable to open %s: %w", path, err))
	}
	defer file.Close()

	return HashReader(file)
}
