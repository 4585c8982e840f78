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

package hasher

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vaultdump/vaultdump/faults"
)

func TestHashReaderKnownValue(t *testing.T) {
	digest, err := HashReader(bytes.NewReader([]byte("abc")))
	assert.Nil(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)
}

func TestHashReaderEmptyInput(t *testing.T) {
	digest, err := HashReader(bytes.NewReader(nil))
	assert.Nil(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest)
}

func TestHashFileMatchesHashReader(t *testing.T) {
	content := make([]byte, 3*ReadBlockSize+17)
	_, err := rand.New(rand.NewSource(1)).Read(content)
	assert.Nil(t, err)

	path := filepath.Join(t.TempDir(), "input.bin")
	assert.Nil(t, os.WriteFile(path, content, 0o644))

	fromFile, err := HashFile(path)
	assert.Nil(t, err)

	fromReader, err := HashReader(bytes.NewReader(content))
	assert.Nil(t, err)

	assert.Equal(t, fromReader, fromFile)
}

func TestHashFileSameContentSameDigest(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.bin")
	second := filepath.Join(dir, "b.bin")

	content := bytes.Repeat([]byte("payload"), 4096)
	assert.Nil(t, os.WriteFile(first, content, 0o644))
	assert.Nil(t, os.WriteFile(second, content, 0o644))

	digestFirst, err := HashFile(first)
	assert.Nil(t, err)
	digestSecond, err := HashFile(second)
	assert.Nil(t, err)

	assert.Equal(t, digestFirst, digestSecond)
}

func TestHashFileMissingFileIsIOFault(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.IO))
}
