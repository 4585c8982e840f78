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

package vaultfiles

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultdump/vaultdump/container"
	"github.com/vaultdump/vaultdump/faults"
	"github.com/vaultdump/vaultdump/hasher"
	"github.com/vaultdump/vaultdump/helpers"
)

const testChunkSize = 64 * 1024

func writeTestInput(t *testing.T, name string, size int) (path string, content []byte) {
	t.Helper()

	content = make([]byte, size)
	_, err := rand.New(rand.NewSource(42)).Read(content)
	require.Nil(t, err)

	path = filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, content, 0o644))
	return path, content
}

func TestEncryptFileProducesContainerAndSidecar(t *testing.T) {
	inputPath, content := writeTestInput(t, "backup_db.sql", 3*testChunkSize/2)
	originalHash, err := hasher.HashFile(inputPath)
	require.Nil(t, err)

	encryptor, err := NewEncryptor(newTestKey(t), WithChunkSize(testChunkSize))
	require.Nil(t, err)

	containerPath, err := encryptor.EncryptFile(inputPath)
	require.Nil(t, err)
	assert.Equal(t, inputPath+ContainerExt, containerPath)

	// The original is removed only after the sidecar is complete.
	assert.False(t, helpers.FileExists(inputPath))
	assert.True(t, helpers.FileExists(containerPath))

	record, err := LoadEncryptionRecord(MetadataPath(containerPath))
	require.Nil(t, err)
	assert.Equal(t, "backup_db.sql", record.OriginalFilename)
	assert.Equal(t, int64(len(content)), record.OriginalSize)
	assert.Equal(t, originalHash, record.OriginalHash)

	containerHash, err := hasher.HashFile(containerPath)
	require.Nil(t, err)
	assert.Equal(t, containerHash, record.EncryptedHash)
	assert.False(t, record.EncryptionDate.IsZero())
}

// TestEncryptFileChunkCount encrypts 150 units of input with a 64 unit
// chunk size and expects exactly 3 chunks (64, 64, 22 before encryption).
func TestEncryptFileChunkCount(t *testing.T) {
	inputPath, _ := writeTestInput(t, "backup_db.sql", 150*1024)

	encryptor, err := NewEncryptor(newTestKey(t), WithChunkSize(testChunkSize))
	require.Nil(t, err)

	containerPath, err := encryptor.EncryptFile(inputPath)
	require.Nil(t, err)

	file, err := os.Open(containerPath)
	require.Nil(t, err)
	defer file.Close()

	cr := container.NewReader(file)
	_, err = cr.ReadHeader()
	require.Nil(t, err)

	for {
		if _, err = cr.Next(); err != nil {
			break
		}
	}

	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 3, cr.ChunkCount())
}

func TestEncryptFileEmptyInput(t *testing.T) {
	inputPath, _ := writeTestInput(t, "empty.sql", 0)

	encryptor, err := NewEncryptor(newTestKey(t), WithChunkSize(testChunkSize))
	require.Nil(t, err)

	containerPath, err := encryptor.EncryptFile(inputPath)
	require.Nil(t, err)

	// Header only; no chunks follow for empty input.
	file, err := os.Open(containerPath)
	require.Nil(t, err)
	defer file.Close()

	cr := container.NewReader(file)
	_, err = cr.ReadHeader()
	require.Nil(t, err)
	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestEncryptFileMissingInput(t *testing.T) {
	encryptor, err := NewEncryptor(newTestKey(t))
	require.Nil(t, err)

	_, err = encryptor.EncryptFile(filepath.Join(t.TempDir(), "missing.sql"))
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.IO))
}

// TestEncryptFileFailureLeavesNoArtifacts forces a stream-encrypt failure
// by occupying the container path with a directory.  The input must remain
// and no sidecar may appear.
func TestEncryptFileFailureLeavesNoArtifacts(t *testing.T) {
	inputPath, _ := writeTestInput(t, "backup_db.sql", testChunkSize)
	require.Nil(t, os.Mkdir(inputPath+ContainerExt, 0o755))

	encryptor, err := NewEncryptor(newTestKey(t), WithChunkSize(testChunkSize))
	require.Nil(t, err)

	_, err = encryptor.EncryptFile(inputPath)
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.IO))

	assert.True(t, helpers.FileExists(inputPath))
	assert.False(t, helpers.FileExists(MetadataPath(inputPath+ContainerExt)))
}

// TestEncryptFileFailureKeepsUnrelatedSidecar fails encryption before the
// sidecar stage runs and verifies a pre-existing file at the sidecar path
// survives: a failed run only removes what it wrote.
func TestEncryptFileFailureKeepsUnrelatedSidecar(t *testing.T) {
	inputPath, _ := writeTestInput(t, "backup_db.sql", testChunkSize)
	require.Nil(t, os.Mkdir(inputPath+ContainerExt, 0o755))

	sidecarPath := MetadataPath(inputPath + ContainerExt)
	unrelated := []byte("not produced by any encryption run")
	require.Nil(t, os.WriteFile(sidecarPath, unrelated, 0o644))

	encryptor, err := NewEncryptor(newTestKey(t), WithChunkSize(testChunkSize))
	require.Nil(t, err)

	_, err = encryptor.EncryptFile(inputPath)
	assert.NotNil(t, err)

	kept, err := os.ReadFile(sidecarPath)
	require.Nil(t, err)
	assert.Equal(t, unrelated, kept)
}

func TestNewEncryptorRejectsBadKey(t *testing.T) {
	encryptor, err := NewEncryptor([]byte("short"))
	assert.Nil(t, encryptor)
	assert.True(t, faults.Is(err, faults.Config))
}

// TestNewEncryptorRejectsOversizedChunkSize verifies a chunk size whose
// sealed form would exceed the framing bound fails before any I/O, so an
// encryption run can never produce a container its own decryptor refuses.
func TestNewEncryptorRejectsOversizedChunkSize(t *testing.T) {
	encryptor, err := NewEncryptor(newTestKey(t), WithChunkSize(container.MaxChunkSize))
	assert.Nil(t, encryptor)
	assert.True(t, faults.Is(err, faults.Config))
}
