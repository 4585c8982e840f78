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
	"bytes"
	cryptorand "crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vaultdump/vaultdump/faults"
)

func testKey(t *testing.T) []byte {
	t.Helper()

	key := make([]byte, KeyLen)
	_, err := cryptorand.Read(key)
	assert.Nil(t, err)
	return key
}

// TestChunkRoundTrip tests an encrypt/decrypt cycle with a small input byte set
func TestChunkRoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	assert.Nil(t, err)
	assert.NotNil(t, codec)

	plain := []byte("a small chunk of dump output")
	sealed, err := codec.EncryptChunk(plain)
	if !assert.Nil(t, err) {
		return
	}

	assert.Equal(t, len(plain)+codec.Overhead(), len(sealed))

	opened, err := codec.DecryptChunk(sealed)
	assert.Nil(t, err)
	assert.Equal(t, plain, opened)
}

func TestChunkRoundTripEmptyChunk(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	assert.Nil(t, err)

	sealed, err := codec.EncryptChunk(nil)
	assert.Nil(t, err)

	opened, err := codec.DecryptChunk(sealed)
	assert.Nil(t, err)
	assert.Empty(t, opened)
}

func TestChunksAreIndependent(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	assert.Nil(t, err)

	first, err := codec.EncryptChunk([]byte("first chunk"))
	assert.Nil(t, err)
	second, err := codec.EncryptChunk([]byte("second chunk"))
	assert.Nil(t, err)

	// Chunks decrypt in any order; nothing chains them together.
	openedSecond, err := codec.DecryptChunk(second)
	assert.Nil(t, err)
	assert.Equal(t, []byte("second chunk"), openedSecond)

	openedFirst, err := codec.DecryptChunk(first)
	assert.Nil(t, err)
	assert.Equal(t, []byte("first chunk"), openedFirst)
}

func TestDecryptChunkWrongKeyFails(t *testing.T) {
	encCodec, err := NewCodec(testKey(t))
	assert.Nil(t, err)
	decCodec, err := NewCodec(testKey(t))
	assert.Nil(t, err)

	sealed, err := encCodec.EncryptChunk([]byte("sensitive bytes"))
	assert.Nil(t, err)

	opened, err := decCodec.DecryptChunk(sealed)
	assert.NotNil(t, err)
	assert.Nil(t, opened)
	assert.True(t, faults.Is(err, faults.Integrity))
}

func TestDecryptChunkBitFlipFails(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	assert.Nil(t, err)

	sealed, err := codec.EncryptChunk(bytes.Repeat([]byte("x"), 1024))
	assert.Nil(t, err)

	sealed[len(sealed)/2] ^= 0x01

	_, err = codec.DecryptChunk(sealed)
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.Integrity))
}

func TestDecryptChunkTruncationFails(t *testing.T) {
	codec, err := NewCodec(testKey(t))
	assert.Nil(t, err)

	sealed, err := codec.EncryptChunk([]byte("short"))
	assert.Nil(t, err)

	_, err = codec.DecryptChunk(sealed[:10])
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.Integrity))
}

func TestNewCodecRejectsBadKeyLength(t *testing.T) {
	codec, err := NewCodec([]byte("too short"))
	assert.Nil(t, codec)
	assert.NotNil(t, err)
	assert.True(t, faults.Is(err, faults.Config))
}
