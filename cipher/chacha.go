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

/*
	Regarding the Encrypt functionality and Chacha20-Poly1305's Associated Data and Nonce construction...

	In our implementation, we follow recommendations from IETF RFC#7539, section 4,
	at https://datatracker.ietf.org/doc/html/rfc7539#section-4, which requires that
	the nonce used with any one key is never repeated.  We draw a fresh random
	24-byte XChaCha nonce per chunk, which is safe at that nonce size, and prepend
	it to the sealed bytes so each chunk is self-contained.
*/

import (
	stdcipher "crypto/cipher"
	cryptorand "crypto/rand"
	"fmt"

	"github.com/vaultdump/vaultdump/faults"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeyLen is the required raw symmetric key length in bytes.
const KeyLen = chacha20poly1305.KeySize

// chunkAEADData is the fixed associated data sealed into every chunk.
const chunkAEADData = "vdchunk1"

type chachaCodec struct {
	chacha stdcipher.AEAD
}

func newChachaCodec(key []byte) (*chachaCodec, error) {
	if len(key) != KeyLen {
		return nil, faults.Newf(faults.Config, "new codec",
			"invalid key length: %d. Expected: %d bytes", len(key), KeyLen)
	}

	chacha, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, faults.Wrap(faults.Config, "new codec", fmt.Errorf("failed creating chacha encrypter: %w", err))
	}

	return &chachaCodec{chacha: chacha}, nil
}

func (c *chachaCodec) Overhead() int {
	return c.chacha.NonceSize() + c.chacha.Overhead()
}

func (c *chachaCodec) EncryptChunk(plain []byte) ([]byte, error) {
	// Select a random nonce, and leave capacity for the ciphertext.
	nonce := make([]byte, c.chacha.NonceSize(), c.chacha.NonceSize()+len(plain)+c.chacha.Overhead())
	_, err := cryptorand.Read(nonce)
	if err != nil {
		return nil, faults.Wrap(faults.Other, "encrypt chunk", fmt.Errorf("failed reading nonce random bytes: %w", err))
	}

	// Seal appends the ciphertext to the nonce.
	return c.chacha.Seal(nonce, nonce, plain, []byte(chunkAEADData)), nil
}

func (c *chachaCodec) DecryptChunk(sealed []byte) ([]byte, error) {
	if len(sealed) < c.chacha.NonceSize()+c.chacha.Overhead() {
		return nil, faults.Newf(faults.Integrity, "decrypt chunk",
			"input size of %d is smaller than nonce and tag size of %d",
			len(sealed), c.chacha.NonceSize()+c.chacha.Overhead())
	}

	nonce, msgBytesEncrypted := sealed[:c.chacha.NonceSize()], sealed[c.chacha.NonceSize():]

	plain, err := c.chacha.Open(nil, nonce, msgBytesEncrypted, []byte(chunkAEADData))
	if err != nil {
		return nil, faults.Wrap(faults.Integrity, "decrypt chunk", err)
	}

	return plain, nil
}
