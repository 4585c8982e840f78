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

// Codec encrypts and decrypts single bounded-size chunks.  Each chunk is an
// independent transform: it carries its own nonce and authentication tag, and
// no chunk depends on any neighboring chunk's bytes.
type Codec interface {
	// EncryptChunk seals plain and returns nonce||ciphertext||tag.
	EncryptChunk(plain []byte) ([]byte, error)

	// DecryptChunk opens a sealed chunk.  It fails with an integrity fault
	// when the authentication check does not pass.
	DecryptChunk(sealed []byte) ([]byte, error)

	// Overhead returns the per-chunk ciphertext expansion in bytes.
	Overhead() int
}

// NewCodec returns a chunk codec for the given raw symmetric key.
func NewCodec(key []byte) (Codec, error) {
	// Just using XChaCha20-Poly1305 for now.  The interface will allow us to
	// support different ciphers in the future if we wish to, as well as for creating mocks.
	return newChachaCodec(key)
}
