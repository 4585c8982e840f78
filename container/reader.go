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

package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vaultdump/vaultdump/faults"
)

// Reader parses container framing as a finite, forward-only chunk sequence
// over an input source.  It is not restartable or seekable: one forward
// pass per container per run.  End-of-stream exactly at a length-prefix
// boundary ends the sequence normally; end-of-stream inside a prefix or a
// chunk body is a malformed-container fault.
type Reader struct {
	r          io.Reader
	digest     string
	headerSize int
	headerRead bool
	chunkCount int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadHeader parses the length-prefixed original-content digest.  It must
// be called exactly once, before the first Next.
func (cr *Reader) ReadHeader() (digest string, err error) {
	if cr.headerRead {
		return cr.digest, nil
	}

	digestLen, err := cr.readPrefix()
	if err != nil {
		if err == io.EOF {
			return "", faults.New(faults.Malformed, "read header", "input ended before digest length")
		}

		return "", err
	}

	digestBytes := make([]byte, digestLen)
	if _, err = io.ReadFull(cr.r, digestBytes); err != nil {
		return "", faults.Wrap(faults.Malformed, "read header",
			fmt.Errorf("input ended inside digest of declared length %d: %w", digestLen, err))
	}

	cr.digest = string(digestBytes)
	cr.headerSize = LengthPrefixSize + int(digestLen)
	cr.headerRead = true
	return cr.digest, nil
}

// Next returns the next encrypted chunk, or io.EOF after the final chunk.
func (cr *Reader) Next() ([]byte, error) {
	if !cr.headerRead {
		return nil, faults.New(faults.Other, "read chunk", "header not read")
	}

	chunkLen, err := cr.readPrefix()
	if err != nil {
		// A clean EOF at a prefix boundary terminates the sequence.
		return nil, err
	}

	chunk := make([]byte, chunkLen)
	if _, err = io.ReadFull(cr.r, chunk); err != nil {
		return nil, faults.Wrap(faults.Malformed, "read chunk",
			fmt.Errorf("input ended inside chunk %d of declared length %d: %w", cr.chunkCount+1, chunkLen, err))
	}

	cr.chunkCount++
	return chunk, nil
}

// readPrefix reads one 8-byte big-endian length.  io.EOF before the first
// byte is passed through; a partial prefix is malformed.
func (cr *Reader) readPrefix() (uint64, error) {
	var prefix [LengthPrefixSize]byte
	_, err := io.ReadFull(cr.r, prefix[:])
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, faults.Wrap(faults.Malformed, "read length prefix",
			fmt.Errorf("input ended inside a length prefix: %w", err))
	}

	length := binary.BigEndian.Uint64(prefix[:])
	if length > MaxChunkSize {
		return 0, faults.Newf(faults.Malformed, "read length prefix",
			"declared length %d exceeds maximum of %d", length, MaxChunkSize)
	}

	return length, nil
}

// HeaderSize returns the bytes the header occupied, or 0 before ReadHeader.
func (cr *Reader) HeaderSize() int {
	return cr.headerSize
}

// ChunkCount returns the number of chunks returned so far.
func (cr *Reader) ChunkCount() int {
	return cr.chunkCount
}
