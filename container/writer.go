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

// Package container serializes and parses the encrypted container framing:
// an 8-byte big-endian length followed by the hex digest of the original
// plaintext, then a sequence of length-prefixed encrypted chunks.  Nothing
// here buffers a whole container; both sides work chunk-at-a-time.
package container

import (
	"encoding/binary"
	"io"

	"github.com/vaultdump/vaultdump/faults"
)

// LengthPrefixSize is the width of every length prefix in the container.
const LengthPrefixSize = 8

// MaxChunkSize bounds a single declared chunk length.  A prefix above this
// is treated as malformed framing rather than an allocation request.
const MaxChunkSize = 1 << 30

// Writer emits container framing to an output sink, in order, without
// holding more than one chunk in memory.
type Writer struct {
	w            io.Writer
	headerSize   int
	chunkCount   int
	bytesWritten int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes the length-prefixed original-content digest.  It must
// be called exactly once, before any chunk.
func (cw *Writer) WriteHeader(digest string) error {
	if cw.headerSize != 0 {
		return faults.New(faults.Other, "write header", "header already written")
	}

	if err := cw.writePrefixed([]byte(digest)); err != nil {
		return err
	}

	cw.headerSize = LengthPrefixSize + len(digest)
	return nil
}

// WriteChunk appends one length-prefixed encrypted chunk.  Chunks above
// MaxChunkSize are refused; a reader applies the same bound, so anything
// written here stays readable.
func (cw *Writer) WriteChunk(chunk []byte) error {
	if cw.headerSize == 0 {
		return faults.New(faults.Other, "write chunk", "header not written")
	}

	if len(chunk) > MaxChunkSize {
		return faults.Newf(faults.Other, "write chunk",
			"chunk length %d exceeds maximum of %d", len(chunk), MaxChunkSize)
	}

	if err := cw.writePrefixed(chunk); err != nil {
		return err
	}

	cw.chunkCount++
	return nil
}

func (cw *Writer) writePrefixed(data []byte) error {
	var prefix [LengthPrefixSize]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(data)))

	n, err := cw.w.Write(prefix[:])
	cw.bytesWritten += int64(n)
	if err != nil {
		return faults.Wrap(faults.IO, "write length prefix", err)
	}

	n, err = cw.w.Write(data)
	cw.bytesWritten += int64(n)
	if err != nil {
		return faults.Wrap(faults.IO, "write framed bytes", err)
	}

	return nil
}

// HeaderSize returns the bytes the header occupies, or 0 before WriteHeader.
func (cw *Writer) HeaderSize() int {
	return cw.headerSize
}

// ChunkCount returns the number of chunks written so far.
func (cw *Writer) ChunkCount() int {
	return cw.chunkCount
}

// BytesWritten returns the total container bytes emitted so far.
func (cw *Writer) BytesWritten() int64 {
	return cw.bytesWritten
}
