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

// Package faults defines the error kinds used across the backup, transfer
// and encryption layers.  Callers match on the Kind of a failure rather
// than on message text, so recoverable transfer faults can be told apart
// from fatal integrity faults.
package faults

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Other indicates an unclassified failure.
	Other Kind = iota

	// Config indicates bad or missing parameters, detected before any I/O.
	Config

	// IO indicates a read, write or permission failure on a source,
	// destination or sidecar file.
	IO

	// Malformed indicates container framing that violates the wire format.
	Malformed

	// Integrity indicates a chunk authentication failure or a whole-file
	// digest mismatch.
	Integrity

	// Backup indicates a database dump failure.
	Backup

	// Restore indicates a database restore failure.
	Restore

	// Transfer indicates an object store upload or download failure.
	Transfer
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "configuration error"
	case IO:
		return "io failure"
	case Malformed:
		return "malformed container"
	case Integrity:
		return "integrity failure"
	case Backup:
		return "backup failure"
	case Restore:
		return "restore failure"
	case Transfer:
		return "transfer failure"
	default:
		return "unknown failure"
	}
}

// Error carries a Kind, the operation that failed and an optional cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error with a message instead of a wrapped cause.
func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  errors.New(message),
	}
}

// Newf is New with formatting.
func Newf(kind Kind, op, format string, a ...any) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  fmt.Errorf(format, a...),
	}
}

// Wrap attributes err to op with the given kind.  A nil err returns nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{
		Kind: kind,
		Op:   op,
		Err:  err,
	}
}

// Is reports whether any error in err's chain carries the given kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	for errors.As(err, &fe) {
		if fe.Kind == kind {
			return true
		}

		err = fe.Err
		fe = nil
	}

	return false
}

// KindOf returns the kind of the outermost *Error in err's chain, or Other
// if the chain contains none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}

	return Other
}
