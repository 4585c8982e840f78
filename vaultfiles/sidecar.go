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
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vaultdump/vaultdump/faults"
	"github.com/vaultdump/vaultdump/helpers"
)

// Sidecar records are plain line-oriented text: one "key: value" pair per
// line, split on the first ": " only, so values may themselves contain
// colons.  The format is a compatibility surface; do not change it.

const (
	// ContainerExt is appended to a plaintext file name to form the
	// container name.
	ContainerExt = ".encrypted"

	// MetadataExt replaces the container's last extension to form the
	// encryption sidecar name.
	MetadataExt = ".metadata"

	// DecryptionMetadataExt replaces the restored file's last extension to
	// form the decryption sidecar name.
	DecryptionMetadataExt = ".decryption_metadata"
)

const sidecarDateFormat = time.RFC3339

// EncryptionRecord describes one successful encryption run.
type EncryptionRecord struct {
	OriginalFilename string
	OriginalSize     int64
	OriginalHash     string
	EncryptedHash    string
	EncryptionDate   time.Time
	EncryptionTime   time.Duration
}

// DecryptionRecord describes one successful decryption run.
type DecryptionRecord struct {
	OriginalFilename  string
	DecryptedFilename string
	DecryptedSize     int64
	DecryptedHash     string
	DecryptionDate    time.Time
	DecryptionTime    time.Duration
}

// MetadataPath returns the encryption sidecar path for a container path.
func MetadataPath(containerPath string) string {
	return helpers.ReplaceFileExt(containerPath, MetadataExt)
}

// DecryptionMetadataPath returns the decryption sidecar path for a restored
// file path.
func DecryptionMetadataPath(restoredPath string) string {
	return helpers.ReplaceFileExt(restoredPath, DecryptionMetadataExt)
}

func (er *EncryptionRecord) Encode() []byte {
	return encodePairs([]sidecarPair{
		{"original_filename", er.OriginalFilename},
		{"original_size", strconv.FormatInt(er.OriginalSize, 10)},
		{"original_hash", er.OriginalHash},
		{"encrypted_hash", er.EncryptedHash},
		{"encryption_date", er.EncryptionDate.Format(sidecarDateFormat)},
		{"encryption_time", formatSeconds(er.EncryptionTime)},
	})
}

func (dr *DecryptionRecord) Encode() []byte {
	return encodePairs([]sidecarPair{
		{"original_filename", dr.OriginalFilename},
		{"decrypted_filename", dr.DecryptedFilename},
		{"decrypted_size", strconv.FormatInt(dr.DecryptedSize, 10)},
		{"decrypted_hash", dr.DecryptedHash},
		{"decryption_date", dr.DecryptionDate.Format(sidecarDateFormat)},
		{"decryption_time", formatSeconds(dr.DecryptionTime)},
	})
}

// DecodeEncryptionRecord parses an encryption sidecar.  Unknown keys are
// ignored so newer writers stay readable.
func DecodeEncryptionRecord(data []byte) (*EncryptionRecord, error) {
	pairs, err := decodePairs(data)
	if err != nil {
		return nil, err
	}

	er := &EncryptionRecord{
		OriginalFilename: pairs["original_filename"],
		OriginalHash:     pairs["original_hash"],
		EncryptedHash:    pairs["encrypted_hash"],
	}

	er.OriginalSize, _ = strconv.ParseInt(pairs["original_size"], 10, 64)
	er.EncryptionDate, _ = time.Parse(sidecarDateFormat, pairs["encryption_date"])
	er.EncryptionTime = parseSeconds(pairs["encryption_time"])

	return er, nil
}

// DecodeDecryptionRecord parses a decryption sidecar.
func DecodeDecryptionRecord(data []byte) (*DecryptionRecord, error) {
	pairs, err := decodePairs(data)
	if err != nil {
		return nil, err
	}

	dr := &DecryptionRecord{
		OriginalFilename:  pairs["original_filename"],
		DecryptedFilename: pairs["decrypted_filename"],
		DecryptedHash:     pairs["decrypted_hash"],
	}

	dr.DecryptedSize, _ = strconv.ParseInt(pairs["decrypted_size"], 10, 64)
	dr.DecryptionDate, _ = time.Parse(sidecarDateFormat, pairs["decryption_date"])
	dr.DecryptionTime = parseSeconds(pairs["decryption_time"])

	return dr, nil
}

// LoadEncryptionRecord reads and parses the sidecar file at path.
func LoadEncryptionRecord(path string) (*EncryptionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faults.Wrap(faults.IO, "load sidecar", err)
	}

	return DecodeEncryptionRecord(data)
}

// writeSidecar writes record bytes durably: the data is synced to disk
// before the file is closed, so a sidecar either exists complete or not
// at all.  A partial file is removed here; when Create itself fails,
// whatever sits at path was never touched and is left alone.
func writeSidecar(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return faults.Wrap(faults.IO, "write sidecar", err)
	}

	_, err = file.Write(data)
	if err == nil {
		err = file.Sync()
	}

	if err != nil {
		file.Close()
		os.Remove(path)
		return faults.Wrap(faults.IO, "write sidecar", err)
	}

	if err = file.Close(); err != nil {
		os.Remove(path)
		return faults.Wrap(faults.IO, "write sidecar", err)
	}

	return nil
}

type sidecarPair struct {
	key   string
	value string
}

func encodePairs(pairs []sidecarPair) []byte {
	buf := bytes.NewBuffer(nil)
	for _, pair := range pairs {
		fmt.Fprintf(buf, "%s: %s\n", pair.key, pair.value)
	}

	return buf.Bytes()
}

func decodePairs(data []byte) (map[string]string, error) {
	pairs := make(map[string]string)

	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, faults.Newf(faults.Malformed, "decode sidecar",
				"line %d is not a \"key: value\" pair", lineNo+1)
		}

		pairs[key] = value
	}

	return pairs, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}

func parseSeconds(text string) time.Duration {
	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}
