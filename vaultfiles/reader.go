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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	vaultcipher "github.com/vaultdump/vaultdump/cipher"
	"github.com/vaultdump/vaultdump/container"
	"github.com/vaultdump/vaultdump/faults"
	"github.com/vaultdump/vaultdump/hasher"
	"github.com/vaultdump/vaultdump/helpers"
	"github.com/vaultdump/vaultdump/logger"
	"github.com/vaultdump/vaultdump/progress"
)

// DecryptedExt replaces the container extension when no sidecar supplies
// the original file name.
const DecryptedExt = ".decrypted"

// Decryptor reverses an encryption run: it parses the container, restores
// the plaintext, verifies the embedded digest and writes the decryption
// sidecar.  The container and its encryption sidecar are removed once the
// restore succeeds; a container is single-use.
type Decryptor struct {
	codec vaultcipher.Codec
	*pipelineSettings
}

// NewDecryptor validates the raw key and returns a decryption pipeline.
func NewDecryptor(key []byte, options ...PipelineOption) (*Decryptor, error) {
	codec, err := vaultcipher.NewCodec(key)
	if err != nil {
		return nil, err
	}

	return &Decryptor{
		codec:            codec,
		pipelineSettings: newPipelineSettings(options...),
	}, nil
}

// DecryptFile restores the plaintext from containerPath.  On any failure
// the partially written output and its sidecar are removed first, leaving
// the container untouched for another attempt.
func (d *Decryptor) DecryptFile(containerPath string) (restoredPath string, err error) {
	if !helpers.FileExists(containerPath) {
		return "", faults.Newf(faults.IO, "decrypt", "container file does not exist: %s", containerPath)
	}

	metadataPath := MetadataPath(containerPath)
	restoredPath = deriveRestoredPath(containerPath, metadataPath)
	decryptionMetadataPath := DecryptionMetadataPath(restoredPath)

	containerSize := helpers.FileSize(containerPath)
	logger.Infof("Starting decryption of file: %s", containerPath)
	logger.Infof("Encrypted file size: %s", helpers.FormatSize(float64(containerSize)))

	start := time.Now()
	tracker := progress.NewTracker(start, d.reportInterval)

	// Only files this run created are removed on failure.  A header parse
	// failure happens before the output exists, and an unrelated file at
	// the restored path must survive it.
	embeddedHash, outputCreated, err := d.streamDecrypt(containerPath, restoredPath, containerSize, tracker)
	if err != nil {
		if outputCreated {
			cleanupArtifacts(restoredPath)
		}
		return "", fmt.Errorf("decrypt stage stream-decrypt failed: %w", err)
	}

	restoredHash, err := d.verifyDigest(restoredPath, embeddedHash)
	if err != nil {
		cleanupArtifacts(restoredPath)
		return "", fmt.Errorf("decrypt stage verify-digest failed: %w", err)
	}

	if err = d.finalizeMetadata(containerPath, metadataPath, restoredPath, decryptionMetadataPath, restoredHash, start); err != nil {
		cleanupArtifacts(restoredPath)
		return "", fmt.Errorf("decrypt stage finalize-metadata failed: %w", err)
	}

	totalTime := time.Since(start)
	logger.Info("Decryption completed successfully:")
	logger.Infof("Decrypted file: %s", restoredPath)
	logger.Infof("Total time: %s", helpers.FormatDuration(totalTime))
	logger.Infof("Average speed: %s/s", helpers.FormatSize(averageSpeed(containerSize, totalTime)))
	logger.Infof("Decrypted file hash (SHA-256): %s", restoredHash)

	return restoredPath, nil
}

// deriveRestoredPath prefers the original file name from the encryption
// sidecar; otherwise the container extension is swapped for .decrypted.
// An unreadable or malformed sidecar only costs the nicer name.
func deriveRestoredPath(containerPath, metadataPath string) string {
	if helpers.FileExists(metadataPath) {
		record, err := LoadEncryptionRecord(metadataPath)
		if err != nil {
			logger.Warnf("Ignoring unreadable encryption sidecar %s: %s", metadataPath, err)
		} else if record.OriginalFilename != "" {
			return filepath.Join(filepath.Dir(containerPath), "decrypted_"+record.OriginalFilename)
		}
	}

	return helpers.ReplaceFileExt(containerPath, DecryptedExt)
}

// streamDecrypt performs the single streaming pass and returns the digest
// embedded in the container header, plus whether the output file was
// created.  Progress is measured over ciphertext bytes consumed; the
// plaintext total is unknown until the end, so the container size minus
// header is the denominator.
func (d *Decryptor) streamDecrypt(
	containerPath, restoredPath string,
	containerSize int64,
	tracker *progress.Tracker,
) (embeddedHash string, outputCreated bool, err error) {
	input, err := os.Open(containerPath)
	if err != nil {
		return "", false, faults.Wrap(faults.IO, "open container", err)
	}
	defer input.Close()

	cr := container.NewReader(input)
	embeddedHash, err = cr.ReadHeader()
	if err != nil {
		return "", false, err
	}

	ciphertextTotal := containerSize - int64(cr.HeaderSize())

	output, err := os.Create(restoredPath)
	if err != nil {
		return "", false, faults.Wrap(faults.IO, "create output", err)
	}

	for {
		chunk, nextErr := cr.Next()
		if nextErr == io.EOF {
			break
		}

		if nextErr != nil {
			output.Close()
			return "", true, nextErr
		}

		plain, openErr := d.codec.DecryptChunk(chunk)
		if openErr != nil {
			output.Close()
			return "", true, fmt.Errorf("failed opening chunk %d: %w", cr.ChunkCount(), openErr)
		}

		if _, writeErr := output.Write(plain); writeErr != nil {
			output.Close()
			return "", true, faults.Wrap(faults.IO, "write output chunk", writeErr)
		}

		tracker.Record(int64(len(chunk)))
		if now := time.Now(); tracker.ShouldReport(now) {
			logProgress(tracker.Snapshot(now, ciphertextTotal))
		}
	}

	if err = output.Sync(); err != nil {
		output.Close()
		return "", true, faults.Wrap(faults.IO, "sync output", err)
	}

	return embeddedHash, true, faults.Wrap(faults.IO, "close output", output.Close())
}

// verifyDigest re-hashes the restored file and compares it against the
// digest carried in the container header.
func (d *Decryptor) verifyDigest(restoredPath, embeddedHash string) (restoredHash string, err error) {
	restoredHash, err = hasher.HashFile(restoredPath)
	if err != nil {
		return "", err
	}

	if restoredHash != embeddedHash {
		return "", faults.New(faults.Integrity, "verify digest",
			"file hash verification failed: the decrypted file may be corrupted")
	}

	logger.Info("File hash verification successful!")
	return restoredHash, nil
}

// finalizeMetadata writes the decryption sidecar durably, then removes the
// now-consumed container and its encryption sidecar.  On failure it only
// removes the sidecar it wrote itself.
func (d *Decryptor) finalizeMetadata(
	containerPath, metadataPath, restoredPath, decryptionMetadataPath, restoredHash string,
	start time.Time,
) error {
	record := &DecryptionRecord{
		OriginalFilename:  filepath.Base(containerPath),
		DecryptedFilename: filepath.Base(restoredPath),
		DecryptedSize:     helpers.FileSize(restoredPath),
		DecryptedHash:     restoredHash,
		DecryptionDate:    time.Now(),
		DecryptionTime:    time.Since(start),
	}

	if err := writeSidecar(decryptionMetadataPath, record.Encode()); err != nil {
		return err
	}

	if err := os.Remove(containerPath); err != nil {
		cleanupArtifacts(decryptionMetadataPath)
		return faults.Wrap(faults.IO, "remove container", err)
	}

	if err := helpers.RemoveIfExists(metadataPath); err != nil {
		cleanupArtifacts(decryptionMetadataPath)
		return faults.Wrap(faults.IO, "remove encryption sidecar", err)
	}

	return nil
}
