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

// Encryptor transforms a plaintext file into an encrypted container plus a
// sidecar metadata record.  One Encryptor may run many files, but a single
// destination path must not be written by two runs at once.
type Encryptor struct {
	codec vaultcipher.Codec
	*pipelineSettings
}

// NewEncryptor validates the raw key and tuning values and returns an
// encryption pipeline.
func NewEncryptor(key []byte, options ...PipelineOption) (*Encryptor, error) {
	codec, err := vaultcipher.NewCodec(key)
	if err != nil {
		return nil, err
	}

	settings := newPipelineSettings(options...)

	// A sealed chunk must stay within the framing bound a reader accepts,
	// or the resulting container could never be decrypted.
	if settings.chunkSize+codec.Overhead() > container.MaxChunkSize {
		return nil, faults.Newf(faults.Config, "new encryptor",
			"chunk size %d exceeds maximum of %d", settings.chunkSize,
			container.MaxChunkSize-codec.Overhead())
	}

	return &Encryptor{
		codec:            codec,
		pipelineSettings: settings,
	}, nil
}

// EncryptFile encrypts inputPath into a container written alongside it and
// writes the encryption sidecar.  On success the original file is removed.
// On any failure the partially written container and sidecar are removed
// first, so the filesystem is left exactly as before the run.
func (e *Encryptor) EncryptFile(inputPath string) (containerPath string, err error) {
	if !helpers.FileExists(inputPath) {
		return "", faults.Newf(faults.IO, "encrypt", "input file does not exist: %s", inputPath)
	}

	containerPath = inputPath + ContainerExt
	metadataPath := MetadataPath(containerPath)

	originalSize := helpers.FileSize(inputPath)
	logger.Infof("Starting encryption of file: %s", inputPath)
	logger.Infof("File size: %s", helpers.FormatSize(float64(originalSize)))

	// The original is hashed in full before any output exists, so a failure
	// here aborts with nothing to clean up.
	originalHash, err := hasher.HashFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("encrypt stage hash-original failed: %w", err)
	}

	logger.Infof("Original file hash (SHA-256): %s", originalHash)

	start := time.Now()
	tracker := progress.NewTracker(start, e.reportInterval)

	// Only files this run created are removed on failure; a pre-existing
	// file at an output path that was never written survives.
	containerCreated, err := e.streamEncrypt(inputPath, containerPath, originalHash, originalSize, tracker)
	if err != nil {
		if containerCreated {
			cleanupArtifacts(containerPath)
		}
		return "", fmt.Errorf("encrypt stage stream-encrypt failed: %w", err)
	}

	encryptedHash, err := e.finalizeMetadata(inputPath, containerPath, metadataPath, originalHash, originalSize, start)
	if err != nil {
		cleanupArtifacts(containerPath)
		return "", fmt.Errorf("encrypt stage finalize-metadata failed: %w", err)
	}

	totalTime := time.Since(start)
	logger.Info("Encryption completed successfully:")
	logger.Infof("Encrypted file: %s", containerPath)
	logger.Infof("Total time: %s", helpers.FormatDuration(totalTime))
	logger.Infof("Average speed: %s/s", helpers.FormatSize(averageSpeed(originalSize, totalTime)))
	logger.Infof("Encrypted file hash (SHA-256): %s", encryptedHash)

	return containerPath, nil
}

// streamEncrypt performs the single streaming pass: header, then one sealed
// length-prefixed chunk per plaintext block.  It reports whether the
// container file was created.
func (e *Encryptor) streamEncrypt(
	inputPath, containerPath, originalHash string,
	originalSize int64,
	tracker *progress.Tracker,
) (containerCreated bool, err error) {
	input, err := os.Open(inputPath)
	if err != nil {
		return false, faults.Wrap(faults.IO, "open input", err)
	}
	defer input.Close()

	output, err := os.Create(containerPath)
	if err != nil {
		return false, faults.Wrap(faults.IO, "create container", err)
	}

	cw := container.NewWriter(output)
	if err = cw.WriteHeader(originalHash); err != nil {
		output.Close()
		return true, err
	}

	buf := make([]byte, e.chunkSize)
	for {
		bytesRead, readErr := io.ReadFull(input, buf)
		if bytesRead > 0 {
			sealed, encErr := e.codec.EncryptChunk(buf[:bytesRead])
			if encErr != nil {
				output.Close()
				return true, fmt.Errorf("failed sealing chunk %d: %w", cw.ChunkCount()+1, encErr)
			}

			if writeErr := cw.WriteChunk(sealed); writeErr != nil {
				output.Close()
				return true, fmt.Errorf("failed writing chunk %d: %w", cw.ChunkCount()+1, writeErr)
			}

			tracker.Record(int64(bytesRead))
			if now := time.Now(); tracker.ShouldReport(now) {
				logProgress(tracker.Snapshot(now, originalSize))
			}
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}

		if readErr != nil {
			output.Close()
			return true, faults.Wrap(faults.IO, "read plaintext chunk", readErr)
		}
	}

	if err = output.Sync(); err != nil {
		output.Close()
		return true, faults.Wrap(faults.IO, "sync container", err)
	}

	return true, faults.Wrap(faults.IO, "close container", output.Close())
}

// finalizeMetadata hashes the finished container, writes the sidecar
// durably and only then removes the original plaintext file.  On failure
// it only removes the sidecar it wrote itself.
func (e *Encryptor) finalizeMetadata(
	inputPath, containerPath, metadataPath, originalHash string,
	originalSize int64,
	start time.Time,
) (encryptedHash string, err error) {
	encryptedHash, err = hasher.HashFile(containerPath)
	if err != nil {
		return "", err
	}

	record := &EncryptionRecord{
		OriginalFilename: filepath.Base(inputPath),
		OriginalSize:     originalSize,
		OriginalHash:     originalHash,
		EncryptedHash:    encryptedHash,
		EncryptionDate:   time.Now(),
		EncryptionTime:   time.Since(start),
	}

	if err = writeSidecar(metadataPath, record.Encode()); err != nil {
		return "", err
	}

	if err = os.Remove(inputPath); err != nil {
		cleanupArtifacts(metadataPath)
		return "", faults.Wrap(faults.IO, "remove original", err)
	}

	return encryptedHash, nil
}
