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

// Package vaultfiles implements the encryption and decryption pipelines
// over the container format: a plaintext file becomes a self-describing
// encrypted container plus a sidecar metadata record, and back again with
// end-to-end digest verification.  Files are processed front-to-back in
// bounded chunks, so memory use does not grow with file size.
package vaultfiles

import (
	"time"

	"github.com/vaultdump/vaultdump/helpers"
	"github.com/vaultdump/vaultdump/logger"
	"github.com/vaultdump/vaultdump/progress"
)

// DEFAULT_CHUNK_SIZE is the plaintext bytes encrypted per chunk.
const DEFAULT_CHUNK_SIZE = 64 * 1024 * 1024

type pipelineSettings struct {
	chunkSize      int
	reportInterval time.Duration
}

func newPipelineSettings(options ...PipelineOption) *pipelineSettings {
	settings := &pipelineSettings{
		chunkSize:      DEFAULT_CHUNK_SIZE,
		reportInterval: progress.DefaultReportInterval,
	}

	for _, option := range options {
		option(settings)
	}

	return settings
}

// PipelineOption adjusts pipeline tuning values.
type PipelineOption func(*pipelineSettings)

// WithChunkSize overrides the plaintext chunk size.  Values below one are
// ignored.
func WithChunkSize(size int) PipelineOption {
	return func(settings *pipelineSettings) {
		if size > 0 {
			settings.chunkSize = size
		}
	}
}

// WithReportInterval overrides the progress report spacing.
func WithReportInterval(interval time.Duration) PipelineOption {
	return func(settings *pipelineSettings) {
		if interval > 0 {
			settings.reportInterval = interval
		}
	}
}

func logProgress(s progress.Snapshot) {
	logger.Infof("Progress: %.2f%% | Speed: %s/s | Processed: %s | Remaining time: %s",
		s.Percent,
		helpers.FormatSize(s.Throughput),
		helpers.FormatSize(float64(s.Processed)),
		helpers.FormatDuration(s.Remaining))
}

// cleanupArtifacts removes partially written run outputs.  Missing files
// are fine: a run may fail before creating them.
func cleanupArtifacts(paths ...string) {
	for _, path := range paths {
		if err := helpers.RemoveIfExists(path); err != nil {
			logger.Warnf("Failed removing partial artifact %s: %s", path, err)
		}
	}
}

func averageSpeed(totalBytes int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}

	return float64(totalBytes) / elapsed.Seconds()
}
