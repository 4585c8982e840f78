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

// Package progress accumulates processed-byte counts for one pipeline run
// and derives throughput and estimated time remaining.  It performs no I/O;
// a run feeds it deltas and asks when to emit a status line.
package progress

import "time"

// DefaultReportInterval is the minimum spacing between status reports.
const DefaultReportInterval = 5 * time.Second

// Snapshot is an ephemeral, derived view of one in-progress run.  It is
// recomputed on request and never persisted.
type Snapshot struct {
	Processed  int64
	Total      int64
	Elapsed    time.Duration
	Throughput float64 // bytes per second
	Remaining  time.Duration
	Percent    float64
}

// Tracker tracks cumulative bytes processed against a run's start time.
type Tracker struct {
	start      time.Time
	lastReport time.Time
	interval   time.Duration
	processed  int64
}

// NewTracker starts tracking at the given start time.  A non-positive
// interval falls back to DefaultReportInterval.  The first report is
// measured from the start time.
func NewTracker(start time.Time, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultReportInterval
	}

	return &Tracker{
		start:      start,
		lastReport: start,
		interval:   interval,
	}
}

// Record adds a processed-byte delta.
func (t *Tracker) Record(delta int64) {
	t.processed += delta
}

// Processed returns the cumulative processed bytes.
func (t *Tracker) Processed() int64 {
	return t.processed
}

// ShouldReport reports true at most once per interval, measured from the
// previous report.
func (t *Tracker) ShouldReport(now time.Time) bool {
	if now.Sub(t.lastReport) < t.interval {
		return false
	}

	t.lastReport = now
	return true
}

// Snapshot derives throughput and remaining time against totalSize.  When
// throughput is zero, the remaining time is zero rather than dividing by
// zero at the start of a run.
func (t *Tracker) Snapshot(now time.Time, totalSize int64) Snapshot {
	s := Snapshot{
		Processed: t.processed,
		Total:     totalSize,
		Elapsed:   now.Sub(t.start),
	}

	if s.Elapsed > 0 {
		s.Throughput = float64(t.processed) / s.Elapsed.Seconds()
	}

	if s.Throughput > 0 {
		remaining := float64(totalSize-t.processed) / s.Throughput
		if remaining > 0 {
			s.Remaining = time.Duration(remaining * float64(time.Second))
		}
	}

	if totalSize > 0 {
		s.Percent = float64(t.processed) / float64(totalSize) * 100
	}

	return s
}
