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

package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotThroughputAndRemaining(t *testing.T) {
	start := time.Now()
	tracker := NewTracker(start, 0)

	tracker.Record(50)
	s := tracker.Snapshot(start.Add(10*time.Second), 100)

	assert.Equal(t, int64(50), s.Processed)
	assert.InDelta(t, 5.0, s.Throughput, 0.001)
	assert.InDelta(t, 10.0, s.Remaining.Seconds(), 0.001)
	assert.InDelta(t, 50.0, s.Percent, 0.001)
}

func TestSnapshotZeroThroughputHasZeroRemaining(t *testing.T) {
	start := time.Now()
	tracker := NewTracker(start, 0)

	s := tracker.Snapshot(start.Add(time.Second), 100)
	assert.Zero(t, s.Throughput)
	assert.Zero(t, s.Remaining)
}

func TestSnapshotZeroElapsed(t *testing.T) {
	start := time.Now()
	tracker := NewTracker(start, 0)
	tracker.Record(10)

	s := tracker.Snapshot(start, 100)
	assert.Zero(t, s.Throughput)
	assert.Zero(t, s.Remaining)
}

func TestShouldReportGatesOnInterval(t *testing.T) {
	start := time.Now()
	tracker := NewTracker(start, 5*time.Second)

	assert.False(t, tracker.ShouldReport(start.Add(time.Second)))
	assert.False(t, tracker.ShouldReport(start.Add(4*time.Second)))
	assert.True(t, tracker.ShouldReport(start.Add(5*time.Second)))

	// Next report measures from the previous one, not the run start.
	assert.False(t, tracker.ShouldReport(start.Add(7*time.Second)))
	assert.True(t, tracker.ShouldReport(start.Add(10*time.Second)))
}

func TestProcessedIsMonotonic(t *testing.T) {
	tracker := NewTracker(time.Now(), 0)

	var last int64
	for i := 0; i < 100; i++ {
		tracker.Record(int64(i % 7))
		assert.GreaterOrEqual(t, tracker.Processed(), last)
		last = tracker.Processed()
	}
}

func TestSnapshotRemainingNeverNegative(t *testing.T) {
	start := time.Now()
	tracker := NewTracker(start, 0)

	// Processed can legitimately pass the estimated total when ciphertext
	// expansion is in play; the estimate clamps instead of going negative.
	tracker.Record(150)
	s := tracker.Snapshot(start.Add(time.Second), 100)
	assert.GreaterOrEqual(t, s.Remaining, time.Duration(0))
}
