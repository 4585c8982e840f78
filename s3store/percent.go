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

package s3store

import (
	"io"
	"sync"

	"github.com/vaultdump/vaultdump/logger"
)

// percentReporter logs transfer progress at 10 percent steps.  The
// transfer managers may call it from several goroutines, so the counter
// is guarded.
type percentReporter struct {
	mu            sync.Mutex
	fileName      string
	size          int64
	seenSoFar     int64
	lastLoggedPct int
}

func newPercentReporter(fileName string, size int64) *percentReporter {
	return &percentReporter{
		fileName: fileName,
		size:     size,
	}
}

func (pr *percentReporter) add(bytesTransferred int64) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.seenSoFar += bytesTransferred
	if pr.size <= 0 {
		return
	}

	currentPct := int(float64(pr.seenSoFar) / float64(pr.size) * 100)
	if currentPct%10 == 0 && currentPct != pr.lastLoggedPct {
		logger.Infof("Transfer progress for %s: %d%% (%d/%d bytes)",
			pr.fileName, currentPct, pr.seenSoFar, pr.size)
		pr.lastLoggedPct = currentPct
	}
}

func (pr *percentReporter) wrapReader(r io.Reader) io.Reader {
	return &reportingReader{r: r, reporter: pr}
}

func (pr *percentReporter) wrapWriterAt(w io.WriterAt) io.WriterAt {
	return &reportingWriterAt{w: w, reporter: pr}
}

type reportingReader struct {
	r        io.Reader
	reporter *percentReporter
}

func (rr *reportingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if n > 0 {
		rr.reporter.add(int64(n))
	}

	return n, err
}

type reportingWriterAt struct {
	w        io.WriterAt
	reporter *percentReporter
}

func (rw *reportingWriterAt) WriteAt(p []byte, off int64) (int, error) {
	n, err := rw.w.WriteAt(p, off)
	if n > 0 {
		rw.reporter.add(int64(n))
	}

	return n, err
}
