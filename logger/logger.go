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

/*
	This is a thin wrapper around logrus.  It gives the rest of the code a
	small leveled surface to call, and keeps the output format in one place.
	Timestamped text lines go to stdout, which suits running in a container.
*/

package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLog()

func newLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return l
}

// SetDebug enables debug-level output.
func SetDebug(enabled bool) {
	if enabled {
		log.SetLevel(logrus.DebugLevel)
		return
	}

	log.SetLevel(logrus.InfoLevel)
}

// SetOutput redirects log output.  Tests use this to silence or capture lines.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Debug(text string) {
	log.Debug(text)
}

func Debugf(format string, a ...any) {
	log.Debugf(format, a...)
}

func Info(text string) {
	log.Info(text)
}

func Infof(format string, a ...any) {
	log.Infof(format, a...)
}

func Warn(text string) {
	log.Warn(text)
}

func Warnf(format string, a ...any) {
	log.Warnf(format, a...)
}

func Error(text string) {
	log.Error(text)
}

func Errorf(format string, a ...any) {
	log.Errorf(format, a...)
}
