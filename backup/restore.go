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

package backup

import (
	"context"
	"time"

	"github.com/vaultdump/vaultdump/cipher"
	"github.com/vaultdump/vaultdump/config"
	"github.com/vaultdump/vaultdump/faults"
	"github.com/vaultdump/vaultdump/logger"
	"github.com/vaultdump/vaultdump/pgtools"
	"github.com/vaultdump/vaultdump/s3store"
	"github.com/vaultdump/vaultdump/vaultfiles"
)

// Restorer executes one full restore: download the container for a dump
// date, decrypt it, then load the result with psql.
type Restorer struct {
	cfg   *config.Config
	key   []byte
	store *s3store.Store
}

// NewRestorer validates the configuration and key before any I/O.
func NewRestorer(cfg *config.Config) (*Restorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, err := cipher.ParseKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	store, err := s3store.New(cfg.Store)
	if err != nil {
		return nil, err
	}

	return &Restorer{
		cfg:   cfg,
		key:   key,
		store: store,
	}, nil
}

// Execute runs the restore flow for the backup taken on dumpDate.  The
// sidecar is fetched alongside the container when present, so the restored
// file carries the name recorded at encryption time; a missing sidecar is
// tolerated.  Staged files are removed in every outcome.
func (r *Restorer) Execute(ctx context.Context, dumpDate time.Time, verbose bool) (err error) {
	remoteContainer := RemoteContainerPath(r.cfg.Instance, r.cfg.Database.Name, dumpDate)

	containerPath, err := r.store.Download(ctx, remoteContainer)
	if err != nil {
		return faults.Wrap(faults.Restore, "restore run", err)
	}

	var restoredPath string
	defer func() {
		cleanupLocal(containerPath, vaultfiles.MetadataPath(containerPath), restoredPath)
	}()

	r.fetchSidecar(ctx, remoteContainer)

	decryptor, err := vaultfiles.NewDecryptor(r.key)
	if err != nil {
		return faults.Wrap(faults.Restore, "restore run", err)
	}

	restoredPath, err = decryptor.DecryptFile(containerPath)
	if err != nil {
		return faults.Wrap(faults.Restore, "restore run", err)
	}

	defer func() {
		cleanupLocal(vaultfiles.DecryptionMetadataPath(restoredPath))
	}()

	if err = pgtools.RestoreDatabase(ctx, r.cfg.Database, restoredPath, verbose); err != nil {
		return faults.Wrap(faults.Restore, "restore run", err)
	}

	logger.Infof("Restore of database '%s' completed", r.cfg.Database.Name)
	return nil
}

// fetchSidecar downloads the encryption sidecar next to the container.  A
// download failure is only logged; decryption falls back to a derived
// output name when the sidecar is absent.
func (r *Restorer) fetchSidecar(ctx context.Context, remoteContainer string) {
	remoteSidecar := vaultfiles.MetadataPath(remoteContainer)
	if _, err := r.store.Download(ctx, remoteSidecar); err != nil {
		logger.Warnf("Metadata file not available, continuing without it: %s", err)
	}
}
