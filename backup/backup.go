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

// Package backup sequences the full flows: dump -> encrypt -> upload for a
// backup, and download -> decrypt -> restore for a restore.  Runners are
// built from an explicit configuration; nothing ambient is consulted.
package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vaultdump/vaultdump/cipher"
	"github.com/vaultdump/vaultdump/config"
	"github.com/vaultdump/vaultdump/faults"
	"github.com/vaultdump/vaultdump/helpers"
	"github.com/vaultdump/vaultdump/logger"
	"github.com/vaultdump/vaultdump/pgtools"
	"github.com/vaultdump/vaultdump/s3store"
	"github.com/vaultdump/vaultdump/vaultfiles"
)

// RemotePrefixPattern is the object store layout for one instance.
const RemotePrefixPattern = "postgres_backup/%s/"

// Runner executes one full backup: dump the database, encrypt the dump,
// upload the container and its sidecar, then remove the local staging
// files.
type Runner struct {
	cfg   *config.Config
	key   []byte
	store *s3store.Store
}

// NewRunner validates the configuration and key before any I/O.
func NewRunner(cfg *config.Config) (*Runner, error) {
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

	return &Runner{
		cfg:   cfg,
		key:   key,
		store: store,
	}, nil
}

// Execute runs the backup flow.  Local staging files are removed in every
// outcome; a failure in any step surfaces as a backup fault naming it.
func (r *Runner) Execute(ctx context.Context, verbose bool) (err error) {
	dumpPath := r.dumpPath()
	var containerPath string

	defer func() {
		cleanupLocal(dumpPath, containerPath)
		if containerPath != "" {
			cleanupLocal(vaultfiles.MetadataPath(containerPath))
		}
	}()

	if err = pgtools.DumpDatabase(ctx, r.cfg.Database, dumpPath, verbose); err != nil {
		return faults.Wrap(faults.Backup, "backup run", err)
	}

	encryptor, err := vaultfiles.NewEncryptor(r.key)
	if err != nil {
		return faults.Wrap(faults.Backup, "backup run", err)
	}

	containerPath, err = encryptor.EncryptFile(dumpPath)
	if err != nil {
		return faults.Wrap(faults.Backup, "backup run", err)
	}

	prefix := RemotePrefix(r.cfg.Instance)
	if err = r.store.Upload(ctx, prefix, containerPath); err != nil {
		return faults.Wrap(faults.Backup, "backup run", err)
	}

	if err = r.store.Upload(ctx, prefix, vaultfiles.MetadataPath(containerPath)); err != nil {
		return faults.Wrap(faults.Backup, "backup run", err)
	}

	logger.Infof("Backup of database '%s' completed", r.cfg.Database.Name)
	return nil
}

func (r *Runner) dumpPath() string {
	return filepath.Join(r.cfg.WorkDir, DumpFileName(r.cfg.Database.Name))
}

// DumpFileName names the staged plaintext dump for a database.
func DumpFileName(database string) string {
	return fmt.Sprintf("backup_%s.sql", database)
}

// RemotePrefix returns the store prefix for an instance.
func RemotePrefix(instance string) string {
	return fmt.Sprintf(RemotePrefixPattern, instance)
}

// RemoteContainerPath returns the full object key of the container a
// backup of the given database uploaded on dumpDate.
func RemoteContainerPath(instance, database string, dumpDate time.Time) string {
	return RemotePrefix(instance) + dumpDate.Format("2006/01/02/") +
		DumpFileName(database) + vaultfiles.ContainerExt
}

func cleanupLocal(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}

		if err := helpers.RemoveIfExists(path); err != nil {
			logger.Warnf("Failed removing staging file %s: %s", path, err)
		}
	}
}
