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

// Package pgtools wraps the pg_dump and psql client tools.  The password
// travels in the child process environment only, never on the command
// line, and never in log output.
package pgtools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vaultdump/vaultdump/config"
	"github.com/vaultdump/vaultdump/faults"
	"github.com/vaultdump/vaultdump/logger"
)

const (
	dumpTool    = "pg_dump"
	restoreTool = "psql"
)

// DumpDatabase produces a plain SQL dump of the configured database into
// destFile.  A non-zero exit from pg_dump is a backup fault.
func DumpDatabase(ctx context.Context, db config.DatabaseConfig, destFile string, verbose bool) error {
	logger.Infof("Starting backup of database '%s' to %s", db.Name, destFile)
	logger.Debugf("Connection details - Host: %s, Port: %s, User: %s", db.Host, db.Port, db.User)

	args := buildDumpArgs(db, destFile, verbose)
	logger.Debugf("Executing command: %s %s", dumpTool, strings.Join(args, " "))

	if err := runTool(ctx, db, dumpTool, args); err != nil {
		return faults.Wrap(faults.Backup, "dump database", err)
	}

	logger.Infof("Backup completed successfully to %s", destFile)
	return nil
}

// RestoreDatabase applies a plain SQL dump file to the configured
// database, creating the database first when it does not exist.  A
// non-zero exit from psql is a restore fault.
func RestoreDatabase(ctx context.Context, db config.DatabaseConfig, dumpFile string, verbose bool) error {
	logger.Infof("Starting restore of database '%s' from %s", db.Name, dumpFile)
	logger.Debugf("Connection details - Host: %s, Port: %s, User: %s", db.Host, db.Port, db.User)

	// Create the target database up front.  This fails when it already
	// exists, which is fine; the restore itself decides success.
	createArgs := buildCreateDatabaseArgs(db)
	if err := runTool(ctx, db, restoreTool, createArgs); err != nil {
		logger.Debugf("Create database step reported: %s", err)
	}

	args := buildRestoreArgs(db, dumpFile, verbose)
	logger.Debugf("Executing command: %s %s", restoreTool, strings.Join(args, " "))

	if err := runTool(ctx, db, restoreTool, args); err != nil {
		return faults.Wrap(faults.Restore, "restore database", err)
	}

	logger.Infof("Restore completed successfully from %s", dumpFile)
	return nil
}

func buildDumpArgs(db config.DatabaseConfig, destFile string, verbose bool) []string {
	args := []string{
		"-U", db.User,
		"-h", db.Host,
		"-p", db.Port,
		"-d", db.Name,
		"-w",
		"-c",
		"-f", destFile,
	}

	if verbose {
		args = append(args, "-v")
	}

	return args
}

func buildCreateDatabaseArgs(db config.DatabaseConfig) []string {
	return []string{
		"-U", db.User,
		"-h", db.Host,
		"-p", db.Port,
		"-c", fmt.Sprintf("CREATE DATABASE %s;", db.Name),
	}
}

func buildRestoreArgs(db config.DatabaseConfig, dumpFile string, verbose bool) []string {
	args := []string{
		"-U", db.User,
		"-h", db.Host,
		"-p", db.Port,
		"-d", db.Name,
	}

	if verbose {
		args = append(args, "-v", "ON_ERROR_STOP=0", "-f", dumpFile)
	} else {
		args = append(args, "-f", dumpFile, "-q")
	}

	return args
}

func runTool(ctx context.Context, db config.DatabaseConfig, tool string, args []string) error {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+db.Password)

	stderr := bytes.NewBuffer(nil)
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w\n%s", tool, err, stderr.String())
	}

	return nil
}
