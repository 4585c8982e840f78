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

// Package s3store moves containers and sidecars to and from an S3
// compatible object store.  Transfers happen strictly before or after
// encryption work, never interleaved with chunk processing.
package s3store

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/vaultdump/vaultdump/config"
	"github.com/vaultdump/vaultdump/faults"
	"github.com/vaultdump/vaultdump/helpers"
	"github.com/vaultdump/vaultdump/logger"
)

// DownloadDir is where downloaded containers are staged, relative to the
// working directory.
const DownloadDir = "tmp"

// Store wraps the S3 transfer managers for one bucket.
type Store struct {
	bucket     string
	api        *s3.S3
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
}

// New builds a Store from explicit configuration.  No environment values
// or global clients are consulted.
func New(cfg config.StoreConfig) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, faults.New(faults.Config, "new store", "bucket is required")
	}

	awsConfig := aws.NewConfig().
		WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")).
		WithS3ForcePathStyle(true)

	if cfg.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(cfg.Endpoint)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsConfig = awsConfig.WithRegion(region)

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, faults.Wrap(faults.Config, "new store", err)
	}

	return &Store{
		bucket:     cfg.Bucket,
		api:        s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
	}, nil
}

// buildKey places an object under prefix by upload date, so containers
// sort naturally by day.
func buildKey(prefix, fileName string, now time.Time) string {
	return prefix + now.Format("2006/01/02/") + fileName
}

// Upload sends localPath to the bucket under a dated key below prefix.
func (s *Store) Upload(ctx context.Context, prefix, localPath string) error {
	size := helpers.FileSize(localPath)
	logger.Infof("Starting upload of file: %s with size %d bytes", localPath, size)
	logger.Debugf("Upload prefix: %s", prefix)

	file, err := os.Open(localPath)
	if err != nil {
		return faults.Wrap(faults.IO, "upload", err)
	}
	defer file.Close()

	fileName := filepath.Base(localPath)
	key := buildKey(prefix, fileName, time.Now())
	logger.Infof("Uploading to S3 path: %s", key)

	reporter := newPercentReporter(fileName, size)
	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   reporter.wrapReader(file),
	})
	if err != nil {
		return faults.Wrap(faults.Transfer, "upload", err)
	}

	logger.Infof("Successfully uploaded file to: s3://%s/%s", s.bucket, key)
	return nil
}

// Download fetches remotePath from the bucket into DownloadDir and
// returns the absolute local path.
func (s *Store) Download(ctx context.Context, remotePath string) (string, error) {
	fileName := path.Base(remotePath)
	localPath := filepath.Join(DownloadDir, fileName)
	logger.Infof("Starting download of file: s3://%s/%s", s.bucket, remotePath)

	head, err := s.api.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(remotePath),
	})
	if err != nil {
		return "", faults.Wrap(faults.Transfer, "download", fmt.Errorf("failed heading object: %w", err))
	}

	if err = helpers.ForcePath(DownloadDir); err != nil {
		return "", faults.Wrap(faults.IO, "download", err)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return "", faults.Wrap(faults.IO, "download", err)
	}
	defer file.Close()

	reporter := newPercentReporter(fileName, aws.Int64Value(head.ContentLength))
	_, err = s.downloader.DownloadWithContext(ctx, reporter.wrapWriterAt(file), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(remotePath),
	})
	if err != nil {
		helpers.RemoveIfExists(localPath)
		return "", faults.Wrap(faults.Transfer, "download", err)
	}

	absPath, err := filepath.Abs(localPath)
	if err != nil {
		return "", faults.Wrap(faults.IO, "download", err)
	}

	logger.Infof("Successfully downloaded file to: %s", absPath)
	return absPath, nil
}
