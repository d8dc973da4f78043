package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// ErrObjectExists reports that the destination object was already present.
var ErrObjectExists = errors.New("gcs: object already exists")

// Publisher mirrors rendered documents into a Cloud Storage bucket.
type Publisher struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewPublisher dials Cloud Storage with application default credentials.
func NewPublisher(ctx context.Context, bucket, prefix string) (*Publisher, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("gcs: bucket required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: new client: %w", err)
	}
	return &Publisher{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

// Close releases the storage client.
func (p *Publisher) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Bucket returns the configured bucket name.
func (p *Publisher) Bucket() string { return p.bucket }

// Check verifies the bucket exists and is visible to the credentials.
func (p *Publisher) Check(ctx context.Context) error {
	if _, err := p.client.Bucket(p.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("gcs: bucket %s: %w", p.bucket, err)
	}
	return nil
}

// ObjectName returns the object key used for a local document path.
func ObjectName(prefix, queryID, localPath string) string {
	name := filepath.Base(localPath)
	if queryID != "" {
		name = path.Join(queryID, name)
	}
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		name = path.Join(prefix, name)
	}
	return name
}

// Publish uploads localPath under <prefix>/<queryID>/<basename> and returns the
// gs:// URI. Existing objects are never overwritten.
func (p *Publisher) Publish(ctx context.Context, queryID, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("gcs: open document: %w", err)
	}
	defer file.Close()

	object := ObjectName(p.prefix, queryID, localPath)
	uri := fmt.Sprintf("gs://%s/%s", p.bucket, object)
	if err := p.upload(ctx, object, file); err != nil {
		if isPreconditionFailed(err) {
			return uri, ErrObjectExists
		}
		return "", fmt.Errorf("gcs: upload %s: %w", uri, err)
	}
	return uri, nil
}

// upload streams src into a new object. A failed copy cancels the writer's
// context so no partial object is finalized.
func (p *Publisher) upload(ctx context.Context, object string, src io.Reader) error {
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := p.client.Bucket(p.bucket).Object(object).If(storage.Conditions{DoesNotExist: true}).NewWriter(writeCtx)
	if _, err := io.Copy(writer, src); err != nil {
		cancel()
		_ = writer.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	return nil
}

func isPreconditionFailed(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == 412
}
