package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sales-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

const s3Scheme = "s3://"

// Loader resolves snapshot locators and reads the archives behind them.
type Loader struct {
	reader Reader
	client storage.Client

	confined bool
	root     string
}

// NewLoader creates a loader. client may be nil when only local paths are used.
func NewLoader(reader Reader, client storage.Client) *Loader {
	return &Loader{reader: reader, client: client}
}

// NewConfinedLoader creates a loader for untrusted locators. Local locators
// are relative paths resolved inside root; with an empty root only s3://
// locators are accepted.
func NewConfinedLoader(reader Reader, client storage.Client, root string) *Loader {
	return &Loader{reader: reader, client: client, confined: true, root: root}
}

// Load reads the snapshot at locator. Every failure is returned as *InputError.
func (l *Loader) Load(ctx context.Context, locator string) ([]RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &InputError{Locator: locator, Err: err}
	}

	var (
		records []RawRecord
		err     error
	)
	if strings.HasPrefix(locator, s3Scheme) {
		records, err = l.loadObject(ctx, locator)
	} else {
		records, err = l.loadFile(locator)
	}
	if err != nil {
		return nil, &InputError{Locator: locator, Err: err}
	}
	return records, nil
}

func (l *Loader) loadFile(path string) ([]RawRecord, error) {
	f, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	return l.reader.ReadArchive(f, info.Size())
}

func (l *Loader) open(path string) (*os.File, error) {
	if !l.confined {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open archive: %w", err)
		}
		return f, nil
	}

	if l.root == "" {
		return nil, fmt.Errorf("%w: local snapshots are disabled", ErrLocatorNotAllowed)
	}
	if !filepath.IsLocal(path) {
		return nil, fmt.Errorf("%w: %q is outside the snapshot directory", ErrLocatorNotAllowed, path)
	}
	// OpenInRoot also refuses symlinks leading out of root
	f, err := os.OpenInRoot(l.root, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return f, nil
}

func (l *Loader) loadObject(ctx context.Context, locator string) ([]RawRecord, error) {
	if l.client == nil {
		return nil, errors.New("storage client not configured")
	}

	bucket, object, err := ParseObjectLocator(locator)
	if err != nil {
		return nil, err
	}

	rc, err := l.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer rc.Close()

	// zip needs random access; archives are downloaded whole.
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return l.reader.ReadArchive(bytes.NewReader(data), int64(len(data)))
}

// ParseObjectLocator splits s3://bucket/key into bucket and object name.
func ParseObjectLocator(locator string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(locator, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("locator %q is not an s3:// locator", locator)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("locator %q must be s3://bucket/key", locator)
	}
	return bucket, object, nil
}
