package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"sales-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func archiveBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, "0122_CUR.csv", []string{"book"}, [][]string{{"BOOK-000"}, {"BOOK-001"}}))
	return buf.Bytes()
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.zip")
	require.NoError(t, os.WriteFile(path, archiveBytes(t), 0o600))

	loader := NewLoader(Reader{EntryName: "0122_CUR.csv"}, nil)

	t.Run("Readable", func(t *testing.T) {
		records, err := loader.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := loader.Load(context.Background(), filepath.Join(dir, "absent.zip"))
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Contains(t, inputErr.Locator, "absent.zip")
	})

	t.Run("WrongEntry", func(t *testing.T) {
		_, err := NewLoader(Reader{EntryName: "other.csv"}, nil).Load(context.Background(), path)
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader.Load(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConfinedLoader(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "2024"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2024", "snapshot.zip"), archiveBytes(t), 0o600))

	outside := filepath.Join(t.TempDir(), "outside.zip")
	require.NoError(t, os.WriteFile(outside, archiveBytes(t), 0o600))

	reader := Reader{EntryName: "0122_CUR.csv"}
	ctx := context.Background()

	t.Run("RelativeInsideRoot", func(t *testing.T) {
		records, err := NewConfinedLoader(reader, nil, root).Load(ctx, "2024/snapshot.zip")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	for _, locator := range []string{outside, "../outside.zip", "2024/../../outside.zip", ""} {
		t.Run("Rejects "+locator, func(t *testing.T) {
			_, err := NewConfinedLoader(reader, nil, root).Load(ctx, locator)
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.ErrorIs(t, err, ErrLocatorNotAllowed)
		})
	}

	t.Run("SymlinkOutOfRoot", func(t *testing.T) {
		if err := os.Symlink(outside, filepath.Join(root, "link.zip")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		_, err := NewConfinedLoader(reader, nil, root).Load(ctx, "link.zip")
		assert.Error(t, err)
	})

	t.Run("NoRootDisablesLocalPaths", func(t *testing.T) {
		_, err := NewConfinedLoader(reader, nil, "").Load(ctx, outside)
		assert.ErrorIs(t, err, ErrLocatorNotAllowed)
	})

	t.Run("ObjectsStillAllowed", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "snapshots", "a.zip", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(archiveBytes(t))), nil)

		records, err := NewConfinedLoader(reader, client, "").Load(ctx, "s3://snapshots/a.zip")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestLoader_LoadObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Readable", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "snapshots", "2024/0122_CUR.zip", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(archiveBytes(t))), nil)

		records, err := NewLoader(Reader{EntryName: "0122_CUR.csv"}, client).Load(ctx, "s3://snapshots/2024/0122_CUR.zip")
		require.NoError(t, err)
		assert.Len(t, records, 2)
		client.AssertExpectations(t)
	})

	t.Run("GetObjectFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "snapshots", "x.zip", mock.Anything).Return(nil, errors.New("no such key"))

		_, err := NewLoader(Reader{}, client).Load(ctx, "s3://snapshots/x.zip")
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Contains(t, err.Error(), "no such key")
	})

	t.Run("NoClient", func(t *testing.T) {
		_, err := NewLoader(Reader{}, nil).Load(ctx, "s3://snapshots/x.zip")
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr)
	})
}

func TestParseObjectLocator(t *testing.T) {
	tests := []struct {
		locator string
		bucket  string
		object  string
		wantErr bool
	}{
		{"s3://snapshots/a.zip", "snapshots", "a.zip", false},
		{"s3://snapshots/nested/a.zip", "snapshots", "nested/a.zip", false},
		{"s3://snapshots/", "", "", true},
		{"s3:///a.zip", "", "", true},
		{"/tmp/a.zip", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			bucket, object, err := ParseObjectLocator(tt.locator)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.object, object)
		})
	}
}
