// Package filestore implements the scan result store on a local directory tree.
package filestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/provcache/internal/adapters/record"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const tempPattern = ".tmp-*"

// Store implements ports.ScanResultStore with one file per record.
//
// Records of an identifier live in <root>/<record.Path(id)>/. Each append
// writes a temporary file and renames it to a fresh record key, so concurrent
// appends never overwrite each other and readers never see partial records.
type Store struct {
	root   string
	logger ports.Logger
}

// New creates a Store rooted at root. The directory is created lazily.
func New(root string, logger ports.Logger) *Store {
	return &Store{
		root:   filepath.Clean(root),
		logger: logger,
	}
}

// Root returns the directory the store writes to.
func (s *Store) Root() string {
	return s.root
}

// Append implements ports.ScanResultStore.
func (s *Store) Append(ctx context.Context, id domain.Identifier, result domain.ScanResult) error {
	if err := ctx.Err(); err != nil {
		return domain.NewUnavailableError("append", err)
	}

	data, err := record.Encode(result)
	if err != nil {
		return err
	}

	dir := s.dir(id)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.NewUnavailableError("append", zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()))
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return domain.NewUnavailableError("append", zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()))
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return domain.NewUnavailableError("append", zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()))
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return domain.NewUnavailableError("append", zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()))
	}

	target := filepath.Join(dir, record.NewKey())
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return domain.NewUnavailableError("append", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", target))
	}

	return nil
}

// LoadAll implements ports.ScanResultStore.
func (s *Store) LoadAll(ctx context.Context, id domain.Identifier) ([]domain.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewUnavailableError("load_all", err)
	}

	dir := s.dir(id)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.ScanResult{}, nil
		}
		return nil, domain.NewUnavailableError("load_all", zerr.Wrap(err, domain.ErrStoreReadFailed.Error()))
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.Type().IsRegular() && record.IsKey(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)

	entries := make([]record.Entry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewUnavailableError("load_all", err)
		}

		path := filepath.Join(dir, name)
		//nolint:gosec // Path is constructed from the store root and an escaped identifier
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, domain.NewUnavailableError("load_all", zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path))
		}
		entries = append(entries, record.Entry{Key: path, Data: data})
	}

	return record.DecodeAll(s.logger, entries), nil
}

func (s *Store) dir(id domain.Identifier) string {
	return filepath.Join(s.root, filepath.FromSlash(record.Path(id)))
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
