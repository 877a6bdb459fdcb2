// Package store persists active bookings in a single append-structured
// file, one JSON object per line. Growth is by append; removal rewrites the
// survivors through a temporary file that is renamed over the original.
//
// The store assumes exactly one process uses the file at a time.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kingrea/staymitar/internal/hotel"
)

// maxLineSize bounds a single encoded booking.
const maxLineSize = 64 * 1024

// Store manages the booking record file.
type Store struct {
	path   string
	sync   bool
	rename func(oldpath, newpath string) error
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithoutSync skips fsync after writes. Tests use it to keep temp dirs fast.
func WithoutSync() StoreOption {
	return func(s *Store) {
		s.sync = false
	}
}

// New builds a store backed by path. The file is created lazily on first append.
func New(path string, opts ...StoreOption) *Store {
	s := &Store{path: path, sync: true, rename: os.Rename}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing this store.
func (s *Store) Path() string {
	return s.path
}

// Append adds one booking to the end of the file.
func (s *Store) Append(b hotel.Booking) error {
	line, err := encode(b)
	if err != nil {
		return s.fail("encode", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.fail("append", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return s.fail("append", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return s.fail("append", err)
	}
	if s.sync {
		if err := f.Sync(); err != nil {
			f.Close()
			return s.fail("append", err)
		}
	}
	if err := f.Close(); err != nil {
		return s.fail("append", err)
	}
	return nil
}

// ScanAll returns every booking in append order. A missing file is an empty store.
func (s *Store) ScanAll() ([]hotel.Booking, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []hotel.Booking{}, nil
		}
		return nil, s.fail("scan", err)
	}
	defer f.Close()

	bookings := []hotel.Booking{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var b hotel.Booking
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, s.fail("scan", fmt.Errorf("line %d: %w", lineNo, err))
		}
		bookings = append(bookings, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, s.fail("scan", err)
	}
	return bookings, nil
}

// RemoveWhere rewrites the store without the bookings matching pred and
// returns the removed ones. Survivors keep their relative order. The rewrite
// is staged in a temporary file so a failure leaves the original untouched.
func (s *Store) RemoveWhere(pred func(hotel.Booking) bool) ([]hotel.Booking, error) {
	all, err := s.ScanAll()
	if err != nil {
		return nil, err
	}
	removed := []hotel.Booking{}
	keep := make([]hotel.Booking, 0, len(all))
	for _, b := range all {
		if pred(b) {
			removed = append(removed, b)
		} else {
			keep = append(keep, b)
		}
	}
	if len(removed) == 0 {
		return removed, nil
	}
	if err := s.rewrite(keep); err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store) rewrite(bookings []hotel.Booking) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return s.fail("rewrite", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s.fail("rewrite", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, b := range bookings {
		line, encErr := encode(b)
		if encErr != nil {
			return s.fail("encode", encErr)
		}
		if _, werr := w.Write(line); werr != nil {
			return s.fail("rewrite", werr)
		}
	}
	if err = w.Flush(); err != nil {
		return s.fail("rewrite", err)
	}
	if s.sync {
		if err = tmp.Sync(); err != nil {
			return s.fail("rewrite", err)
		}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return s.fail("rewrite", err)
	}
	if err = tmp.Close(); err != nil {
		return s.fail("rewrite", err)
	}
	if err = s.rename(tmpPath, s.path); err != nil {
		return s.fail("rewrite", err)
	}
	return nil
}

func (s *Store) fail(op string, err error) error {
	return &hotel.StorageError{Op: op, Path: s.path, Err: err}
}

func encode(b hotel.Booking) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
