// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quillforge/quill-tui/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore persists each key as a file under a base directory.
//
// Values are written atomically (temp file + fsync + rename), so a crash
// mid-write leaves either the old value or the complete new one. Keys are
// sanitized into filenames; two distinct keys never collide because every
// non-filename-safe rune maps to an escape sequence rather than being
// dropped.
type FileStore struct {
	// BaseDir is the directory holding one file per key.
	// Default: ~/.quill/drafts/
	BaseDir string
}

// NewFileStore creates a file store rooted at baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{BaseDir: baseDir}, nil
}

// NewDefaultFileStore creates a file store under ~/.quill/drafts/.
func NewDefaultFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(filepath.Join(homeDir, ".quill", "drafts"))
}

// Get returns the value stored under key.
func (f *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set stores value under key. Drafts are private, so the file and any
// created parent directory are owner-only.
func (f *FileStore) Set(key, value string) error {
	if err := util.AtomicWriteFileWithDir(f.Path(key), []byte(value), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value under key. Removing a missing key is a no-op.
func (f *FileStore) Remove(key string) error {
	err := os.Remove(f.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// Path returns the file path backing key.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.BaseDir, encodeKey(key)+".json")
}

// encodeKey maps an arbitrary key to a filename-safe form. Alphanumerics,
// '-' and '_' pass through; everything else becomes %XX. The mapping is
// injective, so distinct keys get distinct files.
func encodeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			for _, by := range []byte(string(r)) {
				fmt.Fprintf(&b, "%%%02X", by)
			}
		}
	}
	return b.String()
}
