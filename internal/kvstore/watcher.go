// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kvstore

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// FILE STORE WATCHER
// =============================================================================

// DefaultDebounce is the delay between the last write to a key and the
// change notification. Editors persist drafts on every keystroke batch,
// so raw fsnotify events arrive in bursts.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes a FileStore directory and reports which keys changed.
// It lets the UI re-hydrate when another process (or another window of
// this one) persists a draft.
type Watcher struct {
	store    *FileStore
	watcher  *fsnotify.Watcher
	onChange func(key string)
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watcher over the store's base directory. onChange
// is invoked from a background goroutine with the decoded key, debounced
// per key.
func NewWatcher(store *FileStore, debounce time.Duration, onChange func(key string)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(store.BaseDir); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:    store,
		watcher:  fw,
		onChange: onChange,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}

	go w.processEvents()
	go w.processPending()

	return w, nil
}

// Close stops the watcher and its goroutines.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents collects raw fsnotify events into the pending set.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Remove == fsnotify.Remove ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				key, ok := keyFromPath(event.Name)
				if !ok {
					continue
				}
				w.mu.Lock()
				w.pending[key] = time.Now()
				w.mu.Unlock()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal: a missed notification only delays re-hydration.
		}
	}
}

// processPending flushes debounced keys to the callback.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var ready []string
			for key, changed := range w.pending {
				if now.Sub(changed) >= w.debounce {
					ready = append(ready, key)
					delete(w.pending, key)
				}
			}
			w.mu.Unlock()

			for _, key := range ready {
				w.onChange(key)
			}
		}
	}
}

// keyFromPath reverses encodeKey for a path inside the store directory.
// Temp files from in-flight atomic writes are ignored.
func keyFromPath(path string) (string, bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".json") {
		return "", false
	}
	return decodeKey(strings.TrimSuffix(name, ".json"))
}

// decodeKey reverses the %XX escaping applied by encodeKey.
func decodeKey(name string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(name); {
		if name[i] == '%' {
			if i+3 > len(name) {
				return "", false
			}
			v, err := strconv.ParseUint(name[i+1:i+3], 16, 8)
			if err != nil {
				return "", false
			}
			b.WriteByte(byte(v))
			i += 3
			continue
		}
		b.WriteByte(name[i])
		i++
	}
	return b.String(), true
}
