// Package pattern manages the library of pattern tile images, loaded
// from a directory and refreshed when files change on disk.
package pattern

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Library holds decoded pattern tiles keyed by file name.
type Library struct {
	mu    sync.RWMutex
	dir   string
	tiles map[string]image.Image

	watcher  *fsnotify.Watcher
	onChange func()
}

// NewLibrary creates a library rooted at dir. Call Load to read the
// tiles and Watch to keep them fresh.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:   dir,
		tiles: make(map[string]image.Image),
	}
}

// OnChange sets the callback invoked after the library reloads. The
// callback runs on the watcher goroutine.
func (l *Library) OnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Load reads every decodable image in the library directory. A missing
// directory is not an error: the library is just empty.
func (l *Library) Load() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	tiles := make(map[string]image.Image)
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		path := filepath.Join(l.dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Printf("pattern library: open %s: %v", path, err)
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			log.Printf("pattern library: decode %s: %v", path, err)
			continue
		}
		tiles[e.Name()] = img
	}

	l.mu.Lock()
	l.tiles = tiles
	l.mu.Unlock()
	return nil
}

// Watch starts a filesystem watcher on the library directory and
// reloads on changes. Stop with Close.
func (l *Library) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return err
	}
	l.watcher = watcher

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := l.Load(); err != nil {
					log.Printf("pattern library: reload: %v", err)
					continue
				}
				l.mu.RLock()
				fn := l.onChange
				l.mu.RUnlock()
				if fn != nil {
					fn()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("pattern library: watcher: %v", err)
			}
		}
	}()
	return nil
}

// Close stops the watcher, if running.
func (l *Library) Close() {
	if l.watcher != nil {
		l.watcher.Close()
		l.watcher = nil
	}
}

// Resolve returns the decoded tile for a name, or nil.
func (l *Library) Resolve(name string) image.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tiles[name]
}

// Names returns the sorted tile names.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.tiles))
	for name := range l.tiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
