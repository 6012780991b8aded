package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// Reload reads path over the defaults and re-applies command-line flags,
// so a reloaded config keeps the same overrides as the initial Load.
func Reload(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("reloading config from %s: %w", path, err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Watcher reloads a config file whenever it changes on disk.
// Only valid configs are published; the newest one wins if the reader
// falls behind.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	changes  chan *Config
	done     chan struct{}
	wg       sync.WaitGroup
	log      *zap.Logger
	debounce time.Duration
}

// Watch starts watching path. The directory is watched rather than the file
// so editors that replace the file on save are still seen.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	return WatchWithDebounce(path, log, DefaultDebounce)
}

// WatchWithDebounce is Watch with an explicit debounce interval.
func WatchWithDebounce(path string, log *zap.Logger, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := formatOf(abs); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		path:     abs,
		fs:       fsw,
		changes:  make(chan *Config, 1),
		done:     make(chan struct{}),
		log:      log.With(zap.String("config", abs)),
		debounce: debounce,
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changes delivers reloaded configs.
func (w *Watcher) Changes() <-chan *Config {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Reload(w.path)
	if err != nil {
		w.log.Warn("ignoring config change", zap.Error(err))
		return
	}
	w.log.Info("config reloaded")

	select {
	case w.changes <- cfg:
	default:
		// Drop the stale pending config in favour of this one.
		select {
		case <-w.changes:
		default:
		}
		w.changes <- cfg
	}
}
