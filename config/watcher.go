package config

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/najoast/actorkit/core"
)

// ChangeFunc is called with the freshly reloaded document after a watched
// config file changes on disk.
type ChangeFunc func(Document)

// Watcher provides optional hot-reload of a file-backed Document. It is
// never on the core startup path (spec.md §4.6 describes a one-shot
// load); a caller that wants live reload wires it to
// actor.System.ReloadConfig explicitly. Grounded on the teacher's
// config.Watcher (config/watcher.go), trimmed to this package's single
// Document shape.
type Watcher struct {
	path   string
	loader *Loader
	log    core.Logger

	fs *fsnotify.Watcher

	mu  sync.RWMutex
	doc Document

	cbMu sync.RWMutex
	cbs  []ChangeFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher loads path once via loader and prepares to watch it for
// further writes.
func NewWatcher(path string, loader *Loader, log core.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	doc, loadErr := loader.loadFromFile(path)
	if loadErr != nil {
		log.Warnf("config watcher: initial load of %q failed: %v", path, loadErr)
		doc = Document{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:   path,
		loader: loader,
		log:    log,
		fs:     fs,
		doc:    doc,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start begins watching the file for writes, debouncing rapid successive
// events the way editors and atomic-rename writers tend to produce them.
func (w *Watcher) Start() error {
	if err := w.fs.Add(w.path); err != nil {
		return err
	}
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop tears down the underlying filesystem watch.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

// Document returns the most recently loaded configuration.
func (w *Watcher) Document() Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.doc
}

// OnChange registers cb to run after every successful reload.
func (w *Watcher) OnChange(cb ChangeFunc) {
	w.cbMu.Lock()
	w.cbs = append(w.cbs, cb)
	w.cbMu.Unlock()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var debounce *time.Timer
	const debounceWindow = 300 * time.Millisecond

	for {
		select {
		case <-w.ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, w.reload)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warnf("config watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	doc, err := w.loader.loadFromFile(w.path)
	if err != nil {
		w.log.Warnf("config watcher: reload of %q failed: %v", w.path, err)
		return
	}

	w.mu.Lock()
	w.doc = doc
	w.mu.Unlock()

	w.cbMu.RLock()
	cbs := make([]ChangeFunc, len(w.cbs))
	copy(cbs, w.cbs)
	w.cbMu.RUnlock()
	for _, cb := range cbs {
		go cb(doc)
	}
}
