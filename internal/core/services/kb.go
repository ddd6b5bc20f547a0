package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/clearbrook-labs/claimlens/internal/adapters/driven/index/flat"
	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/logger"
)

// KnowledgeBase manages the live vector index backing query serving.
// The index is swapped wholesale behind an atomic pointer: readers
// never see a partially loaded index, and a failed reload keeps the
// previous one serving.
type KnowledgeBase struct {
	store driven.BundleStore

	current atomic.Pointer[flat.Index]

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewKnowledgeBase creates a knowledge-base manager over a bundle store.
func NewKnowledgeBase(store driven.BundleStore) *KnowledgeBase {
	return &KnowledgeBase{store: store}
}

// Load reads the persisted bundle and swaps it in. A missing bundle
// surfaces as domain.ErrNoKnowledgeBase.
func (kb *KnowledgeBase) Load(ctx context.Context) error {
	snap, err := kb.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: run a build first", domain.ErrNoKnowledgeBase)
		}
		return fmt.Errorf("loading bundle: %w", err)
	}

	index, err := flat.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("restoring index: %w", err)
	}

	kb.current.Store(index)
	logger.Info("Knowledge base loaded: %d chunks, model %s (%dd)",
		index.Len(), index.ModelName(), index.Dimensions())
	return nil
}

// Index returns the live index, loading it on first use. Fails with
// domain.ErrNoKnowledgeBase when nothing has been built yet.
func (kb *KnowledgeBase) Index(ctx context.Context) (driven.VectorIndex, error) {
	if index := kb.current.Load(); index != nil {
		return index, nil
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()
	if index := kb.current.Load(); index != nil {
		return index, nil
	}
	if err := kb.Load(ctx); err != nil {
		return nil, err
	}
	return kb.current.Load(), nil
}

// Watch starts reloading the index whenever the bundle file changes on
// disk, e.g. after a build in another process. Reload failures are
// logged and the previous index keeps serving.
func (kb *KnowledgeBase) Watch(ctx context.Context) error {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating bundle watcher: %w", err)
	}

	// Watch the directory: Save replaces the file by rename, which drops
	// a watch placed on the file itself.
	bundlePath := kb.store.Path()
	if err := watcher.Add(filepath.Dir(bundlePath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching bundle directory: %w", err)
	}

	kb.watcher = watcher
	kb.done = make(chan struct{})
	go kb.watchLoop(ctx, watcher, bundlePath)
	return nil
}

func (kb *KnowledgeBase) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, bundlePath string) {
	defer close(kb.done)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != bundlePath {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Bundle changed on disk (%s), reloading", event.Op)
			if err := kb.Load(ctx); err != nil {
				logger.Warn("Bundle reload failed: %v (keeping previous index)", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Bundle watcher error: %v", err)

		case <-ctx.Done():
			return
		}
	}
}

// Close stops the watcher, if running.
func (kb *KnowledgeBase) Close() error {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.watcher == nil {
		return nil
	}
	err := kb.watcher.Close()
	<-kb.done
	kb.watcher = nil
	return err
}
