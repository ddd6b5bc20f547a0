package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
)

// fakeEmbedder returns deterministic vectors. Specific texts can be
// pinned to fixed vectors or failures; everything else gets a stable
// hash-derived vector.
type fakeEmbedder struct {
	dims    int
	model   string
	vectors map[string][]float32
	failOn  map[string]error
	batchEr error
}

func newFakeEmbedder(dims int) *fakeEmbedder {
	return &fakeEmbedder{
		dims:    dims,
		model:   "fake-embedder",
		vectors: make(map[string][]float32),
		failOn:  make(map[string]error),
	}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if err, ok := f.failOn[text]; ok {
		return nil, err
	}
	if v, ok := f.vectors[text]; ok {
		out := make([]float32, len(v))
		copy(out, v)
		return out, nil
	}
	return hashVector(text, f.dims), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.batchEr != nil {
		return nil, f.batchEr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return f.dims }
func (f *fakeEmbedder) ModelName() string            { return f.model }
func (f *fakeEmbedder) Ping(context.Context) error   { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

func hashVector(text string, dims int) []float32 {
	v := make([]float32, dims)
	for i := range v {
		h := fnv.New32a()
		fmt.Fprintf(h, "%s|%d", text, i)
		v[i] = float32(h.Sum32()%1000)/1000 + 0.001
	}
	return v
}

// scriptedLLM replays canned responses in order and records prompts.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
	opts      []driven.GenerateOptions
}

func (s *scriptedLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", fmt.Errorf("scripted LLM: no responses left")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func (s *scriptedLLM) ModelName() string          { return "scripted" }
func (s *scriptedLLM) Ping(context.Context) error { return nil }
func (s *scriptedLLM) Close() error               { return nil }

// staticPrompts serves minimal templates with the right placeholders.
type staticPrompts struct {
	loadErr error
}

func (p *staticPrompts) Load(name string) (string, error) {
	if p.loadErr != nil {
		return "", p.loadErr
	}
	switch name {
	case driven.PromptQueryExpansion:
		return "Give %d paraphrases of: %s", nil
	case driven.PromptSynthesis:
		return "CLAUSES:\n%s\nQUERY: %s", nil
	case driven.PromptSynthesisRetry:
		return "Reformat as JSON only:\n%s", nil
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

func (p *staticPrompts) Reload() {}

// memStore is an in-memory bundle store with a configurable path for
// watcher tests.
type memStore struct {
	mu      sync.Mutex
	snap    *domain.Snapshot
	path    string
	saveErr error
	saves   int
}

func (m *memStore) Save(_ context.Context, snap *domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *snap
	cp.Entries = append([]domain.IndexEntry(nil), snap.Entries...)
	m.snap = &cp
	m.saves++
	return nil
}

func (m *memStore) Load(context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, fmt.Errorf("%w: no bundle", domain.ErrNotFound)
	}
	cp := *m.snap
	cp.Entries = append([]domain.IndexEntry(nil), m.snap.Entries...)
	return &cp, nil
}

func (m *memStore) set(snap *domain.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *memStore) Path() string { return m.path }
func (m *memStore) Close() error { return nil }
