// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package workerpool dispatches per-file directive extraction across a
// bounded set of goroutines and memoizes results by absolute path so the
// same file is never parsed twice within one engine invocation.
package workerpool

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ifttt-lint/ifttt/internal/directive"
)

// ParseFunc extracts directives from one file path.
type ParseFunc func(path string) ([]directive.Directive, error)

// Result is one path's parse outcome.
type Result struct {
	Directives []directive.Directive
	Err        error
}

// Pool is a bounded worker pool shared by both the source-side and
// target-side passes of one engine invocation.
//
// Thread Safety: safe for concurrent use. In-flight deduplication is
// delegated to singleflight, and the memoization cache is guarded by mu.
type Pool struct {
	parallelism int
	parse       ParseFunc

	flight singleflight.Group

	mu    sync.Mutex
	cache map[string]Result
}

// New returns a Pool that dispatches up to parallelism concurrent parse
// calls through parse. parallelism is clamped to at least 1.
func New(parallelism int, parse ParseFunc) *Pool {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Pool{
		parallelism: parallelism,
		parse:       parse,
		cache:       make(map[string]Result),
	}
}

// Parse returns the memoized directive list for path, computing it at most
// once regardless of how many callers request it concurrently, and
// regardless of whether the request comes from the source-side or the
// target-side pass. The cache key is path's absolute form.
func (p *Pool) Parse(path string) ([]directive.Directive, error) {
	key := path
	if abs, absErr := filepath.Abs(path); absErr == nil {
		key = abs
	}

	p.mu.Lock()
	cache := p.cache
	if cache != nil {
		if r, ok := cache[key]; ok {
			p.mu.Unlock()
			return r.Directives, r.Err
		}
	}
	p.mu.Unlock()

	v, err, _ := p.flight.Do(key, func() (interface{}, error) {
		p.mu.Lock()
		if r, ok := p.cache[key]; ok {
			p.mu.Unlock()
			return r.Directives, r.Err
		}
		p.mu.Unlock()

		directives, parseErr := p.parse(path)
		p.mu.Lock()
		if p.cache != nil {
			p.cache[key] = Result{Directives: directives, Err: parseErr}
		}
		p.mu.Unlock()
		return directives, parseErr
	})
	if v == nil {
		return nil, err
	}
	return v.([]directive.Directive), err
}

// ParseAll dispatches paths across the pool's bounded concurrency limit and
// returns every result keyed by path. As soon as one path yields a fatal
// error (anything other than directive.ErrNotFound), no further paths are
// dispatched; goroutines already running are always awaited before
// ParseAll returns — the pool never exposes partial cancellation.
func (p *Pool) ParseAll(ctx context.Context, paths []string) (map[string]Result, error) {
	results := make(map[string]Result, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)

	for _, path := range paths {
		path := path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// A path that was still waiting for a free slot when another
			// path failed is dropped rather than parsed.
			if gctx.Err() != nil {
				return nil
			}
			directives, err := p.Parse(path)

			mu.Lock()
			results[path] = Result{Directives: directives, Err: err}
			mu.Unlock()

			if err != nil && !errors.Is(err, directive.ErrNotFound) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Close tears down the pool. Every engine invocation must call Close
// before returning its exit code; a Pool must never be reused afterward.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = nil
}
