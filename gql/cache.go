/*
 * Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gql

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sync/singleflight"
)

// ErrUnknownCacheKind is returned when no builder is registered for a cache
// kind.
var ErrUnknownCacheKind = errors.New("unknown cache kind")

// CacheBuilder builds a project level cache.
type CacheBuilder = func(proj *Project) (any, error)

// FileCacheBuilder builds a cache for a single file of the project.
type FileCacheBuilder = func(proj *Project, path string, file *File) (any, error)

// CacheKind identifies a cache. It must be comparable.
type CacheKind = any

type fileCacheKey struct {
	kind CacheKind
	path string
}

// cacheEntry is a built cache value. A failed build is cached as well, so
// that a broken schema file is not reparsed on every request.
type cacheEntry struct {
	data any
	err  error
}

// RegisterCacheBuilder registers a project level cache builder.
//
// Use a private type of your package as kind to avoid conflicts:
//
//	type schemaCacheKind struct{}
//
//	proj.RegisterCacheBuilder(schemaCacheKind{}, buildSchemaCache)
func (p *Project) RegisterCacheBuilder(kind CacheKind, builder CacheBuilder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cacheBuilders[kind] = builder
}

// RegisterFileCacheBuilder registers a file level cache builder. See
// [Project.RegisterCacheBuilder] for the choice of kind.
func (p *Project) RegisterFileCacheBuilder(kind CacheKind, builder FileCacheBuilder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fileCacheBuilders[kind] = builder
}

// Cache returns the project level cache of the given kind, building it on
// first use. Concurrent callers share a single build.
func (p *Project) Cache(kind CacheKind) (any, error) {
	return loadOrBuild(p, &p.cacheSFG, p.caches, kind, fmt.Sprintf("%T-%v", kind, kind), func() (any, error) {
		p.mu.RLock()
		builder, ok := p.cacheBuilders[kind]
		p.mu.RUnlock()
		if !ok {
			return nil, ErrUnknownCacheKind
		}
		return builder(p)
	})
}

// FileCache returns the cache of the given kind for the file at path,
// building it on first use. It returns [fs.ErrNotExist] if the project has
// no such file.
func (p *Project) FileCache(kind CacheKind, path string) (any, error) {
	key := fileCacheKey{kind, path}
	return loadOrBuild(p, &p.fileCacheSFG, p.fileCaches, key, fmt.Sprintf("%T-%v-%s", kind, kind, path), func() (any, error) {
		p.mu.RLock()
		builder, ok := p.fileCacheBuilders[kind]
		file, exists := p.files[path]
		p.mu.RUnlock()
		if !ok {
			return nil, ErrUnknownCacheKind
		}
		if !exists {
			return nil, fs.ErrNotExist
		}
		return builder(p, path, file)
	})
}

// loadOrBuild looks key up in entries and runs build through sfg on a miss.
// The result is stored only if no file changed while building.
func loadOrBuild[K comparable](p *Project, sfg *singleflight.Group, entries map[K]cacheEntry, key K, sfKey string, build func() (any, error)) (any, error) {
	p.mu.RLock()
	e, ok := entries[key]
	gen := p.gen
	p.mu.RUnlock()
	if ok {
		return e.data, e.err
	}

	data, err, _ := sfg.Do(sfKey, func() (any, error) {
		data, err := build()
		if errors.Is(err, ErrUnknownCacheKind) || errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		p.mu.Lock()
		if p.gen == gen {
			entries[key] = cacheEntry{data, err}
		}
		p.mu.Unlock()
		return data, err
	})
	return data, err
}

// invalidate drops the caches of path and every project level cache. The
// caller must hold p.mu for writing.
func (p *Project) invalidate(path string) {
	p.gen++
	clear(p.caches)
	for kind := range p.fileCacheBuilders {
		delete(p.fileCaches, fileCacheKey{kind, path})
	}
}
