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

// Package gql manages the GraphQL schema of a workspace.
//
// A [Project] holds the schema files of a workspace (SDL or introspection
// JSON) and builds the [ast.Schema] used for completion. Built values are
// cached per file and per project and dropped when a file changes.
package gql

import (
	"io/fs"
	"iter"
	"maps"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

const (
	// FeatSchemaFileCache enables parsing individual schema files.
	FeatSchemaFileCache = 1 << iota

	// FeatSchemaCache enables building the project schema. It implies
	// FeatSchemaFileCache.
	FeatSchemaCache

	// FeatAll enables all features.
	FeatAll = FeatSchemaFileCache | FeatSchemaCache
)

type cacheFeature struct {
	flag    uint
	kind    CacheKind
	builder any
}

var builtinCacheFeatures = []cacheFeature{
	{FeatSchemaFileCache | FeatSchemaCache, schemaFileCacheKind{}, buildSchemaFileCache},
	{FeatSchemaCache, schemaCacheKind{}, buildSchemaCache},
}

// File is a file of a [Project].
type File struct {
	Content []byte
	Version int
}

// Project is a set of schema files together with the caches built from them.
type Project struct {
	mu            sync.RWMutex
	files         map[string]*File
	filesSnapshot atomic.Pointer[map[string]*File]
	gen           uint64 // bumped on every file change

	cacheBuilders map[CacheKind]CacheBuilder
	caches        map[CacheKind]cacheEntry
	cacheSFG      singleflight.Group

	fileCacheBuilders map[CacheKind]FileCacheBuilder
	fileCaches        map[fileCacheKey]cacheEntry
	fileCacheSFG      singleflight.Group
}

// NewProject creates a project with the given files and cache features.
func NewProject(files map[string]*File, feats uint) *Project {
	proj := &Project{
		files:             make(map[string]*File, len(files)),
		cacheBuilders:     make(map[CacheKind]CacheBuilder),
		caches:            make(map[CacheKind]cacheEntry),
		fileCacheBuilders: make(map[CacheKind]FileCacheBuilder),
		fileCaches:        make(map[fileCacheKey]cacheEntry),
	}
	maps.Copy(proj.files, files)
	proj.updateFilesSnapshot()
	for _, feat := range builtinCacheFeatures {
		if feat.flag&feats == 0 {
			continue
		}
		switch builder := feat.builder.(type) {
		case CacheBuilder:
			proj.RegisterCacheBuilder(feat.kind, builder)
		case FileCacheBuilder:
			proj.RegisterFileCacheBuilder(feat.kind, builder)
		}
	}
	return proj
}

// Snapshot returns a copy of the project that shares already built caches
// but is not affected by later file changes.
func (p *Project) Snapshot() *Project {
	p.mu.RLock()
	defer p.mu.RUnlock()

	proj := &Project{
		files:             maps.Clone(p.files),
		gen:               p.gen,
		cacheBuilders:     maps.Clone(p.cacheBuilders),
		caches:            maps.Clone(p.caches),
		fileCacheBuilders: maps.Clone(p.fileCacheBuilders),
		fileCaches:        maps.Clone(p.fileCaches),
	}
	proj.updateFilesSnapshot()
	return proj
}

// Files returns an iterator over the files of the project. It does not block
// concurrent writers.
func (p *Project) Files() iter.Seq2[string, *File] {
	return maps.All(*p.filesSnapshot.Load())
}

// File returns the file at path.
func (p *Project) File(path string) (file *File, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	file, ok = p.files[path]
	return
}

// PutFile adds or replaces the file at path.
func (p *Project) PutFile(path string, file *File) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[path] = file
	p.updateFilesSnapshot()
	p.invalidate(path)
}

// DeleteFile removes the file at path. It returns [fs.ErrNotExist] if there
// is no such file.
func (p *Project) DeleteFile(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.files[path]; !ok {
		return fs.ErrNotExist
	}
	delete(p.files, path)
	p.updateFilesSnapshot()
	p.invalidate(path)
	return nil
}

// RenameFile moves the file at oldPath to newPath.
func (p *Project) RenameFile(oldPath, newPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	file, ok := p.files[oldPath]
	if !ok {
		return fs.ErrNotExist
	}
	if _, ok := p.files[newPath]; ok {
		return fs.ErrExist
	}

	p.files[newPath] = file
	delete(p.files, oldPath)
	p.updateFilesSnapshot()
	p.invalidate(oldPath)
	p.invalidate(newPath)
	return nil
}

// UpdateFiles replaces the file set of the project with newFiles. Files whose
// Version is unchanged keep their caches.
func (p *Project) UpdateFiles(newFiles map[string]*File) {
	p.mu.Lock()
	defer p.mu.Unlock()

	maps.DeleteFunc(p.files, func(path string, _ *File) bool {
		_, ok := newFiles[path]
		if !ok {
			p.invalidate(path)
		}
		return !ok
	})

	for path, newFile := range newFiles {
		if oldFile, ok := p.files[path]; ok && oldFile.Version == newFile.Version {
			continue
		}
		p.files[path] = newFile
		p.invalidate(path)
	}

	p.updateFilesSnapshot()
}

func (p *Project) updateFilesSnapshot() {
	snapshot := maps.Clone(p.files)
	if snapshot == nil {
		snapshot = map[string]*File{}
	}
	p.filesSnapshot.Store(&snapshot)
}
