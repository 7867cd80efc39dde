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
	"io/fs"
	"maps"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(content string) *File {
	return &File{Content: []byte(content)}
}

func TestNewProject(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		proj := NewProject(nil, 0)
		require.NotNil(t, proj)
		assert.Empty(t, proj.files)
		assert.Empty(t, proj.cacheBuilders)
		assert.Empty(t, proj.fileCacheBuilders)
		assert.Empty(t, maps.Collect(proj.Files()))
	})

	t.Run("FilesAreCopied", func(t *testing.T) {
		files := map[string]*File{"a.graphql": file("type Query { a: Int }")}
		proj := NewProject(files, 0)
		delete(files, "a.graphql")

		f, ok := proj.File("a.graphql")
		require.True(t, ok)
		assert.Equal(t, []byte("type Query { a: Int }"), f.Content)
	})

	t.Run("Features", func(t *testing.T) {
		proj := NewProject(nil, FeatSchemaFileCache)
		assert.Len(t, proj.fileCacheBuilders, 1)
		assert.Empty(t, proj.cacheBuilders)

		proj = NewProject(nil, FeatSchemaCache)
		assert.Len(t, proj.fileCacheBuilders, 1)
		assert.Len(t, proj.cacheBuilders, 1)

		proj = NewProject(nil, FeatAll)
		assert.Len(t, proj.fileCacheBuilders, 1)
		assert.Len(t, proj.cacheBuilders, 1)
	})
}

func TestProjectFiles(t *testing.T) {
	t.Run("PutFile", func(t *testing.T) {
		proj := NewProject(nil, 0)
		proj.PutFile("a.graphql", file("a"))
		f, ok := proj.File("a.graphql")
		require.True(t, ok)
		assert.Equal(t, []byte("a"), f.Content)
		assert.Len(t, maps.Collect(proj.Files()), 1)
	})

	t.Run("DeleteFile", func(t *testing.T) {
		proj := NewProject(map[string]*File{"a.graphql": file("a")}, 0)
		require.NoError(t, proj.DeleteFile("a.graphql"))
		_, ok := proj.File("a.graphql")
		assert.False(t, ok)
		assert.ErrorIs(t, proj.DeleteFile("a.graphql"), fs.ErrNotExist)
	})

	t.Run("RenameFile", func(t *testing.T) {
		proj := NewProject(map[string]*File{
			"a.graphql": file("a"),
			"b.graphql": file("b"),
		}, 0)
		assert.ErrorIs(t, proj.RenameFile("x.graphql", "y.graphql"), fs.ErrNotExist)
		assert.ErrorIs(t, proj.RenameFile("a.graphql", "b.graphql"), fs.ErrExist)

		require.NoError(t, proj.RenameFile("a.graphql", "c.graphql"))
		_, ok := proj.File("a.graphql")
		assert.False(t, ok)
		f, ok := proj.File("c.graphql")
		require.True(t, ok)
		assert.Equal(t, []byte("a"), f.Content)
	})

	t.Run("UpdateFiles", func(t *testing.T) {
		proj := NewProject(map[string]*File{
			"keep.graphql": {Content: []byte("keep"), Version: 1},
			"drop.graphql": {Content: []byte("drop"), Version: 1},
			"bump.graphql": {Content: []byte("old"), Version: 1},
		}, 0)
		keep, _ := proj.File("keep.graphql")

		proj.UpdateFiles(map[string]*File{
			"keep.graphql": {Content: []byte("ignored"), Version: 1},
			"bump.graphql": {Content: []byte("new"), Version: 2},
			"add.graphql":  {Content: []byte("add"), Version: 1},
		})

		got := maps.Collect(proj.Files())
		assert.Len(t, got, 3)
		assert.Same(t, keep, got["keep.graphql"])
		assert.Equal(t, []byte("new"), got["bump.graphql"].Content)
		assert.Equal(t, []byte("add"), got["add.graphql"].Content)
		assert.NotContains(t, got, "drop.graphql")
	})

	t.Run("FilesIteratorIsStable", func(t *testing.T) {
		proj := NewProject(map[string]*File{"a.graphql": file("a")}, 0)
		files := proj.Files()
		proj.PutFile("b.graphql", file("b"))

		var n int
		for range files {
			n++
		}
		assert.Equal(t, 1, n)
	})
}

func TestProjectSnapshot(t *testing.T) {
	type testCacheKind struct{}

	proj := NewProject(map[string]*File{"a.graphql": file("a")}, 0)
	proj.RegisterCacheBuilder(testCacheKind{}, func(*Project) (any, error) {
		return "data", nil
	})
	_, err := proj.Cache(testCacheKind{})
	require.NoError(t, err)

	snap := proj.Snapshot()
	proj.PutFile("b.graphql", file("b"))

	assert.Len(t, maps.Collect(snap.Files()), 1)
	assert.Len(t, snap.caches, 1)
	assert.Empty(t, proj.caches)

	data, err := snap.Cache(testCacheKind{})
	require.NoError(t, err)
	assert.Equal(t, "data", data)
}

func TestProjectCache(t *testing.T) {
	type testCacheKind struct{}

	t.Run("UnknownKind", func(t *testing.T) {
		proj := NewProject(nil, 0)
		_, err := proj.Cache(testCacheKind{})
		assert.ErrorIs(t, err, ErrUnknownCacheKind)
		_, err = proj.FileCache(testCacheKind{}, "a.graphql")
		assert.ErrorIs(t, err, ErrUnknownCacheKind)
	})

	t.Run("BuiltOnce", func(t *testing.T) {
		proj := NewProject(nil, 0)
		var builds atomic.Int32
		proj.RegisterCacheBuilder(testCacheKind{}, func(*Project) (any, error) {
			builds.Add(1)
			return 42, nil
		})

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				data, err := proj.Cache(testCacheKind{})
				assert.NoError(t, err)
				assert.Equal(t, 42, data)
			}()
		}
		wg.Wait()

		_, err := proj.Cache(testCacheKind{})
		require.NoError(t, err)
		assert.Equal(t, int32(1), builds.Load())
	})

	t.Run("InvalidatedByFileChange", func(t *testing.T) {
		proj := NewProject(nil, 0)
		var builds int
		proj.RegisterCacheBuilder(testCacheKind{}, func(*Project) (any, error) {
			builds++
			return builds, nil
		})

		data, err := proj.Cache(testCacheKind{})
		require.NoError(t, err)
		assert.Equal(t, 1, data)

		proj.PutFile("a.graphql", file("a"))
		data, err = proj.Cache(testCacheKind{})
		require.NoError(t, err)
		assert.Equal(t, 2, data)
	})

	t.Run("ErrorsAreCached", func(t *testing.T) {
		proj := NewProject(nil, 0)
		var builds int
		proj.RegisterCacheBuilder(testCacheKind{}, func(*Project) (any, error) {
			builds++
			return nil, assert.AnError
		})

		for range 2 {
			_, err := proj.Cache(testCacheKind{})
			assert.ErrorIs(t, err, assert.AnError)
		}
		assert.Equal(t, 1, builds)
	})

	t.Run("FileCache", func(t *testing.T) {
		proj := NewProject(map[string]*File{"a.graphql": file("abc")}, 0)
		var builds int
		proj.RegisterFileCacheBuilder(testCacheKind{}, func(_ *Project, path string, f *File) (any, error) {
			builds++
			return path + ":" + string(f.Content), nil
		})

		data, err := proj.FileCache(testCacheKind{}, "a.graphql")
		require.NoError(t, err)
		assert.Equal(t, "a.graphql:abc", data)

		_, err = proj.FileCache(testCacheKind{}, "missing.graphql")
		assert.ErrorIs(t, err, fs.ErrNotExist)

		// A change to another file keeps the cache of a.graphql.
		proj.PutFile("b.graphql", file("b"))
		_, err = proj.FileCache(testCacheKind{}, "a.graphql")
		require.NoError(t, err)
		assert.Equal(t, 1, builds)

		proj.PutFile("a.graphql", file("xyz"))
		data, err = proj.FileCache(testCacheKind{}, "a.graphql")
		require.NoError(t, err)
		assert.Equal(t, "a.graphql:xyz", data)
		assert.Equal(t, 2, builds)
	})

	t.Run("StaleBuildIsNotStored", func(t *testing.T) {
		proj := NewProject(nil, 0)
		var builds int
		proj.RegisterCacheBuilder(testCacheKind{}, func(p *Project) (any, error) {
			builds++
			if builds == 1 {
				p.PutFile("a.graphql", file("a"))
			}
			return builds, nil
		})

		data, err := proj.Cache(testCacheKind{})
		require.NoError(t, err)
		assert.Equal(t, 1, data)

		data, err = proj.Cache(testCacheKind{})
		require.NoError(t, err)
		assert.Equal(t, 2, data)
	})
}
