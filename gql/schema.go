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
	"path/filepath"
	"slices"
	"strings"

	xerrors "github.com/qiniu/x/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

var (
	// ErrNoSchema is returned when a project has no schema files.
	ErrNoSchema = errors.New("no schema files")

	// ErrNotSchemaFile is returned for files that are neither SDL nor
	// introspection JSON.
	ErrNotSchemaFile = errors.New("not a schema file")
)

// IsSchemaFile reports whether path names a file a [Project] can load a
// schema from.
func IsSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".graphql", ".graphqls", ".gql", ".json":
		return true
	}
	return false
}

// SchemaFile is a parsed schema file.
type SchemaFile struct {
	// Source is the SDL of the file. For introspection JSON it is the SDL
	// printed from the introspection result.
	Source *ast.Source

	// Doc is the parsed form of Source.
	Doc *ast.SchemaDocument
}

type schemaFileCacheKind struct{}

func buildSchemaFileCache(proj *Project, path string, file *File) (ret any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	var input string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".graphql", ".graphqls", ".gql":
		input = string(file.Content)
	case ".json":
		if input, err = IntrospectionSDL(file.Content); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrNotSchemaFile)
	}

	src := &ast.Source{Name: path, Input: input}
	doc, err := parser.ParseSchema(src)
	if err != nil {
		return nil, err
	}
	return &SchemaFile{Source: src, Doc: doc}, nil
}

// SchemaFile returns the parsed schema file at path.
func (p *Project) SchemaFile(path string) (*SchemaFile, error) {
	ret, err := p.FileCache(schemaFileCacheKind{}, path)
	if err != nil {
		return nil, err
	}
	return ret.(*SchemaFile), nil
}

// SchemaPaths returns the paths of the schema files of the project in
// lexical order.
func (p *Project) SchemaPaths() []string {
	var paths []string
	for path := range p.Files() {
		if IsSchemaFile(path) {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths
}

type schemaCacheKind struct{}

// buildSchemaCache loads every schema file of proj into one schema. Parse
// errors of all files are reported together.
func buildSchemaCache(proj *Project) (any, error) {
	paths := proj.SchemaPaths()
	if len(paths) == 0 {
		return nil, ErrNoSchema
	}

	var errs xerrors.List
	sources := make([]*ast.Source, 0, len(paths))
	for _, path := range paths {
		f, err := proj.SchemaFile(path)
		if err != nil {
			errs.Add(err)
			continue
		}
		sources = append(sources, f.Source)
	}
	if len(errs) > 0 {
		return nil, errs.ToError()
	}
	return LoadSchema(sources...)
}

// Schema returns the schema built from all schema files of the project.
func (p *Project) Schema() (*ast.Schema, error) {
	ret, err := p.Cache(schemaCacheKind{})
	if err != nil {
		return nil, err
	}
	return ret.(*ast.Schema), nil
}

// LoadSchema builds a schema from SDL sources. The built-in scalars and
// directives are always available.
func LoadSchema(sources ...*ast.Source) (schema *ast.Schema, err error) {
	defer func() {
		if r := recover(); r != nil {
			schema, err = nil, fmt.Errorf("load schema: %v", r)
		}
	}()
	schema, err = gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, err
	}
	return schema, nil
}

// LoadSchemaString builds a schema from a single SDL document.
func LoadSchemaString(name, sdl string) (*ast.Schema, error) {
	return LoadSchema(&ast.Source{Name: name, Input: sdl})
}
