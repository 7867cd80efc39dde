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

// Package gqlutil provides schema introspection helpers over the
// github.com/vektah/gqlparser/v2/ast schema model.
//
// All helpers accept nil arguments and report "not found" rather than
// panicking.
package gqlutil

import (
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Types returns all types of the schema sorted by name.
func Types(schema *ast.Schema) []*ast.Definition {
	if schema == nil {
		return nil
	}
	defs := make([]*ast.Definition, 0, len(schema.Types))
	for _, def := range schema.Types {
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b *ast.Definition) int {
		return strings.Compare(a.Name, b.Name)
	})
	return defs
}

// LookupType returns the type with the given name, or nil.
func LookupType(schema *ast.Schema, name string) *ast.Definition {
	if schema == nil || name == "" {
		return nil
	}
	return schema.Types[name]
}

// Directives returns all directive definitions of the schema sorted by name.
func Directives(schema *ast.Schema) []*ast.DirectiveDefinition {
	if schema == nil {
		return nil
	}
	dirs := make([]*ast.DirectiveDefinition, 0, len(schema.Directives))
	for _, dir := range schema.Directives {
		dirs = append(dirs, dir)
	}
	slices.SortFunc(dirs, func(a, b *ast.DirectiveDefinition) int {
		return strings.Compare(a.Name, b.Name)
	})
	return dirs
}

// LookupDirective returns the directive definition with the given name, or
// nil.
func LookupDirective(schema *ast.Schema, name string) *ast.DirectiveDefinition {
	if schema == nil || name == "" {
		return nil
	}
	return schema.Directives[name]
}

// HasLocation reports whether dir may be used at loc.
func HasLocation(dir *ast.DirectiveDefinition, loc ast.DirectiveLocation) bool {
	return dir != nil && slices.Contains(dir.Locations, loc)
}

// Deprecation reports whether dirs carry @deprecated and the reason given.
func Deprecation(dirs ast.DirectiveList) (deprecated bool, reason string) {
	dir := dirs.ForName("deprecated")
	if dir == nil {
		return false, ""
	}
	reason = "No longer supported"
	if arg := dir.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		reason = arg.Value.Raw
	}
	return true, reason
}
