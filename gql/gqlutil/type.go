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

package gqlutil

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
)

// TypeOf returns a nullable type reference to def.
func TypeOf(def *ast.Definition) *ast.Type {
	if def == nil {
		return nil
	}
	return ast.NamedType(def.Name, nil)
}

// NamedDefinition returns the definition of the named type underneath any
// list and non-null wrappers of t.
func NamedDefinition(schema *ast.Schema, t *ast.Type) *ast.Definition {
	if t == nil {
		return nil
	}
	return LookupType(schema, t.Name())
}

// NullableType returns t without its outermost non-null wrapper.
func NullableType(t *ast.Type) *ast.Type {
	if t == nil || !t.NonNull {
		return t
	}
	nt := *t
	nt.NonNull = false
	return &nt
}

// ListElem returns the element type of t if t is a (possibly non-null) list
// type, or nil otherwise.
func ListElem(t *ast.Type) *ast.Type {
	t = NullableType(t)
	if t == nil || t.NamedType != "" {
		return nil
	}
	return t.Elem
}

// IsQueryRoot reports whether def is the query root type of the schema.
func IsQueryRoot(schema *ast.Schema, def *ast.Definition) bool {
	return schema != nil && schema.Query != nil && def != nil && schema.Query.Name == def.Name
}

// IsComposite reports whether def is an object, interface or union type.
func IsComposite(def *ast.Definition) bool {
	return def != nil && def.IsCompositeType()
}

// IsAbstract reports whether def is an interface or union type.
func IsAbstract(def *ast.Definition) bool {
	return def != nil && def.IsAbstractType()
}

// IsInput reports whether def can be used as the type of an input value.
func IsInput(def *ast.Definition) bool {
	return def != nil && def.IsInputType()
}

// IsBoolean reports whether def is the built-in Boolean scalar.
func IsBoolean(def *ast.Definition) bool {
	return def != nil && def.Kind == ast.Scalar && def.Name == "Boolean"
}

// PossibleTypes returns the object types that can be the runtime type of
// def. For a union these are its members in declaration order, for an
// interface the implementing object types in name order, and for an object
// type the type itself.
func PossibleTypes(schema *ast.Schema, def *ast.Definition) []*ast.Definition {
	if def == nil {
		return nil
	}
	switch def.Kind {
	case ast.Object:
		return []*ast.Definition{def}
	case ast.Union:
		var ret []*ast.Definition
		for _, name := range def.Types {
			if member := LookupType(schema, name); member != nil {
				ret = append(ret, member)
			}
		}
		return ret
	case ast.Interface:
		var ret []*ast.Definition
		for _, typ := range Types(schema) {
			if typ.Kind == ast.Object && slices.Contains(typ.Interfaces, def.Name) {
				ret = append(ret, typ)
			}
		}
		return ret
	}
	return nil
}

// IsSubType reports whether maybeSub is a member of the abstract type
// abstract.
func IsSubType(abstract, maybeSub *ast.Definition) bool {
	if abstract == nil || maybeSub == nil {
		return false
	}
	switch abstract.Kind {
	case ast.Union:
		return slices.Contains(abstract.Types, maybeSub.Name)
	case ast.Interface:
		return slices.Contains(maybeSub.Interfaces, abstract.Name)
	}
	return false
}

// DoTypesOverlap reports whether a and b share at least one possible
// runtime object type.
func DoTypesOverlap(schema *ast.Schema, a, b *ast.Definition) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Name == b.Name {
		return true
	}
	if IsAbstract(a) {
		if IsAbstract(b) {
			for _, typ := range PossibleTypes(schema, a) {
				if IsSubType(b, typ) {
					return true
				}
			}
			return false
		}
		return IsSubType(a, b)
	}
	if IsAbstract(b) {
		return IsSubType(b, a)
	}
	return false
}
