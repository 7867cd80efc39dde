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
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Meta-fields available without being declared by the schema.
var (
	TypenameMetaField = &ast.FieldDefinition{
		Name:        "__typename",
		Description: "The name of the current Object type at runtime.",
		Type:        ast.NonNullNamedType("String", nil),
	}
	SchemaMetaField = &ast.FieldDefinition{
		Name:        "__schema",
		Description: "Access the current type schema of this server.",
		Type:        ast.NonNullNamedType("__Schema", nil),
	}
	TypeMetaField = &ast.FieldDefinition{
		Name:        "__type",
		Description: "Request the type information of a single type.",
		Type:        ast.NamedType("__Type", nil),
		Arguments: ast.ArgumentDefinitionList{
			{Name: "name", Type: ast.NonNullNamedType("String", nil)},
		},
	}
)

// IsMetaName reports whether name is reserved for introspection.
func IsMetaName(name string) bool {
	return strings.HasPrefix(name, "__")
}

// Fields returns the fields declared on def, excluding the introspection
// meta-fields the schema loader attaches to the query root.
func Fields(def *ast.Definition) ast.FieldList {
	if def == nil || !(def.Kind == ast.Object || def.Kind == ast.Interface) {
		return nil
	}
	ret := make(ast.FieldList, 0, len(def.Fields))
	for _, f := range def.Fields {
		if !IsMetaName(f.Name) {
			ret = append(ret, f)
		}
	}
	return ret
}

// InputFields returns the fields of def if it is an input object type.
func InputFields(def *ast.Definition) ast.FieldList {
	if def == nil || def.Kind != ast.InputObject {
		return nil
	}
	if def.Fields == nil {
		return ast.FieldList{}
	}
	return def.Fields
}

// FieldDef resolves the field named name on parent, including the
// __schema and __type meta-fields on the query root and __typename on
// composite types.
func FieldDef(schema *ast.Schema, parent *ast.Definition, name string) *ast.FieldDefinition {
	if parent == nil || name == "" {
		return nil
	}
	switch name {
	case SchemaMetaField.Name:
		if IsQueryRoot(schema, parent) {
			return SchemaMetaField
		}
	case TypeMetaField.Name:
		if IsQueryRoot(schema, parent) {
			return TypeMetaField
		}
	case TypenameMetaField.Name:
		if IsComposite(parent) {
			return TypenameMetaField
		}
	}
	return Fields(parent).ForName(name)
}
