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

package autocomplete

import (
	"testing"

	"github.com/goplus/gqlls/gql/gqlutil"
	"github.com/goplus/gqlls/gql/onlineparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeInfoAtEnd(t *testing.T, text string) *TypeInfo {
	t.Helper()
	tok := TokenAt(text, endOf(text))
	require.NotNil(t, tok.State)
	return ResolveTypeInfo(newTestSchema(t), tok.State)
}

func TestResolveTypeInfo(t *testing.T) {
	t.Run("Operation", func(t *testing.T) {
		info := typeInfoAtEnd(t, "mutation { ")
		require.NotNil(t, info.ParentType)
		assert.Equal(t, "Mutation", info.ParentType.Name)
		assert.Equal(t, "Mutation", info.Type.String())
	})

	t.Run("Field", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ me { friends { ")
		require.NotNil(t, info.FieldDef)
		assert.Equal(t, "friends", info.FieldDef.Name)
		assert.Equal(t, "[User!]!", info.Type.String())
		assert.Equal(t, "User", info.ParentType.Name)
	})

	t.Run("MetaField", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ __schema { ")
		assert.Same(t, gqlutil.SchemaMetaField, info.FieldDef)
		require.NotNil(t, info.ParentType)
		assert.Equal(t, "__Schema", info.ParentType.Name)

		info = typeInfoAtEnd(t, "{ me { __typename")
		assert.Same(t, gqlutil.TypenameMetaField, info.FieldDef)
	})

	t.Run("UnknownField", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ nope { ")
		assert.Nil(t, info.FieldDef)
		assert.Nil(t, info.Type)
		assert.Nil(t, info.ParentType)
	})

	t.Run("Argument", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ me { friends(roles: ")
		require.NotNil(t, info.ArgDef)
		assert.Equal(t, "roles", info.ArgDef.Name)
		assert.Equal(t, "[Role!]", info.InputType.String())
		assert.Len(t, info.ArgDefs, 6)
	})

	t.Run("ArgumentResetsBetweenArguments", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ me { friends(role: ADMIN, nope: ")
		assert.Nil(t, info.ArgDef)
		assert.Nil(t, info.InputType)
	})

	t.Run("EnumValue", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ me { friends(role: ADMIN")
		require.NotNil(t, info.EnumValue)
		assert.Equal(t, "ADMIN", info.EnumValue.Name)

		info = typeInfoAtEnd(t, "{ me { friends(role: NOPE")
		assert.Nil(t, info.EnumValue)
	})

	t.Run("ListValue", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ me { friends(roles: [")
		assert.Equal(t, "Role!", info.InputType.String())

		info = typeInfoAtEnd(t, "{ me { friends(role: [")
		assert.Nil(t, info.InputType)
	})

	t.Run("ObjectValue", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ me { friends(filter: { tags: ")
		assert.Len(t, info.ObjectFieldDefs, 3)
		assert.Equal(t, "[String!]", info.InputType.String())

		info = typeInfoAtEnd(t, "{ me { friends(first: {")
		assert.Nil(t, info.ObjectFieldDefs)
	})

	t.Run("Directive", func(t *testing.T) {
		info := typeInfoAtEnd(t, "{ me @skip(")
		require.NotNil(t, info.DirectiveDef)
		assert.Equal(t, "skip", info.DirectiveDef.Name)
		require.Len(t, info.ArgDefs, 1)
		assert.Equal(t, "if", info.ArgDefs[0].Name)
	})

	t.Run("FragmentTypeCondition", func(t *testing.T) {
		info := typeInfoAtEnd(t, "fragment F on User { ")
		assert.Equal(t, "User", info.ParentType.Name)

		info = typeInfoAtEnd(t, "{ node(id: 1) { ... on Bot { ")
		assert.Equal(t, "Bot", info.ParentType.Name)
	})

	t.Run("NamedType", func(t *testing.T) {
		info := typeInfoAtEnd(t, "query ($f: UserFilter")
		require.NotNil(t, info.Type)
		assert.Equal(t, "UserFilter", info.Type.Name())

		info = typeInfoAtEnd(t, "query ($f: Nope")
		assert.Nil(t, info.Type)
	})

	t.Run("UnnamedField", func(t *testing.T) {
		query := &onlineparser.State{Kind: onlineparser.KindShortQuery}
		selSet := &onlineparser.State{Kind: onlineparser.KindSelectionSet, PrevState: query}
		field := &onlineparser.State{Kind: onlineparser.KindField, PrevState: selSet}

		info := ResolveTypeInfo(newTestSchema(t), field)
		require.NotNil(t, info.ParentType)
		assert.Equal(t, "Query", info.ParentType.Name)
		assert.Nil(t, info.FieldDef)
		assert.Nil(t, info.Type)
	})

	t.Run("NilInputs", func(t *testing.T) {
		assert.Equal(t, &TypeInfo{}, ResolveTypeInfo(nil, onlineparser.NewState()))
		assert.Equal(t, &TypeInfo{}, ResolveTypeInfo(newTestSchema(t), nil))
	})
}

func TestResolveTypeInfoIsIdempotent(t *testing.T) {
	schema := newTestSchema(t)
	text := "{ me { friends(filter: { role: ADMIN }) { ... on User { "
	tok := TokenAt(text, endOf(text))

	before := *tok.State
	first := ResolveTypeInfo(schema, tok.State)
	second := ResolveTypeInfo(schema, tok.State)
	assert.Equal(t, first, second)
	assert.Equal(t, before, *tok.State)
}
