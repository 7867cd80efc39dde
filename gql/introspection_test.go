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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

const introspectionJSON = `{
  "data": {
    "__schema": {
      "queryType": {"name": "Root"},
      "mutationType": null,
      "subscriptionType": null,
      "types": [
        {
          "kind": "OBJECT",
          "name": "Root",
          "fields": [
            {
              "name": "pets",
              "description": "All pets.",
              "args": [
                {"name": "color", "type": {"kind": "ENUM", "name": "Color"}, "defaultValue": "RED"},
                {"name": "first", "type": {"kind": "SCALAR", "name": "Int"}, "defaultValue": "10"}
              ],
              "type": {"kind": "NON_NULL", "ofType": {"kind": "LIST", "ofType": {"kind": "INTERFACE", "name": "Pet"}}},
              "isDeprecated": false
            },
            {
              "name": "search",
              "args": [
                {"name": "filter", "type": {"kind": "NON_NULL", "ofType": {"kind": "INPUT_OBJECT", "name": "Filter"}}}
              ],
              "type": {"kind": "UNION", "name": "Result"},
              "isDeprecated": true,
              "deprecationReason": "Use pets."
            }
          ],
          "interfaces": []
        },
        {
          "kind": "INTERFACE",
          "name": "Pet",
          "fields": [
            {"name": "name", "args": [], "type": {"kind": "SCALAR", "name": "String"}}
          ],
          "possibleTypes": [{"kind": "OBJECT", "name": "Dog"}]
        },
        {
          "kind": "OBJECT",
          "name": "Dog",
          "fields": [
            {"name": "name", "args": [], "type": {"kind": "SCALAR", "name": "String"}},
            {"name": "born", "args": [], "type": {"kind": "SCALAR", "name": "Date"}}
          ],
          "interfaces": [{"kind": "INTERFACE", "name": "Pet"}]
        },
        {
          "kind": "UNION",
          "name": "Result",
          "possibleTypes": [{"kind": "OBJECT", "name": "Dog"}]
        },
        {
          "kind": "ENUM",
          "name": "Color",
          "enumValues": [
            {"name": "RED", "description": "Red.", "isDeprecated": false},
            {"name": "BLUE", "isDeprecated": true, "deprecationReason": "Gone."}
          ]
        },
        {
          "kind": "INPUT_OBJECT",
          "name": "Filter",
          "inputFields": [
            {"name": "text", "type": {"kind": "SCALAR", "name": "String"}, "defaultValue": "\"any\""}
          ]
        },
        {"kind": "SCALAR", "name": "Date"},
        {"kind": "SCALAR", "name": "String"},
        {"kind": "SCALAR", "name": "Int"},
        {"kind": "SCALAR", "name": "Boolean"},
        {"kind": "OBJECT", "name": "__Schema", "fields": []}
      ],
      "directives": [
        {"name": "skip", "locations": ["FIELD"], "args": [{"name": "if", "type": {"kind": "NON_NULL", "ofType": {"kind": "SCALAR", "name": "Boolean"}}}]},
        {"name": "cached", "description": "Cache hint.", "locations": ["FIELD", "QUERY"], "args": [{"name": "ttl", "type": {"kind": "SCALAR", "name": "Int"}}], "isRepeatable": true}
      ]
    }
  }
}`

func TestIntrospectionSDL(t *testing.T) {
	t.Run("FullResponse", func(t *testing.T) {
		sdl, err := IntrospectionSDL([]byte(introspectionJSON))
		require.NoError(t, err)
		assert.NotContains(t, sdl, "__Schema")
		assert.NotContains(t, sdl, "scalar String")
		assert.NotContains(t, sdl, "directive @skip")

		schema, err := LoadSchemaString("schema.json", sdl)
		require.NoError(t, err)

		assert.Equal(t, "Root", schema.Query.Name)
		pets := schema.Query.Fields.ForName("pets")
		require.NotNil(t, pets)
		assert.Equal(t, "[Pet]!", pets.Type.String())
		assert.Equal(t, "All pets.", pets.Description)
		require.NotNil(t, pets.Arguments.ForName("first"))
		assert.Equal(t, "10", pets.Arguments.ForName("first").DefaultValue.String())

		search := schema.Query.Fields.ForName("search")
		require.NotNil(t, search)
		dep := search.Directives.ForName("deprecated")
		require.NotNil(t, dep)
		assert.Equal(t, "Use pets.", dep.Arguments.ForName("reason").Value.Raw)
		assert.Equal(t, "Filter!", search.Arguments.ForName("filter").Type.String())

		dog := schema.Types["Dog"]
		require.NotNil(t, dog)
		assert.Equal(t, []string{"Pet"}, dog.Interfaces)
		assert.Equal(t, []string{"Dog"}, schema.Types["Result"].Types)

		color := schema.Types["Color"]
		require.NotNil(t, color)
		assert.Equal(t, ast.Enum, color.Kind)
		assert.Equal(t, "Red.", color.EnumValues.ForName("RED").Description)
		assert.NotNil(t, color.EnumValues.ForName("BLUE").Directives.ForName("deprecated"))

		text := schema.Types["Filter"].Fields.ForName("text")
		require.NotNil(t, text)
		assert.Equal(t, ast.StringValue, text.DefaultValue.Kind)
		assert.Equal(t, "any", text.DefaultValue.Raw)

		cached := schema.Directives["cached"]
		require.NotNil(t, cached)
		assert.True(t, cached.IsRepeatable)
		assert.Equal(t, []ast.DirectiveLocation{ast.LocationField, ast.LocationQuery}, cached.Locations)
	})

	t.Run("BareData", func(t *testing.T) {
		sdl, err := IntrospectionSDL([]byte(`{"__schema": {"queryType": {"name": "Query"}, "types": [
			{"kind": "OBJECT", "name": "Query", "fields": [{"name": "ok", "args": [], "type": {"kind": "SCALAR", "name": "Boolean"}}]}
		]}}`))
		require.NoError(t, err)
		schema, err := LoadSchemaString("bare.json", sdl)
		require.NoError(t, err)
		assert.NotNil(t, schema.Query.Fields.ForName("ok"))
	})

	t.Run("NoSchema", func(t *testing.T) {
		_, err := IntrospectionSDL([]byte(`{"data": {}}`))
		assert.ErrorIs(t, err, ErrNoIntrospectionSchema)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := IntrospectionSDL([]byte(`{`))
		assert.Error(t, err)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := IntrospectionSDL([]byte(`{"__schema": {"types": [{"kind": "WIDGET", "name": "W"}]}}`))
		assert.ErrorContains(t, err, "WIDGET")
	})

	t.Run("MissingTypeRef", func(t *testing.T) {
		_, err := IntrospectionSDL([]byte(`{"__schema": {"types": [
			{"kind": "OBJECT", "name": "Q", "fields": [{"name": "f", "args": []}]}
		]}}`))
		assert.ErrorContains(t, err, "Q.f")
	})
}
