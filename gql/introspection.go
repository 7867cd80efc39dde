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
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// ErrNoIntrospectionSchema is returned when an introspection result has no
// __schema object.
var ErrNoIntrospectionSchema = errors.New("introspection result has no __schema")

type introspectionResult struct {
	Data *struct {
		Schema *introspectionSchema `json:"__schema"`
	} `json:"data"`
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	Description      string                   `json:"description"`
	QueryType        *introspectionTypeRef    `json:"queryType"`
	MutationType     *introspectionTypeRef    `json:"mutationType"`
	SubscriptionType *introspectionTypeRef    `json:"subscriptionType"`
	Types            []introspectionType      `json:"types"`
	Directives       []introspectionDirective `json:"directives"`
}

type introspectionTypeRef struct {
	Kind   string                `json:"kind"`
	Name   string                `json:"name"`
	OfType *introspectionTypeRef `json:"ofType"`
}

type introspectionType struct {
	Kind          string                    `json:"kind"`
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	Fields        []introspectionField      `json:"fields"`
	InputFields   []introspectionInputValue `json:"inputFields"`
	Interfaces    []introspectionTypeRef    `json:"interfaces"`
	EnumValues    []introspectionEnumValue  `json:"enumValues"`
	PossibleTypes []introspectionTypeRef    `json:"possibleTypes"`
}

type introspectionField struct {
	Name              string                    `json:"name"`
	Description       string                    `json:"description"`
	Args              []introspectionInputValue `json:"args"`
	Type              *introspectionTypeRef     `json:"type"`
	IsDeprecated      bool                      `json:"isDeprecated"`
	DeprecationReason *string                   `json:"deprecationReason"`
}

type introspectionInputValue struct {
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	Type              *introspectionTypeRef `json:"type"`
	DefaultValue      *string               `json:"defaultValue"`
	IsDeprecated      bool                  `json:"isDeprecated"`
	DeprecationReason *string               `json:"deprecationReason"`
}

type introspectionEnumValue struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

type introspectionDirective struct {
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	Locations    []string                  `json:"locations"`
	Args         []introspectionInputValue `json:"args"`
	IsRepeatable bool                      `json:"isRepeatable"`
}

// builtinNames are the types and directives every schema gets from the
// prelude. An introspection result lists them too.
var builtinNames = map[string]bool{
	"String": true, "Int": true, "Float": true, "Boolean": true, "ID": true,
	"include": true, "skip": true, "deprecated": true, "specifiedBy": true,
	"defer": true, "oneOf": true,
}

// IntrospectionSDL converts the JSON result of an introspection query into
// SDL. Both the full response ({"data": {"__schema": ...}}) and the bare
// data object are accepted.
func IntrospectionSDL(data []byte) (string, error) {
	var res introspectionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return "", fmt.Errorf("decode introspection result: %w", err)
	}
	schema := res.Schema
	if schema == nil && res.Data != nil {
		schema = res.Data.Schema
	}
	if schema == nil {
		return "", ErrNoIntrospectionSchema
	}

	doc, err := schema.document()
	if err != nil {
		return "", err
	}
	// Built-in names are already dropped; the document carries no positions
	// for the formatter to recognize them by.
	var sb strings.Builder
	formatter.NewFormatter(&sb, formatter.WithBuiltin()).FormatSchemaDocument(doc)
	return sb.String(), nil
}

func (s *introspectionSchema) document() (*ast.SchemaDocument, error) {
	doc := &ast.SchemaDocument{}

	def := &ast.SchemaDefinition{Description: s.Description}
	for _, root := range []struct {
		op  ast.Operation
		ref *introspectionTypeRef
	}{
		{ast.Query, s.QueryType},
		{ast.Mutation, s.MutationType},
		{ast.Subscription, s.SubscriptionType},
	} {
		if root.ref != nil && root.ref.Name != "" {
			def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{
				Operation: root.op,
				Type:      root.ref.Name,
			})
		}
	}
	if len(def.OperationTypes) > 0 {
		doc.Schema = append(doc.Schema, def)
	}

	for _, t := range s.Types {
		if strings.HasPrefix(t.Name, "__") || builtinNames[t.Name] {
			continue
		}
		d, err := t.definition()
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, d)
	}

	for _, d := range s.Directives {
		if builtinNames[d.Name] {
			continue
		}
		args, err := argumentDefinitions(d.Args)
		if err != nil {
			return nil, fmt.Errorf("directive @%s: %w", d.Name, err)
		}
		dd := &ast.DirectiveDefinition{
			Description:  d.Description,
			Name:         d.Name,
			Arguments:    args,
			IsRepeatable: d.IsRepeatable,
		}
		for _, loc := range d.Locations {
			dd.Locations = append(dd.Locations, ast.DirectiveLocation(loc))
		}
		doc.Directives = append(doc.Directives, dd)
	}
	return doc, nil
}

func (t *introspectionType) definition() (*ast.Definition, error) {
	def := &ast.Definition{
		Kind:        ast.DefinitionKind(t.Kind),
		Name:        t.Name,
		Description: t.Description,
	}
	switch def.Kind {
	case ast.Scalar:
	case ast.Object, ast.Interface:
		for _, ref := range t.Interfaces {
			def.Interfaces = append(def.Interfaces, ref.Name)
		}
		for _, f := range t.Fields {
			typ, err := f.Type.astType()
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
			}
			args, err := argumentDefinitions(f.Args)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
			}
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        f.Name,
				Description: f.Description,
				Arguments:   args,
				Type:        typ,
				Directives:  deprecatedDirective(f.IsDeprecated, f.DeprecationReason),
			})
		}
	case ast.Union:
		for _, ref := range t.PossibleTypes {
			def.Types = append(def.Types, ref.Name)
		}
	case ast.Enum:
		for _, v := range t.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{
				Name:        v.Name,
				Description: v.Description,
				Directives:  deprecatedDirective(v.IsDeprecated, v.DeprecationReason),
			})
		}
	case ast.InputObject:
		for _, v := range t.InputFields {
			typ, err := v.Type.astType()
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name, v.Name, err)
			}
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:         v.Name,
				Description:  v.Description,
				Type:         typ,
				DefaultValue: literalValue(v.DefaultValue),
				Directives:   deprecatedDirective(v.IsDeprecated, v.DeprecationReason),
			})
		}
	default:
		return nil, fmt.Errorf("type %s: unknown kind %q", t.Name, t.Kind)
	}
	return def, nil
}

func argumentDefinitions(values []introspectionInputValue) (ast.ArgumentDefinitionList, error) {
	var args ast.ArgumentDefinitionList
	for _, v := range values {
		typ, err := v.Type.astType()
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", v.Name, err)
		}
		args = append(args, &ast.ArgumentDefinition{
			Name:         v.Name,
			Description:  v.Description,
			Type:         typ,
			DefaultValue: literalValue(v.DefaultValue),
			Directives:   deprecatedDirective(v.IsDeprecated, v.DeprecationReason),
		})
	}
	return args, nil
}

func (ref *introspectionTypeRef) astType() (*ast.Type, error) {
	if ref == nil {
		return nil, errors.New("missing type reference")
	}
	switch ref.Kind {
	case "NON_NULL":
		elem, err := ref.OfType.astType()
		if err != nil {
			return nil, err
		}
		nonNull := *elem
		nonNull.NonNull = true
		return &nonNull, nil
	case "LIST":
		elem, err := ref.OfType.astType()
		if err != nil {
			return nil, err
		}
		return ast.ListType(elem, nil), nil
	}
	if ref.Name == "" {
		return nil, fmt.Errorf("unnamed %s type reference", ref.Kind)
	}
	return ast.NamedType(ref.Name, nil), nil
}

// literalValue wraps a default value, which introspection reports as GraphQL
// source text, so that it is printed verbatim.
func literalValue(raw *string) *ast.Value {
	if raw == nil {
		return nil
	}
	return &ast.Value{Kind: ast.EnumValue, Raw: *raw}
}

func deprecatedDirective(deprecated bool, reason *string) ast.DirectiveList {
	if !deprecated {
		return nil
	}
	d := &ast.Directive{Name: "deprecated"}
	if reason != nil {
		d.Arguments = ast.ArgumentList{{
			Name:  "reason",
			Value: &ast.Value{Kind: ast.StringValue, Raw: *reason},
		}}
	}
	return ast.DirectiveList{d}
}
