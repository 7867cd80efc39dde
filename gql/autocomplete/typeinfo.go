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
	"slices"

	"github.com/goplus/gqlls/gql/gqlutil"
	"github.com/goplus/gqlls/gql/onlineparser"
	"github.com/vektah/gqlparser/v2/ast"
)

// TypeInfo is the schema context at a parser state. A nil field means the
// information is unknown at that point.
type TypeInfo struct {
	// Type is the type of the innermost operation, fragment, field or named
	// type reference.
	Type *ast.Type

	// ParentType is the named type of the innermost selection set.
	ParentType *ast.Definition

	// InputType is the expected type of the innermost input value.
	InputType *ast.Type

	DirectiveDef    *ast.DirectiveDefinition
	FieldDef        *ast.FieldDefinition
	ArgDef          *ast.ArgumentDefinition
	ArgDefs         ast.ArgumentDefinitionList
	ObjectFieldDefs ast.FieldList
	EnumValue       *ast.EnumValueDefinition
}

// stateChain returns the states enclosing state, outermost first.
func stateChain(state *onlineparser.State) []*onlineparser.State {
	var chain []*onlineparser.State
	for st := state; st != nil && st.Kind != onlineparser.KindNone; st = st.PrevState {
		chain = append(chain, st)
	}
	slices.Reverse(chain)
	return chain
}

// ResolveTypeInfo folds the state chain ending at state, outermost first,
// into the schema context valid at state. It does not modify state.
func ResolveTypeInfo(schema *ast.Schema, state *onlineparser.State) *TypeInfo {
	info := &TypeInfo{}
	if schema == nil {
		return info
	}
	for _, st := range stateChain(state) {
		info.enter(schema, st)
	}
	return info
}

// enter updates info for entering st.
func (info *TypeInfo) enter(schema *ast.Schema, st *onlineparser.State) {
	switch st.Kind {
	case onlineparser.KindQuery, onlineparser.KindShortQuery:
		info.Type = gqlutil.TypeOf(schema.Query)
	case onlineparser.KindMutation:
		info.Type = gqlutil.TypeOf(schema.Mutation)
	case onlineparser.KindSubscription:
		info.Type = gqlutil.TypeOf(schema.Subscription)
	case onlineparser.KindInlineFragment, onlineparser.KindFragmentDefinition:
		if st.Type != "" {
			info.Type = gqlutil.TypeOf(gqlutil.LookupType(schema, st.Type))
		}
	case onlineparser.KindField, onlineparser.KindAliasedField:
		info.FieldDef = nil
		if info.Type != nil && st.Name != "" {
			info.FieldDef = gqlutil.FieldDef(schema, info.ParentType, st.Name)
		}
		info.Type = nil
		if info.FieldDef != nil {
			info.Type = info.FieldDef.Type
		}
	case onlineparser.KindSelectionSet:
		info.ParentType = gqlutil.NamedDefinition(schema, info.Type)
	case onlineparser.KindDirective:
		info.DirectiveDef = gqlutil.LookupDirective(schema, st.Name)
	case onlineparser.KindArguments:
		info.ArgDefs = info.argumentsOf(schema, st.PrevState)
	case onlineparser.KindArgument:
		info.ArgDef = nil
		if st.Name != "" {
			info.ArgDef = info.ArgDefs.ForName(st.Name)
		}
		info.InputType = nil
		if info.ArgDef != nil {
			info.InputType = info.ArgDef.Type
		}
	case onlineparser.KindEnumValue:
		info.EnumValue = nil
		if def := gqlutil.NamedDefinition(schema, info.InputType); def != nil && def.Kind == ast.Enum {
			info.EnumValue = def.EnumValues.ForName(st.Name)
		}
	case onlineparser.KindListValue:
		info.InputType = gqlutil.ListElem(info.InputType)
	case onlineparser.KindObjectValue:
		info.ObjectFieldDefs = gqlutil.InputFields(gqlutil.NamedDefinition(schema, info.InputType))
	case onlineparser.KindObjectField:
		info.InputType = nil
		if st.Name != "" {
			if f := info.ObjectFieldDefs.ForName(st.Name); f != nil {
				info.InputType = f.Type
			}
		}
	case onlineparser.KindNamedType:
		info.Type = gqlutil.TypeOf(gqlutil.LookupType(schema, st.Name))
	}
}

// argumentsOf returns the argument definitions of the construct owning an
// argument list.
func (info *TypeInfo) argumentsOf(schema *ast.Schema, owner *onlineparser.State) ast.ArgumentDefinitionList {
	if owner == nil {
		return nil
	}
	var args ast.ArgumentDefinitionList
	switch owner.Kind {
	case onlineparser.KindField:
		if info.FieldDef == nil {
			return nil
		}
		args = info.FieldDef.Arguments
	case onlineparser.KindAliasedField:
		field := gqlutil.FieldDef(schema, info.ParentType, owner.Name)
		if field == nil {
			return nil
		}
		args = field.Arguments
	case onlineparser.KindDirective:
		if info.DirectiveDef == nil {
			return nil
		}
		args = info.DirectiveDef.Arguments
	default:
		return nil
	}
	if args == nil {
		return ast.ArgumentDefinitionList{}
	}
	return args
}
