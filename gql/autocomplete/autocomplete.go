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

// Package autocomplete computes context-sensitive completion candidates for
// GraphQL documents.
package autocomplete

import (
	"github.com/goplus/gqlls/gql/onlineparser"
	"github.com/vektah/gqlparser/v2/ast"
)

// GetAutocompleteSuggestions returns the completion candidates for cur in
// text. It never returns nil.
func GetAutocompleteSuggestions(schema *ast.Schema, text string, cur Cursor) []Suggestion {
	tok, before := locateToken(text, cur)

	state := tok.State
	if state != nil && state.Kind == onlineparser.KindInvalid {
		state = state.PrevState
	}
	if state == nil || state.Kind == onlineparser.KindNone || schema == nil {
		return []Suggestion{}
	}

	ctx := &completionContext{
		schema:   schema,
		text:     text,
		token:    tok,
		state:    state,
		typeInfo: ResolveTypeInfo(schema, state),
	}
	ctx.analyze()
	return hintList(before, ctx.collect())
}

// completionKind represents the syntactic position of a cursor.
type completionKind int

const (
	completionKindUnknown completionKind = iota
	completionKindDocument
	completionKindField
	completionKindArgument
	completionKindObjectField
	completionKindInputValue
	completionKindTypeCondition
	completionKindFragmentSpread
	completionKindVariableType
	completionKindDirective
)

// completionContext represents the context for completion operations.
type completionContext struct {
	schema   *ast.Schema
	text     string
	token    ContextToken
	state    *onlineparser.State
	typeInfo *TypeInfo

	kind completionKind
}

// enclosingState returns the state enclosing st, skipping the type forks
// that wrap a named type reference.
func enclosingState(st *onlineparser.State) *onlineparser.State {
	prev := st.PrevState
	for prev != nil && (prev.Kind == onlineparser.KindType || prev.Kind == onlineparser.KindNonNullType) {
		prev = prev.PrevState
	}
	return prev
}

// analyze determines the kind of completion from the kind and step of the
// innermost state.
func (ctx *completionContext) analyze() {
	st := ctx.state
	switch st.Kind {
	case onlineparser.KindDocument:
		ctx.kind = completionKindDocument
	case onlineparser.KindSelectionSet,
		onlineparser.KindField,
		onlineparser.KindAliasedField:
		ctx.kind = completionKindField
	case onlineparser.KindArguments:
		ctx.kind = completionKindArgument
	case onlineparser.KindArgument:
		switch st.Step {
		case 0:
			ctx.kind = completionKindArgument
		case 2:
			ctx.kind = completionKindInputValue
		}
	case onlineparser.KindObjectValue:
		ctx.kind = completionKindObjectField
	case onlineparser.KindObjectField:
		switch st.Step {
		case 0:
			ctx.kind = completionKindObjectField
		case 2:
			ctx.kind = completionKindInputValue
		}
	case onlineparser.KindEnumValue:
		ctx.kind = completionKindInputValue
	case onlineparser.KindListValue:
		if st.Step == 1 {
			ctx.kind = completionKindInputValue
		}
	case onlineparser.KindTypeCondition:
		if st.Step == 1 {
			ctx.kind = completionKindTypeCondition
		}
	case onlineparser.KindNamedType:
		if enclosing := enclosingState(st); enclosing != nil {
			switch enclosing.Kind {
			case onlineparser.KindTypeCondition:
				ctx.kind = completionKindTypeCondition
			case onlineparser.KindVariableDefinition, onlineparser.KindListType:
				ctx.kind = completionKindVariableType
			}
		}
	case onlineparser.KindFragmentSpread:
		if st.Step == 1 {
			ctx.kind = completionKindFragmentSpread
		}
	case onlineparser.KindVariableDefinition:
		if st.Step == 2 {
			ctx.kind = completionKindVariableType
		}
	case onlineparser.KindListType:
		if st.Step == 1 {
			ctx.kind = completionKindVariableType
		}
	case onlineparser.KindDirective:
		ctx.kind = completionKindDirective
	}
}

// collect returns the unfiltered candidates for the completion kind.
func (ctx *completionContext) collect() []Suggestion {
	switch ctx.kind {
	case completionKindDocument:
		return ctx.collectDocument()
	case completionKindField:
		return ctx.collectFields()
	case completionKindArgument:
		return ctx.collectArguments()
	case completionKindObjectField:
		return ctx.collectObjectFields()
	case completionKindInputValue:
		return ctx.collectInputValues()
	case completionKindTypeCondition:
		return ctx.collectTypeConditions()
	case completionKindFragmentSpread:
		return ctx.collectFragmentSpreads()
	case completionKindVariableType:
		return ctx.collectVariableTypes()
	case completionKindDirective:
		return ctx.collectDirectives()
	case completionKindUnknown:
	}
	return nil
}
