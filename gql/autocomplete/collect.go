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
	"fmt"

	"github.com/goplus/gqlls/gql/gqlutil"
	"github.com/goplus/gqlls/gql/onlineparser"
	"github.com/vektah/gqlparser/v2/ast"
)

// documentKeywords are the tokens that can start a top-level definition.
var documentKeywords = []string{"query", "mutation", "subscription", "fragment", "{"}

// collectDocument collects top-level definition keywords.
func (ctx *completionContext) collectDocument() []Suggestion {
	ret := make([]Suggestion, 0, len(documentKeywords))
	for _, kw := range documentKeywords {
		ret = append(ret, Suggestion{Label: kw, Kind: SuggestionKeyword})
	}
	return ret
}

func fieldSuggestion(f *ast.FieldDefinition, kind SuggestionKind) Suggestion {
	deprecated, reason := gqlutil.Deprecation(f.Directives)
	return Suggestion{
		Label:             f.Name,
		Type:              f.Type,
		Detail:            f.Type.String(),
		Documentation:     f.Description,
		IsDeprecated:      deprecated,
		DeprecationReason: reason,
		Kind:              kind,
	}
}

// collectFields collects the fields selectable on the parent type.
func (ctx *completionContext) collectFields() []Suggestion {
	parent := ctx.typeInfo.ParentType
	if parent == nil {
		return nil
	}

	fields := gqlutil.Fields(parent)
	ret := make([]Suggestion, 0, len(fields)+3)
	for _, f := range fields {
		ret = append(ret, fieldSuggestion(f, SuggestionField))
	}
	if gqlutil.IsAbstract(parent) {
		ret = append(ret, fieldSuggestion(gqlutil.TypenameMetaField, SuggestionField))
	}
	if gqlutil.IsQueryRoot(ctx.schema, parent) {
		ret = append(ret,
			fieldSuggestion(gqlutil.SchemaMetaField, SuggestionField),
			fieldSuggestion(gqlutil.TypeMetaField, SuggestionField),
		)
	}
	return ret
}

// collectArguments collects the arguments of the field or directive in
// scope.
func (ctx *completionContext) collectArguments() []Suggestion {
	args := ctx.typeInfo.ArgDefs
	if args == nil {
		return nil
	}
	ret := make([]Suggestion, 0, len(args))
	for _, arg := range args {
		deprecated, reason := gqlutil.Deprecation(arg.Directives)
		ret = append(ret, Suggestion{
			Label:             arg.Name,
			Type:              arg.Type,
			Detail:            arg.Type.String(),
			Documentation:     arg.Description,
			IsDeprecated:      deprecated,
			DeprecationReason: reason,
			Kind:              SuggestionArgument,
		})
	}
	return ret
}

// collectObjectFields collects the fields of the input object in scope.
func (ctx *completionContext) collectObjectFields() []Suggestion {
	fields := ctx.typeInfo.ObjectFieldDefs
	if fields == nil {
		return nil
	}
	ret := make([]Suggestion, 0, len(fields))
	for _, f := range fields {
		ret = append(ret, fieldSuggestion(f, SuggestionInputField))
	}
	return ret
}

// collectInputValues collects the literal values of an enum or Boolean
// input type.
func (ctx *completionContext) collectInputValues() []Suggestion {
	def := gqlutil.NamedDefinition(ctx.schema, ctx.typeInfo.InputType)
	switch {
	case def == nil:
		return nil
	case def.Kind == ast.Enum:
		ret := make([]Suggestion, 0, len(def.EnumValues))
		for _, v := range def.EnumValues {
			deprecated, reason := gqlutil.Deprecation(v.Directives)
			ret = append(ret, Suggestion{
				Label:             v.Name,
				Type:              gqlutil.TypeOf(def),
				Detail:            def.Name,
				Documentation:     v.Description,
				IsDeprecated:      deprecated,
				DeprecationReason: reason,
				Kind:              SuggestionEnumValue,
			})
		}
		return ret
	case gqlutil.IsBoolean(def):
		typ := gqlutil.TypeOf(def)
		return []Suggestion{
			{Label: "true", Type: typ, Detail: def.Name, Documentation: "Not false.", Kind: SuggestionValue},
			{Label: "false", Type: typ, Detail: def.Name, Documentation: "Not true.", Kind: SuggestionValue},
		}
	}
	return nil
}

func typeSuggestion(def *ast.Definition) Suggestion {
	return Suggestion{
		Label:         def.Name,
		Type:          gqlutil.TypeOf(def),
		Documentation: def.Description,
		Kind:          SuggestionType,
	}
}

// collectTypeConditions collects the types a fragment in the current
// selection set may be conditioned on.
func (ctx *completionContext) collectTypeConditions() []Suggestion {
	parent := ctx.typeInfo.ParentType

	var possible []*ast.Definition
	switch {
	case parent == nil:
		for _, def := range gqlutil.Types(ctx.schema) {
			if gqlutil.IsComposite(def) {
				possible = append(possible, def)
			}
		}
	case gqlutil.IsAbstract(parent):
		objects := gqlutil.PossibleTypes(ctx.schema, parent)
		possible = append(possible, objects...)

		seen := make(map[string]struct{})
		for _, obj := range objects {
			for _, name := range obj.Interfaces {
				if _, ok := seen[name]; ok {
					continue
				}
				seen[name] = struct{}{}
				if iface := gqlutil.LookupType(ctx.schema, name); iface != nil {
					possible = append(possible, iface)
				}
			}
		}
	default:
		possible = []*ast.Definition{parent}
	}

	ret := make([]Suggestion, 0, len(possible))
	for _, def := range possible {
		ret = append(ret, typeSuggestion(def))
	}
	return ret
}

// FragmentDefinition is a fragment definition found in a document.
type FragmentDefinition struct {
	Name          string
	TypeCondition string
}

// fragmentCollector gathers fragment definitions during a scan.
type fragmentCollector struct {
	defs []FragmentDefinition
	seen map[string]struct{}
}

func (c *fragmentCollector) visit(sc *ScanContext) bool {
	st := sc.State
	if st.Kind != onlineparser.KindFragmentDefinition || st.Name == "" || st.Type == "" {
		return true
	}
	if _, ok := c.seen[st.Name]; ok {
		return true
	}
	c.seen[st.Name] = struct{}{}
	c.defs = append(c.defs, FragmentDefinition{Name: st.Name, TypeCondition: st.Type})
	return true
}

// FragmentDefinitions returns the fragment definitions of text in document
// order. A fragment defined more than once is reported once.
func FragmentDefinitions(text string) []FragmentDefinition {
	c := &fragmentCollector{seen: make(map[string]struct{})}
	RunOnlineParser(text, c.visit)
	return c.defs
}

// definitionState returns the innermost operation or fragment definition
// enclosing st.
func definitionState(st *onlineparser.State) *onlineparser.State {
	for ; st != nil && st.Kind != onlineparser.KindNone; st = st.PrevState {
		switch st.Kind {
		case onlineparser.KindQuery,
			onlineparser.KindShortQuery,
			onlineparser.KindMutation,
			onlineparser.KindSubscription,
			onlineparser.KindFragmentDefinition:
			return st
		}
	}
	return nil
}

// collectFragmentSpreads collects the fragments of the document that can
// be spread into the current selection set.
func (ctx *completionContext) collectFragmentSpreads() []Suggestion {
	parent := ctx.typeInfo.ParentType
	if !gqlutil.IsComposite(parent) {
		return nil
	}

	defState := definitionState(ctx.state)
	var ret []Suggestion
	for _, frag := range FragmentDefinitions(ctx.text) {
		typ := gqlutil.LookupType(ctx.schema, frag.TypeCondition)
		if typ == nil {
			continue
		}
		if defState != nil && defState.Kind == onlineparser.KindFragmentDefinition && defState.Name == frag.Name {
			continue
		}
		if !gqlutil.IsComposite(typ) || !gqlutil.DoTypesOverlap(ctx.schema, parent, typ) {
			continue
		}
		ret = append(ret, Suggestion{
			Label:         frag.Name,
			Type:          gqlutil.TypeOf(typ),
			Detail:        typ.Name,
			Documentation: fmt.Sprintf("fragment %s on %s", frag.Name, frag.TypeCondition),
			Kind:          SuggestionFragment,
		})
	}
	return ret
}

// collectVariableTypes collects the types usable for a variable.
func (ctx *completionContext) collectVariableTypes() []Suggestion {
	var ret []Suggestion
	for _, def := range gqlutil.Types(ctx.schema) {
		if gqlutil.IsInput(def) {
			ret = append(ret, typeSuggestion(def))
		}
	}
	return ret
}

// directiveLocations maps the construct owning a directive to its location.
var directiveLocations = map[onlineparser.Kind]ast.DirectiveLocation{
	onlineparser.KindQuery:              ast.LocationQuery,
	onlineparser.KindMutation:           ast.LocationMutation,
	onlineparser.KindSubscription:       ast.LocationSubscription,
	onlineparser.KindField:              ast.LocationField,
	onlineparser.KindAliasedField:       ast.LocationField,
	onlineparser.KindFragmentDefinition: ast.LocationFragmentDefinition,
	onlineparser.KindFragmentSpread:     ast.LocationFragmentSpread,
	onlineparser.KindInlineFragment:     ast.LocationInlineFragment,
}

// collectDirectives collects the directives allowed on the construct the
// directive is attached to.
func (ctx *completionContext) collectDirectives() []Suggestion {
	owner := ctx.state.PrevState
	if owner == nil || owner.Kind == onlineparser.KindNone {
		return nil
	}
	loc, ok := directiveLocations[owner.Kind]
	if !ok {
		return nil
	}

	var ret []Suggestion
	for _, dir := range gqlutil.Directives(ctx.schema) {
		if !gqlutil.HasLocation(dir, loc) {
			continue
		}
		ret = append(ret, Suggestion{
			Label:         dir.Name,
			Documentation: dir.Description,
			Kind:          SuggestionDirective,
		})
	}
	return ret
}
