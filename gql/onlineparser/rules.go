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

package onlineparser

import "regexp"

// Lexical rules, tried in order.
var (
	nameRE        = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*`)
	punctuationRE = regexp.MustCompile(`^(?:!|\$|\(|\)|\.\.\.|:|=|&|@|\[|\]|\{|\||\})`)
	numberRE      = regexp.MustCompile(`^-?(?:0|(?:[1-9][0-9]*))(?:\.[0-9]*)?(?:[eE][+-]?[0-9]+)?`)
	stringRE      = regexp.MustCompile(`^(?:"""(?:\\"""|[^"]|"[^"]|""[^"])*(?:""")?|"(?:[^"\\]|\\(?:"|/|\\|b|f|n|r|t|u[0-9a-fA-F]{4}))*"?)`)
	commentRE     = regexp.MustCompile(`^#.*`)

	lexRules = []struct {
		kind TokenKind
		re   *regexp.Regexp
	}{
		{TokenName, nameRE},
		{TokenPunctuation, punctuationRE},
		{TokenNumber, numberRE},
		{TokenString, stringRE},
		{TokenComment, commentRE},
	}
)

var (
	blockStringEndRE = regexp.MustCompile(`^.*"""`)
	nonSpaceRE       = regexp.MustCompile(`^\S+`)
	spaceRE          = regexp.MustCompile(`^\s`)

	inlineFragmentAheadRE = regexp.MustCompile(`^[\s\x{00a0},]*(?:on\b|@|\{)`)
	aliasAheadRE          = regexp.MustCompile(`^[\s\x{00a0},]*:`)
)

// IsIgnored reports whether r is insignificant between tokens.
func IsIgnored(r rune) bool {
	switch r {
	case ' ', '\t', ',', '\n', '\r', '\uFEFF', '\u00A0':
		return true
	}
	return false
}

// lex reads the next token from s.
func lex(s *Stream) (Token, bool) {
	for _, lr := range lexRules {
		if m, ok := s.Match(lr.re, true); ok {
			return Token{Kind: lr.kind, Value: m}, true
		}
	}
	return Token{}, false
}

// terminal matches a single token.
type terminal struct {
	style  Style
	match  func(tok Token) bool
	update func(st *State, tok Token)
}

// step is one element of a sequence rule. Exactly one of kind and term is
// set.
type step struct {
	kind Kind
	term *terminal

	optional bool // set for both opt and list
	list     bool
	sep      *terminal
}

// rule is either a fork choosing a sub-rule from the first token, or a
// sequence of steps. A rule with neither is empty and pops on the next
// token.
type rule struct {
	fork  func(tok Token, s *Stream) Kind
	steps []step
}

func (r *rule) isEmpty() bool {
	return r.fork == nil && len(r.steps) == 0
}

func seq(steps ...step) *rule {
	return &rule{steps: steps}
}

func fork(fn func(tok Token, s *Stream) Kind) *rule {
	return &rule{fork: fn}
}

// sub refers to another rule.
func sub(kind Kind) step {
	return step{kind: kind}
}

func term(t *terminal) step {
	return step{term: t}
}

func opt(s step) step {
	s.optional = true
	return s
}

func list(s step, sep ...*terminal) step {
	s.optional = true
	s.list = true
	if len(sep) > 0 {
		s.sep = sep[0]
	}
	return s
}

// p matches a punctuator.
func p(value string, style ...Style) *terminal {
	st := StylePunctuation
	if len(style) > 0 {
		st = style[0]
	}
	return &terminal{
		style: st,
		match: func(tok Token) bool {
			return tok.Kind == TokenPunctuation && tok.Value == value
		},
	}
}

// t matches any token of the given kind.
func t(kind TokenKind, style Style) *terminal {
	return &terminal{
		style: style,
		match: func(tok Token) bool { return tok.Kind == kind },
	}
}

// word matches a keyword.
func word(value string) *terminal {
	return &terminal{
		style: StyleKeyword,
		match: func(tok Token) bool {
			return tok.Kind == TokenName && tok.Value == value
		},
	}
}

// name matches a name and records it on the state.
func name(style Style) *terminal {
	return &terminal{
		style: style,
		match: func(tok Token) bool { return tok.Kind == TokenName },
		update: func(st *State, tok Token) {
			st.Name = tok.Value
		},
	}
}

// typeName matches a named type reference and records it as the type of
// the construct two levels up (for example the fragment owning a type
// condition).
func typeName(style Style) *terminal {
	return &terminal{
		style: style,
		match: func(tok Token) bool { return tok.Kind == TokenName },
		update: func(st *State, tok Token) {
			if st.PrevState == nil || st.PrevState.PrevState == nil {
				return
			}
			st.Name = tok.Value
			grand := *st.PrevState.PrevState
			grand.Type = tok.Value
			parent := *st.PrevState
			parent.PrevState = &grand
			st.PrevState = &parent
		},
	}
}

// butNot matches what base matches except tokens matched by an exclusion.
func butNot(base *terminal, exclusions ...*terminal) *terminal {
	return &terminal{
		style: base.style,
		match: func(tok Token) bool {
			if !base.match(tok) {
				return false
			}
			for _, ex := range exclusions {
				if ex.match(tok) {
					return false
				}
			}
			return true
		},
		update: base.update,
	}
}

var stringValue = &terminal{
	style: StyleString,
	match: func(tok Token) bool { return tok.Kind == TokenString },
	update: func(st *State, tok Token) {
		if len(tok.Value) >= 3 && tok.Value[:3] == `"""` {
			rest := tok.Value[3:]
			st.inBlockString = len(rest) < 3 || rest[len(rest)-3:] != `"""`
		}
	},
}

func operation(keyword string) *rule {
	return seq(
		term(word(keyword)),
		opt(term(name(StyleDef))),
		opt(sub(KindVariableDefinitions)),
		list(sub(KindDirective)),
		sub(KindSelectionSet),
	)
}

var rules [kindCount]*rule

func init() {
	rules = [kindCount]*rule{
		KindInvalid: {},
		KindComment: {},

		KindDocument: seq(list(sub(KindDefinition))),
		KindDefinition: fork(func(tok Token, _ *Stream) Kind {
			switch tok.Value {
			case "{":
				return KindShortQuery
			case "query":
				return KindQuery
			case "mutation":
				return KindMutation
			case "subscription":
				return KindSubscription
			case "fragment":
				return KindFragmentDefinition
			case "schema":
				return KindSchemaDef
			case "scalar":
				return KindScalarDef
			case "type":
				return KindObjectTypeDef
			case "interface":
				return KindInterfaceDef
			case "union":
				return KindUnionDef
			case "enum":
				return KindEnumDef
			case "input":
				return KindInputDef
			case "extend":
				return KindExtendDef
			case "directive":
				return KindDirectiveDef
			}
			return KindNone
		}),
		KindShortQuery:          seq(sub(KindSelectionSet)),
		KindQuery:               operation("query"),
		KindMutation:            operation("mutation"),
		KindSubscription:        operation("subscription"),
		KindVariableDefinitions: seq(term(p("(")), list(sub(KindVariableDefinition)), term(p(")"))),
		KindVariableDefinition:  seq(sub(KindVariable), term(p(":")), sub(KindType), opt(sub(KindDefaultValue))),
		KindVariable:            seq(term(p("$", StyleVariable)), term(name(StyleVariable))),
		KindDefaultValue:        seq(term(p("=")), sub(KindValue)),
		KindSelectionSet:        seq(term(p("{")), list(sub(KindSelection)), term(p("}"))),
		KindSelection: fork(func(tok Token, s *Stream) Kind {
			if tok.Value == "..." {
				if _, ok := s.Match(inlineFragmentAheadRE, false); ok {
					return KindInlineFragment
				}
				return KindFragmentSpread
			}
			if _, ok := s.Match(aliasAheadRE, false); ok {
				return KindAliasedField
			}
			return KindField
		}),
		KindAliasedField: seq(
			term(name(StyleProperty)),
			term(p(":")),
			term(name(StyleQualifier)),
			opt(sub(KindArguments)),
			list(sub(KindDirective)),
			opt(sub(KindSelectionSet)),
		),
		KindField: seq(
			term(name(StyleProperty)),
			opt(sub(KindArguments)),
			list(sub(KindDirective)),
			opt(sub(KindSelectionSet)),
		),
		KindArguments:      seq(term(p("(")), list(sub(KindArgument)), term(p(")"))),
		KindArgument:       seq(term(name(StyleAttribute)), term(p(":")), sub(KindValue)),
		KindFragmentSpread: seq(term(p("...")), term(name(StyleDef)), list(sub(KindDirective))),
		KindInlineFragment: seq(
			term(p("...")),
			opt(sub(KindTypeCondition)),
			list(sub(KindDirective)),
			sub(KindSelectionSet),
		),
		KindFragmentDefinition: seq(
			term(word("fragment")),
			opt(term(butNot(name(StyleDef), word("on")))),
			sub(KindTypeCondition),
			list(sub(KindDirective)),
			sub(KindSelectionSet),
		),
		KindTypeCondition: seq(term(word("on")), sub(KindNamedType)),

		KindValue: fork(func(tok Token, _ *Stream) Kind {
			switch tok.Kind {
			case TokenNumber:
				return KindNumberValue
			case TokenString:
				return KindStringValue
			case TokenPunctuation:
				switch tok.Value {
				case "[":
					return KindListValue
				case "{":
					return KindObjectValue
				case "$":
					return KindVariable
				case "&":
					return KindNamedType
				}
				return KindNone
			case TokenName:
				switch tok.Value {
				case "true", "false":
					return KindBooleanValue
				case "null":
					return KindNullValue
				}
				return KindEnumValue
			}
			return KindNone
		}),
		KindNumberValue:  seq(term(t(TokenNumber, StyleNumber))),
		KindStringValue:  seq(term(stringValue)),
		KindBooleanValue: seq(term(t(TokenName, StyleBuiltin))),
		KindNullValue:    seq(term(t(TokenName, StyleKeyword))),
		KindEnumValue:    seq(term(name(StyleString2))),
		KindListValue:    seq(term(p("[")), list(sub(KindValue)), term(p("]"))),
		KindObjectValue:  seq(term(p("{")), list(sub(KindObjectField)), term(p("}"))),
		KindObjectField:  seq(term(name(StyleAttribute)), term(p(":")), sub(KindValue)),

		KindType: fork(func(tok Token, _ *Stream) Kind {
			if tok.Value == "[" {
				return KindListType
			}
			return KindNonNullType
		}),
		KindListType:    seq(term(p("[")), sub(KindType), term(p("]")), opt(term(p("!")))),
		KindNonNullType: seq(sub(KindNamedType), opt(term(p("!")))),
		KindNamedType:   seq(term(typeName(StyleAtom))),

		KindDirective: seq(term(p("@", StyleMeta)), term(name(StyleMeta)), opt(sub(KindArguments))),

		KindDirectiveDef: seq(
			term(word("directive")),
			term(p("@", StyleMeta)),
			term(name(StyleMeta)),
			opt(sub(KindArgumentsDef)),
			term(word("on")),
			list(sub(KindDirectiveLocation), p("|")),
		),
		KindInterfaceDef: seq(
			term(word("interface")),
			term(name(StyleAtom)),
			opt(sub(KindImplements)),
			list(sub(KindDirective)),
			term(p("{")),
			list(sub(KindFieldDef)),
			term(p("}")),
		),
		KindImplements:        seq(term(word("implements")), list(sub(KindNamedType), p("&"))),
		KindDirectiveLocation: seq(term(name(StyleString2))),
		KindSchemaDef: seq(
			term(word("schema")),
			list(sub(KindDirective)),
			term(p("{")),
			list(sub(KindOperationTypeDef)),
			term(p("}")),
		),
		KindOperationTypeDef: seq(term(name(StyleKeyword)), term(p(":")), term(name(StyleAtom))),
		KindScalarDef:        seq(term(word("scalar")), term(name(StyleAtom)), list(sub(KindDirective))),
		KindObjectTypeDef: seq(
			term(word("type")),
			term(name(StyleAtom)),
			opt(sub(KindImplements)),
			list(sub(KindDirective)),
			term(p("{")),
			list(sub(KindFieldDef)),
			term(p("}")),
		),
		KindFieldDef: seq(
			term(name(StyleProperty)),
			opt(sub(KindArgumentsDef)),
			term(p(":")),
			sub(KindType),
			list(sub(KindDirective)),
		),
		KindArgumentsDef: seq(term(p("(")), list(sub(KindInputValueDef)), term(p(")"))),
		KindInputValueDef: seq(
			term(name(StyleAttribute)),
			term(p(":")),
			sub(KindType),
			opt(sub(KindDefaultValue)),
			list(sub(KindDirective)),
		),
		KindUnionDef: seq(
			term(word("union")),
			term(name(StyleAtom)),
			list(sub(KindDirective)),
			term(p("=")),
			list(sub(KindUnionMember), p("|")),
		),
		KindUnionMember: seq(sub(KindNamedType)),
		KindEnumDef: seq(
			term(word("enum")),
			term(name(StyleAtom)),
			list(sub(KindDirective)),
			term(p("{")),
			list(sub(KindEnumValueDef)),
			term(p("}")),
		),
		KindEnumValueDef: seq(term(name(StyleString2)), list(sub(KindDirective))),
		KindInputDef: seq(
			term(word("input")),
			term(name(StyleAtom)),
			list(sub(KindDirective)),
			term(p("{")),
			list(sub(KindInputValueDef)),
			term(p("}")),
		),
		KindExtendDef: seq(term(word("extend")), sub(KindExtensionDefinition)),
		KindExtensionDefinition: fork(func(tok Token, _ *Stream) Kind {
			switch tok.Value {
			case "schema":
				return KindSchemaDef
			case "scalar":
				return KindScalarDef
			case "type":
				return KindObjectTypeDef
			case "interface":
				return KindInterfaceDef
			case "union":
				return KindUnionDef
			case "enum":
				return KindEnumDef
			case "input":
				return KindInputDef
			}
			return KindNone
		}),
	}
}
