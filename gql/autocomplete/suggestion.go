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
	"strings"

	"github.com/goplus/gqlls/gql/onlineparser"
	"github.com/vektah/gqlparser/v2/ast"
)

// SuggestionKind classifies a [Suggestion].
type SuggestionKind int

const (
	SuggestionKeyword SuggestionKind = iota + 1
	SuggestionField
	SuggestionArgument
	SuggestionInputField
	SuggestionEnumValue
	SuggestionValue
	SuggestionType
	SuggestionFragment
	SuggestionDirective
)

// String returns a lower-case name of the kind.
func (k SuggestionKind) String() string {
	switch k {
	case SuggestionKeyword:
		return "keyword"
	case SuggestionField:
		return "field"
	case SuggestionArgument:
		return "argument"
	case SuggestionInputField:
		return "input field"
	case SuggestionEnumValue:
		return "enum value"
	case SuggestionValue:
		return "value"
	case SuggestionType:
		return "type"
	case SuggestionFragment:
		return "fragment"
	case SuggestionDirective:
		return "directive"
	}
	return "unknown"
}

// Suggestion is a completion candidate.
type Suggestion struct {
	Label string

	// Type is the schema type associated with the candidate, if any.
	Type *ast.Type

	Detail            string
	Documentation     string
	IsDeprecated      bool
	DeprecationReason string
	Kind              SuggestionKind
}

// isPunctuation reports whether text consists of punctuators only.
func isPunctuation(text string) bool {
	return strings.Trim(text, "!$():=&@[]{|}.") == ""
}

// hintList filters candidates by before, the token text before the cursor,
// with ignored characters trimmed. All candidates pass when that text is
// empty or punctuation only. Otherwise a candidate passes when its label
// starts with the text. The order of candidates is kept.
func hintList(before string, candidates []Suggestion) []Suggestion {
	text := strings.TrimFunc(before, onlineparser.IsIgnored)
	ret := make([]Suggestion, 0, len(candidates))
	if isPunctuation(text) {
		return append(ret, candidates...)
	}
	for _, c := range candidates {
		if strings.HasPrefix(c.Label, text) {
			ret = append(ret, c)
		}
	}
	return ret
}
