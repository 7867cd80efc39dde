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

	"github.com/stretchr/testify/assert"
)

func TestHintList(t *testing.T) {
	candidates := []Suggestion{
		{Label: "first", Documentation: "1st", IsDeprecated: true, DeprecationReason: "old"},
		{Label: "second"},
		{Label: "fifth"},
		{Label: "First"},
	}

	for _, tt := range []struct {
		name string
		text string
		want []string
	}{
		{"Empty", "", []string{"first", "second", "fifth", "First"}},
		{"Whitespace", " \t,", []string{"first", "second", "fifth", "First"}},
		{"Brace", "{", []string{"first", "second", "fifth", "First"}},
		{"Spread", "...", []string{"first", "second", "fifth", "First"}},
		{"Prefix", "fi", []string{"first", "fifth"}},
		{"CaseSensitive", "Fi", []string{"First"}},
		{"Exact", "second", []string{"second"}},
		{"NoMatch", "x", []string{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := hintList(tt.text, candidates)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, labels(got))
		})
	}

	t.Run("MetadataKept", func(t *testing.T) {
		got := hintList("fir", candidates)
		assert.Equal(t, candidates[:1], got)
	})
}

func TestSuggestionKindString(t *testing.T) {
	assert.Equal(t, "field", SuggestionField.String())
	assert.Equal(t, "enum value", SuggestionEnumValue.String())
	assert.Equal(t, "unknown", SuggestionKind(0).String())
}
