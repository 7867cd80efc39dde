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

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStream(t *testing.T) {
	t.Run("Match", func(t *testing.T) {
		s := NewStream("hello world")
		m, ok := s.Match(regexp.MustCompile(`^\w+`), false)
		assert.True(t, ok)
		assert.Equal(t, "hello", m)
		assert.Equal(t, 0, s.CurrentPosition())

		_, ok = s.Match(regexp.MustCompile(`^\w+`), true)
		assert.True(t, ok)
		assert.Equal(t, 5, s.CurrentPosition())
		assert.Equal(t, "hello", s.Current())

		_, ok = s.Match(regexp.MustCompile(`^world`), true)
		assert.False(t, ok)
	})

	t.Run("MatchString", func(t *testing.T) {
		s := NewStream("...on")
		assert.True(t, s.MatchString("...", true))
		assert.Equal(t, "...", s.Current())
		assert.False(t, s.MatchString("...", false))
		assert.True(t, s.MatchString("on", false))
		assert.Equal(t, 3, s.CurrentPosition())
	})

	t.Run("EatWhile", func(t *testing.T) {
		s := NewStream("  , x")
		assert.True(t, s.EatWhile(IsIgnored))
		assert.Equal(t, 0, s.StartOfToken())
		assert.Equal(t, 4, s.CurrentPosition())
		assert.False(t, s.EatWhile(IsIgnored))
		assert.Equal(t, 'x', s.Next())
		assert.True(t, s.EOL())
		assert.Equal(t, rune(-1), s.Next())
		assert.Equal(t, rune(-1), s.Peek())
	})

	t.Run("UTF16Columns", func(t *testing.T) {
		s := NewStream("é😀x")
		assert.True(t, s.SOL())
		s.EatWhile(func(r rune) bool { return r != 'x' })
		assert.Equal(t, 3, s.CurrentPosition())
		assert.Equal(t, "é😀", s.Current())
		assert.False(t, s.SOL())
	})

	t.Run("SkipToEnd", func(t *testing.T) {
		s := NewStream("abc")
		s.Next()
		s.SkipToEnd()
		assert.True(t, s.EOL())
		assert.Equal(t, "bc", s.Current())
		assert.Equal(t, 1, s.StartOfToken())
	})
}
