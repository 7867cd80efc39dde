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
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Stream is a character stream over a single line of source text.
//
// Offsets are tracked in bytes internally. Columns reported by
// [Stream.StartOfToken] and [Stream.CurrentPosition] are in UTF-16 code units
// so that they line up with editor (LSP) positions.
type Stream struct {
	src   string
	start int
	pos   int
}

// NewStream creates a new [Stream] for the given line.
func NewStream(line string) *Stream {
	return &Stream{src: line}
}

// StartOfToken returns the UTF-16 column where the current token starts.
func (s *Stream) StartOfToken() int {
	return utf16Len(s.src[:s.start])
}

// CurrentPosition returns the UTF-16 column of the scan position.
func (s *Stream) CurrentPosition() int {
	return utf16Len(s.src[:s.pos])
}

// EOL reports whether the whole line has been consumed.
func (s *Stream) EOL() bool {
	return s.pos >= len(s.src)
}

// SOL reports whether the scan position is at the start of the line.
func (s *Stream) SOL() bool {
	return s.pos == 0
}

// Peek returns the next rune without consuming it. It returns -1 at the end
// of the line.
func (s *Stream) Peek() rune {
	if s.EOL() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

// Next consumes and returns the next rune. It returns -1 at the end of the
// line.
func (s *Stream) Next() rune {
	if s.EOL() {
		return -1
	}
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return r
}

// EatWhile consumes runes while fn reports true. The consumed runes become
// the current token. It reports whether anything was consumed.
func (s *Stream) EatWhile(fn func(r rune) bool) bool {
	if s.EOL() || !fn(s.Peek()) {
		return false
	}
	s.start = s.pos
	for !s.EOL() && fn(s.Peek()) {
		s.Next()
	}
	return true
}

// Match matches re at the scan position. re must be anchored with "^". If
// consume is true, the match becomes the current token.
func (s *Stream) Match(re *regexp.Regexp, consume bool) (string, bool) {
	loc := re.FindStringIndex(s.src[s.pos:])
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	m := s.src[s.pos : s.pos+loc[1]]
	if consume {
		s.start = s.pos
		s.pos += len(m)
	}
	return m, true
}

// MatchString reports whether lit appears at the scan position. If consume
// is true, lit becomes the current token.
func (s *Stream) MatchString(lit string, consume bool) bool {
	if !strings.HasPrefix(s.src[s.pos:], lit) {
		return false
	}
	if consume {
		s.start = s.pos
		s.pos += len(lit)
	}
	return true
}

// SkipToEnd consumes the rest of the line.
func (s *Stream) SkipToEnd() {
	s.start = s.pos
	s.pos = len(s.src)
}

// Current returns the literal text of the current token.
func (s *Stream) Current() string {
	return s.src[s.start:s.pos]
}

// utf16Len returns the number of UTF-16 code units needed to encode s.
func utf16Len(s string) int {
	var n int
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
