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
	"unicode/utf16"

	"github.com/goplus/gqlls/gql/onlineparser"
)

// Cursor is a zero-based position in a document. Character is counted in
// UTF-16 code units.
type Cursor struct {
	Line      int
	Character int
}

// ContextToken is the token at or just before a cursor.
type ContextToken struct {
	Start  int
	End    int
	String string
	Style  onlineparser.Style
	State  *onlineparser.State
}

// ScanContext is the scan position passed to a [ScanFunc].
type ScanContext struct {
	// Line is the zero-based index of the line being scanned.
	Line int

	// EndOfLine is set for the extra call made after the last token of a
	// line.
	EndOfLine bool

	Stream *onlineparser.Stream
	State  *onlineparser.State
	Style  onlineparser.Style
}

// token returns the token most recently scanned.
func (sc *ScanContext) token() ContextToken {
	return ContextToken{
		Start:  sc.Stream.StartOfToken(),
		End:    sc.Stream.CurrentPosition(),
		String: sc.Stream.Current(),
		Style:  sc.Style,
		State:  sc.State,
	}
}

// ScanFunc observes a scan. It is called after every token and once more at
// the end of every line. Returning false stops the scan.
type ScanFunc func(sc *ScanContext) bool

// RunOnlineParser scans text line by line with a single parser state and
// calls fn as described by [ScanFunc]. It returns the last scanned token.
func RunOnlineParser(text string, fn ScanFunc) ContextToken {
	sc := &ScanContext{
		Stream: onlineparser.NewStream(""),
		State:  onlineparser.NewState(),
	}
	for i, line := range strings.Split(text, "\n") {
		sc.Line = i
		sc.EndOfLine = false
		sc.Stream = onlineparser.NewStream(line)
		for !sc.Stream.EOL() {
			sc.Style = sc.State.Scan(sc.Stream)
			if !fn(sc) {
				return sc.token()
			}
		}
		sc.EndOfLine = true
		if !fn(sc) {
			return sc.token()
		}
		if sc.State.Kind == onlineparser.KindNone {
			sc.State = onlineparser.NewState()
		}
	}
	return sc.token()
}

// tokenLocator captures the parser state at a cursor.
type tokenLocator struct {
	cursor Cursor

	captured bool
	style    onlineparser.Style
	state    *onlineparser.State
	str      string
}

func (l *tokenLocator) visit(sc *ScanContext) bool {
	if sc.Line != l.cursor.Line {
		return true
	}
	if sc.Stream.CurrentPosition() > l.cursor.Character {
		return false
	}
	l.captured = true
	l.style = sc.Style
	l.state = sc.State.Clone()
	l.str = sc.Stream.Current()
	return !sc.EndOfLine
}

// TokenAt returns the token at cur in text together with the parser state
// active there.
//
// The scan stops at the first token on the cursor line that ends past the
// cursor, or at the end of the cursor line. If nothing could be captured on
// the cursor line, the last scanned token is returned as is.
func TokenAt(text string, cur Cursor) ContextToken {
	tok, _ := locateToken(text, cur)
	return tok
}

// locateToken is [TokenAt] that also returns the token text before the
// cursor. A captured token ends at or before the cursor. Any other token is
// cut at the cursor column.
func locateToken(text string, cur Cursor) (tok ContextToken, before string) {
	l := &tokenLocator{cursor: cur}
	tok = RunOnlineParser(text, l.visit)
	if l.captured {
		tok.String = l.str
		tok.Style = l.style
		tok.State = l.state
		return tok, tok.String
	}
	return tok, utf16Prefix(tok.String, cur.Character-tok.Start)
}

// utf16Prefix returns the longest prefix of s that is at most n UTF-16 code
// units long.
func utf16Prefix(s string, n int) string {
	for i, r := range s {
		n -= utf16.RuneLen(r)
		if n < 0 {
			return s[:i]
		}
	}
	return s
}
