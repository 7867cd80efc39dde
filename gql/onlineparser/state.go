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

// State is the parser state after a scanned token.
//
// A State is a node of a singly linked chain from the innermost open
// construct to the outermost one. The head of the chain is updated in place
// by [State.Scan]; nodes reachable through PrevState are never modified once
// linked, so a copy of the head (see [State.Clone]) is a stable snapshot.
type State struct {
	Kind      Kind
	Step      int
	Name      string
	Type      string
	PrevState *State

	rule           *rule
	needsSeparator bool
	needsAdvance   bool
	inBlockString  bool
}

// NewState returns the start state for a document.
func NewState() *State {
	st := &State{}
	st.pushRule(KindDocument)
	return st
}

// Clone returns a shallow copy of st. The copy shares the immutable
// PrevState chain.
func (st *State) Clone() *State {
	if st == nil {
		return nil
	}
	c := *st
	return &c
}

// Scan consumes the next token from s, updates st accordingly and returns
// the style of the token.
func (st *State) Scan(s *Stream) Style {
	if st.inBlockString {
		if _, ok := s.Match(blockStringEndRE, true); ok {
			st.inBlockString = false
			return StyleString
		}
		s.SkipToEnd()
		return StyleString
	}

	if st.rule != nil && st.rule.isEmpty() {
		st.popRule()
	} else if st.needsAdvance {
		st.needsAdvance = false
		st.advanceRule(true)
	}

	if s.EatWhile(IsIgnored) {
		return StyleWhitespace
	}

	tok, ok := lex(s)
	if !ok {
		if _, ok := s.Match(nonSpaceRE, true); !ok {
			if _, ok := s.Match(spaceRE, true); !ok {
				s.start = s.pos
				s.Next()
			}
		}
		st.pushRule(KindInvalid)
		return StyleInvalidChar
	}
	if tok.Kind == TokenComment {
		st.pushRule(KindComment)
		return StyleComment
	}

	backup := *st
	for st.rule != nil {
		exp, ok := st.expected(tok, s)
		if ok {
			if exp.term == nil {
				st.pushRule(exp.kind)
				continue
			}
			if exp.term.match(tok) {
				if exp.term.update != nil {
					exp.term.update(st, tok)
				}
				if tok.Kind == TokenPunctuation {
					st.advanceRule(true)
				} else {
					st.needsAdvance = true
				}
				return exp.term.style
			}
		}
		st.unsuccessful()
	}

	*st = backup
	st.pushRule(KindInvalid)
	return StyleInvalidChar
}

// expected returns the step the current rule expects next.
func (st *State) expected(tok Token, s *Stream) (step, bool) {
	var exp step
	switch {
	case st.rule.fork != nil:
		if st.Step != 0 {
			return exp, false
		}
		kind := st.rule.fork(tok, s)
		if kind == KindNone {
			return exp, false
		}
		exp = sub(kind)
	case st.Step < len(st.rule.steps):
		exp = st.rule.steps[st.Step]
	default:
		return exp, false
	}
	if st.needsSeparator {
		if exp.sep == nil {
			return exp, false
		}
		exp = term(exp.sep)
	}
	return exp, true
}

func (st *State) pushRule(kind Kind) {
	prev := *st
	st.PrevState = &prev
	st.Kind = kind
	st.Name = ""
	st.Type = ""
	st.rule = rules[kind]
	st.Step = 0
	st.needsSeparator = false
}

func (st *State) popRule() {
	prev := st.PrevState
	if prev == nil {
		st.Kind = KindNone
		st.rule = nil
		return
	}
	st.Kind = prev.Kind
	st.Name = prev.Name
	st.Type = prev.Type
	st.rule = prev.rule
	st.Step = prev.Step
	st.needsSeparator = prev.needsSeparator
	st.PrevState = prev.PrevState
}

// atSequence reports whether the current rule is a sequence that has not
// been exhausted.
func (st *State) atSequence() bool {
	return st.rule != nil && st.rule.fork == nil && st.Step < len(st.rule.steps)
}

func (st *State) isList() bool {
	return st.atSequence() && st.rule.steps[st.Step].list
}

func (st *State) advanceRule(successful bool) {
	if st.isList() {
		if st.rule.steps[st.Step].sep != nil {
			st.needsSeparator = !st.needsSeparator
		}
		if successful {
			return
		}
	}

	st.needsSeparator = false
	st.Step++

	for st.rule != nil && !st.atSequence() {
		st.popRule()
		if st.rule == nil {
			break
		}
		if st.isList() {
			if st.rule.steps[st.Step].sep != nil {
				st.needsSeparator = !st.needsSeparator
			}
		} else {
			st.needsSeparator = false
			st.Step++
		}
	}
}

func (st *State) unsuccessful() {
	for st.rule != nil && !(st.atSequence() && st.rule.steps[st.Step].optional) {
		st.popRule()
	}
	if st.rule != nil {
		st.advanceRule(false)
	}
}
