package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestUTF16OffsetToUTF8(t *testing.T) {
	for _, tt := range []struct {
		name string
		s    string
		in   int
		want int
	}{
		{"ASCII", "hello", 3, 3},
		{"Negative", "hello", -1, 0},
		{"PastEnd", "hello", 10, 5},
		{"TwoByteRune", "héllo", 2, 3},
		{"SurrogatePair", "a😀b", 3, 5},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utf16OffsetToUTF8(tt.s, tt.in))
		})
	}
}

func TestUTF8OffsetToUTF16(t *testing.T) {
	for _, tt := range []struct {
		name string
		s    string
		in   int
		want int
	}{
		{"ASCII", "hello", 3, 3},
		{"Zero", "hello", 0, 0},
		{"TwoByteRune", "héllo", 3, 2},
		{"SurrogatePair", "a😀b", 5, 3},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utf8OffsetToUTF16(tt.s, tt.in))
		})
	}
}

func TestPositionOffset(t *testing.T) {
	text := "query {\r\n  ünit\n}"
	for _, tt := range []struct {
		name string
		pos  protocol.Position
		want int
	}{
		{"Start", protocol.Position{Line: 0, Character: 0}, 0},
		{"FirstLine", protocol.Position{Line: 0, Character: 6}, 6},
		{"ClampedBeforeCR", protocol.Position{Line: 0, Character: 20}, 7},
		{"AfterMultiByteRune", protocol.Position{Line: 1, Character: 3}, 13},
		{"LastLine", protocol.Position{Line: 2, Character: 1}, len(text)},
		{"PastLastLine", protocol.Position{Line: 9, Character: 0}, len(text)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, positionOffset(text, tt.pos))
		})
	}
}

func TestWordRange(t *testing.T) {
	text := "{ me { na }\n  @sk\n}"
	for _, tt := range []struct {
		name       string
		pos        protocol.Position
		start, end protocol.UInteger
	}{
		{"EndOfWord", protocol.Position{Line: 0, Character: 9}, 7, 9},
		{"InsideWord", protocol.Position{Line: 0, Character: 8}, 7, 9},
		{"NoWord", protocol.Position{Line: 0, Character: 6}, 6, 6},
		{"AfterPunctuation", protocol.Position{Line: 1, Character: 5}, 3, 5},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rng := wordRange(text, tt.pos)
			assert.Equal(t, tt.pos.Line, rng.Start.Line)
			assert.Equal(t, tt.pos.Line, rng.End.Line)
			assert.Equal(t, tt.start, rng.Start.Character)
			assert.Equal(t, tt.end, rng.End.Character)
		})
	}
}

func TestDocumentURI(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		uri := toDocumentURI("/work/my schema.graphql")
		assert.Equal(t, "file:///work/my%20schema.graphql", uri)

		path, err := fromDocumentURI(uri)
		require.NoError(t, err)
		assert.Equal(t, "/work/my schema.graphql", path)
	})

	t.Run("NotFile", func(t *testing.T) {
		_, err := fromDocumentURI("untitled:Untitled-1")
		assert.ErrorContains(t, err, "not a file URI")
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := fromDocumentURI("file://%zz")
		assert.Error(t, err)
	})
}
