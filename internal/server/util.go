package server

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// utf16OffsetToUTF8 converts a UTF-16 offset to a UTF-8 offset in the given string.
func utf16OffsetToUTF8(s string, utf16Offset int) int {
	if utf16Offset <= 0 {
		return 0
	}

	var utf16Units, utf8Bytes int
	for _, r := range s {
		if utf16Units >= utf16Offset {
			break
		}
		utf16Units += utf16.RuneLen(r)
		utf8Bytes += utf8.RuneLen(r)
	}
	return utf8Bytes
}

// utf8OffsetToUTF16 converts a UTF-8 offset to a UTF-16 offset in the given string.
func utf8OffsetToUTF16(s string, utf8Offset int) int {
	if utf8Offset <= 0 {
		return 0
	}

	var utf8Bytes, utf16Units int
	for _, r := range s {
		if utf8Bytes >= utf8Offset {
			break
		}
		utf8Bytes += utf8.RuneLen(r)
		utf16Units += utf16.RuneLen(r)
	}
	return utf16Units
}

// lineBounds returns the byte offsets of the start and the end (excluding
// the line terminator) of the given zero-based line. A line past the end of
// text is reported as the empty line at its end.
func lineBounds(text string, line int) (start, end int) {
	for range line {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return len(text), len(text)
		}
		start += i + 1
	}
	end = len(text)
	if i := strings.IndexByte(text[start:], '\n'); i >= 0 {
		end = start + i
	}
	if end > start && text[end-1] == '\r' {
		end--
	}
	return start, end
}

// positionOffset converts an LSP position to a byte offset in text. A
// character past the end of its line is clamped to the line end.
func positionOffset(text string, position protocol.Position) int {
	start, end := lineBounds(text, int(position.Line))
	return start + utf16OffsetToUTF8(text[start:end], int(position.Character))
}

// isNameChar reports whether c can appear in a GraphQL name.
func isNameChar(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// wordRange returns the range of the name around position, which is what a
// completion replaces. It is empty at position when there is no name there.
func wordRange(text string, position protocol.Position) protocol.Range {
	lineStart, lineEnd := lineBounds(text, int(position.Line))
	line := text[lineStart:lineEnd]
	offset := utf16OffsetToUTF8(line, int(position.Character))

	start, end := offset, offset
	for start > 0 && isNameChar(line[start-1]) {
		start--
	}
	for end < len(line) && isNameChar(line[end]) {
		end++
	}
	return protocol.Range{
		Start: protocol.Position{Line: position.Line, Character: protocol.UInteger(utf8OffsetToUTF16(line, start))},
		End:   protocol.Position{Line: position.Line, Character: protocol.UInteger(utf8OffsetToUTF16(line, end))},
	}
}

// fromDocumentURI returns the file path of a file URI.
func fromDocumentURI(uri protocol.DocumentUri) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid document URI %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("document URI %q is not a file URI", uri)
	}
	path := u.Path
	// file:///C:/dir/a.graphql
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

// toDocumentURI returns the file URI of an absolute path.
func toDocumentURI(path string) protocol.DocumentUri {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return (&url.URL{Scheme: "file", Path: path}).String()
}
