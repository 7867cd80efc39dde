package server

import (
	"fmt"
	"strings"

	"github.com/goplus/gqlls/gql/autocomplete"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vektah/gqlparser/v2/ast"
)

// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.16/specification/#textDocument_completion
func (sess *session) textDocumentCompletion(params *protocol.CompletionParams) (list *protocol.CompletionList, err error) {
	uri := params.TextDocument.URI
	pos := params.Position
	list = &protocol.CompletionList{Items: []protocol.CompletionItem{}}

	defer func() {
		if r := recover(); r != nil {
			sess.logger.Errorw("completion panicked",
				"uri", uri,
				"line", pos.Line,
				"character", pos.Character,
				"panic", r,
			)
			list, err = &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
		}
	}()

	doc, ok := sess.docs.get(uri)
	if !ok {
		sess.logger.Debugw("completion for a document that is not open", "uri", uri)
		return list, nil
	}

	schema, err := sess.server.proj.Schema()
	if err != nil {
		sess.logger.Warnw("no schema for completion", "uri", uri, "error", err)
		return list, nil
	}

	suggestions := autocomplete.GetAutocompleteSuggestions(schema, doc.text, autocomplete.Cursor{
		Line:      int(pos.Line),
		Character: int(pos.Character),
	})
	rng := wordRange(doc.text, pos)
	for i, s := range suggestions {
		list.Items = append(list.Items, completionItem(schema, s, rng, i))
	}
	sess.logger.Debugw("completion",
		"uri", uri,
		"line", pos.Line,
		"character", pos.Character,
		"items", len(list.Items),
	)
	return list, nil
}

// completionItem converts a suggestion to a completion item replacing rng.
// The index keeps the order of the suggestions in clients that sort.
func completionItem(schema *ast.Schema, s autocomplete.Suggestion, rng protocol.Range, index int) protocol.CompletionItem {
	kind := completionItemKind(schema, s)
	sortText := fmt.Sprintf("%04d", index)
	item := protocol.CompletionItem{
		Label:    s.Label,
		Kind:     &kind,
		SortText: &sortText,
		TextEdit: protocol.TextEdit{
			Range:   rng,
			NewText: s.Label,
		},
	}

	detail := s.Detail
	if detail == "" && s.Type != nil && s.Kind != autocomplete.SuggestionType {
		detail = s.Type.String()
	}
	if detail != "" {
		item.Detail = &detail
	}

	if doc := suggestionDocumentation(s); doc != "" {
		item.Documentation = protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: doc,
		}
	}

	if s.IsDeprecated {
		deprecated := true
		item.Deprecated = &deprecated
		item.Tags = []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}
	}
	return item
}

func suggestionDocumentation(s autocomplete.Suggestion) string {
	doc := s.Documentation
	if s.IsDeprecated {
		note := "**Deprecated**"
		if s.DeprecationReason != "" {
			note += ": " + s.DeprecationReason
		}
		doc = strings.TrimSpace(doc + "\n\n" + note)
	}
	return doc
}

// completionItemKind maps a suggestion kind to the closest LSP item kind.
// Types are mapped by the kind of their definition.
func completionItemKind(schema *ast.Schema, s autocomplete.Suggestion) protocol.CompletionItemKind {
	switch s.Kind {
	case autocomplete.SuggestionKeyword:
		return protocol.CompletionItemKindKeyword
	case autocomplete.SuggestionField:
		return protocol.CompletionItemKindField
	case autocomplete.SuggestionArgument:
		return protocol.CompletionItemKindVariable
	case autocomplete.SuggestionInputField:
		return protocol.CompletionItemKindProperty
	case autocomplete.SuggestionEnumValue:
		return protocol.CompletionItemKindEnumMember
	case autocomplete.SuggestionValue:
		return protocol.CompletionItemKindValue
	case autocomplete.SuggestionFragment:
		return protocol.CompletionItemKindSnippet
	case autocomplete.SuggestionDirective:
		return protocol.CompletionItemKindFunction
	case autocomplete.SuggestionType:
		if def := schema.Types[s.Label]; def != nil {
			switch def.Kind {
			case ast.Object:
				return protocol.CompletionItemKindClass
			case ast.Interface:
				return protocol.CompletionItemKindInterface
			case ast.Union:
				return protocol.CompletionItemKindStruct
			case ast.Enum:
				return protocol.CompletionItemKindEnum
			case ast.InputObject:
				return protocol.CompletionItemKindStruct
			case ast.Scalar:
				return protocol.CompletionItemKindTypeParameter
			}
		}
		return protocol.CompletionItemKindClass
	}
	return protocol.CompletionItemKindText
}
