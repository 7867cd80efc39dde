package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goplus/gqlls/gql"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var errDocumentNotOpen = errors.New("document is not open")

// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.16/specification/#textDocument_didOpen
func (sess *session) didOpen(params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	sess.logger.Debugw("document opened", "uri", item.URI, "version", item.Version)

	doc := sess.newDocument(item.URI, item.Version, item.Text)
	sess.putDocument(doc)
	sess.syncSchemaFile(doc)
	return nil
}

// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.16/specification/#textDocument_didChange
func (sess *session) didChange(params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	old, ok := sess.docs.get(uri)
	if !ok {
		return fmt.Errorf("%w: %s", errDocumentNotOpen, uri)
	}

	text, err := changedText(old.text, params.ContentChanges)
	if err != nil {
		return fmt.Errorf("failed to apply changes to %s: %w", uri, err)
	}

	doc := *old
	doc.version = params.TextDocument.Version
	doc.text = text
	sess.putDocument(&doc)
	sess.syncSchemaFile(&doc)
	return nil
}

// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.16/specification/#textDocument_didClose
func (sess *session) didClose(params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	sess.logger.Debugw("document closed", "uri", uri)

	doc, ok := sess.docs.remove(uri)
	if ok && doc.isSchema {
		// Drop unsaved edits.
		sess.server.reloadFiles([]string{doc.path})
	}
	return nil
}

// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.16/specification/#workspace_didChangeWatchedFiles
func (sess *session) didChangeWatchedFiles(params *protocol.DidChangeWatchedFilesParams) error {
	var paths []string
	for _, change := range params.Changes {
		path, err := fromDocumentURI(change.URI)
		if err != nil {
			sess.logger.Debugw("ignoring watched file change", "uri", change.URI, "error", err)
			continue
		}
		if !sess.server.opts.IsSchemaPath(path) {
			continue
		}
		if doc, ok := sess.docs.get(change.URI); ok && doc.isSchema && change.Type != protocol.FileChangeTypeDeleted {
			// The editor content wins while the document is open.
			continue
		}
		paths = append(paths, path)
	}
	sess.server.reloadFiles(paths)
	return nil
}

func (sess *session) newDocument(uri protocol.DocumentUri, version protocol.Integer, text string) *document {
	doc := &document{uri: uri, version: version, text: text}
	if path, err := fromDocumentURI(uri); err == nil {
		doc.path = path
		doc.isSchema = sess.server.opts.IsSchemaPath(path)
	}
	return doc
}

// syncSchemaFile makes the project see the editor content of a schema
// document.
func (sess *session) syncSchemaFile(doc *document) {
	if !doc.isSchema {
		return
	}
	sess.server.proj.PutFile(doc.path, &gql.File{
		Content: []byte(doc.text),
		Version: int(doc.version),
	})
	sess.logger.Debugw("schema file updated from editor", "path", doc.path, "version", doc.version)
}

// changedText applies content changes to text. A change without a range
// replaces the whole text. Other changes replace their range, in order.
func changedText(text string, changes []any) (string, error) {
	if len(changes) == 0 {
		return "", errors.New("no content changes provided")
	}
	for _, change := range changes {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = change.Text
				continue
			}
			var err error
			if text, err = applyIncrementalChange(text, *change.Range, change.Text); err != nil {
				return "", err
			}
		default:
			return "", fmt.Errorf("unsupported content change %T", change)
		}
	}
	return text, nil
}

// applyIncrementalChange replaces the text in rng with newText.
func applyIncrementalChange(text string, rng protocol.Range, newText string) (string, error) {
	start := positionOffset(text, rng.Start)
	end := positionOffset(text, rng.End)
	if end < start {
		return "", fmt.Errorf("invalid range %d:%d-%d:%d",
			rng.Start.Line, rng.Start.Character, rng.End.Line, rng.End.Character)
	}

	var sb strings.Builder
	sb.Grow(len(text) - (end - start) + len(newText))
	sb.WriteString(text[:start])
	sb.WriteString(newText)
	sb.WriteString(text[end:])
	return sb.String(), nil
}
