package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"
)

// session is the state of one connected client.
type session struct {
	server  *Server
	docs    *documentStore
	handler *protocol.Handler
	logger  *zap.SugaredLogger
}

func (s *Server) newSession() (*session, error) {
	sess := &session{
		server: s,
		logger: s.logger,
	}
	docs, err := newDocumentStore(s.opts.MaxDocuments)
	if err != nil {
		return nil, err
	}
	sess.docs = docs
	sess.handler = &protocol.Handler{
		Initialize:  sess.initialize,
		Initialized: sess.initialized,
		Shutdown:    sess.shutdown,
		Exit:        sess.exit,
		SetTrace:    sess.setTrace,

		TextDocumentDidOpen: func(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			return sess.didOpen(params)
		},
		TextDocumentDidChange: func(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			return sess.didChange(params)
		},
		TextDocumentDidClose: func(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			return sess.didClose(params)
		},
		TextDocumentCompletion: func(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
			return sess.textDocumentCompletion(params)
		},
		WorkspaceDidChangeWatchedFiles: func(_ *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
			return sess.didChangeWatchedFiles(params)
		},
	}
	return sess, nil
}

// putDocument stores doc, dropping the least recently used document when the
// session is at its limit.
func (sess *session) putDocument(doc *document) {
	evicted := sess.docs.put(doc)
	if evicted == nil {
		return
	}
	sess.logger.Warnw("document cache limit reached, dropped least recently used document",
		"uri", evicted.uri,
		"max_allowed", sess.server.opts.MaxDocuments,
	)
	if evicted.isSchema {
		sess.server.reloadFiles([]string{evicted.path})
	}
}
