package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// triggerCharacters start a completion request without an explicit
// invocation by the user.
var triggerCharacters = []string{"@", "$", "(", ":", " ", "{", "."}

// See https://microsoft.github.io/language-server-protocol/specifications/lsp/3.16/specification/#initialize
func (sess *session) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	client := "unknown"
	if params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}
	var root string
	if params.RootURI != nil {
		root = *params.RootURI
	}
	sess.logger.Infow("LSP client initializing", "client", client, "root", root)

	if params.Trace != nil {
		protocol.SetTraceValue(*params.Trace)
	}

	capabilities := sess.handler.CreateServerCapabilities()
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: triggerCharacters,
	}

	result := protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: serverName,
		},
	}
	if v := sess.server.opts.Version; v != "" {
		result.ServerInfo.Version = &v
	}
	return result, nil
}

func (sess *session) initialized(*glsp.Context, *protocol.InitializedParams) error {
	sess.logger.Infow("LSP client initialized")
	return nil
}

// shutdown drops the open documents. Schema files they overrode are reread
// from disk.
func (sess *session) shutdown(*glsp.Context) error {
	sess.logger.Infow("LSP client shutting down", "open_documents", sess.docs.len())
	var paths []string
	for _, doc := range sess.docs.clear() {
		if doc.isSchema {
			paths = append(paths, doc.path)
		}
	}
	sess.server.reloadFiles(paths)
	return nil
}

func (sess *session) exit(*glsp.Context) error {
	sess.logger.Debugw("LSP client exited")
	return nil
}

func (sess *session) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
