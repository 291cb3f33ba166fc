// Package lsp serves kvlang diagnostics over the Language Server Protocol.
package lsp

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/dhamidi/parsekit/kvlang"
	"github.com/dhamidi/parsekit/parse"
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

var log = commonlog.GetLogger("parsekit.lsp")

type Server struct {
	name    string
	version string
	handler protocol.Handler
	server  *server.Server

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*document
}

type document struct {
	doc *kvlang.Document
}

func New(name, version string) *Server {
	s := &Server{
		name:    name,
		version: version,
		docs:    make(map[protocol.DocumentUri]*document),
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentHover:     s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, name, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    s.name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s initialized", s.name, s.version)
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()

	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.mu.Lock()
	d := s.docs[params.TextDocument.URI]
	s.mu.Unlock()

	if d == nil || d.doc == nil {
		return nil, nil
	}

	text, ok := describeLine(d.doc, int(params.Position.Line)+1)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: text,
		},
	}, nil
}

// update reparses a document and publishes its diagnostics. Documents are
// parsed one at a time because glsp may run handlers concurrently.
func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	session := uuid.NewString()
	log.Debugf("parse %s (session %s, %d bytes)", uri, session, len(text))

	s.mu.Lock()
	doc, err := kvlang.ParseString(text)
	s.docs[uri] = &document{doc: doc}
	s.mu.Unlock()

	diagnostics := diagnose(text, err)
	log.Debugf("session %s: %d diagnostics", session, len(diagnostics))

	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// diagnose converts a parse error into LSP diagnostics. A nil error gives
// an empty, non-nil slice so that clients clear earlier diagnostics.
func diagnose(text string, err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err == nil {
		return diagnostics
	}

	var (
		pos     parse.Position
		message string
		syntax  *kvlang.SyntaxError
		dup     *kvlang.DuplicateKeyError
	)
	switch {
	case errors.As(err, &syntax):
		pos = syntax.Position
		message = fmt.Sprintf("expected %s, found %s", syntax.Expected, syntax.Found)
	case errors.As(err, &dup):
		pos = dup.Position
		message = fmt.Sprintf("duplicate key %q, first defined on line %d", dup.Key, dup.Previous.Line)
	default:
		pos = parse.Start
		message = err.Error()
	}

	start := toProtocol(text, pos)
	end := start
	end.Character++

	severity := protocol.DiagnosticSeverityError
	source := "kvlang"
	return append(diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	})
}

// toProtocol converts a parse position to an LSP position. LSP lines are
// 0-based and characters count UTF-16 code units.
func toProtocol(text string, pos parse.Position) protocol.Position {
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}

	lines := strings.Split(text, "\n")
	character := 0
	if line < len(lines) {
		col := 0
		for _, r := range lines[line] {
			if col == pos.Column {
				break
			}
			character += utf16.RuneLen(r)
			col++
		}
		character += pos.Column - col
	} else {
		character = pos.Column
	}

	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}

func describeLine(doc *kvlang.Document, line int) (string, bool) {
	for _, e := range doc.Entries {
		if e.Position.Line == line {
			return describe(e), true
		}
	}
	return "", false
}

func describe(e *kvlang.Entry) string {
	if e.Value.Kind == kvlang.List {
		return fmt.Sprintf("%s: list of %d", e.Key, len(e.Value.Items))
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Value.Kind)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
