package lsp

import (
	"sort"

	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Semantic token types, indexed by SemanticToken.Type.
var semanticTokenTypes = []string{
	"string",     // 0: hex literals
	"function",   // 1: functional notations such as rgb() and hsl()
	"enumMember", // 2: named colors
}

const (
	tokenString uint32 = iota
	tokenFunction
	tokenEnumMember
)

// SemanticToken represents a single token with its metadata
type SemanticToken struct {
	Line      uint32 // 0-based line number
	StartChar uint32 // 0-based UTF-16 offset
	Length    uint32
	Type      uint32 // index into semanticTokenTypes
	Modifiers uint32 // bit flags
}

func tokenType(f grammar.Format) uint32 {
	switch f {
	case grammar.HEX:
		return tokenString
	case grammar.NAMED:
		return tokenEnumMember
	default:
		return tokenFunction
	}
}

// encodeTokens converts tokens to LSP format (5 integers per token)
// Uses delta encoding for line numbers and character positions
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	// Sort tokens by position
	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine uint32 = 0
	var prevChar uint32 = 0

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		} else {
			deltaStart = tok.StartChar
		}

		data = append(data,
			deltaLine,
			deltaStart,
			tok.Length,
			tok.Type,
			tok.Modifiers,
		)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// semanticTokens builds the tokens for every color literal in r. Tokens may
// not span lines, so a literal broken across lines is left out.
func semanticTokens(r *scanResult) []uint32 {
	if r == nil {
		return []uint32{}
	}

	tokens := make([]SemanticToken, 0, len(r.annotations))
	for _, a := range r.annotations {
		rng := r.lines.rangeOf(a.ByteStart, a.ByteEnd)
		if rng.Start.Line != rng.End.Line {
			continue
		}
		tokens = append(tokens, SemanticToken{
			Line:      rng.Start.Line,
			StartChar: rng.Start.Character,
			Length:    rng.End.Character - rng.Start.Character,
			Type:      tokenType(a.Format),
		})
	}
	return encodeTokens(tokens)
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full requests.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	r := s.result(string(params.TextDocument.URI))
	return &protocol.SemanticTokens{Data: semanticTokens(r)}, nil
}
