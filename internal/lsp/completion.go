package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/huescan/internal/color"
	"github.com/jsvensson/huescan/internal/history"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// maxHistoryItems caps how many history colors are offered.
const maxHistoryItems = 20

// complete offers recently seen colors, then CSS color names, that extend the
// word before pos. Typing '#' restricts the list to history colors.
func complete(content string, pos protocol.Position, recent []history.Entry) []protocol.CompletionItem {
	li := newLineIndex(content)
	off := li.offset(pos)
	prefix := wordBefore(content, off)
	rng := protocol.Range{Start: li.position(off - len(prefix)), End: pos}
	lower := strings.ToLower(prefix)

	items := []protocol.CompletionItem{}
	for i, e := range recent {
		if e.Color == "" {
			continue
		}
		if !strings.HasPrefix(e.Color, lower) && !strings.HasPrefix(strings.TrimPrefix(e.Color, "#"), lower) {
			continue
		}
		items = append(items, colorItem(e.Color, e.Color, rng,
			fmt.Sprintf("0-%03d", i),
			fmt.Sprintf("seen %d times", e.Count)))
	}

	if strings.HasPrefix(prefix, "#") {
		return items
	}
	for _, name := range color.Names() {
		if !strings.HasPrefix(name, lower) {
			continue
		}
		c, _ := color.LookupName(name)
		items = append(items, colorItem(name, c.Hex(), rng, "1-"+name, c.Hex()))
	}
	return items
}

func colorItem(label, hex string, rng protocol.Range, sortText, detail string) protocol.CompletionItem {
	kind := protocol.CompletionItemKindColor
	return protocol.CompletionItem{
		Label:         label,
		Kind:          &kind,
		Detail:        &detail,
		Documentation: hex,
		SortText:      &sortText,
		TextEdit: protocol.TextEdit{
			Range:   rng,
			NewText: label,
		},
	}
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok || !s.decorates(uri) {
		return nil, nil
	}

	var recent []history.Entry
	if h := s.historyManager(); h != nil {
		recent = h.Recent(maxHistoryItems)
	}
	return complete(content, params.Position, recent), nil
}
