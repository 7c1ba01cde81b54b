package app

import (
	"context"
	"slices"
	"strings"

	"github.com/dshills/promptline/internal/engine/document"
	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/history"
	"github.com/dshills/promptline/internal/prompt"
	"github.com/dshills/promptline/internal/renderer/core"
)

// historyCompleter offers the words of earlier entries, most recent
// first. Each item's description is the entry it was last seen in.
func historyCompleter(log *history.Log) prompt.CompletionFunc {
	return func(_ context.Context, _ string, _ int, _ text.Span) ([]prompt.CompletionItem, error) {
		entries := log.Entries()
		seen := make(map[string]bool)
		var items []prompt.CompletionItem
		for _, entry := range slices.Backward(entries) {
			for _, word := range strings.FieldsFunc(entry, isSeparator) {
				if seen[word] || len([]rune(word)) < 3 {
					continue
				}
				seen[word] = true
				items = append(items, prompt.CompletionItem{
					ReplacementText:     word,
					ExtendedDescription: prompt.LazyValue(core.Plain(entry)),
				})
			}
		}
		return items, nil
	}
}

// isSeparator splits entries where the editor ends a word, so an
// accepted item always replaces the whole word at the caret.
func isSeparator(r rune) bool {
	return !document.IsWordRune(r)
}
