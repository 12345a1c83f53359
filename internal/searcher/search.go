package searcher

import (
	"sort"
	"strings"
	"unicode"
)

// minTokenLength is the shortest search token considered; shorter tokens
// are discarded before matching.
const minTokenLength = 2

// Sort keys accepted by Search.
const (
	SortByName     = "name"
	SortByModified = "modified"
	SortByCreated  = "created"
	SortBySize     = "size"
)

// SearchOptions tune one query evaluation.
type SearchOptions struct {
	// SortKey is one of the SortBy constants; empty preserves index
	// iteration order.
	SortKey string
	// Reverse flips the sort to descending.
	Reverse bool
	// IncludePath appends the lowercased relative folder to the text a
	// record is matched against.
	IncludePath bool
}

// Engine evaluates queries against an index, honoring prefix routes and
// the exclusion set.
type Engine struct {
	index  *Index
	router *PrefixManager
}

// NewEngine builds a search engine over an index and router.
func NewEngine(index *Index, router *PrefixManager) *Engine {
	return &Engine{index: index, router: router}
}

// Index returns the engine's index.
func (e *Engine) Index() *Index { return e.index }

// Router returns the engine's prefix router.
func (e *Engine) Router() *PrefixManager { return e.router }

// Search runs a multi-token substring query.
//
// If the query's first whitespace-delimited word is a registered prefix it
// routes the search to that prefix's folders and the remainder becomes the
// effective query. An empty effective query returns everything in scope.
// Otherwise tokens shorter than minTokenLength are dropped; if none
// survive the result is empty; a record matches when every surviving
// token is a case-insensitive substring of its searchable text.
func (e *Engine) Search(query string, opts SearchOptions) []*DocumentRecord {
	query = strings.TrimSpace(query)

	if query == "" {
		var results []*DocumentRecord
		for _, rec := range e.index.Records() {
			if e.router.IsFolderExcluded(rec.RelativeFolder) {
				continue
			}
			results = append(results, rec)
		}
		return sortResults(results, opts)
	}

	prefix, effective := e.extractPrefix(query)

	var routed []string
	if prefix != "" {
		routed = e.router.FoldersForPrefix(prefix)
		if len(routed) == 0 {
			return nil
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(effective) {
		if len(tok) >= minTokenLength {
			tokens = append(tokens, strings.ToLower(tok))
		}
	}
	// "No query" returns everything in scope; a query whose tokens were
	// all discarded returns nothing.
	if len(tokens) == 0 && strings.TrimSpace(effective) != "" {
		return nil
	}

	var results []*DocumentRecord
	for _, rec := range e.index.Records() {
		if routed != nil {
			if !underAny(rec.RelativeFolder, routed) {
				continue
			}
		} else if e.router.IsFolderExcluded(rec.RelativeFolder) {
			continue
		}

		text := rec.SearchKey()
		if opts.IncludePath && rec.RelativeFolder != "" {
			text = text + " " + strings.ToLower(rec.RelativeFolder)
		}
		if matchesAll(text, tokens) {
			results = append(results, rec)
		}
	}
	return sortResults(results, opts)
}

// extractPrefix splits a leading registered prefix off the query. The
// first word ends at any whitespace, matching the field splitting applied
// to the effective query.
func (e *Engine) extractPrefix(query string) (prefix, remainder string) {
	first, rest := query, ""
	if i := strings.IndexFunc(query, unicode.IsSpace); i >= 0 {
		first, rest = query[:i], query[i:]
	}
	if e.router.IsPrefixWord(first) {
		return first, strings.TrimSpace(rest)
	}
	return "", query
}

func underAny(folder string, routed []string) bool {
	for _, r := range routed {
		if strings.HasPrefix(folder, r) {
			return true
		}
	}
	return false
}

func matchesAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

func sortResults(results []*DocumentRecord, opts SearchOptions) []*DocumentRecord {
	if opts.SortKey == "" {
		return results
	}
	var less func(a, b *DocumentRecord) bool
	switch opts.SortKey {
	case SortByName:
		less = func(a, b *DocumentRecord) bool { return a.SearchKey() < b.SearchKey() }
	case SortByModified:
		less = func(a, b *DocumentRecord) bool { return a.ModifiedAt.Before(b.ModifiedAt) }
	case SortByCreated:
		less = func(a, b *DocumentRecord) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortBySize:
		less = func(a, b *DocumentRecord) bool { return a.SizeBytes < b.SizeBytes }
	default:
		return results
	}
	sort.SliceStable(results, func(i, j int) bool {
		if opts.Reverse {
			return less(results[j], results[i])
		}
		return less(results[i], results[j])
	})
	return results
}
