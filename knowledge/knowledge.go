// Package knowledge provides the in-process knowledge store: indexed
// automotive snippets (specs, market notes, incentive rules) answered by
// token-overlap similarity search. The store is read-only once seeded, so
// concurrent searches from multiple requests require no coordination beyond
// the read lock.
package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/carmesh/carmesh/core"
)

// Document is one indexed knowledge entry.
type Document struct {
	ID    string
	Topic string
	Text  string
}

// InMemoryStore is a process-local core.KnowledgeStore. Search tokenizes
// the query and ranks documents by normalized token overlap; ties keep
// insertion order so results are stable across identical runs. Swap for a
// vector index for production retrieval; the interface stays the same.
type InMemoryStore struct {
	mu     sync.RWMutex
	docs   []Document
	tokens []map[string]bool // per-doc token set, same index as docs
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Add indexes a document. An empty ID gets a positional one.
func (s *InMemoryStore) Add(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID == "" {
		doc.ID = fmt.Sprintf("kb_%03d", len(s.docs)+1)
	}
	s.docs = append(s.docs, doc)
	s.tokens = append(s.tokens, tokenize(doc.Topic+" "+doc.Text))
}

// Len returns the number of indexed documents.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Search implements core.KnowledgeStore. Scores are the fraction of query
// tokens present in the document (0..1); documents with no overlap are
// omitted. Results are ordered by score descending, ties broken by original
// index order (stable).
func (s *InMemoryStore) Search(ctx context.Context, query string, k int) ([]core.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = 3
	}

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return []core.Snippet{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		idx   int
		score float64
	}
	var hits []scored
	for i, docTokens := range s.tokens {
		overlap := 0
		for tok := range queryTokens {
			if docTokens[tok] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		hits = append(hits, scored{idx: i, score: float64(overlap) / float64(len(queryTokens))})
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })
	if len(hits) > k {
		hits = hits[:k]
	}

	results := make([]core.Snippet, len(hits))
	for i, h := range hits {
		doc := s.docs[h.idx]
		results[i] = core.Snippet{ID: doc.ID, Topic: doc.Topic, Text: doc.Text, Score: h.score}
	}
	return results, nil
}

// stopwords excluded from matching; overlap on these says nothing about
// automotive relevance.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "best": true, "for": true,
	"in": true, "is": true, "of": true, "on": true, "the": true, "to": true,
	"under": true, "what": true, "which": true, "with": true,
}

func tokenize(text string) map[string]bool {
	tokens := map[string]bool{}
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if len(field) < 2 || stopwords[field] {
			continue
		}
		tokens[field] = true
	}
	return tokens
}
