// Package knowledge implements a small relevance-scored lookup over an
// in-memory corpus. It backs the knowledge_search tool and is queried by
// agents during planning. The store is read-mostly and safe for concurrent
// use across subtask executions.
package knowledge

import (
	"sort"
	"strings"
	"sync"

	"github.com/veldtlabs/mentormesh/core"
)

// Document is one corpus entry. Tags boost relevance when they match query
// terms.
type Document struct {
	ID       string
	Content  string
	Tags     []string
	Metadata map[string]any
}

// Store holds the corpus and answers scored queries.
type Store struct {
	mu   sync.RWMutex
	docs []Document
}

// NewStore creates a store preloaded with the given documents.
func NewStore(docs ...Document) *Store {
	s := &Store{}
	for _, d := range docs {
		s.Add(d)
	}
	return s
}

// Add inserts a document, assigning an id when absent.
func (s *Store) Add(doc Document) string {
	if doc.ID == "" {
		doc.ID = core.NewID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return doc.ID
}

// Len returns the corpus size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Search scores every document against the query terms and returns up to
// limit results ordered by descending relevance. Documents with zero
// overlap are omitted.
func (s *Store) Search(query string, limit int) []core.SearchResult {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []core.SearchResult
	for _, doc := range s.docs {
		score := relevance(doc, terms)
		if score <= 0 {
			continue
		}
		results = append(results, core.SearchResult{
			ID:       doc.ID,
			Content:  doc.Content,
			Score:    score,
			Metadata: doc.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// relevance counts the fraction of query terms found in the document
// content, with a flat bonus per matching tag.
func relevance(doc Document, terms []string) float64 {
	content := strings.ToLower(doc.Content)
	matched := 0
	for _, t := range terms {
		if strings.Contains(content, t) {
			matched++
		}
	}
	score := float64(matched) / float64(len(terms))

	for _, tag := range doc.Tags {
		tag = strings.ToLower(tag)
		for _, t := range terms {
			if tag == t {
				score += 0.25
			}
		}
	}
	return score
}

func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && !(r >= 'à' && r <= 'ÿ')
	})
	var terms []string
	for _, f := range fields {
		if len(f) > 2 { // skip stop-word sized tokens
			terms = append(terms, f)
		}
	}
	return terms
}
