/*
Package search implements keyword search over saved marketing plans.

History is small (at most 20 entries), so the index is an in-memory Bleve index
rebuilt from the current list whenever it is needed. Ranking is Bleve's
BM25-style text scoring over the product name, caption, hashtags, strategy,
video script and link.
*/
package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/khanglvm/marketing-support/internal/history"
	"github.com/rs/zerolog/log"
)

// Result is one matching history entry.
type Result struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Caption     string  `json:"caption"`
	Score       float64 `json:"score"`
}

var resultFields = []string{"product", "caption"}

// Indexer manages the search index for history entries.
type Indexer struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewIndexer creates an empty in-memory index.
func NewIndexer() (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &Indexer{bleveIndex: index}, nil
}

// buildIndexMapping creates the Bleve index mapping for plan documents.
func buildIndexMapping() mapping.IndexMapping {
	planMapping := bleve.NewDocumentMapping()

	for _, field := range []string{"product", "caption", "hashtags", "strategy", "script"} {
		planMapping.AddFieldMappingsAt(field, bleve.NewTextFieldMapping())
	}

	// Links are matched by their words, not stored.
	linkMapping := bleve.NewTextFieldMapping()
	linkMapping.Store = false
	planMapping.AddFieldMappingsAt("link", linkMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", planMapping)
	return indexMapping
}

// Index adds or replaces the given entries, keyed by their id.
func (i *Indexer) Index(items []history.Item) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.bleveIndex.NewBatch()
	for _, it := range items {
		doc := map[string]interface{}{
			"product":  it.ProductName,
			"caption":  it.Plan.PostCaption,
			"hashtags": strings.Join(it.Plan.Hashtags, " "),
			"strategy": it.Plan.StrategyAdvice,
			"script":   it.Plan.VideoScript,
			"link":     it.ProductLink,
		}
		if err := batch.Index(it.ID, doc); err != nil {
			log.Warn().Err(err).Str("id", it.ID).Msg("failed to index history entry")
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index history: %w", err)
	}
	return nil
}

// Search returns entries matching text, best first. limit <= 0 means 10.
func (i *Indexer) Search(text string, limit int) ([]Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	req := bleve.NewSearchRequestOptions(buildMatchQuery(text), limit, 0, false)
	req.Fields = resultFields

	res, err := i.bleveIndex.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	out := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		product, _ := hit.Fields["product"].(string)
		caption, _ := hit.Fields["caption"].(string)
		out = append(out, Result{ID: hit.ID, ProductName: product, Caption: caption, Score: hit.Score})
	}
	return out, nil
}

// Count returns the number of indexed entries.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	n, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return n, nil
}

// Close releases the index.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.bleveIndex.Close()
}

// buildMatchQuery matches any term, tolerating one typo per term.
func buildMatchQuery(text string) query.Query {
	q := bleve.NewMatchQuery(text)
	q.SetFuzziness(1)
	return q
}

// Plans searches items for text using a throwaway index.
func Plans(items []history.Item, text string, limit int) ([]Result, error) {
	if strings.TrimSpace(text) == "" {
		return []Result{}, nil
	}

	idx, err := NewIndexer()
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	if err := idx.Index(items); err != nil {
		return nil, err
	}
	return idx.Search(text, limit)
}
