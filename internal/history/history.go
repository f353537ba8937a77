/*
Package history persists generated marketing plans and the user's settings in the
local key-value store.

History is a newest-first list capped at MaxItems, stored as one JSON array under
the "app_history" key. Every save writes the whole list. Trimming and ordering are
the caller's job (see Prepend); the store writes whatever it is given.
*/
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/khanglvm/marketing-support/internal/gateway"
	"github.com/khanglvm/marketing-support/internal/storage"
	"github.com/rs/zerolog/log"
)

// Storage keys.
const (
	HistoryKey       = "app_history"
	HistoryBackupKey = "app_history.bak"
)

// MaxItems is the history length cap.
const MaxItems = 20

// Status is the lifecycle state of a history entry.
type Status string

// StatusDraft is the only status the application assigns.
const StatusDraft Status = "DRAFT"

// Item is one saved generation.
type Item struct {
	// ID is the creation time in epoch milliseconds, as a string.
	ID string `json:"id"`

	// Timestamp is the creation time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	ProductName string                `json:"productName"`
	ProductLink string                `json:"productLink"`
	Plan        gateway.MarketingPlan `json:"plan"`

	// ImageURL is the product visual as a data URI, once generated.
	ImageURL string `json:"imageUrl,omitempty"`

	Status Status `json:"status"`
}

// NewItem builds a draft entry for a freshly generated plan.
func NewItem(now time.Time, link string, plan gateway.MarketingPlan) Item {
	ms := now.UnixMilli()
	return Item{
		ID:          strconv.FormatInt(ms, 10),
		Timestamp:   ms,
		ProductName: plan.ProductName,
		ProductLink: link,
		Plan:        plan,
		Status:      StatusDraft,
	}
}

// CreatedAt returns the entry's creation time.
func (it Item) CreatedAt() time.Time {
	return time.UnixMilli(it.Timestamp)
}

// Prepend puts item at the head of items and drops the oldest entries beyond
// MaxItems. items is not modified.
func Prepend(items []Item, item Item) []Item {
	out := make([]Item, 0, min(len(items)+1, MaxItems))
	out = append(out, item)
	for _, it := range items {
		if len(out) == MaxItems {
			break
		}
		out = append(out, it)
	}
	return out
}

// AttachImage returns a copy of items with imageURL set on every entry whose
// product name equals productName, and the number of entries changed.
func AttachImage(items []Item, productName, imageURL string) ([]Item, int) {
	out := make([]Item, len(items))
	copy(out, items)
	n := 0
	for i := range out {
		if out[i].ProductName == productName {
			out[i].ImageURL = imageURL
			n++
		}
	}
	return out, n
}

// Find returns the entry with the given id.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Store reads and writes the history list.
type Store struct {
	kv storage.Store
}

// NewStore creates a history store over kv.
func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the saved history, or an empty list when nothing is saved or
// the saved value is unreadable. Unreadable data is copied to HistoryBackupKey
// before being ignored; it is replaced on the next Save.
func (s *Store) Load(ctx context.Context) []Item {
	raw, ok, err := s.kv.GetItem(ctx, HistoryKey)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("history unavailable, starting empty")
		return []Item{}
	}
	if !ok || raw == "" {
		return []Item{}
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int("bytes", len(raw)).Msg("saved history is corrupt, starting empty")
		if err := s.kv.SetItem(ctx, HistoryBackupKey, raw); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to back up corrupt history")
		}
		return []Item{}
	}
	if items == nil {
		return []Item{}
	}

	for i := range items {
		items[i].Plan.Normalize()
	}
	return items
}

// Save writes the full list.
func (s *Store) Save(ctx context.Context, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := s.kv.SetItem(ctx, HistoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Clear removes the saved history.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.RemoveItem(ctx, HistoryKey); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
