package models

import "time"

// WatchlistItem is a symbol the user follows. The daily refresh job keeps
// its snapshot warm in the cache.
type WatchlistItem struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	AssetType string    `json:"asset_type"`
	Name      string    `json:"name"`
	Sector    *string   `json:"sector"`
	AddedAt   time.Time `json:"added_at"`
}

// WatchlistPatch lists the editable fields of a watchlist entry. Nil means unchanged.
type WatchlistPatch struct {
	Name   *string
	Sector *string
}
