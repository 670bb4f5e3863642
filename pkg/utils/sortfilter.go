// Package utils provides shared helpers for in-memory list handling: text
// search, column sorting, and the display-order classification of free-text
// asset types and threat categories.
package utils

import (
	"sort"
	"strings"
	"time"
)

// MatchesQuery reports whether any of the fields contains the query as a
// case-insensitive substring. An empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(strings.TrimSpace(query))
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the elements of items whose searchable fields match the query.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if MatchesQuery(query, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}

// SortDirection controls sort order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortByString sorts items in place by a string key, case-insensitively.
func SortByString[T any](items []T, dir SortDirection, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(key(items[i])), strings.ToLower(key(items[j]))
		if dir == SortDesc {
			return a > b
		}
		return a < b
	})
}

// SortByNumber sorts items in place by a numeric key.
func SortByNumber[T any](items []T, dir SortDirection, key func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		if dir == SortDesc {
			return key(items[i]) > key(items[j])
		}
		return key(items[i]) < key(items[j])
	})
}

// SortByTime sorts items in place by a time key.
func SortByTime[T any](items []T, dir SortDirection, key func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		if dir == SortDesc {
			return key(items[i]).After(key(items[j]))
		}
		return key(items[i]).Before(key(items[j]))
	})
}

// Display categories for free-text asset types, in fixed render order.
const (
	CategoryPersonas    = "Personas"
	CategoryBienes      = "Bienes"
	CategoryProcesos    = "Procesos"
	CategoryInformacion = "Información"
	CategoryOtros       = "Otros"
)

// assetTypeKeywords maps substring keywords to display categories. Matching is
// a heuristic over free text, kept only as a display-ordering convenience; it
// is not a data constraint.
var assetTypeKeywords = []struct {
	keyword  string
	category string
}{
	{"person", CategoryPersonas},
	{"people", CategoryPersonas},
	{"bien", CategoryBienes},
	{"equip", CategoryBienes},
	{"vehic", CategoryBienes},
	{"proceso", CategoryProcesos},
	{"process", CategoryProcesos},
	{"inform", CategoryInformacion},
}

// categoryOrder fixes the render order of asset display categories.
// Unmatched types sort last.
var categoryOrder = map[string]int{
	CategoryPersonas:    0,
	CategoryBienes:      1,
	CategoryProcesos:    2,
	CategoryInformacion: 3,
	CategoryOtros:       4,
}

// accentFolder maps Spanish accented vowels to their base letters so that
// keywords stay ASCII ("vehículos" matches "vehic").
var accentFolder = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
)

// ClassifyAssetType buckets a free-text asset type into a display category
// via keyword matching. Unmatched input falls into CategoryOtros.
func ClassifyAssetType(assetType string) string {
	t := accentFolder.Replace(strings.ToLower(assetType))
	for _, kw := range assetTypeKeywords {
		if strings.Contains(t, kw.keyword) {
			return kw.category
		}
	}
	return CategoryOtros
}

// AssetCategoryRank returns the display rank of a free-text asset type.
func AssetCategoryRank(assetType string) int {
	return categoryOrder[ClassifyAssetType(assetType)]
}

// threatCategoryOrder fixes the render order of threat categories. Unknown
// categories sort last.
var threatCategoryOrder = map[string]int{
	"natural":       0,
	"technological": 1,
	"social":        2,
	"environmental": 3,
}

// ThreatCategoryRank returns the display rank of a threat category.
func ThreatCategoryRank(category string) int {
	if rank, ok := threatCategoryOrder[strings.ToLower(category)]; ok {
		return rank
	}
	return len(threatCategoryOrder)
}
