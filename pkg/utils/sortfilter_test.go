package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("", "anything"))
	assert.True(t, MatchesQuery("mont", "Planta Monterrey", "manufacturing"))
	assert.True(t, MatchesQuery("MANUFAC", "Planta Monterrey", "manufacturing"))
	assert.False(t, MatchesQuery("guadalajara", "Planta Monterrey", "manufacturing"))
}

func TestFilter(t *testing.T) {
	type row struct{ Name, Type string }
	rows := []row{
		{"Director General", "Personas"},
		{"Servidor Central", "Información"},
		{"Montacargas", "Bienes"},
	}
	got := Filter(rows, "dire", func(r row) []string { return []string{r.Name, r.Type} })
	assert.Len(t, got, 1)
	assert.Equal(t, "Director General", got[0].Name)

	assert.Len(t, Filter(rows, "", func(r row) []string { return nil }), 3)
}

func TestSortByString(t *testing.T) {
	names := []string{"zeta", "Alfa", "media"}
	SortByString(names, SortAsc, func(s string) string { return s })
	assert.Equal(t, []string{"Alfa", "media", "zeta"}, names)

	SortByString(names, SortDesc, func(s string) string { return s })
	assert.Equal(t, []string{"zeta", "media", "Alfa"}, names)
}

func TestSortByNumber(t *testing.T) {
	vals := []float64{3, 1, 2}
	SortByNumber(vals, SortDesc, func(v float64) float64 { return v })
	assert.Equal(t, []float64{3, 2, 1}, vals)
}

func TestSortByTime(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{base.Add(2 * time.Hour), base, base.Add(time.Hour)}
	SortByTime(times, SortAsc, func(ts time.Time) time.Time { return ts })
	assert.Equal(t, base, times[0])
	assert.Equal(t, base.Add(2*time.Hour), times[2])
}

func TestClassifyAssetType(t *testing.T) {
	cases := map[string]string{
		"Personas clave":       CategoryPersonas,
		"people at risk":       CategoryPersonas,
		"Bienes muebles":       CategoryBienes,
		"Equipo de cómputo":    CategoryBienes,
		"Vehículos":            CategoryBienes,
		"VEHÍCULOS de carga":   CategoryBienes,
		"Procesos críticos":    CategoryProcesos,
		"Core process":         CategoryProcesos,
		"Información sensible": CategoryInformacion,
		"desconocido":          CategoryOtros,
		"":                     CategoryOtros,
	}
	for in, want := range cases {
		assert.Equal(t, want, ClassifyAssetType(in), in)
	}
}

func TestAssetCategoryRankOrdering(t *testing.T) {
	// Personas before Bienes before Procesos before Información, unmatched last.
	assert.Less(t, AssetCategoryRank("Personas"), AssetCategoryRank("Bienes"))
	assert.Less(t, AssetCategoryRank("Bienes"), AssetCategoryRank("Procesos"))
	assert.Less(t, AssetCategoryRank("Procesos"), AssetCategoryRank("Información sensible"))
	assert.Less(t, AssetCategoryRank("Información sensible"), AssetCategoryRank("otro tipo"))
}

func TestThreatCategoryRank(t *testing.T) {
	assert.Equal(t, 0, ThreatCategoryRank("natural"))
	assert.Equal(t, 1, ThreatCategoryRank("Technological"))
	assert.Equal(t, 2, ThreatCategoryRank("social"))
	assert.Equal(t, 3, ThreatCategoryRank("environmental"))
	assert.Equal(t, 4, ThreatCategoryRank("unknown"))
}
