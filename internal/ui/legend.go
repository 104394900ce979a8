package ui

import "github.com/Pmuzik/Ecosystem-Project/internal/sims/ecosystem"

// LegendEntry pairs a display palette index with its label.
type LegendEntry struct {
	Index int
	Label string
}

// LegendEntries lists one swatch per organism kind.
func LegendEntries() []LegendEntry {
	kinds := ecosystem.Kinds()
	entries := make([]LegendEntry, 0, len(kinds))
	for _, k := range kinds {
		entries = append(entries, LegendEntry{Index: int(ecosystem.DisplayValue(k)), Label: k.String()})
	}
	return entries
}
