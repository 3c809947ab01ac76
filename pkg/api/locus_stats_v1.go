// pkg/api/locus_stats_v1.go
package api

// LocusStatV1 is the stable JSON-lines schema for per-locus grouping stats.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type LocusStatV1 struct {
	Locus   string `json:"locus"`
	File    string `json:"file,omitempty"`
	Alleles int    `json:"alleles"`
	MinLen  int    `json:"min_len"`
	MaxLen  int    `json:"max_len"`
	Found   bool   `json:"found"`
}
