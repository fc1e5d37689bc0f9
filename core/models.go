package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier used for cache keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Field names recognised in catalogue sources. Title is the only required column.
const (
	FieldTitle      = "Title"
	FieldDirector   = "Director"
	FieldCast       = "Cast"
	FieldGenre      = "Genre"
	FieldKeywords   = "Keywords"
	FieldPlot       = "Plot"
	FieldYear       = "Year"
	FieldYearBinned = "Year Binned"
	FieldPoster     = "Poster"
)

// Entry is a single catalogue record. Entries are immutable once the
// catalogue index has been built. Missing fields are empty strings.
type Entry struct {
	Title      string
	Director   string
	Cast       string
	Genre      string
	Keywords   string
	Plot       string
	Year       string // precise release year, may be "1977" or "1977.0"
	YearBinned string // coarse year bucket used when Year is absent
	Poster     string
}

// EntryFromFields builds an Entry from a column-name to value mapping.
// Unknown columns are ignored and values are trimmed.
func EntryFromFields(fields map[string]string) Entry {
	get := func(name string) string {
		return strings.TrimSpace(fields[name])
	}
	return Entry{
		Title:      get(FieldTitle),
		Director:   get(FieldDirector),
		Cast:       get(FieldCast),
		Genre:      get(FieldGenre),
		Keywords:   get(FieldKeywords),
		Plot:       get(FieldPlot),
		Year:       get(FieldYear),
		YearBinned: get(FieldYearBinned),
		Poster:     get(FieldPoster),
	}
}

// DisplayYear returns the precise year, falling back to the binned year.
func (e *Entry) DisplayYear() string {
	if e.Year != "" {
		return e.Year
	}
	return e.YearBinned
}

// Result is one row of a recommendation response.
// Score is nil for strategies that rank by order rather than by score.
type Result struct {
	Title    string   `json:"Title"`
	Director string   `json:"Director"`
	Cast     string   `json:"Cast"`
	Genre    string   `json:"Genre"`
	Year     string   `json:"Year"`
	Poster   string   `json:"Poster,omitempty"`
	Plot     string   `json:"Plot,omitempty"`
	Score    *float64 `json:"Score"`
}
