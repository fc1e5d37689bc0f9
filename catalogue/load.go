package catalogue

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/poiesic/cinematch/core"
)

// Dataset is a loaded catalogue: its column set and entries in file order.
type Dataset struct {
	Columns []string
	Entries []core.Entry
}

// LoadFile loads a catalogue, choosing the format from the file extension.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f)
	case ".json":
		return LoadJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadCSV reads a catalogue whose first row names the columns.
// Short rows leave the trailing columns empty.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", core.ErrSchema)
	}
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}
	if err := core.ValidateSchema(columns); err != nil {
		return nil, err
	}

	var entries []core.Entry
	fields := make(map[string]string, len(columns))
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		clear(fields)
		for i, col := range columns {
			if i < len(record) {
				fields[col] = record[i]
			}
		}
		entries = append(entries, core.EntryFromFields(fields))
	}

	return &Dataset{Columns: columns, Entries: entries}, nil
}

// LoadJSON reads a catalogue stored as an array of objects.
// Numbers keep their literal form, so a Year of 1977 becomes "1977".
func LoadJSON(r io.Reader) (*Dataset, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var rows []map[string]any
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSchema, err)
	}

	seen := make(map[string]struct{})
	var columns []string
	entries := make([]core.Entry, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]string, len(row))
		for key, value := range row {
			name := strings.TrimSpace(key)
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				columns = append(columns, name)
			}
			fields[name] = stringify(value)
		}
		entries = append(entries, core.EntryFromFields(fields))
	}
	slices.Sort(columns)

	if err := core.ValidateSchema(columns); err != nil {
		return nil, err
	}

	return &Dataset{Columns: columns, Entries: entries}, nil
}

// stringify renders a decoded JSON value as catalogue text. Null is empty.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			return fmt.Sprint(v)
		}
		return strings.TrimSpace(buf.String())
	}
}
