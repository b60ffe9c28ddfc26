package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"jobsight/internal/core/domain"
)

// required columns, matched by header name. Order in the file is free.
var requiredColumns = []string{"Title", "Company", "City", "State", "Experience", "Skills"}

// Store implements ports.DatasetSource over a CSV file on disk. The file
// is read fully into memory in one pass; there is no streaming.
type Store struct {
	path string
}

// New creates a Store for the given path. The path is fixed for the
// lifetime of the process.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads every row of the file and derives the parsed experience for
// each. An unreadable file or a header missing a required column is an
// error; an unparseable experience value only blanks that field, the row
// is kept.
func (s *Store) Load(ctx context.Context) ([]domain.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("dataset %s: missing column %q", s.path, name)
		}
	}

	field := func(record []string, name string) string {
		i := col[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var listings []domain.Listing
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(listings)+2, err)
		}

		l := domain.Listing{
			Title:      field(record, "Title"),
			Company:    field(record, "Company"),
			City:       field(record, "City"),
			State:      field(record, "State"),
			Experience: field(record, "Experience"),
			Skills:     field(record, "Skills"),
		}
		l.ParsedExperience = domain.ParseExperience(l.Experience)
		listings = append(listings, l)
	}

	return listings, nil
}
