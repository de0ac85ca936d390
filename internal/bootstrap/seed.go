package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// SeedQuote is one entry of a seed file.
type SeedQuote struct {
	ID       int64  `yaml:"id,omitempty"`
	Quote    string `yaml:"quote"`
	Author   string `yaml:"author"`
	Category string `yaml:"category"`
}

// seedFile accepts either a bare list or a document with a quotes key.
type seedFile struct {
	Quotes []SeedQuote `yaml:"quotes"`
}

// LoadSeedFile reads quotes from a YAML file. Entries without text are
// rejected; author and category may be empty.
func LoadSeedFile(path string) ([]ports.Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	quotes, err := parseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	recs := make([]ports.Record, 0, len(quotes))
	for i, q := range quotes {
		if strings.TrimSpace(q.Quote) == "" {
			return nil, fmt.Errorf("parse seed file %s: entry %d has no quote text", path, i+1)
		}

		rec := ports.Record{
			"quote":    q.Quote,
			"author":   q.Author,
			"category": q.Category,
		}
		if q.ID > 0 {
			rec["id"] = q.ID
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

func parseSeed(data []byte) ([]SeedQuote, error) {
	var list []SeedQuote
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return doc.Quotes, nil
}

// Seed inserts quotes one by one and returns how many were written. Rows
// that already exist are skipped.
func Seed(ctx context.Context, records ports.RecordStore, quotes []ports.Record) (int, error) {
	var inserted int

	for _, q := range quotes {
		_, err := records.InsertRow(ctx, ports.TableQuotes, q)
		if err != nil {
			if domain.IsConflict(err) {
				continue
			}

			return inserted, fmt.Errorf("insert quote %d: %w", inserted+1, err)
		}

		inserted++
	}

	return inserted, nil
}
