package inventory

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/items.json
var datasetFS embed.FS

// record is the on-disk shape of a dataset entry. JSON files are read with
// the YAML decoder, so both formats share these keys.
type record struct {
	ID            string `yaml:"id"`
	MainCategory  string `yaml:"mainCategory"`
	SubCategory   string `yaml:"subCategory"`
	Tag           string `yaml:"tag"`
	ExpireDate    string `yaml:"expireDate"`
	ExpiresInDays *int   `yaml:"expiresInDays"`
	Amount        int    `yaml:"amount"`
	Image         string `yaml:"image"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// DefaultDataset decodes the bundled mock items. Relative expiry offsets are
// resolved against now.
func DefaultDataset(now time.Time) ([]Item, error) {
	raw, err := datasetFS.ReadFile("data/items.json")
	if err != nil {
		return nil, err
	}
	return LoadDataset(bytes.NewReader(raw), now)
}

// LoadDatasetFile reads a JSON or YAML dataset from disk.
func LoadDatasetFile(path string, now time.Time) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return LoadDataset(f, now)
}

// LoadDataset decodes a list of records. Each record needs either an
// absolute expireDate (interpreted in local time when it carries no zone) or
// expiresInDays, which lands on the last millisecond of the local day that
// many days after now.
func LoadDataset(r io.Reader, now time.Time) ([]Item, error) {
	var records []record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if err == io.EOF {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	items := make([]Item, 0, len(records))
	for i, rec := range records {
		expire, err := rec.expiry(now)
		if err != nil {
			return nil, fmt.Errorf("dataset record %d (%s): %w", i, rec.ID, err)
		}
		items = append(items, Item{
			ID:           rec.ID,
			MainCategory: rec.MainCategory,
			SubCategory:  rec.SubCategory,
			Tag:          rec.Tag,
			ExpireDate:   expire,
			Amount:       rec.Amount,
			Image:        rec.Image,
		})
	}
	return items, nil
}

// expiry resolves expireDate or expiresInDays against now.
func (r record) expiry(now time.Time) (time.Time, error) {
	if r.ExpiresInDays != nil {
		return EndOfDay(now, *r.ExpiresInDays), nil
	}
	raw := strings.TrimSpace(r.ExpireDate)
	if raw == "" {
		return time.Time{}, fmt.Errorf("expireDate or expiresInDays is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid expireDate %q", raw)
}

// EndOfDay returns the last millisecond of the local day days after now, so
// the countdown from any instant of now's day is exactly days.
func EndOfDay(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+days+1, 0, 0, 0, 0, now.Location()).Add(-time.Millisecond)
}
