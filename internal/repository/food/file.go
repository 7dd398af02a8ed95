// Package food loads raw vendor records from files or Redis/Valkey.
package food

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/ridedine/ridedine/internal/domain"
	"github.com/ridedine/ridedine/internal/domain/catalog"
)

// Format identifies a vendor file encoding.
type Format string

// Supported file formats.
const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported vendor file %q: want .json, .csv or .parquet", path)
	}
}

// FileSource reads vendor records from a local file. It implements usecase/catalog.Source.
type FileSource struct {
	path   string
	format Format
}

// NewFileSource creates a file source; the format follows the extension.
func NewFileSource(path string) (*FileSource, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, format: f}, nil
}

// Records reads and decodes the whole file.
func (s *FileSource) Records(ctx context.Context) ([]catalog.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.format == FormatParquet {
		return readParquet(s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read vendors %s: %w: %w", s.path, domain.ErrSourceUnavailable, err)
	}
	if s.format == FormatCSV {
		return DecodeCSV(bytes.NewReader(data))
	}
	return DecodeJSON(data)
}

// DecodeJSON parses a JSON array of vendor objects. Numbers are kept as
// json.Number so integer prices are not rounded through float64.
func DecodeJSON(data []byte) ([]catalog.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []catalog.RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode vendors json: %w", err)
	}
	if records == nil {
		records = []catalog.RawRecord{}
	}
	return records, nil
}

// DecodeCSV reads a header row followed by data rows. Every value stays a string.
func DecodeCSV(r io.Reader) ([]catalog.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []catalog.RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	// Spreadsheet exports often start with a BOM.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := make([]catalog.RawRecord, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+1, err)
		}
		rec := make(catalog.RawRecord, len(header))
		for i, key := range header {
			rec[strings.TrimSpace(key)] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// parquetRow maps the optional string columns of a vendor parquet file.
type parquetRow struct {
	Name        *string `parquet:"name,optional"`
	CuisineType *string `parquet:"cuisine_type,optional"`
	Proximity   *string `parquet:"proximity,optional"`
	Ratings     *string `parquet:"ratings,optional"`
	FBPageURL   *string `parquet:"fb_page_url,optional"`
	LocationURL *string `parquet:"location_url,optional"`
	Time        *string `parquet:"time,optional"`
	MinPrice    *string `parquet:"min_price,optional"`
	MaxPrice    *string `parquet:"max_price,optional"`
}

func readParquet(path string) ([]catalog.RawRecord, error) {
	rows, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("read vendors parquet %s: %w: %w", path, domain.ErrSourceUnavailable, err)
	}

	records := make([]catalog.RawRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].record()
	}
	return records, nil
}

// record keeps only the columns that are set, so absent values get catalog defaults.
func (r *parquetRow) record() catalog.RawRecord {
	rec := catalog.RawRecord{}
	for key, v := range map[string]*string{
		catalog.KeyName:        r.Name,
		catalog.KeyCuisine:     r.CuisineType,
		catalog.KeyProximity:   r.Proximity,
		catalog.KeyRatings:     r.Ratings,
		catalog.KeyFBPage:      r.FBPageURL,
		catalog.KeyLocationURL: r.LocationURL,
		catalog.KeyTime:        r.Time,
		catalog.KeyMinPrice:    r.MinPrice,
		catalog.KeyMaxPrice:    r.MaxPrice,
	} {
		if v != nil {
			rec[key] = *v
		}
	}
	return rec
}
