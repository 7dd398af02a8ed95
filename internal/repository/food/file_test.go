package food

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/ridedine/ridedine/internal/domain"
	"github.com/ridedine/ridedine/internal/domain/catalog"
	"github.com/ridedine/ridedine/internal/domain/food"
)

const vendorsCSV = `name,cuisine_type,proximity,ratings,fb_page_url,location_url,time,min_price,max_price
Bakery A,Bakery,1500,4.5,https://fb.com/a,https://maps/a,08:00-17:00,50,150
Bakery B,bakery,5000,,https://fb.com/b,https://maps/b,09:00-18:00,300,500
Jollibee,Fast Food,800,4.2,https://fb.com/j,https://maps/j,24/7,60,250
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"vendors.json", FormatJSON, false},
		{"data/Vendors.CSV", FormatCSV, false},
		{"vendors.parquet", FormatParquet, false},
		{"vendors.xlsx", "", true},
		{"vendors", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFileSource_CSV(t *testing.T) {
	src, err := NewFileSource(writeFile(t, "vendors.csv", vendorsCSV))
	require.NoError(t, err)

	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "Bakery A", records[0][catalog.KeyName])
	require.Equal(t, "1500", records[0][catalog.KeyProximity])
	require.Equal(t, "", records[1][catalog.KeyRatings])

	idx, err := catalog.Build(records)
	require.NoError(t, err)
	bakeries, ok := idx.Bucket(food.NewCategory("BAKERY"))
	require.True(t, ok)
	require.Len(t, bakeries, 2)
	require.InDelta(t, 1.5, bakeries[0].ProximityKm(), 1e-9)
	require.False(t, bakeries[1].HasRating())
}

func TestDecodeCSV_StripsBOM(t *testing.T) {
	records, err := DecodeCSV(strings.NewReader("\ufeffname,min_price\nX,10\n"))
	require.NoError(t, err)
	require.Equal(t, "X", records[0][catalog.KeyName])
}

func TestDecodeCSV_Empty(t *testing.T) {
	records, err := DecodeCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestDecodeCSV_RaggedRow(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("name,min_price\nX\n"))
	require.Error(t, err)
}

func TestFileSource_JSONKeepsNumbersExact(t *testing.T) {
	path := writeFile(t, "vendors.json",
		`[{"name":"Mang Inasal","cuisine_type":"Filipino","proximity":1200,"min_price":99,"max_price":"300"}]`)
	src, err := NewFileSource(path)
	require.NoError(t, err)

	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, json.Number("99"), records[0][catalog.KeyMinPrice])
	require.Equal(t, "300", records[0][catalog.KeyMaxPrice])
}

func TestDecodeJSON_Errors(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"name":"x"}`))
	require.Error(t, err)

	records, err := DecodeJSON([]byte(`null`))
	require.NoError(t, err)
	require.NotNil(t, records)
}

func TestFileSource_Parquet(t *testing.T) {
	name, cuisine, proximity := "Bakery A", "Bakery", "1500"
	minPrice, maxPrice := "50", "150"
	path := filepath.Join(t.TempDir(), "vendors.parquet")
	require.NoError(t, parquet.WriteFile(path, []parquetRow{
		{Name: &name, CuisineType: &cuisine, Proximity: &proximity, MinPrice: &minPrice, MaxPrice: &maxPrice},
		{Name: &name},
	}))

	src, err := NewFileSource(path)
	require.NoError(t, err)
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "1500", records[0][catalog.KeyProximity])

	_, hasCuisine := records[1][catalog.KeyCuisine]
	require.False(t, hasCuisine, "null columns must stay absent")

	idx, err := catalog.Build(records)
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultCuisine, idx.Flat()[1].Cuisine())
}

func TestFileSource_MissingFile(t *testing.T) {
	for _, name := range []string{"absent.json", "absent.parquet"} {
		src, err := NewFileSource(filepath.Join(t.TempDir(), name))
		require.NoError(t, err)

		_, err = src.Records(context.Background())
		require.ErrorIs(t, err, domain.ErrSourceUnavailable, name)
	}
}

func TestNewFileSource_UnsupportedExtension(t *testing.T) {
	_, err := NewFileSource("vendors.txt")
	require.Error(t, err)
}
