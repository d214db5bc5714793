package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory xlsx whose first sheet holds cells.
func workbook(t *testing.T, cells map[string]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_HeadersBecomeKeys(t *testing.T) {
	data := workbook(t, map[string]any{
		"A1": "name", "B1": "date", "C1": "member count",
		"A2": "Robot Arm", "B2": 45078, "C2": "3, M",
		"A3": "Game Jam", "B3": "2022-11-05", "C3": "5",
	})

	records, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, rec := range records {
		assert.Equal(t, []string{"name", "date", "member count"}, rec.Keys())
	}

	name, ok := records[0].Get("name").Str()
	assert.True(t, ok)
	assert.Equal(t, "Robot Arm", name)

	serial, ok := records[0].Get("date").Num()
	assert.True(t, ok, "numeric cells stay numbers")
	assert.Equal(t, float64(45078), serial)

	date, ok := records[1].Get("date").Str()
	assert.True(t, ok)
	assert.Equal(t, "2022-11-05", date)

	count, ok := records[1].Get("member count").Str()
	assert.True(t, ok, "text that looks numeric stays text")
	assert.Equal(t, "5", count)
}

func TestParse_EmptyCellsAreNotKeys(t *testing.T) {
	data := workbook(t, map[string]any{
		"A1": "name", "B1": "image", "C1": "details",
		"A2": "Only name",
		"A3": "Everything", "B3": "https://img", "C3": "text",
	})

	records, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"name"}, records[0].Keys())
	assert.False(t, records[0].Has("image"))
	assert.Equal(t, 3, records[1].Len())
}

func TestParse_SkipsBlankRows(t *testing.T) {
	data := workbook(t, map[string]any{
		"A1": "name",
		"A2": "first",
		"A4": "third",
	})

	records, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Get("name").Text())
	assert.Equal(t, "third", records[1].Get("name").Text())
}

func TestParse_CellsPastHeaderGetEmptyKeys(t *testing.T) {
	data := workbook(t, map[string]any{
		"A1": "name", "B1": "details",
		"A2": "Arm", "B2": "text", "C2": "orphan",
		"A3": "Jam", "E3": "far",
	})

	records, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"name", "details", "__EMPTY"}, records[0].Keys())
	orphan, _ := records[0].Get("__EMPTY").Str()
	assert.Equal(t, "orphan", orphan)

	assert.Equal(t, []string{"name", "__EMPTY_2"}, records[1].Keys())
	far, _ := records[1].Get("__EMPTY_2").Str()
	assert.Equal(t, "far", far)
}

func TestParse_HeaderOnlyYieldsEmptySequence(t *testing.T) {
	data := workbook(t, map[string]any{"A1": "name", "B1": "details"})

	records, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestParse_BooleansBecomeText(t *testing.T) {
	data := workbook(t, map[string]any{
		"A1": "featured",
		"A2": true,
		"A3": false,
	})

	records, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, String("TRUE"), records[0].Get("featured"))
	assert.Equal(t, String("FALSE"), records[1].Get("featured"))
}

func TestParse_UsesFirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "from first"))
	_, err := f.NewSheet("Archive")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Archive", "A1", "name"))
	require.NoError(t, f.SetCellValue("Archive", "A2", "from archive"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "from first", records[0].Get("name").Text())
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("definitely not a zip archive"))
	assert.Error(t, err)
}

func TestHeaderNames(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "unique", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "blank", in: []string{"a", "", ""}, want: []string{"a", "__EMPTY", "__EMPTY_1"}},
		{name: "duplicate", in: []string{"name", "name", "name"}, want: []string{"name", "name_1", "name_2"}},
		{name: "suffix collision", in: []string{"x_1", "x", "x"}, want: []string{"x_1", "x", "x_2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, headerNames(tt.in))
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		typ  excelize.CellType
		want Value
	}{
		{name: "number", raw: "44958", typ: excelize.CellTypeUnset, want: Number(44958)},
		{name: "explicit number", raw: "1.5", typ: excelize.CellTypeNumber, want: Number(1.5)},
		{name: "shared string digits", raw: "42", typ: excelize.CellTypeSharedString, want: String("42")},
		{name: "inline string", raw: "hi", typ: excelize.CellTypeInlineString, want: String("hi")},
		{name: "bool", raw: "1", typ: excelize.CellTypeBool, want: String("TRUE")},
		{name: "untyped text", raw: "n/a", typ: excelize.CellTypeUnset, want: String("n/a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerce(tt.raw, tt.typ))
		})
	}
}
