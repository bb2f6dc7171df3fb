package intake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fakecheck/internal/model"
)

func TestParseCSV(t *testing.T) {
	input := `title,content,url
Moon landing faked,"Long, quoted body",https://example.com/a
,,
Only a title,,
`
	items, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []model.CheckRequest{
		{Title: "Moon landing faked", Content: "Long, quoted body", URL: "https://example.com/a"},
		{Title: "Only a title"},
	}, items)
}

func TestParseCSV_ColumnOrderAndCase(t *testing.T) {
	input := "URL, Title\nhttps://example.com/b,Budget approved\n"

	items, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "https://example.com/b", items[0].URL)
	assert.Equal(t, "Budget approved", items[0].Title)
	assert.Empty(t, items[0].Content)
}

func TestParseCSV_ShortRows(t *testing.T) {
	input := "title,content,url\nJust title\n"

	items, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Just title", items[0].Title)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	items, err := ParseCSV(strings.NewReader("title,content,url\n"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv is empty")
}

func TestParseCSV_UnknownHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name,domain\nacme,acme.com\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv header needs one of")
}

func TestParseCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(path, []byte("title\nHello\n"), 0o644))

	items, err := ParseCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, []model.CheckRequest{{Title: "Hello"}}, items)
}

func TestParseCSVFile_Missing(t *testing.T) {
	_, err := ParseCSVFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intake: open csv")
}
