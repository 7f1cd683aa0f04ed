package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GooferByte/OfsaaValidator/internal/schema"
)

func threeColTable() *schema.Table {
	return &schema.Table{
		Name:      "Customer",
		Delimiter: "~",
		Encoding:  "UTF-8",
		Columns: []schema.Column{
			{Position: 1, Name: "V_CUSTOMER_ID"},
			{Position: 2, Name: "V_NAME"},
			{Position: 3, Name: "V_COUNTRY"},
		},
	}
}

func TestParse_SplitsOnDelimiter(t *testing.T) {
	input := "C001~Alice~AO\nC002~Bob~PT\n"

	res, err := Parse(strings.NewReader(input), threeColTable())
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"C001", "Alice", "AO"},
		{"C002", "Bob", "PT"},
	}, res.Rows)
	assert.Equal(t, 2, res.Metadata.Records)
	assert.Equal(t, 3, res.Metadata.Columns)
	assert.Equal(t, "UTF-8", res.Metadata.Encoding)
}

func TestParse_KeepsEmptyCells(t *testing.T) {
	res, err := Parse(strings.NewReader("C001~~AO\n"), threeColTable())
	require.NoError(t, err)
	assert.Equal(t, []string{"C001", "", "AO"}, res.Rows[0])
}

func TestParse_SkipsBlankLines(t *testing.T) {
	res, err := Parse(strings.NewReader("C001~Alice~AO\n\n   \nC002~Bob~PT\n"), threeColTable())
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
}

func TestParse_CRLF(t *testing.T) {
	res, err := Parse(strings.NewReader("C001~Alice~AO\r\nC002~Bob~PT\r\n"), threeColTable())
	require.NoError(t, err)
	assert.Equal(t, "AO", res.Rows[0][2])
}

func TestParse_ColumnMismatchIsStructural(t *testing.T) {
	_, err := Parse(strings.NewReader("C001~Alice~AO\nC002~Bob\n"), threeColTable())
	require.Error(t, err)

	var mre *MisalignedRowError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, 2, mre.Line)
	assert.Equal(t, 3, mre.Expected)
	assert.Equal(t, 2, mre.Found)
}

func TestParse_Latin1Decoding(t *testing.T) {
	tbl := threeColTable()
	tbl.Encoding = "ISO-8859-1"

	// 0xE9 is é in Latin-1.
	input := []byte{'C', '0', '0', '1', '~', 'R', 0xE9, '~', 'P', 'T', '\n'}
	res, err := Parse(strings.NewReader(string(input)), tbl)
	require.NoError(t, err)
	assert.Equal(t, "Ré", res.Rows[0][1])
	assert.Equal(t, "ISO-8859-1", res.Metadata.Encoding)
}

func TestParse_UnsupportedEncoding(t *testing.T) {
	tbl := threeColTable()
	tbl.Encoding = "EBCDIC"

	_, err := Parse(strings.NewReader("a~b~c\n"), tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")
}

func TestParse_DefaultDelimiterWhenUnset(t *testing.T) {
	tbl := threeColTable()
	tbl.Delimiter = ""

	res, err := Parse(strings.NewReader("a~b~c\n"), tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, res.Rows[0])
}

func TestRead_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Customer_20251015.dat")
	require.NoError(t, os.WriteFile(path, []byte("C001~Alice~AO\n"), 0o644))

	res, err := Read(path, threeColTable())
	require.NoError(t, err)
	assert.Equal(t, path, res.Metadata.Path)
	assert.Len(t, res.Rows, 1)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.dat"), threeColTable())
	assert.Error(t, err)
}
