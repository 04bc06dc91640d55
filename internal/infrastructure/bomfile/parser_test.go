package bomfile

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser(t *testing.T) {
	t.Run("valid UTF-8 input", func(t *testing.T) {
		data := "MPN,Qty\nNE555DR,10"
		parser, err := NewParser(strings.NewReader(data))

		require.NoError(t, err)
		require.NotNil(t, parser)
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		data := "\xEF\xBB\xBFMPN,Qty\nNE555DR,10"
		parser, err := NewParser(strings.NewReader(data))

		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		headers := parser.Headers()
		assert.Equal(t, "MPN", headers[0])
	})

	t.Run("empty input returns error", func(t *testing.T) {
		parser, err := NewParser(strings.NewReader(""))

		assert.Nil(t, parser)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid encoding returns error", func(t *testing.T) {
		// Latin-1 bytes, not valid UTF-8
		parser, err := NewParser(strings.NewReader("MPN,Qty\nr\xe9sistance,1"))

		assert.Nil(t, parser)
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("tab delimiter", func(t *testing.T) {
		data := "MPN\tQty\nNE555DR\t10"
		parser, err := NewParser(strings.NewReader(data), WithDelimiter('\t'))

		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"MPN", "Qty"}, parser.Headers())
	})
}

func TestParser_ParseHeader(t *testing.T) {
	t.Run("header with spaces trimmed", func(t *testing.T) {
		data := "  Supplier  ,  MPN  ,  Qty  \nMouser,NE555DR,10"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"Supplier", "MPN", "Qty"}, parser.Headers())
	})

	t.Run("duplicate headers get numeric suffix", func(t *testing.T) {
		data := "MPN,Notes,Notes,Notes\nNE555DR,a,b,c"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"MPN", "Notes", "Notes_2", "Notes_3"}, parser.Headers())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "a", row.Get("Notes"))
		assert.Equal(t, "b", row.Get("Notes_2"))
		assert.Equal(t, "c", row.Get("Notes_3"))
	})

	t.Run("blank input has no header", func(t *testing.T) {
		parser, err := NewParser(strings.NewReader("\n"))
		require.NoError(t, err)

		assert.ErrorIs(t, parser.ParseHeader(), ErrMissingHeader)
	})
}

func TestParser_ReadRow(t *testing.T) {
	t.Run("first data row is line 2", func(t *testing.T) {
		data := "MPN,Qty\nNE555DR,10"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, 2, row.LineNumber)
		assert.Equal(t, "NE555DR", row.Get("MPN"))
		assert.Equal(t, "10", row.Get("Qty"))
	})

	t.Run("short row fills missing columns with empty values", func(t *testing.T) {
		data := "MPN,Qty,Designators\nNE555DR"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "NE555DR", row.Get("MPN"))
		assert.Equal(t, "", row.Get("Qty"))
		assert.Equal(t, "", row.Get("Designators"))
	})

	t.Run("GetOrDefault", func(t *testing.T) {
		data := "MPN,Qty\nNE555DR,"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "NE555DR", row.GetOrDefault("MPN", "fallback"))
		assert.Equal(t, "1", row.GetOrDefault("Qty", "1"))
		assert.Equal(t, "none", row.GetOrDefault("missing", "none"))
	})

	t.Run("EOF after last row", func(t *testing.T) {
		data := "MPN\nNE555DR"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		_, err = parser.ReadRow()
		require.NoError(t, err)

		_, err = parser.ReadRow()
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestParser_ReadAllRows(t *testing.T) {
	t.Run("empty rows are skipped but keep numbering", func(t *testing.T) {
		data := "MPN,Qty\n,,\nNE555DR,10"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 3, rows[0].LineNumber)
		assert.Equal(t, "NE555DR", rows[0].Get("MPN"))
	})

	t.Run("blank lines do not shift numbering", func(t *testing.T) {
		data := "MPN\nA\n\nB"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 2, rows[0].LineNumber)
		assert.Equal(t, 4, rows[1].LineNumber)
	})

	t.Run("all rows returned in order", func(t *testing.T) {
		data := "MPN\nA\nB\nC"
		parser, err := NewParser(strings.NewReader(data))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "A", rows[0].Get("MPN"))
		assert.Equal(t, "C", rows[2].Get("MPN"))
		assert.Equal(t, 4, rows[2].LineNumber)
	})
}
