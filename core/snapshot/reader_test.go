package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArchive writes raw entries (name -> content) into a zip.
func buildArchive(t *testing.T, entries map[string]string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return bytes.NewReader(buf.Bytes())
}

func TestParseCSV(t *testing.T) {
	t.Run("TrimsAndSkipsBlankLines", func(t *testing.T) {
		src := "\ufeff swis_code , book,page\n SWIS-1 ,BOOK-000, PAGE-01 \n\nSWIS-2,BOOK-001,PAGE-02\n"
		records, err := ParseCSV(strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, []string{"swis_code", "book", "page"}, records[0].Columns())
		assert.Equal(t, "SWIS-1", records[0].Get("swis_code"))
		assert.Equal(t, "PAGE-01", records[0].Get("page"))
		assert.Equal(t, 2, records[0].Line)
		assert.Equal(t, "SWIS-2", records[1].Get("swis_code"))
		assert.Equal(t, 4, records[1].Line)
	})

	t.Run("RaggedRows", func(t *testing.T) {
		records, err := ParseCSV(strings.NewReader("a,b,c\n1,2\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)

		v, ok := records[0].Lookup("c")
		assert.False(t, ok)
		assert.Empty(t, v)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, records[0].Map())
	})

	t.Run("QuotedValues", func(t *testing.T) {
		records, err := ParseCSV(strings.NewReader("street_name,sale_price\n\"Main St, Apt 2\",100.00\n"))
		require.NoError(t, err)
		assert.Equal(t, "Main St, Apt 2", records[0].Get("street_name"))
	})

	t.Run("PaddedQuotedValues", func(t *testing.T) {
		src := "swis_code, street_name ,book\nSWIS-1, \"Main St, Apt 2\" ,B1\nSWIS-2,\t\"Say \"\"Hi\"\" \"\t,B2\r\n"
		records, err := ParseCSV(strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Main St, Apt 2", records[0].Get("street_name"))
		assert.Equal(t, "B1", records[0].Get("book"))
		assert.Equal(t, 2, records[0].Line)
		assert.Equal(t, `Say "Hi"`, records[1].Get("street_name"))
		assert.Equal(t, "B2", records[1].Get("book"))
		assert.Equal(t, 3, records[1].Line)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		records, err := ParseCSV(strings.NewReader("a,b\n"))
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("BrokenQuote", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("a,b\n\"unterminated,2\n"))
		assert.Error(t, err)
	})
}

func TestReader_ReadArchive(t *testing.T) {
	csv := "swis_code,book\nSWIS-1,BOOK-000\n"

	t.Run("NamedEntryCaseInsensitive", func(t *testing.T) {
		ra := buildArchive(t, map[string]string{"0122_CUR.CSV": csv, "readme.txt": "x"})
		records, err := Reader{EntryName: "0122_CUR.csv"}.ReadArchive(ra, ra.Size())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "BOOK-000", records[0].Get("book"))
	})

	t.Run("NamedEntryInFolder", func(t *testing.T) {
		ra := buildArchive(t, map[string]string{"export/0122_cur.csv": csv})
		records, err := Reader{EntryName: "0122_CUR.csv"}.ReadArchive(ra, ra.Size())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("MissingNamedEntry", func(t *testing.T) {
		ra := buildArchive(t, map[string]string{"other.csv": csv})
		_, err := Reader{EntryName: "0122_CUR.csv"}.ReadArchive(ra, ra.Size())
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("SingleUnnamedEntry", func(t *testing.T) {
		ra := buildArchive(t, map[string]string{"data.csv": csv, "__MACOSX/._data.csv": "junk"})
		records, err := Reader{}.ReadArchive(ra, ra.Size())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("AmbiguousUnnamedEntries", func(t *testing.T) {
		ra := buildArchive(t, map[string]string{"a.csv": csv, "b.csv": csv})
		_, err := Reader{}.ReadArchive(ra, ra.Size())
		assert.ErrorIs(t, err, ErrAmbiguousEntry)
	})

	t.Run("NoTabularEntry", func(t *testing.T) {
		ra := buildArchive(t, map[string]string{"readme.txt": "x"})
		_, err := Reader{}.ReadArchive(ra, ra.Size())
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("NotAnArchive", func(t *testing.T) {
		ra := bytes.NewReader([]byte("plain text"))
		_, err := Reader{}.ReadArchive(ra, ra.Size())
		assert.Error(t, err)
	})
}

func TestWriteArchive_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	header := []string{"swis_code", "street_name"}
	rows := [][]string{{"SWIS-1", "Street, \"North\""}, {"SWIS-2", "Street2"}}

	require.NoError(t, WriteArchive(&buf, "0122_CUR.csv", header, rows))

	ra := bytes.NewReader(buf.Bytes())
	records, err := Reader{EntryName: "0122_CUR.csv"}.ReadArchive(ra, ra.Size())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Street, \"North\"", records[0].Get("street_name"))
	assert.Equal(t, "SWIS-2", records[1].Get("swis_code"))
}
