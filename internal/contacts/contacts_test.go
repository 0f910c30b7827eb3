package contacts_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/oarkflow/mailmerge/internal/contacts"
)

// writeWorkbook authors a one-sheet fixture workbook and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "contacts.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("keeps only rows with an email", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Sheet1", [][]any{
			{"Email", "Anrede", "Nachname"},
			{"a@x.com", "Herr", "Muller"},
			{"", "Frau", "Schmidt"},
		})

		recs, err := contacts.Load(path, "")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.Equal(t, "a@x.com", recs[0]["email"])
		require.Equal(t, "Muller", recs[0]["nachname"])
	})

	t.Run("headers are case-insensitive", func(t *testing.T) {
		t.Parallel()
		for _, header := range []string{"Email", "EMAIL", "email"} {
			path := writeWorkbook(t, "Sheet1", [][]any{
				{header, "Vorname"},
				{"a@x.com", "Max"},
			})
			recs, err := contacts.Load(path, "")
			require.NoError(t, err)
			require.Len(t, recs, 1)
			require.Equal(t, "a@x.com", recs[0].Get("Email"))
		}
	})

	t.Run("cell values are trimmed", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Sheet1", [][]any{
			{" Email ", "Nachname"},
			{"  a@x.com  ", "  Muller "},
		})
		recs, err := contacts.Load(path, "")
		require.NoError(t, err)
		require.Equal(t, "a@x.com", recs[0]["email"])
		require.Equal(t, "Muller", recs[0]["nachname"])
	})

	t.Run("missing header gets positional name", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Sheet1", [][]any{
			{"Email", "", "Firma"},
			{"a@x.com", "extra", "ACME"},
		})
		recs, err := contacts.Load(path, "")
		require.NoError(t, err)
		require.Equal(t, "extra", recs[0]["column_2"])
		require.Equal(t, "ACME", recs[0]["firma"])
	})

	t.Run("short rows fill remaining columns with empty strings", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Sheet1", [][]any{
			{"Email", "Vorname", "Firma"},
			{"a@x.com"},
		})
		recs, err := contacts.Load(path, "")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		v, ok := recs[0]["firma"]
		require.True(t, ok)
		require.Equal(t, "", v)
	})

	t.Run("unknown columns pass through", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Sheet1", [][]any{
			{"Email", "Kundennummer"},
			{"a@x.com", "4711"},
		})
		recs, err := contacts.Load(path, "")
		require.NoError(t, err)
		require.Equal(t, "4711", recs[0]["kundennummer"])
	})

	t.Run("named sheet", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Kunden", [][]any{
			{"Email"},
			{"a@x.com"},
		})
		recs, err := contacts.Load(path, "Kunden")
		require.NoError(t, err)
		require.Len(t, recs, 1)
	})

	t.Run("missing sheet lists available sheets", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Kunden", [][]any{
			{"Email"},
			{"a@x.com"},
		})
		_, err := contacts.Load(path, "Lieferanten")

		var snf *contacts.SheetNotFoundError
		require.ErrorAs(t, err, &snf)
		require.Equal(t, "Lieferanten", snf.Name)
		require.Contains(t, snf.Available, "Kunden")
		require.Contains(t, err.Error(), "Kunden")
	})

	t.Run("header row only", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Sheet1", [][]any{
			{"Email", "Nachname"},
		})
		_, err := contacts.Load(path, "")
		require.ErrorIs(t, err, contacts.ErrNoContacts)
	})

	t.Run("no row survives the email filter", func(t *testing.T) {
		t.Parallel()
		path := writeWorkbook(t, "Sheet1", [][]any{
			{"Email", "Nachname"},
			{"", "Muller"},
			{"   ", "Schmidt"},
		})
		_, err := contacts.Load(path, "")
		require.ErrorIs(t, err, contacts.ErrNoContacts)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := contacts.Load(filepath.Join(t.TempDir(), "nope.xlsx"), "")
		require.Error(t, err)
	})
}
