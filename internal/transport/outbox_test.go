package transport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oarkflow/mailmerge/internal/message"
	"github.com/oarkflow/mailmerge/internal/transport"
)

func TestOutboxDisplay(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "outbox")
	o := transport.NewOutbox(dir, "me@example.com", "Absender")

	msg := &message.Outgoing{
		To:      "a@x.com",
		Subject: "Einladung",
		HTML:    "<p>Hallo</p>",
		CC:      []string{"b@x.com"},
	}
	require.NoError(t, o.Display(msg))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "001_a@x.com.eml", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "To: a@x.com")
	require.Contains(t, content, "Subject: Einladung")
	require.Contains(t, content, "Cc: b@x.com")
	require.Contains(t, content, "text/html")
}

func TestOutboxSequencesFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "outbox")
	o := transport.NewOutbox(dir, "me@example.com", "")

	require.NoError(t, o.Display(&message.Outgoing{To: "a@x.com", Subject: "1", HTML: "x"}))
	require.NoError(t, o.Send(&message.Outgoing{To: "a@x.com", Subject: "2", HTML: "y"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestOutboxSanitizesRecipient(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "outbox")
	o := transport.NewOutbox(dir, "me@example.com", "")

	require.NoError(t, o.Display(&message.Outgoing{To: "a b/c@x.com", Subject: "s", HTML: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "001_a_b_c@x.com.eml", entries[0].Name())
}
