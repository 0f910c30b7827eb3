package message_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oarkflow/mailmerge/internal/message"
)

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "mixed separators",
			in:   "a@x.com; b@x.com,c@x.com",
			want: []string{"a@x.com", "b@x.com", "c@x.com"},
		},
		{
			name: "single value",
			in:   "a@x.com",
			want: []string{"a@x.com"},
		},
		{
			name: "pieces are trimmed",
			in:   "  a@x.com ;  b@x.com  ",
			want: []string{"a@x.com", "b@x.com"},
		},
		{
			name: "empty pieces dropped",
			in:   ",;a@x.com;;",
			want: []string{"a@x.com"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "only separators and spaces",
			in:   " ; , ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, message.SplitList(tt.in))
		})
	}
}

func TestFilterAttachments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("pdf"), 0644))

	t.Run("keeps existing files, drops missing and directories", func(t *testing.T) {
		t.Parallel()
		got := message.FilterAttachments([]string{
			existing,
			filepath.Join(dir, "missing.pdf"),
			dir,
		})
		require.Equal(t, []string{existing}, got)
	})

	t.Run("nil input", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, message.FilterAttachments(nil))
	})
}
