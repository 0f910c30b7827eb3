/*
Package signature resolves the HTML signature fragment appended to every
rendered mail.

Signatures live as .htm files in a per-user store directory, one file per
named signature. The store layout matches the desktop mail client's
(<config dir>/Microsoft/Signatures), so existing signatures are picked up
without any export step.
*/
package signature

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Resolution modes. Anything else is treated as an explicit signature name.
const (
	ModeAuto = "auto"
	ModeNone = "none"
)

// ErrSignatureNotFound signals that no signature could be resolved.
// Callers are expected to downgrade this to a warning and continue with
// an empty signature; a missing signature must never abort a batch.
var ErrSignatureNotFound = errors.New("signature not found")

// DefaultStore returns the per-user signature store directory, or an
// empty string when the user config directory cannot be determined.
func DefaultStore() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "Microsoft", "Signatures")
}

// Resolve loads the signature HTML for the given mode from the store
// directory. ModeNone returns an empty string without touching the disk,
// ModeAuto picks the most recently modified .htm file, and any other mode
// is taken as a signature name and loaded from <store>/<name>.htm.
func Resolve(mode, store string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeNone, "":
		return "", nil
	case ModeAuto:
		return newest(store)
	}
	return named(store, strings.TrimSpace(mode))
}

func named(store, name string) (string, error) {
	path := filepath.Join(store, name+".htm")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSignatureNotFound, path)
	}
	return string(data), nil
}

func newest(store string) (string, error) {
	entries, err := os.ReadDir(store)
	if err != nil {
		return "", fmt.Errorf("%w: signature store %s not readable", ErrSignatureNotFound, store)
	}

	type candidate struct {
		name    string
		modTime time.Time
	}
	var candidates []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".htm") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{name: e.Name(), modTime: info.ModTime()})
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no .htm files in %s", ErrSignatureNotFound, store)
	}

	// Newest first; equal timestamps fall back to filename order so the
	// pick is deterministic.
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].modTime.Equal(candidates[j].modTime) {
			return candidates[i].modTime.After(candidates[j].modTime)
		}
		return candidates[i].name < candidates[j].name
	})

	data, err := os.ReadFile(filepath.Join(store, candidates[0].name))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSignatureNotFound, candidates[0].name)
	}
	return string(data), nil
}
