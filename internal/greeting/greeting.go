/*
Package greeting builds the formal letter salutation ("Briefanrede") that
opens each generated email.
*/
package greeting

import "strings"

// Formal derives the salutation line from a contact's gender, academic
// title, and name fields. Inputs are trimmed; gender matching is
// case-insensitive and accepts both the German column values ("Herr",
// "Frau") and their English equivalents.
//
// Without a recognized gender the neutral "Guten Tag" form is used,
// followed by the full name when one is present.
func Formal(gender, title, firstName, lastName string) string {
	g := strings.ToLower(strings.TrimSpace(gender))
	t := strings.TrimSpace(title)
	ln := strings.TrimSpace(lastName)
	fn := joinName(firstName, lastName)

	switch g {
	case "herr", "male":
		return strings.TrimSpace("Sehr geehrter " + titlePrefix("Herr", t) + " " + pick(ln, fn))
	case "frau", "female":
		return strings.TrimSpace("Sehr geehrte " + titlePrefix("Frau", t) + " " + pick(ln, fn))
	}
	if fn == "" {
		return "Guten Tag"
	}
	return "Guten Tag " + fn
}

// titlePrefix prepends the salutation word to a title unless the title
// already starts with one, so "Herr Dr." never becomes "Herr Herr Dr.".
func titlePrefix(def, title string) string {
	if title == "" {
		return def
	}
	lower := strings.ToLower(title)
	if strings.HasPrefix(lower, "herr") || strings.HasPrefix(lower, "frau") {
		return title
	}
	return def + " " + title
}

func joinName(firstName, lastName string) string {
	var parts []string
	for _, p := range []string{strings.TrimSpace(firstName), strings.TrimSpace(lastName)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
