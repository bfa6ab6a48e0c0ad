// Package slug derives stable client identifiers from display names.
package slug

import "strings"

// Fallback is returned when a name contains no alphanumeric characters.
const Fallback = "client"

// Derive maps a display name to its identifier: lowercase, with every run of
// characters outside [a-z0-9] collapsed to a single hyphen and leading or
// trailing hyphens stripped. Deterministic and total; distinct names may
// collide ("Acme Corp" and "acme corp!" share an id), which callers resolve
// last-writer-wins on the name.
func Derive(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}
