package list

import "strings"

// cursorSeparator joins per-target slots. Remote cursor tokens never
// contain it, so joined segments stay unambiguous.
const cursorSeparator = "|"

// EncodeCursor serializes per-target cursor slots into one opaque string.
// An empty slot ("null") serializes to an empty segment. When every slot
// is empty the whole cursor collapses to "": an all-exhausted listing is
// indistinguishable from a fresh start, and both mean "nothing more to
// fetch, start over if re-queried".
func EncodeCursor(slots []string) string {
	live := false
	for _, s := range slots {
		if s != "" {
			live = true
			break
		}
	}
	if !live {
		return ""
	}
	return strings.Join(slots, cursorSeparator)
}

// DecodeCursor parses a compound cursor back into per-target slots.
// An empty string decodes to nil (fresh start for all targets). A cursor
// in the legacy JSON-array serialization is recognized and also treated
// as a fresh start rather than an error, so stale persisted cursors from
// an older schema degrade instead of failing the listing.
func DecodeCursor(s string) []string {
	if s == "" {
		return nil
	}
	if isLegacyCursor(s) {
		return nil
	}
	return strings.Split(s, cursorSeparator)
}

// isLegacyCursor reports whether s is the old JSON-array cursor format
func isLegacyCursor(s string) bool {
	return strings.HasPrefix(s, "[")
}
