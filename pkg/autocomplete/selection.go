package autocomplete

// SentinelUndefined is sent by clients that serialise a missing value.
const SentinelUndefined = "undefined"

// Selection is the ordered set of selected keys, in the order the user picked
// them. It never holds duplicates.
type Selection []string

// DecodeSelection normalises the repeated form values of a field into a
// Selection. Empty strings and the "undefined" sentinel mean "no value";
// duplicates keep their first position.
func DecodeSelection(raw []string) Selection {
	if len(raw) == 0 {
		return Selection{}
	}
	out := make(Selection, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		if isSentinel(value) {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func isSentinel(value string) bool {
	return value == "" || value == SentinelUndefined
}

// Encode returns the values written into the hidden inputs of the response.
func (s Selection) Encode() []string {
	if len(s) == 0 {
		return []string{}
	}
	return append([]string(nil), s...)
}

// Contains reports whether key is selected.
func (s Selection) Contains(key string) bool {
	return s.Index(key) >= 0
}

// Index returns the position of key in the selection, or -1.
func (s Selection) Index(key string) int {
	for i, value := range s {
		if value == key {
			return i
		}
	}
	return -1
}

// Len returns the number of selected keys.
func (s Selection) Len() int { return len(s) }

// Union returns s followed by the keys of extra that are not already present.
func (s Selection) Union(extra ...string) Selection {
	out := append(Selection(nil), s...)
	for _, key := range extra {
		if out.Contains(key) {
			continue
		}
		out = append(out, key)
	}
	return out
}

func (s Selection) set() map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for _, key := range s {
		out[key] = struct{}{}
	}
	return out
}
