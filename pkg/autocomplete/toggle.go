package autocomplete

import (
	"fmt"
	"sort"
)

// Reconcile computes the selection that results from toggling key.
//
// In multiselect mode the key is removed when present and appended otherwise.
// In single-select mode the key replaces the current value, or clears it when
// it is already the selected one. A single-select selection holding more than
// one value is rejected with ErrInvalidSelection.
func Reconcile(current Selection, key string, multiselect bool) (Selection, error) {
	if key == "" {
		return nil, ErrMissingToggleTarget
	}

	if multiselect {
		if idx := current.Index(key); idx >= 0 {
			out := make(Selection, 0, len(current)-1)
			out = append(out, current[:idx]...)
			return append(out, current[idx+1:]...), nil
		}
		out := make(Selection, 0, len(current)+1)
		out = append(out, current...)
		return append(out, key), nil
	}

	switch len(current) {
	case 0:
		return Selection{key}, nil
	case 1:
		if current[0] == key {
			return Selection{}, nil
		}
		return Selection{key}, nil
	default:
		return nil, fmt.Errorf("%w: single-select field received %d values", ErrInvalidSelection, len(current))
	}
}

// OrderToggled orders the selected items for display. Items the client
// already had keep the client's order; items that were not in clientOrder
// follow them in the order the source returned them.
func OrderToggled(items []DisplayItem, clientOrder Selection) []DisplayItem {
	out := append([]DisplayItem(nil), items...)
	rank := func(item DisplayItem) int {
		if idx := clientOrder.Index(item.Key); idx >= 0 {
			return idx
		}
		return len(clientOrder)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}
