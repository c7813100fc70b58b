package tableorder

// FilterMode selects which slice of the collection a render pass sees.
type FilterMode string

const (
	FilterAll     FilterMode = "all"
	FilterOrdered FilterMode = "ordered"
)

// ParseFilterMode validates a mode received from the presentation layer.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case FilterAll:
		return FilterAll, nil
	case FilterOrdered:
		return FilterOrdered, nil
	default:
		return "", &ValidationError{Field: "filter", Message: "filter must be one of: all, ordered"}
	}
}

// View projects the collection for display. FilterAll returns the items
// unchanged; FilterOrdered keeps only items with a positive quantity,
// preserving relative order. The input is never mutated.
func View(items []MenuItem, mode FilterMode) []MenuItem {
	if mode != FilterOrdered {
		return items
	}
	out := make([]MenuItem, 0, len(items))
	for i := range items {
		if items[i].Ordered() {
			out = append(out, items[i])
		}
	}
	return out
}
