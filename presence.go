package recast

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps dotted field paths to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the constructed value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

// joinPath extends a dotted path by one field name.
func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
