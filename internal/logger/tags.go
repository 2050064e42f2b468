package logger

import "strings"

// Categories used by the engine's own diagnostic logging.
const (
	TagAtom       = "ATOM"
	TagObservable = "OBSERVABLE"
	TagDerivation = "DERIVATION"
	TagComputed   = "COMPUTED"
	TagReaction   = "REACTION"
	TagBatch      = "BATCH"
	TagPropagate  = "PROPAGATE"
	TagGuard      = "GUARD"
)

// CoreGroup is every category emitted by the dependency-tracking core.
var CoreGroup = []string{
	TagAtom, TagObservable, TagDerivation, TagComputed,
	TagReaction, TagBatch, TagPropagate, TagGuard,
}

// MinimalGroup logs only guard-rail violations and reaction failures.
var MinimalGroup = []string{TagGuard, TagReaction}

// EnableGroup enables every category in a group.
func EnableGroup(group []string) {
	for _, tag := range group {
		EnableCategory(tag)
	}
}

// DisableGroup disables every category in a group.
func DisableGroup(group []string) {
	for _, tag := range group {
		DisableCategory(tag)
	}
}

// ParseDebugTags parses a comma-separated category list, e.g.
// "atom,computed,reaction", honoring the special group names "core"
// and "minimal".
func ParseDebugTags(tags string) []string {
	if tags == "" {
		return nil
	}

	switch tags {
	case "core", "all":
		return CoreGroup
	case "minimal":
		return MinimalGroup
	}

	result := []string{}
	for _, tag := range strings.Split(strings.ToUpper(tags), ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			result = append(result, tag)
		}
	}
	return result
}
