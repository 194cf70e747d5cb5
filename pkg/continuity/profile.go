package continuity

import "strings"

// Profile selects how aggressively a session tracks continuity. The two
// profiles bound prompt size differently: Rich keeps a larger history
// window and extracts story facts; Compact keeps a minimal window and
// skips fact extraction entirely.
type Profile struct {
	Name string

	// SceneChangeKeep is the maximum number of interactions that survive
	// the scene-change filter.
	SceneChangeKeep int

	// RollingWindow bounds the conversation history between scene
	// changes. Applied after every free-form turn.
	RollingWindow int

	// TrackFacts enables story-fact extraction from generated text.
	TrackFacts bool
}

var (
	// ProfileRich is the default: deep history, fact ledger enabled.
	ProfileRich = Profile{
		Name:            "rich",
		SceneChangeKeep: 10,
		RollingWindow:   15,
		TrackFacts:      true,
	}

	// ProfileCompact trades continuity recall for a smaller prompt.
	ProfileCompact = Profile{
		Name:            "compact",
		SceneChangeKeep: 3,
		RollingWindow:   5,
		TrackFacts:      false,
	}
)

// ParseProfile maps a profile name to its configuration. Unknown names
// fall back to the rich profile.
func ParseProfile(name string) Profile {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "compact":
		return ProfileCompact
	default:
		return ProfileRich
	}
}
