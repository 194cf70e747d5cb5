// Package continuity implements the heuristics that keep a generated
// narrative internally consistent: it tracks which descriptive details
// have already been shown to the player, extracts facts asserted by the
// generator so later prompts can lock them in, and prunes conversation
// history so prompt size stays bounded across scene transitions.
//
// The scanners are deliberately keyword-and-substring based. Their
// vocabularies and first-match-wins ordering are load-bearing: changing
// them changes which facts get locked in, so treat the lists as frozen.
package continuity

import "log/slog"

// Tracker applies a continuity profile to session state after every
// generated passage. Safe to share across requests; it holds no
// per-session state.
type Tracker struct {
	profile Profile
	logger  *slog.Logger
}

// NewTracker creates a tracker for the given profile.
func NewTracker(profile Profile, logger *slog.Logger) *Tracker {
	return &Tracker{
		profile: profile,
		logger:  logger,
	}
}

// Profile returns the tracker's active profile.
func (t *Tracker) Profile() Profile {
	return t.profile
}
