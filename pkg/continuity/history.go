package continuity

import (
	"strings"

	"github.com/jwebster45206/cliffhanger/pkg/session"
)

// keepKeywords mark interactions that carry story information worth
// carrying across a scene change: dialogue, revelations, relationships.
var keepKeywords = []string{
	"said", "told", "mentioned", "revealed", "explained", "admitted",
	"confessed", "whispered", "asked about", "learned", "discovered",
	"nicholas", "vivian", "uncle", "algerian eagle", "statue", "murder",
	"trust", "suspicious", "relationship", "connection", "secret",
}

// removeKeywords mark location-specific actions that are meaningless once
// the player has left the scene.
var removeKeywords = []string{
	"examined", "looked at", "walked to", "opened", "closed", "touched",
	"picked up", "put down", "sat down", "stood up", "leaned", "moved",
	"desk", "chair", "door", "window", "lamp", "drawer", "shelf",
}

// FilterHistoryForSceneChange decides which past interactions survive a
// scene transition. An interaction survives iff it matches at least one
// keep keyword (in the user input or the response) and no remove keyword
// (in the user input). Survivors are then truncated to the most recent
// SceneChangeKeep, order preserved.
func (t *Tracker) FilterHistoryForSceneChange(st *session.State) {
	if len(st.ConversationHistory) == 0 {
		return
	}

	var filtered []session.Interaction
	for _, interaction := range st.ConversationHistory {
		userInput := strings.ToLower(interaction.User)
		response := strings.ToLower(interaction.Response)

		hasStoryInfo := containsAny(userInput, keepKeywords) || containsAny(response, keepKeywords)
		hasLocationAction := containsAny(userInput, removeKeywords)

		if hasStoryInfo && !hasLocationAction {
			filtered = append(filtered, interaction)
		}
	}

	if len(filtered) > t.profile.SceneChangeKeep {
		filtered = filtered[len(filtered)-t.profile.SceneChangeKeep:]
	}
	st.ConversationHistory = filtered

	t.logger.Debug("Filtered history for scene change", "kept", len(st.ConversationHistory))
}

// TrimRollingHistory bounds the history between scene changes: after
// every free-form turn, only the most recent RollingWindow interactions
// are kept.
func (t *Tracker) TrimRollingHistory(st *session.State) {
	if len(st.ConversationHistory) > t.profile.RollingWindow {
		st.ConversationHistory = st.ConversationHistory[len(st.ConversationHistory)-t.profile.RollingWindow:]
	}
}
