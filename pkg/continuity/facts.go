package continuity

import (
	"regexp"
	"strings"

	"github.com/jwebster45206/cliffhanger/pkg/session"
)

// maxStoryFacts bounds the fact ledger. When exceeded, the oldest facts
// are dropped first.
const maxStoryFacts = 40

var quotedDialogue = regexp.MustCompile(`"([^"]+)"`)

// factCategory classifies a sentence by keyword membership. Categories
// are mutually exclusive and tested in order; the first match wins.
type factCategory struct {
	name      string
	keywords  []string
	minLength int
}

var factCategories = []factCategory{
	{
		name:      "character mention",
		keywords:  []string{"dr.", "doctor", "professor", "mr.", "mrs.", "miss", "detective", "officer"},
		minLength: 15,
	},
	{
		name:      "statement",
		keywords:  []string{"said", "told", "admitted", "revealed", "described", "mentioned", "claims", "insists", "denies", "confirms", "knows", "doesn't know", "heard"},
		minLength: 20,
	},
	{
		name:      "discovery",
		keywords:  []string{"find", "found", "discover", "notice", "see", "reveal", "spotted", "observed"},
		minLength: 20,
	},
	{
		name:      "relationship",
		keywords:  []string{"brother", "sister", "uncle", "aunt", "father", "mother", "friend", "colleague", "partner", "associate"},
		minLength: 15,
	},
}

const maxFactLength = 250

// ExtractStoryFacts scans generated text for assertions that must remain
// consistent for the rest of the story: quoted dialogue is recorded as
// what a character said, and key sentences are kept verbatim when they
// mention characters, report statements, describe discoveries, or
// establish relationships. No-op when the profile disables fact tracking.
func (t *Tracker) ExtractStoryFacts(st *session.State, text string, userInput string) {
	if !t.profile.TrackFacts {
		return
	}

	// Anything in quotes is what a character said out loud. Characters
	// are bound by their quoted dialogue in all future generations.
	for _, match := range quotedDialogue.FindAllStringSubmatch(text, -1) {
		quote := match[1]
		if len(quote) > 10 && len(quote) < maxFactLength {
			st.StoryFacts = append(st.StoryFacts, `Character said: "`+quote+`"`)
			t.logger.Debug("Tracked dialogue", "quote", truncate(quote, 60))
		}
	}

	// Sentence-level scan. Exclamations and questions are normalized to
	// periods before splitting.
	normalized := strings.ReplaceAll(text, "!", ".")
	normalized = strings.ReplaceAll(normalized, "?", ".")
	for _, sentence := range strings.Split(normalized, ".") {
		sentence = strings.TrimSpace(sentence)
		lower := strings.ToLower(sentence)

		for _, category := range factCategories {
			if !containsAny(lower, category.keywords) {
				continue
			}
			// First matching category claims the sentence, even when
			// the length gate then rejects it.
			if len(sentence) > category.minLength && len(sentence) < maxFactLength {
				st.StoryFacts = append(st.StoryFacts, sentence)
				t.logger.Debug("Tracked fact", "category", category.name, "sentence", truncate(sentence, 80))
			}
			break
		}
	}

	if len(st.StoryFacts) > maxStoryFacts {
		st.StoryFacts = st.StoryFacts[len(st.StoryFacts)-maxStoryFacts:]
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
