package continuity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/cliffhanger/pkg/session"
)

// descriptivePatterns is the fixed vocabulary of descriptive phrases the
// tracker scans generated text for. A match is recorded verbatim so the
// next prompt can forbid re-describing it. Matching is case-insensitive.
var descriptivePatterns = []string{
	"gray eyes", "honey-colored hair", "honey colored hair", "lilac perfume", "sapphire ring",
	"amber light", "desk lamp", "coffee cup rings", "coffee rings", "ashtrays",
	"tall for a woman", "head shorter", "elegant", "refined", "composed",
	"fog", "bay", "docks", "mansion", "study", "library", "parlor",
	"butler", "Thomas", "nervous", "wreck", "nervous wreck",
	"leaning back", "toying with", "checkbook", "pocketbook",
	"Turkish tobacco", "cigarette butts", "Marlboro",
	"office", "filing cabinets", "papers",
	"scarred", "fedora", "lefty", "torrino",
}

// characterRule adds a synthetic tag when a character's name co-occurs
// with any word from that character's trait vocabulary. The tag suppresses
// all further physical description of the character within the scene.
type characterRule struct {
	aliases []string
	traits  []string
	kind    string // "appearance" or "description"
	tag     string // derived at init: "<Name> <kind>"
}

var characterRules = []characterRule{
	{
		aliases: []string{"vivian"},
		traits:  []string{"eyes", "hair", "perfume", "jewelry", "ring", "tall", "elegant", "refined"},
		kind:    "appearance",
	},
	{
		aliases: []string{"nick"},
		traits:  []string{"tall", "dark", "rugged", "handsome", "fit"},
		kind:    "appearance",
	},
	{
		aliases: []string{"thomas"},
		traits:  []string{"nervous", "wreck", "butler", "anxious", "worried", "frightened", "scared"},
		kind:    "description",
	},
	{
		aliases: []string{"lefty", "torrino"},
		traits:  []string{"scarred", "scar", "fedora", "hat", "smuggler"},
		kind:    "description",
	},
}

// settingRule adds a "<location> setting" tag when scene-appropriate
// nouns appear, gated on the scene number the text was generated for.
type settingRule struct {
	scene int
	nouns []string
	tag   string
}

var settingRules = []settingRule{
	{scene: 0, nouns: []string{"office", "desk", "lamp", "filing"}, tag: "office setting"},
	{scene: 1, nouns: []string{"mansion", "parlor", "library", "elegant"}, tag: "mansion setting"},
	{scene: 2, nouns: []string{"fog", "docks", "bay", "pier"}, tag: "docks setting"},
}

func init() {
	caser := cases.Title(language.English)
	for i := range characterRules {
		characterRules[i].tag = caser.String(characterRules[i].aliases[0]) + " " + characterRules[i].kind
	}
}

// DescribeElements scans freshly generated text and records every
// descriptive detail it contains, so the prompt composer can instruct the
// generator not to repeat it. Tags only accumulate; the set is cleared by
// the session on scene transitions.
func (t *Tracker) DescribeElements(st *session.State, text string, sceneNumber int) {
	lower := strings.ToLower(text)

	for _, pattern := range descriptivePatterns {
		if strings.Contains(lower, strings.ToLower(pattern)) {
			st.AddDescribedElement(pattern)
		}
	}

	for _, rule := range characterRules {
		if !containsAny(lower, rule.aliases) {
			continue
		}
		if containsAny(lower, rule.traits) {
			st.AddDescribedElement(rule.tag)
		}
	}

	for _, rule := range settingRules {
		if rule.scene == sceneNumber && containsAny(lower, rule.nouns) {
			st.AddDescribedElement(rule.tag)
		}
	}

	t.logger.Debug("Tracked described elements",
		"scene", sceneNumber,
		"total", len(st.DescribedElements))
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
