package session

import (
	"time"
)

// Interaction is one free-form exchange: what the player asked or did,
// and what the narrator answered.
type Interaction struct {
	User     string `json:"user"`
	Response string `json:"response"`
}

// State is the mutable record for one player session. It is owned by
// exactly one session identifier and is read-modify-written wholesale on
// each request. Canonical facts are never stored here; they are re-derived
// from the story catalog on every load.
// JSON encoding is defined in marshal.go.
type State struct {
	// StoryIndex references a story by catalog position. Nil means no
	// story is active.
	StoryIndex *int

	// CurrentScene is 0 for the intro and k for the k-th scripted scene.
	CurrentScene int

	// ConversationHistory holds free-form exchanges in chronological
	// order. Bounded by the continuity profile's rolling window.
	ConversationHistory []Interaction

	// DescribedElements tags details already shown to the player this
	// scene. Reset to empty on every scene transition.
	DescribedElements map[string]struct{}

	// StoryFacts are facts extracted from generated text, locked in to
	// prevent later contradiction. FIFO-capped.
	StoryFacts []string

	UpdatedAt time.Time
}

// New returns an empty session with no story active.
func New() *State {
	return &State{
		DescribedElements: make(map[string]struct{}),
	}
}

// HasStory reports whether a story is active.
func (s *State) HasStory() bool {
	return s.StoryIndex != nil
}

// StartStory resets the session wholesale for a fresh run of the given
// story: scene 0, empty history, no described elements, no story facts.
func (s *State) StartStory(storyIndex int) {
	idx := storyIndex
	s.StoryIndex = &idx
	s.CurrentScene = 0
	s.ConversationHistory = nil
	s.DescribedElements = make(map[string]struct{})
	s.StoryFacts = nil
}

// AdvanceScene moves to the next scripted scene and clears the described
// elements for the new location.
func (s *State) AdvanceScene() {
	s.CurrentScene++
	s.DescribedElements = make(map[string]struct{})
}

// AddInteraction appends a free-form exchange to the history.
func (s *State) AddInteraction(user, response string) {
	s.ConversationHistory = append(s.ConversationHistory, Interaction{
		User:     user,
		Response: response,
	})
}

// AddDescribedElement records that a descriptive detail has been shown to
// the player this scene.
func (s *State) AddDescribedElement(tag string) {
	if s.DescribedElements == nil {
		s.DescribedElements = make(map[string]struct{})
	}
	s.DescribedElements[tag] = struct{}{}
}

// HasDescribedElement reports whether a tag is already tracked.
func (s *State) HasDescribedElement(tag string) bool {
	_, ok := s.DescribedElements[tag]
	return ok
}
