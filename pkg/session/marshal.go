package session

import (
	"encoding/json"
	"sort"
	"time"
)

// stateJSON is the wire form of State. Described elements travel as a
// sorted list so that stored sessions are deterministic.
type stateJSON struct {
	StoryIndex          *int          `json:"story_index,omitempty"`
	CurrentScene        int           `json:"current_scene"`
	ConversationHistory []Interaction `json:"conversation_history,omitempty"`
	DescribedElements   []string      `json:"described_elements,omitempty"`
	StoryFacts          []string      `json:"story_facts,omitempty"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

func (s *State) MarshalJSON() ([]byte, error) {
	elements := make([]string, 0, len(s.DescribedElements))
	for tag := range s.DescribedElements {
		elements = append(elements, tag)
	}
	sort.Strings(elements)

	return json.Marshal(stateJSON{
		StoryIndex:          s.StoryIndex,
		CurrentScene:        s.CurrentScene,
		ConversationHistory: s.ConversationHistory,
		DescribedElements:   elements,
		StoryFacts:          s.StoryFacts,
		UpdatedAt:           s.UpdatedAt,
	})
}

func (s *State) UnmarshalJSON(data []byte) error {
	var wire stateJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	s.StoryIndex = wire.StoryIndex
	s.CurrentScene = wire.CurrentScene
	s.ConversationHistory = wire.ConversationHistory
	s.StoryFacts = wire.StoryFacts
	s.UpdatedAt = wire.UpdatedAt
	s.DescribedElements = make(map[string]struct{}, len(wire.DescribedElements))
	for _, tag := range wire.DescribedElements {
		s.DescribedElements[tag] = struct{}{}
	}
	return nil
}
