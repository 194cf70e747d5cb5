package story

import "fmt"

// Story is a fixed narrative arc: an intro, an ordered list of scene
// outlines, and the canonical facts generated prose must never contradict.
// Stories are immutable after load; a story's identity is its catalog index.
type Story struct {
	Title          string   `json:"title"`
	CanonicalFacts []string `json:"canonical_facts"`
	Intro          string   `json:"intro"`
	Scenes         []string `json:"scenes"`
}

// SceneCount returns the number of scripted scenes, not counting the intro.
func (s *Story) SceneCount() int {
	return len(s.Scenes)
}

// SceneOutline returns the outline for scene n (1-indexed; the intro is
// scene 0 and has no outline).
func (s *Story) SceneOutline(n int) (string, error) {
	if n < 1 || n > len(s.Scenes) {
		return "", fmt.Errorf("scene %d out of range for story %q (1-%d)", n, s.Title, len(s.Scenes))
	}
	return s.Scenes[n-1], nil
}

// Validate checks that a story definition is usable.
func (s *Story) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("story title cannot be empty")
	}
	if s.Intro == "" {
		return fmt.Errorf("story %q has no intro", s.Title)
	}
	if len(s.Scenes) == 0 {
		return fmt.Errorf("story %q has no scenes", s.Title)
	}
	for i, scene := range s.Scenes {
		if scene == "" {
			return fmt.Errorf("story %q scene %d is empty", s.Title, i+1)
		}
	}
	return nil
}
