package prompts

import (
	"strings"
	"testing"

	"github.com/jwebster45206/cliffhanger/pkg/session"
	"github.com/jwebster45206/cliffhanger/pkg/story"
)

func noirStory() *story.Story {
	return &story.Story{
		Title: "The Algerian Eagle - A Nick Nolan Mystery",
		CanonicalFacts: []string{
			"The detective is Nick Nolan.",
			"The statue is called the Algerian Eagle.",
		},
		Intro: "The fog rolled in off the bay.",
		Scenes: []string{
			"Nick visits the mansion.",
			"Nick trails Lefty to the docks.",
		},
	}
}

func melodramaStory() *story.Story {
	return &story.Story{
		Title:  "The Perils of Penelope - A Silent Movie Adventure",
		Intro:  "Our story opens on a humble farm.",
		Scenes: []string{"Penelope is tied to the tracks."},
	}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"noir by title", "The Algerian Eagle - A Nick Nolan Mystery", NoirStylePrompt},
		{"melodrama by title", "The Perils of Penelope - A Silent Movie Adventure", MelodramaStylePrompt},
		{"unknown title gets no style guide", "Some Other Story", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StyleFor(tt.title); got != tt.want {
				t.Errorf("StyleFor(%q) returned the wrong style", tt.title)
			}
		})
	}
}

func TestSceneContextFor(t *testing.T) {
	// Scenes 0-3 have explicit locks
	if got := SceneContextFor(0); !strings.Contains(got.Location, "detective office") {
		t.Errorf("Unexpected scene 0 location: %q", got.Location)
	}
	if got := SceneContextFor(1); !strings.Contains(got.LocationBlock, "MANSION") {
		t.Errorf("Unexpected scene 1 lock: %q", got.LocationBlock)
	}
	if got := SceneContextFor(2); !strings.Contains(got.Location, "docks") {
		t.Errorf("Unexpected scene 2 location: %q", got.Location)
	}

	// Beyond the scripted arc falls back to the generic lock
	got := SceneContextFor(7)
	if got.Location != "Various locations in 1940s San Francisco" {
		t.Errorf("Unexpected fallback location: %q", got.Location)
	}
	if !strings.Contains(got.LocationBlock, "Do not mix elements") {
		t.Errorf("Unexpected fallback lock: %q", got.LocationBlock)
	}
}

func TestBuild_RequiresStoryAndSession(t *testing.T) {
	if _, err := New().WithSession(session.New()).ForUserInput("hi").Build(); err == nil {
		t.Error("Expected error when story is missing")
	}
	if _, err := New().WithStory(noirStory()).ForUserInput("hi").Build(); err == nil {
		t.Error("Expected error when session is missing")
	}
}

func TestBuildSceneExpansion(t *testing.T) {
	st := session.New()
	st.StartStory(0)
	st.AdvanceScene()

	p, err := New().
		WithStory(noirStory()).
		WithSession(st).
		ForSceneOutline("Nick visits the mansion.").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if p.MaxTokens != SceneMaxTokens {
		t.Errorf("Expected %d max tokens, got %d", SceneMaxTokens, p.MaxTokens)
	}
	if p.Temperature != Temperature {
		t.Errorf("Expected temperature %v, got %v", Temperature, p.Temperature)
	}

	// System message: style, title, canonical facts as bullets
	for _, want := range []string{
		"Dashiell Hammett",
		"The Algerian Eagle - A Nick Nolan Mystery",
		"CANONICAL STORY FACTS (NEVER CHANGE):",
		"- The statue is called the Algerian Eagle.",
	} {
		if !strings.Contains(p.System, want) {
			t.Errorf("Expected system message to contain %q", want)
		}
	}

	// User message carries the outline
	if !strings.Contains(p.User, "SCENE OUTLINE TO EXPAND:\nNick visits the mansion.") {
		t.Errorf("Unexpected user message: %q", p.User)
	}
	if !strings.HasSuffix(p.User, "Generate the expanded scene now:") {
		t.Errorf("Unexpected user message suffix: %q", p.User)
	}
}

func TestBuildSceneExpansion_NoCanonicalFacts(t *testing.T) {
	st := session.New()
	st.StartStory(1)
	st.AdvanceScene()

	p, err := New().
		WithStory(melodramaStory()).
		WithSession(st).
		ForSceneOutline("Penelope is tied to the tracks.").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if strings.Contains(p.System, "CANONICAL STORY FACTS") {
		t.Error("Expected no canonical facts block for a story without facts")
	}
	if !strings.Contains(p.System, "silent movie melodrama") {
		t.Error("Expected melodrama style for a Silent Movie title")
	}
}

func TestBuildResponse(t *testing.T) {
	st := session.New()
	st.StartStory(0)
	st.AddDescribedElement("desk lamp")
	st.AddDescribedElement("amber light")
	st.StoryFacts = []string{`Character said: "I never met him."`}
	st.AddInteraction("look around", "The office was quiet.")

	p, err := New().
		WithStory(noirStory()).
		WithSession(st).
		ForUserInput("ask Vivian about her uncle").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if p.MaxTokens != ResponseMaxTokens {
		t.Errorf("Expected %d max tokens, got %d", ResponseMaxTokens, p.MaxTokens)
	}

	// System message: scene lock for the intro scene
	for _, want := range []string{
		"SCENE LOCK - YOU ARE CURRENTLY IN SCENE 0:",
		"Current scene: The fog rolled in off the bay.",
		"Nick Nolan's detective office",
		"CRITICAL ANTI-REPETITION RULES:",
	} {
		if !strings.Contains(p.System, want) {
			t.Errorf("Expected system message to contain %q", want)
		}
	}

	// User message: input, location block, constraints, facts, history
	for _, want := range []string{
		"USER INPUT: ask Vivian about her uncle",
		"LOCATION CONTEXT: LOCATION: Nick's detective office",
		"ALREADY DESCRIBED IN THIS SCENE - ABSOLUTELY DO NOT MENTION AGAIN:\namber light, desk lamp",
		"CANONICAL STORY FACTS - ABSOLUTELY IMMUTABLE (NEVER CHANGE THESE):\n1. The detective is Nick Nolan.",
		"ESTABLISHED FACTS FROM GAMEPLAY - THESE MUST REMAIN CONSISTENT:\n1. Character said: \"I never met him.\"",
		"Exchange 1:\nPlayer asked/did: look around\nYou responded: The office was quiet.",
	} {
		if !strings.Contains(p.User, want) {
			t.Errorf("Expected user message to contain %q", want)
		}
	}
	if !strings.HasSuffix(p.User, "Respond to this input with NEW content that continues from where we left off:") {
		t.Errorf("Unexpected user message suffix: %q", p.User)
	}
}

func TestBuildResponse_SceneOutlineSelection(t *testing.T) {
	s := noirStory()

	// Scene 0 uses the intro
	st := session.New()
	st.StartStory(0)
	p, err := New().WithStory(s).WithSession(st).ForUserInput("look").Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(p.System, "Current scene: The fog rolled in off the bay.") {
		t.Error("Expected intro as the scene 0 outline")
	}

	// Scene 1 uses the first scripted outline
	st.AdvanceScene()
	p, err = New().WithStory(s).WithSession(st).ForUserInput("look").Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(p.System, "Current scene: Nick visits the mansion.") {
		t.Error("Expected first outline as the scene 1 outline")
	}
	if !strings.Contains(p.System, "SCENE LOCK - YOU ARE CURRENTLY IN SCENE 1:") {
		t.Error("Expected scene number in the lock header")
	}
}

func TestBuildResponse_EmptyBlocksOmitted(t *testing.T) {
	st := session.New()
	st.StartStory(0)

	p, err := New().WithStory(melodramaStory()).WithSession(st).ForUserInput("wave").Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, absent := range []string{
		"ALREADY DESCRIBED IN THIS SCENE",
		"CANONICAL STORY FACTS",
		"ESTABLISHED FACTS FROM GAMEPLAY",
		"CONVERSATION HISTORY",
	} {
		if strings.Contains(p.User, absent) {
			t.Errorf("Expected %q block to be omitted when empty", absent)
		}
	}
}
