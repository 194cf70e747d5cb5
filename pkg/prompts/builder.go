// Package prompts assembles the model-facing instructions for narrative
// generation: style guide, scene lock, canonical facts, anti-repetition
// constraints, locked-in story facts, and conversation history, in a
// fixed deterministic layout.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/cliffhanger/pkg/session"
	"github.com/jwebster45206/cliffhanger/pkg/story"
)

// Generation budgets. Temperature is kept low for consistent, factual
// responses.
const (
	SceneMaxTokens    = 1000
	ResponseMaxTokens = 600
	Temperature       = 0.5
)

// Mode selects what the generator is asked to produce: a scripted scene
// expanded from its outline, or a contextual reply to free-form input.
// The two modes are mutually exclusive.
type Mode int

const (
	ModeExpandScene Mode = iota
	ModeRespond
)

// Prompt is the composed generation request. System and user are opaque
// strings with no provider-specific behavior.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Builder constructs generation prompts using a fluent interface. It
// reads session state but never mutates it.
type Builder struct {
	story     *story.Story
	sess      *session.State
	mode      Mode
	userInput string
	outline   string
}

// New creates a new prompt builder.
func New() *Builder {
	return &Builder{}
}

// WithStory sets the active story definition.
func (b *Builder) WithStory(s *story.Story) *Builder {
	b.story = s
	return b
}

// WithSession sets the session state the prompt is composed from.
func (b *Builder) WithSession(st *session.State) *Builder {
	b.sess = st
	return b
}

// ForSceneOutline puts the builder in scene-expansion mode.
func (b *Builder) ForSceneOutline(outline string) *Builder {
	b.mode = ModeExpandScene
	b.outline = outline
	return b
}

// ForUserInput puts the builder in respond mode.
func (b *Builder) ForUserInput(input string) *Builder {
	b.mode = ModeRespond
	b.userInput = input
	return b
}

// Build composes the final prompt.
func (b *Builder) Build() (*Prompt, error) {
	if b.story == nil {
		return nil, fmt.Errorf("story is required")
	}
	if b.sess == nil {
		return nil, fmt.Errorf("session is required")
	}

	switch b.mode {
	case ModeExpandScene:
		return b.buildSceneExpansion(), nil
	case ModeRespond:
		return b.buildResponse(), nil
	default:
		return nil, fmt.Errorf("unknown prompt mode %d", b.mode)
	}
}

const sceneSystemTemplate = `You are a master storyteller specializing in classic genre fiction.

%s

STORY CONTEXT:
Title: %s
Previous scenes have established the characters and setting.
%s
STANDARD INSTRUCTIONS:
1. Expand this outline into a rich, detailed scene
2. Add atmospheric descriptions, dialogue, and sensory details
3. Maintain the established character voices and relationships
4. Build tension leading to the choice moment
5. DO NOT include the choice options in your response - end just before the choices
6. Stay true to the genre and time period
7. End with suspense that leads naturally to decision-making
8. CRITICAL: Use EXACT names from canonical facts - never invent alternatives
9. Format with clear paragraph breaks - use double line breaks between paragraphs
10. ALWAYS complete your sentences - never end mid-sentence or mid-thought
11. Focus on NEW story elements and progression - avoid repeating previous scene descriptions`

// buildSceneExpansion composes the prompt that expands a scripted scene
// outline into full narrative. The system message carries only stable
// story context so providers can cache it.
func (b *Builder) buildSceneExpansion() *Prompt {
	canonical := ""
	if len(b.story.CanonicalFacts) > 0 {
		var sb strings.Builder
		sb.WriteString("\nCANONICAL STORY FACTS (NEVER CHANGE):\n")
		for _, fact := range b.story.CanonicalFacts {
			sb.WriteString("- " + fact + "\n")
		}
		canonical = sb.String()
	}

	system := fmt.Sprintf(sceneSystemTemplate, StyleFor(b.story.Title), b.story.Title, canonical)
	user := fmt.Sprintf("SCENE OUTLINE TO EXPAND:\n%s\n\nGenerate the expanded scene now:", b.outline)

	return &Prompt{
		System:      system,
		User:        user,
		MaxTokens:   SceneMaxTokens,
		Temperature: Temperature,
	}
}

const respondSystemTemplate = `You are an interactive storyteller for a text adventure game.

%s

CURRENT STORY CONTEXT:
Title: %s
Current scene: %s
Scene location: %s
Characters present: %s

SCENE LOCK - YOU ARE CURRENTLY IN SCENE %d:
- You MUST stay in this scene location until explicitly told to advance
- You CANNOT jump to other scenes (office, mansion, docks, shop)
- All exploration happens WITHIN the current scene location
- DO NOT generate content from other scene numbers
Scene Description: %s

INTERACTIVE INSTRUCTIONS:
1. This is a pure text adventure - respond to ANY user action or question
2. The user can explore, investigate, talk to characters, or try creative actions
3. Respond in character and maintain the story's atmosphere
4. Describe results of actions realistically within the story world
5. Keep responses engaging and immersive (1-2 paragraphs)
6. Always stay true to the genre and time period
7. Be creative - allow unexpected actions and consequences
8. Format with clear paragraph breaks - use double line breaks between paragraphs
9. End responses naturally without suggesting specific choices
10. ALWAYS complete your sentences - never end mid-sentence or mid-thought

DIALOGUE TRACKING (CRITICAL):
11. When a character speaks, use quotation marks: "Like this"
12. ANYTHING IN QUOTES is what the character SAID OUT LOUD
13. Characters are BOUND by what they say in quotes - if a character says "I don't know him," they DON'T know him
14. Track character knowledge based on quoted dialogue
15. You can write dialogue without speech tags: She shifts. "I don't know him." Her voice wavers.
16. But ALWAYS use quotes for actual speech so we can track what characters know and claim

CRITICAL ANTI-REPETITION RULES:
17. NEVER re-describe settings, rooms, or locations that have already been described
18. NEVER re-mention character physical appearances (eyes, hair, height, perfume, jewelry) once established
19. NEVER re-describe objects, furniture, or atmospheric details already mentioned
20. DO NOT re-describe the room ambiance, lighting, or general setting
21. When a character speaks or acts, focus ONLY on: what they say/do NOW, new information revealed, plot advancement
22. Assume setting and character appearances are already established - skip all physical descriptions
23. If you must reference a character, use their name only - no descriptive modifiers
24. Each response should contain ONLY: new dialogue, new actions, new discoveries, plot progression
25. Think: "What's NEW in this moment?" - describe ONLY that

LOCATION COMPLIANCE IS MANDATORY - You MUST stay in the specified location and NEVER mix elements from other scenes`

// buildResponse composes the prompt for a contextual reply to free-form
// user input. The canonical-facts block is derived purely from the story
// definition, so it is identical across every generation within a story.
func (b *Builder) buildResponse() *Prompt {
	sceneOutline := b.currentSceneOutline()
	sceneCtx := SceneContextFor(b.sess.CurrentScene)

	system := fmt.Sprintf(respondSystemTemplate,
		StyleFor(b.story.Title),
		b.story.Title,
		sceneOutline,
		sceneCtx.Location,
		sceneCtx.Characters,
		b.sess.CurrentScene,
		sceneOutline)

	user := fmt.Sprintf("USER INPUT: %s\n\nLOCATION CONTEXT: %s\n\n%s\n\n%s%s\n\n%sRespond to this input with NEW content that continues from where we left off:",
		b.userInput,
		sceneCtx.LocationBlock,
		b.describedElementsBlock(),
		b.canonicalFactsBlock(),
		b.storyFactsBlock(),
		b.historyBlock())

	return &Prompt{
		System:      system,
		User:        user,
		MaxTokens:   ResponseMaxTokens,
		Temperature: Temperature,
	}
}

// currentSceneOutline returns the text the current scene was generated
// from: the intro for scene 0, the matching outline for scripted scenes.
func (b *Builder) currentSceneOutline() string {
	if b.sess.CurrentScene == 0 {
		return b.story.Intro
	}
	if b.sess.CurrentScene < len(b.story.Scenes) {
		return b.story.Scenes[b.sess.CurrentScene-1]
	}
	return ""
}

// describedElementsBlock renders the negative constraint: everything
// already shown to the player this scene, sorted for determinism.
func (b *Builder) describedElementsBlock() string {
	if len(b.sess.DescribedElements) == 0 {
		return ""
	}

	elements := make([]string, 0, len(b.sess.DescribedElements))
	for tag := range b.sess.DescribedElements {
		elements = append(elements, tag)
	}
	sort.Strings(elements)

	return fmt.Sprintf(`ALREADY DESCRIBED IN THIS SCENE - ABSOLUTELY DO NOT MENTION AGAIN:
%s

CRITICAL: You MUST NOT re-describe any of these elements.
- If "Thomas description" is listed, DO NOT describe Thomas as nervous, a wreck, anxious, etc.
- If "Vivian appearance" is listed, DO NOT mention her eyes, hair, perfume, or jewelry
- If character descriptions are listed, refer to them by NAME ONLY with NO descriptive words
- Focus ONLY on what is NEW in this moment - new actions, new dialogue, new discoveries
- Example: Write "Thomas speaks" NOT "The nervous butler speaks"
`, strings.Join(elements, ", "))
}

// canonicalFactsBlock renders the immutable author-specified facts. It is
// never omitted when the story defines any.
func (b *Builder) canonicalFactsBlock() string {
	if len(b.story.CanonicalFacts) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("CANONICAL STORY FACTS - ABSOLUTELY IMMUTABLE (NEVER CHANGE THESE):\n")
	for i, fact := range b.story.CanonicalFacts {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, fact))
	}
	sb.WriteString(`
LOCKED: These facts are PERMANENT and UNCHANGEABLE. They define the core story elements.
- Character names NEVER change
- Named objects keep their EXACT names - never substitute another name
- Established deaths, relationships, and connections NEVER change
- ALL canonical facts must be referenced EXACTLY as written above

`)
	return sb.String()
}

// storyFactsBlock renders the locked-in facts extracted during play.
func (b *Builder) storyFactsBlock() string {
	if len(b.sess.StoryFacts) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("ESTABLISHED FACTS FROM GAMEPLAY - THESE MUST REMAIN CONSISTENT:\n")
	for i, fact := range b.sess.StoryFacts {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, fact))
	}
	sb.WriteString(`
CRITICAL: These facts emerged during gameplay and are LOCKED IN. You CANNOT contradict them. If a character said they saw something, they cannot later deny it. If evidence was discovered, it stays discovered. Build on these facts, don't reverse them.

`)
	return sb.String()
}

// historyBlock renders the full conversation history in chronological
// order, each pair as what the player asked/did and what the narrator
// responded.
func (b *Builder) historyBlock() string {
	if len(b.sess.ConversationHistory) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`CONVERSATION HISTORY - EVERYTHING THAT HAS HAPPENED IN THIS SCENE:
(Characters REMEMBER all of this. You MUST maintain continuity with these exchanges.)

`)
	for i, interaction := range b.sess.ConversationHistory {
		sb.WriteString(fmt.Sprintf("Exchange %d:\n", i+1))
		sb.WriteString("Player asked/did: " + interaction.User + "\n")
		sb.WriteString("You responded: " + interaction.Response + "\n")
		sb.WriteString("---\n\n")
	}
	sb.WriteString(`CRITICAL CONTINUITY RULES:
- Characters REMEMBER everything from these exchanges
- QUOTED DIALOGUE = CHARACTER SPEECH: Anything in quotes is what a character said out loud
- If a character mentioned someone, they KNOW about them in future responses
- If a character said something in quotes, they SAID IT - track their knowledge accordingly
- If information was revealed, it STAYS revealed - don't contradict it
- Build on what was said, don't reset or forget
- Maintain consistent character knowledge and awareness

`)
	return sb.String()
}
