// Package engine orchestrates one player turn: it resolves the active
// story, composes the generation prompt, calls the model, runs the
// continuity heuristics over the result, and mutates session state.
// Generation failures never surface as errors; the player always gets a
// readable message.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/cliffhanger/internal/services"
	"github.com/jwebster45206/cliffhanger/pkg/continuity"
	"github.com/jwebster45206/cliffhanger/pkg/prompts"
	"github.com/jwebster45206/cliffhanger/pkg/session"
	"github.com/jwebster45206/cliffhanger/pkg/story"
)

// promptSuffix closes every narrative message so the player always knows
// the floor is theirs.
const promptSuffix = "\n\nWhat do you want to do next?"

// scenesExhaustedMessage is returned by AdvanceScene once every scripted
// scene has been played. No generation happens on this path.
const scenesExhaustedMessage = "You have experienced all the main story scenes. The adventure continues based on your choices and actions." + promptSuffix

// Result is what a turn produces. Image is empty when no scene
// illustration applies. End signals the client to return to story
// selection.
type Result struct {
	Message string `json:"message"`
	Image   string `json:"image,omitempty"`
	End     bool   `json:"end,omitempty"`
}

// Engine executes turns against a story catalog. It is stateless across
// requests; all playthrough state lives in the session.
type Engine struct {
	llm     services.LLMService
	catalog *story.Catalog
	tracker *continuity.Tracker
	logger  *slog.Logger
}

func New(llm services.LLMService, catalog *story.Catalog, tracker *continuity.Tracker, logger *slog.Logger) *Engine {
	return &Engine{
		llm:     llm,
		catalog: catalog,
		tracker: tracker,
		logger:  logger,
	}
}

// StartStory resets the session for a fresh run of the given story and
// returns the scripted intro. The intro is fixed text; no generation
// happens here, but its descriptive elements are extracted so the first
// generated response doesn't repeat them.
func (e *Engine) StartStory(ctx context.Context, st *session.State, storyIndex int) (*Result, error) {
	s, err := e.catalog.Get(storyIndex)
	if err != nil {
		return nil, err
	}

	st.StartStory(storyIndex)
	e.tracker.DescribeElements(st, s.Intro, 0)

	e.logger.Info("Story started", "story", s.Title, "index", storyIndex)

	return &Result{
		Message: s.Intro + promptSuffix,
		Image:   fmt.Sprintf("story%d_1.jpg", storyIndex+1),
	}, nil
}

// AdvanceScene moves the session to the next scripted scene and expands
// its outline into full narrative. Past the last scene it returns a
// fixed open-ended message without generating anything. The choice that
// triggered the advance is accepted but unused; scene order is fixed.
func (e *Engine) AdvanceScene(ctx context.Context, st *session.State, choice string) *Result {
	if !st.HasStory() {
		return &Result{
			Message: "Please select a story first.",
			End:     true,
		}
	}

	s, err := e.catalog.Get(*st.StoryIndex)
	if err != nil {
		e.logger.Error("Session references unknown story", "index", *st.StoryIndex, "error", err)
		return &Result{
			Message: "Please select a story first.",
			End:     true,
		}
	}

	if st.CurrentScene >= s.SceneCount() {
		return &Result{Message: scenesExhaustedMessage}
	}

	st.AdvanceScene()

	outline, err := s.SceneOutline(st.CurrentScene)
	if err != nil {
		// Unreachable after the bounds check above.
		e.logger.Error("Scene outline lookup failed", "scene", st.CurrentScene, "error", err)
		outline = ""
	}

	content := e.expandScene(ctx, st, s, outline)

	// Scene transitions compact the history down to the exchanges that
	// carry story information.
	e.tracker.FilterHistoryForSceneChange(st)

	return &Result{
		Message: content + promptSuffix,
		Image:   fmt.Sprintf("story%d_%d.jpg", *st.StoryIndex+1, st.CurrentScene),
	}
}

// expandScene generates the full narrative for a scene outline. On
// generation failure the raw outline is returned inside an error notice,
// so the story remains playable without the model.
func (e *Engine) expandScene(ctx context.Context, st *session.State, s *story.Story, outline string) string {
	prompt, err := prompts.New().
		WithStory(s).
		WithSession(st).
		ForSceneOutline(outline).
		Build()
	if err != nil {
		e.logger.Error("Failed to build scene prompt", "error", err)
		return fmt.Sprintf("AI Error: %s\n\nFallback: %s", err, outline)
	}

	content, err := e.llm.Generate(ctx, services.GenerateRequest{
		System:      prompt.System,
		User:        prompt.User,
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	})
	if err != nil {
		e.logger.Error("Scene generation failed", "scene", st.CurrentScene, "error", err)
		return fmt.Sprintf("AI Error: %s\n\nFallback: %s", err, outline)
	}

	content = services.EnsureCompleteSentence(content)
	e.tracker.DescribeElements(st, content, st.CurrentScene)
	return content
}

// HandleInput answers free-form player input with generated narrative.
// The exchange is recorded in the conversation history whether or not
// generation succeeded, so the player's action is never forgotten.
func (e *Engine) HandleInput(ctx context.Context, st *session.State, input string) *Result {
	if !st.HasStory() {
		return &Result{
			Message: "Please select a story first to begin your adventure.",
			End:     true,
		}
	}

	s, err := e.catalog.Get(*st.StoryIndex)
	if err != nil {
		e.logger.Error("Session references unknown story", "index", *st.StoryIndex, "error", err)
		return &Result{
			Message: "Please select a story first to begin your adventure.",
			End:     true,
		}
	}

	content := e.respond(ctx, st, s, input)

	st.AddInteraction(input, content)
	e.tracker.TrimRollingHistory(st)

	return &Result{Message: content + promptSuffix}
}

// respond generates a contextual reply to the player's input. On
// generation failure a polite error notice echoing the input is returned
// instead; continuity extraction runs only on real model output.
func (e *Engine) respond(ctx context.Context, st *session.State, s *story.Story, input string) string {
	prompt, err := prompts.New().
		WithStory(s).
		WithSession(st).
		ForUserInput(input).
		Build()
	if err != nil {
		e.logger.Error("Failed to build response prompt", "error", err)
		return fmt.Sprintf("AI Error: %s\n\nI understand you said '%s'. What would you like to do next?", err, input)
	}

	content, err := e.llm.Generate(ctx, services.GenerateRequest{
		System:      prompt.System,
		User:        prompt.User,
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	})
	if err != nil {
		e.logger.Error("Response generation failed", "scene", st.CurrentScene, "error", err)
		return fmt.Sprintf("AI Error: %s\n\nI understand you said '%s'. What would you like to do next?", err, input)
	}

	content = services.EnsureCompleteSentence(content)
	e.tracker.DescribeElements(st, content, st.CurrentScene)
	e.tracker.ExtractStoryFacts(st, content, input)
	return content
}
