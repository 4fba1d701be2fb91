package service

import (
	"context"
	"fmt"
	"strings"

	"aidea-server/utils"
)

const (
	EmptySummaryMessage = "Add some cards to get a summary!"
	placeholderImageURL = "https://picsum.photos/600/400?random="
)

// IdeaService turns board content into prompts and shapes the generated text
// into API responses.
type IdeaService struct {
	ai    Completer
	token func() string
}

func NewIdeaService(ai Completer) *IdeaService {
	return &IdeaService{ai: ai, token: utils.GenerateID}
}

// Suggest asks for three short ideas related to seed. The number returned
// depends on what the model produced.
func (s *IdeaService) Suggest(ctx context.Context, seed string) ([]string, error) {
	text, err := s.ai.Complete(ctx, suggestionPrompt(seed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAIRequestFailed, err)
	}
	return splitIdeas(text), nil
}

// Summarize summarizes the given card texts. An empty board gets a fixed
// message and no AI call.
func (s *IdeaService) Summarize(ctx context.Context, cardTexts []string) (string, error) {
	passage := strings.Join(cardTexts, ". ")
	if passage == "" {
		return EmptySummaryMessage, nil
	}
	summary, err := s.ai.Complete(ctx, summaryPrompt(passage))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAIRequestFailed, err)
	}
	return summary, nil
}

// Visualize returns a random placeholder image URL. No image is generated.
func (s *IdeaService) Visualize() string {
	return placeholderImageURL + s.token()
}

func suggestionPrompt(seed string) string {
	return fmt.Sprintf("Based on the idea '%s', generate 3 very short, creative, related brainstorming ideas. "+
		"Return them as a simple list separated by commas, with no numbering. Example: Idea A, Idea B, Idea C", seed)
}

func summaryPrompt(passage string) string {
	return "Summarize the key themes from these brainstorming notes in 2-3 concise bullet points:\n\n" + passage
}

func splitIdeas(text string) []string {
	ideas := []string{}
	for _, fragment := range strings.Split(text, ",") {
		if idea := strings.TrimSpace(fragment); idea != "" {
			ideas = append(ideas, idea)
		}
	}
	return ideas
}
