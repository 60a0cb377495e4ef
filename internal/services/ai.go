package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/fooddash-app/fooddash-backend/internal/config"
)

const suggestionSystemPrompt = `You are helping generate menu content for a food delivery admin panel.
Respond ONLY in JSON with:

{
  "description": "short tasty description",
  "variants": ["variant1", "variant2"],
  "imagePrompt": "image generation prompt"
}`

// FoodSuggestion is AI-generated menu copy for the admin panel
type FoodSuggestion struct {
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Suggestions []string `json:"suggestions"`
}

// AIService generates menu-item copy via a chat model. Every failure path
// falls back to canned content; callers never see an error.
type AIService struct {
	client *openai.Client
	model  string
}

// NewAIService creates the suggestion helper. With no API key configured it
// always serves fallbacks.
func NewAIService(cfg config.OpenAIConfig) *AIService {
	if cfg.APIKey == "" {
		return &AIService{model: cfg.ChatModel}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.ChatModel,
	}
}

// Suggest produces a description and variant ideas for a menu item
func (s *AIService) Suggest(ctx context.Context, name string, category string) *FoodSuggestion {
	fallback := &FoodSuggestion{
		Description: fmt.Sprintf("Tasty %s prepared freshly and perfectly balanced.", name),
		ImageURL:    "",
		Suggestions: []string{"Cheese " + name, "Spicy " + name},
	}
	if s.client == nil {
		return fallback
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: suggestionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Food name: %s | Category: %s", name, category)},
		},
	})
	if err != nil {
		log.Printf("❌ AI suggestion call failed: %v", err)
		return fallback
	}
	if len(resp.Choices) == 0 {
		return fallback
	}

	var parsed struct {
		Description string   `json:"description"`
		Variants    []string `json:"variants"`
		ImagePrompt string   `json:"imagePrompt"`
	}
	content := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		log.Printf("❌ AI suggestion returned unparseable JSON: %v", err)
		return fallback
	}

	suggestion := &FoodSuggestion{
		Description: parsed.Description,
		Suggestions: parsed.Variants,
	}
	if strings.TrimSpace(suggestion.Description) == "" {
		suggestion.Description = fmt.Sprintf("A delicious %s made with premium fresh ingredients.", name)
	}
	if len(suggestion.Suggestions) == 0 {
		suggestion.Suggestions = fallback.Suggestions
	}
	return suggestion
}

// stripCodeFence unwraps ```json ... ``` blocks some models insist on
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
