package model

import (
	"context"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type (
	// ConversationService resolves the LLM conversation that belongs to a chat.
	// GetOrCreate never returns an empty Conversation without an error.
	ConversationService interface {
		GetOrCreate(ctx context.Context, chat *gotgbot.Chat) (Conversation, error)
		SetHistory(ctx context.Context, chat *gotgbot.Chat, history []ChatMessage) error
		ResetHistory(ctx context.Context, chat *gotgbot.Chat) error
	}

	Conversation struct {
		ChatID  int64
		Persona string
		History []ChatMessage
	}

	ChatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// LLMProvider is a single prompt/response call against a language model.
	LLMProvider interface {
		TextChat(ctx context.Context, prompt string, history []ChatMessage, imageURLs []string, systemPrompt string) (*LLMResponse, error)
	}

	LLMResponse struct {
		CompletionText string
	}
)
