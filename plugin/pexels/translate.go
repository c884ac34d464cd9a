package pexels

import (
	"context"
	"strings"

	"github.com/Brawl345/pexelsbot/model"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

const (
	translationPrompt = "Translate the following text to English and output only the translation"

	// MaxHistory is the number of messages kept per conversation
	MaxHistory = 10
)

// containsCJK reports whether s has a rune in the CJK Unified Ideographs block.
func containsCJK(s string) bool {
	for _, r := range s {
		if r >= '一' && r <= '龥' {
			return true
		}
	}
	return false
}

// effectiveQuery returns the English translation of term when it contains CJK
// characters and the provider answers, otherwise term itself.
func (p *Plugin) effectiveQuery(ctx context.Context, chat *gotgbot.Chat, term string) string {
	if !containsCJK(term) {
		return term
	}

	if p.provider == nil {
		log.Warn().Str("term", term).Msg("No LLM provider configured, searching untranslated")
		return term
	}

	conversation, err := p.conversationService.GetOrCreate(ctx, chat)
	if err != nil {
		log.Err(err).
			Int64("chat_id", chat.Id).
			Str("term", term).
			Msg("Failed to get conversation")
		return term
	}

	response, err := p.provider.TextChat(ctx, translationPrompt+"\n\n"+term, conversation.History, []string{}, conversation.Persona)
	if err != nil {
		log.Err(err).
			Int64("chat_id", chat.Id).
			Str("term", term).
			Msg("Failed to translate search term")
		return term
	}

	if response == nil {
		log.Error().Str("term", term).Msg("Translation returned no response")
		return term
	}

	translated := strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(response.CompletionText))
	if translated == "" {
		log.Error().Str("term", term).Msg("Translation is empty")
		return term
	}

	log.Debug().
		Str("term", term).
		Str("translated", translated).
		Msg("Translated search term")

	history := appendHistory(conversation.History,
		model.ChatMessage{Role: model.RoleUser, Content: term},
		model.ChatMessage{Role: model.RoleAssistant, Content: translated},
	)
	if err := p.conversationService.SetHistory(ctx, chat, history); err != nil {
		log.Err(err).
			Int64("chat_id", chat.Id).
			Msg("Failed to save conversation history")
	}

	return translated
}

// appendHistory returns a new slice with messages appended, keeping the last MaxHistory entries.
func appendHistory(history []model.ChatMessage, messages ...model.ChatMessage) []model.ChatMessage {
	combined := make([]model.ChatMessage, 0, len(history)+len(messages))
	combined = append(combined, history...)
	combined = append(combined, messages...)
	if len(combined) > MaxHistory {
		combined = combined[len(combined)-MaxHistory:]
	}
	return combined
}
