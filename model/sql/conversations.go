package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/model"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const DefaultPersona = "You are a helpful assistant in a Telegram group chat."

type (
	conversationService struct {
		*sqlx.DB
		log               zerolog.Logger
		credentialService model.CredentialService
	}

	conversationRow struct {
		ChatID  int64          `db:"chat_id"`
		Persona string         `db:"persona"`
		History sql.NullString `db:"history"`
	}
)

func NewConversationService(db *sqlx.DB, credentialService model.CredentialService) *conversationService {
	return &conversationService{
		DB:                db,
		log:               logger.New("conversationService"),
		credentialService: credentialService,
	}
}

func (db *conversationService) GetOrCreate(ctx context.Context, chat *gotgbot.Chat) (model.Conversation, error) {
	const query = `SELECT chat_id, persona, history FROM conversations WHERE chat_id = ?`

	var row conversationRow
	err := db.GetContext(ctx, &row, query, chat.Id)
	if errors.Is(err, sql.ErrNoRows) {
		return db.create(ctx, chat)
	}
	if err != nil {
		return model.Conversation{}, fmt.Errorf("loading conversation: %w", err)
	}

	conversation := model.Conversation{
		ChatID:  row.ChatID,
		Persona: row.Persona,
	}

	if row.History.Valid && row.History.String != "" {
		if err := json.Unmarshal([]byte(row.History.String), &conversation.History); err != nil {
			// Broken history is dropped, the conversation stays usable
			db.log.Err(err).
				Int64("chat_id", chat.Id).
				Msg("Failed to decode conversation history")
			conversation.History = nil
		}
	}

	return conversation, nil
}

func (db *conversationService) create(ctx context.Context, chat *gotgbot.Chat) (model.Conversation, error) {
	persona := db.credentialService.GetKey("llm_default_persona")
	if persona == "" {
		persona = DefaultPersona
	}

	// Two concurrent commands may race to create the row
	const query = `INSERT INTO conversations (chat_id, persona) VALUES (?, ?) ON DUPLICATE KEY UPDATE chat_id = chat_id`
	_, err := db.ExecContext(ctx, query, chat.Id, persona)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("creating conversation: %w", err)
	}

	db.log.Debug().
		Int64("chat_id", chat.Id).
		Msg("Created conversation")

	return model.Conversation{
		ChatID:  chat.Id,
		Persona: persona,
	}, nil
}

func (db *conversationService) SetHistory(ctx context.Context, chat *gotgbot.Chat, history []model.ChatMessage) error {
	encoded, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding conversation history: %w", err)
	}

	const query = `UPDATE conversations SET history = ? WHERE chat_id = ?`
	_, err = db.ExecContext(ctx, query, string(encoded), chat.Id)
	return err
}

func (db *conversationService) ResetHistory(ctx context.Context, chat *gotgbot.Chat) error {
	const query = `UPDATE conversations SET history = NULL WHERE chat_id = ?`
	_, err := db.ExecContext(ctx, query, chat.Id)
	return err
}
