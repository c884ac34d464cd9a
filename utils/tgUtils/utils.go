package tgUtils

import (
	"strings"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

var log = logger.New("tgUtils")

type ReactionFallbackOpts struct {
	Fallback string
}

func AnyText(message *gotgbot.Message) string {
	text := message.Text
	if message.Text == "" {
		text = message.Caption
	}
	return text
}

func IsReply(message *gotgbot.Message) bool {
	return message.ReplyToMessage != nil
}

// AddRectionWithFallback reacts to the message with the given emoji. If the
// chat does not allow that reaction, the fallback text is sent instead.
func AddRectionWithFallback(b *gotgbot.Bot, message *gotgbot.Message, emoji string, opts *ReactionFallbackOpts) error {
	_, err := b.SetMessageReaction(message.Chat.Id, message.MessageId, &gotgbot.SetMessageReactionOpts{
		Reaction: []gotgbot.ReactionType{
			gotgbot.ReactionTypeEmoji{Emoji: emoji},
		},
	})
	if err == nil {
		return nil
	}

	if opts == nil || opts.Fallback == "" {
		return err
	}

	if !strings.Contains(err.Error(), ErrReactionInvalid) {
		log.Err(err).
			Int64("chat_id", message.Chat.Id).
			Msg("Failed to set reaction, sending fallback")
	}

	_, err = message.Reply(b, opts.Fallback, utils.DefaultSendOptions())
	return err
}
