package pexels

import (
	"fmt"

	"github.com/Brawl345/pexelsbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

// Responder receives the reply events of a command, either plain text or an
// image by URL. Text is Telegram HTML.
type Responder interface {
	Text(text string) error
	Image(url string) error
}

type telegramResponder struct {
	b   *gotgbot.Bot
	msg *gotgbot.Message
}

func newTelegramResponder(b *gotgbot.Bot, msg *gotgbot.Message) *telegramResponder {
	return &telegramResponder{b: b, msg: msg}
}

func (r *telegramResponder) Text(text string) error {
	_, err := r.msg.Reply(r.b, text, utils.DefaultSendOptions())
	return err
}

func (r *telegramResponder) Image(url string) error {
	_, err := r.b.SendPhoto(r.msg.Chat.Id, gotgbot.InputFileByURL(url), &gotgbot.SendPhotoOpts{
		ReplyParameters: &gotgbot.ReplyParameters{
			AllowSendingWithoutReply: true,
			MessageId:                r.msg.MessageId,
		},
		DisableNotification: true,
	})
	if err == nil {
		return nil
	}

	// Telegram only fetches photos up to 5 MB by URL
	log.Err(err).
		Str("url", url).
		Int64("chat_id", r.msg.Chat.Id).
		Msg("Failed to send photo, falling back to link")

	_, err = r.b.SendMessage(r.msg.Chat.Id, fmt.Sprintf("<a href=\"%s\">🖼 Bild öffnen</a>", utils.Escape(url)), &gotgbot.SendMessageOpts{
		ReplyParameters: &gotgbot.ReplyParameters{
			AllowSendingWithoutReply: true,
			MessageId:                r.msg.MessageId,
		},
		DisableNotification: true,
		ParseMode:           gotgbot.ParseModeHTML,
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{
			PreferLargeMedia: true,
			Url:              url,
			ShowAboveText:    true,
		},
	})
	return err
}
