package allow

import (
	"fmt"
	"regexp"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/model"
	"github.com/Brawl345/pexelsbot/plugin"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/Brawl345/pexelsbot/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
)

var log = logger.New("allow")

type Plugin struct {
	allowService model.AllowService
}

func New(service model.AllowService) *Plugin {
	return &Plugin{
		allowService: service,
	}
}

func (*Plugin) Name() string {
	return "allow"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return nil // Superuser only
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/allow(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onAllow,
			AdminOnly:   true,
			GroupOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/deny(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onDeny,
			AdminOnly:   true,
			GroupOnly:   true,
		},
	}
}

func (p *Plugin) onAllow(b *gotgbot.Bot, c plugin.GobotContext) error {
	msg := c.EffectiveMessage

	if tgUtils.IsReply(msg) && msg.ReplyToMessage.From != nil {
		user := msg.ReplyToMessage.From
		if user.IsBot {
			_, err := msg.Reply(b, "🤖🤖🤖", utils.DefaultSendOptions())
			return err
		}

		name := utils.Escape(user.FirstName)
		if p.allowService.IsUserAllowed(user) {
			return confirm(b, msg, fmt.Sprintf("✅ <b>%s</b> darf den Bot bereits überall benutzen.", name))
		}
		if err := p.allowService.AllowUser(user); err != nil {
			return fail(b, msg, err, user.Id, "❌ Fehler beim Erlauben des Nutzers.")
		}
		return confirm(b, msg, fmt.Sprintf("✅ <b>%s</b> darf den Bot jetzt überall benutzen.", name))
	}

	if p.allowService.IsChatAllowed(c.EffectiveChat) {
		return confirm(b, msg, "✅ Dieser Chat darf den Bot bereits nutzen.")
	}
	if err := p.allowService.AllowChat(c.EffectiveChat); err != nil {
		return fail(b, msg, err, c.EffectiveChat.Id, "❌ Fehler beim Erlauben des Chats.")
	}
	return confirm(b, msg, "✅ Dieser Chat darf den Bot jetzt nutzen.")
}

func (p *Plugin) onDeny(b *gotgbot.Bot, c plugin.GobotContext) error {
	msg := c.EffectiveMessage

	if tgUtils.IsReply(msg) && msg.ReplyToMessage.From != nil {
		user := msg.ReplyToMessage.From
		if user.IsBot {
			_, err := msg.Reply(b, "🤖🤖🤖", utils.DefaultSendOptions())
			return err
		}

		name := utils.Escape(user.FirstName)
		if !p.allowService.IsUserAllowed(user) {
			return confirm(b, msg, fmt.Sprintf("✅ <b>%s</b> darf den Bot nicht überall benutzen.", name))
		}
		if err := p.allowService.DenyUser(user); err != nil {
			return fail(b, msg, err, user.Id, "❌ Fehler beim Verweigern des Nutzers.")
		}
		return confirm(b, msg, fmt.Sprintf("✅ <b>%s</b> darf den Bot jetzt nicht mehr überall benutzen.", name))
	}

	if !p.allowService.IsChatAllowed(c.EffectiveChat) {
		return confirm(b, msg, "✅ Dieser Chat darf den Bot nicht nutzen.")
	}
	if err := p.allowService.DenyChat(c.EffectiveChat); err != nil {
		return fail(b, msg, err, c.EffectiveChat.Id, "❌ Fehler beim Verweigern des Chats.")
	}
	return confirm(b, msg, "✅ Dieser Chat darf den Bot jetzt nicht mehr nutzen.")
}

func confirm(b *gotgbot.Bot, msg *gotgbot.Message, fallback string) error {
	return tgUtils.AddRectionWithFallback(b, msg, "👍", &tgUtils.ReactionFallbackOpts{Fallback: fallback})
}

func fail(b *gotgbot.Bot, msg *gotgbot.Message, err error, id int64, text string) error {
	guid := xid.New().String()
	log.Err(err).
		Str("guid", guid).
		Int64("id", id).
		Msg(text)
	_, err = msg.Reply(b, text+utils.EmbedGUID(guid), utils.DefaultSendOptions())
	return err
}
