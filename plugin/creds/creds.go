package creds

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/model"
	"github.com/Brawl345/pexelsbot/plugin"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
)

var log = logger.New("creds")

type Plugin struct {
	credentialService model.CredentialService
}

func New(credentialService model.CredentialService) *Plugin {
	return &Plugin{
		credentialService: credentialService,
	}
}

func (*Plugin) Name() string {
	return "creds"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return nil // Superuser only
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/creds(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onGet,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/creds_add(?:@%s)? (?P<key>\S+) (?P<value>.+)$`, botInfo.Username)),
			HandlerFunc: p.onAdd,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/creds_del(?:@%s)? (?P<key>\S+)$`, botInfo.Username)),
			HandlerFunc: p.onDelete,
			AdminOnly:   true,
		},
	}
}

func (p *Plugin) onGet(b *gotgbot.Bot, c plugin.GobotContext) error {
	if !utils.IsPrivate(c.EffectiveMessage) {
		return nil
	}

	creds := p.credentialService.GetAllCredentials()
	if len(creds) == 0 {
		_, err := c.EffectiveMessage.Reply(b, "<i>Noch keine Schlüssel eingetragen</i>", utils.DefaultSendOptions())
		return err
	}

	var sb strings.Builder
	for _, cred := range creds {
		sb.WriteString(fmt.Sprintf("<b>%s</b>:\n<code>%s</code>\n", utils.Escape(cred.Name), utils.Escape(cred.Value)))
	}

	opts := utils.DefaultSendOptions()
	opts.ProtectContent = true
	_, err := c.EffectiveMessage.Reply(b, sb.String(), opts)
	return err
}

func (p *Plugin) onAdd(b *gotgbot.Bot, c plugin.GobotContext) error {
	if !utils.IsPrivate(c.EffectiveMessage) {
		return nil
	}

	key := c.NamedMatches["key"]
	if err := p.credentialService.SetKey(key, c.NamedMatches["value"]); err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("key", key).
			Msg("Error adding key")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Fehler beim Speichern des Schlüssels.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	// Plugins read their keys on startup
	_, err := c.EffectiveMessage.Reply(b, "✅ Schlüssel gespeichert. Plugins übernehmen ihn nach einem Neustart.", utils.DefaultSendOptions())
	return err
}

func (p *Plugin) onDelete(b *gotgbot.Bot, c plugin.GobotContext) error {
	if !utils.IsPrivate(c.EffectiveMessage) {
		return nil
	}

	key := c.NamedMatches["key"]
	err := p.credentialService.DeleteKey(key)
	if errors.Is(err, model.ErrNotFound) {
		_, err = c.EffectiveMessage.Reply(b, "❌ Schlüssel existiert nicht", utils.DefaultSendOptions())
		return err
	}
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Str("key", key).
			Msg("Error deleting key")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Fehler beim Löschen des Schlüssels.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	_, err = c.EffectiveMessage.Reply(b, "✅ Schlüssel gelöscht", utils.DefaultSendOptions())
	return err
}
