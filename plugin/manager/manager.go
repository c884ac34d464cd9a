package manager

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

var log = logger.New("manager")

type Plugin struct {
	managerService model.ManagerService
}

func New(service model.ManagerService) *Plugin {
	return &Plugin{
		managerService: service,
	}
}

func (*Plugin) Name() string {
	return "manager"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return nil // Superuser only
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/plugins(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onList,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/enable(?:@%s)? (?P<plugin>\S+)$`, botInfo.Username)),
			HandlerFunc: p.onEnable,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/disable(?:@%s)? (?P<plugin>\S+)$`, botInfo.Username)),
			HandlerFunc: p.onDisable,
			AdminOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/enable_chat(?:@%s)? (?P<plugin>\S+)$`, botInfo.Username)),
			HandlerFunc: p.onEnableInChat,
			AdminOnly:   true,
			GroupOnly:   true,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/disable_chat(?:@%s)? (?P<plugin>\S+)$`, botInfo.Username)),
			HandlerFunc: p.onDisableInChat,
			AdminOnly:   true,
			GroupOnly:   true,
		},
	}
}

func reply(b *gotgbot.Bot, c plugin.GobotContext, text string) error {
	_, err := c.EffectiveMessage.Reply(b, text, utils.DefaultSendOptions())
	return err
}

func (p *Plugin) fail(b *gotgbot.Bot, c plugin.GobotContext, err error, pluginName string) error {
	if errors.Is(err, model.ErrNotFound) {
		return reply(b, c, "❌ Plugin existiert nicht")
	}

	guid := xid.New().String()
	log.Err(err).
		Str("guid", guid).
		Str("plugin", pluginName).
		Int64("chat_id", c.EffectiveChat.Id).
		Msg("Failed to toggle plugin")
	return reply(b, c, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)))
}

func (p *Plugin) onList(b *gotgbot.Bot, c plugin.GobotContext) error {
	var sb strings.Builder
	sb.WriteString("<b>Plugins:</b>\n")
	for _, plg := range p.managerService.Plugins() {
		status := "✅"
		if !p.managerService.IsPluginEnabled(plg.Name()) {
			status = "❌"
		} else if utils.FromGroup(c.EffectiveMessage) && p.managerService.IsPluginDisabledForChat(c.EffectiveChat, plg.Name()) {
			status = "💤"
		}
		sb.WriteString(fmt.Sprintf("%s <code>%s</code>\n", status, utils.Escape(plg.Name())))
	}
	return reply(b, c, sb.String())
}

func (p *Plugin) onEnable(b *gotgbot.Bot, c plugin.GobotContext) error {
	pluginName := c.NamedMatches["plugin"]

	if p.managerService.IsPluginEnabled(pluginName) {
		return reply(b, c, "💡 Plugin ist bereits aktiv")
	}

	if err := p.managerService.EnablePlugin(pluginName); err != nil {
		return p.fail(b, c, err, pluginName)
	}
	return reply(b, c, "✅ Plugin wurde aktiviert")
}

func (p *Plugin) onDisable(b *gotgbot.Bot, c plugin.GobotContext) error {
	pluginName := c.NamedMatches["plugin"]

	if pluginName == p.Name() {
		return reply(b, c, "❌ Manager kann nicht deaktiviert werden.")
	}

	if !p.managerService.IsPluginEnabled(pluginName) {
		return reply(b, c, "💡 Plugin ist nicht aktiv")
	}

	if err := p.managerService.DisablePlugin(pluginName); err != nil {
		return p.fail(b, c, err, pluginName)
	}
	return reply(b, c, "✅ Plugin wurde deaktiviert")
}

func (p *Plugin) onEnableInChat(b *gotgbot.Bot, c plugin.GobotContext) error {
	pluginName := c.NamedMatches["plugin"]

	if !p.managerService.IsPluginDisabledForChat(c.EffectiveChat, pluginName) {
		return reply(b, c, "💡 Plugin ist für diesen Chat schon aktiv")
	}

	if err := p.managerService.EnablePluginForChat(c.EffectiveChat, pluginName); err != nil {
		return p.fail(b, c, err, pluginName)
	}
	return reply(b, c, "✅ Plugin wurde für diesen Chat wieder aktiviert")
}

func (p *Plugin) onDisableInChat(b *gotgbot.Bot, c plugin.GobotContext) error {
	pluginName := c.NamedMatches["plugin"]

	if pluginName == p.Name() {
		return reply(b, c, "❌ Manager kann nicht deaktiviert werden.")
	}

	if p.managerService.IsPluginDisabledForChat(c.EffectiveChat, pluginName) {
		return reply(b, c, "💡 Plugin ist für diesen Chat schon deaktiviert")
	}

	if err := p.managerService.DisablePluginForChat(c.EffectiveChat, pluginName); err != nil {
		return p.fail(b, c, err, pluginName)
	}
	return reply(b, c, "✅ Plugin wurde für diesen Chat deaktiviert")
}
