package pexels

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/model"
	"github.com/Brawl345/pexelsbot/plugin"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/Brawl345/pexelsbot/utils/httpUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

var log = logger.New("pexels")

const (
	DefaultNum     = 3
	maxCuratedPage = 100
	searchPerPage  = 50
)

type (
	Config struct {
		APIKey  string
		BaseURL string
		Num     int
	}

	Plugin struct {
		client              *Client
		num                 int
		conversationService model.ConversationService
		provider            model.LLMProvider
		intN                func(n int) int
	}
)

func loadConfig(credentialService model.CredentialService) Config {
	config := Config{
		APIKey:  credentialService.GetKey("pexels_api_key"),
		BaseURL: credentialService.GetKey("pexels_base_url"),
		Num:     DefaultNum,
	}

	if config.APIKey == "" {
		log.Error().Msg("pexels_api_key not found, requests will be unauthenticated")
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if raw, ok := lookupCredential(credentialService, "pexels_num"); ok {
		num, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || num < 1 {
			log.Error().
				Err(err).
				Str("pexels_num", raw).
				Msgf("Invalid pexels_num, using %d", DefaultNum)
		} else {
			config.Num = num
		}
	}

	return config
}

// lookupCredential also reports keys that are stored with a blank value.
func lookupCredential(credentialService model.CredentialService, name string) (string, bool) {
	for _, credential := range credentialService.GetAllCredentials() {
		if credential.Name == name {
			return credential.Value, true
		}
	}
	return "", false
}

// New builds the plugin. provider may be nil, search terms are then never translated.
func New(credentialService model.CredentialService, conversationService model.ConversationService, provider model.LLMProvider) *Plugin {
	config := loadConfig(credentialService)
	return &Plugin{
		client:              NewClient(config.BaseURL, config.APIKey),
		num:                 config.Num,
		conversationService: conversationService,
		provider:            provider,
		intN:                rand.IntN,
	}
}

func (p *Plugin) Name() string {
	return "pexels"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "pexel",
			Description: "Kuratierte Bilder von Pexels",
		},
		{
			Command:     "pexel_search",
			Description: "<Begriff> - Bild auf Pexels suchen",
		},
		{
			Command:     "pexel_reset",
			Description: "Übersetzungsverlauf zurücksetzen",
		},
		{
			Command:     "pexel_help",
			Description: "Hilfe zum Pexels-Plugin",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/pexel(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onCurated,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/pexel_search(?:@%s)?(?:\s+(?P<term>[\s\S]*))?$`, botInfo.Username)),
			HandlerFunc: p.onSearch,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/pexel_reset(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onReset,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/pexel_help(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onHelp,
		},
	}
}

func (p *Plugin) onCurated(b *gotgbot.Bot, c plugin.GobotContext) error {
	_, _ = c.EffectiveChat.SendAction(b, gotgbot.ChatActionUploadPhoto, nil)
	return p.sendCurated(context.Background(), newTelegramResponder(b, c.EffectiveMessage))
}

func (p *Plugin) onSearch(b *gotgbot.Bot, c plugin.GobotContext) error {
	term := strings.TrimSpace(c.NamedMatches["term"])
	if term != "" {
		_, _ = c.EffectiveChat.SendAction(b, gotgbot.ChatActionUploadPhoto, nil)
	}
	return p.sendSearch(context.Background(), c.EffectiveChat, term, newTelegramResponder(b, c.EffectiveMessage))
}

func (p *Plugin) onHelp(b *gotgbot.Bot, c plugin.GobotContext) error {
	return p.sendHelp(newTelegramResponder(b, c.EffectiveMessage))
}

func (p *Plugin) onReset(b *gotgbot.Bot, c plugin.GobotContext) error {
	return p.resetHistory(context.Background(), c.EffectiveChat, newTelegramResponder(b, c.EffectiveMessage))
}

func (p *Plugin) resetHistory(ctx context.Context, chat *gotgbot.Chat, r Responder) error {
	if err := p.conversationService.ResetHistory(ctx, chat); err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", chat.Id).
			Msg("Failed to reset conversation history")
		return r.Text(fmt.Sprintf("❌ Verlauf konnte nicht zurückgesetzt werden.%s", utils.EmbedGUID(guid)))
	}
	return r.Text("✅ Übersetzungsverlauf wurde zurückgesetzt.")
}

func (p *Plugin) sendCurated(ctx context.Context, r Responder) error {
	page := p.intN(maxCuratedPage) + 1

	photos, err := p.client.Curated(ctx, page, p.num)
	if err != nil {
		logAPIError(err).
			Int("page", page).
			Int("per_page", p.num).
			Msg("Failed to fetch curated photos")
		return r.Text("❌ Bilder konnten gerade nicht von Pexels abgerufen werden. Bitte versuche es später erneut.")
	}

	if err := r.Text(fmt.Sprintf("📷 <b>%d kuratierte Bilder von Pexels</b>", len(photos))); err != nil {
		return err
	}

	for i, photo := range photos {
		if err := r.Text(fmt.Sprintf("<b>Bild %d</b>\n%s", i+1, attribution(photo))); err != nil {
			return err
		}
		if err := sendImage(r, photo); err != nil {
			return err
		}
	}

	return nil
}

func (p *Plugin) sendSearch(ctx context.Context, chat *gotgbot.Chat, term string, r Responder) error {
	if term == "" {
		return r.Text("❌ Bitte gib einen Suchbegriff an, z.B. <code>/pexel_search Katze</code>")
	}

	query := p.effectiveQuery(ctx, chat, term)

	terms := fmt.Sprintf("<b>%s</b>", utils.Escape(term))
	if query != term {
		terms += fmt.Sprintf(" (übersetzt: <b>%s</b>)", utils.Escape(query))
	}

	photos, err := p.client.Search(ctx, query, searchPerPage)
	if err != nil {
		logAPIError(err).
			Str("term", term).
			Str("query", query).
			Msg("Failed to search photos")
		return r.Text(fmt.Sprintf("❌ Keine Bilder für %s gefunden. Versuche es mit anderen Suchbegriffen.", terms))
	}

	photo := photos[p.intN(len(photos))]

	if err := r.Text(fmt.Sprintf("🔍 Suchbegriff: %s\n%s", terms, attribution(photo))); err != nil {
		return err
	}

	return sendImage(r, photo)
}

func (p *Plugin) sendHelp(r Responder) error {
	var sb strings.Builder
	sb.WriteString("<b>📷 Pexels</b>\n")
	sb.WriteString("/pexel - Kuratierte Bilder abrufen\n")
	sb.WriteString("/pexel_search &lt;Begriff&gt; - Nach einem Bild suchen\n")
	sb.WriteString("/pexel_reset - Übersetzungsverlauf zurücksetzen\n")
	sb.WriteString("/pexel_help - Diese Hilfe anzeigen\n\n")
	sb.WriteString("<i>Chinesische Suchbegriffe werden vor der Suche ins Englische übersetzt.</i>")
	return r.Text(sb.String())
}

func attribution(photo Photo) string {
	description := photo.Alt
	if description == "" {
		description = "Keine Beschreibung"
	}

	return fmt.Sprintf(
		"Fotograf: %s\nProfil: %s\nBeschreibung: %s",
		utils.Escape(photo.Photographer),
		utils.Escape(photo.PhotographerURL),
		utils.Escape(description),
	)
}

func sendImage(r Responder, photo Photo) error {
	link := photo.ImageLink()
	if link == "" {
		log.Warn().Int64("id", photo.ID).Msg("Photo has no usable image URL")
		return r.Text("❌ Für dieses Bild ist kein Link verfügbar.")
	}
	return r.Image(link)
}

// logAPIError starts an error event tagged with the failure kind.
func logAPIError(err error) *zerolog.Event {
	return log.Err(err).Str("kind", errorKind(err))
}

func errorKind(err error) string {
	var httpError *httpUtils.HttpError
	var netError net.Error

	switch {
	case errors.Is(err, ErrNoPhotos):
		return "empty"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &httpError):
		return "http"
	case errors.Is(err, httpUtils.ErrDecode):
		return "decode"
	case errors.As(err, &netError) && netError.Timeout():
		return "timeout"
	default:
		return "transport"
	}
}
