package main

import (
	"context"
	"os"
	"time"

	"github.com/Brawl345/pexelsbot/bot"
	"github.com/Brawl345/pexelsbot/llm/gemini"
	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/model"
	"github.com/Brawl345/pexelsbot/model/sql"
	"github.com/Brawl345/pexelsbot/plugin"
	"github.com/Brawl345/pexelsbot/plugin/allow"
	"github.com/Brawl345/pexelsbot/plugin/creds"
	"github.com/Brawl345/pexelsbot/plugin/manager"
	"github.com/Brawl345/pexelsbot/plugin/pexels"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	_ "github.com/joho/godotenv/autoload"
)

var log = logger.New("main")

func main() {
	versionInfo, err := utils.ReadVersionInfo()
	if err == nil {
		log.Info().Msgf("pexelsbot (%s) built with %s for %s/%s", versionInfo.Revision, versionInfo.GoVersion, versionInfo.GoOS, versionInfo.GoArch)
	}

	db, err := sql.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Database connection established")

	credentialService := sql.NewCredentialService(db)
	chatService := sql.NewChatService(db)
	userService := sql.NewUserService(db)
	pluginService := sql.NewPluginService(db)
	chatsPluginsService := sql.NewChatsPluginsService(db, chatService, pluginService)
	conversationService := sql.NewConversationService(db, credentialService)

	allowService, err := sql.NewAllowService(chatService, userService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load allow list")
	}

	managerService, err := bot.NewManagerService(chatsPluginsService, pluginService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load plugin state")
	}

	var provider model.LLMProvider
	geminiProvider, err := gemini.New(context.Background(), credentialService)
	if err != nil {
		log.Warn().Err(err).Msg("Gemini provider not available, search terms will not be translated")
	} else {
		provider = geminiProvider
	}

	b, err := gotgbot.NewBot(os.Getenv("BOT_TOKEN"), nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	log.Info().Msgf("Logged in as @%s (%d)", b.Username, b.Id)

	plugins := []plugin.Plugin{
		allow.New(allowService),
		creds.New(credentialService),
		manager.New(managerService),
		pexels.New(credentialService, conversationService, provider),
	}
	managerService.SetPlugins(plugins)

	var commands []gotgbot.BotCommand
	for _, plg := range plugins {
		commands = append(commands, plg.Commands()...)
	}
	if _, err := b.SetMyCommands(commands, nil); err != nil {
		log.Err(err).Msg("Failed to set commands")
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Processor:   bot.NewProcessor(allowService, chatService, managerService, userService),
		Error:       bot.OnError,
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	err = updater.StartPolling(b, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 10 * time.Second,
			},
			AllowedUpdates: []string{"message", "edited_message"},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start polling")
	}

	log.Info().Msg("Bot started")
	updater.Idle()
}
