package bot

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/Brawl345/pexelsbot/logger"
	"github.com/Brawl345/pexelsbot/model"
	"github.com/Brawl345/pexelsbot/plugin"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/Brawl345/pexelsbot/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/rs/xid"
)

var log = logger.New("bot")

type Processor struct {
	allowService   model.AllowService
	chatService    model.ChatService
	managerService model.ManagerService
	userService    model.UserService
	printMessages  bool
}

func NewProcessor(allowService model.AllowService, chatService model.ChatService, managerService model.ManagerService, userService model.UserService) *Processor {
	_, printMessages := os.LookupEnv("PRINT_MSGS")
	return &Processor{
		allowService:   allowService,
		chatService:    chatService,
		managerService: managerService,
		userService:    userService,
		printMessages:  printMessages,
	}
}

func (p *Processor) ProcessUpdate(_ *ext.Dispatcher, b *gotgbot.Bot, ctx *ext.Context) error {
	if p.printMessages {
		PrintMessage(ctx)
	}

	if ctx.Message != nil || ctx.EditedMessage != nil {
		return p.onMessage(b, ctx)
	}

	return nil
}

func matchCommand(handler *plugin.CommandHandler, text string) ([]string, map[string]string, bool) {
	switch command := handler.Command().(type) {
	case *regexp.Regexp:
		matches := command.FindStringSubmatch(text)
		if len(matches) == 0 {
			return nil, nil, false
		}
		namedMatches := make(map[string]string)
		for i, name := range command.SubexpNames() {
			if name != "" {
				namedMatches[name] = matches[i]
			}
		}
		return matches, namedMatches, true
	default:
		panic(fmt.Sprintf("unsupported handler trigger type %T", command))
	}
}

func (p *Processor) onMessage(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	isEdited := msg.EditDate != 0

	isAllowed := p.allowService.IsUserAllowed(ctx.EffectiveUser)
	if utils.FromGroup(msg) && !isAllowed {
		isAllowed = p.allowService.IsChatAllowed(ctx.EffectiveChat)
	}

	if !isAllowed {
		log.Debug().Int64("chat_id", ctx.EffectiveChat.Id).Msg("User/Chat is not allowed")
		return nil
	}

	if !isEdited && ctx.EffectiveUser != nil {
		var err error
		if utils.IsPrivate(msg) {
			err = p.userService.Create(ctx.EffectiveUser)
		} else {
			err = p.chatService.Create(ctx.EffectiveChat)
		}
		if err != nil {
			return err
		}
	}

	text := tgUtils.AnyText(msg)

	for _, plg := range p.managerService.Plugins() {
		for _, h := range plg.Handlers(&b.User) {
			handler, ok := h.(*plugin.CommandHandler)
			if !ok {
				continue
			}

			if isEdited && !handler.HandleEdits {
				continue
			}

			if !utils.FromGroup(msg) && handler.GroupOnly {
				continue
			}

			matches, namedMatches, matched := matchCommand(handler, text)
			if !matched {
				continue
			}

			log.Debug().Msgf("Matched plugin '%s': %s", plg.Name(), handler.Trigger)

			if handler.AdminOnly && !utils.IsAdmin(ctx.EffectiveUser) {
				log.Debug().Msg("User is not an admin.")
				continue
			}

			// Admin commands ignore plugin toggles
			if !handler.AdminOnly {
				if !p.managerService.IsPluginEnabled(plg.Name()) {
					log.Debug().Msgf("Plugin %s is disabled globally", plg.Name())
					continue
				}

				if utils.FromGroup(msg) && p.managerService.IsPluginDisabledForChat(ctx.EffectiveChat, plg.Name()) {
					log.Debug().Msgf("Plugin %s is disabled for this chat", plg.Name())
					continue
				}
			}

			go p.run(b, ctx, plg.Name(), handler, plugin.GobotContext{
				Context:      ctx,
				Matches:      matches,
				NamedMatches: namedMatches,
			})
		}
	}

	return nil
}

func (p *Processor) run(b *gotgbot.Bot, ctx *ext.Context, pluginName string, handler plugin.Handler, c plugin.GobotContext) {
	defer func() {
		if r := recover(); r != nil {
			guid := xid.New().String()
			log.Err(errors.New("panic")).
				Str("guid", guid).
				Int64("chat_id", ctx.EffectiveChat.Id).
				Str("text", ctx.EffectiveMessage.Text).
				Str("plugin", pluginName).
				Msgf("%s", r)
			_, _ = ctx.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		}
	}()

	err := handler.Run(b, c)
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", ctx.EffectiveChat.Id).
			Str("text", ctx.EffectiveMessage.Text).
			Str("plugin", pluginName).
			Send()
		_, _ = ctx.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
	}
}

func OnError(_ *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
	lg := log.Err(err)
	if ctx != nil && ctx.EffectiveChat != nil {
		lg = lg.Int64("chat_id", ctx.EffectiveChat.Id)
	}
	lg.Msg("Error while processing update")
	return ext.DispatcherActionNoop
}
