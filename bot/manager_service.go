package bot

import (
	"sync"

	"github.com/Brawl345/pexelsbot/model"
	"github.com/Brawl345/pexelsbot/plugin"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"golang.org/x/exp/slices"
)

type managerService struct {
	chatsPluginsService model.ChatsPluginsService
	pluginService       model.PluginService

	mu                     sync.RWMutex
	plugins                []plugin.Plugin
	enabledPlugins         []string
	disabledPluginsForChat map[int64][]string
}

func NewManagerService(
	chatsPluginsService model.ChatsPluginsService,
	pluginService model.PluginService,
) (*managerService, error) {

	enabledPlugins, err := pluginService.GetAllEnabled()
	if err != nil {
		return nil, err
	}

	disabledPluginsForChat, err := chatsPluginsService.GetAllDisabled()
	if err != nil {
		return nil, err
	}

	if disabledPluginsForChat == nil {
		disabledPluginsForChat = make(map[int64][]string)
	}

	return &managerService{
		chatsPluginsService:    chatsPluginsService,
		pluginService:          pluginService,
		enabledPlugins:         enabledPlugins,
		disabledPluginsForChat: disabledPluginsForChat,
	}, nil
}

func (service *managerService) Plugins() []plugin.Plugin {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return service.plugins
}

func (service *managerService) SetPlugins(plugins []plugin.Plugin) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.plugins = plugins
}

func (service *managerService) exists(name string) bool {
	for _, plg := range service.plugins {
		if plg.Name() == name {
			return true
		}
	}
	return false
}

func (service *managerService) EnablePlugin(name string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if slices.Contains(service.enabledPlugins, name) {
		return model.ErrAlreadyExists
	}

	if !service.exists(name) {
		return model.ErrNotFound
	}

	err := service.pluginService.Enable(name)
	if err != nil {
		return err
	}
	service.enabledPlugins = append(service.enabledPlugins, name)
	return nil
}

func (service *managerService) EnablePluginForChat(chat *gotgbot.Chat, name string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if !service.exists(name) {
		return model.ErrNotFound
	}

	index := slices.Index(service.disabledPluginsForChat[chat.Id], name)
	if index == -1 {
		return model.ErrAlreadyExists
	}

	err := service.chatsPluginsService.Enable(chat, name)
	if err != nil {
		return err
	}

	service.disabledPluginsForChat[chat.Id] = slices.Delete(service.disabledPluginsForChat[chat.Id], index, index+1)
	return nil
}

func (service *managerService) DisablePlugin(name string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	index := slices.Index(service.enabledPlugins, name)
	if index == -1 {
		return model.ErrNotFound
	}

	err := service.pluginService.Disable(name)
	if err != nil {
		return err
	}
	service.enabledPlugins = slices.Delete(service.enabledPlugins, index, index+1)
	return nil
}

func (service *managerService) DisablePluginForChat(chat *gotgbot.Chat, name string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if !service.exists(name) {
		return model.ErrNotFound
	}

	if slices.Contains(service.disabledPluginsForChat[chat.Id], name) {
		return model.ErrAlreadyExists
	}

	err := service.chatsPluginsService.Disable(chat, name)
	if err != nil {
		return err
	}

	service.disabledPluginsForChat[chat.Id] = append(service.disabledPluginsForChat[chat.Id], name)
	return nil
}

func (service *managerService) IsPluginEnabled(name string) bool {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return slices.Contains(service.enabledPlugins, name)
}

func (service *managerService) IsPluginDisabledForChat(chat *gotgbot.Chat, name string) bool {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return slices.Contains(service.disabledPluginsForChat[chat.Id], name)
}
