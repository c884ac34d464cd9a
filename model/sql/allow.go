package sql

import (
	"errors"
	"sync"

	"github.com/Brawl345/pexelsbot/model"
	"github.com/Brawl345/pexelsbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"golang.org/x/exp/slices"
)

type allowService struct {
	mu           sync.RWMutex
	allowedChats []int64
	chatService  model.ChatService
	userService  model.UserService
}

func NewAllowService(chatService model.ChatService, userService model.UserService) (*allowService, error) {
	allowedUsers, err := userService.GetAllAllowed()
	if err != nil {
		return nil, err
	}

	allowedChats, err := chatService.GetAllAllowed()
	if err != nil {
		return nil, err
	}

	allowedChats = append(allowedChats, allowedUsers...)

	return &allowService{
		chatService:  chatService,
		userService:  userService,
		allowedChats: allowedChats,
	}, nil
}

func (service *allowService) IsUserAllowed(user *gotgbot.User) bool {
	if utils.IsAdmin(user) {
		return true
	}

	service.mu.RLock()
	defer service.mu.RUnlock()
	return slices.Contains(service.allowedChats, user.Id)
}

func (service *allowService) IsChatAllowed(chat *gotgbot.Chat) bool {
	service.mu.RLock()
	defer service.mu.RUnlock()
	return slices.Contains(service.allowedChats, chat.Id)
}

func (service *allowService) AllowUser(user *gotgbot.User) error {
	err := service.userService.Allow(user)
	if err != nil {
		return err
	}

	service.add(user.Id)
	return nil
}

func (service *allowService) DenyUser(user *gotgbot.User) error {
	if utils.IsAdmin(user) {
		return errors.New("cannot deny admin")
	}
	err := service.userService.Deny(user)
	if err != nil {
		return err
	}

	service.remove(user.Id)
	return nil
}

func (service *allowService) AllowChat(chat *gotgbot.Chat) error {
	err := service.chatService.Allow(chat)
	if err != nil {
		return err
	}

	service.add(chat.Id)
	return nil
}

func (service *allowService) DenyChat(chat *gotgbot.Chat) error {
	err := service.chatService.Deny(chat)
	if err != nil {
		return err
	}

	service.remove(chat.Id)
	return nil
}

func (service *allowService) add(id int64) {
	service.mu.Lock()
	defer service.mu.Unlock()
	if !slices.Contains(service.allowedChats, id) {
		service.allowedChats = append(service.allowedChats, id)
	}
}

func (service *allowService) remove(id int64) {
	service.mu.Lock()
	defer service.mu.Unlock()
	index := slices.Index(service.allowedChats, id)
	if index >= 0 {
		service.allowedChats = slices.Delete(service.allowedChats, index, index+1)
	}
}
