package bot

import (
	"regexp"
	"testing"
	"time"

	"github.com/Brawl345/pexelsbot/plugin"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCommand(t *testing.T) {
	handler := &plugin.CommandHandler{
		Trigger: regexp.MustCompile(`(?i)^/pexel_search(?:@testbot)?(?:\s+(?P<term>.+))?$`),
	}

	matches, named, ok := matchCommand(handler, "/pexel_search@testbot cat")
	assert.True(t, ok)
	assert.Equal(t, "/pexel_search@testbot cat", matches[0])
	assert.Equal(t, "cat", named["term"])

	_, named, ok = matchCommand(handler, "/PEXEL_SEARCH")
	assert.True(t, ok)
	assert.Equal(t, "", named["term"])

	_, _, ok = matchCommand(handler, "hello /pexel_search")
	assert.False(t, ok)
}

func TestMatchCommandUnsupportedTrigger(t *testing.T) {
	assert.Panics(t, func() {
		matchCommand(&plugin.CommandHandler{Trigger: "/pexel"}, "/pexel")
	})
}

type (
	fakeAllowService struct{}

	fakeUserService struct{}

	fakeChatService struct{}

	recordingPlugin struct {
		name      string
		trigger   *regexp.Regexp
		adminOnly bool
		ran       chan string
	}
)

func (fakeAllowService) AllowChat(*gotgbot.Chat) error       { return nil }
func (fakeAllowService) AllowUser(*gotgbot.User) error       { return nil }
func (fakeAllowService) DenyChat(*gotgbot.Chat) error        { return nil }
func (fakeAllowService) DenyUser(*gotgbot.User) error        { return nil }
func (fakeAllowService) IsChatAllowed(*gotgbot.Chat) bool    { return true }
func (fakeAllowService) IsUserAllowed(*gotgbot.User) bool    { return true }
func (fakeUserService) Allow(*gotgbot.User) error            { return nil }
func (fakeUserService) Create(*gotgbot.User) error           { return nil }
func (fakeUserService) CreateTx(*sqlx.Tx, *gotgbot.User) error { return nil }
func (fakeUserService) Deny(*gotgbot.User) error             { return nil }
func (fakeUserService) GetAllAllowed() ([]int64, error)      { return nil, nil }
func (fakeChatService) Allow(*gotgbot.Chat) error            { return nil }
func (fakeChatService) Create(*gotgbot.Chat) error           { return nil }
func (fakeChatService) CreateTx(*sqlx.Tx, *gotgbot.Chat) error { return nil }
func (fakeChatService) Deny(*gotgbot.Chat) error             { return nil }
func (fakeChatService) GetAllAllowed() ([]int64, error)      { return nil, nil }

func (p *recordingPlugin) Name() string                   { return p.name }
func (p *recordingPlugin) Commands() []gotgbot.BotCommand { return nil }
func (p *recordingPlugin) Handlers(*gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:   p.trigger,
			AdminOnly: p.adminOnly,
			HandlerFunc: func(_ *gotgbot.Bot, c plugin.GobotContext) error {
				p.ran <- c.EffectiveMessage.Text
				return nil
			},
		},
	}
}

func newTestProcessor(t *testing.T, enabled []string) (*Processor, *recordingPlugin, *recordingPlugin) {
	t.Helper()
	t.Setenv("ADMIN_ID", "42")

	manager, _, _ := newTestManager(t, enabled)
	managerPlugin := &recordingPlugin{
		name:      "manager",
		trigger:   regexp.MustCompile(`^/enable (?P<plugin>\S+)$`),
		adminOnly: true,
		ran:       make(chan string, 1),
	}
	pexelsPlugin := &recordingPlugin{
		name:    "pexels",
		trigger: regexp.MustCompile(`^/pexel$`),
		ran:     make(chan string, 1),
	}
	manager.SetPlugins([]plugin.Plugin{managerPlugin, pexelsPlugin})

	return &Processor{
		allowService:   fakeAllowService{},
		chatService:    fakeChatService{},
		managerService: manager,
		userService:    fakeUserService{},
	}, managerPlugin, pexelsPlugin
}

func privateMessage(userID int64, text string) *ext.Context {
	user := &gotgbot.User{Id: userID, FirstName: "Test"}
	msg := &gotgbot.Message{
		MessageId: 1,
		From:      user,
		Chat:      gotgbot.Chat{Id: userID, Type: "private"},
		Text:      text,
	}
	return &ext.Context{
		Update:           &gotgbot.Update{Message: msg},
		EffectiveMessage: msg,
		EffectiveChat:    &msg.Chat,
		EffectiveUser:    user,
	}
}

func waitForRun(ran chan string) (string, bool) {
	select {
	case text := <-ran:
		return text, true
	case <-time.After(500 * time.Millisecond):
		return "", false
	}
}

func TestProcessorRunsAdminCommandsOnEmptyPluginTable(t *testing.T) {
	processor, managerPlugin, pexelsPlugin := newTestProcessor(t, nil)
	b := &gotgbot.Bot{User: gotgbot.User{Username: "testbot"}}

	require.NoError(t, processor.ProcessUpdate(nil, b, privateMessage(42, "/enable pexels")))
	text, ran := waitForRun(managerPlugin.ran)
	assert.True(t, ran)
	assert.Equal(t, "/enable pexels", text)

	require.NoError(t, processor.ProcessUpdate(nil, b, privateMessage(42, "/pexel")))
	_, ran = waitForRun(pexelsPlugin.ran)
	assert.False(t, ran)
}

func TestProcessorAdminCommandsRequireAdmin(t *testing.T) {
	processor, managerPlugin, _ := newTestProcessor(t, []string{"manager"})
	b := &gotgbot.Bot{User: gotgbot.User{Username: "testbot"}}

	require.NoError(t, processor.ProcessUpdate(nil, b, privateMessage(7, "/enable pexels")))
	_, ran := waitForRun(managerPlugin.ran)
	assert.False(t, ran)
}

func TestProcessorRunsEnabledPlugin(t *testing.T) {
	processor, _, pexelsPlugin := newTestProcessor(t, []string{"pexels"})
	b := &gotgbot.Bot{User: gotgbot.User{Username: "testbot"}}

	require.NoError(t, processor.ProcessUpdate(nil, b, privateMessage(7, "/pexel")))
	text, ran := waitForRun(pexelsPlugin.ran)
	assert.True(t, ran)
	assert.Equal(t, "/pexel", text)
}
