package bot

import (
	"fmt"
	"strings"

	"github.com/Brawl345/pexelsbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// https://twin.sh/articles/35/how-to-add-colors-to-your-console-terminal-output-in-go
var (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	purple = "\033[35m"
	cyan   = "\033[36m"
)

func printUser(user *gotgbot.User) string {
	if user == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(
		fmt.Sprintf(
			"%s%s%s",
			bold,
			red,
			utils.FullName(user.FirstName, user.LastName),
		),
	)

	sb.WriteString(reset)

	if user.Username != "" {
		sb.WriteString(
			fmt.Sprintf(
				" %s(@%s)%s",
				red,
				user.Username,
				reset,
			),
		)
	}

	return sb.String()
}

func onMessage(msg *gotgbot.Message) string {
	var sb strings.Builder

	// Time
	var msgTime string
	if msg.EditDate != 0 {
		msgTime = utils.TimestampToTime(msg.EditDate).Format("15:04:05")
	} else {
		msgTime = utils.TimestampToTime(msg.Date).Format("15:04:05")
	}

	sb.WriteString(
		fmt.Sprintf(
			"%s[%v]",
			cyan,
			msgTime,
		),
	)

	// Chat Title
	if msg.Chat.Title != "" {
		sb.WriteString(
			fmt.Sprintf(
				" %s:",
				msg.Chat.Title,
			),
		)
	}

	sb.WriteString(reset)

	// Sender
	if msg.From != nil {
		sb.WriteString(
			fmt.Sprintf(
				" %s",
				printUser(msg.From),
			),
		)
	}

	sb.WriteString(
		fmt.Sprintf(
			"%s >>> %s",
			cyan,
			reset,
		),
	)

	if msg.EditDate != 0 {
		sb.WriteString(
			fmt.Sprintf(
				"%s(editiert) %s",
				green,
				reset,
			),
		)
	}

	if msg.ReplyToMessage != nil {
		sb.WriteString(
			fmt.Sprintf(
				"%sAntwort an %s%s: ",
				green,
				reset,
				printUser(msg.ReplyToMessage.From),
			),
		)
	}

	if len(msg.Photo) > 0 {
		sb.WriteString(
			fmt.Sprintf(
				"%s[Foto]%s ",
				purple,
				reset,
			),
		)
	}

	if msg.Text != "" {
		sb.WriteString(msg.Text)
	}
	if msg.Caption != "" {
		sb.WriteString(msg.Caption)
	}

	if msg.NewChatTitle != "" {
		sb.WriteString(
			fmt.Sprintf(
				"%sGruppe umbenannt in '%s'%s",
				yellow,
				msg.NewChatTitle,
				reset,
			),
		)
	}

	return sb.String()
}

func PrintMessage(c *ext.Context) {
	var text string
	if c.EffectiveMessage != nil {
		text = onMessage(c.EffectiveMessage)
	} else {
		text = fmt.Sprintf(
			"%s>>> %s%sUnbekannter Nachrichtentyp%s",
			cyan,
			reset,
			red,
			reset,
		)
	}

	println(text)
}
