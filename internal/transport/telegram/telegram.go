// Package telegram adapts the gate engine to Telegram group chats. It
// implements transport.Transport with Bot API calls and feeds chat
// updates into the engine via a long-polling loop.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// api is the subset of tgbotapi.BotAPI the transport uses.
type api interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Transport performs member privilege changes through the Telegram Bot API.
type Transport struct {
	bot api
}

// New connects to the Telegram Bot API with the given token and returns a
// Transport. Construction performs a getMe call, so it fails fast on a bad
// token.
func New(token string) (*Transport, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	return &Transport{bot: bot}, nil
}

// RestrictMember revokes the member's permission to send messages.
func (t *Transport) RestrictMember(_ context.Context, groupID, memberID int64) error {
	cfg := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: groupID, UserID: memberID},
		Permissions:      &tgbotapi.ChatPermissions{},
	}
	if _, err := t.bot.Request(cfg); err != nil {
		return fmt.Errorf("restrict member %d in %d: %w", memberID, groupID, err)
	}
	return nil
}

// UnrestrictMember restores the member's full chat permissions.
func (t *Transport) UnrestrictMember(_ context.Context, groupID, memberID int64) error {
	cfg := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: groupID, UserID: memberID},
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages:       true,
			CanSendMediaMessages:  true,
			CanSendPolls:          true,
			CanSendOtherMessages:  true,
			CanAddWebPagePreviews: true,
			CanInviteUsers:        true,
		},
	}
	if _, err := t.bot.Request(cfg); err != nil {
		return fmt.Errorf("unrestrict member %d in %d: %w", memberID, groupID, err)
	}
	return nil
}

// RemoveMember kicks the member from the group. The ban is lifted
// immediately afterwards so the member can re-join and face the gate
// again.
func (t *Transport) RemoveMember(_ context.Context, groupID, memberID int64) error {
	ban := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: groupID, UserID: memberID},
	}
	if _, err := t.bot.Request(ban); err != nil {
		return fmt.Errorf("kick member %d from %d: %w", memberID, groupID, err)
	}
	unban := tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: groupID, UserID: memberID},
		OnlyIfBanned:     true,
	}
	if _, err := t.bot.Request(unban); err != nil {
		return fmt.Errorf("unban member %d in %d: %w", memberID, groupID, err)
	}
	return nil
}

// SendPrompt posts the challenge question to the group, mentioning the
// member so they get a notification.
func (t *Transport) SendPrompt(_ context.Context, groupID, memberID int64, questionText string) error {
	msg := tgbotapi.NewMessage(groupID, fmt.Sprintf("[New member](tg://user?id=%d), %s", memberID, questionText))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send prompt to %d: %w", groupID, err)
	}
	return nil
}

// DeleteMessage removes a message from the group. Best-effort cleanup for
// join service messages.
func (t *Transport) DeleteMessage(_ context.Context, groupID int64, messageID int) error {
	if _, err := t.bot.Request(tgbotapi.NewDeleteMessage(groupID, messageID)); err != nil {
		return fmt.Errorf("delete message %d in %d: %w", messageID, groupID, err)
	}
	return nil
}
