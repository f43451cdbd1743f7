package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/t8wy/coverbot/internal/bot"
)

func TestFromMessage_AttributesCallbackPresser(t *testing.T) {
	m := &tgbotapi.Message{
		MessageID: 42,
		Chat:      &tgbotapi.Chat{ID: -100, Type: "group"},
		From:      &tgbotapi.User{ID: 7, UserName: "coverbot", IsBot: true},
		Text:      "results list",
	}
	presser := &tgbotapi.User{ID: 3, UserName: "voter", FirstName: "Vera"}

	got := fromMessage(m, presser)

	if got.UserID != 3 || got.Username != "voter" || got.FirstName != "Vera" {
		t.Errorf("user fields = %+v, want the presser's", got)
	}
	if got.ChatID != -100 || got.MessageID != 42 || !got.IsGroup {
		t.Errorf("chat fields = %+v", got)
	}
}

func TestFromMessage_PrivateChat(t *testing.T) {
	m := &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 5, Type: "private"},
		Text: "hello",
	}

	if got := fromMessage(m, &tgbotapi.User{ID: 5}); got.IsGroup {
		t.Error("private chat flagged as group")
	}
}

func TestToInlineKeyboard(t *testing.T) {
	markup := toInlineKeyboard([][]bot.Button{
		{{Label: "1. Song", Data: "select_0"}},
		{{Label: "Share", URL: "https://t.me/coverbot"}},
	})
	if markup == nil {
		t.Fatal("got nil markup")
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("got %d rows, want 2", len(markup.InlineKeyboard))
	}

	data := markup.InlineKeyboard[0][0]
	if data.CallbackData == nil || *data.CallbackData != "select_0" {
		t.Errorf("data button = %+v, want callback select_0", data)
	}

	link := markup.InlineKeyboard[1][0]
	if link.URL == nil || *link.URL != "https://t.me/coverbot" {
		t.Errorf("url button = %+v", link)
	}
}

func TestToInlineKeyboard_EmptyIsNil(t *testing.T) {
	if toInlineKeyboard(nil) != nil {
		t.Error("empty keyboard produced markup")
	}
}

func TestAudioFile(t *testing.T) {
	tests := []struct {
		name     string
		msg      tgbotapi.Message
		wantID   string
		wantName string
	}{
		{
			name: "audio attachment",
			msg: tgbotapi.Message{
				Audio: &tgbotapi.Audio{FileID: "a1", FileName: "track.mp3"},
			},
			wantID:   "a1",
			wantName: "track.mp3",
		},
		{
			name: "voice note",
			msg: tgbotapi.Message{
				Voice: &tgbotapi.Voice{FileID: "v1"},
			},
			wantID:   "v1",
			wantName: "voice.ogg",
		},
		{
			name: "audio document",
			msg: tgbotapi.Message{
				Document: &tgbotapi.Document{FileID: "d1", FileName: "song.flac", MimeType: "audio/flac"},
			},
			wantID:   "d1",
			wantName: "song.flac",
		},
		{
			name: "non-audio document ignored",
			msg: tgbotapi.Message{
				Document: &tgbotapi.Document{FileID: "d2", FileName: "notes.pdf", MimeType: "application/pdf"},
			},
		},
		{
			name: "plain text",
			msg:  tgbotapi.Message{Text: "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name := audioFile(&tt.msg)
			if id != tt.wantID || name != tt.wantName {
				t.Errorf("audioFile() = (%q, %q), want (%q, %q)", id, name, tt.wantID, tt.wantName)
			}
		})
	}
}
