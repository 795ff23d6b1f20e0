package models

import (
	"errors"
	"testing"

	botModels "github.com/go-telegram/bot/models"
)

func TestContentFromMessageText(t *testing.T) {
	msg := &botModels.Message{
		ID:   42,
		Chat: botModels.Chat{ID: 1001},
		Text: "hello https://example.com",
		Entities: []botModels.MessageEntity{
			{Type: "url", Offset: 6, Length: 19},
		},
	}

	content, err := ContentFromMessage(msg)
	if err != nil {
		t.Fatalf("ContentFromMessage failed: %v", err)
	}
	if content.Kind != ContentText {
		t.Fatalf("unexpected kind: got %s, want %s", content.Kind, ContentText)
	}
	if content.Text != msg.Text {
		t.Fatalf("unexpected text: %q", content.Text)
	}
	if len(content.Entities) != 1 || content.Entities[0].Type != "url" {
		t.Fatalf("expected entities to be preserved, got %v", content.Entities)
	}
	if content.SrcChatID != 1001 || content.SrcMessageID != 42 {
		t.Fatalf("unexpected source reference: %d/%d", content.SrcChatID, content.SrcMessageID)
	}
}

func TestContentFromMessagePollSnapshot(t *testing.T) {
	msg := &botModels.Message{
		ID:   7,
		Chat: botModels.Chat{ID: 2002},
		Poll: &botModels.Poll{
			Question: "最喜欢哪个？",
			Options: []botModels.PollOption{
				{Text: "A", VoterCount: 12},
				{Text: "B", VoterCount: 3},
			},
			Type:                  "quiz",
			AllowsMultipleAnswers: false,
			CorrectOptionID:       1,
			TotalVoterCount:       15,
		},
	}

	content, err := ContentFromMessage(msg)
	if err != nil {
		t.Fatalf("ContentFromMessage failed: %v", err)
	}
	if content.Kind != ContentPoll {
		t.Fatalf("unexpected kind: got %s, want %s", content.Kind, ContentPoll)
	}

	snap := content.Poll
	if snap == nil {
		t.Fatalf("expected poll snapshot")
	}
	if snap.Question != "最喜欢哪个？" {
		t.Fatalf("unexpected question: %q", snap.Question)
	}
	// 快照只保留选项文本，原投票人数不进入快照
	if len(snap.Options) != 2 || snap.Options[0] != "A" || snap.Options[1] != "B" {
		t.Fatalf("unexpected options: %v", snap.Options)
	}
	if snap.Type != "quiz" || snap.CorrectOptionID != 1 {
		t.Fatalf("unexpected quiz fields: type=%s correct=%d", snap.Type, snap.CorrectOptionID)
	}
}

func TestContentFromMessageMediaKinds(t *testing.T) {
	cases := []struct {
		name string
		msg  *botModels.Message
		want ContentKind
	}{
		{"photo", &botModels.Message{Photo: []botModels.PhotoSize{{FileID: "f"}}}, ContentPhoto},
		{"voice", &botModels.Message{Voice: &botModels.Voice{FileID: "f"}}, ContentVoice},
		{"audio", &botModels.Message{Audio: &botModels.Audio{FileID: "f"}}, ContentAudio},
		{"video", &botModels.Message{Video: &botModels.Video{FileID: "f"}}, ContentVideo},
		{"animation", &botModels.Message{Animation: &botModels.Animation{FileID: "f"}}, ContentAnimation},
		{"sticker", &botModels.Message{Sticker: &botModels.Sticker{FileID: "f"}}, ContentSticker},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content, err := ContentFromMessage(tc.msg)
			if err != nil {
				t.Fatalf("ContentFromMessage failed: %v", err)
			}
			if content.Kind != tc.want {
				t.Fatalf("unexpected kind: got %s, want %s", content.Kind, tc.want)
			}
		})
	}
}

func TestContentFromMessageUnsupported(t *testing.T) {
	cases := []struct {
		name string
		msg  *botModels.Message
	}{
		{"nil message", nil},
		{"empty message", &botModels.Message{ID: 1}},
		{"contact", &botModels.Message{ID: 2, Contact: &botModels.Contact{PhoneNumber: "123"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ContentFromMessage(tc.msg)
			if !errors.Is(err, ErrUnsupportedContent) {
				t.Fatalf("expected ErrUnsupportedContent, got %v", err)
			}
		})
	}
}
