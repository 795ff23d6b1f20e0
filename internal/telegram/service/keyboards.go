package service

import (
	"fmt"

	"spotted_bot/internal/telegram/models"

	botModels "github.com/go-telegram/bot/models"
)

// markupOrNil 把 nil 指针转换为 nil 接口，避免传输层序列化出 typed-nil
func markupOrNil(m *botModels.InlineKeyboardMarkup) botModels.ReplyMarkup {
	if m == nil {
		return nil
	}
	return m
}

// ApprovalKeyboard 审核键盘：赞成/反对按钮附当前票数
func ApprovalKeyboard(pendingID string, tally models.VoteTally) *botModels.InlineKeyboardMarkup {
	return &botModels.InlineKeyboardMarkup{
		InlineKeyboard: [][]botModels.InlineKeyboardButton{
			{
				{
					Text:         fmt.Sprintf("🟢 %d", tally.Approve),
					CallbackData: EncodeCallback(CallbackActionVote, models.VoteApprove, pendingID),
				},
				{
					Text:         fmt.Sprintf("🔴 %d", tally.Reject),
					CallbackData: EncodeCallback(CallbackActionVote, models.VoteReject, pendingID),
				},
			},
		},
	}
}

// OutcomeKeyboard 定案后的审核消息键盘，展示最终票数（拒绝理由附在下一行）
func OutcomeKeyboard(approved bool, tally models.VoteTally, reason string) *botModels.InlineKeyboardMarkup {
	verdict := "❌ 已拒绝"
	if approved {
		verdict = "✅ 已通过"
	}

	keyboard := [][]botModels.InlineKeyboardButton{
		{
			{
				Text:         fmt.Sprintf("%s  🟢 %d / 🔴 %d", verdict, tally.Approve, tally.Reject),
				CallbackData: EncodeCallback(CallbackActionNoop),
			},
		},
	}

	if reason != "" {
		keyboard = append(keyboard, []botModels.InlineKeyboardButton{
			{
				Text:         "理由: " + reason,
				CallbackData: EncodeCallback(CallbackActionNoop),
			},
		})
	}

	return &botModels.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

// CommunityVoteKeyboard 已发布投稿的社区投票键盘
func CommunityVoteKeyboard(tally models.CommunityTally) *botModels.InlineKeyboardMarkup {
	return &botModels.InlineKeyboardMarkup{
		InlineKeyboard: [][]botModels.InlineKeyboardButton{
			{
				{
					Text:         fmt.Sprintf("👍 %d", tally.Up),
					CallbackData: EncodeCallback(CallbackActionPubVote, models.CommunityVoteUp),
				},
				{
					Text:         fmt.Sprintf("👎 %d", tally.Down),
					CallbackData: EncodeCallback(CallbackActionPubVote, models.CommunityVoteDown),
				},
			},
		},
	}
}

// ConfirmKeyboard 投稿确认键盘
func ConfirmKeyboard() *botModels.InlineKeyboardMarkup {
	return &botModels.InlineKeyboardMarkup{
		InlineKeyboard: [][]botModels.InlineKeyboardButton{
			{
				{Text: "✅ 确认投稿", CallbackData: EncodeCallback(CallbackActionConfirm, "submit")},
				{Text: "❌ 取消", CallbackData: EncodeCallback(CallbackActionConfirm, "cancel")},
			},
		},
	}
}
