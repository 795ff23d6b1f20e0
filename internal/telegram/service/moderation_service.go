package service

import (
	"context"
	"errors"
	"fmt"

	"spotted_bot/internal/logger"
	"spotted_bot/internal/telegram/models"
	"spotted_bot/internal/telegram/repository"

	botModels "github.com/go-telegram/bot/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModerationConfig 审核队列配置
type ModerationConfig struct {
	AdminGroupID     int64 // 审核群 ID
	ChannelID        int64 // 发布频道 ID
	Comments         bool  // comments 模式：发布后在社区群署名投票，而不是频道内投票
	ApproveThreshold int   // 通过所需赞成票数
	RejectThreshold  int   // 拒绝所需反对票数
}

// VoteOutcome 一次管理员投票的结果
type VoteOutcome struct {
	Finalized        bool             // 本次投票触发了定案
	AlreadyFinalized bool             // 投稿已被其他管理员定案（竞争失败，静默处理）
	Approved         bool             // 定案结果（Finalized 为 true 时有效）
	Tally            models.VoteTally // 投票后的计数快照
}

// ModerationService 审核队列服务
// 跟踪待审核投稿、聚合管理员投票、按阈值定案并触发发布
type ModerationService struct {
	pendingRepo   repository.PendingPostRepository
	publishedRepo repository.PublishedPostRepository
	creditRepo    repository.CreditRepository
	transport     Transport
	cfg           ModerationConfig
}

// NewModerationService 创建审核队列服务
func NewModerationService(
	pendingRepo repository.PendingPostRepository,
	publishedRepo repository.PublishedPostRepository,
	creditRepo repository.CreditRepository,
	transport Transport,
	cfg ModerationConfig,
) *ModerationService {
	if cfg.ApproveThreshold < 1 {
		cfg.ApproveThreshold = 1
	}
	if cfg.RejectThreshold < 1 {
		cfg.RejectThreshold = 1
	}
	return &ModerationService{
		pendingRepo:   pendingRepo,
		publishedRepo: publishedRepo,
		creditRepo:    creditRepo,
		transport:     transport,
		cfg:           cfg,
	}
}

// Submit 将确认后的投稿转发到审核群并创建待审核记录
// 转发失败返回 ErrDeliveryFailed 且不创建任何记录；落库失败时摘除审核键盘，
// 留下的孤儿副本不可投票（投票会命中 UnknownPendingPost）
func (s *ModerationService) Submit(ctx context.Context, content *models.Content, submitterID int64, sign string) (*models.PendingPost, error) {
	// 预生成 ID，审核键盘的回调数据需要引用它
	id := primitive.NewObjectID()

	adminMessageID, err := CopyContent(ctx, s.transport, *content, s.cfg.AdminGroupID, ApprovalKeyboard(id.Hex(), models.VoteTally{}))
	if err != nil {
		logger.L().Errorf("Failed to copy submission to admin group: submitter=%d err=%v", submitterID, err)
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	post := &models.PendingPost{
		ID:             id,
		SubmitterID:    submitterID,
		SubmitterSign:  sign,
		Content:        *content,
		AdminGroupID:   s.cfg.AdminGroupID,
		AdminMessageID: adminMessageID,
		Votes:          map[string]string{},
	}

	if err := s.pendingRepo.Create(ctx, post); err != nil {
		if editErr := s.transport.EditReplyMarkup(ctx, s.cfg.AdminGroupID, adminMessageID, nil); editErr != nil {
			logger.L().Warnf("Failed to strip keyboard from orphan admin copy %d: %v", adminMessageID, editErr)
		}
		return nil, err
	}

	logger.L().Infof("Pending post %s created: submitter=%d admin_message=%d", id.Hex(), submitterID, adminMessageID)
	return post, nil
}

// CastVote 记录一条管理员投票并在达到阈值时定案
// 同一管理员重复投相同票是无害的 map 覆盖，不报错；投稿已不存在时返回
// ErrUnknownPendingPost（预期竞争，调用方静默处理）
func (s *ModerationService) CastVote(ctx context.Context, pendingID string, adminID int64, vote string, reason string) (*VoteOutcome, error) {
	if vote != models.VoteApprove && vote != models.VoteReject {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVote, vote)
	}

	id, err := primitive.ObjectIDFromHex(pendingID)
	if err != nil {
		return nil, ErrUnknownPendingPost
	}

	post, err := s.pendingRepo.UpsertVote(ctx, id, adminID, vote)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownPendingPost
		}
		return nil, err
	}

	tally := post.Tally()
	approved := tally.Approve >= s.cfg.ApproveThreshold
	rejected := tally.Reject >= s.cfg.RejectThreshold

	if !approved && !rejected {
		// 未达阈值：刷新审核键盘上的票数
		if err := s.transport.EditReplyMarkup(ctx, post.AdminGroupID, post.AdminMessageID, ApprovalKeyboard(pendingID, tally)); err != nil {
			logger.L().Warnf("Failed to refresh approval keyboard for %s: %v", pendingID, err)
		}
		return &VoteOutcome{Tally: tally}, nil
	}

	// 达到阈值：原子摘取投稿，并发定案只有一个赢家
	claimed, err := s.pendingRepo.Take(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.L().Debugf("Pending post %s already finalized by another admin", pendingID)
			return &VoteOutcome{AlreadyFinalized: true, Tally: tally}, nil
		}
		return nil, err
	}

	tally = claimed.Tally()
	approved = tally.Approve >= s.cfg.ApproveThreshold

	if approved {
		if err := s.publish(ctx, claimed); err != nil {
			logger.L().Errorf("Failed to publish approved post %s: %v", pendingID, err)
		}
	} else {
		s.notifyRejection(ctx, claimed, reason)
	}

	s.renderOutcome(ctx, claimed, approved, tally, reason)

	logger.L().Infof("Pending post %s finalized: approved=%v tally=%d/%d", pendingID, approved, tally.Approve, tally.Reject)
	return &VoteOutcome{Finalized: true, Approved: approved, Tally: tally}, nil
}

// publish 将通过审核的投稿发布到频道
func (s *ModerationService) publish(ctx context.Context, post *models.PendingPost) error {
	// comments 关闭时投稿直接在频道内接受社区投票
	var markup *botModels.InlineKeyboardMarkup
	if !s.cfg.Comments {
		markup = CommunityVoteKeyboard(models.CommunityTally{})
	}

	messageID, err := CopyContent(ctx, s.transport, post.Content, s.cfg.ChannelID, markupOrNil(markup))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if s.cfg.Comments {
		// comments 开启：记录署名供社区群转发时消费，不在频道公开身份
		err = s.creditRepo.Create(ctx, &models.CreditRecord{
			ChatID:        s.cfg.ChannelID,
			MessageID:     messageID,
			SubmitterID:   post.SubmitterID,
			SubmitterSign: post.SubmitterSign,
		})
	} else {
		err = s.publishedRepo.Create(ctx, &models.PublishedPost{
			ChatID:    s.cfg.ChannelID,
			MessageID: messageID,
		})
	}
	if err != nil {
		return err
	}

	if _, err := s.transport.SendMessage(ctx, SendMessageParams{
		ChatID:           post.SubmitterID,
		Text:             "🎉 你的投稿已通过审核并发布",
		ReplyToMessageID: post.Content.SrcMessageID,
	}); err != nil {
		logger.L().Warnf("Failed to notify submitter %d of approval: %v", post.SubmitterID, err)
	}

	return nil
}

// notifyRejection 通知投稿人审核未通过
func (s *ModerationService) notifyRejection(ctx context.Context, post *models.PendingPost, reason string) {
	text := "😕 你的投稿未通过审核"
	if reason != "" {
		text += "\n理由: " + reason
	}

	if _, err := s.transport.SendMessage(ctx, SendMessageParams{
		ChatID:           post.SubmitterID,
		Text:             text,
		ReplyToMessageID: post.Content.SrcMessageID,
	}); err != nil {
		logger.L().Warnf("Failed to notify submitter %d of rejection: %v", post.SubmitterID, err)
	}
}

// renderOutcome 定案后的审核群渲染：
// 把审核消息的键盘换成最终票数，并回复最旧的剩余投稿提示剩余数量
func (s *ModerationService) renderOutcome(ctx context.Context, post *models.PendingPost, approved bool, tally models.VoteTally, reason string) {
	if err := s.transport.EditReplyMarkup(ctx, post.AdminGroupID, post.AdminMessageID, OutcomeKeyboard(approved, tally, reason)); err != nil {
		logger.L().Warnf("Failed to render outcome keyboard for admin message %d: %v", post.AdminMessageID, err)
	}

	remaining, err := s.pendingRepo.ListByAdminGroup(ctx, post.AdminGroupID)
	if err != nil {
		logger.L().Warnf("Failed to list remaining pending posts: %v", err)
		return
	}
	if len(remaining) == 0 {
		return
	}

	// remaining 已按审核消息 ID 升序，第一条即最旧
	oldest := remaining[0]
	text := fmt.Sprintf("⬆️ 待审核投稿\n还剩 %d 条待审核", len(remaining))
	if _, err := s.transport.SendMessage(ctx, SendMessageParams{
		ChatID:           post.AdminGroupID,
		Text:             text,
		ReplyToMessageID: oldest.AdminMessageID,
	}); err != nil {
		logger.L().Warnf("Failed to send pending reminder: %v", err)
	}
}
