package service

import (
	"context"
	"errors"
	"fmt"

	"spotted_bot/internal/logger"
	"spotted_bot/internal/telegram/models"
	"spotted_bot/internal/telegram/repository"
)

// RegistryService 已发布投稿登记服务
// 跟踪已发布投稿上的社区投票，以及 comments 模式下的署名解析
type RegistryService struct {
	publishedRepo repository.PublishedPostRepository
	creditRepo    repository.CreditRepository
	transport     Transport
}

// NewRegistryService 创建已发布投稿登记服务
func NewRegistryService(
	publishedRepo repository.PublishedPostRepository,
	creditRepo repository.CreditRepository,
	transport Transport,
) *RegistryService {
	return &RegistryService{
		publishedRepo: publishedRepo,
		creditRepo:    creditRepo,
		transport:     transport,
	}
}

// RecordVote 记录一条社区投票并刷新投票键盘
// 每个用户一票，改票是覆盖；目标投稿不存在返回 ErrUnknownPublishedPost
func (s *RegistryService) RecordVote(ctx context.Context, chatID int64, messageID int, voterID int64, vote string) (models.CommunityTally, error) {
	if vote != models.CommunityVoteUp && vote != models.CommunityVoteDown {
		return models.CommunityTally{}, fmt.Errorf("%w: %q", ErrInvalidVote, vote)
	}

	post, err := s.publishedRepo.UpsertVote(ctx, chatID, messageID, voterID, vote)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.CommunityTally{}, ErrUnknownPublishedPost
		}
		return models.CommunityTally{}, err
	}

	tally := post.Tally()

	// 键盘只是计数的展示，刷新失败不影响已落库的投票
	if err := s.transport.EditReplyMarkup(ctx, chatID, messageID, CommunityVoteKeyboard(tally)); err != nil {
		logger.L().Warnf("Failed to refresh community vote keyboard for %d/%d: %v", chatID, messageID, err)
	}

	return tally, nil
}

// CreditSubmitter 解析并消费一条署名记录（单次有效）
// 二次调用或记录不存在时返回 ErrNoCredit
func (s *RegistryService) CreditSubmitter(ctx context.Context, chatID int64, messageID int) (*models.CreditRecord, error) {
	credit, err := s.creditRepo.Take(ctx, chatID, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCredit
		}
		return nil, err
	}
	return credit, nil
}

// AttachCredit 处理频道投稿在社区群的自动转发：
// 消费署名记录，在转发消息下回复署名行并登记社区群投稿以接受投票
// 没有署名记录（comments 关闭或已消费）时静默跳过
func (s *RegistryService) AttachCredit(ctx context.Context, communityGroupID int64, forwardedMessageID int, channelID int64, channelMessageID int) error {
	credit, err := s.CreditSubmitter(ctx, channelID, channelMessageID)
	if err != nil {
		if errors.Is(err, ErrNoCredit) {
			return nil
		}
		return err
	}

	sign := credit.SubmitterSign
	if sign == "" {
		sign = "anonymous"
	}

	messageID, err := s.transport.SendMessage(ctx, SendMessageParams{
		ChatID:           communityGroupID,
		Text:             "by: " + sign,
		ReplyMarkup:      CommunityVoteKeyboard(models.CommunityTally{}),
		ReplyToMessageID: forwardedMessageID,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if err := s.publishedRepo.Create(ctx, &models.PublishedPost{
		ChatID:    communityGroupID,
		MessageID: messageID,
	}); err != nil {
		return err
	}

	logger.L().Infof("Credit attached in community group: channel_message=%d submitter=%d", channelMessageID, credit.SubmitterID)
	return nil
}
