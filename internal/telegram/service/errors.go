package service

import "errors"

// 审核/发布核心的预期错误
// UnknownPendingPost / UnknownPublishedPost / NoCredit 属于正常竞争结果，
// 调用方应静默处理；DeliveryFailed 表示传输层拒绝，需要通知用户
var (
	// ErrUnknownPendingPost 待审核投稿不存在（通常已被其他管理员定案）
	ErrUnknownPendingPost = errors.New("unknown pending post")

	// ErrUnknownPublishedPost 已发布投稿不存在
	ErrUnknownPublishedPost = errors.New("unknown published post")

	// ErrNoCredit 署名记录不存在或已被消费
	ErrNoCredit = errors.New("no credit record")

	// ErrDeliveryFailed 投稿副本发送失败，未创建任何待审核记录
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrInvalidVote 投票值不合法
	ErrInvalidVote = errors.New("invalid vote value")
)
