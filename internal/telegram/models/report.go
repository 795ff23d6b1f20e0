package models

import "time"

// ReportKind 举报目标类型
type ReportKind string

const (
	ReportPost ReportKind = "post" // 举报某条已发布投稿
	ReportUser ReportKind = "user" // 举报某个用户
)

// Report 举报事件
// 一次性事件：构建后立即转发给管理员，不作为持久状态保留
type Report struct {
	Kind             ReportKind
	ReporterID       int64
	ReporterUsername string
	TargetChatID     int64  // post 举报：被举报投稿所在频道
	TargetMessageID  int    // post 举报：被举报投稿消息 ID
	TargetUser       string // user 举报：被举报用户标识
	Reason           string // user 举报：举报理由
	CreatedAt        time.Time
}
