package telegram

import (
	"errors"
	"sync"
	"time"

	"spotted_bot/internal/telegram/models"
)

// 会话状态错误
var (
	// ErrWrongChatContext 在非私聊环境中尝试启动私聊流程
	ErrWrongChatContext = errors.New("command requires a private chat")
	// ErrNoActiveSession 当前用户没有进行中的会话
	ErrNoActiveSession = errors.New("no active session")
)

// SessionState 用户会话状态
type SessionState string

const (
	// StatePosting 等待用户发送投稿内容
	StatePosting SessionState = "posting"
	// StateConfirm 内容已缓冲，等待用户确认或取消
	StateConfirm SessionState = "confirm"
	// StateReportingSpot 等待用户转发要举报的频道投稿
	StateReportingSpot SessionState = "reporting_spot"
	// StateReportingUser 等待用户发送被举报用户标识
	StateReportingUser SessionState = "reporting_user"
	// StateReportingUserReason 等待用户发送举报理由
	StateReportingUserReason SessionState = "reporting_user_reason"
)

// Session 单个用户的私聊会话
// 同一用户的事件按顺序处理，不跨任务共享指针
type Session struct {
	State SessionState

	// Content 投稿流程中缓冲的内容，仅在 confirm 状态有值
	Content *models.Content

	// ReportTarget 用户举报流程中缓冲的目标标识
	ReportTarget string
}

type sessionEntry struct {
	session Session
	expires time.Time
}

// sessionStore 内存会话存储，按用户 ID 索引，带 TTL 惰性过期
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]sessionEntry
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		sessions: make(map[int64]sessionEntry),
	}
}

// Begin 启动一个私聊流程，覆盖该用户已有的会话
// 非私聊环境返回 ErrWrongChatContext，不创建会话
func (s *sessionStore) Begin(userID int64, chatType string, state SessionState) error {
	if chatType != "private" {
		return ErrWrongChatContext
	}

	s.Put(userID, Session{State: state})
	return nil
}

// Get 读取用户会话，过期条目视为不存在并删除
func (s *sessionStore) Get(userID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[userID]
	if !ok {
		return Session{}, false
	}

	if time.Now().After(entry.expires) {
		delete(s.sessions, userID)
		return Session{}, false
	}

	return entry.session, true
}

// Put 写入用户会话并刷新过期时间
func (s *sessionStore) Put(userID int64, session Session) {
	s.mu.Lock()
	s.sessions[userID] = sessionEntry{
		session: session,
		expires: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
}

// End 结束用户会话
// 返回是否存在未过期的会话，供 /cancel 区分提示语
func (s *sessionStore) End(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[userID]
	if !ok {
		return false
	}

	delete(s.sessions, userID)
	return !time.Now().After(entry.expires)
}

// Sweep 清理所有过期会话，由后台协程周期调用
func (s *sessionStore) Sweep() {
	now := time.Now()

	s.mu.Lock()
	for userID, entry := range s.sessions {
		if now.After(entry.expires) {
			delete(s.sessions, userID)
		}
	}
	s.mu.Unlock()
}
