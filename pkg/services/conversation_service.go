package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"biosecure-api/pkg/models"

	"github.com/google/uuid"
)

var (
	ErrEmptySession  = errors.New("session id is required")
	ErrEmptyMessage  = errors.New("message text must not be empty")
	ErrUnknownRole   = errors.New("unknown chat role")
	ErrNoSuchSession = errors.New("conversation not found")
)

// ConversationService はアドバイザーとの会話履歴をセッションIDごとにメモリ上で保持します。
// 履歴は追記のみで、NewSessionが発行したセッションだけを受け付けます。
// 上限を超えると最も古いセッションから破棄されます。
type ConversationService struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	sessions map[string][]models.ChatMessage
	now      func() time.Time
}

// NewConversationService は最大capacity件のセッションを保持するConversationServiceを生成します。
func NewConversationService(capacity int) *ConversationService {
	if capacity <= 0 {
		capacity = 1
	}
	return &ConversationService{
		capacity: capacity,
		sessions: make(map[string][]models.ChatMessage),
		now:      time.Now,
	}
}

// NewSession は新しいセッションを登録し、そのIDを返します。
func (s *ConversationService) NewSession() string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = []models.ChatMessage{}
	s.order = append(s.order, id)
	for len(s.order) > s.capacity {
		delete(s.sessions, s.order[0])
		s.order = s.order[1:]
	}
	return id
}

// Exists はsessionIDが現在保持されているかを返します。
func (s *ConversationService) Exists(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// Append はsessionIDの履歴にメッセージを追加します。
func (s *ConversationService) Append(sessionID string, role models.ChatRole, text string) (models.ChatMessage, error) {
	if sessionID == "" {
		return models.ChatMessage{}, ErrEmptySession
	}
	if !role.Valid() {
		return models.ChatMessage{}, ErrUnknownRole
	}
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	msg := models.ChatMessage{Role: role, Text: text, CreatedAt: s.now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.sessions[sessionID]
	if !ok {
		return models.ChatMessage{}, ErrNoSuchSession
	}
	s.sessions[sessionID] = append(msgs, msg)
	return msg, nil
}

// History はsessionIDの履歴のコピーを返します。
func (s *ConversationService) History(sessionID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNoSuchSession
	}
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Len は保持しているセッション数を返します。
func (s *ConversationService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
