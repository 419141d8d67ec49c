package handler

import (
	"context"
	"sync"
	"time"

	"wordlens/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SessionFactory creates the search session for a chat
type SessionFactory func(chatID int64, presenter service.Presenter) *service.Session

// chatSession pairs a chat's orchestrator with its presenter
type chatSession struct {
	session   *service.Session
	presenter *Presenter
}

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	sender      Sender
	botUsername string
	newSession  SessionFactory
	logger      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// One session per chat
	sessions   map[int64]*chatSession
	sessionMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, newSession SessionFactory, logger *zap.Logger) *Handler {
	username := ""
	if bot.Me != nil {
		username = bot.Me.Username
	}
	h := newHandler(bot, username, newSession, logger)
	h.bot = bot
	return h
}

func newHandler(sender Sender, botUsername string, newSession SessionFactory, logger *zap.Logger) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		sender:      sender,
		botUsername: botUsername,
		newSession:  newSession,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		sessions:    make(map[int64]*chatSession),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/clear", h.handleClear)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnPrev, h.handlePrev)
	h.bot.Handle(&btnNext, h.handleNext)
	h.bot.Handle(&btnClickable, h.handleToggle)
	h.bot.Handle(&btnWord, h.handleWord)

	// Generic callback handler for anything the buttons above missed
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// Session returns the chat's session, creating it on first use
func (h *Handler) Session(chatID int64) (*service.Session, *Presenter) {
	h.sessionMux.RLock()
	cs, exists := h.sessions[chatID]
	h.sessionMux.RUnlock()
	if exists {
		return cs.session, cs.presenter
	}

	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	if cs, exists := h.sessions[chatID]; exists {
		return cs.session, cs.presenter
	}

	presenter := NewPresenter(h.sender, tele.ChatID(chatID), h.botUsername, h.logger.With(zap.Int64("chat_id", chatID)))
	cs = &chatSession{
		session:   h.newSession(chatID, presenter),
		presenter: presenter,
	}
	h.sessions[chatID] = cs

	h.logger.Debug("Session created", zap.Int64("chat_id", chatID))
	return cs.session, cs.presenter
}

// PruneIdle closes and forgets sessions without activity for longer than
// maxIdle. A later message from the chat starts a fresh session.
func (h *Handler) PruneIdle(maxIdle time.Duration) int {
	var idle []*chatSession

	h.sessionMux.Lock()
	for chatID, cs := range h.sessions {
		if cs.session.IdleFor() > maxIdle {
			delete(h.sessions, chatID)
			idle = append(idle, cs)
		}
	}
	h.sessionMux.Unlock()

	for _, cs := range idle {
		cs.session.Close()
	}
	if len(idle) > 0 {
		h.logger.Info("Idle sessions pruned", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// Close stops every session
func (h *Handler) Close() {
	h.cancel()

	h.sessionMux.Lock()
	sessions := h.sessions
	h.sessions = make(map[int64]*chatSession)
	h.sessionMux.Unlock()

	for _, cs := range sessions {
		cs.session.Close()
	}
	h.logger.Info("Sessions closed", zap.Int("count", len(sessions)))
}
