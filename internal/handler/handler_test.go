package handler

import (
	"testing"
	"time"

	"wordlens/internal/service"
	"wordlens/internal/testutil"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestHandler_SessionPerChat(t *testing.T) {
	created := 0
	factory := func(chatID int64, presenter service.Presenter) *service.Session {
		created++
		return service.NewSession(chatID, nil, nil, presenter, service.SessionConfig{}, testutil.NewTestLogger())
	}
	h := newHandler(&fakeSender{}, "lens_bot", factory, testutil.NewTestLogger())
	defer h.Close()

	s1, p1 := h.Session(1)
	s1again, p1again := h.Session(1)
	s2, _ := h.Session(2)

	assert.Same(t, s1, s1again)
	assert.Same(t, p1, p1again)
	assert.NotSame(t, s1, s2)
	assert.Equal(t, 2, created)
}

func TestHandler_CloseResetsSessions(t *testing.T) {
	factory := func(chatID int64, presenter service.Presenter) *service.Session {
		return service.NewSession(chatID, nil, nil, presenter, service.SessionConfig{}, testutil.NewTestLogger())
	}
	h := newHandler(&fakeSender{}, "", factory, testutil.NewTestLogger())
	s1, _ := h.Session(1)

	h.Close()

	s1after, _ := h.Session(1)
	assert.NotSame(t, s1, s1after)
	s1after.Close()
}

func TestHandler_PruneIdle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	created := 0
	factory := func(chatID int64, presenter service.Presenter) *service.Session {
		created++
		return service.NewSession(chatID, nil, nil, presenter, service.SessionConfig{Clock: clock}, testutil.NewTestLogger())
	}
	h := newHandler(&fakeSender{}, "", factory, testutil.NewTestLogger())
	defer h.Close()

	stale, _ := h.Session(1)
	active, _ := h.Session(2)

	clock.Advance(20 * time.Minute)
	active.Input("")
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, h.PruneIdle(30*time.Minute))
	assert.Equal(t, 0, h.PruneIdle(30*time.Minute))

	activeAgain, _ := h.Session(2)
	assert.Same(t, active, activeAgain)

	fresh, _ := h.Session(1)
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, 3, created)
}
