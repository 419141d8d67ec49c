package service

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"wordlens/internal/domain"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const DefaultDebounce = 300 * time.Millisecond

// ResultFetcher produces a LookupResult for a word
type ResultFetcher interface {
	Fetch(ctx context.Context, word string) (*domain.LookupResult, error)
}

// ImagePreloader warms carousel images and returns the ones that loaded
type ImagePreloader interface {
	Preload(ctx context.Context, urls []string) []string
}

// Presenter applies plans to a concrete UI. Session calls it while holding
// its lock, so implementations must not call back into the Session.
type Presenter interface {
	ShowLoading(ctx context.Context, word string)
	Render(ctx context.Context, plan domain.RenderPlan)
	ShowImages(ctx context.Context, word string, urls []string)
	UpdateNavigation(ctx context.Context, nav domain.NavState)
}

// SessionConfig tunes a Session
type SessionConfig struct {
	Debounce time.Duration
	Clock    clockwork.Clock
}

// Session is the search orchestrator for one user: it owns the current word,
// the debounce timer, the clickable mode and the navigation history, and
// sequences fetch, render, history and image preload for every trigger.
type Session struct {
	id        int64
	fetcher   ResultFetcher
	preloader ImagePreloader
	presenter Presenter
	clock     clockwork.Clock
	debounce  time.Duration
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	state       domain.SearchState
	currentWord string
	clickable   bool
	navigating  bool
	history     *History
	timer       clockwork.Timer
	timerGen    uint64
	seq         uint64
	images      map[string][]string
	closed      bool
	lastActive  time.Time
}

// NewSession creates an idle session
func NewSession(
	id int64,
	fetcher ResultFetcher,
	preloader ImagePreloader,
	presenter Presenter,
	cfg SessionConfig,
	logger *zap.Logger,
) *Session {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:         id,
		fetcher:    fetcher,
		preloader:  preloader,
		presenter:  presenter,
		clock:      cfg.Clock,
		debounce:   cfg.Debounce,
		logger:     logger.With(zap.Int64("session_id", id)),
		ctx:        ctx,
		cancel:     cancel,
		state:      domain.StateIdle,
		history:    NewHistory(),
		images:     make(map[string][]string),
		lastActive: cfg.Clock.Now(),
	}
}

// Input handles a change of the search text. Empty text resets the view
// at once; anything else is searched after the debounce period unless
// superseded by further input.
func (s *Session) Input(text string) {
	word := domain.NormalizeWord(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.touchLocked()
	s.stopTimerLocked()

	if word == "" {
		s.seq++
		s.state = domain.StateIdle
		s.currentWord = ""
		s.presenter.Render(s.ctx, EmptyPlan())
		return
	}

	s.state = domain.StateDebouncing
	s.timerGen++
	gen := s.timerGen
	s.wg.Add(1)
	s.timer = s.clock.AfterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.fireDebounce(word, gen)
	})
}

// Click searches a clicked word (chip, linked or annotated word) and records
// it in history. It is ignored for short words, the word already shown, or
// while a navigation is in flight. It reports whether a search ran.
func (s *Session) Click(ctx context.Context, word string) bool {
	word = domain.NormalizeWord(word)

	s.mu.Lock()
	s.touchLocked()
	if s.closed || s.navigating || utf8.RuneCountInString(word) <= minClickableLen || word == s.currentWord {
		s.mu.Unlock()
		return false
	}
	s.stopTimerLocked()
	s.mu.Unlock()

	s.search(ctx, word, domain.TriggerClick)
	return true
}

// Back re-displays the previous history entry without recording it
func (s *Session) Back(ctx context.Context) bool {
	return s.navigate(ctx, (*History).CanGoBack, (*History).GoBack)
}

// Forward re-displays the next history entry without recording it
func (s *Session) Forward(ctx context.Context) bool {
	return s.navigate(ctx, (*History).CanGoForward, (*History).GoForward)
}

// ToggleClickable flips the clickable mode and re-renders the current word
// in place. A search already in flight is left alone and renders in the new
// mode when it lands. It returns the new mode.
func (s *Session) ToggleClickable(ctx context.Context) bool {
	s.mu.Lock()
	s.touchLocked()
	s.clickable = !s.clickable
	clickable := s.clickable
	word := s.currentWord
	replay := word != "" && !s.closed && !s.navigating && s.state != domain.StateFetching
	if !replay && !s.closed {
		s.presenter.UpdateNavigation(ctx, s.navStateLocked())
	}
	s.mu.Unlock()

	if replay {
		s.search(ctx, word, domain.TriggerToggle)
	}
	return clickable
}

// Close stops the debounce timer and waits for background work
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.stopTimerLocked()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// State returns the current orchestrator state
func (s *Session) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentWord returns the word on display, empty if none
func (s *Session) CurrentWord() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWord
}

// History returns the recorded words and the cursor
func (s *Session) History() ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries(), s.history.Cursor()
}

// IdleFor reports how long the session has gone without user activity.
// A session with a search pending or in flight is never idle.
func (s *Session) IdleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.navigating || s.state == domain.StateDebouncing || s.state == domain.StateFetching {
		return 0
	}
	return s.clock.Since(s.lastActive)
}

// Nav returns the current navigation availability
func (s *Session) Nav() domain.NavState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navStateLocked()
}

func (s *Session) fireDebounce(word string, gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	if s.navigating {
		s.state = domain.StateIdle
		s.mu.Unlock()
		s.logger.Debug("Typed search skipped during navigation", zap.String("word", word))
		return
	}
	s.mu.Unlock()

	s.search(s.ctx, word, domain.TriggerTyped)
}

func (s *Session) navigate(
	ctx context.Context,
	can func(*History, bool) bool,
	move func(*History) (string, bool),
) bool {
	s.mu.Lock()
	s.touchLocked()
	if s.closed || !can(s.history, s.navigating) {
		s.mu.Unlock()
		return false
	}
	word, _ := move(s.history)
	s.navigating = true
	s.presenter.UpdateNavigation(ctx, s.navStateLocked())
	s.mu.Unlock()

	defer s.finishNavigation(ctx)
	s.search(ctx, word, domain.TriggerHistory)
	return true
}

// finishNavigation clears the flag on exits where the search did not
// (stale result, cancelled context)
func (s *Session) finishNavigation(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.navigating {
		return
	}
	s.navigating = false
	if !s.closed {
		s.presenter.UpdateNavigation(ctx, s.navStateLocked())
	}
}

func (s *Session) search(ctx context.Context, word string, trigger domain.Trigger) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.state = domain.StateFetching
	s.presenter.ShowLoading(ctx, word)
	s.mu.Unlock()

	s.logger.Debug("Searching",
		zap.String("word", word),
		zap.String("trigger", string(trigger)),
		zap.Uint64("seq", seq),
	)

	result, err := s.fetcher.Fetch(ctx, word)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.seq {
		s.logger.Debug("Discarding stale lookup", zap.String("word", word), zap.Uint64("seq", seq))
		return
	}

	if err == nil && result != nil {
		result = s.withSessionImages(word, result, trigger)
	}

	plan := Project(word, result, err, s.clickable)
	if plan.IsError {
		s.state = domain.StateError
		s.currentWord = ""
		if err != nil {
			s.logger.Warn("Search failed", zap.String("word", word), zap.Error(err))
		}
	} else {
		s.state = domain.StateRendering
		s.currentWord = word
	}

	s.presenter.Render(ctx, plan)

	if trigger == domain.TriggerHistory {
		s.navigating = false
	}
	if trigger.RecordsHistory() {
		s.history.Record(word)
	}
	s.presenter.UpdateNavigation(ctx, s.navStateLocked())
	s.state = domain.StateIdle

	if urls := plan.Carousel.URLs(); len(urls) > 0 {
		s.startPreloadLocked(seq, word, urls)
	}
}

// withSessionImages keeps the carousel stable within a session: the first
// image list fetched for a word is reused when the word is replayed.
func (s *Session) withSessionImages(word string, result *domain.LookupResult, trigger domain.Trigger) *domain.LookupResult {
	cached, ok := s.images[word]
	if !ok {
		if len(result.Images) > 0 {
			s.images[word] = append([]string(nil), result.Images...)
		}
		return result
	}
	if trigger.RecordsHistory() {
		return result
	}
	replay := *result
	replay.Images = append([]string(nil), cached...)
	return &replay
}

func (s *Session) startPreloadLocked(seq uint64, word string, urls []string) {
	if s.preloader == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		loaded := s.preloader.Preload(s.ctx, urls)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || seq != s.seq || len(loaded) == 0 {
			return
		}
		s.presenter.ShowImages(s.ctx, word, loaded)
	}()
}

func (s *Session) touchLocked() {
	s.lastActive = s.clock.Now()
}

func (s *Session) stopTimerLocked() {
	if s.timer == nil {
		return
	}
	if s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	s.timerGen++
}

func (s *Session) navStateLocked() domain.NavState {
	return domain.NavState{
		CanGoBack:    s.history.CanGoBack(s.navigating),
		CanGoForward: s.history.CanGoForward(s.navigating),
		Clickable:    s.clickable,
	}
}
