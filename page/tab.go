package page

import (
	"sync"

	"github.com/rs/zerolog/log"
)

var _ Browser = (*Tab)(nil)

// Tab is a headless Browser. It records every navigation and notice so the
// outcome of a page script can be inspected afterwards.
type Tab struct {
	lock          sync.RWMutex
	location      Location
	navigations   []Page
	notices       []string
	confirmAnswer bool
	logNotices    bool
}

type TabOption func(*Tab)

// WithConfirmAnswer sets what Confirm answers. The default is true.
func WithConfirmAnswer(answer bool) TabOption {
	return func(t *Tab) { t.confirmAnswer = answer }
}

// WithNoticeLogging mirrors every notice to the logger.
func WithNoticeLogging() TabOption {
	return func(t *Tab) { t.logNotices = true }
}

func NewTab(hostname string, at Page, opts ...TabOption) *Tab {
	t := &Tab{
		location:      Location{Hostname: hostname, Path: "/" + at.Name()},
		confirmAnswer: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tab) Navigate(to Page) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.navigations = append(t.navigations, to)
	t.location.Path = "/" + to.Name()
}

func (t *Tab) Notify(message string) {
	t.lock.Lock()
	t.notices = append(t.notices, message)
	t.lock.Unlock()

	if t.logNotices {
		log.Warn().Str("notice", message).Msg("user notice")
	}
}

func (t *Tab) Confirm(message string) bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if t.logNotices {
		log.Info().Str("prompt", message).Bool("answer", t.confirmAnswer).Msg("confirm")
	}
	return t.confirmAnswer
}

func (t *Tab) Location() Location {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.location
}

// Navigations returns the pages navigated to, oldest first.
func (t *Tab) Navigations() []Page {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return append([]Page(nil), t.navigations...)
}

// LastNavigation returns the most recent navigation target.
func (t *Tab) LastNavigation() (Page, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if len(t.navigations) == 0 {
		return "", false
	}
	return t.navigations[len(t.navigations)-1], true
}

func (t *Tab) Notices() []string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return append([]string(nil), t.notices...)
}
