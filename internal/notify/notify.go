// Package notify composes and dispatches Claude Code desktop notifications.
package notify

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xabinapal/ccnotify/internal/config"
	"github.com/xabinapal/ccnotify/internal/event"
	"github.com/xabinapal/ccnotify/internal/history"
)

// Notification is a composed notification, ready to be dispatched.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Sound   bool   `json:"sound"`
	Icon    string `json:"icon,omitempty"`
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithBackend sets a custom notification backend (for testing).
func WithBackend(backend Backend) Option {
	return func(n *Notifier) {
		n.backend = backend
	}
}

// WithLogger sets the logger used for suppressed lookup and dispatch errors.
func WithLogger(logger zerolog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithHistoryFile overrides the history log path from the configuration.
func WithHistoryFile(path string) Option {
	return func(n *Notifier) {
		if path != "" {
			n.historyFile = path
		}
	}
}

// Notifier turns hook events into desktop notifications.
type Notifier struct {
	historyFile string
	sound       bool
	icon        string
	backend     Backend
	logger      zerolog.Logger
}

// New creates a new Notifier based on the configuration.
func New(cfg *config.Config, opts ...Option) *Notifier {
	n := &Notifier{
		historyFile: cfg.HistoryFile,
		sound:       cfg.SoundEnabled(),
		icon:        cfg.Icon,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.backend == nil {
		n.backend = newDesktopBackend(cfg.AppName)
	}

	return n
}

// Compose builds the notification for req. display is the session label,
// which is prepended to the message when non-empty.
func (n *Notifier) Compose(req *event.Request, display string) Notification {
	title := fmt.Sprintf("%s [%s]", req.Kind().Title(), req.ProjectName())

	message := req.Message
	if display != "" {
		message = fmt.Sprintf("%s...\n%s", display, message)
	}

	return Notification{
		Title:   title,
		Message: message,
		Sound:   n.sound,
		Icon:    n.icon,
	}
}

// Prepare looks up the session label for req and composes its notification.
// Lookup failures never fail the call; they only leave the label out.
func (n *Notifier) Prepare(req *event.Request) Notification {
	res := history.Lookup(n.historyFile, req.SessionID)

	n.logger.Debug().
		Str("session_id", req.SessionID).
		Str("history_file", n.historyFile).
		Stringer("status", res.Status).
		Int("lines", res.Lines).
		Int("bad_lines", res.BadLines).
		AnErr("lookup_error", res.Err).
		Msg("session lookup")

	return n.Compose(req, res.Display())
}

// Send prepares the notification for req and dispatches it exactly once.
// The composed notification is returned together with any dispatch error.
func (n *Notifier) Send(req *event.Request) (Notification, error) {
	nt := n.Prepare(req)
	return nt, n.Dispatch(nt)
}

// Dispatch hands nt to the backend.
func (n *Notifier) Dispatch(nt Notification) error {
	var err error
	if nt.Sound {
		err = n.backend.Alert(nt.Title, nt.Message, nt.Icon)
	} else {
		err = n.backend.Notify(nt.Title, nt.Message, nt.Icon)
	}

	if err != nil {
		n.logger.Debug().Err(err).Str("title", nt.Title).Msg("notification dispatch failed")
		return fmt.Errorf("failed to dispatch notification: %w", err)
	}

	n.logger.Debug().Str("title", nt.Title).Bool("sound", nt.Sound).Msg("notification dispatched")
	return nil
}
