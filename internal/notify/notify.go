// Package notify is the single sink for user-visible notices, the portal's
// analog of the toast bar. Every failure in the system produces exactly one
// notice; data-loading failures are framed as a switch to cached demo data
// rather than as an outage.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Notice levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Notice is one user-visible notification.
type Notice struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier receives user-visible notices.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

// ZapNotifier writes notices to a structured log. It is the default sink when
// no interactive surface is attached.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZap builds a log-backed notifier.
func NewZap(logger *zap.Logger) *ZapNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapNotifier{logger: logger}
}

func (n *ZapNotifier) Info(title, message string) {
	n.logger.Info("notice", zap.String("title", title), zap.String("message", message))
}

func (n *ZapNotifier) Error(title, message string) {
	n.logger.Warn("notice", zap.String("title", title), zap.String("message", message))
}

// Recorder buffers notices so an HTTP handler can hand the pending ones to the
// client with the next page snapshot.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecorder builds an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(title, message string) {
	r.append(Notice{Level: LevelInfo, Title: title, Message: message})
}

func (r *Recorder) Error(title, message string) {
	r.append(Notice{Level: LevelError, Title: title, Message: message})
}

func (r *Recorder) append(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Drain returns the buffered notices and clears the buffer.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Tee fans a notice out to several sinks.
type Tee []Notifier

func (t Tee) Info(title, message string) {
	for _, n := range t {
		n.Info(title, message)
	}
}

func (t Tee) Error(title, message string) {
	for _, n := range t {
		n.Error(title, message)
	}
}
