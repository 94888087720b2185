package cart

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type NotificationKind string

const (
	NotificationAdded   NotificationKind = "added"
	NotificationRemoved NotificationKind = "removed"
	NotificationCleared NotificationKind = "cleared"
)

// Notification is a short user-facing confirmation of a cart change.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Message  string           `json:"message"`
	Duration time.Duration    `json:"duration"`
}

// Notifier receives the observable side effects of cart mutations: a
// confirmation message and the refreshed item counter.
type Notifier interface {
	Notify(n Notification)
	CountChanged(count int)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (l LogNotifier) Notify(n Notification) {
	l.Log.WithField("kind", n.Kind).Info(n.Message)
}

func (l LogNotifier) CountChanged(count int) {
	l.Log.WithField("item_count", count).Debug("cart counter refreshed")
}

// Recorder keeps notifications so a handler can return them with its
// response.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
	count         int
	refreshed     bool
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *Recorder) CountChanged(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count = count
	r.refreshed = true
}

func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Count returns the last counter value and whether it was ever refreshed.
func (r *Recorder) Count() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count, r.refreshed
}

// multiNotifier fans out to several notifiers.
type multiNotifier []Notifier

func (m multiNotifier) Notify(n Notification) {
	for _, x := range m {
		x.Notify(n)
	}
}

func (m multiNotifier) CountChanged(count int) {
	for _, x := range m {
		x.CountChanged(count)
	}
}
