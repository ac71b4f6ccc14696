package notify

import (
	"sync"
	"time"
)

// DefaultDismissAfter is how long a notice stays visible before it is
// dismissed automatically.
const DefaultDismissAfter = 6 * time.Second

// WaterReminderAfter is the delay before the one-shot hydration
// reminder fires.
const WaterReminderAfter = 15 * time.Second

// Notice is one transient message.
type Notice struct {
	Title   string
	Message string
}

// Notifier is a depth-1 transient message queue: showing a notice
// replaces the current one and schedules its auto-dismissal. Once
// stopped, no scheduled callback can fire anymore.
type Notifier struct {
	mu           sync.Mutex
	deliver      func(Notice)
	dismissAfter time.Duration
	current      *Notice
	dismissTimer *time.Timer
	waterTimer   *time.Timer
	stopped      bool
}

// NewNotifier creates a notifier delivering notices through the given
// callback.
func NewNotifier(deliver func(Notice)) *Notifier {
	return &Notifier{
		deliver:      deliver,
		dismissAfter: DefaultDismissAfter,
	}
}

// SetDismissAfter overrides the auto-dismiss delay.
func (n *Notifier) SetDismissAfter(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dismissAfter = d
}

// Show replaces any current notice, delivers the new one and schedules
// its auto-dismissal.
func (n *Notifier) Show(title, message string) {
	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	if n.dismissTimer != nil {
		n.dismissTimer.Stop()
	}
	notice := Notice{Title: title, Message: message}
	n.current = &notice
	n.dismissTimer = time.AfterFunc(n.dismissAfter, n.Dismiss)
	deliver := n.deliver
	n.mu.Unlock()

	if deliver != nil {
		deliver(notice)
	}
}

// Current returns the visible notice, or nil after dismissal.
func (n *Notifier) Current() *Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Dismiss clears the current notice and cancels its dismissal timer.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dismissTimer != nil {
		n.dismissTimer.Stop()
		n.dismissTimer = nil
	}
	n.current = nil
}

// ScheduleWaterReminder arms the one-shot hydration reminder. It is
// cancelled by Stop like every other pending callback.
func (n *Notifier) ScheduleWaterReminder() {
	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	if n.waterTimer != nil {
		n.waterTimer.Stop()
	}
	n.waterTimer = time.AfterFunc(WaterReminderAfter, func() {
		n.Show("Hora de beber água!", "Mantenha-se hidratado para otimizar seus resultados.")
	})
	n.mu.Unlock()
}

// Stop tears the notifier down. Pending timers are cancelled so a
// torn-down owner can never receive a stale callback.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
	if n.dismissTimer != nil {
		n.dismissTimer.Stop()
		n.dismissTimer = nil
	}
	if n.waterTimer != nil {
		n.waterTimer.Stop()
		n.waterTimer = nil
	}
	n.current = nil
}
