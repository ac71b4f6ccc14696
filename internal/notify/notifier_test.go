package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recorder) deliver(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func TestNotifierShowAndCurrent(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec.deliver)
	defer n.Stop()

	n.Show("Título", "Mensagem")
	require.NotNil(t, n.Current())
	assert.Equal(t, "Título", n.Current().Title)
	assert.Equal(t, 1, rec.count())
}

func TestNotifierReplacesCurrent(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec.deliver)
	defer n.Stop()

	n.Show("Primeiro", "a")
	n.Show("Segundo", "b")

	require.NotNil(t, n.Current())
	assert.Equal(t, "Segundo", n.Current().Title)
	assert.Equal(t, 2, rec.count())
}

func TestNotifierAutoDismiss(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec.deliver)
	defer n.Stop()
	n.SetDismissAfter(20 * time.Millisecond)

	n.Show("Título", "Mensagem")
	require.NotNil(t, n.Current())

	assert.Eventually(t, func() bool {
		return n.Current() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestNotifierManualDismiss(t *testing.T) {
	n := NewNotifier(nil)
	defer n.Stop()

	n.Show("Título", "Mensagem")
	n.Dismiss()
	assert.Nil(t, n.Current())
}

func TestNotifierStopCancelsPendingCallbacks(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(rec.deliver)
	n.SetDismissAfter(10 * time.Millisecond)

	n.Show("Título", "Mensagem")
	n.ScheduleWaterReminder()
	n.Stop()

	before := rec.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, rec.count(), "no callback may fire after Stop")
	assert.Nil(t, n.Current())

	// A stopped notifier ignores further requests.
	n.Show("Depois", "x")
	assert.Nil(t, n.Current())
	assert.Equal(t, before, rec.count())
}
