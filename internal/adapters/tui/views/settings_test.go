package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"indexdeck/internal/application"
	"indexdeck/internal/domain"
)

func newTestSettings(cache *stubCache) *SettingsModel {
	ctrl := application.NewCacheClearController(cache, nil, application.WithDismissAfter(10*time.Millisecond))
	return NewSettingsModel(ctrl, "/tmp/indexdeck/config.toml", "http://localhost:9696")
}

// confirmClear presses c then y and returns the messages the resulting
// commands produce
func confirmClear(t *testing.T, m *SettingsModel) []tea.Msg {
	t.Helper()
	m.Update(keyPress("c"))
	if !m.confirm.Active {
		t.Fatal("expected confirmation prompt")
	}
	_, cmd := m.Update(keyPress("y"))
	var out []tea.Msg
	for _, msg := range collect(cmd) {
		_, next := m.Update(msg)
		out = append(out, collect(next)...)
	}
	return out
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestSettings_ClearSucceedsThenDismisses(t *testing.T) {
	cache := &stubCache{deleted: 42}
	m := newTestSettings(cache)

	msgs := confirmClear(t, m)
	if m.State().Phase != domain.CacheClearClearing {
		t.Fatalf("expected Clearing, got %s", m.State())
	}
	if !strings.Contains(m.View(), "Clearing cache...") {
		t.Error("expected progress in view")
	}

	done, ok := findMsg[cacheClearDoneMsg](msgs)
	if !ok {
		t.Fatal("expected a clear result message")
	}
	_, cmd := m.Update(done)
	if m.State() != domain.Succeeded(42) {
		t.Fatalf("expected Succeeded(42), got %s", m.State())
	}
	if !strings.Contains(m.View(), "Cleared 42 cache entries") {
		t.Error("expected success summary in view")
	}

	dismiss, ok := findMsg[cacheClearDismissMsg](collect(cmd))
	if !ok {
		t.Fatal("expected a dismissal to be scheduled")
	}
	m.Update(dismiss)
	if m.State() != domain.Idle() {
		t.Errorf("expected Idle after dismissal, got %s", m.State())
	}
	if cache.calls != 1 {
		t.Errorf("expected 1 request, got %d", cache.calls)
	}
}

func TestSettings_FailureShowsFixedMessage(t *testing.T) {
	m := newTestSettings(&stubCache{err: errors.New("HTTP 502: bad gateway")})

	msgs := confirmClear(t, m)
	done, ok := findMsg[cacheClearDoneMsg](msgs)
	if !ok {
		t.Fatal("expected a clear result message")
	}
	_, cmd := m.Update(done)
	if cmd != nil {
		t.Error("failure must not schedule a dismissal")
	}
	if m.State() != domain.Failed(application.CacheClearFailedMessage) {
		t.Errorf("unexpected state %s", m.State())
	}
	view := m.View()
	if !strings.Contains(view, "Failed to clear cache") || strings.Contains(view, "502") {
		t.Error("view must show only the fixed failure message")
	}
}

func TestSettings_CancelConfirmation(t *testing.T) {
	cache := &stubCache{}
	m := newTestSettings(cache)

	m.Update(keyPress("c"))
	_, cmd := m.Update(keyPress("n"))
	for _, msg := range collect(cmd) {
		m.Update(msg)
	}
	if m.State() != domain.Idle() || cache.calls != 0 {
		t.Error("cancel must not start a clear")
	}
}

func TestSettings_GuardWhileClearing(t *testing.T) {
	m := newTestSettings(&stubCache{})

	confirmClear(t, m)
	m.Update(keyPress("c"))
	if m.confirm.Active {
		t.Error("no prompt while a clear is in flight")
	}
	if !m.MessageErr {
		t.Error("expected in-progress notice")
	}
	if cmd := m.startClear(); cmd != nil {
		t.Error("second trigger must be rejected")
	}
}

func TestSettings_IgnoresOtherControllers(t *testing.T) {
	m := newTestSettings(&stubCache{deleted: 3})
	msgs := confirmClear(t, m)
	done, _ := findMsg[cacheClearDoneMsg](msgs)

	other := newTestSettings(&stubCache{})
	other.Update(done)
	if other.State() != domain.Idle() {
		t.Errorf("foreign result applied: %s", other.State())
	}
}

func TestSettings_DisposeDropsLateResult(t *testing.T) {
	m := newTestSettings(&stubCache{deleted: 3})
	msgs := confirmClear(t, m)
	done, _ := findMsg[cacheClearDoneMsg](msgs)

	m.Dispose()
	m.Dispose()
	_, cmd := m.Update(done)
	if cmd != nil {
		t.Error("disposed view must not schedule a dismissal")
	}
	if m.State().Phase != domain.CacheClearClearing {
		t.Errorf("state changed after dispose: %s", m.State())
	}
}

func TestSettings_EditConfig(t *testing.T) {
	m := newTestSettings(&stubCache{})
	_, cmd := m.Update(keyPress("e"))
	if cmd == nil {
		t.Fatal("expected editor command")
	}
	msg, ok := cmd().(OpenEditorMsg)
	if !ok || msg.Path != "/tmp/indexdeck/config.toml" {
		t.Errorf("unexpected message %+v", msg)
	}

	noPath := NewSettingsModel(application.NewCacheClearController(&stubCache{}, nil), "", "http://x")
	if _, cmd := noPath.Update(keyPress("e")); cmd != nil {
		t.Error("no editor command without a config path")
	}
}
