package scheduler

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/huescan/internal/engine"
	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/jsvensson/huescan/internal/scanner"
)

type doc struct {
	text    string
	version int
}

// fakeSource is an in-memory buffer store.
type fakeSource struct {
	mu   sync.Mutex
	docs map[string]doc

	// onSnapshot, when set, runs once after the next Snapshot.
	onSnapshot func()
}

func (f *fakeSource) set(id, text string, version int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docs == nil {
		f.docs = make(map[string]doc)
	}
	f.docs[id] = doc{text, version}
}

func (f *fakeSource) Snapshot(id string) (string, int, bool) {
	f.mu.Lock()
	d, ok := f.docs[id]
	hook := f.onSnapshot
	f.onSnapshot = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return d.text, d.version, ok
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock records timers instead of running them.
type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs every timer that was not stopped. With force it also runs stopped
// ones, like a timer that fired just before Stop.
func (c *fakeClock) fire(force bool) {
	timers := c.timers
	c.timers = nil
	for _, t := range timers {
		if !t.stopped || force {
			t.f()
		}
	}
}

func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type recorder struct {
	calls [][]string
	err   error
}

func (r *recorder) Add(hexes ...string) error {
	r.calls = append(r.calls, hexes)
	return r.err
}

type harness struct {
	s       *Scheduler
	src     *fakeSource
	clock   *fakeClock
	results []Result
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	if opts.Engine == nil {
		p, err := scanner.Compile(grammar.Set{grammar.HEX, grammar.RGB})
		if err != nil {
			t.Fatal(err)
		}
		opts.Engine = engine.New(p)
	}

	h := &harness{src: &fakeSource{}, clock: &fakeClock{}}
	h.s = New(h.src, func(r Result) { h.results = append(h.results, r) }, opts)
	h.s.afterFunc = h.clock.AfterFunc
	return h
}

func texts(r Result) []string {
	var out []string
	for _, a := range r.Annotations {
		out = append(out, a.Text)
	}
	return out
}

func TestRapidEditsScanOnceWithLatestText(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Open("a")

	h.src.set("a", "#111", 1)
	h.s.Schedule("a", 1)
	h.src.set("a", "#222", 2)
	h.s.Schedule("a", 2)

	// The text changes again before the timer fires.
	h.src.set("a", "#333 red", 3)

	if n := h.clock.pending(); n != 1 {
		t.Fatalf("pending timers = %d, want 1", n)
	}
	h.clock.fire(false)

	if len(h.results) != 1 {
		t.Fatalf("scans = %d, want 1", len(h.results))
	}
	if diff := cmp.Diff([]string{"#333", "red"}, texts(h.results[0])); diff != "" {
		t.Errorf("scanned text mismatch (-want +got):\n%s", diff)
	}
	if h.results[0].Version != 3 {
		t.Errorf("Version = %d, want 3", h.results[0].Version)
	}
}

func TestStaleTimerIsIgnored(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Open("a")
	h.src.set("a", "#111", 1)

	h.s.Schedule("a", 1)
	h.s.Schedule("a", 2)

	// Fire both timers, including the one Stop was too late for.
	h.clock.fire(true)

	if len(h.results) != 1 {
		t.Fatalf("scans = %d, want 1", len(h.results))
	}
}

func TestSameVersionIsNotRescanned(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Open("a")
	h.src.set("a", "#111", 4)

	h.s.Schedule("a", 4)
	h.clock.fire(false)
	if len(h.results) != 1 {
		t.Fatalf("scans = %d, want 1", len(h.results))
	}

	h.s.Schedule("a", 4)
	h.s.Schedule("a", 4)
	if n := h.clock.pending(); n != 0 {
		t.Errorf("pending timers = %d, want 0", n)
	}
	h.clock.fire(false)
	if len(h.results) != 1 {
		t.Errorf("scans = %d, want still 1", len(h.results))
	}
}

func TestUnchangedVersionAtFireTimeSkips(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Open("a")
	h.src.set("a", "#111", 1)

	h.s.Schedule("a", 1)
	h.clock.fire(false)

	// An activation event reschedules with a newer token than the buffer
	// actually has.
	h.s.Schedule("a", 2)
	h.clock.fire(false)

	if len(h.results) != 1 {
		t.Errorf("scans = %d, want 1", len(h.results))
	}
}

func TestLargeBufferDelay(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		text string
		want time.Duration
	}{
		{
			name: "small buffer uses base delay",
			opts: Options{Debounce: 100 * time.Millisecond, MaxDebounce: time.Second, LargeFileThreshold: 10},
			text: "#fff",
			want: 100 * time.Millisecond,
		},
		{
			name: "large buffer doubles",
			opts: Options{Debounce: 100 * time.Millisecond, MaxDebounce: time.Second, LargeFileThreshold: 10},
			text: strings.Repeat("x", 11),
			want: 200 * time.Millisecond,
		},
		{
			name: "doubled delay is capped",
			opts: Options{Debounce: 400 * time.Millisecond, MaxDebounce: 500 * time.Millisecond, LargeFileThreshold: 10},
			text: strings.Repeat("x", 11),
			want: 500 * time.Millisecond,
		},
		{
			name: "threshold counts characters",
			opts: Options{Debounce: 100 * time.Millisecond, MaxDebounce: time.Second, LargeFileThreshold: 10},
			text: strings.Repeat("ü", 10),
			want: 100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.opts)
			h.s.Open("a")
			h.src.set("a", tt.text, 1)
			h.s.Schedule("a", 1)

			if len(h.clock.timers) != 1 {
				t.Fatalf("timers = %d, want 1", len(h.clock.timers))
			}
			if got := h.clock.timers[0].d; got != tt.want {
				t.Errorf("delay = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncation(t *testing.T) {
	text := "#111 " + strings.Repeat("é", 10) + " #222"

	t.Run("enabled", func(t *testing.T) {
		h := newHarness(t, Options{LargeFileThreshold: 8, Truncate: true})
		h.s.Open("a")
		h.src.set("a", text, 1)
		h.s.Schedule("a", 1)
		h.clock.fire(false)

		res := h.results[0]
		if !res.Truncated || res.ScannedChars != 8 {
			t.Errorf("Truncated = %v, ScannedChars = %d, want true, 8", res.Truncated, res.ScannedChars)
		}
		if diff := cmp.Diff([]string{"#111"}, texts(res)); diff != "" {
			t.Errorf("scanned mismatch (-want +got):\n%s", diff)
		}
		if res.Text != "#111 ééé" {
			t.Errorf("Text = %q, want the first 8 characters", res.Text)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		h := newHarness(t, Options{LargeFileThreshold: 8})
		h.s.Open("a")
		h.src.set("a", text, 1)
		h.s.Schedule("a", 1)
		h.clock.fire(false)

		res := h.results[0]
		if res.Truncated {
			t.Error("Truncated should be false when truncation is off")
		}
		if diff := cmp.Diff([]string{"#111", "#222"}, texts(res)); diff != "" {
			t.Errorf("scanned mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRecorderGetsUniqueHexes(t *testing.T) {
	h := newHarness(t, Options{})
	rec := &recorder{}
	h.s.SetRecorder(rec)
	h.s.Open("a")
	h.src.set("a", "#F00 red rgb(0, 0, 255)", 1)
	h.s.Schedule("a", 1)
	h.clock.fire(false)

	want := [][]string{{"#ff0000", "#0000ff"}}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("recorder calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderErrorIsNotFatal(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.SetRecorder(&recorder{err: errors.New("disk full")})
	h.s.Open("a")

	h.src.set("a", "#111", 1)
	h.s.Schedule("a", 1)
	h.clock.fire(false)

	h.src.set("a", "#222", 2)
	h.s.Schedule("a", 2)
	h.clock.fire(false)

	if len(h.results) != 2 {
		t.Errorf("scans = %d, want 2", len(h.results))
	}
}

func TestCloseAndCancel(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Open("a")
	h.s.Open("b")
	h.src.set("a", "#111", 1)
	h.src.set("b", "#222", 1)

	h.s.Schedule("a", 1)
	h.s.Schedule("b", 1)
	h.s.Close("a")
	h.s.Cancel("b")

	if h.s.IsOpen("a") {
		t.Error("a should be closed")
	}
	if !h.s.IsOpen("b") {
		t.Error("b should stay open after Cancel")
	}

	h.clock.fire(true)
	if len(h.results) != 0 {
		t.Errorf("scans = %d, want 0", len(h.results))
	}

	// A cancelled buffer can be scheduled again.
	h.s.Schedule("b", 1)
	h.clock.fire(false)
	if len(h.results) != 1 {
		t.Errorf("scans = %d, want 1", len(h.results))
	}
}

func TestScheduleUnknownBuffer(t *testing.T) {
	h := newHarness(t, Options{})
	h.src.set("a", "#111", 1)
	h.s.Schedule("a", 1)
	if len(h.clock.timers) != 0 {
		t.Error("Schedule on a buffer that was never opened should not start a timer")
	}
}

func TestReconfigureRescansSameVersion(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Open("a")
	h.src.set("a", "#111 hsl(0, 100%, 50%)", 1)
	h.s.Schedule("a", 1)
	h.clock.fire(false)

	p, err := scanner.Compile(grammar.Set{grammar.HSL})
	if err != nil {
		t.Fatal(err)
	}
	h.s.Reconfigure(Options{Engine: engine.New(p)})
	h.s.Schedule("a", 1)
	h.clock.fire(false)

	if len(h.results) != 2 {
		t.Fatalf("scans = %d, want 2", len(h.results))
	}
	if diff := cmp.Diff([]string{"hsl(0, 100%, 50%)"}, texts(h.results[1])); diff != "" {
		t.Errorf("rescan mismatch (-want +got):\n%s", diff)
	}
}

func TestReconfigureDuringScan(t *testing.T) {
	hexOnly, err := scanner.Compile(grammar.Set{grammar.HEX})
	if err != nil {
		t.Fatal(err)
	}
	hexRGB, err := scanner.Compile(grammar.Set{grammar.HEX, grammar.RGB})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		reschedule bool
	}{
		{"rescheduled", true},
		{"not rescheduled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{Engine: engine.New(hexOnly)})
			h.s.Open("a")
			h.src.set("a", "#fff rgb(1, 2, 3)", 1)
			h.s.Schedule("a", 1)

			// The config changes after the timer fired but before the
			// old-pattern scan finished.
			h.src.onSnapshot = func() {
				h.s.Reconfigure(Options{Engine: engine.New(hexRGB)})
				if tt.reschedule {
					h.s.Schedule("a", 1)
				}
			}
			h.clock.fire(false)
			if len(h.results) != 0 {
				t.Fatalf("scan with the old pattern was published: %v", texts(h.results[0]))
			}

			if !tt.reschedule {
				h.s.Schedule("a", 1)
			}
			h.clock.fire(false)

			if len(h.results) != 1 {
				t.Fatalf("scans = %d, want 1", len(h.results))
			}
			if diff := cmp.Diff([]string{"#fff", "rgb(1, 2, 3)"}, texts(h.results[0])); diff != "" {
				t.Errorf("rescan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStop(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Open("a")
	h.s.Open("b")
	h.src.set("a", "#111", 1)
	h.src.set("b", "#222", 1)
	h.s.Schedule("a", 1)
	h.s.Schedule("b", 1)

	h.s.Stop()
	if n := h.clock.pending(); n != 0 {
		t.Errorf("pending timers = %d, want 0", n)
	}
}

func TestOptionsDefaults(t *testing.T) {
	got := Options{MaxDebounce: time.Millisecond}.withDefaults()
	if got.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", got.Debounce, DefaultDebounce)
	}
	if got.MaxDebounce != DefaultDebounce {
		t.Errorf("MaxDebounce = %v, want raised to %v", got.MaxDebounce, DefaultDebounce)
	}
	if got.LargeFileThreshold != DefaultLargeFileThreshold {
		t.Errorf("LargeFileThreshold = %d, want %d", got.LargeFileThreshold, DefaultLargeFileThreshold)
	}
}

func TestScanNow(t *testing.T) {
	h := newHarness(t, Options{})
	rec := &recorder{}
	h.s.SetRecorder(rec)
	h.src.set("a", "rgb(1, 2, 3) #abc", 4)

	res, ok := h.s.ScanNow("a")
	if !ok {
		t.Fatal("ScanNow() ok = false")
	}
	if res.Version != 4 || res.Text != "rgb(1, 2, 3) #abc" {
		t.Errorf("ScanNow() = version %d text %q", res.Version, res.Text)
	}
	if diff := cmp.Diff([]string{"rgb(1, 2, 3)", "#abc"}, texts(res)); diff != "" {
		t.Errorf("scanned mismatch (-want +got):\n%s", diff)
	}
	if len(h.results) != 0 || len(rec.calls) != 0 {
		t.Error("ScanNow should neither publish nor record")
	}

	if _, ok := h.s.ScanNow("missing"); ok {
		t.Error("ScanNow() on a missing buffer should fail")
	}
}
