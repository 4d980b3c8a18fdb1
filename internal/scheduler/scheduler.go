// Package scheduler decides when an open buffer is rescanned after an edit.
//
// Each buffer moves through Idle, Pending and Scanning. An edit starts a
// debounce timer, replacing any timer already pending for the buffer. When the
// timer fires, the buffer text is read at that moment and scanned unless its
// version was already processed.
package scheduler

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jsvensson/huescan/internal/engine"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("huescan.scheduler")

const (
	DefaultDebounce           = 150 * time.Millisecond
	DefaultMaxDebounce        = time.Second
	DefaultLargeFileThreshold = 100000
)

// Source supplies the current text and version of a buffer.
type Source interface {
	Snapshot(id string) (text string, version int, ok bool)
}

// Sink receives the result of every completed scan.
type Sink func(Result)

// Recorder is told about the colors found by each completed scan.
type Recorder interface {
	Add(hexes ...string) error
}

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a timer that calls f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options is an immutable snapshot of the scan configuration.
type Options struct {
	Engine *engine.Engine

	// Debounce is the quiet period after an edit before a rescan.
	Debounce time.Duration

	// MaxDebounce caps the doubled delay used for large buffers.
	MaxDebounce time.Duration

	// LargeFileThreshold is a length in characters.
	LargeFileThreshold int

	// Truncate limits scans of large buffers to their first
	// LargeFileThreshold characters.
	Truncate bool
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MaxDebounce < o.Debounce {
		o.MaxDebounce = o.Debounce
	}
	if o.LargeFileThreshold <= 0 {
		o.LargeFileThreshold = DefaultLargeFileThreshold
	}
	return o
}

// Result is the outcome of one scan.
type Result struct {
	ID          string
	Version     int
	Annotations []engine.Annotation

	// Text is the text that was scanned, after truncation. Annotation
	// offsets index into it.
	Text string

	// Truncated is set when only the leading ScannedChars characters of the
	// buffer were scanned.
	Truncated    bool
	ScannedChars int
}

type bufferState struct {
	lastVersion int
	scanned     bool
	timer       Timer
	generation  uint64
	lastDelay   time.Duration
}

// Scheduler owns the scan state of every open buffer.
type Scheduler struct {
	mu        sync.Mutex
	opts      Options
	epoch     uint64 // bumped by Reconfigure
	buffers   map[string]*bufferState
	source    Source
	sink      Sink
	recorder  Recorder
	afterFunc AfterFunc

	// scanMu serializes scans across all buffers.
	scanMu sync.Mutex
}

// New returns a Scheduler that reads text from src and hands results to sink.
func New(src Source, sink Sink, opts Options) *Scheduler {
	return &Scheduler{
		opts:      opts.withDefaults(),
		buffers:   make(map[string]*bufferState),
		source:    src,
		sink:      sink,
		afterFunc: realAfterFunc,
	}
}

// SetRecorder sets where found colors are recorded. A nil recorder disables
// recording.
func (s *Scheduler) SetRecorder(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// Open starts tracking a buffer. Opening an already open buffer is a no-op.
func (s *Scheduler) Open(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buffers[id]; !ok {
		s.buffers[id] = &bufferState{}
	}
}

// IsOpen reports whether id is tracked.
func (s *Scheduler) IsOpen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.buffers[id]
	return ok
}

// Close cancels any pending scan and discards the buffer's state.
func (s *Scheduler) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.buffers[id]; ok {
		st.cancel()
		delete(s.buffers, id)
	}
}

// Cancel stops a pending scan but keeps the buffer's state.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.buffers[id]; ok {
		st.cancel()
	}
}

// Stop cancels every pending scan.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.buffers {
		st.cancel()
	}
}

// Reconfigure replaces the options. Every buffer is rescanned on its next
// Schedule, even if its version is unchanged.
func (s *Scheduler) Reconfigure(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts.withDefaults()
	s.epoch++
	for _, st := range s.buffers {
		st.scanned = false
	}
}

// Options returns the current options.
func (s *Scheduler) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Schedule requests a rescan of id at version. Unknown buffers are ignored.
// A version that was already scanned is ignored unless a scan is pending.
func (s *Scheduler) Schedule(id string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.buffers[id]
	if !ok {
		return
	}
	if st.timer == nil && st.scanned && st.lastVersion == version {
		log.Debugf("%s: version %d already scanned", id, version)
		return
	}

	st.cancel()
	gen := st.generation
	st.lastDelay = s.delay(id)
	st.timer = s.afterFunc(st.lastDelay, func() {
		s.fire(id, gen)
	})
}

// delay picks the debounce for id. The caller holds s.mu.
func (s *Scheduler) delay(id string) time.Duration {
	d := s.opts.Debounce
	text, _, ok := s.source.Snapshot(id)
	if ok && utf8.RuneCountInString(text) > s.opts.LargeFileThreshold {
		d = min(2*d, s.opts.MaxDebounce)
	}
	return d
}

func (s *Scheduler) fire(id string, gen uint64) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	s.mu.Lock()
	st, ok := s.buffers[id]
	if !ok || st.generation != gen {
		s.mu.Unlock()
		return
	}
	st.timer = nil
	opts, epoch := s.opts, s.epoch
	recorder := s.recorder
	s.mu.Unlock()

	text, version, ok := s.source.Snapshot(id)
	if !ok {
		return
	}

	s.mu.Lock()
	skip := st.scanned && st.lastVersion == version
	s.mu.Unlock()
	if skip {
		log.Debugf("%s: version %d unchanged, skipping scan", id, version)
		return
	}

	res := scan(id, version, text, opts)

	s.mu.Lock()
	if s.buffers[id] != st || st.generation != gen || s.epoch != epoch {
		// Closed, rescheduled or reconfigured while scanning. The result may
		// come from an old pattern and is dropped.
		s.mu.Unlock()
		log.Debugf("%s: version %d scan superseded", id, version)
		return
	}
	st.lastVersion = version
	st.scanned = true
	s.mu.Unlock()

	if s.sink != nil {
		s.sink(res)
	}

	if recorder != nil {
		if hexes := engine.UniqueHexes(res.Annotations); len(hexes) > 0 {
			if err := recorder.Add(hexes...); err != nil {
				log.Warningf("%s: recording colors: %s", id, err)
			}
		}
	}
}

// ScanNow scans id immediately with the current options. The result is
// returned but neither published nor recorded, and the buffer's scan state is
// left alone.
func (s *Scheduler) ScanNow(id string) (Result, bool) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	opts := s.Options()
	text, version, ok := s.source.Snapshot(id)
	if !ok {
		return Result{}, false
	}
	return scan(id, version, text, opts), true
}

func scan(id string, version int, text string, opts Options) Result {
	res := Result{ID: id, Version: version}
	res.Text, res.Truncated = truncate(text, opts)
	res.ScannedChars = utf8.RuneCountInString(res.Text)
	if res.Truncated {
		log.Infof("%s: large buffer, scanning first %d characters", id, res.ScannedChars)
	}
	res.Annotations = opts.Engine.Annotate(res.Text)
	return res
}

// cancel stops the pending timer. Bumping the generation makes a timer that
// already fired, but has not yet taken the lock, a no-op.
func (st *bufferState) cancel() {
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
	st.generation++
}

// truncate cuts text to the large-file threshold when truncation is on.
func truncate(text string, opts Options) (string, bool) {
	if !opts.Truncate || len(text) <= opts.LargeFileThreshold {
		return text, false
	}
	n := 0
	for i := range text {
		if n == opts.LargeFileThreshold {
			return text[:i], true
		}
		n++
	}
	return text, false
}
