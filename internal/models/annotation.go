package models

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"qualitymap/internal/geometry"

	"github.com/google/uuid"
)

// Mode is the current annotation category. ModeNone means clicks on the
// canvas do not draw.
type Mode int

const (
	ModeNone Mode = iota
	ModeScratch
	ModeContamination
	ModeOther
)

// Modes lists the drawable categories in toolbar order.
func Modes() []Mode {
	return []Mode{ModeScratch, ModeContamination, ModeOther}
}

func (m Mode) String() string {
	switch m {
	case ModeScratch:
		return "scratch"
	case ModeContamination:
		return "contamination"
	case ModeOther:
		return "other"
	default:
		return "none"
	}
}

// Label is the capitalised name used for buttons and entry labels.
func (m Mode) Label() string {
	if m == ModeNone {
		return "Unknown"
	}
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Color is the stroke colour for segments drawn in this mode.
func (m Mode) Color() color.NRGBA {
	switch m {
	case ModeContamination:
		return color.NRGBA{R: 0xff, A: 0xff}
	case ModeOther:
		return color.NRGBA{B: 0xff, A: 0xff}
	default:
		return color.NRGBA{A: 0xff}
	}
}

// Segment is one straight piece of a freehand stroke in world coordinates.
type Segment struct {
	ID   int
	Mode Mode
	From geometry.Point
	To   geometry.Point
}

// Entry is a completed annotation as listed in the entry panel.
type Entry struct {
	ID        string
	Index     int
	Label     string
	Mode      Mode
	Segments  int
	CreatedAt time.Time
}

// AnnotationStats summarises the session for logging and the status bar.
type AnnotationStats struct {
	Mode         Mode
	Segments     int
	Entries      int
	StrokeActive bool
	Pending      int
}

// AnnotationRepository holds the annotation session: current mode, the
// stroke under the pointer, every drawn segment and the completed entries.
type AnnotationRepository struct {
	mu       sync.RWMutex
	mode     Mode
	stroke   []geometry.Point
	segments []Segment
	entries  []Entry
	nextID   int
	pending  int // segments drawn since the mode was entered
	now      func() time.Time
}

func NewAnnotationRepository() *AnnotationRepository {
	return &AnnotationRepository{
		segments: make([]Segment, 0),
		entries:  make([]Entry, 0),
		nextID:   1,
		now:      time.Now,
	}
}

// SetMode enters a drawing mode. An unfinished stroke is dropped; its
// segments stay on the canvas.
func (r *AnnotationRepository) SetMode(mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != mode {
		r.pending = 0
	}
	r.mode = mode
	r.stroke = nil
}

func (r *AnnotationRepository) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// BeginStroke starts a stroke at p. It reports false when no mode is active.
func (r *AnnotationRepository) BeginStroke(p geometry.Point) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode == ModeNone {
		return false
	}
	r.stroke = []geometry.Point{p}
	return true
}

// ExtendStroke appends p to the active stroke and returns the new segment
// from the previous point.
func (r *AnnotationRepository) ExtendStroke(p geometry.Point) (Segment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode == ModeNone || len(r.stroke) == 0 {
		return Segment{}, false
	}
	prev := r.stroke[len(r.stroke)-1]
	r.stroke = append(r.stroke, p)

	seg := Segment{ID: r.nextID, Mode: r.mode, From: prev, To: p}
	r.nextID++
	r.segments = append(r.segments, seg)
	r.pending++
	return seg, true
}

// EndStroke closes the active stroke. Later drags are ignored until the next
// BeginStroke.
func (r *AnnotationRepository) EndStroke() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stroke = nil
}

func (r *AnnotationRepository) StrokeActive() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stroke) > 0
}

// Undo removes the most recently drawn segment.
func (r *AnnotationRepository) Undo() (Segment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.segments) == 0 {
		return Segment{}, false
	}
	last := r.segments[len(r.segments)-1]
	r.segments = r.segments[:len(r.segments)-1]
	if r.pending > 0 {
		r.pending--
	}
	if n := len(r.stroke); n > 1 && r.stroke[n-1] == last.To {
		r.stroke = r.stroke[:n-1]
	}
	return last, true
}

// Finish records an entry for the current mode and leaves drawing mode.
func (r *AnnotationRepository) Finish() Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := len(r.entries) + 1
	entry := Entry{
		ID:        uuid.NewString(),
		Index:     index,
		Label:     fmt.Sprintf("%s %d", r.mode.Label(), index),
		Mode:      r.mode,
		Segments:  r.pending,
		CreatedAt: r.now(),
	}
	r.entries = append(r.entries, entry)

	r.mode = ModeNone
	r.stroke = nil
	r.pending = 0
	return entry
}

// ClearSegments drops every segment and the active stroke. Entries survive.
func (r *AnnotationRepository) ClearSegments() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.segments)
	r.segments = make([]Segment, 0)
	r.stroke = nil
	r.pending = 0
	return n
}

func (r *AnnotationRepository) Segments() []Segment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	segments := make([]Segment, len(r.segments))
	copy(segments, r.segments)
	return segments
}

func (r *AnnotationRepository) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Labels returns the entry labels in insertion order.
func (r *AnnotationRepository) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make([]string, len(r.entries))
	for i, e := range r.entries {
		labels[i] = e.Label
	}
	return labels
}

func (r *AnnotationRepository) Stats() AnnotationStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return AnnotationStats{
		Mode:         r.mode,
		Segments:     len(r.segments),
		Entries:      len(r.entries),
		StrokeActive: len(r.stroke) > 0,
		Pending:      r.pending,
	}
}
