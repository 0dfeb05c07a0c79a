// Package replay records engine snapshots to a compact file so headless runs
// can be inspected or rendered later.
//
// A replay file is a stream of msgpack values: one Header followed by one
// Frame per recorded tick.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

// Version is the current file format version.
const Version = 1

// ErrBadVersion is returned for files written by an unknown format version.
var ErrBadVersion = errors.New("replay: unsupported version")

// Header describes the run a replay belongs to.
type Header struct {
	Version   int       `msgpack:"v"`
	Seed      int64     `msgpack:"seed"`
	Pilot     string    `msgpack:"pilot"`
	TickMS    int       `msgpack:"tick_ms"`
	FieldW    float64   `msgpack:"w"`
	FieldH    float64   `msgpack:"h"`
	CreatedAt time.Time `msgpack:"at"`
}

// Body is a positioned entity in a frame.
type Body struct {
	ID   uint64  `msgpack:"id"`
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
	R    float64 `msgpack:"r"`
	Kind string  `msgpack:"k,omitempty"`
}

// Frame is one recorded snapshot. Effect timers are kept in milliseconds.
type Frame struct {
	Tick         int     `msgpack:"t"`
	Phase        string  `msgpack:"phase"`
	Score        int     `msgpack:"score"`
	BestScore    int     `msgpack:"best"`
	Lives        int     `msgpack:"lives"`
	Difficulty   float64 `msgpack:"diff"`
	SpeedMult    float64 `msgpack:"mult"`
	Ramp         float64 `msgpack:"ramp"`
	PlayerX      float64 `msgpack:"px"`
	PlayerY      float64 `msgpack:"py"`
	PlayerR      float64 `msgpack:"pr"`
	Shielded     bool    `msgpack:"shield,omitempty"`
	Invulnerable bool    `msgpack:"invuln,omitempty"`
	Slowed       bool    `msgpack:"slow,omitempty"`
	ShieldMS     int64   `msgpack:"shield_ms,omitempty"`
	SlowMS       int64   `msgpack:"slow_ms,omitempty"`
	SafeMS       int64   `msgpack:"safe_ms,omitempty"`
	Hazards      []Body  `msgpack:"hz"`
	Pickups      []Body  `msgpack:"pk"`
}

// FrameFromSnapshot converts an engine snapshot to a frame.
func FrameFromSnapshot(s sim.Snapshot) Frame {
	f := Frame{
		Tick:         s.Ticks,
		Phase:        s.Phase.String(),
		Score:        s.Score,
		BestScore:    s.BestScore,
		Lives:        s.Lives,
		Difficulty:   s.Difficulty,
		SpeedMult:    s.SpeedMult,
		Ramp:         s.Ramp,
		PlayerX:      s.Player.Pos.X,
		PlayerY:      s.Player.Pos.Y,
		PlayerR:      s.Player.Radius,
		Shielded:     s.Player.Shielded,
		Invulnerable: s.Player.Invulnerable,
		Slowed:       s.SlowLeft > 0,
		ShieldMS:     s.ShieldLeft.Milliseconds(),
		SlowMS:       s.SlowLeft.Milliseconds(),
		SafeMS:       s.InvulnerableLeft.Milliseconds(),
		Hazards:      make([]Body, 0, len(s.Hazards)),
		Pickups:      make([]Body, 0, len(s.Pickups)),
	}
	for _, h := range s.Hazards {
		f.Hazards = append(f.Hazards, Body{ID: uint64(h.ID), X: h.Pos.X, Y: h.Pos.Y, R: h.Radius()})
	}
	for _, p := range s.Pickups {
		f.Pickups = append(f.Pickups, Body{ID: uint64(p.ID), X: p.Pos.X, Y: p.Pos.Y, R: p.Radius, Kind: p.Kind.String()})
	}
	return f
}

// Snapshot rebuilds an engine snapshot from the frame so it can be drawn
// like a live one. Pickups of a kind this build does not know are dropped.
func (f Frame) Snapshot(h Header) sim.Snapshot {
	phase, err := sim.ParsePhase(f.Phase)
	if err != nil {
		phase = sim.PhasePlaying
	}
	s := sim.Snapshot{
		Phase:      phase,
		Score:      f.Score,
		BestScore:  f.BestScore,
		Lives:      f.Lives,
		Difficulty: f.Difficulty,
		SpeedMult:  f.SpeedMult,
		Ramp:       f.Ramp,
		Ticks:      f.Tick,
		Elapsed:    time.Duration(f.Tick*h.TickMS) * time.Millisecond,
		Player: sim.PlayerState{
			Pos:          core.Vec{X: f.PlayerX, Y: f.PlayerY},
			Radius:       f.PlayerR,
			Shielded:     f.Shielded,
			Invulnerable: f.Invulnerable,
		},
		Hazards:          make([]sim.Hazard, 0, len(f.Hazards)),
		Pickups:          make([]sim.Pickup, 0, len(f.Pickups)),
		InvulnerableLeft: time.Duration(f.SafeMS) * time.Millisecond,
		ShieldLeft:       time.Duration(f.ShieldMS) * time.Millisecond,
		SlowLeft:         time.Duration(f.SlowMS) * time.Millisecond,
		FieldW:           h.FieldW,
		FieldH:           h.FieldH,
	}
	for _, b := range f.Hazards {
		s.Hazards = append(s.Hazards, sim.Hazard{ID: sim.EntityID(b.ID), Pos: core.Vec{X: b.X, Y: b.Y}, Size: 2 * b.R})
	}
	for _, b := range f.Pickups {
		kind, err := sim.ParsePickupKind(b.Kind)
		if err != nil {
			continue
		}
		s.Pickups = append(s.Pickups, sim.Pickup{ID: sim.EntityID(b.ID), Pos: core.Vec{X: b.X, Y: b.Y}, Radius: b.R, Kind: kind})
	}
	return s
}

// Recorder writes a replay stream.
type Recorder struct {
	w      *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
	frames int
}

// NewRecorder writes h to w and returns a recorder for the frames.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	h.Version = Version
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	bw := bufio.NewWriter(w)
	r := &Recorder{w: bw, enc: msgpack.NewEncoder(bw)}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	if err := r.enc.Encode(h); err != nil {
		return nil, fmt.Errorf("replay: cannot write header: %w", err)
	}
	return r, nil
}

// Create opens path for writing and starts a replay in it.
func Create(path string, h Header) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Record appends a snapshot.
func (r *Recorder) Record(s sim.Snapshot) error {
	if err := r.enc.Encode(FrameFromSnapshot(s)); err != nil {
		return fmt.Errorf("replay: cannot write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames recorded.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close flushes buffered frames and closes the underlying file, if any.
func (r *Recorder) Close() error {
	err := r.w.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader reads a replay stream frame by frame.
type Reader struct {
	r      *bufio.Reader
	dec    *msgpack.Decoder
	header Header
	frames int
}

// NewReader reads and checks the header from r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	// The decoder reads straight from br, so Peek sees its position
	rd := &Reader{r: br, dec: msgpack.NewDecoder(br)}
	if err := rd.dec.Decode(&rd.header); err != nil {
		return nil, fmt.Errorf("replay: cannot read header: %w", unexpected(err))
	}
	if rd.header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, rd.header.Version)
	}
	return rd, nil
}

// Header returns the replay header.
func (rd *Reader) Header() Header {
	return rd.header
}

// Next returns the next frame, or io.EOF after the last one. A stream that
// ends inside a frame is an error, never io.EOF.
func (rd *Reader) Next() (Frame, error) {
	if _, err := rd.r.Peek(1); err != nil {
		return Frame{}, err
	}
	var f Frame
	if err := rd.dec.Decode(&f); err != nil {
		return Frame{}, fmt.Errorf("replay: cannot read frame %d: %w", rd.frames, unexpected(err))
	}
	rd.frames++
	return f, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Read loads a whole replay.
func Read(r io.Reader) (Header, []Frame, error) {
	rd, err := NewReader(r)
	if err != nil {
		return Header{}, nil, err
	}
	var frames []Frame
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return rd.Header(), frames, nil
		}
		if err != nil {
			return rd.Header(), frames, err
		}
		frames = append(frames, f)
	}
}

// ReadFile loads a whole replay from path.
func ReadFile(path string) (Header, []Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
