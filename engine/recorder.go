package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/ftahirops/macsense/model"
)

// recordingMagic identifies a macsense recording stream.
const recordingMagic = "macsense-recording"

// recordingVersion is bumped whenever recordFrame changes incompatibly.
const recordingVersion = 1

// recordHeader is the first item of every recording.
type recordHeader struct {
	Magic   string    `cbor:"magic"`
	Version int       `cbor:"version"`
	Started time.Time `cbor:"started"`
}

// recordFrame is one tick written to disk.
type recordFrame struct {
	Snapshot model.Snapshot      `cbor:"snapshot"`
	Rates    *model.RateSnapshot `cbor:"rates,omitempty"`
}

var (
	recEncMode cbor.EncMode
	recDecMode cbor.DecMode
)

func init() {
	var err error
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	recEncMode, err = opts.EncMode()
	if err != nil {
		panic("engine: CBOR encoder initialization failed: " + err.Error())
	}
	recDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("engine: CBOR decoder initialization failed: " + err.Error())
	}
}

// ErrNotRecording is returned by NewPlayer when the stream does not start
// with a macsense recording header.
var ErrNotRecording = errors.New("not a macsense recording")

// Recorder wraps an engine and writes every tick as a zstd-compressed CBOR
// stream.
type Recorder struct {
	inner  *Engine
	zw     *zstd.Encoder
	enc    *cbor.Encoder
	mu     sync.Mutex
	frames int
	err    error
	closed bool
}

// NewRecorder writes the recording header to w and returns a recorder
// around eng. w is not closed by the recorder.
func NewRecorder(eng *Engine, w io.Writer) (*Recorder, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	r := &Recorder{
		inner: eng,
		zw:    zw,
		enc:   recEncMode.NewEncoder(zw),
	}
	hdr := recordHeader{Magic: recordingMagic, Version: recordingVersion, Started: eng.now()}
	if err := r.enc.Encode(hdr); err != nil {
		zw.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := zw.Flush(); err != nil {
		zw.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return r, nil
}

// Base returns the underlying engine.
func (r *Recorder) Base() *Engine {
	return r.inner
}

// Tick calls the engine's Tick and records the result. A write failure
// does not fail the tick; it is kept for Err and stops further writes.
func (r *Recorder) Tick() (*model.Snapshot, *model.RateSnapshot) {
	snap, rates := r.inner.Tick()
	if snap == nil {
		return snap, rates
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.err != nil {
		return snap, rates
	}
	if err := r.enc.Encode(recordFrame{Snapshot: *snap, Rates: rates}); err != nil {
		r.err = fmt.Errorf("write frame %d: %w", r.frames, err)
		r.inner.logger.Warn("recording stopped", "err", r.err)
		return snap, rates
	}
	// Flush so an interrupted recording stays readable up to the last tick.
	if err := r.zw.Flush(); err != nil {
		r.err = fmt.Errorf("flush frame %d: %w", r.frames, err)
		r.inner.logger.Warn("recording stopped", "err", r.err)
		return snap, rates
	}
	r.frames++
	return snap, rates
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close finishes the compressed stream. It is safe to call more than once.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.zw.Close(); err != nil {
		return fmt.Errorf("close recording: %w", err)
	}
	return r.err
}

// Player replays recorded frames through a virtual engine.
type Player struct {
	Engine  *Engine
	Started time.Time
	frames  []recordFrame
	idx     int
	mu      sync.Mutex
	last    *recordFrame
}

// NewPlayer reads a whole recording from r. A stream cut off mid-frame
// (recorder killed) yields the frames before the cut.
func NewPlayer(r io.Reader, historySize int) (*Player, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	dec := recDecMode.NewDecoder(zr)
	var hdr recordHeader
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotRecording, err)
	}
	if hdr.Magic != recordingMagic {
		return nil, ErrNotRecording
	}
	if hdr.Version != recordingVersion {
		return nil, fmt.Errorf("unsupported recording version %d", hdr.Version)
	}

	var frames []recordFrame
	for {
		var frame recordFrame
		if err := dec.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) && len(frames) > 0 {
				break
			}
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}

	return &Player{
		Engine:  NewEngine(nil, historySize, nil),
		Started: hdr.Started,
		frames:  frames,
	}, nil
}

// Base returns the underlying engine.
func (p *Player) Base() *Engine {
	return p.Engine
}

// Tick replays the next recorded frame, or the last frame once the
// recording is exhausted.
func (p *Player) Tick() (*model.Snapshot, *model.RateSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.frames) == 0 {
		return nil, nil
	}
	if p.idx >= len(p.frames) {
		f := p.last
		if f == nil {
			f = &p.frames[len(p.frames)-1]
		}
		return &f.Snapshot, f.Rates
	}
	return p.play(p.idx)
}

// Seek jumps to frame i (clamped to the recording) and returns it.
func (p *Player) Seek(i int) (*model.Snapshot, *model.RateSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return nil, nil
	}
	i = max(0, min(i, len(p.frames)-1))
	return p.play(i)
}

// play emits frame i and feeds it to history. Caller holds mu.
func (p *Player) play(i int) (*model.Snapshot, *model.RateSnapshot) {
	f := &p.frames[i]
	p.idx = i + 1
	p.last = f
	p.Engine.History.Push(f.Snapshot)
	if f.Rates != nil {
		p.Engine.History.PushRate(*f.Rates)
	}
	return &f.Snapshot, f.Rates
}

// Len returns the number of frames available.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// Index returns the next frame index.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idx
}
