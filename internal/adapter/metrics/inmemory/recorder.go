package inmemory

import "sync"

type Snapshot struct {
	TicksTotal    uint64 `json:"ticks_total"`
	WriteFailures uint64 `json:"write_failures"`
	Resets        uint64 `json:"resets"`
}

type Recorder struct {
	mu            sync.Mutex
	ticks         uint64
	writeFailures uint64
	resets        uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordTick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
}

func (r *Recorder) RecordWriteFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeFailures++
}

func (r *Recorder) RecordReset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		TicksTotal:    r.ticks,
		WriteFailures: r.writeFailures,
		Resets:        r.resets,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
