package inmemory

import "testing"

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()
	for i := 0; i < 3; i++ {
		r.RecordTick()
	}
	r.RecordWriteFailure()
	r.RecordReset()
	r.RecordReset()

	got := r.Snapshot()
	want := Snapshot{TicksTotal: 3, WriteFailures: 1, Resets: 2}
	if got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}
}

func TestRecorder_SnapshotAny(t *testing.T) {
	r := NewRecorder()
	r.RecordTick()
	snap, ok := r.SnapshotAny().(Snapshot)
	if !ok {
		t.Fatalf("SnapshotAny returned %T", r.SnapshotAny())
	}
	if snap.TicksTotal != 1 {
		t.Fatalf("ticks = %d, want 1", snap.TicksTotal)
	}
}
