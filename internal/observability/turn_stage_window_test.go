package observability

import "testing"

func TestWindowSnapshotStats(t *testing.T) {
	w := newTurnStageWindow(8)
	for _, v := range []float64{10, 20, 30, 40} {
		w.Observe("reply", v)
	}

	snap := w.Snapshot()
	if len(snap.Stages) != 1 {
		t.Fatalf("stages = %d, want 1", len(snap.Stages))
	}
	s := snap.Stages[0]
	if s.Stage != "reply" || s.Samples != 4 {
		t.Fatalf("unexpected stage stats: %+v", s)
	}
	if s.LastMS != 40 {
		t.Fatalf("LastMS = %v, want 40", s.LastMS)
	}
	if s.AvgMS != 25 {
		t.Fatalf("AvgMS = %v, want 25", s.AvgMS)
	}
	if s.P50MS != 25 {
		t.Fatalf("P50MS = %v, want 25", s.P50MS)
	}
}

func TestWindowWrapsAround(t *testing.T) {
	w := newTurnStageWindow(2)
	w.Observe("store", 1)
	w.Observe("store", 2)
	w.Observe("store", 3)

	snap := w.Snapshot()
	if snap.Stages[0].Samples != 2 {
		t.Fatalf("Samples = %d, want window size 2", snap.Stages[0].Samples)
	}
	if snap.Stages[0].LastMS != 3 {
		t.Fatalf("LastMS = %v, want 3", snap.Stages[0].LastMS)
	}
}

func TestWindowIgnoresInvalidObservations(t *testing.T) {
	w := newTurnStageWindow(4)
	w.Observe("", 5)
	w.Observe("reply", -1)
	if snap := w.Snapshot(); len(snap.Stages) != 0 {
		t.Fatalf("stages = %d, want 0", len(snap.Stages))
	}
}
