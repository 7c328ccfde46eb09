package tasks

import "testing"

func TestAddCompleteSummarize(t *testing.T) {
	m := NewManager()
	a := m.Add("u1", "write report")
	m.Add("u1", "review dashboard")
	m.Add("u2", "other user task")

	done, err := m.Complete("u1", a.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !done.Done {
		t.Fatalf("Complete() returned task with Done = false")
	}

	s := m.Summarize("u1")
	if s.Total != 2 || s.Pending != 1 || s.Completed != 1 {
		t.Fatalf("Summarize = %+v, want total 2 pending 1 completed 1", s)
	}
}

func TestCompleteUnknownTask(t *testing.T) {
	m := NewManager()
	if _, err := m.Complete("u1", "missing"); err != ErrNotFound {
		t.Fatalf("Complete unknown = %v, want ErrNotFound", err)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	m := NewManager()
	s := m.Summarize("nobody")
	if s.Total != 0 || s.Pending != 0 || s.Completed != 0 {
		t.Fatalf("Summarize = %+v, want zeroes", s)
	}
}
