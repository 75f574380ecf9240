package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/depscope/pkg/deps"
)

func newTestSession(t *testing.T) (*askSession, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	set := reportSet()
	return &askSession{
		cli: New(os.Stderr, LogInfo),
		set: set,
		agg: deps.Compile(set),
		out: &out,
	}, &out
}

func TestAskAnswer(t *testing.T) {
	s, out := newTestSession(t)

	if err := s.answer(context.Background(), "torch"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "pack-a") {
		t.Errorf("answer should list declaring nodes:\n%s", out.String())
	}
	if s.lastQuery != "torch" || s.lastBody == "" {
		t.Error("answer should record the last report for &save")
	}
}

func TestAskAnswer_CaseInsensitive(t *testing.T) {
	s, out := newTestSession(t)

	if err := s.answer(context.Background(), "ToRcH"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "pack-b") {
		t.Errorf("case should not matter:\n%s", out.String())
	}
}

func TestAskAnswer_Unknown(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.answer(context.Background(), "definitely-absent"); err != nil {
		t.Fatalf("unknown names should not error, got %v", err)
	}
	if s.lastBody != "" {
		t.Error("an unanswered query must not become the save target")
	}
}

func TestAskAnswer_SingleWildcardMatch(t *testing.T) {
	s, out := newTestSession(t)

	// numpy is the only match, so no picker is needed.
	if err := s.answer(context.Background(), "num*"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "numpy") {
		t.Errorf("single wildcard match should print directly:\n%s", out.String())
	}
	if s.lastQuery != "numpy" {
		t.Errorf("lastQuery should be the resolved name, got %q", s.lastQuery)
	}
}

func TestAskLoop_QuitCommands(t *testing.T) {
	for _, quit := range []string{"/quit", "quit", "exit"} {
		t.Run(quit, func(t *testing.T) {
			s, _ := newTestSession(t)
			in := strings.NewReader(quit + "\n")
			if err := s.loop(context.Background(), in); err != nil {
				t.Fatalf("loop should exit cleanly, got %v", err)
			}
		})
	}
}

func TestAskLoop_EOF(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.loop(context.Background(), strings.NewReader("")); err != nil {
		t.Fatalf("EOF should exit cleanly, got %v", err)
	}
}

func TestAskLoop_ListAndTop(t *testing.T) {
	s, out := newTestSession(t)
	in := strings.NewReader("list\ntop 1\n/quit\n")
	if err := s.loop(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "numpy") || !strings.Contains(got, "torch") {
		t.Errorf("list should print every base name:\n%s", got)
	}
	if !strings.Contains(got, "  1. torch") {
		t.Errorf("top should rank torch first:\n%s", got)
	}
}

func TestPrintTop_Variants(t *testing.T) {
	for _, line := range []string{"top", "top 5"} {
		t.Run(line, func(t *testing.T) {
			s, out := newTestSession(t)
			s.printTop(line)
			if !strings.Contains(out.String(), "torch") {
				t.Errorf("printTop(%q) should list torch:\n%s", line, out.String())
			}
		})
	}
}

func TestApplyTop_NarrowsWorkingSet(t *testing.T) {
	s, _ := newTestSession(t)

	s.applyTop("&top 2")

	if len(s.set) != 2 {
		t.Fatalf("working set has %d nodes, want 2", len(s.set))
	}
	if _, ok := s.set["c"]; ok {
		t.Error("rank 3 node should be dropped by &top 2")
	}

	// Later queries answer relative to the slice: pack-b's bare torch is
	// still in, pack-c is not a declarer anyway, and the aggregate shrinks.
	report := deps.Inspect(s.set, "torch")
	if report.TotalNodes() != 2 {
		t.Errorf("torch declarers after &top 2 = %d, want 2", report.TotalNodes())
	}

	s.applyTop("&top 1")
	if len(s.set) != 1 {
		t.Fatalf("working set has %d nodes, want 1", len(s.set))
	}
	if deps.Inspect(s.set, "torch").TotalNodes() != 1 {
		t.Error("after &top 1 only the most downloaded declarer should remain")
	}
	if got := s.agg.Count["torch"]; got != 1 {
		t.Errorf("aggregate not recompiled: torch count = %d, want 1", got)
	}
}

func TestApplyTop_BadArgsLeaveSetAlone(t *testing.T) {
	for _, line := range []string{"&top", "&top zero", "&top -3"} {
		t.Run(line, func(t *testing.T) {
			s, _ := newTestSession(t)
			s.applyTop(line)
			if len(s.set) != 3 {
				t.Errorf("malformed %q should not touch the working set, have %d nodes", line, len(s.set))
			}
		})
	}
}

func TestAskLoop_TopModifier(t *testing.T) {
	s, _ := newTestSession(t)
	in := strings.NewReader("&top 1\n/quit\n")
	if err := s.loop(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.set) != 1 {
		t.Fatalf("&top 1 in the loop should narrow the set, have %d nodes", len(s.set))
	}
	if _, ok := s.set["a"]; !ok {
		t.Error("the most downloaded node should survive &top 1")
	}
}

func TestAskLoop_PlainTopKeepsSet(t *testing.T) {
	s, _ := newTestSession(t)
	in := strings.NewReader("top 1\n/quit\n")
	if err := s.loop(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.set) != 3 {
		t.Errorf("plain top is display only, set has %d nodes, want 3", len(s.set))
	}
}
