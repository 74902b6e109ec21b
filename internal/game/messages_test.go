package game

import "testing"

func TestMessageLogIsBounded(t *testing.T) {
	l := NewMessageLog(3, 0)
	for i, text := range []string{"a", "b", "c", "d"} {
		l.Add(float64(i), text, MsgInfo)
	}
	if len(l.Messages) != 3 || l.Messages[0].Text != "b" || l.Messages[2].Text != "d" {
		t.Fatalf("log = %+v, want b c d", l.Messages)
	}
	if got := l.Recent(10); len(got) != 3 {
		t.Fatalf("Recent(10) returned %d", len(got))
	}
	if got := l.Recent(1); got[0].Text != "d" || got[0].At != 3 {
		t.Fatalf("Recent(1) = %+v", got)
	}
}

func TestMessageLogWraps(t *testing.T) {
	l := NewMessageLog(10, 12)
	l.Add(0, "Wrecked. New high score: 1500 m!", MsgRecord)
	for _, m := range l.Messages {
		if len(m.Text) > 12 {
			t.Errorf("line %q longer than 12", m.Text)
		}
		if m.Priority != MsgRecord {
			t.Errorf("wrapped line lost its priority")
		}
	}
	if len(l.Messages) < 2 {
		t.Fatalf("expected wrapping, got %+v", l.Messages)
	}
	l.Clear()
	if len(l.Messages) != 0 {
		t.Fatal("Clear left messages behind")
	}
}
