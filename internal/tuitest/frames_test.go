package tuitest

import (
	"bytes"
	"testing"
)

func TestParseFramesSplitsOnClearAndStripsANSI(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[H\x1b[1mUnlock Your Future\x1b[0m   \r\n\x1b[2JCheck Your Inbox\r\n\r\n")
	rec := &Recording{Frames: parseFrames(raw)}

	if len(rec.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d: %+v", len(rec.Frames), rec.Frames)
	}
	if rec.Frames[0].Plain != "Unlock Your Future" {
		t.Fatalf("first frame = %q", rec.Frames[0].Plain)
	}
	final, ok := rec.FinalFrame()
	if !ok || final.Plain != "Check Your Inbox" {
		t.Fatalf("final frame = %q", final.Plain)
	}
	if !rec.Contains("Unlock Your Future") || rec.Contains("Scholarship Finder") {
		t.Fatal("Contains mismatch")
	}
	if frame, ok := rec.FindFrame("Inbox"); !ok || frame.Index != 1 {
		t.Fatalf("FindFrame = %+v, %v", frame, ok)
	}
}

func TestTerminalResponderAnswersQueriesInOrder(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)

	tr.Process([]byte("hello \x1b]11;?\x07 then \x1b[6"))
	tr.Process([]byte("n done"))

	want := "\x1b]11;rgb:0000/0000/0000\x07\x1b[1;1R"
	if got := out.String(); got != want {
		t.Fatalf("responses = %q, want %q", got, want)
	}
}
