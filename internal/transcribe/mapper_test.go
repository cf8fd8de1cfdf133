package transcribe

import (
	"fmt"
	"strings"
	"testing"
)

func TestMapSegmentsToQuestions_EmptyInputs(t *testing.T) {
	segs := []Segment{{Start: 0, End: 1, Text: "hello"}}
	ts := []QuestionTimestamp{{QuestionID: "q1", TimestampMs: 0}}

	if got := MapSegmentsToQuestions(nil, ts); len(got) != 0 {
		t.Errorf("nil segments: got %d answers, want 0", len(got))
	}
	if got := MapSegmentsToQuestions(segs, nil); len(got) != 0 {
		t.Errorf("nil timestamps: got %d answers, want 0", len(got))
	}
	if got := MapSegmentsToQuestions(nil, nil); len(got) != 0 {
		t.Errorf("both nil: got %d answers, want 0", len(got))
	}
}

func TestMapSegmentsToQuestions_AssignsByMidpoint(t *testing.T) {
	ts := []QuestionTimestamp{
		{QuestionID: "q1", TimestampMs: 0},
		{QuestionID: "q2", TimestampMs: 2000},
		{QuestionID: "q3", TimestampMs: 5000},
	}
	segs := []Segment{
		{Start: 0, End: 1.5, Text: "Hello"},
		{Start: 2.1, End: 3, Text: "Blue is my favorite"},
		{Start: 5.5, End: 6, Text: "cake"},
	}

	answers := MapSegmentsToQuestions(segs, ts)

	want := map[string]string{
		"q1": "Hello",
		"q2": "Blue is my favorite",
		"q3": "cake",
	}
	if len(answers) != len(want) {
		t.Fatalf("got %d answers, want %d", len(answers), len(want))
	}
	for qid, text := range want {
		a, ok := answers[qid]
		if !ok {
			t.Fatalf("missing answer for %s", qid)
		}
		if a.Text != text {
			t.Errorf("%s: text = %q, want %q", qid, a.Text, text)
		}
		if a.Source != SourceAuto {
			t.Errorf("%s: source = %q, want %q", qid, a.Source, SourceAuto)
		}
		if a.EditedAt != nil {
			t.Errorf("%s: editedAt = %v, want nil", qid, a.EditedAt)
		}
	}
}

func TestMapSegmentsToQuestions_RevisitLastWins(t *testing.T) {
	// q1 was shown twice: at 0s and again at 6s. Only the later window's
	// text survives.
	ts := []QuestionTimestamp{
		{QuestionID: "q1", TimestampMs: 0},
		{QuestionID: "q2", TimestampMs: 2000},
		{QuestionID: "q1", TimestampMs: 6000},
	}
	segs := []Segment{
		{Start: 0.5, End: 1, Text: "first answer"},
		{Start: 3, End: 4, Text: "middle"},
		{Start: 7, End: 8, Text: "revised answer"},
	}

	answers := MapSegmentsToQuestions(segs, ts)

	if got := answers["q1"].Text; got != "revised answer" {
		t.Errorf("q1 = %q, want %q", got, "revised answer")
	}
	if got := answers["q2"].Text; got != "middle" {
		t.Errorf("q2 = %q, want %q", got, "middle")
	}
}

func TestMapSegmentsToQuestions_JoinsAndTrims(t *testing.T) {
	ts := []QuestionTimestamp{{QuestionID: "q1", TimestampMs: 0}}
	segs := []Segment{
		{Start: 0, End: 1, Text: "  I like  "},
		{Start: 1, End: 2, Text: " dogs a lot "},
	}

	answers := MapSegmentsToQuestions(segs, ts)

	if got := answers["q1"].Text; got != "I like dogs a lot" {
		t.Errorf("text = %q, want %q", got, "I like dogs a lot")
	}
}

func TestMapSegmentsToQuestions_BoundaryBelongsToLaterWindow(t *testing.T) {
	// Midpoint exactly at a window start lands in that window, not the
	// previous one.
	ts := []QuestionTimestamp{
		{QuestionID: "q1", TimestampMs: 0},
		{QuestionID: "q2", TimestampMs: 2000},
	}
	segs := []Segment{{Start: 1.5, End: 2.5, Text: "boundary"}} // mid = 2.0

	answers := MapSegmentsToQuestions(segs, ts)

	if _, ok := answers["q1"]; ok {
		t.Error("boundary segment assigned to q1, want q2")
	}
	if got := answers["q2"].Text; got != "boundary" {
		t.Errorf("q2 = %q, want %q", got, "boundary")
	}
}

func TestMapSegmentsToQuestions_SegmentBeforeFirstWindowDropped(t *testing.T) {
	ts := []QuestionTimestamp{{QuestionID: "q1", TimestampMs: 5000}}
	segs := []Segment{
		{Start: 0, End: 1, Text: "too early"},
		{Start: 6, End: 7, Text: "in range"},
	}

	answers := MapSegmentsToQuestions(segs, ts)

	if len(answers) != 1 {
		t.Fatalf("got %d answers, want 1", len(answers))
	}
	if got := answers["q1"].Text; got != "in range" {
		t.Errorf("q1 = %q, want %q", got, "in range")
	}
}

func TestMapSegmentsToQuestions_WindowsPartitionTime(t *testing.T) {
	// Every midpoint from 0s outward belongs to exactly one window: no
	// segment is lost and none is double-assigned.
	ts := []QuestionTimestamp{
		{QuestionID: "q1", TimestampMs: 0},
		{QuestionID: "q2", TimestampMs: 2000},
		{QuestionID: "q3", TimestampMs: 5000},
		{QuestionID: "q4", TimestampMs: 5000}, // zero-width q3 window
	}

	var segs []Segment
	for i := 0; i < 40; i++ {
		mid := float64(i) * 0.5
		segs = append(segs, Segment{Start: mid - 0.1, End: mid + 0.1, Text: fmt.Sprintf("w%d", i)})
	}

	answers := MapSegmentsToQuestions(segs, ts)

	total := 0
	for qid, a := range answers {
		if qid == "q3" {
			t.Errorf("zero-width window for q3 collected %q", a.Text)
		}
		total += len(strings.Fields(a.Text))
	}
	if total != len(segs) {
		t.Errorf("assigned %d segment texts, want %d", total, len(segs))
	}
}
