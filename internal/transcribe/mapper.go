package transcribe

import (
	"math"
	"strings"
)

// questionWindow is the half-open interval [startSec, endSec) during which
// one question was on screen. Derived from consecutive timestamp events,
// never persisted. Windows from a single recording partition [0, +Inf).
type questionWindow struct {
	questionID string
	startSec   float64
	endSec     float64
}

// MapSegmentsToQuestions partitions transcript segments into per-question
// answers using the question-shown timestamp log.
//
// One window is built per timestamp event, in event order: the event's own
// timestamp opens the window and the next event's timestamp closes it; the
// final window is open-ended. Windows are not re-sorted. Each segment lands
// in the highest-index window containing its midpoint, then window texts
// are joined in forward order. Because the result is keyed by question id,
// a revisited question keeps only the text from its last window.
func MapSegmentsToQuestions(segments []Segment, timestamps []QuestionTimestamp) map[string]AnswerRecord {
	answers := make(map[string]AnswerRecord)
	if len(segments) == 0 || len(timestamps) == 0 {
		return answers
	}

	windows := make([]questionWindow, len(timestamps))
	for i, ts := range timestamps {
		end := math.Inf(1)
		if i+1 < len(timestamps) {
			end = float64(timestamps[i+1].TimestampMs) / 1000
		}
		windows[i] = questionWindow{
			questionID: ts.QuestionID,
			startSec:   float64(ts.TimestampMs) / 1000,
			endSec:     end,
		}
	}

	texts := make([][]string, len(windows))
	for _, seg := range segments {
		mid := (seg.Start + seg.End) / 2
		for i := len(windows) - 1; i >= 0; i-- {
			if mid >= windows[i].startSec && mid < windows[i].endSec {
				texts[i] = append(texts[i], strings.TrimSpace(seg.Text))
				break
			}
		}
	}

	for i, w := range windows {
		text := strings.TrimSpace(strings.Join(texts[i], " "))
		if text != "" {
			answers[w.questionID] = AnswerRecord{Text: text, Source: SourceAuto}
		}
	}

	return answers
}
