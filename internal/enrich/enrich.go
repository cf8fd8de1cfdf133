// Package enrich derives display metadata (emoji, color swatch) from answer
// text. Results are recomputed on demand and never persisted.
package enrich

import (
	"strings"

	"github.com/littleyear/iv-engine/internal/catalog"
	"github.com/littleyear/iv-engine/internal/transcribe"
)

// Result is the enrichment for one answer. ColorTag is set only for the
// color category; nil otherwise.
type Result struct {
	Emojis   []string `json:"emojis"`
	ColorTag *string  `json:"colorTag"`
}

// EnrichAnswer matches an answer's text against the keyword table for the
// given enrichment type. Matching is a case-insensitive substring check
// with no word boundaries ("mac" matches inside "macaroni"). Emojis
// accumulate in table order and are deduplicated preserving first
// occurrence. For the color category each swatch hit overwrites the tag,
// so the last matching color wins. Returns nil for empty text, an unknown
// type, or no matches.
func EnrichAnswer(text, enrichmentType string) *Result {
	if text == "" || enrichmentType == "" {
		return nil
	}
	table, ok := keywordTables[enrichmentType]
	if !ok {
		return nil
	}

	lower := strings.ToLower(text)
	var emojis []string
	var colorTag *string

	for _, e := range table {
		if !strings.Contains(lower, e.keyword) {
			continue
		}
		emojis = append(emojis, e.emojis...)
		if enrichmentType == catalog.TypeColor {
			if swatch, ok := colorSwatches[e.keyword]; ok {
				colorTag = &swatch
			}
		}
	}

	if len(emojis) == 0 {
		return nil
	}
	return &Result{Emojis: dedupe(emojis), ColorTag: colorTag}
}

// EnrichInterview applies EnrichAnswer per question, skipping questions not
// flagged enrichable and answers with no text. Only questions that produced
// a non-nil result appear in the returned map.
func EnrichInterview(answers map[string]transcribe.AnswerRecord, questions []catalog.Question) map[string]Result {
	enrichment := make(map[string]Result)
	for _, q := range questions {
		if !q.Enrichable || q.EnrichmentType == "" {
			continue
		}
		a, ok := answers[q.ID]
		if !ok || a.Text == "" {
			continue
		}
		if r := EnrichAnswer(a.Text, q.EnrichmentType); r != nil {
			enrichment[q.ID] = *r
		}
	}
	return enrichment
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
