package catalog

import "testing"

func TestQuestionIDsUnique(t *testing.T) {
	seen := make(map[string]struct{}, len(Questions))
	for _, q := range Questions {
		if _, dup := seen[q.ID]; dup {
			t.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
}

func TestEnrichableQuestionsHaveType(t *testing.T) {
	for _, q := range Questions {
		if q.Enrichable && q.EnrichmentType == "" {
			t.Errorf("question %q is enrichable but has no enrichment type", q.ID)
		}
		if !q.Enrichable && q.EnrichmentType != "" {
			t.Errorf("question %q has enrichment type %q but is not enrichable", q.ID, q.EnrichmentType)
		}
	}
}

func TestByID(t *testing.T) {
	q, ok := ByID("favoriteColor")
	if !ok {
		t.Fatal("favoriteColor not found")
	}
	if q.EnrichmentType != TypeColor {
		t.Errorf("EnrichmentType = %q, want %q", q.EnrichmentType, TypeColor)
	}

	if _, ok := ByID("nope"); ok {
		t.Error("unknown id must not resolve")
	}
}
