package contextbuilder

import (
	"strings"
	"testing"
)

func TestAssembleLabels(t *testing.T) {
	result := Assemble(
		[]Document{{Name: "budget.txt", Text: "Program cost is $5M."}},
		[]Section{{Title: "Risk Assessment", Text: "Schedule risk is moderate."}},
		0,
	)

	want := "Document: budget.txt\nContent: Program cost is $5M.\n" +
		"\n\n" +
		"Section: Risk Assessment\nContent: Schedule risk is moderate.\n"
	if result.Context != want {
		t.Errorf("Context = %q, want %q", result.Context, want)
	}
	if result.Truncated {
		t.Error("Truncated = true, want false")
	}
	if result.Included != 2 {
		t.Errorf("Included = %d, want 2", result.Included)
	}
}

func TestAssembleOrdering(t *testing.T) {
	result := Assemble(
		[]Document{
			{Name: "a.txt", Text: "first"},
			{Name: "b.txt", Text: "second"},
		},
		[]Section{
			{Title: "Alpha", Text: "third"},
			{Title: "Beta", Text: "fourth"},
		},
		0,
	)

	// Documents always precede sections; input order holds within each group.
	order := []string{"Document: a.txt", "Document: b.txt", "Section: Alpha", "Section: Beta"}
	pos := -1
	for _, label := range order {
		idx := strings.Index(result.Context, label)
		if idx < 0 {
			t.Fatalf("label %q missing from context", label)
		}
		if idx < pos {
			t.Errorf("label %q appears out of order", label)
		}
		pos = idx
	}
}

func TestAssembleSkipsBlankEntries(t *testing.T) {
	tests := []struct {
		name         string
		documents    []Document
		sections     []Section
		wantIncluded int
	}{
		{
			name:         "empty document text",
			documents:    []Document{{Name: "empty.txt", Text: ""}},
			wantIncluded: 0,
		},
		{
			name:         "whitespace only",
			documents:    []Document{{Name: "blank.txt", Text: "   \n\t "}},
			wantIncluded: 0,
		},
		{
			name: "blank mixed with real",
			documents: []Document{
				{Name: "blank.txt", Text: " "},
				{Name: "real.txt", Text: "content"},
			},
			sections:     []Section{{Title: "Empty", Text: ""}},
			wantIncluded: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Assemble(tt.documents, tt.sections, 0)
			if result.Included != tt.wantIncluded {
				t.Errorf("Included = %d, want %d", result.Included, tt.wantIncluded)
			}
			if result.Truncated {
				t.Error("Truncated = true, want false")
			}
		})
	}
}

func TestAssembleTruncation(t *testing.T) {
	docs := []Document{
		{Name: "small.txt", Text: "tiny"},
		{Name: "large.txt", Text: strings.Repeat("x", 500)},
		{Name: "after.txt", Text: "never reached"},
	}

	result := Assemble(docs, nil, 100)

	if !result.Truncated {
		t.Error("Truncated = false, want true")
	}
	if result.Included != 1 {
		t.Errorf("Included = %d, want 1", result.Included)
	}
	// Entries are dropped whole, never cut mid-text.
	if strings.Contains(result.Context, "large.txt") {
		t.Error("oversized entry leaked into context")
	}
	if len(result.Context) > 100 {
		t.Errorf("context length %d exceeds budget 100", len(result.Context))
	}
}

func TestAssembleUnlimitedBudget(t *testing.T) {
	docs := []Document{{Name: "big.txt", Text: strings.Repeat("y", 100000)}}

	result := Assemble(docs, nil, 0)

	if result.Truncated {
		t.Error("Truncated = true, want false with unlimited budget")
	}
	if result.Included != 1 {
		t.Errorf("Included = %d, want 1", result.Included)
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	result := Assemble(nil, nil, 60000)

	if result.Context != "" {
		t.Errorf("Context = %q, want empty", result.Context)
	}
	if result.Included != 0 || result.Truncated {
		t.Errorf("Included = %d, Truncated = %v, want 0 and false", result.Included, result.Truncated)
	}
}
