package lexicon_test

import (
	"sync"
	"testing"

	"github.com/b2kgrowth/leadsniffer/internal/lexicon"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Should I Get Tested", "should i get tested"},
		{"strips punctuation", "tested?! yes... (maybe)", "tested yes maybe"},
		{"collapses whitespace", "a   b\t\nc", "a b c"},
		{"folds diacritics", "Bogotá Medellín", "bogota medellin"},
		{"keeps digits", "results in 3 days", "results in 3 days"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lexicon.NormalizeText(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompile_RequiresVersion(t *testing.T) {
	_, err := lexicon.Compile(lexicon.Tables{})
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestCompile_RejectsBadPattern(t *testing.T) {
	_, err := lexicon.Compile(lexicon.Tables{
		Version:   "test",
		Questions: map[string][]string{"broken": {"(unclosed"}},
	})
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestMatchKeywords_DeduplicatesAndSorts(t *testing.T) {
	lex := lexicon.MustCompile(lexicon.Tables{
		Version: "test",
		Keywords: map[lexicon.KeywordCategory][]string{
			lexicon.KeywordPrimary: {"herpes", "hiv", "herpes"},
		},
	})

	matched := lex.MatchKeywords(lexicon.KeywordPrimary, "herpes herpes hiv herpes")
	if len(matched) != 2 || matched[0] != "herpes" || matched[1] != "hiv" {
		t.Errorf("got %v, want [herpes hiv]", matched)
	}
}

func TestMatchKeywords_SubstringSemantics(t *testing.T) {
	lex := lexicon.Default()

	// Keyword matching is deliberately substring-based.
	if got := lex.MatchKeywords(lexicon.KeywordPrimary, "an std panel"); len(got) == 0 {
		t.Error("expected std to match")
	}
	if got := lex.MatchKeywords(lexicon.KeywordPrimary, lexicon.NormalizeText("quick question")); len(got) == 0 {
		t.Error("expected sti to match inside question, substring matching is intentional")
	}
}

func TestMatchRegions_WholeWordOnly(t *testing.T) {
	lex := lexicon.Default()

	if got := lex.MatchRegions("clinics in lima peru"); len(got) != 2 {
		t.Errorf("got %v, want [lima peru]", got)
	}
	if got := lex.MatchRegions("my calibration indicator"); len(got) != 0 {
		t.Errorf("embedded city names must not match, got %v", got)
	}
}

func TestMatchQuestions_ReturnsFamilies(t *testing.T) {
	lex := lexicon.Default()

	families := lex.MatchQuestions("Should I get tested? Am I at risk?")
	if len(families) != 2 {
		t.Fatalf("got %v, want [risk testing]", families)
	}
	if families[0] != lexicon.QuestionRisk || families[1] != lexicon.QuestionTesting {
		t.Errorf("got %v, want [risk testing]", families)
	}

	if got := lex.MatchQuestions("Nothing interrogative here."); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestMatchUrgency_NormalizedPhrases(t *testing.T) {
	lex := lexicon.Default()

	matched := lex.MatchUrgency(lexicon.NormalizeText("Freaking out, this was last night!"))
	if len(matched) != 2 {
		t.Errorf("got %v, want [freaking out, last night]", matched)
	}
}

func TestStore_SwapIsVisibleToReaders(t *testing.T) {
	first := lexicon.MustCompile(lexicon.Tables{Version: "v1"})
	second := lexicon.MustCompile(lexicon.Tables{Version: "v2"})

	store := lexicon.NewStore(first)
	if store.Current().Version() != "v1" {
		t.Fatalf("got %s, want v1", store.Current().Version())
	}

	store.Swap(second)
	if store.Current().Version() != "v2" {
		t.Fatalf("got %s, want v2", store.Current().Version())
	}
}

func TestStore_ConcurrentReadersDuringSwap(t *testing.T) {
	store := lexicon.NewStore(lexicon.Default())
	replacement := lexicon.MustCompile(lexicon.DefaultTables())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				lex := store.Current()
				if lex == nil || lex.Version() == "" {
					t.Error("reader observed an unpublished lexicon")
					return
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		store.Swap(replacement)
	}
	wg.Wait()
}
