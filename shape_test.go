package gotdict

import (
	"fmt"
	"testing"
)

func rawEntryWith(meanings, defs int) RawEntry {
	entry := RawEntry{Word: "run"}
	for i := 0; i < meanings; i++ {
		m := RawMeaning{PartOfSpeech: fmt.Sprintf("pos%d", i)}
		for j := 0; j < defs; j++ {
			m.Definitions = append(m.Definitions, RawDefinition{Definition: fmt.Sprintf("def %d.%d", i, j)})
		}
		entry.Meanings = append(entry.Meanings, m)
	}
	return entry
}

func TestShape_Caps(t *testing.T) {
	shaped := Shape([]RawEntry{rawEntryWith(7, 5)})

	if len(shaped) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(shaped))
	}
	meanings := shaped[0].Meanings
	if len(meanings) != MaxMeanings {
		t.Fatalf("Expected %d meanings, got %d", MaxMeanings, len(meanings))
	}
	for i, m := range meanings {
		if m.PartOfSpeech != fmt.Sprintf("pos%d", i) {
			t.Errorf("meaning %d out of order: %q", i, m.PartOfSpeech)
		}
		if len(m.Definitions) != MaxDefinitions {
			t.Fatalf("meaning %d: expected %d definitions, got %d", i, MaxDefinitions, len(m.Definitions))
		}
		for j, d := range m.Definitions {
			if want := fmt.Sprintf("def %d.%d", i, j); d.Definition != want {
				t.Errorf("definition = %q, want %q", d.Definition, want)
			}
		}
	}
}

func TestShape_SynonymsAndAntonyms(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g"}
	raw := []RawEntry{{
		Word: "big",
		Meanings: []RawMeaning{{
			PartOfSpeech: "adjective",
			Synonyms:     words,
			Antonyms:     words,
			Definitions: []RawDefinition{{
				Definition: "of great size",
				Synonyms:   words,
				Antonyms:   words[:2],
			}},
		}},
	}}

	m := Shape(raw)[0].Meanings[0]
	if len(m.Synonyms) != MaxSynonyms || m.Synonyms[4] != "e" {
		t.Errorf("meaning synonyms = %v", m.Synonyms)
	}
	if len(m.Antonyms) != MaxAntonyms || m.Antonyms[2] != "c" {
		t.Errorf("meaning antonyms = %v", m.Antonyms)
	}
	d := m.Definitions[0]
	if len(d.Synonyms) != MaxSynonyms {
		t.Errorf("definition synonyms = %v", d.Synonyms)
	}
	if len(d.Antonyms) != 2 {
		t.Errorf("definition antonyms = %v", d.Antonyms)
	}

	// Caps must not alias the raw slices.
	m.Synonyms[0] = "changed"
	if words[0] != "a" {
		t.Error("Shape should copy synonym slices")
	}
}

func TestShape_Phonetics(t *testing.T) {
	raw := []RawEntry{{
		Word: "explain",
		Phonetics: []RawPhonetic{
			{Text: "/ɪkˈspleɪn/", Audio: "https://x.test/explain.mp3"},
			{Text: "", Audio: ""},
			{Text: "/ekˈspleɪn/", Audio: "not a url"},
			{Audio: "https://x.test/only-audio.mp3"},
		},
	}}

	phonetics := Shape(raw)[0].Phonetics
	if len(phonetics) != 3 {
		t.Fatalf("Expected 3 phonetics, got %d: %+v", len(phonetics), phonetics)
	}
	if phonetics[0].Audio != "https://x.test/explain.mp3" {
		t.Errorf("valid audio dropped: %q", phonetics[0].Audio)
	}
	if phonetics[1].Text != "/ekˈspleɪn/" || phonetics[1].Audio != "" {
		t.Errorf("invalid audio not cleared: %+v", phonetics[1])
	}
	if phonetics[2].Text != "" || phonetics[2].Audio == "" {
		t.Errorf("audio-only phonetic mangled: %+v", phonetics[2])
	}
}

func TestShape_CleansText(t *testing.T) {
	raw := []RawEntry{{
		Word: "explain",
		Meanings: []RawMeaning{{
			PartOfSpeech: "verb",
			Definitions: []RawDefinition{{
				Definition: "<b>explain</b> &amp; clarify",
				Example:    " <i>explain</i> the rules ",
			}},
		}},
	}}

	d := Shape(raw)[0].Meanings[0].Definitions[0]
	if d.Definition != "explain & clarify" {
		t.Errorf("Definition = %q", d.Definition)
	}
	if d.Example != "explain the rules" {
		t.Errorf("Example = %q", d.Example)
	}
}

func TestShape_MissingFields(t *testing.T) {
	shaped := Shape([]RawEntry{{}})

	if len(shaped) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(shaped))
	}
	e := shaped[0]
	if e.Phonetics == nil || e.Meanings == nil {
		t.Error("missing arrays should shape to empty, non-nil slices")
	}
	if len(e.Phonetics) != 0 || len(e.Meanings) != 0 {
		t.Errorf("unexpected content: %+v", e)
	}
}

func TestCloneEntries(t *testing.T) {
	original := Shape([]RawEntry{rawEntryWith(1, 1)})
	original[0].Meanings[0].Synonyms = []string{"sprint"}

	clone := CloneEntries(original)
	clone[0].Meanings[0].Definitions[0].Definition = "changed"
	clone[0].Meanings[0].Synonyms[0] = "changed"

	if original[0].Meanings[0].Definitions[0].Definition != "def 0.0" {
		t.Error("clone shares definitions with original")
	}
	if original[0].Meanings[0].Synonyms[0] != "sprint" {
		t.Error("clone shares synonyms with original")
	}
	if CloneEntries(nil) != nil {
		t.Error("CloneEntries(nil) should be nil")
	}
}
