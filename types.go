package gotdict

// Caps applied by Shape. Arrays are truncated in source order, never re-sorted.
const (
	MaxMeanings    = 5
	MaxDefinitions = 3
	MaxSynonyms    = 5
	MaxAntonyms    = 3
)

// WordEntry is the shaped, bounded view of one dictionary headword.
type WordEntry struct {
	Word      string     `json:"word"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

// Phonetic is a transcription with an optional audio URL. Audio is empty
// unless the upstream value parsed as an absolute URL.
type Phonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

// Meaning groups definitions sharing a part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms"`
}

// Definition is a single sense. KoreanDefinition and KoreanExample are set
// only when the English field was non-empty and translation ran.
type Definition struct {
	Definition       string   `json:"definition"`
	Example          string   `json:"example"`
	Synonyms         []string `json:"synonyms"`
	Antonyms         []string `json:"antonyms"`
	KoreanDefinition string   `json:"koreanDefinition,omitempty"`
	KoreanExample    string   `json:"koreanExample,omitempty"`
}

// RawEntry is one element of the dictionary API's JSON array. Every field is
// optional; missing arrays decode as nil and are treated as empty.
type RawEntry struct {
	Word      string        `json:"word"`
	Phonetics []RawPhonetic `json:"phonetics"`
	Meanings  []RawMeaning  `json:"meanings"`
}

// RawPhonetic is the upstream phonetic object.
type RawPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

// RawMeaning is the upstream part-of-speech group.
type RawMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []RawDefinition `json:"definitions"`
	Synonyms     []string        `json:"synonyms"`
	Antonyms     []string        `json:"antonyms"`
}

// RawDefinition is the upstream definition object.
type RawDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// TranslateRequest contains the parameters for a single remote translation.
type TranslateRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Stats reports cache occupancy and definition cache hit counts.
type Stats struct {
	DefinitionEntries  int   `json:"definition_entries"`
	TranslationEntries int   `json:"translation_entries"`
	Hits               int64 `json:"hits"`
	Misses             int64 `json:"misses"`
}

// CloneEntries returns a deep copy so cached entries are never aliased by callers.
func CloneEntries(entries []WordEntry) []WordEntry {
	if entries == nil {
		return nil
	}
	out := make([]WordEntry, len(entries))
	for i, e := range entries {
		out[i] = WordEntry{
			Word:      e.Word,
			Phonetics: append([]Phonetic{}, e.Phonetics...),
			Meanings:  make([]Meaning, len(e.Meanings)),
		}
		for j, m := range e.Meanings {
			cm := Meaning{
				PartOfSpeech: m.PartOfSpeech,
				Definitions:  make([]Definition, len(m.Definitions)),
				Synonyms:     append([]string{}, m.Synonyms...),
				Antonyms:     append([]string{}, m.Antonyms...),
			}
			for k, d := range m.Definitions {
				d.Synonyms = append([]string{}, d.Synonyms...)
				d.Antonyms = append([]string{}, d.Antonyms...)
				cm.Definitions[k] = d
			}
			out[i].Meanings[j] = cm
		}
	}
	return out
}
