package gotdict

// Shape converts raw dictionary entries into bounded WordEntry values.
//
// Phonetics without text and audio are dropped, invalid audio URLs become
// empty, meanings are capped at MaxMeanings, definitions at MaxDefinitions
// per meaning, synonyms at MaxSynonyms and antonyms at MaxAntonyms at both
// the meaning and definition level. Definition and example text is passed
// through CleanText. Shape never fails.
func Shape(raw []RawEntry) []WordEntry {
	out := make([]WordEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, shapeEntry(r))
	}
	return out
}

func shapeEntry(r RawEntry) WordEntry {
	entry := WordEntry{
		Word:      r.Word,
		Phonetics: make([]Phonetic, 0, len(r.Phonetics)),
		Meanings:  make([]Meaning, 0, min(len(r.Meanings), MaxMeanings)),
	}

	for _, p := range r.Phonetics {
		if p.Text == "" && p.Audio == "" {
			continue
		}
		audio, _ := ValidateAudioURL(p.Audio)
		entry.Phonetics = append(entry.Phonetics, Phonetic{Text: p.Text, Audio: audio})
	}

	for _, m := range firstN(r.Meanings, MaxMeanings) {
		meaning := Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Definitions:  make([]Definition, 0, min(len(m.Definitions), MaxDefinitions)),
			Synonyms:     firstN(m.Synonyms, MaxSynonyms),
			Antonyms:     firstN(m.Antonyms, MaxAntonyms),
		}
		for _, d := range firstN(m.Definitions, MaxDefinitions) {
			meaning.Definitions = append(meaning.Definitions, Definition{
				Definition: CleanText(d.Definition),
				Example:    CleanText(d.Example),
				Synonyms:   firstN(d.Synonyms, MaxSynonyms),
				Antonyms:   firstN(d.Antonyms, MaxAntonyms),
			})
		}
		entry.Meanings = append(entry.Meanings, meaning)
	}

	return entry
}

// firstN copies at most n leading elements into a fresh, non-nil slice.
func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	return append(make([]T, 0, len(s)), s...)
}
