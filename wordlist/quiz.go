package wordlist

import (
	"errors"
	"math/rand/v2"
)

// MaxOptions is the number of choices offered per question when the list is
// long enough.
const MaxOptions = 4

// ErrQuizFinished is returned when answering after the last question.
var ErrQuizFinished = errors.New("quiz finished")

// Question asks for the meaning of Word.
type Question struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
}

// Quiz walks the word list in order and keeps score.
type Quiz struct {
	entries []Entry
	current int
	score   int
	rng     *rand.Rand
	options []string
}

// NewQuiz starts a quiz over entries. A nil rng uses a randomly seeded one.
func NewQuiz(entries []Entry, rng *rand.Rand) (*Quiz, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyList
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	q := &Quiz{entries: entries, rng: rng}
	q.options = buildOptions(q.entries, 0, rng)
	return q, nil
}

// Current returns the question being asked. ok is false once finished.
func (q *Quiz) Current() (Question, bool) {
	if q.Finished() {
		return Question{}, false
	}
	return Question{Word: q.entries[q.current].Word, Options: q.options}, true
}

// Answer checks option against the current word's definition, records the
// result and moves to the next question. It returns the correct definition.
func (q *Quiz) Answer(option string) (correct bool, definition string, err error) {
	if q.Finished() {
		return false, "", ErrQuizFinished
	}

	definition = q.entries[q.current].Definition
	correct = option == definition
	if correct {
		q.score++
	}

	q.current++
	if !q.Finished() {
		q.options = buildOptions(q.entries, q.current, q.rng)
	}
	return correct, definition, nil
}

// Finished reports whether every question has been answered.
func (q *Quiz) Finished() bool {
	return q.current >= len(q.entries)
}

// Score returns correct answers so far and the total number of questions.
func (q *Quiz) Score() (correct, total int) {
	return q.score, len(q.entries)
}

// RandomQuestion builds a single question for a randomly chosen entry.
func RandomQuestion(entries []Entry, rng *rand.Rand) (Question, error) {
	if len(entries) == 0 {
		return Question{}, ErrEmptyList
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	i := rng.IntN(len(entries))
	return Question{Word: entries[i].Word, Options: buildOptions(entries, i, rng)}, nil
}

// buildOptions returns the definition of entries[i] plus up to
// MaxOptions-1 definitions of other words, shuffled.
func buildOptions(entries []Entry, i int, rng *rand.Rand) []string {
	target := entries[i]
	options := []string{target.Definition}

	var wrong []Entry
	for _, e := range entries {
		if e.Word != target.Word {
			wrong = append(wrong, e)
		}
	}
	for len(options) < MaxOptions && len(wrong) > 0 {
		k := rng.IntN(len(wrong))
		options = append(options, wrong[k].Definition)
		wrong = append(wrong[:k], wrong[k+1:]...)
	}

	rng.Shuffle(len(options), func(a, b int) {
		options[a], options[b] = options[b], options[a]
	})
	return options
}
