package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdict/wordlist"
)

func newQuizCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Quiz yourself on the saved word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withWordStore(cmd, func(store wordlist.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				quiz, err := wordlist.NewQuiz(entries, nil)
				if errors.Is(err, wordlist.ErrEmptyList) {
					fmt.Fprintln(cmd.OutOrStdout(), "Save some words to start the quiz!")
					return nil
				}
				if err != nil {
					return err
				}
				return runQuiz(quiz, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}

// runQuiz asks every question in turn. An answer is either the option number
// or the option text. The quiz ends early when input runs out.
func runQuiz(quiz *wordlist.Quiz, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for !quiz.Finished() {
		q, _ := quiz.Current()
		fmt.Fprintf(out, "\nWhat is the meaning of %q?\n", q.Word)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
			answer = q.Options[n-1]
		}

		correct, definition, err := quiz.Answer(answer)
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Wrong! The correct answer was: %s\n", definition)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	score, total := quiz.Score()
	fmt.Fprintf(out, "\nQuiz finished! Your score: %d/%d\n", score, total)
	return nil
}
