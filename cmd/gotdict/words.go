package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdict/naver"
	"github.com/ZaguanLabs/gotdict/wordlist"
)

func newWordsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage the saved word list",
	}
	cmd.AddCommand(
		newWordsListCommand(a),
		newWordsAddCommand(a),
		newWordsExportCommand(a),
		newWordsImportCommand(a),
	)
	return cmd
}

// withWordStore runs fn against the configured store.
func (a *app) withWordStore(cmd *cobra.Command, fn func(wordlist.Store) error) error {
	if err := a.setup(cmd); err != nil {
		return err
	}
	store, closeStore, err := a.newWordStore()
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}

func newWordsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print saved words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withWordStore(cmd, func(store wordlist.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No words saved yet.")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(out, "%s\t%s\n", e.Word, e.Definition)
				}
				return nil
			})
		},
	}
}

func newWordsAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <word> [definition]",
		Short: "Save a word, looking up its meaning when none is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWordStore(cmd, func(store wordlist.Store) error {
				entry := wordlist.Entry{Word: strings.TrimSpace(args[0])}
				if len(args) == 2 {
					entry.Definition = strings.TrimSpace(args[1])
				}
				if entry.Word == "" {
					return errors.New("word must not be empty")
				}

				if entry.Definition == "" {
					meaning, err := a.newFinder().Find(cmd.Context(), entry.Word)
					if errors.Is(err, naver.ErrMeaningNotFound) {
						return fmt.Errorf("%s: meaning not found", entry.Word)
					}
					if err != nil {
						return fmt.Errorf("error fetching definition: %w", err)
					}
					entry.Definition = meaning
				}

				added, err := store.Add(cmd.Context(), entry)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already saved\n", entry.Word)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.Word, entry.Definition)
				return nil
			})
		},
	}
}

func newWordsExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the word list as CSV (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWordStore(cmd, func(store wordlist.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(args) == 0 {
					return wordlist.ExportCSV(cmd.OutOrStdout(), entries)
				}

				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				if err := wordlist.ExportCSV(f, entries); err != nil {
					f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
}

func newWordsImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the word list with a CSV file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWordStore(cmd, func(store wordlist.Store) error {
				var src io.Reader = cmd.InOrStdin()
				if args[0] != "-" {
					f, err := os.Open(args[0]) // #nosec G304 - CLI tool reads user-specified files
					if err != nil {
						return err
					}
					defer f.Close()
					src = f
				}

				entries, err := wordlist.ImportCSV(src)
				if err != nil {
					return err
				}
				if err := store.Replace(cmd.Context(), entries); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words\n", len(entries))
				return nil
			})
		},
	}
}
