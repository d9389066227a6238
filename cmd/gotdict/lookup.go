package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdict"
)

func newLookupCommand(a *app) *cobra.Command {
	var (
		jsonOutput  bool
		noTranslate bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a word and print its meanings with Korean translations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if noTranslate {
				a.cfg.Translation.Enabled = false
			}

			svc, err := a.newService()
			if err != nil {
				return err
			}

			entries, err := svc.LookupWord(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", gotdict.ErrorMessage(err), err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print entries as JSON")
	cmd.Flags().BoolVar(&noTranslate, "no-translate", false, "skip Korean translation")
	return cmd
}

func printEntries(w io.Writer, entries []gotdict.WordEntry) {
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, e.Word)
		for _, p := range e.Phonetics {
			if p.Text != "" {
				fmt.Fprintf(w, "  %s\n", p.Text)
			}
		}

		for _, m := range e.Meanings {
			fmt.Fprintf(w, "\n[%s]\n", m.PartOfSpeech)
			for n, d := range m.Definitions {
				fmt.Fprintf(w, "  %d. %s\n", n+1, d.Definition)
				if d.KoreanDefinition != "" {
					fmt.Fprintf(w, "     %s\n", d.KoreanDefinition)
				}
				if d.Example != "" {
					fmt.Fprintf(w, "     e.g. %s\n", d.Example)
					if d.KoreanExample != "" {
						fmt.Fprintf(w, "          %s\n", d.KoreanExample)
					}
				}
			}
			if len(m.Synonyms) > 0 {
				fmt.Fprintf(w, "  Synonyms: %s\n", strings.Join(m.Synonyms, ", "))
			}
			if len(m.Antonyms) > 0 {
				fmt.Fprintf(w, "  Antonyms: %s\n", strings.Join(m.Antonyms, ", "))
			}
		}
	}
}
