package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/nyaysetu/internal/classifier"
)

func newClassifyCmd(get func() *app, flags *rootFlags) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "classify <description...>",
		Short: "Suggest the document type for a described need",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			description := strings.TrimSpace(strings.Join(args, " "))
			if description == "" {
				return errors.New("description is required")
			}

			result := a.classifier.Classify(cmd.Context(), description)

			if !result.Resolved() && interactive {
				answers, err := ask(cmd.InOrStdin(), cmd.OutOrStdout(), result)
				if err != nil {
					return err
				}
				if result, err = a.classifier.Refine(description, answers); err != nil {
					return err
				}
			}

			if flags.json {
				return printJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "answer clarification questions on stdin")
	return cmd
}

func ask(in io.Reader, out io.Writer, r classifier.Result) ([]classifier.Answer, error) {
	fmt.Fprintln(out, r.Message)
	scanner := bufio.NewScanner(in)

	answers := make([]classifier.Answer, 0, len(r.Questions))
	for i, q := range r.Questions {
		fmt.Fprintf(out, "%d. %s [y/n]: ", i+1, q.Text)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}
		reply := strings.ToLower(strings.TrimSpace(scanner.Text()))
		answers = append(answers, classifier.AnswerTo(q, reply == "y" || reply == "yes"))
	}
	return answers, nil
}

func printResult(w io.Writer, r classifier.Result) {
	if !r.Resolved() {
		fmt.Fprintln(w, r.Message)
		if r.SuggestedDocument != "" {
			fmt.Fprintf(w, "Leaning towards: %s (%d%%)\n", r.SuggestedDocument.Name(), r.Confidence)
		}
		for i, q := range r.Questions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, q.Text)
		}
		return
	}

	fmt.Fprintf(w, "Suggested document: %s\n", r.DocumentName)
	fmt.Fprintf(w, "Confidence:         %d%%\n", r.Confidence)
	fmt.Fprintf(w, "Source:             %s\n", r.Source)
	fmt.Fprintf(w, "Estimated time:     %d minutes\n", r.EstimatedTimeMinutes)
	if r.RecommendedApproach != "" {
		fmt.Fprintf(w, "Approach:           %s\n", r.RecommendedApproach)
	}
	for _, c := range r.Challenges {
		fmt.Fprintf(w, "  - %s\n", c)
	}
}
