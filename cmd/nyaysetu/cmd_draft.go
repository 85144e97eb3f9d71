package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/nyaysetu/internal/documents"
	"github.com/JaimeStill/nyaysetu/internal/drafting"
	"github.com/JaimeStill/nyaysetu/internal/forms"
	"github.com/JaimeStill/nyaysetu/internal/keywords"
	"github.com/JaimeStill/nyaysetu/internal/lifecycles"
	"github.com/JaimeStill/nyaysetu/pkg/formatting"
)

type draftFlags struct {
	file    string
	out     string
	text    bool
	explain bool
}

// draftOutput is the --json form of a drafted document.
type draftOutput struct {
	Type            keywords.DocumentType  `json:"type"`
	Title           string                 `json:"title"`
	Hash            string                 `json:"hash"`
	ReferenceNumber *string                `json:"reference_number,omitempty"`
	File            string                 `json:"file,omitempty"`
	SizeBytes       int                    `json:"size_bytes,omitempty"`
	Deadlines       []lifecycles.Deadline  `json:"deadlines,omitempty"`
	Explanations    []drafting.Explanation `json:"explanations,omitempty"`
}

func newDraftCmd(get func() *app, flags *rootFlags) *cobra.Command {
	df := &draftFlags{}

	cmd := &cobra.Command{
		Use:       "draft rti|affidavit --file request.json [--out file.pdf]",
		Short:     "Validate and draft a document as PDF or text",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"rti", "affidavit"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := keywords.Parse(args[0])
			if err != nil {
				return err
			}

			a := get()
			p, err := prepare(a.pipeline, dt, cmd.InOrStdin(), df.file)
			if err != nil {
				var rejected *documents.RejectedError
				if errors.As(err, &rejected) {
					fmt.Fprint(cmd.ErrOrStderr(), rejected.Report.String())
				}
				return err
			}

			out := cmd.OutOrStdout()
			if df.text {
				fmt.Fprint(out, drafting.Text(p.Draft))
				if df.explain {
					fmt.Fprintln(out)
					fmt.Fprintln(out, drafting.ExplanationReport(p.Draft))
				}
				return nil
			}

			data, err := drafting.PDF(p.Draft)
			if err != nil {
				return err
			}

			path := df.out
			if path == "" {
				path = documents.Document{Type: dt, Hash: p.Hash}.Filename()
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			a.logger.Info("document drafted", "type", dt, "hash", p.Hash, "file", path)

			result := draftOutput{
				Type:            dt,
				Title:           p.Draft.Title,
				Hash:            p.Hash,
				ReferenceNumber: p.ReferenceNumber,
				File:            path,
				SizeBytes:       len(data),
				Deadlines:       lifecycles.Deadlines(dt, p.Draft.Metadata, time.Now()),
			}
			if df.explain {
				result.Explanations = p.Draft.Explanations
			}

			if flags.json {
				return printJSON(out, result)
			}
			printDraft(out, result, p.Draft, df.explain)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&df.file, "file", "f", "-", "JSON request file, - for stdin")
	f.StringVarP(&df.out, "out", "o", "", "output PDF path (default derived from the document hash)")
	f.BoolVar(&df.text, "text", false, "print plain text instead of writing a PDF")
	f.BoolVar(&df.explain, "explain", false, "include the clause explanation report")
	return cmd
}

func prepare(p *documents.Pipeline, dt keywords.DocumentType, in io.Reader, file string) (*documents.Prepared, error) {
	switch dt {
	case keywords.RTI:
		var app forms.RTIApplication
		if err := readJSON(in, file, &app); err != nil {
			return nil, err
		}
		return p.RTI(app)
	case keywords.Affidavit:
		var aff forms.Affidavit
		if err := readJSON(in, file, &aff); err != nil {
			return nil, err
		}
		return p.Affidavit(aff)
	}
	return nil, fmt.Errorf("cannot draft %s", dt)
}

func printDraft(w io.Writer, r draftOutput, d *drafting.Draft, explain bool) {
	fmt.Fprintf(w, "Drafted %s\n", r.Title)
	fmt.Fprintf(w, "File:      %s (%s)\n", r.File, formatting.FormatBytes(int64(r.SizeBytes), 1))
	fmt.Fprintf(w, "Hash:      %s\n", r.Hash)
	if r.ReferenceNumber != nil {
		fmt.Fprintf(w, "Reference: %s\n", *r.ReferenceNumber)
	}
	for _, dl := range r.Deadlines {
		fmt.Fprintf(w, "Deadline:  %s %s (%s)\n", dl.Name, dl.Due.Format("2006-01-02"), dl.Description)
	}
	if explain {
		fmt.Fprintln(w)
		fmt.Fprintln(w, drafting.ExplanationReport(d))
	}
}
