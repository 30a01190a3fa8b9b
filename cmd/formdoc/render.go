package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdoc/pkg/validation"
)

const (
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		flags    docFlags
		format   string
		validate bool
		pretty   bool
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Generate a document from saved values or a values file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatMarkdown && format != formatHTML {
				return fmt.Errorf("unknown format %q (want markdown or html)", format)
			}
			req, err := a.resolve(args[0], flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyler(out)
			docs, err := a.documents(cmd.Context(), req, validate)
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				printValidation(cmd.ErrOrStderr(), st, verrs)
				return fmt.Errorf("render %s: %d field(s) need attention", req.tpl.ID, len(verrs))
			}
			if err != nil {
				return err
			}

			content := docs.Markdown
			if format == formatHTML {
				content = docs.HTML
			}
			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(out, "%s %s\n", st.success("✓"), outPath)
				return nil
			}
			if pretty && format == formatMarkdown {
				content, err = terminalMarkdown(out, content)
				if err != nil {
					return err
				}
			}
			_, err = fmt.Fprint(out, content)
			return err
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", formatMarkdown, "Output format (markdown or html)")
	cmd.Flags().BoolVar(&validate, "validate", false, "Fail when required fields are missing")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render Markdown for the terminal")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the document to a file instead of stdout")
	return cmd
}
