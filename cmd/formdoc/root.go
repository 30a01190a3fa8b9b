package main

import "github.com/spf13/cobra"

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formdoc",
		Short: "Form-driven document generator",
		Long: `formdoc fills structured templates (test reports, release plans,
weekly reports) and generates Markdown and HTML documents from the answers.
Values are saved per template and preview mode, and documents can be
exported as .md or .doc files, copied to the clipboard, or published.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newTemplatesCmd(a),
		newRenderCmd(a),
		newFillCmd(a),
		newExportCmd(a),
		newCopyCmd(a),
		newPublishCmd(a),
		newResetCmd(a),
		newSchemaCmd(a),
		newServeCmd(a),
	)
	return root
}
