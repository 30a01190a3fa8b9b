package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdoc/pkg/validation"
)

func newTemplatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			st := newStyler(out)
			for _, tpl := range a.orch.Templates() {
				fmt.Fprintf(out, "%-14s %s\n", st.title(tpl.ID), tpl.Name)
				if tpl.Description != "" {
					fmt.Fprintf(out, "%-14s %s\n", "", st.muted(tpl.Description))
				}
			}
			return nil
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <template>",
		Short: "Print the JSON schema of a template's values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.orch.FormModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(validation.Schema(form), "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <template>",
		Short: "Clear saved values for both preview modes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := a.orch.Template(args[0])
			if err != nil {
				return err
			}
			a.persistence.Clear(tpl.ID)
			out := cmd.OutOrStdout()
			st := newStyler(out)
			fmt.Fprintf(out, "%s 已重置 %s\n", st.success("✓"), tpl.Name)
			a.logger.Info("values reset", "template", tpl.ID)
			return nil
		},
	}
}
