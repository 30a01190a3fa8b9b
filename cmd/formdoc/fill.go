package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdoc/pkg/render"
	"github.com/goliatone/go-formdoc/pkg/renderers/tui"
	"github.com/goliatone/go-formdoc/pkg/session"
	"github.com/goliatone/go-formdoc/pkg/storage"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

var errNotInteractive = errors.New("fill needs an interactive terminal; use render --values instead")

func newFillCmd(a *app) *cobra.Command {
	var flags docFlags
	cmd := &cobra.Command{
		Use:   "fill <template>",
		Short: "Fill a template interactively and preview the result",
		Long: `Prompt for every field visible to the selected roles. Answers are saved
as you go (debounced) under <template>_<mode>, and the next run starts from
them. When required fields are missing the prompts run again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return errNotInteractive
			}
			req, err := a.resolve(args[0], flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			form, err := a.orch.FormModel(ctx, req.tpl.ID)
			if err != nil {
				return err
			}
			// Sessions validate against the same fields the prompts show.
			tpl := *req.tpl
			tpl.Fields = form.Fields

			sess, err := session.New(&tpl,
				session.WithPersistence(a.persistence),
				session.WithDelay(a.cfg.Session.Debounce),
				session.WithMode(req.mode),
				session.WithRoles(req.roles...),
				session.WithPolicy(a.cfg.Policy()),
				session.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			st := newStyler(out)
			if sess.Load() {
				fmt.Fprintln(out, st.muted("已恢复上次保存的内容"))
			}

			driver := a.prompts
			if driver == nil {
				driver = tui.NewSurveyDriver(out)
			}
			renderer, err := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithChangeHook(func(path string, value any) {
					if err := sess.Set(path, value); err != nil {
						a.logger.Warn("ignored answer", "template", tpl.ID, "path", path, "error", err)
					}
				}),
			)
			if err != nil {
				return err
			}

			var fieldErrs map[string][]string
			for {
				_, _, err := renderer.Collect(ctx, form, render.RenderOptions{
					Values: sess.Values(),
					Errors: fieldErrs,
					Roles:  req.roles,
					Mode:   req.mode,
				})
				if errors.Is(err, tui.ErrAborted) {
					return fmt.Errorf("fill %s: aborted, answers so far are saved", tpl.ID)
				}
				if err != nil {
					return err
				}

				snap, err := sess.Preview()
				var verrs validation.Errors
				if errors.As(err, &verrs) {
					printValidation(out, st, verrs)
					again, err := driver.Confirm(ctx, tui.ConfirmConfig{Message: "继续填写？", Default: true})
					if err != nil {
						return err
					}
					if !again {
						return fmt.Errorf("fill %s: %w", tpl.ID, verrs)
					}
					fieldErrs = verrs.Map()
					continue
				}
				if err != nil {
					return err
				}

				rendered, err := terminalMarkdown(out, snap.Markdown)
				if err != nil {
					return err
				}
				fmt.Fprint(out, rendered)
				fmt.Fprintf(out, "%s 已保存 %s\n", st.success("✓"), storage.Key(tpl.ID, req.mode))
				return nil
			}
		},
	}
	flags.register(cmd, false)
	return cmd
}
