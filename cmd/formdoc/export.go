package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdoc/pkg/export"
	"github.com/goliatone/go-formdoc/pkg/validation"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		flags  docFlags
		format string
		dir    string
	)
	cmd := &cobra.Command{
		Use:   "export <template>",
		Short: "Write the document as a .md or .doc file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.resolve(args[0], flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			st := newStyler(out)
			docs, err := a.documents(cmd.Context(), req, true)
			if err := reportInvalid(cmd, st, req.tpl.ID, err); err != nil {
				return err
			}

			var file export.File
			switch strings.TrimPrefix(format, ".") {
			case "md":
				file = a.exporter.Markdown(req.tpl.Name, docs.Markdown)
			case "doc":
				file, err = a.exporter.Doc(req.tpl.Name, docs.HTML)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown export format %q (want md or doc)", format)
			}

			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}
			path := filepath.Join(dir, file.Name)
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(out, "%s 已导出 %s\n", st.success("✓"), path)
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", "md", "File format (md or doc)")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (defaults to export.dir)")
	return cmd
}

func newCopyCmd(a *app) *cobra.Command {
	var flags docFlags
	cmd := &cobra.Command{
		Use:   "copy <template>",
		Short: "Copy the active document to the clipboard",
		Long:  "Copy the HTML document in rich mode or the Markdown source in markdown mode.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.resolve(args[0], flags)
			if err != nil {
				return err
			}
			docs, err := a.documents(cmd.Context(), req, false)
			if err != nil {
				return err
			}
			if err := export.Copy(a.clipboard, activeContent(req.mode, docs)); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s 已复制到剪贴板\n", newStyler(out).success("✓"))
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newPublishCmd(a *app) *cobra.Command {
	var (
		flags    docFlags
		platform string
		title    string
		options  []string
	)
	cmd := &cobra.Command{
		Use:   "publish <template>",
		Short: "Publish the active document to a documentation platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseOptions(options)
			if err != nil {
				return err
			}
			req, err := a.resolve(args[0], flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			st := newStyler(out)
			docs, err := a.documents(cmd.Context(), req, true)
			if err := reportInvalid(cmd, st, req.tpl.ID, err); err != nil {
				return err
			}

			target, err := a.platforms.Get(platform)
			if err != nil {
				return err
			}
			ok, err := a.platforms.Publish(cmd.Context(), target.ID(), activeContent(req.mode, docs), export.Options{
				Title:  title,
				Values: opts,
			})
			if err := reportInvalid(cmd, st, target.ID(), err); err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s declined the export", target.Name())
			}
			fmt.Fprintf(out, "%s 已导出到%s\n", st.success("✓"), target.Name())
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&platform, "platform", "", "Platform id (wiki, feishu, yuque, notion)")
	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Platform option as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("platform")
	return cmd
}

// reportInvalid prints validation failures and turns them into a short
// command error. Other errors pass through.
func reportInvalid(cmd *cobra.Command, st styler, subject string, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		printValidation(cmd.ErrOrStderr(), st, verrs)
		return fmt.Errorf("%s: %d field(s) need attention", subject, len(verrs))
	}
	return err
}

func parseOptions(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, item := range raw {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --option %q (want key=value)", item)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
