package validation

import (
	"strings"

	"github.com/goliatone/go-formdoc/pkg/model"
	"github.com/goliatone/go-formdoc/pkg/schema"
	"github.com/goliatone/go-formdoc/pkg/values"
	"github.com/goliatone/go-formdoc/pkg/visibility"
)

// Option configures Required.
type Option func(*config)

type config struct {
	evaluator visibility.Evaluator
}

// WithEvaluator replaces the role evaluator that decides which fields are
// checked.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(cfg *config) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

// RequiredMessage is the message reported for a missing required field.
func RequiredMessage(label string) string {
	return "请输入" + label
}

// Required reports every visible required field left blank. Text values are
// blank when they only hold whitespace; checkboxes must be ticked. Required
// table columns are checked on every row, while a required table with no
// rows passes. Fields hidden from the viewer are never checked. When the
// evaluator fails, the failure is the only, form-level, error reported.
func Required(fields []model.Field, raw map[string]any, ctx visibility.Context, opts ...Option) Errors {
	cfg := config{evaluator: visibility.Roles}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	bag := values.Normalize(raw)
	if ctx.Values == nil {
		ctx.Values = bag
	}
	visible, err := visibility.FilterFields(fields, cfg.evaluator, ctx)
	if err != nil {
		return Errors{{Message: err.Error()}}
	}

	var errs Errors
	_ = schema.Walk(visible, "", func(entry schema.Entry) error {
		field := entry.Field
		switch field.Type {
		case model.FieldGroup:
			return nil
		case model.FieldTable:
			errs = append(errs, requiredCells(field, entry.Path, bag.Rows(entry.Path))...)
			return schema.SkipChildren
		}
		if field.Required && blank(field, bag, entry.Path) {
			errs = append(errs, FieldError{Path: entry.Path, Label: field.Label, Message: RequiredMessage(field.Label)})
		}
		return nil
	})
	return errs
}

func requiredCells(table model.Field, path string, rows []values.Row) Errors {
	var errs Errors
	for i, row := range rows {
		for _, column := range table.Columns {
			if !column.Required {
				continue
			}
			cell := values.Values{column.Name: row[column.Name]}
			if blank(column, cell, column.Name) {
				errs = append(errs, FieldError{
					Path:    schema.CellPath(path, i, column.Name),
					Label:   column.Label,
					Message: RequiredMessage(column.Label),
				})
			}
		}
	}
	return errs
}

func blank(field model.Field, bag values.Values, path string) bool {
	if field.Type == model.FieldCheckbox {
		return !bag.Bool(path)
	}
	return strings.TrimSpace(bag.String(path)) == ""
}
