// Package orchestrator wires templates, form renderers and validation behind
// one entry point: generate documents from values, render a template's form,
// and check values before preview or export.
package orchestrator
