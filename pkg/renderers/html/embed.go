package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/controls/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the file name of the bundled form stylesheet inside
// AssetsFS.
const StylesheetName = "formdoc.css"

// TemplatesFS exposes the embedded template bundle: the form shell, the field
// wrappers, and one control template per leaf field type.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet so callers can serve it over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Stylesheet returns the bundled stylesheet contents.
func Stylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
