// Package model defines the template field schema shared by the document
// generators, the form renderers, and validation. A schema is a small tree of
// Field values: leaves (text, textarea, select, radio, checkbox) hold scalars,
// groups introduce a nested namespace, and tables hold rows keyed by column
// name. Roles tag fields with the viewers they are relevant to; they feed the
// visibility filter and carry no security meaning.
package model
