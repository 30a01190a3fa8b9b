// Package validation checks form values before preview and export.
//
// Required enforces required fields for the fields a viewer can see. Schema
// and CheckShape describe and verify the structure of a value bag with an
// OpenAPI schema: groups are objects, tables arrays of row objects, select
// and radio fields string enums, checkboxes booleans. Business semantics are
// out of scope.
package validation
