package export

import (
	"strings"
	"time"
)

// DateLayout formats the date stamp in exported file names and titles.
const DateLayout = "2006-01-02"

// FileName returns "<templateName>-<YYYY-MM-DD>.<ext>". A leading dot on ext
// is ignored.
func FileName(templateName string, at time.Time, ext string) string {
	return Title(templateName, at) + "." + strings.TrimPrefix(ext, ".")
}

// Title returns "<templateName>-<YYYY-MM-DD>", used as the .doc title.
func Title(templateName string, at time.Time) string {
	return templateName + "-" + at.Format(DateLayout)
}
