// Package export turns generated documents into downloadable files, copies
// them to the system clipboard, and hands them to publishing platforms.
//
// Files are named "<template name>-<YYYY-MM-DD>.<ext>". The .doc export is an
// HTML document served as application/msword, styled from a go-theme
// manifest so variants can change typography without touching the markup.
package export
