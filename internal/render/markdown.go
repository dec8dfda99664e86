// Package render converts user-authored markdown (board descriptions) into
// sanitized HTML for API responses.
package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)
	htmlPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// DescriptionHTML renders markdown and strips anything bluemonday's UGC
// policy disallows.
func DescriptionHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}

// PlainText strips all markup; used for actor display names before they are
// persisted and broadcast.
func PlainText(s string) string {
	return plainPolicy.Sanitize(s)
}
