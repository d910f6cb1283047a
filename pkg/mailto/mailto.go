// Package mailto builds mailto: links the way browsers expect them,
// with every component percent-encoded and spaces written as %20.
package mailto

import (
	"net/url"
	"strings"
)

func Link(addr, subject, body string) string {
	var q []string
	if subject != "" {
		q = append(q, "subject="+escape(subject))
	}
	if body != "" {
		q = append(q, "body="+escape(body))
	}

	link := "mailto:" + addr
	if len(q) > 0 {
		link += "?" + strings.Join(q, "&")
	}
	return link
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
