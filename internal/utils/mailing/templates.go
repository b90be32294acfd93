package mailing

import (
	"fmt"
	"html"
	"strings"
)

// SharedMenuLink is the public page a share token opens on the client.
func SharedMenuLink(appURL string, token string) string {
	return strings.TrimRight(appURL, "/") + "/shared/" + token
}

func SharedMenuBody(menuName string, link string) string {
	return fmt.Sprintf(
		`<p>A meal plan was shared with you: <strong>%s</strong>.</p><p><a href="%s">Open the meal plan</a></p>`,
		html.EscapeString(menuName),
		html.EscapeString(link),
	)
}
