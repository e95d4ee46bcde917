package assets

import (
	"embed"
	"strings"
)

//go:embed banner.txt signed_out.md
var assetsFS embed.FS

// Banner is the ASCII logo shown above the sign-in form.
func Banner() string {
	b, err := assetsFS.ReadFile("banner.txt")
	if err != nil {
		return "GenStudio"
	}
	return strings.TrimRight(string(b), "\n")
}

// SignedOutHelp is the markdown printed by whoami for anonymous sessions.
func SignedOutHelp() string {
	b, _ := assetsFS.ReadFile("signed_out.md")
	return string(b)
}
