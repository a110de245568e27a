package astcheck

import (
	"embed"
	"fmt"
	"strings"

	"github.com/chris-regnier/namecheck/internal/naming"
)

//go:embed docs/*.md
var docsFS embed.FS

// Documentation returns the markdown documentation of a check.
func Documentation(c Check) (string, error) {
	data, err := docsFS.ReadFile("docs/" + c.Code() + ".md")
	if err != nil {
		return "", fmt.Errorf("no documentation for %s: %w", c.Name(), err)
	}
	return strings.ReplaceAll(string(data), "{{aliases}}", aliasList()), nil
}

// aliasList renders the exempt aliases as "`np`, `pd` and `cv`".
func aliasList() string {
	aliases := naming.AliasWhitelist()
	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = "`" + a + "`"
	}
	if len(quoted) < 2 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
}
