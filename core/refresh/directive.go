package refresh

import (
	"strings"

	"github.com/ggdaltoso/aleph.js/core/jsast"
)

const forceResetDirective = "@refresh reset"

// hasForceResetDirective reports whether any comment attached immediately
// before the statement contains the reset marker. Purely textual; no
// comment grammar is parsed.
func hasForceResetDirective(s jsast.Stmt) bool {
	for _, c := range s.LeadingComments() {
		if strings.Contains(c.Text, forceResetDirective) {
			return true
		}
	}
	return false
}
