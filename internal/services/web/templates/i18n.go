package templates

import (
	"fmt"

	webi18n "github.com/sinhaparth5/portfolio/internal/services/web/i18n"
)

// Localizer provides translated strings for page components.
type Localizer = webi18n.Localizer

// T returns the catalog copy for key. Without a localizer the key itself is
// formatted, which keeps components renderable in isolation.
func T(loc Localizer, key string, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if len(args) > 0 {
		return fmt.Sprintf(key, args...)
	}
	return key
}
