package carousel

import (
	"fmt"
)

// debugf writes one "[carousel]" line to the log output when debug mode is
// on.
func (s *Slideshow) debugf(format string, args ...any) {
	if !s.cfg.Debug || s.logOut == nil {
		return
	}
	_, _ = fmt.Fprintf(s.logOut, "[carousel] "+format+"\n", args...)
}

// SetDebugMode enables or disables debug logging to the log output
// (stderr unless WithLogOutput was given).
func (s *Slideshow) SetDebugMode(enabled bool) {
	s.cfg.Debug = enabled
}
