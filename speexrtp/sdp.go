// SPDX-License-Identifier: EPL-2.0

package speexrtp

import (
	"fmt"
	"strings"

	"github.com/ik5/speex/config"
)

// FMTP renders the a=fmtp parameters that describe s, or "" when s sets
// none of them.
func FMTP(s *config.Settings) string {
	var params []string

	if s.LowSubmode != nil {
		params = append(params, fmt.Sprintf(`mode="%d,any"`, *s.LowSubmode))
	}

	switch {
	case s.VBR != nil && *s.VBR:
		params = append(params, "vbr=on")
	case s.VAD != nil && *s.VAD:
		params = append(params, "vbr=vad")
	case s.VBR != nil:
		params = append(params, "vbr=off")
	}

	if s.DTX != nil {
		if *s.DTX {
			params = append(params, "cng=on")
		} else {
			params = append(params, "cng=off")
		}
	}

	return strings.Join(params, ";")
}
