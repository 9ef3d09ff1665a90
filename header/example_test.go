// SPDX-License-Identifier: EPL-2.0

package header_test

import (
	"fmt"

	"github.com/ik5/speex/engine"
	"github.com/ik5/speex/header"
)

func Example() {
	packet, err := header.New(16000, 1, engine.WideBand).WithVBR(true).MarshalBinary()
	if err != nil {
		panic(err)
	}

	h, err := header.Parse(packet)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(packet), h.Mode(), h.SampleRate(), h.FrameSize(), h.VBR())

	// Output:
	// 80 wideband 16000 320 true
}
