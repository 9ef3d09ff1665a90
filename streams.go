// SPDX-License-Identifier: EPL-2.0

package speex

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/speex/audio"
	"github.com/ik5/speex/coder"
	"github.com/ik5/speex/config"
	"github.com/ik5/speex/engine"
)

// EncodeStreams encodes every source on its own goroutine, each with a
// fresh encoder from eng configured by s. Result i holds the packets of
// sources[i]. The first failure cancels the others and is returned.
func EncodeStreams(ctx context.Context, eng engine.Engine, s *config.Settings, sources []audio.Source, opts ...coder.Option) ([][][]byte, error) {
	mode, err := s.ModeID()
	if err != nil {
		return nil, err
	}

	out := make([][][]byte, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		g.Go(func() error {
			enc, err := coder.NewDynamicEncoder(eng, mode, opts...)
			if err != nil {
				return fmt.Errorf("stream %d: %w", i, err)
			}
			defer enc.Close()

			if err := s.ApplyEncoder(enc); err != nil {
				return fmt.Errorf("stream %d: %w", i, err)
			}

			packets, err := Encode(gctx, enc, src)
			if err != nil {
				return fmt.Errorf("stream %d: %w", i, err)
			}
			out[i] = packets
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		coder.Logger().Warn("stream encoding failed", zap.Error(err))
		return nil, err
	}

	return out, nil
}
