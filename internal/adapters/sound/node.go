package sound

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nudge/internal/adapters/logger"
	"go.trai.ch/nudge/internal/core/ports"
)

// NodeID is the unique identifier for the sound player Graft node.
const NodeID graft.ID = "adapter.sound"

func init() {
	graft.Register(graft.Node[ports.SoundPlayer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SoundPlayer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPlayer(log), nil
		},
	})
}
