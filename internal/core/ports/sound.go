package ports

import (
	"context"

	"go.trai.ch/nudge/internal/core/domain"
)

// SoundPlayer plays the notification sound.
//
//go:generate mockgen -source=sound.go -destination=mocks/mock_sound.go -package=mocks
type SoundPlayer interface {
	// Play plays the cue and returns once playback finished or failed.
	// Callers that must not block run it in the background.
	Play(ctx context.Context, cue domain.SoundCue) error
}
