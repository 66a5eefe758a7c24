package in

import (
	"context"

	"dragochi/internal/modules/tracking/dto"
)

// Usecase drives the single tracked session. Calls that do not apply to the
// current status are no-ops that return the unchanged state.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error)
	PauseResume(ctx context.Context) (dto.StateOutput, error)
	Pause(ctx context.Context) (dto.StateOutput, error)
	Resume(ctx context.Context) (dto.StateOutput, error)
	Tick(ctx context.Context) dto.StateOutput
	Stop(ctx context.Context) (dto.StopOutput, error)
	Discard(ctx context.Context) (dto.StateOutput, error)
	// Restore reloads the persisted snapshot into a freshly built tracker.
	Restore(ctx context.Context) (dto.StateOutput, error)
	RestoreSnapshot(ctx context.Context, data []byte) (dto.StateOutput, error)
	State(ctx context.Context) dto.StateOutput
	Snapshot(ctx context.Context) []byte
}
