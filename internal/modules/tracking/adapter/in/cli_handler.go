package in

import (
	"context"

	trackingdto "dragochi/internal/modules/tracking/dto"
	trackingin "dragochi/internal/modules/tracking/port/in"
)

type CLIHandler struct {
	usecase trackingin.Usecase
}

func NewCLIHandler(usecase trackingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, platform, gameID, note string, friendIDs []string) (trackingdto.StateOutput, error) {
	return h.usecase.Start(ctx, trackingdto.StartInput{GameID: gameID, Platform: platform, FriendIDs: friendIDs, Note: note})
}

func (h CLIHandler) Pause(ctx context.Context) (trackingdto.StateOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (trackingdto.StateOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context) (trackingdto.StateOutput, error) {
	return h.usecase.PauseResume(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (trackingdto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Discard(ctx context.Context) (trackingdto.StateOutput, error) {
	return h.usecase.Discard(ctx)
}

// Status returns the state with elapsed refreshed to now.
func (h CLIHandler) Status(ctx context.Context) trackingdto.StateOutput {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) Restore(ctx context.Context) (trackingdto.StateOutput, error) {
	return h.usecase.Restore(ctx)
}
