package in

import (
	"context"
	"time"

	sessiondto "dragochi/internal/modules/session/dto"
	sessionin "dragochi/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, startAt, endAt time.Time, platform, gameID, note string, friendIDs []string) (sessiondto.SessionOutput, error) {
	return h.usecase.AddManual(ctx, sessiondto.AddManualInput{
		StartAt:   startAt,
		EndAt:     endAt,
		Platform:  platform,
		GameID:    gameID,
		Note:      note,
		FriendIDs: friendIDs,
	})
}

func (h CLIHandler) Edit(ctx context.Context, input sessiondto.UpdateInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Show(ctx context.Context, id string) (sessiondto.SessionOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) History(ctx context.Context, filter string) (sessiondto.HistoryOutput, error) {
	return h.usecase.History(ctx, sessiondto.HistoryInput{Filter: filter})
}
