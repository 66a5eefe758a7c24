package usecase

import (
	"context"
	"fmt"

	sessiondomain "dragochi/internal/modules/session/domain"
	"dragochi/internal/modules/tracking/domain"
	trackingdto "dragochi/internal/modules/tracking/dto"
	trackingin "dragochi/internal/modules/tracking/port/in"
	trackingout "dragochi/internal/modules/tracking/port/out"
	"dragochi/internal/modules/tracking/service"
)

type Interactor struct {
	ctrl      *service.Controller
	snapshots trackingout.SnapshotStore
}

func NewInteractor(ctrl *service.Controller, snapshots trackingout.SnapshotStore) trackingin.Usecase {
	return &Interactor{ctrl: ctrl, snapshots: snapshots}
}

func (i *Interactor) Start(ctx context.Context, input trackingdto.StartInput) (trackingdto.StateOutput, error) {
	platform, err := sessiondomain.ParsePlatform(input.Platform)
	if err != nil {
		return toOutput(i.ctrl.State()), err
	}
	state, err := i.ctrl.Start(ctx, domain.Setup{
		GameID:    input.GameID,
		Platform:  platform,
		FriendIDs: input.FriendIDs,
		Note:      input.Note,
	})
	return toOutput(state), err
}

func (i *Interactor) PauseResume(ctx context.Context) (trackingdto.StateOutput, error) {
	state, err := i.ctrl.PauseResume(ctx)
	return toOutput(state), err
}

func (i *Interactor) Pause(ctx context.Context) (trackingdto.StateOutput, error) {
	if i.ctrl.State().Status != domain.StatusRunning {
		return toOutput(i.ctrl.State()), nil
	}
	return i.PauseResume(ctx)
}

func (i *Interactor) Resume(ctx context.Context) (trackingdto.StateOutput, error) {
	if i.ctrl.State().Status != domain.StatusPaused {
		return toOutput(i.ctrl.State()), nil
	}
	return i.PauseResume(ctx)
}

func (i *Interactor) Tick(_ context.Context) trackingdto.StateOutput {
	return toOutput(i.ctrl.Tick())
}

func (i *Interactor) Stop(ctx context.Context) (trackingdto.StopOutput, error) {
	done, err := i.ctrl.Stop(ctx)
	out := trackingdto.StopOutput{
		SessionID:       done.SessionID,
		StartAt:         done.StartAt,
		EndAt:           done.EndAt,
		DurationSeconds: done.DurationSeconds,
		Stopped:         done.SessionID != "",
	}
	return out, err
}

func (i *Interactor) Discard(ctx context.Context) (trackingdto.StateOutput, error) {
	state, err := i.ctrl.Discard(ctx)
	return toOutput(state), err
}

func (i *Interactor) Restore(ctx context.Context) (trackingdto.StateOutput, error) {
	data, err := i.snapshots.Load(ctx)
	if err != nil {
		return toOutput(i.ctrl.State()), fmt.Errorf("load snapshot: %w", err)
	}
	return i.RestoreSnapshot(ctx, data)
}

func (i *Interactor) RestoreSnapshot(ctx context.Context, data []byte) (trackingdto.StateOutput, error) {
	state, err := i.ctrl.RestoreSnapshot(ctx, data)
	return toOutput(state), err
}

func (i *Interactor) State(_ context.Context) trackingdto.StateOutput {
	return toOutput(i.ctrl.State())
}

func (i *Interactor) Snapshot(_ context.Context) []byte {
	return i.ctrl.Snapshot()
}

func toOutput(s domain.State) trackingdto.StateOutput {
	out := trackingdto.StateOutput{
		Status:             string(s.Status),
		SessionID:          s.SessionID,
		StartAt:            s.StartAt,
		AccumulatedSeconds: s.Accumulated,
		SegmentStartedAt:   s.SegmentStartedAt,
		ElapsedSeconds:     s.Elapsed,
	}
	if s.Setup != nil {
		out.GameID = s.Setup.GameID
		out.Platform = string(s.Setup.Platform)
		out.FriendIDs = append([]string(nil), s.Setup.FriendIDs...)
		out.Note = s.Setup.Note
	}
	return out
}
