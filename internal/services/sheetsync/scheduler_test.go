package sheetsync_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/sheetsync"
	mocksheetsync "github.com/ExoCode33/bp-idolls-guild-manager/internal/services/sheetsync/mock"
)

func rosterFixture() []*entities.RosterEntry {
	return []*entities.RosterEntry{
		{Character: &entities.Character{OwnerID: "owner-1", IGN: "FrostyOne"}, Timezone: "Asia/Tokyo"},
	}
}

func waitPush(t *testing.T, pushes <-chan time.Time, within time.Duration) time.Time {
	t.Helper()
	select {
	case at := <-pushes:
		return at
	case <-time.After(within):
		t.Fatalf("no push within %v", within)
		return time.Time{}
	}
}

func waitSnapshot(t *testing.T, snapshots <-chan []*entities.RosterEntry, within time.Duration) []*entities.RosterEntry {
	t.Helper()
	select {
	case entries := <-snapshots:
		return entries
	case <-time.After(within):
		t.Fatalf("no push within %v", within)
		return nil
	}
}

func assertNoPush(t *testing.T, pushes <-chan time.Time, within time.Duration) {
	t.Helper()
	select {
	case <-pushes:
		t.Fatal("unexpected push")
	case <-time.After(within):
	}
}

func TestSchedulerCoalescesSignals(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocksheetsync.NewMockRosterSource(ctrl)
	keeper := mocksheetsync.NewMockRecordkeeper(ctrl)

	pushes := make(chan time.Time, 8)
	source.EXPECT().Roster(gomock.Any()).Return(rosterFixture(), nil).Times(2)
	keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*entities.RosterEntry) error {
			pushes <- time.Now()
			return nil
		}).Times(2)

	s := sheetsync.NewScheduler(&sheetsync.SchedulerConfig{
		Source:      source,
		Keeper:      keeper,
		MinInterval: 80 * time.Millisecond,
	})
	defer s.Stop()

	// The first signal in a quiet period pushes immediately
	start := time.Now()
	s.NotifyChanged()
	first := waitPush(t, pushes, time.Second)
	assert.Less(t, first.Sub(start), 50*time.Millisecond)

	// A burst of signals coalesces into one delayed push
	s.NotifyChanged()
	s.NotifyChanged()
	s.NotifyChanged()
	second := waitPush(t, pushes, time.Second)
	assert.GreaterOrEqual(t, second.Sub(first), 60*time.Millisecond)

	assertNoPush(t, pushes, 150*time.Millisecond)
}

func TestSchedulerBacksOffWhenRateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocksheetsync.NewMockRosterSource(ctrl)
	keeper := mocksheetsync.NewMockRecordkeeper(ctrl)

	pushes := make(chan time.Time, 8)
	source.EXPECT().Roster(gomock.Any()).Return(rosterFixture(), nil).Times(2)

	first := keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*entities.RosterEntry) error {
			pushes <- time.Now()
			return apperr.RateLimited("quota exceeded")
		})
	keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*entities.RosterEntry) error {
			pushes <- time.Now()
			return nil
		}).After(first)

	s := sheetsync.NewScheduler(&sheetsync.SchedulerConfig{
		Source:      source,
		Keeper:      keeper,
		MinInterval: 40 * time.Millisecond,
		MaxInterval: 200 * time.Millisecond,
	})
	defer s.Stop()

	s.NotifyChanged()
	failedAt := waitPush(t, pushes, time.Second)

	// The failed push reschedules itself at the doubled interval
	retriedAt := waitPush(t, pushes, time.Second)
	assert.GreaterOrEqual(t, retriedAt.Sub(failedAt), 70*time.Millisecond)
}

func TestSchedulerKeepsBackoffAfterSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocksheetsync.NewMockRosterSource(ctrl)
	keeper := mocksheetsync.NewMockRecordkeeper(ctrl)

	pushes := make(chan time.Time, 8)
	source.EXPECT().Roster(gomock.Any()).Return(rosterFixture(), nil).Times(3)

	throttled := keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*entities.RosterEntry) error {
			pushes <- time.Now()
			return apperr.RateLimited("quota exceeded")
		})
	keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*entities.RosterEntry) error {
			pushes <- time.Now()
			return nil
		}).Times(2).After(throttled)

	s := sheetsync.NewScheduler(&sheetsync.SchedulerConfig{
		Source:      source,
		Keeper:      keeper,
		MinInterval: 40 * time.Millisecond,
		MaxInterval: 400 * time.Millisecond,
	})
	defer s.Stop()

	s.NotifyChanged()
	waitPush(t, pushes, time.Second)
	recovered := waitPush(t, pushes, time.Second)

	// The doubled interval outlives the successful push: the next signal
	// still waits the backed-off 80ms, not the 40ms floor
	s.NotifyChanged()
	next := waitPush(t, pushes, time.Second)
	assert.GreaterOrEqual(t, next.Sub(recovered), 70*time.Millisecond)
}

func TestSchedulerPushesLatestSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocksheetsync.NewMockRosterSource(ctrl)
	keeper := mocksheetsync.NewMockRecordkeeper(ctrl)

	var mu sync.Mutex
	roster := rosterFixture()
	source.EXPECT().Roster(gomock.Any()).
		DoAndReturn(func(context.Context) ([]*entities.RosterEntry, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]*entities.RosterEntry(nil), roster...), nil
		}).Times(2)

	snapshots := make(chan []*entities.RosterEntry, 8)
	keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entries []*entities.RosterEntry) error {
			snapshots <- entries
			return nil
		}).Times(2)

	s := sheetsync.NewScheduler(&sheetsync.SchedulerConfig{
		Source:      source,
		Keeper:      keeper,
		MinInterval: 60 * time.Millisecond,
	})
	defer s.Stop()

	s.NotifyChanged()
	first := waitSnapshot(t, snapshots, time.Second)
	require.Len(t, first, 1)

	// Data written between coalesced signals still makes the push: the
	// snapshot is taken at fire time, not at signal time
	s.NotifyChanged()
	mu.Lock()
	roster = append(roster, &entities.RosterEntry{
		Character: &entities.Character{OwnerID: "owner-2", IGN: "LateJoiner"},
	})
	mu.Unlock()
	s.NotifyChanged()

	second := waitSnapshot(t, snapshots, time.Second)
	require.Len(t, second, 2)
	assert.Equal(t, "LateJoiner", second[1].Character.IGN)
}

func TestSchedulerRetriesSourceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocksheetsync.NewMockRosterSource(ctrl)
	keeper := mocksheetsync.NewMockRecordkeeper(ctrl)

	pushes := make(chan time.Time, 8)
	bad := source.EXPECT().Roster(gomock.Any()).Return(nil, apperr.Internal("redis down"))
	source.EXPECT().Roster(gomock.Any()).Return(rosterFixture(), nil).After(bad)
	keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*entities.RosterEntry) error {
			pushes <- time.Now()
			return nil
		})

	s := sheetsync.NewScheduler(&sheetsync.SchedulerConfig{
		Source:      source,
		Keeper:      keeper,
		MinInterval: 30 * time.Millisecond,
	})
	defer s.Stop()

	s.NotifyChanged()
	waitPush(t, pushes, time.Second)
}

func TestSchedulerStopCancelsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocksheetsync.NewMockRosterSource(ctrl)
	keeper := mocksheetsync.NewMockRecordkeeper(ctrl)

	pushes := make(chan time.Time, 8)
	source.EXPECT().Roster(gomock.Any()).Return(rosterFixture(), nil)
	keeper.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*entities.RosterEntry) error {
			pushes <- time.Now()
			return nil
		})

	s := sheetsync.NewScheduler(&sheetsync.SchedulerConfig{
		Source:      source,
		Keeper:      keeper,
		MinInterval: 50 * time.Millisecond,
	})

	s.NotifyChanged()
	waitPush(t, pushes, time.Second)

	// A pending push dies with the scheduler
	s.NotifyChanged()
	s.Stop()
	assertNoPush(t, pushes, 120*time.Millisecond)

	// Signals after Stop are ignored
	s.NotifyChanged()
	assertNoPush(t, pushes, 120*time.Millisecond)
}

func TestLogKeeper(t *testing.T) {
	require.NoError(t, sheetsync.LogKeeper{}.ReplaceAll(context.Background(), rosterFixture()))
}
