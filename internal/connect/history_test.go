package connect

import (
	"context"
	"testing"
	"time"

	"careconnect_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededHistory(t *testing.T) (*fakeConnectionAPI, *HistoryView) {
	t.Helper()

	api := newFakeConnectionAPI()
	api.setName("cand-1", "Aigerim Seitova")
	api.setName("cand-2", "Daniyar Omarov")
	api.setName("cand-3", "Dana Mukasheva")

	base := time.Now().Add(-time.Hour)
	api.seed("cand-1", "emp-1", models.ConnectionStatusAccepted, base)
	api.seed("cand-2", "emp-1", models.ConnectionStatusRejected, base.Add(time.Minute))
	api.seed("cand-3", "emp-1", models.ConnectionStatusPending, base.Add(2*time.Minute))

	viewer := NewViewerContext("emp-1", models.UserRoleEmployer)
	store := newTestStore(t, viewer)
	history := NewHistoryView(api, viewer, store, testPollInterval)

	require.NoError(t, history.Refresh(context.Background()))
	return api, history
}

func TestHistoryView_EntriesNewestFirst(t *testing.T) {
	t.Parallel()

	_, history := seededHistory(t)

	entries := history.Entries("", StatusFilterAll)
	require.Len(t, entries, 3)
	assert.Equal(t, "Dana Mukasheva", entries[0].CounterpartyName)
	assert.Equal(t, "Daniyar Omarov", entries[1].CounterpartyName)
	assert.Equal(t, "Aigerim Seitova", entries[2].CounterpartyName)
}

func TestHistoryView_StatusFilter(t *testing.T) {
	t.Parallel()

	_, history := seededHistory(t)

	rejected := history.Entries("", "rejected")
	require.Len(t, rejected, 1)
	assert.Equal(t, "Daniyar Omarov", rejected[0].CounterpartyName)

	// Пустой фильтр эквивалентен "all"
	assert.Len(t, history.Entries("", ""), 3)
}

func TestHistoryView_SearchByCounterpartyName(t *testing.T) {
	t.Parallel()

	_, history := seededHistory(t)

	// Подстрока без учета регистра
	matches := history.Entries("dAn", StatusFilterAll)
	require.Len(t, matches, 2)
	assert.Equal(t, "Dana Mukasheva", matches[0].CounterpartyName)
	assert.Equal(t, "Daniyar Omarov", matches[1].CounterpartyName)

	// Поиск и фильтр комбинируются
	matches = history.Entries("dan", "rejected")
	require.Len(t, matches, 1)
	assert.Equal(t, "Daniyar Omarov", matches[0].CounterpartyName)

	assert.Empty(t, history.Entries("nobody", StatusFilterAll))
}

func TestHistoryView_SuppressionAppliesOnRefresh(t *testing.T) {
	t.Parallel()

	api := newFakeConnectionAPI()
	api.setName("cand-1", "Aigerim Seitova")
	record := api.seed("cand-1", "emp-1", models.ConnectionStatusRejected, time.Now())

	viewer := NewViewerContext("emp-1", models.UserRoleEmployer)
	store := newTestStore(t, viewer)
	history := NewHistoryView(api, viewer, store, testPollInterval)

	require.NoError(t, history.Refresh(context.Background()))
	require.Len(t, history.Entries("", StatusFilterAll), 1)

	// Скрытие через общий стор убирает запись и из истории
	require.NoError(t, store.Hide(record.ID))
	require.NoError(t, history.Refresh(context.Background()))
	assert.Empty(t, history.Entries("", StatusFilterAll))
}

func TestHistoryView_IndependentSnapshot(t *testing.T) {
	t.Parallel()

	api := newFakeConnectionAPI()
	api.setName("cand-1", "Aigerim Seitova")
	api.seed("cand-1", "emp-1", models.ConnectionStatusPending, time.Now())

	viewer := NewViewerContext("emp-1", models.UserRoleEmployer)
	store := newTestStore(t, viewer)

	poller := NewPoller(api, viewer, store, testPollInterval, testAlertTTL)
	poller.Start(context.Background())
	defer poller.Stop()

	require.Eventually(t, func() bool {
		return len(poller.Snapshot()) == 1
	}, waitTimeout, waitTick)

	// История еще не обновлялась: ее снапшот не зависит от поллера
	history := NewHistoryView(api, viewer, store, testPollInterval)
	assert.Empty(t, history.Entries("", StatusFilterAll))

	require.NoError(t, history.Refresh(context.Background()))
	assert.Len(t, history.Entries("", StatusFilterAll), 1)
}

func TestHistoryView_StartRefreshesInBackground(t *testing.T) {
	t.Parallel()

	api := newFakeConnectionAPI()
	api.setName("cand-1", "Aigerim Seitova")
	api.seed("cand-1", "emp-1", models.ConnectionStatusAccepted, time.Now())

	viewer := NewViewerContext("emp-1", models.UserRoleEmployer)
	history := NewHistoryView(api, viewer, newTestStore(t, viewer), testPollInterval)

	history.Start(context.Background())
	defer history.Stop()

	require.Eventually(t, func() bool {
		return len(history.Entries("", StatusFilterAll)) == 1
	}, waitTimeout, waitTick)

	// Новая запись подтягивается следующим тиком без ручного Refresh
	api.setName("cand-2", "Daniyar Omarov")
	api.seed("cand-2", "emp-1", models.ConnectionStatusPending, time.Now())

	require.Eventually(t, func() bool {
		return len(history.Entries("", StatusFilterAll)) == 2
	}, waitTimeout, waitTick)
}
