package connect

import (
	"testing"
	"time"

	"careconnect_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, viewer ViewerContext) *SuppressionStore {
	t.Helper()
	store, err := NewSuppressionStore(t.TempDir(), viewer)
	require.NoError(t, err)
	return store
}

func TestSuppressionStore_HideIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, NewViewerContext("cand-1", models.UserRoleCandidate))

	require.NoError(t, store.Hide("notif-1"))
	require.NoError(t, store.Hide("notif-1"))

	assert.Equal(t, 1, store.Len(), "Повторное скрытие того же id не меняет множество")
	assert.True(t, store.Contains("notif-1"))
}

func TestSuppressionStore_FilterAppliedEveryTime(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, NewViewerContext("emp-1", models.UserRoleEmployer))
	require.NoError(t, store.Hide("hidden"))

	notifications := []Notification{
		{ID: "visible-1", Status: "pending", CreatedAt: time.Now()},
		{ID: "hidden", Status: "rejected", CreatedAt: time.Now()},
		{ID: "visible-2", Status: "accepted", CreatedAt: time.Now()},
	}

	// Фильтр применяется на каждом fetch: запись на сервере живет вечно
	for i := 0; i < 3; i++ {
		visible := store.Filter(notifications)
		assert.Len(t, visible, 2)
		for _, n := range visible {
			assert.NotEqual(t, "hidden", n.ID)
		}
	}

	// Видимых = всего минус скрытых
	assert.Equal(t, len(notifications)-store.Len(), len(store.Filter(notifications)))
}

func TestSuppressionStore_SurvivesRestart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	viewer := NewViewerContext("cand-1", models.UserRoleCandidate)

	store, err := NewSuppressionStore(dir, viewer)
	require.NoError(t, err)
	require.NoError(t, store.Hide("notif-1"))
	require.NoError(t, store.Hide("notif-2"))

	// Симулируем перезапуск процесса: новое хранилище из того же каталога
	reloaded, err := NewSuppressionStore(dir, viewer)
	require.NoError(t, err)

	assert.True(t, reloaded.Contains("notif-1"))
	assert.True(t, reloaded.Contains("notif-2"))
	assert.Equal(t, 2, reloaded.Len())
}

func TestSuppressionStore_ScopedPerRole(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// Одна запись о связи дает два разных уведомления, по одному на
	// сторону: ключи хранилища должны быть раздельными
	candidateStore, err := NewSuppressionStore(dir, NewViewerContext("user-1", models.UserRoleCandidate))
	require.NoError(t, err)
	employerStore, err := NewSuppressionStore(dir, NewViewerContext("user-1", models.UserRoleEmployer))
	require.NoError(t, err)

	require.NoError(t, candidateStore.Hide("notif-1"))

	assert.True(t, candidateStore.Contains("notif-1"))
	assert.False(t, employerStore.Contains("notif-1"), "Скрытие на кандидатской стороне не трогает работодательскую")
}
