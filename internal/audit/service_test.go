package audit_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/audit"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var awards = store.New[models.Award, *models.Award](store.Options[models.Award]{
	Kind:  "award",
	Label: "Award",
	Title: func(a *models.Award) string { return a.Title },
})

var owner = models.Actor{UserID: "owner", Name: "Owner"}

func lastLog(t *testing.T, id string) models.AuditLog {
	t.Helper()
	var entry models.AuditLog
	require.NoError(t, database.DB.Where("entity_id = ? AND action <> ?", id, models.AuditActionUndo).
		Order("id DESC").First(&entry).Error)
	return entry
}

func TestUndoLog(t *testing.T) {
	testutil.SetupDB(t)

	t.Run("undo create deletes the record", func(t *testing.T) {
		rec := &models.Award{Title: "Two Hats", Organization: "Good Food Guide", Year: 2025}
		require.NoError(t, awards.Create(owner, rec))

		require.NoError(t, audit.UndoLog(lastLog(t, rec.ID).ID, owner.UserID, owner.Name))

		_, err := awards.Get(rec.ID)
		assert.Error(t, err)
	})

	t.Run("undo update restores the before data", func(t *testing.T) {
		rec := &models.Award{Base: models.Base{ID: "award-u"}, Title: "Best Bistro", Year: 2023}
		require.NoError(t, awards.Create(owner, rec))
		_, err := awards.Update(owner, rec.ID, func(a *models.Award) error {
			a.Title = "Best Bistro in Victoria"
			return nil
		})
		require.NoError(t, err)

		require.NoError(t, audit.UndoLog(lastLog(t, rec.ID).ID, owner.UserID, owner.Name))

		got, err := awards.Get(rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "Best Bistro", got.Title)
	})

	t.Run("undo delete recreates the record with the same id", func(t *testing.T) {
		rec := &models.Award{Base: models.Base{ID: "award-d"}, Title: "Wine List of the Year", Year: 2024}
		require.NoError(t, awards.Create(owner, rec))
		_, err := awards.Delete(owner, rec.ID)
		require.NoError(t, err)

		entry := lastLog(t, rec.ID)
		require.NoError(t, audit.UndoLog(entry.ID, owner.UserID, owner.Name))

		got, err := awards.Get(rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "Wine List of the Year", got.Title)

		var undone models.AuditLog
		require.NoError(t, database.DB.First(&undone, entry.ID).Error)
		assert.True(t, undone.IsUndone)
		require.NotNil(t, undone.UndoneBy)
		assert.Equal(t, "owner", *undone.UndoneBy)

		var undoEntries int64
		require.NoError(t, database.DB.Model(&models.AuditLog{}).
			Where("entity_id = ? AND action = ?", rec.ID, models.AuditActionUndo).Count(&undoEntries).Error)
		assert.Equal(t, int64(1), undoEntries)

		t.Run("twice is rejected", func(t *testing.T) {
			assert.ErrorIs(t, audit.UndoLog(entry.ID, owner.UserID, owner.Name), audit.ErrAlreadyUndone)
		})
	})

	t.Run("undo delete refuses an id that was reused", func(t *testing.T) {
		rec := &models.Award{Base: models.Base{ID: "award-r"}, Title: "Original", Year: 2022}
		require.NoError(t, awards.Create(owner, rec))
		_, err := awards.Delete(owner, rec.ID)
		require.NoError(t, err)
		entry := lastLog(t, rec.ID)

		require.NoError(t, awards.Create(owner, &models.Award{Base: models.Base{ID: "award-r"}, Title: "Replacement", Year: 2025}))

		assert.ErrorIs(t, audit.UndoLog(entry.ID, owner.UserID, owner.Name), audit.ErrIDTaken)

		got, err := awards.Get(rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "Replacement", got.Title)

		var still models.AuditLog
		require.NoError(t, database.DB.First(&still, entry.ID).Error)
		assert.False(t, still.IsUndone)
	})

	t.Run("unknown log", func(t *testing.T) {
		assert.ErrorIs(t, audit.UndoLog(999999, owner.UserID, owner.Name), audit.ErrLogNotFound)
	})

	t.Run("sync entries cannot be undone", func(t *testing.T) {
		require.NoError(t, audit.WriteLog(audit.LogOptions{
			UserID: owner.UserID, UserName: owner.Name, EntityType: "award", Action: models.AuditActionSync,
		}))
		var entry models.AuditLog
		require.NoError(t, database.DB.Where("action = ?", models.AuditActionSync).First(&entry).Error)
		assert.ErrorIs(t, audit.UndoLog(entry.ID, owner.UserID, owner.Name), audit.ErrNotUndoable)
	})

	t.Run("unregistered kinds are rejected", func(t *testing.T) {
		require.NoError(t, audit.WriteLog(audit.LogOptions{EntityType: "branch", EntityID: "b-1", Action: models.AuditActionDelete}))
		var entry models.AuditLog
		require.NoError(t, database.DB.Where("entity_type = ?", "branch").First(&entry).Error)
		assert.ErrorIs(t, audit.UndoLog(entry.ID, owner.UserID, owner.Name), audit.ErrUnknownEntity)
	})
}

func TestHandlers(t *testing.T) {
	testutil.SetupDB(t)
	_, token := testutil.CreateUser(t, models.RoleAdmin)

	app := testutil.NewApp()
	app.Get("/audit-logs", testutil.Protected(), audit.ListAuditLogsHandler())
	app.Post("/audit-logs/:id/undo", testutil.Protected(), audit.UndoAuditLogHandler())

	for i, title := range []string{"A", "B", "C"} {
		rec := &models.Award{Base: models.Base{ID: "award-" + strconv.Itoa(i)}, Title: title, Year: 2020 + i}
		require.NoError(t, awards.Create(owner, rec))
	}

	t.Run("lists newest first with filters", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodGet, "/audit-logs?entityType=award&limit=2", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var logs []models.AuditLog
		testutil.Decode(t, resp, &logs)
		require.Len(t, logs, 2)
		assert.Equal(t, "award-2", logs[0].EntityID)
		assert.Equal(t, "award-1", logs[1].EntityID)
	})

	t.Run("rejects a bad limit", func(t *testing.T) {
		resp := testutil.Do(t, app, http.MethodGet, "/audit-logs?limit=-1", nil, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("undo over http", func(t *testing.T) {
		entry := lastLog(t, "award-0")
		path := "/audit-logs/" + strconv.FormatUint(uint64(entry.ID), 10) + "/undo"

		resp := testutil.Do(t, app, http.MethodPost, path, nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = testutil.Do(t, app, http.MethodPost, path, nil, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = testutil.Do(t, app, http.MethodPost, "/audit-logs/abc/undo", nil, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("undo of a delete whose id was reused is a conflict", func(t *testing.T) {
		_, err := awards.Delete(owner, "award-1")
		require.NoError(t, err)
		entry := lastLog(t, "award-1")
		require.NoError(t, awards.Create(owner, &models.Award{Base: models.Base{ID: "award-1"}, Title: "B2", Year: 2026}))

		path := "/audit-logs/" + strconv.FormatUint(uint64(entry.ID), 10) + "/undo"
		resp := testutil.Do(t, app, http.MethodPost, path, nil, token)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
