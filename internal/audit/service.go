package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"

	"gorm.io/gorm"
)

var (
	ErrLogNotFound   = errors.New("audit log not found")
	ErrAlreadyUndone = errors.New("this change has already been undone")
	ErrNotUndoable   = errors.New("this action cannot be undone")
	ErrUnknownEntity = errors.New("unknown entity type")
	ErrIDTaken       = errors.New("another record now uses this id")
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func() models.Entity{}
)

// RegisterEntity makes an entity kind undoable: factory returns an empty record of that kind.
func RegisterEntity(kind string, factory func() models.Entity) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = factory
}

func factoryFor(kind string) (func() models.Entity, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[kind]
	return f, ok
}

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func marshalSnapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func newEntry(opts LogOptions) models.AuditLog {
	return models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: truncate(opts.Description, 255),
		BeforeData:  marshalSnapshot(opts.Before),
		AfterData:   marshalSnapshot(opts.After),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// WriteLog records one change.
func WriteLog(opts LogOptions) error {
	return WriteLogTx(database.DB, opts)
}

// WriteLogTx records one change inside an open transaction.
func WriteLogTx(tx *gorm.DB, opts LogOptions) error {
	entry := newEntry(opts)
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}

// UndoLog reverses the change recorded by an audit entry and records the undo.
func UndoLog(logID uint, userID, userName string) error {
	var entry models.AuditLog
	if err := database.DB.First(&entry, "id = ?", logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLogNotFound
		}
		return err
	}

	if entry.IsUndone {
		return ErrAlreadyUndone
	}

	factory, ok := factoryFor(entry.EntityType)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entry.EntityType)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		switch entry.Action {
		case models.AuditActionCreate:
			if err := tx.Delete(factory(), "id = ?", entry.EntityID).Error; err != nil {
				return fmt.Errorf("deleting record: %w", err)
			}

		case models.AuditActionUpdate:
			rec, err := decode(factory, entry.BeforeData, entry.EntityID)
			if err != nil {
				return err
			}
			if err := tx.Save(rec).Error; err != nil {
				return fmt.Errorf("restoring record: %w", err)
			}

		case models.AuditActionDelete:
			rec, err := decode(factory, entry.BeforeData, entry.EntityID)
			if err != nil {
				return err
			}
			var taken int64
			if err := tx.Model(factory()).Where("id = ?", entry.EntityID).Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return fmt.Errorf("%w: %s", ErrIDTaken, entry.EntityID)
			}
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("recreating record: %w", err)
			}

		default:
			return ErrNotUndoable
		}

		now := time.Now()
		if err := tx.Model(&models.AuditLog{}).Where("id = ?", entry.ID).Updates(map[string]any{
			"is_undone": true,
			"undone_by": userID,
			"undone_at": now,
		}).Error; err != nil {
			return fmt.Errorf("marking log undone: %w", err)
		}

		return WriteLogTx(tx, LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entry.EntityType,
			EntityID:    entry.EntityID,
			Action:      models.AuditActionUndo,
			Description: "Undone: " + entry.Description,
			Before:      json.RawMessage(entry.AfterData),
			After:       json.RawMessage(entry.BeforeData),
		})
	})
}

func decode(factory func() models.Entity, data, id string) (models.Entity, error) {
	if data == "" || data == "null" {
		return nil, fmt.Errorf("%w: no snapshot stored", ErrNotUndoable)
	}
	rec := factory()
	if err := json.Unmarshal([]byte(data), rec); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	rec.SetID(id)
	return rec, nil
}
