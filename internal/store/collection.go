package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/audit"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record constrains P to be the pointer type of T and a models.Entity.
type Record[T any] interface {
	*T
	models.Entity
}

// Filter narrows a list: Search matches any searchable column as a case-insensitive
// substring, Equals adds column = value conditions.
type Filter struct {
	Search string
	Equals map[string]any
}

// Options describe one entity kind.
type Options[T any] struct {
	Kind   string   // audit entity type, e.g. "menu_item"
	Label  string   // human name used in messages, e.g. "Menu item"
	Search []string // columns matched by Filter.Search
	Order  string   // default ORDER BY
	Title  func(*T) string
}

// Collection is the CRUD surface for one entity table. Every mutation is audited.
type Collection[T any, P Record[T]] struct {
	opts Options[T]
}

// New creates a collection and registers the kind for audit undo.
func New[T any, P Record[T]](opts Options[T]) *Collection[T, P] {
	if opts.Order == "" {
		opts.Order = "created_at DESC"
	}
	audit.RegisterEntity(opts.Kind, func() models.Entity { return P(new(T)) })
	return &Collection[T, P]{opts: opts}
}

func (s *Collection[T, P]) Kind() string  { return s.opts.Kind }
func (s *Collection[T, P]) Label() string { return s.opts.Label }

func (s *Collection[T, P]) title(rec P) string {
	if s.opts.Title != nil {
		return s.opts.Title((*T)(rec))
	}
	return rec.GetID()
}

// likeEscaper makes %, _ and \ in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Query returns a scoped query for the table, applying the filter.
func (s *Collection[T, P]) Query(f Filter) *gorm.DB {
	dbq := database.DB.Model(new(T))

	if term := strings.TrimSpace(f.Search); term != "" && len(s.opts.Search) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		conds := make([]string, 0, len(s.opts.Search))
		args := make([]any, 0, len(s.opts.Search))
		for _, col := range s.opts.Search {
			conds = append(conds, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, pattern)
		}
		dbq = dbq.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	for col, v := range f.Equals {
		dbq = dbq.Where(col+" = ?", v)
	}

	return dbq
}

// List returns the records matching the filter in the kind's default order.
func (s *Collection[T, P]) List(f Filter) ([]T, error) {
	out := make([]T, 0)
	if err := s.Query(f).Order(s.opts.Order).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.opts.Kind, err)
	}
	return out, nil
}

// All returns every record.
func (s *Collection[T, P]) All() ([]T, error) {
	return s.List(Filter{})
}

// Count returns the number of records matching the filter.
func (s *Collection[T, P]) Count(f Filter) (int64, error) {
	var n int64
	err := s.Query(f).Count(&n).Error
	return n, err
}

// Get loads one record by id.
func (s *Collection[T, P]) Get(id string) (P, error) {
	rec := P(new(T))
	if err := database.DB.First(rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Label: s.opts.Label, ID: id}
		}
		return nil, err
	}
	return rec, nil
}

// GetMany loads the records with the given ids, keeping the order of ids and
// silently skipping ids that no longer exist.
func (s *Collection[T, P]) GetMany(ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	var found []T
	if err := database.DB.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]T, len(found))
	for _, rec := range found {
		byID[P(&rec).GetID()] = rec
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Create stores a new record, generating an id when the caller did not supply one.
func (s *Collection[T, P]) Create(actor models.Actor, rec P) error {
	if rec.GetID() == "" {
		rec.SetID(uuid.NewString())
	} else {
		var n int64
		if err := database.DB.Model(new(T)).Where("id = ?", rec.GetID()).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &DuplicateError{Label: s.opts.Label, ID: rec.GetID()}
		}
	}

	if err := database.DB.Create(rec).Error; err != nil {
		return fmt.Errorf("creating %s: %w", s.opts.Kind, err)
	}

	s.log(actor, rec.GetID(), models.AuditActionCreate, fmt.Sprintf("%s created: %s", s.opts.Label, s.title(rec)), nil, rec)
	return nil
}

// Update loads the record, applies mutate and saves it. The id cannot be changed by mutate.
func (s *Collection[T, P]) Update(actor models.Actor, id string, mutate func(P) error) (P, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	before, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	if err := mutate(rec); err != nil {
		return nil, err
	}
	rec.SetID(id)

	if err := database.DB.Save(rec).Error; err != nil {
		return nil, fmt.Errorf("updating %s: %w", s.opts.Kind, err)
	}

	s.log(actor, id, models.AuditActionUpdate, fmt.Sprintf("%s updated: %s", s.opts.Label, s.title(rec)), json.RawMessage(before), rec)
	return rec, nil
}

// Delete removes the record and returns it.
func (s *Collection[T, P]) Delete(actor models.Actor, id string) (P, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := database.DB.Delete(rec).Error; err != nil {
		return nil, fmt.Errorf("deleting %s: %w", s.opts.Kind, err)
	}

	s.log(actor, id, models.AuditActionDelete, fmt.Sprintf("%s deleted: %s", s.opts.Label, s.title(rec)), rec, nil)
	return rec, nil
}

func (s *Collection[T, P]) log(actor models.Actor, id string, action models.AuditAction, desc string, before, after any) {
	err := audit.WriteLog(audit.LogOptions{
		UserID:      actor.UserID,
		UserName:    actor.Name,
		EntityType:  s.opts.Kind,
		EntityID:    id,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	})
	if err != nil {
		slog.Warn("audit log could not be written", "kind", s.opts.Kind, "id", id, "error", err)
	}
}
