// Package snapshot moves the whole site content in and out as one JSON document.
// The document is the wire format of the site's bulk sync: one array per collection.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/audit"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/celebrity"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/event"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/member"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/menu"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/order"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/press"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/reservation"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/review"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/social"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/supplier"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/weather"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	auditKind = "snapshot"
	batchSize = 100
)

var ErrEmpty = errors.New("snapshot contains no collections")

// Snapshot holds one array per collection. A nil array means "not part of this snapshot".
type Snapshot struct {
	MenuItems          *[]models.MenuItem          `json:"menuItems,omitempty"`
	Reservations       *[]models.Reservation       `json:"reservations,omitempty"`
	Orders             *[]models.Order             `json:"orders,omitempty"`
	Members            *[]models.Member            `json:"members,omitempty"`
	Events             *[]models.Event             `json:"events,omitempty"`
	Reviews            *[]models.Review            `json:"reviews,omitempty"`
	SocialPosts        *[]models.SocialPost        `json:"socialPosts,omitempty"`
	Celebrities        *[]models.Celebrity         `json:"celebrities,omitempty"`
	Awards             *[]models.Award             `json:"awards,omitempty"`
	PressFeatures      *[]models.PressFeature      `json:"pressFeatures,omitempty"`
	Suppliers          *[]models.Supplier          `json:"suppliers,omitempty"`
	WeatherSuggestions *[]models.WeatherSuggestion `json:"weatherSuggestions,omitempty"`
	GeneratedAt        *time.Time                  `json:"generatedAt,omitempty"`
}

func load[T any, P store.Record[T]](g *errgroup.Group, dst **[]T, col *store.Collection[T, P]) {
	g.Go(func() error {
		recs, err := col.All()
		if err != nil {
			return err
		}
		*dst = &recs
		return nil
	})
}

// Export reads every collection in parallel.
func Export() (*Snapshot, error) {
	var (
		s Snapshot
		g errgroup.Group
	)
	load(&g, &s.MenuItems, menu.Items)
	load(&g, &s.Reservations, reservation.Reservations)
	load(&g, &s.Orders, order.Orders)
	load(&g, &s.Members, member.Members)
	load(&g, &s.Events, event.Events)
	load(&g, &s.Reviews, review.Reviews)
	load(&g, &s.SocialPosts, social.Posts)
	load(&g, &s.Celebrities, celebrity.Celebrities)
	load(&g, &s.Awards, press.Awards)
	load(&g, &s.PressFeatures, press.Features)
	load(&g, &s.Suppliers, supplier.Suppliers)
	load(&g, &s.WeatherSuggestions, weather.Suggestions)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.GeneratedAt = &now
	return &s, nil
}

// prepare assigns missing ids and rejects an array that repeats one.
func prepare[T any, P store.Record[T]](key string, recs *[]T) error {
	if recs == nil {
		return nil
	}
	for i := range *recs {
		rec := P(&(*recs)[i])
		if rec.GetID() == "" {
			rec.SetID(uuid.NewString())
		}
	}
	dups := lo.FindDuplicatesBy(*recs, func(r T) string { return P(&r).GetID() })
	if len(dups) > 0 {
		return web.NewValidationError(key, "unique")
	}
	return nil
}

// replacer carries one transaction through the per-collection steps and stops at the first error.
type replacer struct {
	tx     *gorm.DB
	counts map[string]int
	err    error
}

func replace[T any, P store.Record[T]](r *replacer, key string, recs *[]T) {
	if r.err != nil || recs == nil {
		return
	}
	if err := r.tx.Where("1 = 1").Delete(P(new(T))).Error; err != nil {
		r.err = fmt.Errorf("clearing %s: %w", key, err)
		return
	}
	if len(*recs) > 0 {
		if err := r.tx.CreateInBatches(*recs, batchSize).Error; err != nil {
			r.err = fmt.Errorf("inserting %s: %w", key, err)
			return
		}
	}
	r.counts[key] = len(*recs)
}

// Apply replaces every collection present in s inside one transaction and writes one
// sync audit entry. Collections absent from s are untouched.
func Apply(actor models.Actor, s *Snapshot) (map[string]int, error) {
	if err := errors.Join(
		prepare("menuItems", s.MenuItems),
		prepare("reservations", s.Reservations),
		prepare("orders", s.Orders),
		prepare("members", s.Members),
		prepare("events", s.Events),
		prepare("reviews", s.Reviews),
		prepare("socialPosts", s.SocialPosts),
		prepare("celebrities", s.Celebrities),
		prepare("awards", s.Awards),
		prepare("pressFeatures", s.PressFeatures),
		prepare("suppliers", s.Suppliers),
		prepare("weatherSuggestions", s.WeatherSuggestions),
	); err != nil {
		return nil, mergeValidation(err)
	}

	counts := map[string]int{}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		r := &replacer{tx: tx, counts: counts}
		replace(r, "menuItems", s.MenuItems)
		replace(r, "reservations", s.Reservations)
		replace(r, "orders", s.Orders)
		replace(r, "members", s.Members)
		replace(r, "events", s.Events)
		replace(r, "reviews", s.Reviews)
		replace(r, "socialPosts", s.SocialPosts)
		replace(r, "celebrities", s.Celebrities)
		replace(r, "awards", s.Awards)
		replace(r, "pressFeatures", s.PressFeatures)
		replace(r, "suppliers", s.Suppliers)
		replace(r, "weatherSuggestions", s.WeatherSuggestions)
		if r.err != nil {
			return r.err
		}
		if len(counts) == 0 {
			return ErrEmpty
		}

		return audit.WriteLogTx(tx, audit.LogOptions{
			UserID:      actor.UserID,
			UserName:    actor.Name,
			EntityType:  auditKind,
			Action:      models.AuditActionSync,
			Description: fmt.Sprintf("Synced %d collections", len(counts)),
			After:       counts,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("snapshot applied", "counts", counts, "user", actor.Name)
	return counts, nil
}

// mergeValidation folds the per-array validation errors into one.
func mergeValidation(err error) error {
	fields := map[string]string{}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return err
	}
	for _, e := range joined.Unwrap() {
		var ve *web.ValidationError
		if !errors.As(e, &ve) {
			return e
		}
		for k, v := range ve.Fields {
			fields[k] = v
		}
	}
	return &web.ValidationError{Message: "Validation failed", Fields: fields}
}

// Decode parses a snapshot document.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &s, nil
}
