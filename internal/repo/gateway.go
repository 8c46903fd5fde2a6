package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
)

// GatewayOpts describes how one entity type is built, loaded and removed.
type GatewayOpts[E domain.Entity, C any] struct {
	// NotFound is returned by Remove when the id does not exist.
	NotFound error
	// Build turns a create payload into a new entity; it may query tx to resolve associations.
	Build func(tx *gorm.DB, in C) (*E, error)
	// Preload names associations loaded with every read.
	Preload []string
	// Omit is passed to Create, e.g. "Tags.*" to link existing rows without upserting them.
	Omit []string
	// BeforeRemove deletes dependent rows inside the removal transaction.
	BeforeRemove func(tx *gorm.DB, id uint) error
}

// Gateway is the generic CRUD + search base that every repository composes.
type Gateway[E domain.Entity, C any, U domain.Patch] struct {
	db   *gorm.DB
	opts GatewayOpts[E, C]
}

func NewGateway[E domain.Entity, C any, U domain.Patch](db *gorm.DB, opts GatewayOpts[E, C]) *Gateway[E, C, U] {
	if opts.NotFound == nil {
		opts.NotFound = domain.NotFound("record not found")
	}
	return &Gateway[E, C, U]{db: db, opts: opts}
}

// with returns a copy bound to tx so callers can compose several steps atomically.
func (g *Gateway[E, C, U]) with(tx *gorm.DB) *Gateway[E, C, U] {
	return &Gateway[E, C, U]{db: tx, opts: g.opts}
}

func (g *Gateway[E, C, U]) query(tx *gorm.DB) *gorm.DB {
	for _, p := range g.opts.Preload {
		tx = tx.Preload(p, func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	}
	return tx
}

func (g *Gateway[E, C, U]) table() string {
	var zero E
	stmt := &gorm.Statement{DB: g.db}
	if err := stmt.Parse(&zero); err != nil || stmt.Schema == nil {
		return ""
	}
	return stmt.Schema.Table
}

// Get returns nil, nil when no row has the id.
func (g *Gateway[E, C, U]) Get(id uint) (*E, error) {
	var e E
	err := g.query(g.db).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway[E, C, U]) GetMulti() ([]E, error) {
	out := []E{}
	if err := g.query(g.db).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Create persists the built entity and its associations in one transaction and
// returns the stored row as read back.
func (g *Gateway[E, C, U]) Create(in C) (*E, error) {
	var out *E
	err := g.db.Transaction(func(tx *gorm.DB) error {
		e, err := g.opts.Build(tx, in)
		if err != nil {
			return err
		}
		q := tx
		if len(g.opts.Omit) > 0 {
			q = q.Omit(g.opts.Omit...)
		}
		if err := q.Create(e).Error; err != nil {
			return err
		}
		out, err = g.with(tx).Get((*e).PrimaryKey())
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes only the columns present in in.Changes(). With nothing to change
// existing is returned as is.
func (g *Gateway[E, C, U]) Update(existing *E, in U) (*E, error) {
	return g.apply(existing, in.Changes())
}

func (g *Gateway[E, C, U]) apply(existing *E, changes map[string]any) (*E, error) {
	if len(changes) == 0 {
		return existing, nil
	}
	if err := g.db.Model(existing).Updates(changes).Error; err != nil {
		return nil, err
	}
	out, err := g.Get((*existing).PrimaryKey())
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, g.opts.NotFound
	}
	return out, nil
}

// Remove hard-deletes the row (after BeforeRemove) and returns it as it was.
func (g *Gateway[E, C, U]) Remove(id uint) (*E, error) {
	var out *E
	err := g.db.Transaction(func(tx *gorm.DB) error {
		e, err := g.with(tx).Get(id)
		if err != nil {
			return err
		}
		if e == nil {
			return g.opts.NotFound
		}
		if g.opts.BeforeRemove != nil {
			if err := g.opts.BeforeRemove(tx, id); err != nil {
				return err
			}
		}
		if err := tx.Delete(new(E), id).Error; err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search matches keyword case-insensitively as a substring of any searchable column.
func (g *Gateway[E, C, U]) Search(keyword string) ([]E, error) {
	var zero E
	fields := zero.SearchFields()
	out := []E{}
	if len(fields) == 0 {
		return out, nil
	}

	table := g.table()
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	conds := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		col := f
		if table != "" {
			col = table + "." + f
		}
		conds[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		args[i] = pattern
	}
	err := g.query(g.db).
		Where(strings.Join(conds, " OR "), args...).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }
