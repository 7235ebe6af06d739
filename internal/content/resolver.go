package content

import (
	"context"
	"encoding/json"
	"time"

	"lawfirm-site/internal/common/errors"
	"lawfirm-site/internal/common/logger"
	"lawfirm-site/internal/common/metrics"
)

// Site maps every section key to its resolved document. A Site is built
// per request and never shared.
type Site map[Key]Document

func (s Site) Hero() *Hero                   { return s[KeyHero].(*Hero) }
func (s Site) Credentials() *Credentials     { return s[KeyCredentials].(*Credentials) }
func (s Site) PracticeAreas() *PracticeAreas { return s[KeyPracticeAreas].(*PracticeAreas) }
func (s Site) About() *About                 { return s[KeyAbout].(*About) }
func (s Site) Contact() *Contact             { return s[KeyContact].(*Contact) }
func (s Site) Footer() *Footer               { return s[KeyFooter].(*Footer) }
func (s Site) SiteSettings() *SiteSettings   { return s[KeySiteSettings].(*SiteSettings) }

// Section is the admin view of one key.
type Section struct {
	Key       Key        `json:"key"`
	Label     string     `json:"label"`
	Document  Document   `json:"document"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy string     `json:"updatedBy,omitempty"`
	IsDefault bool       `json:"isDefault"`
}

const (
	fallbackMissing    = "missing"
	fallbackStoreError = "store_error"
	fallbackInvalid    = "invalid"
)

// Resolver prefers stored documents and falls back to compiled-in defaults.
// Reads never fail.
type Resolver struct {
	store  Store
	logger logger.Logger
	now    func() time.Time
}

func NewResolver(store Store, log logger.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "content-resolver"}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ResolveAll returns a Site covering every key.
func (r *Resolver) ResolveAll(ctx context.Context) Site {
	site := make(Site, len(keys))
	for _, s := range r.Sections(ctx) {
		site[s.Key] = s.Document
	}
	return site
}

// ResolveOne resolves a single key. The caller must pass a known key.
func (r *Resolver) ResolveOne(ctx context.Context, key Key) Document {
	return r.Section(ctx, key).Document
}

// Sections resolves every key with its row metadata, in display order.
func (r *Resolver) Sections(ctx context.Context) []Section {
	rows, err := r.store.GetAll(ctx)
	if err != nil {
		r.logger.Warn("content store unavailable, serving defaults", map[string]interface{}{
			"error": err,
		})
		out := make([]Section, 0, len(keys))
		for _, k := range keys {
			out = append(out, r.fallback(k, fallbackStoreError))
		}
		return out
	}

	byKey := make(map[Key]Row, len(rows))
	for _, row := range rows {
		byKey[row.Key] = row
	}

	out := make([]Section, 0, len(keys))
	for _, k := range keys {
		row, ok := byKey[k]
		if !ok {
			out = append(out, r.fallback(k, fallbackMissing))
			continue
		}
		out = append(out, r.fromRow(row))
	}
	return out
}

// Section resolves one key with its row metadata.
func (r *Resolver) Section(ctx context.Context, key Key) Section {
	row, err := r.store.Get(ctx, key)
	if err != nil {
		reason := fallbackStoreError
		if errors.HasCode(err, errors.ErrCodeSectionNotSeeded) {
			reason = fallbackMissing
		} else {
			r.logger.Warn("content store unavailable, serving default", map[string]interface{}{
				"section": string(key),
				"error":   err,
			})
		}
		return r.fallback(key, reason)
	}
	return r.fromRow(*row)
}

func (r *Resolver) fromRow(row Row) Section {
	doc, err := Decode(row.Key, row.Content)
	if err != nil {
		r.logger.Warn("stored section does not match schema, serving default", map[string]interface{}{
			"section": string(row.Key),
			"error":   err,
		})
		return r.fallback(row.Key, fallbackInvalid)
	}
	updatedAt := row.UpdatedAt
	return Section{
		Key:       row.Key,
		Label:     row.Key.Label(),
		Document:  doc,
		UpdatedAt: &updatedAt,
		UpdatedBy: row.UpdatedBy,
	}
}

func (r *Resolver) fallback(key Key, reason string) Section {
	metrics.ContentFallbacks.WithLabelValues(string(key), reason).Inc()
	return Section{
		Key:       key,
		Label:     key.Label(),
		Document:  Default(key),
		IsDefault: true,
	}
}

// Upsert validates raw against key's schema and replaces the stored
// document wholesale. Concurrent saves of the same key are last-writer-wins.
func (r *Resolver) Upsert(ctx context.Context, key Key, raw json.RawMessage, editorID string) (*Section, error) {
	if _, ok := ParseKey(string(key)); !ok {
		return nil, errors.NewUnknownSectionError(string(key))
	}

	doc, err := Decode(key, raw)
	if err != nil {
		metrics.ContentSaves.WithLabelValues(string(key), "invalid").Inc()
		return nil, err
	}
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	row := Row{
		Key:       key,
		Content:   normalized,
		UpdatedAt: r.now(),
		UpdatedBy: editorID,
	}
	if err := r.store.Update(ctx, row); err != nil {
		metrics.ContentSaves.WithLabelValues(string(key), "failed").Inc()
		r.logger.Error("section save failed", map[string]interface{}{
			"section":  string(key),
			"editorId": editorID,
			"error":    err,
		})
		if errors.IsStoreError(err) {
			return nil, err
		}
		return nil, errors.NewStoreWriteRejectedError(string(key), err)
	}

	metrics.ContentSaves.WithLabelValues(string(key), "saved").Inc()
	r.logger.Info("section saved", map[string]interface{}{
		"section":  string(key),
		"editorId": editorID,
	})
	return &Section{
		Key:       key,
		Label:     key.Label(),
		Document:  doc,
		UpdatedAt: &row.UpdatedAt,
		UpdatedBy: editorID,
	}, nil
}
