// Package entities flattens and enriches raw business records from the
// recommendation API into the shape the UI consumes.
package entities

import (
	"sort"

	"github.com/streetwise-app/backend/internal/model/entity"
)

// Normalize flattens raw records (both the flat and nested "businesses"
// shapes), resolves summaries, deduplicates by identity key, attaches mock
// slots to reservable entities, and returns the full list sorted by rating
// descending. Callers apply their own subset selection.
func Normalize(raw []entity.RawRecord, slots *SlotCache) []entity.Record {
	flattened := make([]entity.Record, 0, len(raw))

	for i := range raw {
		container := &raw[i]
		sources := container.Businesses
		if len(sources) == 0 {
			sources = []entity.RawRecord{*container}
		}

		for j := range sources {
			rec := build(&sources[j], container)
			if rec.Reservable() && slots != nil {
				rec.MockSlots = slots.For(rec.Key())
			}
			flattened = append(flattened, rec)
		}
	}

	// First occurrence wins entirely; later duplicates are dropped, not merged.
	deduped := make([]entity.Record, 0, len(flattened))
	seen := make(map[string]struct{}, len(flattened))
	for _, item := range flattened {
		key := item.Key()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, item)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return ratingOf(deduped[i]) > ratingOf(deduped[j])
	})

	return deduped
}

func ratingOf(r entity.Record) float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// build maps one business onto a Record, falling back to container-level
// fields where the business-level ones are absent.
func build(source, container *entity.RawRecord) entity.Record {
	rec := entity.Record{
		ID:             source.ID,
		Name:           source.Name,
		URL:            source.URL,
		Phone:          source.Phone,
		Rating:         source.Rating,
		Price:          source.Price,
		Distance:       source.Distance,
		Location:       source.Location,
		Coordinates:    source.Coordinates,
		Categories:     source.Categories,
		ReservationURL: source.ReservationURL,
		Actions:        source.Actions,
		Summary:        resolveSummary(source, container),
	}
	if rec.Categories == nil {
		rec.Categories = container.Categories
	}
	if rec.ReservationURL == "" {
		rec.ReservationURL = container.ReservationURL
	}
	if rec.Actions == nil {
		rec.Actions = container.Actions
	}
	return rec
}

// resolveSummary applies the strict precedence: business contextual-info
// summary, business short summary, business attribute summary, then the
// container-level contextual-info and short summaries.
func resolveSummary(source, container *entity.RawRecord) string {
	if source.ContextualInfo != nil && source.ContextualInfo.Summary != "" {
		return source.ContextualInfo.Summary
	}
	if source.Summaries != nil && source.Summaries.Short != "" {
		return source.Summaries.Short
	}
	if source.Attributes != nil && source.Attributes.BizSummary != nil && source.Attributes.BizSummary.Summary != "" {
		return source.Attributes.BizSummary.Summary
	}
	if container.ContextualInfo != nil && container.ContextualInfo.Summary != "" {
		return container.ContextualInfo.Summary
	}
	if container.Summaries != nil && container.Summaries.Short != "" {
		return container.Summaries.Short
	}
	return ""
}
