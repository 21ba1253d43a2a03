// Package storefront drives the traveller-facing side: browsing the
// published packages, reading a single package by slug, and the home
// page aggregate. Unavailable packages never leave this layer.
package storefront

import (
	"context"
	"log/slog"

	"wisata/internal/api"
	"wisata/internal/catalog"
)

// Listing is any package type that knows whether it may be shown.
type Listing interface {
	Available() bool
}

// PublicService is the slice of a public resource client a browser
// needs. The public clients in the api package satisfy it directly.
type PublicService[T any] interface {
	List(ctx context.Context) (api.Result[[]T], error)
	BySlug(ctx context.Context, slug string) (api.Result[T], error)
}

// Browser exposes one public resource to travellers. Listings marked
// unavailable are filtered out of lists and blocked on detail reads.
type Browser[T Listing] struct {
	svc            PublicService[T]
	unavailableMsg string
	log            *slog.Logger
	coll           catalog.Collection[T]
}

// NewBrowser creates a browser over a public resource service.
func NewBrowser[T Listing](svc PublicService[T], unavailableMsg string, log *slog.Logger) *Browser[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Browser[T]{svc: svc, unavailableMsg: unavailableMsg, log: log}
}

// NewTourBrowser creates the traveller-facing tour browser.
func NewTourBrowser(client *api.Client, log *slog.Logger) *Browser[api.Tour] {
	return NewBrowser[api.Tour](client.PublicTours(), "This tour package is currently unavailable", log)
}

// NewActivityBrowser creates the traveller-facing activity browser.
func NewActivityBrowser(client *api.Client, log *slog.Logger) *Browser[api.Activity] {
	return NewBrowser[api.Activity](client.PublicActivities(), "This activity package is currently unavailable", log)
}

// NewRentalBrowser creates the traveller-facing rental browser.
func NewRentalBrowser(client *api.Client, log *slog.Logger) *Browser[api.Rental] {
	return NewBrowser[api.Rental](client.PublicRentals(), "This rental package is currently unavailable", log)
}

// State returns the current collection snapshot.
func (b *Browser[T]) State() catalog.Snapshot[T] {
	return b.coll.Snapshot()
}

// ClearError drops the recorded error without touching the items.
func (b *Browser[T]) ClearError() {
	b.coll.ClearError()
}

// FetchAvailable reloads the collection, keeping only listings not
// explicitly marked unavailable. Filtering an already filtered list
// changes nothing, so refetches are safe to repeat.
func (b *Browser[T]) FetchAvailable(ctx context.Context) error {
	seq := b.coll.Begin()

	res, err := b.svc.List(ctx)
	if err != nil {
		b.coll.Finish(seq, nil, err.Error(), true)
		return err
	}
	if !res.Success {
		b.coll.Finish(seq, nil, res.Message, true)
		return nil
	}

	b.coll.Finish(seq, FilterAvailable(res.Data), "", false)
	return nil
}

// BySlug reads one listing. An unavailable listing is withheld with the
// resource's fixed message rather than exposed.
func (b *Browser[T]) BySlug(ctx context.Context, slug string) (*T, error) {
	seq := b.coll.Begin()

	res, err := b.svc.BySlug(ctx, slug)
	if err != nil {
		b.coll.Finish(seq, nil, err.Error(), false)
		return nil, err
	}
	if !res.Success {
		b.coll.Finish(seq, nil, res.Message, false)
		return nil, nil
	}
	if !res.Data.Available() {
		b.log.Info("unavailable listing withheld", "slug", slug)
		b.coll.Finish(seq, nil, b.unavailableMsg, false)
		return nil, nil
	}

	b.coll.Finish(seq, nil, "", false)
	record := res.Data
	return &record, nil
}

// FilterAvailable returns the listings that may be shown to travellers.
func FilterAvailable[T Listing](items []T) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.Available() {
			kept = append(kept, item)
		}
	}
	return kept
}
