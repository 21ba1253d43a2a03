// Package catalog drives the admin-side resource collections: the
// package lists the console works on, with loading and error state
// managed alongside the upstream calls.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	"wisata/internal/api"
)

// Service is the slice of an upstream resource client a controller
// needs. The admin clients in the api package satisfy it directly.
type Service[T any, In any] interface {
	List(ctx context.Context) (api.Result[[]T], error)
	Get(ctx context.Context, id int64) (api.Result[T], error)
	Create(ctx context.Context, in In) (api.Result[T], error)
	Update(ctx context.Context, id int64, in In) (api.Result[T], error)
	Delete(ctx context.Context, id int64) (api.Result[json.RawMessage], error)
}

// Controller owns one resource collection. Designed upstream failures
// land in the collection's error state; returned errors are reserved
// for contract violations.
type Controller[T any, In any] struct {
	svc  Service[T, In]
	log  *slog.Logger
	name string
	coll Collection[T]
}

// NewController creates a controller over the given resource service.
func NewController[T any, In any](name string, svc Service[T, In], log *slog.Logger) *Controller[T, In] {
	if log == nil {
		log = slog.Default()
	}
	return &Controller[T, In]{svc: svc, log: log, name: name}
}

// NewTours creates the tour package controller.
func NewTours(client *api.Client, log *slog.Logger) *Controller[api.Tour, api.TourInput] {
	return NewController[api.Tour, api.TourInput]("tours", client.Tours(), log)
}

// NewActivities creates the activity package controller.
func NewActivities(client *api.Client, log *slog.Logger) *Controller[api.Activity, api.ActivityInput] {
	return NewController[api.Activity, api.ActivityInput]("activities", client.Activities(), log)
}

// NewRentals creates the rental package controller.
func NewRentals(client *api.Client, log *slog.Logger) *Controller[api.Rental, api.RentalInput] {
	return NewController[api.Rental, api.RentalInput]("rentals", client.Rentals(), log)
}

// State returns the current collection snapshot.
func (c *Controller[T, In]) State() Snapshot[T] {
	return c.coll.Snapshot()
}

// ClearError drops the recorded error without touching the items.
func (c *Controller[T, In]) ClearError() {
	c.coll.ClearError()
}

// Fetch reloads the collection. A failed fetch empties the items so a
// stale list is never shown against an error. When fetches overlap, the
// last one issued wins regardless of arrival order.
func (c *Controller[T, In]) Fetch(ctx context.Context) error {
	seq := c.coll.Begin()

	res, err := c.svc.List(ctx)
	if err != nil {
		c.coll.Finish(seq, nil, err.Error(), true)
		return err
	}
	if !res.Success {
		c.log.Warn("list fetch failed", "resource", c.name, "message", res.Message)
		c.coll.Finish(seq, nil, res.Message, true)
		return nil
	}

	items := res.Data
	if items == nil {
		items = []T{}
	}
	c.coll.Finish(seq, items, "", false)
	return nil
}

// FetchByID loads one record without touching the list. A failure sets
// the error state and yields nil.
func (c *Controller[T, In]) FetchByID(ctx context.Context, id int64) (*T, error) {
	seq := c.coll.Begin()

	res, err := c.svc.Get(ctx, id)
	if err != nil {
		c.coll.Finish(seq, nil, err.Error(), false)
		return nil, err
	}
	if !res.Success {
		c.coll.Finish(seq, nil, res.Message, false)
		return nil, nil
	}

	c.coll.Finish(seq, nil, "", false)
	record := res.Data
	return &record, nil
}

// Create adds a record and, on success, reloads the list so the
// collection reflects the upstream's view of the new record.
func (c *Controller[T, In]) Create(ctx context.Context, in In) (*T, error) {
	seq := c.coll.Begin()

	res, err := c.svc.Create(ctx, in)
	if err != nil {
		c.coll.Finish(seq, nil, err.Error(), false)
		return nil, err
	}
	if !res.Success {
		c.coll.Finish(seq, nil, res.Message, false)
		return nil, nil
	}

	c.coll.Finish(seq, nil, "", false)
	if ferr := c.Fetch(ctx); ferr != nil {
		return nil, ferr
	}
	record := res.Data
	return &record, nil
}

// Update replaces a record and, on success, reloads the list.
func (c *Controller[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	seq := c.coll.Begin()

	res, err := c.svc.Update(ctx, id, in)
	if err != nil {
		c.coll.Finish(seq, nil, err.Error(), false)
		return nil, err
	}
	if !res.Success {
		c.coll.Finish(seq, nil, res.Message, false)
		return nil, nil
	}

	c.coll.Finish(seq, nil, "", false)
	if ferr := c.Fetch(ctx); ferr != nil {
		return nil, ferr
	}
	record := res.Data
	return &record, nil
}

// Delete removes a record and, on success, reloads the list exactly
// once. It reports whether the deletion went through.
func (c *Controller[T, In]) Delete(ctx context.Context, id int64) (bool, error) {
	seq := c.coll.Begin()

	res, err := c.svc.Delete(ctx, id)
	if err != nil {
		c.coll.Finish(seq, nil, err.Error(), false)
		return false, err
	}
	if !res.Success {
		c.coll.Finish(seq, nil, res.Message, false)
		return false, nil
	}

	c.coll.Finish(seq, nil, "", false)
	if ferr := c.Fetch(ctx); ferr != nil {
		return false, ferr
	}
	return true, nil
}
