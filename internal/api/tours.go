package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Tour is one tour package as the upstream returns it.
type Tour struct {
	ID             int64        `json:"id"`
	Slug           string       `json:"slug,omitempty"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Itinerary      string       `json:"itinerary,omitempty"`
	Includes       string       `json:"includes,omitempty"`
	Excludes       string       `json:"excludes,omitempty"`
	PricePerPerson Number       `json:"price_per_person,omitempty"`
	MinPersons     int          `json:"min_persons,omitempty"`
	DurationDays   int          `json:"duration_days,omitempty"`
	IsAvailable    Availability `json:"is_available,omitzero"`
	Images         []string     `json:"images,omitempty"`
}

// Available reports whether the package may be shown to travellers.
func (t Tour) Available() bool {
	return t.IsAvailable.Available()
}

// TourInput is the flat field set for create/update calls.
type TourInput struct {
	Name           string
	Description    string
	Itinerary      string
	Includes       string
	Excludes       string
	PricePerPerson string
	MinPersons     int
	DurationDays   int
	Available      bool
	Images         []Upload
}

func (in TourInput) fields() []formField {
	return []formField{
		{"name", in.Name},
		{"description", in.Description},
		{"itinerary", in.Itinerary},
		{"includes", in.Includes},
		{"excludes", in.Excludes},
		{"price_per_person", in.PricePerPerson},
		{"min_persons", strconv.Itoa(in.MinPersons)},
		{"duration_days", strconv.Itoa(in.DurationDays)},
		{"is_available", strconv.FormatBool(in.Available)},
	}
}

// TourClient covers the admin-scoped tour endpoints. All calls attach
// the bearer token read fresh from the session store.
type TourClient struct {
	c *Client
}

// Tours returns the admin tour client.
func (c *Client) Tours() *TourClient {
	return &TourClient{c: c}
}

// List fetches every tour package, available or not.
func (t *TourClient) List(ctx context.Context) (Result[[]Tour], error) {
	env, err := t.c.get(ctx, "tours.list", "/admin/tours", true, "Failed to fetch tours")
	return decode[[]Tour](env, err)
}

// Get fetches one tour package by ID.
func (t *TourClient) Get(ctx context.Context, id int64) (Result[Tour], error) {
	env, err := t.c.get(ctx, "tours.get", fmt.Sprintf("/admin/tours/detail/%d", id), true, "Failed to fetch tour")
	return decode[Tour](unwrapNested(env), err)
}

// Create adds a new tour package.
func (t *TourClient) Create(ctx context.Context, in TourInput) (Result[Tour], error) {
	env, err := t.c.postForm(ctx, "tours.create", "/admin/tours", in.fields(), in.Images, "Failed to create tour")
	return decode[Tour](unwrapNested(env), err)
}

// Update replaces a tour package. The upstream only accepts multipart
// bodies over POST, so the PUT goes through a _method override.
func (t *TourClient) Update(ctx context.Context, id int64, in TourInput) (Result[Tour], error) {
	fields := append(in.fields(), formField{"_method", "PUT"})
	env, err := t.c.postForm(ctx, "tours.update", fmt.Sprintf("/admin/tours/%d", id), fields, in.Images, "Failed to update tour")
	return decode[Tour](unwrapNested(env), err)
}

// Delete removes a tour package.
func (t *TourClient) Delete(ctx context.Context, id int64) (Result[json.RawMessage], error) {
	env, err := t.c.delete(ctx, "tours.delete", fmt.Sprintf("/admin/tours/%d", id), "Failed to delete tour")
	return decode[json.RawMessage](env, err)
}
