package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Activity is one activity package as the upstream returns it.
type Activity struct {
	ID             int64        `json:"id"`
	Slug           string       `json:"slug,omitempty"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Itinerary      string       `json:"itinerary,omitempty"`
	Includes       string       `json:"includes,omitempty"`
	Excludes       string       `json:"excludes,omitempty"`
	PricePerPerson Number       `json:"price_per_person,omitempty"`
	MinPersons     int          `json:"min_persons,omitempty"`
	DurationHours  int          `json:"duration_hours,omitempty"`
	IsAvailable    Availability `json:"is_available,omitzero"`
	Images         []string     `json:"images,omitempty"`
}

// Available reports whether the package may be shown to travellers.
func (a Activity) Available() bool {
	return a.IsAvailable.Available()
}

// ActivityInput is the flat field set for create/update calls.
type ActivityInput struct {
	Name           string
	Description    string
	Itinerary      string
	Includes       string
	Excludes       string
	PricePerPerson string
	MinPersons     int
	DurationHours  int
	Available      bool
	Images         []Upload
}

func (in ActivityInput) fields() []formField {
	return []formField{
		{"name", in.Name},
		{"description", in.Description},
		{"itinerary", in.Itinerary},
		{"includes", in.Includes},
		{"excludes", in.Excludes},
		{"price_per_person", in.PricePerPerson},
		{"min_persons", strconv.Itoa(in.MinPersons)},
		{"duration_hours", strconv.Itoa(in.DurationHours)},
		{"is_available", strconv.FormatBool(in.Available)},
	}
}

// ActivityClient covers the admin-scoped activity endpoints.
type ActivityClient struct {
	c *Client
}

// Activities returns the admin activity client.
func (c *Client) Activities() *ActivityClient {
	return &ActivityClient{c: c}
}

// List fetches every activity package, available or not.
func (a *ActivityClient) List(ctx context.Context) (Result[[]Activity], error) {
	env, err := a.c.get(ctx, "activities.list", "/admin/activities", true, "Failed to fetch activities")
	return decode[[]Activity](env, err)
}

// Get fetches one activity package by ID.
func (a *ActivityClient) Get(ctx context.Context, id int64) (Result[Activity], error) {
	env, err := a.c.get(ctx, "activities.get", fmt.Sprintf("/admin/activities/detail/%d", id), true, "Failed to fetch activity")
	return decode[Activity](unwrapNested(env), err)
}

// Create adds a new activity package.
func (a *ActivityClient) Create(ctx context.Context, in ActivityInput) (Result[Activity], error) {
	env, err := a.c.postForm(ctx, "activities.create", "/admin/activities", in.fields(), in.Images, "Failed to create activity")
	return decode[Activity](unwrapNested(env), err)
}

// Update replaces an activity package via the multipart _method override.
func (a *ActivityClient) Update(ctx context.Context, id int64, in ActivityInput) (Result[Activity], error) {
	fields := append(in.fields(), formField{"_method", "PUT"})
	env, err := a.c.postForm(ctx, "activities.update", fmt.Sprintf("/admin/activities/%d", id), fields, in.Images, "Failed to update activity")
	return decode[Activity](unwrapNested(env), err)
}

// Delete removes an activity package.
func (a *ActivityClient) Delete(ctx context.Context, id int64) (Result[json.RawMessage], error) {
	env, err := a.c.delete(ctx, "activities.delete", fmt.Sprintf("/admin/activities/%d", id), "Failed to delete activity")
	return decode[json.RawMessage](env, err)
}
