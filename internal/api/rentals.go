package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Rental is one vehicle rental package as the upstream returns it.
type Rental struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug,omitempty"`
	Type        string       `json:"type"`
	Brand       string       `json:"brand,omitempty"`
	Model       string       `json:"model,omitempty"`
	PlateNumber string       `json:"plate_number,omitempty"`
	Description string       `json:"description,omitempty"`
	Includes    string       `json:"includes,omitempty"`
	Excludes    string       `json:"excludes,omitempty"`
	PricePerDay Number       `json:"price_per_day,omitempty"`
	IsAvailable Availability `json:"is_available,omitzero"`
	Images      []string     `json:"images,omitempty"`
}

// Available reports whether the vehicle may be shown to travellers.
func (r Rental) Available() bool {
	return r.IsAvailable.Available()
}

// RentalInput is the flat field set for create/update calls.
type RentalInput struct {
	Type        string
	Brand       string
	Model       string
	PlateNumber string
	Description string
	Includes    string
	Excludes    string
	PricePerDay string
	Available   bool
	Images      []Upload
}

func (in RentalInput) fields() []formField {
	return []formField{
		{"type", in.Type},
		{"brand", in.Brand},
		{"model", in.Model},
		{"plate_number", in.PlateNumber},
		{"description", in.Description},
		{"includes", in.Includes},
		{"excludes", in.Excludes},
		{"price_per_day", in.PricePerDay},
		{"is_available", strconv.FormatBool(in.Available)},
	}
}

// RentalClient covers the admin-scoped rental endpoints.
type RentalClient struct {
	c *Client
}

// Rentals returns the admin rental client.
func (c *Client) Rentals() *RentalClient {
	return &RentalClient{c: c}
}

// List fetches every rental package, available or not.
func (r *RentalClient) List(ctx context.Context) (Result[[]Rental], error) {
	env, err := r.c.get(ctx, "rentals.list", "/admin/rentals", true, "Failed to fetch rentals")
	return decode[[]Rental](env, err)
}

// Get fetches one rental package by ID.
func (r *RentalClient) Get(ctx context.Context, id int64) (Result[Rental], error) {
	env, err := r.c.get(ctx, "rentals.get", fmt.Sprintf("/admin/rentals/detail/%d", id), true, "Failed to fetch rental")
	return decode[Rental](unwrapNested(env), err)
}

// Create adds a new rental package.
func (r *RentalClient) Create(ctx context.Context, in RentalInput) (Result[Rental], error) {
	env, err := r.c.postForm(ctx, "rentals.create", "/admin/rentals", in.fields(), in.Images, "Failed to create rental")
	return decode[Rental](unwrapNested(env), err)
}

// Update replaces a rental package via the multipart _method override.
func (r *RentalClient) Update(ctx context.Context, id int64, in RentalInput) (Result[Rental], error) {
	fields := append(in.fields(), formField{"_method", "PUT"})
	env, err := r.c.postForm(ctx, "rentals.update", fmt.Sprintf("/admin/rentals/%d", id), fields, in.Images, "Failed to update rental")
	return decode[Rental](unwrapNested(env), err)
}

// Delete removes a rental package.
func (r *RentalClient) Delete(ctx context.Context, id int64) (Result[json.RawMessage], error) {
	env, err := r.c.delete(ctx, "rentals.delete", fmt.Sprintf("/admin/rentals/%d", id), "Failed to delete rental")
	return decode[json.RawMessage](env, err)
}
