package api

import "context"

// publicResource is the shared shape of the unauthenticated storefront
// endpoints: a list of available packages and a slug-addressed detail.
type publicResource[T any] struct {
	c        *Client
	op       string
	base     string
	fallback string
}

func (p publicResource[T]) list(ctx context.Context) (Result[[]T], error) {
	env, err := p.c.get(ctx, p.op+".list", p.base+"/get", false, p.fallback)
	return decode[[]T](env, err)
}

func (p publicResource[T]) bySlug(ctx context.Context, slug string) (Result[T], error) {
	env, err := p.c.get(ctx, p.op+".detail", p.base+"/"+slug, false, p.fallback)
	// Detail endpoints sometimes nest the record under data without a
	// success field; dig it out so callers always see the record itself.
	return decode[T](unwrapNested(env), err)
}

// PublicTourClient covers the unauthenticated tour-package endpoints.
type PublicTourClient struct {
	res publicResource[Tour]
}

// PublicTours returns the storefront tour client.
func (c *Client) PublicTours() *PublicTourClient {
	return &PublicTourClient{res: publicResource[Tour]{
		c:        c,
		op:       "public.tours",
		base:     "/tour-packages",
		fallback: "Failed to fetch tours",
	}}
}

// List fetches the tour packages published to travellers.
func (p *PublicTourClient) List(ctx context.Context) (Result[[]Tour], error) {
	return p.res.list(ctx)
}

// BySlug fetches one published tour package.
func (p *PublicTourClient) BySlug(ctx context.Context, slug string) (Result[Tour], error) {
	return p.res.bySlug(ctx, slug)
}

// PublicActivityClient covers the unauthenticated activity-package endpoints.
type PublicActivityClient struct {
	res publicResource[Activity]
}

// PublicActivities returns the storefront activity client.
func (c *Client) PublicActivities() *PublicActivityClient {
	return &PublicActivityClient{res: publicResource[Activity]{
		c:        c,
		op:       "public.activities",
		base:     "/activity-packages",
		fallback: "Failed to fetch activities",
	}}
}

// List fetches the activity packages published to travellers.
func (p *PublicActivityClient) List(ctx context.Context) (Result[[]Activity], error) {
	return p.res.list(ctx)
}

// BySlug fetches one published activity package.
func (p *PublicActivityClient) BySlug(ctx context.Context, slug string) (Result[Activity], error) {
	return p.res.bySlug(ctx, slug)
}

// PublicRentalClient covers the unauthenticated rental-package endpoints.
type PublicRentalClient struct {
	res publicResource[Rental]
}

// PublicRentals returns the storefront rental client.
func (c *Client) PublicRentals() *PublicRentalClient {
	return &PublicRentalClient{res: publicResource[Rental]{
		c:        c,
		op:       "public.rentals",
		base:     "/rental-packages",
		fallback: "Failed to fetch rentals",
	}}
}

// List fetches the rental packages published to travellers.
func (p *PublicRentalClient) List(ctx context.Context) (Result[[]Rental], error) {
	return p.res.list(ctx)
}

// BySlug fetches one published rental package.
func (p *PublicRentalClient) BySlug(ctx context.Context, slug string) (Result[Rental], error) {
	return p.res.bySlug(ctx, slug)
}
