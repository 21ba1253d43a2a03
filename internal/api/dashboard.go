package api

import "context"

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalTours      int    `json:"total_tours"`
	TotalActivities int    `json:"total_activities"`
	TotalRentals    int    `json:"total_rentals"`
	TotalBookings   int    `json:"total_bookings"`
	TotalUsers      int    `json:"total_users,omitempty"`
	Revenue         Number `json:"revenue,omitempty"`
}

// Booking is one recent booking row.
type Booking struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	PackageName  string `json:"package_name"`
	Status       string `json:"status,omitempty"`
	TotalPrice   Number `json:"total_price,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Review is one recent review row.
type Review struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// DashboardClient covers the admin dashboard endpoints.
type DashboardClient struct {
	c *Client
}

// Dashboard returns the admin dashboard client.
func (c *Client) Dashboard() *DashboardClient {
	return &DashboardClient{c: c}
}

// Stats fetches the summary counters.
func (d *DashboardClient) Stats(ctx context.Context) (Result[DashboardStats], error) {
	env, err := d.c.get(ctx, "dashboard.stats", "/admin/dashboard/stats", true, "Failed to fetch dashboard stats")
	return decode[DashboardStats](unwrapNested(env), err)
}

// RecentBookings fetches the latest bookings.
func (d *DashboardClient) RecentBookings(ctx context.Context) (Result[[]Booking], error) {
	env, err := d.c.get(ctx, "dashboard.recent_bookings", "/admin/dashboard/recent-bookings", true, "Failed to fetch recent bookings")
	return decode[[]Booking](env, err)
}

// RecentReviews fetches the latest reviews.
func (d *DashboardClient) RecentReviews(ctx context.Context) (Result[[]Review], error) {
	env, err := d.c.get(ctx, "dashboard.recent_reviews", "/admin/dashboard/recent-reviews", true, "Failed to fetch recent reviews")
	return decode[[]Review](env, err)
}
