// Package refresher keeps expiring values warm in the background.
//
// IntervalRefresher periodically asks a Refreshable to refresh itself, so that
// readers rarely pay for the updater call. RefreshAll refreshes several targets
// concurrently.
package refresher
