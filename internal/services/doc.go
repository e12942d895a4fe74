// Package services implements spacebook's operations on top of the shard
// repositories.
//
// IdentityService owns the account partitions, CatalogService the owners'
// listings, BookingService the users' ledgers and the booking state machine,
// NotificationService the per-account feeds and AggregationService the
// read-only views computed by scanning many shards.
//
// Every operation that acts for a signed-in account takes a models.Session
// explicitly. Time-sensitive rules read the service clock at call time.
package services
