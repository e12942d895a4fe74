// Package accounts persists the two account partitions.
//
// # Layout
//
// Standard users live in Users.txt and event-space owners in
// EventSpaceOwners.txt, both directly under the data directory. Each file is
// a JSON array of models.Account.
//
// # Identifiers
//
// Insert assigns id = len(partition) + 1 while holding the partition lock,
// so concurrent inserts into one partition never share an id. Ids are never
// reused because accounts are never removed.
//
// Typical Usage
//
//	repo := accounts.NewFileRepository(store, dataDir)
//	id, _ := repo.Insert(ctx, accounts.Standard, &acct, nil)
//	list, _ := repo.List(ctx, accounts.Standard)
package accounts
