// Package bookings persists each user's ledger in S-{username}.txt under the
// data directory.
//
// Usernames become file names, so names containing path separators or
// relative components are rejected with common.ErrorValidation.
package bookings
