package notifications

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spacebook/internal/models"
)

// Audience separates the user and owner feed trees.
type Audience int

const (
	Users Audience = iota
	Owners
)

// Recipient addresses one account's feed.
type Recipient struct {
	Audience Audience
	ID       int
}

func UserRecipient(id int) Recipient  { return Recipient{Audience: Users, ID: id} }
func OwnerRecipient(id int) Recipient { return Recipient{Audience: Owners, ID: id} }

func (r Recipient) String() string {
	if r.Audience == Owners {
		return fmt.Sprintf("owner/%d", r.ID)
	}
	return fmt.Sprintf("user/%d", r.ID)
}

type Repository interface {
	// List returns the feed newest first.
	List(ctx context.Context, to Recipient) ([]models.Notification, error)

	// Prepend inserts n at the head of the feed and trims it to limit
	// entries. A limit <= 0 keeps everything.
	Prepend(ctx context.Context, to Recipient, n models.Notification, limit int) error
}
