// Package models defines the records spacebook persists and the projections
// it derives from them.
package models

import (
	"strings"

	"github.com/dmitrijs2005/spacebook/internal/common"
)

// Account is a row in one of the two account partitions.
type Account struct {
	ID         int    `json:"Id"`
	Email      string `json:"Email" validate:"required,email"`
	Username   string `json:"Username" validate:"required"`
	Password   string `json:"Password" validate:"required"`
	Kind       string `json:"Status" validate:"omitempty,accountkind"`
	Activation string `json:"Activation,omitempty"`
	Avatar     string `json:"Avatar,omitempty"`
}

func (a *Account) IsOwner() bool {
	return a.Kind == common.KindOwner
}

// Activated reports whether an owner may sign in. The legacy kind string
// stored in the activation slot counts as activated.
func (a *Account) Activated() bool {
	return a.Activation == common.ActivationActivated || a.Activation == common.KindOwner
}

// Listed reports whether the owner's catalog appears in public listings.
// Only the Activated value qualifies, in any letter case; the legacy kind
// string lets an owner sign in but does not publish the catalog.
func (a *Account) Listed() bool {
	return strings.EqualFold(a.Activation, common.ActivationActivated)
}

// Session identifies the signed-in account. Operations that act on behalf of
// someone take one explicitly.
type Session struct {
	AccountID int
	Username  string
	Email     string
	Kind      string
}

func (s Session) IsAdmin() bool    { return s.Kind == common.KindAdmin }
func (s Session) IsOwner() bool    { return s.Kind == common.KindOwner }
func (s Session) IsStandard() bool { return s.Kind == common.KindStandard }

// OwnerSummary is the admin's view of one owner account.
type OwnerSummary struct {
	ID         int    `json:"Id"`
	Name       string `json:"Name"`
	Email      string `json:"Email"`
	Spaces     int    `json:"Spaces"`
	Activation string `json:"Activation"`
	Active     bool   `json:"Active"`
	LastActive string `json:"LastActive"`
}
