// Package common contains shared constants and sentinel errors used across
// spacebook components.
package common

// Account kinds as they are persisted in the partition files.
const (
	KindStandard = "standard"
	KindOwner    = "event space owner"
	KindAdmin    = "admin"
)

// Activation values stored on owner accounts. An empty value means the admin
// has not decided yet.
const (
	ActivationActivated   = "Activated"
	ActivationDeactivated = "Deactivated"
)

// MaxCategories is the number of comma-joined tags a space may carry.
const MaxCategories = 3

const (
	// MaxImagesOnCreate limits the images attached when a space is listed.
	MaxImagesOnCreate = 5
	// MaxImagesOnUpdate limits the images a space may carry after an edit.
	MaxImagesOnUpdate = 20
)
