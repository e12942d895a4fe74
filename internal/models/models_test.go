package models

import (
	"testing"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusConfirmed, StatusPaymentSuccessful, true},
		{StatusPaymentSuccessful, StatusRated, true},

		{StatusPending, StatusPaymentSuccessful, false},
		{StatusPending, StatusRated, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusRated, StatusPaymentSuccessful, false},
		{StatusRated, StatusRated, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestExtension_Hours(t *testing.T) {
	for ext, want := range map[Extension]float64{
		"":              0,
		ExtensionNone:   0,
		Extension30Min:  0.5,
		Extension1Hour:  1,
		Extension2Hours: 2,
	} {
		got, err := ext.Hours()
		require.NoError(t, err)
		assert.Equal(t, want, got, string(ext))
	}

	_, err := Extension("3 hours").Hours()
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	s := EventSpace{Category: "Wedding, Birthday ,, Conference"}
	assert.Equal(t, []string{"Wedding", "Birthday", "Conference"}, s.Categories())
	assert.True(t, s.HasCategory("birthday"))
	assert.False(t, s.HasCategory("Party"))
	assert.Equal(t, "Wedding, Birthday", JoinCategories([]string{"Wedding", "Birthday"}))
	assert.Empty(t, SplitCategories("  "))
}

func TestAccount_Activated(t *testing.T) {
	assert.True(t, (&Account{Activation: common.ActivationActivated}).Activated())
	assert.True(t, (&Account{Activation: common.KindOwner}).Activated())
	assert.False(t, (&Account{Activation: common.ActivationDeactivated}).Activated())
	assert.False(t, (&Account{}).Activated())
}

func TestAccount_Listed(t *testing.T) {
	assert.True(t, (&Account{Activation: common.ActivationActivated}).Listed())
	assert.True(t, (&Account{Activation: "ACTIVATED"}).Listed())
	assert.False(t, (&Account{Activation: common.KindOwner}).Listed())
	assert.False(t, (&Account{Activation: common.ActivationDeactivated}).Listed())
	assert.False(t, (&Account{}).Listed())
}

func TestSession_Kinds(t *testing.T) {
	assert.True(t, Session{Kind: common.KindAdmin}.IsAdmin())
	assert.True(t, Session{Kind: common.KindOwner}.IsOwner())
	assert.True(t, Session{Kind: common.KindStandard}.IsStandard())
	assert.False(t, Session{Kind: common.KindStandard}.IsOwner())
}
