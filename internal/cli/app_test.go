package cli

import (
	"context"
	"image/color"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/spacebook/internal/config"
	"github.com/dmitrijs2005/spacebook/internal/logging"
)

// session runs one shell over dir with the given input lines and returns
// everything it printed.
func session(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = dir

	var out strings.Builder
	a := NewApp(cfg, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, logging.Discard())
	a.Run(context.Background())
	return out.String()
}

func writeJPEG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hall.jpg")
	require.NoError(t, imaging.Save(imaging.New(8, 8, color.NRGBA{R: 200, A: 255}), path))
	return path
}

var bookingIDRe = regexp.MustCompile(`Booking (\S+) is Pending`)

func TestApp_SignedOutCommands(t *testing.T) {
	dir := t.TempDir()

	out := session(t, dir,
		"spaces",
		"help",
		"login", "nobody@x.com", "nope",
		"register", "bob@x.com", "bob", "pw",
		"register", "BOB@x.com", "bobby", "pw",
		"exit",
	)

	assert.Contains(t, out, "Unknown command: spaces")
	assert.Contains(t, out, "register")
	assert.NotContains(t, out, "transactions")
	assert.Contains(t, out, "Invalid email or password.")
	assert.Contains(t, out, "Registered bob with id 1")
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "already exists")
}

func TestApp_BookingLifecycle(t *testing.T) {
	dir := t.TempDir()
	img := writeJPEG(t)

	out := session(t, dir,
		"register", "alice@x.com", "alice", "pw",
		"login", "alice@x.com", "pw",
		"become-owner",
		"alice-venues", "pw", "pw",
		"Garden Hall", "Open-air hall", "Cebu City", "150", "1000", "200", "50", "Wedding, Birthday",
		img, "",
		"notifs",
		"logout",
		"login", "alice.eventspaceowner@x.com", "pw",
	)
	require.Contains(t, out, "Owner account 1 created")
	assert.Contains(t, out, "upgraded to Event Space Owner")
	assert.Contains(t, out, "Wait for the admin to activate your account.")

	out = session(t, dir,
		"login", "admin@admin.com", "admin123",
		"activate 1",
		"owners Active",
	)
	assert.Contains(t, out, "Owner 1 updated")
	assert.Contains(t, out, "alice-venues")
	assert.Contains(t, out, "Activated")

	date := time.Now().AddDate(0, 0, 10).Format(dateLayout)
	out = session(t, dir,
		"register", "bob@x.com", "bob", "pw",
		"login", "bob@x.com", "pw",
		"spaces",
		"search cat=Wedding cap=100 garden",
		"book", "Garden Hall", date, "100", "Morning (8AM - 1PM)", "2", "1 hour",
		"bookings",
	)
	assert.Contains(t, out, "Garden Hall")
	assert.Contains(t, out, "total ₱1300")
	assert.Contains(t, out, "cancel")
	m := bookingIDRe.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]

	out = session(t, dir,
		"login", "alice.eventspaceowner@x.com", "pw",
		"myspaces",
		"inbox",
		"accept bob "+id,
		"inbox",
		"notifs",
	)
	assert.Contains(t, out, "Welcome, alice-venues")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "2 chairs, 1 hour")
	assert.Contains(t, out, "Booking accepted")
	assert.Contains(t, out, "No pending bookings")
	assert.Contains(t, out, "New Booking")

	out = session(t, dir,
		"login", "bob@x.com", "pw",
		"pay "+id, "Credit/Debit", "12", "01/30", "1",
		"pay "+id, "E-Wallet", "GCash", "0917",
		"bookings",
		"rate "+id+" 5",
	)
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "Payment successful")
	assert.Contains(t, out, "Payment Successful")
	// The event date is still ahead, so rating is refused.
	assert.Contains(t, out, "error:")

	out = session(t, dir,
		"login", "admin@admin.com", "admin123",
		"transactions EO-1",
		"users",
	)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "EO-1")
	assert.Contains(t, out, "₱1300")
	assert.Contains(t, out, "bob@x.com")
}

func TestApp_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	out := session(t, dir,
		"register", "bob@x.com", "bob", "pw",
		"login", "bob@x.com", "pw",
		"pay",
		"rate abc",
		"rate id x",
		"avatar",
		"avatar /does/not/exist.png",
		"book", "Nowhere", "not-a-date",
	)
	assert.Contains(t, out, "usage: pay <id>")
	assert.Contains(t, out, "usage: rate <id> <1-5>")
	assert.Contains(t, out, `"x" is not a number`)
	assert.Contains(t, out, "usage: avatar <file>")
	assert.Contains(t, out, `"not-a-date" is not a date`)
}

func TestApp_ChangePassword(t *testing.T) {
	dir := t.TempDir()
	out := session(t, dir,
		"register", "bob@x.com", "bob", "pw",
		"login", "bob@x.com", "pw",
		"passwd", "wrong", "new",
		"passwd", "pw", "new",
		"logout",
		"login", "bob@x.com", "new",
	)
	assert.Contains(t, out, "Current password is wrong.")
	assert.Contains(t, out, "Password changed")
	assert.Equal(t, 2, strings.Count(out, "Welcome, bob"))
}
