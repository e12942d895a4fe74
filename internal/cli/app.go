package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/config"
	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/images"
	"github.com/dmitrijs2005/spacebook/internal/logging"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/accounts"
	"github.com/dmitrijs2005/spacebook/internal/repositories/bookings"
	"github.com/dmitrijs2005/spacebook/internal/repositories/notifications"
	"github.com/dmitrijs2005/spacebook/internal/repositories/spaces"
	"github.com/dmitrijs2005/spacebook/internal/services"
	"github.com/dmitrijs2005/spacebook/internal/validation"
)

type App struct {
	config   *config.Config
	identity *services.IdentityService
	catalog  *services.CatalogService
	bookings *services.BookingService
	notify   *services.NotificationService
	agg      *services.AggregationService

	session *models.Session
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger
}

// NewApp wires the services over the data directory in c.
func NewApp(c *config.Config, in io.Reader, out io.Writer, log logging.Logger) *App {
	store := filestore.New()
	v := validation.New()
	img := images.New(c.DataDir, store.Locks())

	accts := accounts.NewFileRepository(store, c.DataDir)
	sp := spaces.NewFileRepository(store, c.DataDir)
	bk := bookings.NewFileRepository(store, c.DataDir)
	nt := notifications.NewFileRepository(store, c.DataDir)

	notify := services.NewNotificationService(nt, c.NotificationCap, log)
	catalog := services.NewCatalogService(sp, img, v, c.CurrencySymbol, log)
	agg := services.NewAggregationService(accts, sp, bk, c.CurrencySymbol, log)
	identity := services.NewIdentityService(accts, sp, catalog, img, notify, v,
		services.AdminCredentials{Email: c.AdminEmail, Password: c.AdminPassword}, log)
	ledger := services.NewBookingService(accts, bk, sp, catalog, agg, notify, v,
		services.BookingRules{LeadTime: c.BookingLeadTime, CancellationWindow: c.CancellationWindow}, log)

	return &App{
		config:   c,
		identity: identity,
		catalog:  catalog,
		bookings: ledger,
		notify:   notify,
		agg:      agg,
		reader:   bufio.NewReader(in),
		out:      out,
		log:      log,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to spacebook (type 'help' for commands)")
	runREPL(ctx, a.commands(), a.kind, a.status, a.reader, a.out)
}

func (a *App) kind() string {
	if a.session == nil {
		return signedOut
	}
	return a.session.Kind
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.session.Username, a.session.Kind)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

var (
	anyone     = []string{signedOut}
	users      = []string{common.KindStandard}
	owners     = []string{common.KindOwner}
	admins     = []string{common.KindAdmin}
	signedInAs = []string{common.KindStandard, common.KindOwner, common.KindAdmin}
)

func (a *App) commands() []command {
	return []command{
		{"register", "create a user account", anyone, a.register},
		{"login", "sign in", anyone, a.login},
		{"logout", "sign out", signedInAs, a.logout},
		{"passwd", "change your password", signedInAs, a.changePassword},

		{"spaces", "browse active listings", users, a.listActive},
		{"search", "search listings: search [loc=..] [cat=..] [cap=N] [rating=N] [title]", users, a.search},
		{"book", "book a space", users, a.book},
		{"bookings", "list your bookings", users, a.listBookings},
		{"pay", "pay a confirmed booking: pay <id>", users, a.pay},
		{"cancel", "cancel a booking: cancel <id>", users, a.cancel},
		{"rate", "rate a past booking: rate <id> <1-5>", users, a.rate},
		{"avatar", "set your profile picture: avatar <file>", users, a.avatar},
		{"become-owner", "apply to list your own space", users, a.becomeOwner},
		{"notifs", "show your notifications", []string{common.KindStandard, common.KindOwner}, a.notifications},

		{"myspaces", "list your catalog", owners, a.mySpaces},
		{"addspace", "list a new space", owners, a.addSpace},
		{"editspace", "edit a space by title", owners, a.editSpace},
		{"inbox", "pending bookings for your spaces", owners, a.inbox},
		{"accept", "accept a booking: accept <username> <id>", owners, a.accept},
		{"reject", "reject a booking: reject <username> <id>", owners, a.reject},

		{"owners", "list owners: owners [All|Active|Deactivated]", admins, a.owners},
		{"activate", "activate an owner: activate <id>", admins, a.activate},
		{"deactivate", "deactivate an owner: deactivate <id>", admins, a.deactivate},
		{"transactions", "booking ledger: transactions [EO-<id>]", admins, a.transactions},
		{"users", "list standard users", admins, a.users},
	}
}
