package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/services"
)

const dateLayout = "2006-01-02"

func (a *App) printSpaces(list []models.EventSpace) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No spaces")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tLOCATION\tCAPACITY\tPRICE\tRATING\tCATEGORY")
	for _, s := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d (%d)\t%s\n", s.Title, s.Location, s.Capacity, s.FormattedPrice, s.Rating, s.ReviewCount, s.Category)
	}
	tw.Flush()
}

func (a *App) listActive(ctx context.Context, _ []string) error {
	list, err := a.agg.ActiveListings(ctx)
	if err != nil {
		return err
	}
	a.printSpaces(list)
	return nil
}

// parseSearch turns "key=value" arguments into filters. Anything else is
// title text.
func parseSearch(args []string) (services.SearchQuery, error) {
	var (
		q    services.SearchQuery
		text []string
		err  error
	)
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			text = append(text, arg)
			continue
		}
		switch key {
		case "loc":
			q.Location = val
		case "cat":
			q.Category = val
		case "cap":
			q.MinCapacity, err = strconv.Atoi(val)
		case "rating":
			q.MinRating, err = strconv.Atoi(val)
		default:
			return q, fmt.Errorf("unknown filter %q", key)
		}
		if err != nil {
			return q, fmt.Errorf("%s: %q is not a number", key, val)
		}
	}
	q.Text = strings.Join(text, " ")
	return q, nil
}

func (a *App) search(ctx context.Context, args []string) error {
	q, err := parseSearch(args)
	if err != nil {
		return err
	}
	list, err := a.agg.Search(ctx, q)
	if err != nil {
		return err
	}
	a.printSpaces(list)
	return nil
}

func (a *App) book(ctx context.Context, _ []string) error {
	title, err := a.ask("Space title")
	if err != nil {
		return err
	}
	dateStr, err := a.ask("Booking date (YYYY-MM-DD)")
	if err != nil {
		return err
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return fmt.Errorf("%q is not a date", dateStr)
	}
	guests, err := GetInt(a.reader, "Guest count", 0, a.out)
	if err != nil {
		return err
	}
	slot, err := a.ask("Event time (e.g. Morning (8AM - 1PM))")
	if err != nil {
		return err
	}
	chairs, err := GetInt(a.reader, "Extra chairs (Enter for none)", 0, a.out)
	if err != nil {
		return err
	}
	ext, err := a.ask("Time extension (None, 30 minutes, 1 hour, 2 hours)")
	if err != nil {
		return err
	}

	b, err := a.bookings.Create(ctx, *a.session, services.BookingRequest{
		SpaceTitle:    title,
		BookingDate:   date,
		GuestCount:    guests,
		EventTime:     slot,
		ExtraChairs:   chairs,
		TimeExtension: models.Extension(ext),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booking %s is %s, total %s%s\n", b.ID, b.Status, a.config.CurrencySymbol, strconv.FormatFloat(b.Price, 'f', -1, 64))
	return nil
}

func (a *App) listBookings(ctx context.Context, _ []string) error {
	list, err := a.bookings.List(ctx, a.session.Username)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No bookings")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSPACE\tDATE\tSTATUS\tPRICE\tACTIONS")
	for _, b := range list {
		var actions []string
		if a.bookings.CanPay(b) {
			actions = append(actions, "pay")
		}
		if a.bookings.CanCancel(b) {
			actions = append(actions, "cancel")
		}
		if a.bookings.CanRate(b) {
			actions = append(actions, "rate")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.SpaceTitle, b.BookingDate.Format(dateLayout), b.Status,
			strconv.FormatFloat(b.Price, 'f', -1, 64), strings.Join(actions, ","))
	}
	tw.Flush()
	return nil
}

func (a *App) pay(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pay <id>")
	}
	kind, err := a.ask("Method (E-Wallet or Credit/Debit)")
	if err != nil {
		return err
	}

	m := services.PaymentMethod{Kind: kind}
	switch kind {
	case services.PaymentEWallet:
		if m.Provider, err = a.ask("Provider"); err != nil {
			return err
		}
		if m.WalletID, err = a.ask("Wallet ID"); err != nil {
			return err
		}
	case services.PaymentCard:
		if m.CardNumber, err = a.ask("Card number"); err != nil {
			return err
		}
		if m.Expiry, err = a.ask("Expiry (MM/YY)"); err != nil {
			return err
		}
		if m.CVV, err = GetPassword(a.reader, "CVV", a.out); err != nil {
			return err
		}
	}

	if err := a.bookings.Pay(ctx, *a.session, args[0], m); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Payment successful")
	return nil
}

func (a *App) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cancel <id>")
	}
	if err := a.bookings.Cancel(ctx, *a.session, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Booking cancelled")
	return nil
}

func (a *App) rate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rate <id> <1-5>")
	}
	stars, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%q is not a number", args[1])
	}
	if err := a.bookings.Rate(ctx, *a.session, args[0], stars); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "You rated this booking %d star(s)\n", stars)
	return nil
}
