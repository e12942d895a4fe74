package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/spacebook/internal/models"
)

// readSpace prompts for every editable listing field.
func (a *App) readSpace(title string) (models.EventSpace, error) {
	sp := models.EventSpace{Title: title}
	var err error

	if sp.Description, err = a.ask("Description"); err != nil {
		return sp, err
	}
	if sp.Location, err = a.ask("Location"); err != nil {
		return sp, err
	}
	if sp.Capacity, err = GetInt(a.reader, "Capacity", 0, a.out); err != nil {
		return sp, err
	}
	if sp.DailyRate, err = GetFloat(a.reader, "Daily rate", a.out); err != nil {
		return sp, err
	}
	if sp.ExtensionRate, err = GetFloat(a.reader, "Extension rate per hour", a.out); err != nil {
		return sp, err
	}
	if sp.ChairRate, err = GetFloat(a.reader, "Rate per extra chair", a.out); err != nil {
		return sp, err
	}
	cats, err := a.ask("Categories, comma separated (up to 3)")
	if err != nil {
		return sp, err
	}
	sp.Category = models.JoinCategories(models.SplitCategories(cats))
	return sp, nil
}

func (a *App) mySpaces(ctx context.Context, _ []string) error {
	list, err := a.catalog.List(ctx, a.session.AccountID)
	if err != nil {
		return err
	}
	a.printSpaces(list)
	return nil
}

func (a *App) addSpace(ctx context.Context, _ []string) error {
	title, err := a.ask("Title")
	if err != nil {
		return err
	}
	sp, err := a.readSpace(title)
	if err != nil {
		return err
	}
	uploads, closeAll, err := a.readImages()
	if err != nil {
		return err
	}
	defer closeAll()

	if len(uploads) > 0 {
		if sp.Images, err = a.catalog.SaveImages(ctx, a.session.AccountID, uploads); err != nil {
			return err
		}
	}
	if err := a.catalog.Create(ctx, a.session.AccountID, sp); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Listed %q\n", sp.Title)
	return nil
}

func (a *App) editSpace(ctx context.Context, _ []string) error {
	title, err := a.ask("Title of the space to edit")
	if err != nil {
		return err
	}
	current, err := a.catalog.Get(ctx, a.session.AccountID, title)
	if err != nil {
		return err
	}
	sp, err := a.readSpace(title)
	if err != nil {
		return err
	}
	uploads, closeAll, err := a.readImages()
	if err != nil {
		return err
	}
	defer closeAll()

	sp.Images = current.Images
	if len(uploads) > 0 {
		added, err := a.catalog.SaveImages(ctx, a.session.AccountID, uploads)
		if err != nil {
			return err
		}
		sp.Images = append(sp.Images, added...)
	}
	if err := a.catalog.UpdateByTitle(ctx, a.session.AccountID, sp); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %q\n", title)
	return nil
}

func (a *App) inbox(ctx context.Context, _ []string) error {
	list, err := a.bookings.PendingForOwner(ctx, *a.session)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No pending bookings")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tID\tSPACE\tDATE\tGUESTS\tEXTRAS")
	for _, ob := range list {
		b := ob.Booking
		extras := []string{}
		if b.ExtraChairs > 0 {
			extras = append(extras, fmt.Sprintf("%d chairs", b.ExtraChairs))
		}
		if b.TimeExtension != "" && b.TimeExtension != models.ExtensionNone {
			extras = append(extras, string(b.TimeExtension))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", ob.Username, b.ID, b.SpaceTitle, b.BookingDate.Format(dateLayout), b.GuestCount, strings.Join(extras, ", "))
	}
	tw.Flush()
	return nil
}

func (a *App) accept(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: accept <username> <id>")
	}
	if err := a.bookings.Accept(ctx, *a.session, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Booking accepted")
	return nil
}

func (a *App) reject(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: reject <username> <id>")
	}
	if err := a.bookings.Reject(ctx, *a.session, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Booking rejected")
	return nil
}
