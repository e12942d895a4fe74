package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/spacebook/internal/services"
)

func (a *App) owners(ctx context.Context, args []string) error {
	filter := services.OwnersAll
	if len(args) == 1 {
		filter = services.OwnerFilter(args[0])
	}

	list, err := a.agg.OwnerSummaries(ctx)
	if err != nil {
		return err
	}
	list = services.FilterOwners(list, filter)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSPACES\tSTATUS\tLAST ACTIVE")
	for _, o := range list {
		status := o.Activation
		if status == "" {
			status = "Pending"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", o.ID, o.Name, o.Email, o.Spaces, status, o.LastActive)
	}
	tw.Flush()
	return nil
}

func (a *App) setActivation(ctx context.Context, args []string, activated bool) error {
	if len(args) != 1 {
		return errors.New("usage: activate|deactivate <owner id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%q is not an owner id", args[0])
	}
	if err := a.identity.SetOwnerActivation(ctx, id, activated); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Owner %d updated\n", id)
	return nil
}

func (a *App) activate(ctx context.Context, args []string) error {
	return a.setActivation(ctx, args, true)
}

func (a *App) deactivate(ctx context.Context, args []string) error {
	return a.setActivation(ctx, args, false)
}

func (a *App) transactions(ctx context.Context, args []string) error {
	list, err := a.agg.Transactions(ctx)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		list = services.FilterTransactions(list, services.TransactionFilter{Owner: args[0]})
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tOWNER\tSPACE\tAMOUNT")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Owner, t.Space, t.Amount)
	}
	tw.Flush()
	return nil
}

func (a *App) users(ctx context.Context, _ []string) error {
	list, err := a.identity.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tKIND")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Kind)
	}
	tw.Flush()
	return nil
}
