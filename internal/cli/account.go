package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/notifications"
	"github.com/dmitrijs2005/spacebook/internal/services"
)

func (a *App) register(ctx context.Context, _ []string) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	id, err := a.identity.Register(ctx, models.Account{Email: email, Username: username, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s with id %d\n", username, id)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	sess, err := a.identity.Authenticate(ctx, email, password)
	switch {
	case errors.Is(err, common.ErrAccountPending):
		fmt.Fprintln(a.out, "Wait for the admin to activate your account.")
		return nil
	case errors.Is(err, common.ErrAccountBlocked):
		fmt.Fprintln(a.out, "Your account is deactivated. Please contact customer service.")
		return nil
	case errors.Is(err, common.ErrorUnauthorized):
		fmt.Fprintln(a.out, "Invalid email or password.")
		return nil
	case err != nil:
		return err
	}

	a.session = &sess
	a.log.Info(ctx, "signed in", "username", sess.Username, "kind", sess.Kind)
	fmt.Fprintf(a.out, "Welcome, %s\n", sess.Username)
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	a.session = nil
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) changePassword(ctx context.Context, _ []string) error {
	oldPw, err := GetPassword(a.reader, "Current password", a.out)
	if err != nil {
		return err
	}
	newPw, err := GetPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}

	ok, err := a.identity.ChangePassword(ctx, a.session.Email, oldPw, newPw)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Current password is wrong.")
		return nil
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: avatar <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	path, err := a.identity.SaveAvatar(ctx, *a.session, f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved", path)
	return nil
}

func (a *App) becomeOwner(ctx context.Context, _ []string) error {
	username, err := a.ask("Owner username")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Owner password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	title, err := a.ask("Title of your first space")
	if err != nil {
		return err
	}
	space, err := a.readSpace(title)
	if err != nil {
		return err
	}
	uploads, closeAll, err := a.readImages()
	if err != nil {
		return err
	}
	defer closeAll()

	app := services.OwnerApplication{Username: username, Password: password, ConfirmPassword: confirm, Space: space}
	id, err := a.identity.PromoteToOwner(ctx, *a.session, app, uploads)
	if err != nil {
		return err
	}

	email, _ := services.OwnerEmail(a.session.Email)
	fmt.Fprintf(a.out, "Owner account %d created. Sign in as %s once the admin activates it.\n", id, email)
	return nil
}

func (a *App) notifications(ctx context.Context, _ []string) error {
	to := notifications.UserRecipient(a.session.AccountID)
	if a.session.IsOwner() {
		to = notifications.OwnerRecipient(a.session.AccountID)
	}

	feed, err := a.notify.List(ctx, to)
	if err != nil {
		return err
	}
	if len(feed) == 0 {
		fmt.Fprintln(a.out, "No notifications")
		return nil
	}
	for _, n := range feed {
		fmt.Fprintf(a.out, "[%s] %s: %s\n", n.Timestamp, n.Title, n.Message)
	}
	return nil
}

// readImages asks for image file paths and opens them. The returned func
// closes every opened file.
func (a *App) readImages() ([]io.Reader, func(), error) {
	paths, err := GetLines(a.reader, "Image files, one per line", a.out)
	if err != nil {
		return nil, func() {}, err
	}

	var (
		files   []*os.File
		readers []io.Reader
	)
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, closeAll, nil
}
