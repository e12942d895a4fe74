package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/images"
	"github.com/dmitrijs2005/spacebook/internal/logging"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/accounts"
	"github.com/dmitrijs2005/spacebook/internal/repositories/notifications"
	"github.com/dmitrijs2005/spacebook/internal/repositories/spaces"
	"github.com/dmitrijs2005/spacebook/internal/validation"
)

const ownerEmailTag = ".eventspaceowner"

// AdminCredentials is the single built-in admin login.
type AdminCredentials struct {
	Email    string
	Password string
}

// OwnerApplication is the form a standard user submits to become an owner.
// The first listing is created together with the owner account.
type OwnerApplication struct {
	Username        string            `json:"Username" validate:"required"`
	Password        string            `json:"Password" validate:"required"`
	ConfirmPassword string            `json:"ConfirmPassword" validate:"eqfield=Password"`
	Space           models.EventSpace `json:"Space"`
}

type IdentityService struct {
	accounts accounts.Repository
	spaces   spaces.Repository
	catalog  *CatalogService
	images   *images.Store
	notify   *NotificationService
	validate *validation.Validator
	admin    AdminCredentials
	log      logging.Logger
}

func NewIdentityService(
	accts accounts.Repository,
	sp spaces.Repository,
	catalog *CatalogService,
	img *images.Store,
	notify *NotificationService,
	v *validation.Validator,
	admin AdminCredentials,
	log logging.Logger,
) *IdentityService {
	return &IdentityService{
		accounts: accts,
		spaces:   sp,
		catalog:  catalog,
		images:   img,
		notify:   notify,
		validate: v,
		admin:    admin,
		log:      log,
	}
}

func partitionFor(kind string) accounts.Partition {
	if kind == common.KindOwner {
		return accounts.Owners
	}
	return accounts.Standard
}

func recipientFor(p accounts.Partition, id int) notifications.Recipient {
	if p == accounts.Owners {
		return notifications.OwnerRecipient(id)
	}
	return notifications.UserRecipient(id)
}

func uniqueIdentity(a *models.Account) accounts.Guard {
	return func(existing []models.Account) error {
		for _, e := range existing {
			if strings.EqualFold(e.Email, a.Email) {
				return fmt.Errorf("email %s: %w", a.Email, common.ErrorAlreadyExists)
			}
			if e.Username == a.Username {
				return fmt.Errorf("username %s: %w", a.Username, common.ErrorAlreadyExists)
			}
		}
		return nil
	}
}

// Register stores a new standard or owner account and returns its id.
// Owners start without an activation decision and get an empty catalog.
func (s *IdentityService) Register(ctx context.Context, a models.Account) (int, error) {
	if a.Kind == "" {
		a.Kind = common.KindStandard
	}
	if err := s.validate.Struct(&a); err != nil {
		return 0, err
	}
	if a.Kind == common.KindAdmin {
		return 0, validation.Fail("Status", "admin accounts cannot be registered")
	}
	a.Activation = ""

	p := partitionFor(a.Kind)
	id, err := s.accounts.Insert(ctx, p, &a, uniqueIdentity(&a))
	if err != nil {
		return 0, err
	}

	if p == accounts.Owners {
		if err := s.spaces.Seed(ctx, id); err != nil {
			return id, fmt.Errorf("seed catalog for owner %d: %w", id, err)
		}
		s.notify.deliver(ctx, recipientFor(p, id), "Account Status Changed", "Your account has been upgraded to Event Space Owner.")
	} else {
		s.notify.deliver(ctx, recipientFor(p, id), "Account Updated", "Your account information has been updated.")
	}

	s.log.Info(ctx, "account registered", "partition", p.String(), "id", id, "username", a.Username)
	return id, nil
}

// OwnerEmail derives the owner login for a standard user's email.
func OwnerEmail(email string) (string, error) {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "", validation.Fail("Email", "must be a valid email")
	}
	if strings.Contains(local, ownerEmailTag) {
		return email, nil
	}
	return local + ownerEmailTag + "@" + domain, nil
}

// PromoteToOwner registers an owner account for the signed-in standard user,
// marks the user as promoted and lists the first space with its images. The
// form and every upload are checked before the first write.
func (s *IdentityService) PromoteToOwner(ctx context.Context, sess models.Session, app OwnerApplication, uploads []io.Reader) (int, error) {
	if !sess.IsStandard() {
		return 0, fmt.Errorf("promote %s account: %w", sess.Kind, common.ErrorForbidden)
	}
	if err := s.validate.Struct(&app); err != nil {
		return 0, err
	}
	if len(uploads) < 1 || len(uploads) > common.MaxImagesOnCreate {
		return 0, validation.Fail("Images", fmt.Sprintf("must attach 1 to %d images", common.MaxImagesOnCreate))
	}
	decoded, err := images.Decode(uploads)
	if err != nil {
		return 0, err
	}

	email, err := OwnerEmail(sess.Email)
	if err != nil {
		return 0, err
	}

	owner := models.Account{
		Email:    email,
		Username: app.Username,
		Password: app.Password,
		Kind:     common.KindOwner,
	}
	id, err := s.accounts.Insert(ctx, accounts.Owners, &owner, uniqueIdentity(&owner))
	if err != nil {
		return 0, err
	}

	err = s.accounts.Modify(ctx, accounts.Standard, sess.AccountID, func(a *models.Account) error {
		a.Kind = common.KindOwner
		return nil
	})
	if err != nil {
		return id, err
	}

	paths, err := s.catalog.WriteImages(ctx, id, decoded)
	if err != nil {
		return id, err
	}
	space := app.Space
	space.Images = paths
	if err := s.catalog.Create(ctx, id, space); err != nil {
		return id, err
	}

	s.notify.deliver(ctx, notifications.UserRecipient(sess.AccountID), "Account Status Changed", "Your account has been upgraded to Event Space Owner.")
	s.log.Info(ctx, "owner promoted", "user_id", sess.AccountID, "owner_id", id)
	return id, nil
}

// Authenticate checks the admin credential, then standard users, then
// owners. Owners also need an activated account.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (models.Session, error) {
	if email == s.admin.Email && password == s.admin.Password {
		return models.Session{Username: "admin", Email: email, Kind: common.KindAdmin}, nil
	}

	users, err := s.accounts.List(ctx, accounts.Standard)
	if err != nil {
		return models.Session{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return models.Session{AccountID: u.ID, Username: u.Username, Email: u.Email, Kind: common.KindStandard}, nil
		}
	}

	owners, err := s.accounts.List(ctx, accounts.Owners)
	if err != nil {
		return models.Session{}, err
	}
	for _, o := range owners {
		if o.Email != email || o.Password != password {
			continue
		}
		switch {
		case o.Activation == "":
			return models.Session{}, common.ErrAccountPending
		case o.Activation == common.ActivationDeactivated:
			return models.Session{}, common.ErrAccountBlocked
		case o.Activated():
			return models.Session{AccountID: o.ID, Username: o.Username, Email: o.Email, Kind: common.KindOwner}, nil
		}
	}

	return models.Session{}, common.ErrorUnauthorized
}

// SetOwnerActivation records the admin's decision and tells the owner.
func (s *IdentityService) SetOwnerActivation(ctx context.Context, ownerID int, activated bool) error {
	status := common.ActivationDeactivated
	if activated {
		status = common.ActivationActivated
	}

	err := s.accounts.Modify(ctx, accounts.Owners, ownerID, func(a *models.Account) error {
		a.Activation = status
		return nil
	})
	if err != nil {
		return err
	}

	s.notify.deliver(ctx, notifications.OwnerRecipient(ownerID), "Account Status Changed",
		fmt.Sprintf("Your account status has been updated to: %s.", status))
	s.log.Info(ctx, "owner activation changed", "owner_id", ownerID, "activation", status)
	return nil
}

var errNoMatch = errors.New("no matching account")

// ChangePassword replaces the password of the account matching email and
// oldPassword, searching standard users first. It reports false when no
// account matched.
func (s *IdentityService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (bool, error) {
	if newPassword == "" {
		return false, validation.Fail("Password", "is required")
	}

	for _, p := range []accounts.Partition{accounts.Standard, accounts.Owners} {
		err := s.accounts.Update(ctx, p, func(list []models.Account) ([]models.Account, error) {
			for i := range list {
				if list[i].Email == email && list[i].Password == oldPassword {
					list[i].Password = newPassword
					return list, nil
				}
			}
			return nil, errNoMatch
		})
		if errors.Is(err, errNoMatch) {
			continue
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (s *IdentityService) GetAccount(ctx context.Context, p accounts.Partition, id int) (*models.Account, error) {
	return s.accounts.Get(ctx, p, id)
}

func (s *IdentityService) ListOwners(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx, accounts.Owners)
}

func (s *IdentityService) ListUsers(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx, accounts.Standard)
}

// SaveAvatar stores a new profile picture for the signed-in standard user
// and returns its record path.
func (s *IdentityService) SaveAvatar(ctx context.Context, sess models.Session, r io.Reader) (string, error) {
	if !sess.IsStandard() {
		return "", fmt.Errorf("avatar for %s account: %w", sess.Kind, common.ErrorForbidden)
	}

	path, err := s.images.SaveAvatar(ctx, sess.AccountID, r)
	if err != nil {
		return "", err
	}

	err = s.accounts.Modify(ctx, accounts.Standard, sess.AccountID, func(a *models.Account) error {
		a.Avatar = path
		return nil
	})
	if err != nil {
		return "", err
	}

	s.notify.deliver(ctx, notifications.UserRecipient(sess.AccountID), "Profile Picture Changed", "You have successfully updated your profile picture.")
	return path, nil
}
