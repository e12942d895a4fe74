package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/logging"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/accounts"
	"github.com/dmitrijs2005/spacebook/internal/repositories/bookings"
	"github.com/dmitrijs2005/spacebook/internal/repositories/spaces"
)

const scanWorkers = 8

// AggregationService computes read-only views across many shards. Corrupt
// shards are skipped with a warning so one bad file does not hide the rest.
type AggregationService struct {
	accounts accounts.Repository
	spaces   spaces.Repository
	bookings bookings.Repository
	currency string
	log      logging.Logger
}

func NewAggregationService(accts accounts.Repository, sp spaces.Repository, bk bookings.Repository, currency string, log logging.Logger) *AggregationService {
	return &AggregationService{accounts: accts, spaces: sp, bookings: bk, currency: currency, log: log}
}

// ActiveListings returns the catalogs of activated owners, highest rating
// first. Spaces with equal ratings keep owner order.
func (s *AggregationService) ActiveListings(ctx context.Context) ([]models.EventSpace, error) {
	owners, err := s.accounts.List(ctx, accounts.Owners)
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, o := range owners {
		if o.Listed() {
			ids = append(ids, o.ID)
		}
	}

	catalogs, err := s.loadCatalogs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var out []models.EventSpace
	for _, c := range catalogs {
		out = append(out, c...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}

// loadCatalogs reads the catalogs for ids concurrently. The result is
// index-aligned with ids; skipped catalogs are nil.
func (s *AggregationService) loadCatalogs(ctx context.Context, ids []int) ([][]models.EventSpace, error) {
	out := make([][]models.EventSpace, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			list, err := s.spaces.List(gctx, id)
			if errors.Is(err, common.ErrorParse) {
				s.log.Warn(gctx, "skipping corrupt catalog", "owner_id", id, "error", err)
				return nil
			}
			if err != nil {
				return err
			}
			out[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// OwnerIDForTitle returns the first owner, by ascending id, whose catalog
// holds a space titled title.
func (s *AggregationService) OwnerIDForTitle(ctx context.Context, title string) (int, bool, error) {
	ids, err := s.spaces.OwnerIDs(ctx)
	if err != nil {
		return 0, false, err
	}

	for _, id := range ids {
		list, err := s.spaces.List(ctx, id)
		if errors.Is(err, common.ErrorParse) {
			s.log.Warn(ctx, "skipping corrupt catalog", "owner_id", id, "error", err)
			continue
		}
		if err != nil {
			return 0, false, err
		}
		if spaces.FindByTitle(list, title) >= 0 {
			return id, true, nil
		}
	}
	return 0, false, nil
}

// titleIndex maps each title to its first owner by ascending id.
func (s *AggregationService) titleIndex(ctx context.Context) (map[string]int, error) {
	ids, err := s.spaces.OwnerIDs(ctx)
	if err != nil {
		return nil, err
	}
	catalogs, err := s.loadCatalogs(ctx, ids)
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int)
	for i, c := range catalogs {
		for _, sp := range c {
			if _, seen := idx[sp.Title]; !seen {
				idx[sp.Title] = ids[i]
			}
		}
	}
	return idx, nil
}

// Transactions projects every booking whose published date parses into the
// admin ledger, newest first.
func (s *AggregationService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	names, err := s.bookings.Usernames(ctx)
	if err != nil {
		return nil, err
	}

	ledgers := make([][]models.Booking, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			list, err := s.bookings.List(gctx, name)
			if errors.Is(err, common.ErrorParse) || errors.Is(err, common.ErrorValidation) {
				s.log.Warn(gctx, "skipping unreadable ledger", "username", name, "error", err)
				return nil
			}
			if err != nil {
				return err
			}
			ledgers[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	owners, err := s.titleIndex(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Transaction
	for _, ledger := range ledgers {
		for _, b := range ledger {
			at, err := time.Parse(models.PublishedDateLayout, b.PublishedDate)
			if err != nil {
				continue
			}

			t := models.Transaction{
				ID:     b.ID,
				Date:   at.Format(models.TransactionLayout),
				Owner:  "Unknown",
				Space:  b.SpaceTitle,
				Amount: formatAmount(s.currency, b.Price),
				At:     at,
				Value:  b.Price,
			}
			if id, ok := owners[b.SpaceTitle]; ok {
				t.OwnerID = id
				t.Owner = OwnerLabel(id)
			}
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	return out, nil
}

// OwnerLabel is the admin-facing owner reference, "EO-{id}".
func OwnerLabel(id int) string {
	return "EO-" + strconv.Itoa(id)
}

// TransactionFilter narrows the admin ledger. Zero fields do not filter.
type TransactionFilter struct {
	From, To time.Time
	Space    string
	Owner    string
}

func FilterTransactions(list []models.Transaction, f TransactionFilter) []models.Transaction {
	var out []models.Transaction
	for _, t := range list {
		if !f.From.IsZero() && t.At.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.At.After(f.To) {
			continue
		}
		if f.Space != "" && !strings.Contains(strings.ToLower(t.Space), strings.ToLower(f.Space)) {
			continue
		}
		if f.Owner != "" && t.Owner != f.Owner {
			continue
		}
		out = append(out, t)
	}
	return out
}

// OwnerSummaries builds the admin's owner table.
func (s *AggregationService) OwnerSummaries(ctx context.Context) ([]models.OwnerSummary, error) {
	owners, err := s.accounts.List(ctx, accounts.Owners)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(owners))
	for i, o := range owners {
		ids[i] = o.ID
	}
	catalogs, err := s.loadCatalogs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.OwnerSummary, len(owners))
	for i, o := range owners {
		sum := models.OwnerSummary{
			ID:         o.ID,
			Name:       o.Username,
			Email:      o.Email,
			Spaces:     len(catalogs[i]),
			Activation: o.Activation,
			Active:     o.Activated(),
			LastActive: "N/A",
		}
		if mt, ok := s.spaces.ModTime(o.ID); ok {
			sum.LastActive = mt.Format(models.LastActiveLayout)
		}
		out[i] = sum
	}
	return out, nil
}

type OwnerFilter string

const (
	OwnersAll         OwnerFilter = "All"
	OwnersActive      OwnerFilter = "Active"
	OwnersDeactivated OwnerFilter = "Deactivated"
)

func FilterOwners(list []models.OwnerSummary, f OwnerFilter) []models.OwnerSummary {
	if f == OwnersAll || f == "" {
		return list
	}
	var out []models.OwnerSummary
	for _, o := range list {
		if o.Active == (f == OwnersActive) {
			out = append(out, o)
		}
	}
	return out
}

// SearchQuery filters the active listings. Zero fields do not filter.
type SearchQuery struct {
	Text        string
	Location    string
	Category    string
	MinCapacity int
	MinRating   int
}

// Search returns active listings matching q in ActiveListings order.
func (s *AggregationService) Search(ctx context.Context, q SearchQuery) ([]models.EventSpace, error) {
	all, err := s.ActiveListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))
	loc := strings.ToLower(strings.TrimSpace(q.Location))

	var out []models.EventSpace
	for _, sp := range all {
		if text != "" && !strings.Contains(strings.ToLower(sp.Title), text) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(sp.Location), loc) {
			continue
		}
		if q.Category != "" && !sp.HasCategory(q.Category) {
			continue
		}
		if sp.Capacity < q.MinCapacity || sp.Rating < q.MinRating {
			continue
		}
		out = append(out, sp)
	}
	return out, nil
}
