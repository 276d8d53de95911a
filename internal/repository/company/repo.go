// Package company provides the Mongo-backed company repository.
package company

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	leadscope "github.com/signalworks/leadscope"
	"github.com/signalworks/leadscope/internal/domain"
	"github.com/signalworks/leadscope/internal/store"
)

// listCap is a hard ceiling on list results, not a page size.
const listCap = 500

// recordStore is the consumer interface for the company repository (ISP).
type recordStore interface {
	Collection(name string) store.Collection
}

// Repo implements usecase/company.Repository.
type Repo struct {
	store      recordStore
	collection string
}

// New creates a company repository over the named collection.
func New(s recordStore, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

// List returns at most listCap companies, highest signal total first.
func (r *Repo) List(ctx context.Context) ([]leadscope.Company, error) {
	var companies []leadscope.Company
	sort := bson.D{{Key: "total_signals", Value: -1}}
	if err := r.store.Collection(r.collection).FindMany(ctx, bson.D{}, sort, listCap, &companies); err != nil {
		return nil, storeErr(err)
	}
	return companies, nil
}

func storeErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConnection) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStore, err)
}
