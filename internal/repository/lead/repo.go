// Package lead provides the Mongo-backed lead repository.
package lead

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	leadscope "github.com/signalworks/leadscope"
	"github.com/signalworks/leadscope/internal/domain"
	"github.com/signalworks/leadscope/internal/store"
)

// listCap is a hard ceiling on list results, not a page size.
const listCap = 500

// recordStore is the consumer interface for the lead repository (ISP).
type recordStore interface {
	Collection(name string) store.Collection
}

// Repo implements usecase/lead.Repository.
type Repo struct {
	store      recordStore
	collection string
}

// New creates a lead repository over the named collection.
func New(s recordStore, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

// List returns at most listCap leads, newest capture first. Ties keep
// natural store order.
func (r *Repo) List(ctx context.Context) ([]leadscope.Lead, error) {
	var leads []leadscope.Lead
	sort := bson.D{{Key: "Captured_At", Value: -1}}
	if err := r.store.Collection(r.collection).FindMany(ctx, bson.D{}, sort, listCap, &leads); err != nil {
		return nil, storeErr(err)
	}
	return leads, nil
}

// GetByStoreID looks a lead up by its store-assigned identifier.
func (r *Repo) GetByStoreID(ctx context.Context, id string) (leadscope.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return leadscope.Lead{}, domain.ErrNotFound
	}
	var l leadscope.Lead
	filter := bson.D{{Key: "_id", Value: oid}}
	if err := r.store.Collection(r.collection).FindOne(ctx, filter, &l); err != nil {
		return leadscope.Lead{}, storeErr(err)
	}
	return l, nil
}

// GetByLeadID looks a lead up by its externally-assigned domain identifier.
func (r *Repo) GetByLeadID(ctx context.Context, id string) (leadscope.Lead, error) {
	var l leadscope.Lead
	filter := bson.D{{Key: "lead_id", Value: id}}
	if err := r.store.Collection(r.collection).FindOne(ctx, filter, &l); err != nil {
		return leadscope.Lead{}, storeErr(err)
	}
	return l, nil
}

// storeErr passes taxonomy sentinels through and folds everything else
// into ErrStore, keeping the underlying message.
func storeErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConnection) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStore, err)
}
