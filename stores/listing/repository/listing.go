package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/database/mongoclient"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/listing"
	"github.com/x-xyz/swiftbid/service/cache"
	"github.com/x-xyz/swiftbid/service/query"
)

const (
	cacheKeyAll = "all"
	defaultSort = "-_id"
)

// Indexes of the listings table
var Indexes = []query.Index{
	{Table: domain.TableListings, Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiryGaveUp", Value: 1}, {Key: "auctionEnd", Value: 1}}},
	{Table: domain.TableListings, Keys: bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: 1}}},
}

type listingRepo struct {
	q     query.Mongo
	cache cache.Service
}

// New returns the listing store. Full scans are served from listCache, which
// is dropped on every write.
func New(q query.Mongo, listCache cache.Service) listing.Repo {
	return &listingRepo{
		q:     q,
		cache: listCache,
	}
}

func storeErr(err error) error {
	return xerrors.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func statusSelector(statuses []listing.Status) interface{} {
	in := bson.A{}
	for _, s := range statuses {
		in = append(in, s)
		if s == listing.StatusOpen {
			// matches documents without status too
			in = append(in, nil)
		}
	}
	return bson.M{"$in": in}
}

func makeFindQuery(optFns ...listing.FindAllOptionsFunc) (bson.M, string, int, int, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, "", 0, 0, err
	}

	qry := bson.M{}
	if len(opts.Statuses) > 0 {
		qry["status"] = statusSelector(opts.Statuses)
	}
	if opts.EndedBefore != nil {
		qry["auctionEnd"] = bson.M{"$lt": *opts.EndedBefore}
	}
	if opts.UpdatedUntil != nil {
		qry["updatedAt"] = bson.M{"$lte": *opts.UpdatedUntil}
	}
	if opts.ExpiryDue != nil {
		qry["expiryGaveUp"] = bson.M{"$ne": true}
		qry["$or"] = bson.A{
			bson.M{"expiryRetryAt": bson.M{"$exists": false}},
			bson.M{"expiryRetryAt": bson.M{"$lte": *opts.ExpiryDue}},
		}
	}
	sort := defaultSort
	if opts.Sort != "" {
		sort = opts.Sort
	}
	return qry, sort, opts.Offset, opts.Limit, nil
}

func (r *listingRepo) FindOne(c ctx.Ctx, id primitive.ObjectID) (*listing.Listing, error) {
	res := &listing.Listing{}
	if err := r.q.FindOne(c, domain.TableListings, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, storeErr(err)
	}
	return res, nil
}

func (r *listingRepo) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	if len(optFns) == 0 {
		res := []*listing.Listing{}
		err := r.cache.GetByFunc(c, cacheKeyAll, &res, func() (interface{}, error) {
			all, err := r.findAll(c)
			return &all, err
		})
		if err == nil {
			return res, nil
		} else if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, err
		}
		c.WithField("err", err).Warn("list cache unavailable, reading store")
	}
	return r.findAll(c, optFns...)
}

func (r *listingRepo) findAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	qry, sort, offset, limit, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	res := []*listing.Listing{}
	if err := r.q.Search(c, domain.TableListings, offset, limit, sort, qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, storeErr(err)
	}
	return res, nil
}

func (r *listingRepo) Create(c ctx.Ctx, l *listing.Listing) error {
	l.Id = primitive.NewObjectID()
	l.Version = 1
	if err := r.q.Insert(c, domain.TableListings, l); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "listing": l}).Error("q.Insert failed")
		return storeErr(err)
	}
	r.invalidate(c)
	return nil
}

func (r *listingRepo) CompareAndSwap(c ctx.Ctx, id primitive.ObjectID, version int64, statuses []listing.Status, patch *listing.Patch) (*listing.Listing, error) {
	set, err := mongoclient.MakeBsonM(patch)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	selector := bson.M{"_id": id, "version": version}
	if len(statuses) > 0 {
		selector["status"] = statusSelector(statuses)
	}
	update := bson.M{"$inc": bson.M{"version": 1}}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(patch.Unset) > 0 {
		unset := bson.M{}
		for _, f := range patch.Unset {
			unset[f] = ""
		}
		update["$unset"] = unset
	}

	res := &listing.Listing{}
	err = r.q.FindOneAndUpdate(c, domain.TableListings, selector, update, res)
	if err == query.ErrNotFound {
		// tell a missing listing from a lost race
		if _, err := r.FindOne(c, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "selector": selector, "update": update}).Error("q.FindOneAndUpdate failed")
		return nil, storeErr(err)
	}

	r.invalidate(c)
	return res, nil
}

func (r *listingRepo) invalidate(c ctx.Ctx) {
	if err := r.cache.Del(c, cacheKeyAll); err != nil {
		c.WithField("err", err).Warn("cache.Del failed")
	}
}
