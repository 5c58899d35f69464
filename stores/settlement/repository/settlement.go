package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/database/mongoclient"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/settlement"
	"github.com/x-xyz/swiftbid/service/query"
)

var Indexes = []query.Index{
	{Table: domain.TableSettlements, Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Table: domain.TableSettlements, Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "kind", Value: 1}, {Key: "status", Value: 1}}},
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) settlement.Repo {
	return &impl{q: q}
}

func (im *impl) Insert(c ctx.Ctx, a *settlement.Attempt) error {
	if err := im.q.Insert(c, domain.TableSettlements, a); err != nil {
		c.WithFields(log.Fields{
			"attempt": a.Id,
			"err":     err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) Finish(c ctx.Ctx, id string, result *settlement.Result) error {
	update, err := mongoclient.MakeBsonM(result)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	update["updatedAt"] = time.Now()

	if err := im.q.Patch(c, domain.TableSettlements, bson.M{"_id": id}, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"attempt": id,
			"err":     err,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *impl) FindByListing(c ctx.Ctx, listingId string, limit int) ([]*settlement.Attempt, error) {
	res := []*settlement.Attempt{}
	err := im.q.Search(c, domain.TableSettlements, 0, limit, "-createdAt", bson.M{"listingId": listingId}, &res)
	if err == query.ErrNotFound {
		return res, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"listingId": listingId,
			"err":       err,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) CountFailed(c ctx.Ctx, listingId string, kind settlement.Kind) (int, error) {
	qry := bson.M{
		"listingId": listingId,
		"kind":      kind,
		"status":    settlement.StatusFailed,
	}
	n, err := im.q.Count(c, domain.TableSettlements, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
