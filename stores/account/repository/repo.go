package repository

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/database/mongoclient"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/account"
	"github.com/x-xyz/swiftbid/service/cache"
	"github.com/x-xyz/swiftbid/service/cache/provider"
	"github.com/x-xyz/swiftbid/service/cache/provider/compound"
	"github.com/x-xyz/swiftbid/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/swiftbid/service/cache/provider/redis"
	"github.com/x-xyz/swiftbid/service/query"
	"github.com/x-xyz/swiftbid/service/redis"
)

var Indexes = []query.Index{
	{Table: domain.TableAccounts, Keys: bson.D{{Key: "email", Value: 1}}, Unique: true},
}

type impl struct {
	query        query.Mongo
	accountCache cache.Service
}

// New creates new account repo
func New(query query.Mongo, redis redis.Service) account.Repo {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("account", 16),
	}

	if redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(redis))
	}

	return &impl{
		query: query,
		accountCache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   "account",
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *impl) Get(c ctx.Ctx, id primitive.ObjectID) (*account.Account, error) {
	res := &account.Account{}

	if err := im.accountCache.GetByFunc(c, id.Hex(), res, func() (interface{}, error) {
		return im.findOne(c, bson.M{"_id": id})
	}); err == domain.ErrNotFound {
		return nil, err
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("accountCache.GetByFunc failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) GetByEmail(c ctx.Ctx, email string) (*account.Account, error) {
	return im.findOne(c, bson.M{"email": strings.ToLower(email)})
}

func (im *impl) findOne(c ctx.Ctx, qry bson.M) (*account.Account, error) {
	a := &account.Account{}
	err := im.query.FindOne(c, domain.TableAccounts, qry, a)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"query": qry,
			"err":   err,
		}).Error("find account failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) Insert(c ctx.Ctx, a *account.Account) error {
	a.Id = primitive.NewObjectID()
	a.Email = strings.ToLower(a.Email)
	if err := im.query.Insert(c, domain.TableAccounts, a); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"email": a.Email,
			"err":   err,
		}).Error("insert account failed")
		return err
	}
	return nil
}

func (im *impl) Update(c ctx.Ctx, id primitive.ObjectID, updater *account.Updater) error {
	updaterBson, err := mongoclient.MakeBsonM(updater)
	if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("make bsonM failed")
		return err
	}
	if err := im.query.Patch(c, domain.TableAccounts, bson.M{"_id": id}, updaterBson); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("patch account failed")
		return err
	}
	if err := im.accountCache.Del(c, id.Hex()); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Warn("accountCache.Del failed")
	}
	return nil
}
