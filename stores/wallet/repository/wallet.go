package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/wallet"
	"github.com/x-xyz/swiftbid/service/query"
)

var Indexes = []query.Index{
	{Table: domain.TableWallets, Keys: bson.D{{Key: "userId", Value: 1}}, Unique: true},
	{Table: domain.TableWallets, Keys: bson.D{{Key: "address", Value: 1}}, Unique: true},
}

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) wallet.Repo {
	return &impl{q: q}
}

func (im *impl) FindByUserId(c ctx.Ctx, userId string) (*wallet.Wallet, error) {
	w := &wallet.Wallet{}
	if err := im.q.FindOne(c, domain.TableWallets, bson.M{"userId": userId}, w); err == query.ErrNotFound {
		return nil, domain.ErrWalletNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"userId": userId,
			"err":    err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return w, nil
}

func (im *impl) Insert(c ctx.Ctx, w *wallet.Wallet) error {
	w.Address = w.Address.ToLower()
	if err := im.q.Insert(c, domain.TableWallets, w); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{
			"userId": w.UserId,
			"err":    err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}
