package ledger

import (
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/x-xyz/swiftbid/base/ctx"
	bEthereum "github.com/x-xyz/swiftbid/base/ethereum"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/ledger"
)

// Dial connects to a json-rpc endpoint, allowing at most maxInflight concurrent calls
func Dial(c ctx.Ctx, url string, maxInflight int) (domain.EthClientRepo, error) {
	client, err := ethclient.DialContext(c, url)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "url": url}).Error("failed to dial rpc")
		return nil, err
	}
	return bEthereum.NewThrottledClient(client, maxInflight), nil
}

type connector struct {
	client   ledger.Client
	throttle *bEthereum.Throttle
}

// NewConnector shares client among at most slots open sessions
func NewConnector(client ledger.Client, slots int) ledger.Connector {
	return &connector{
		client:   client,
		throttle: bEthereum.NewThrottle(slots),
	}
}

func (cn *connector) Connect(c ctx.Ctx) (ledger.Client, func(), error) {
	defer met.BumpTime("connect.time").End()

	token, err := cn.throttle.Acquire(c)
	if err != nil {
		c.WithField("err", err).Warn("no ledger slot available")
		return nil, nil, err
	}
	met.BumpAvg("connect.available", float64(cn.throttle.Available()))

	var once sync.Once
	release := func() {
		once.Do(func() { cn.throttle.Release(token) })
	}
	return cn.client, release, nil
}
