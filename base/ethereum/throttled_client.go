package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain"
)

// Throttle hands out n numbered tokens
type Throttle struct {
	tokens chan int
}

func NewThrottle(n int) *Throttle {
	if n <= 0 {
		n = 1
	}
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &Throttle{tokens: tokens}
}

// Acquire blocks until a token is free or ctx is done
func (t *Throttle) Acquire(ctx context.Context) (int, error) {
	now := time.Now()
	select {
	case <-ctx.Done():
		log.Log().WithFields(log.Fields{"wait": time.Since(now)}).Warn("throttle ctx done")
		return 0, ctx.Err()
	case token := <-t.tokens:
		return token, nil
	}
}

func (t *Throttle) Release(token int) {
	if token != 0 {
		t.tokens <- token
	}
}

// Available is the number of free tokens
func (t *Throttle) Available() int {
	return len(t.tokens)
}

// ThrottledClient bounds the number of in flight RPC calls
type ThrottledClient struct {
	domain.EthClientRepo
	throttle *Throttle
}

func NewThrottledClient(client domain.EthClientRepo, n int) *ThrottledClient {
	return &ThrottledClient{
		EthClientRepo: client,
		throttle:      NewThrottle(n),
	}
}

func (c *ThrottledClient) ChainID(ctx context.Context) (*big.Int, error) {
	token, err := c.throttle.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer c.throttle.Release(token)
	return c.EthClientRepo.ChainID(ctx)
}

func (c *ThrottledClient) BalanceAt(ctx context.Context, account common.Address, number *big.Int) (*big.Int, error) {
	token, err := c.throttle.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer c.throttle.Release(token)
	return c.EthClientRepo.BalanceAt(ctx, account, number)
}

func (c *ThrottledClient) NonceAt(ctx context.Context, account common.Address, number *big.Int) (uint64, error) {
	token, err := c.throttle.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer c.throttle.Release(token)
	return c.EthClientRepo.NonceAt(ctx, account, number)
}

func (c *ThrottledClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	token, err := c.throttle.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer c.throttle.Release(token)
	return c.EthClientRepo.PendingNonceAt(ctx, account)
}

func (c *ThrottledClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	token, err := c.throttle.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer c.throttle.Release(token)
	return c.EthClientRepo.SuggestGasPrice(ctx)
}

func (c *ThrottledClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	token, err := c.throttle.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.throttle.Release(token)
	return c.EthClientRepo.SendTransaction(ctx, tx)
}

func (c *ThrottledClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	token, err := c.throttle.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer c.throttle.Release(token)
	return c.EthClientRepo.TransactionReceipt(ctx, hash)
}
