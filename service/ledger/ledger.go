package ledger

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/swiftbid/base/backoff"
	"github.com/x-xyz/swiftbid/base/ctx"
	bEthereum "github.com/x-xyz/swiftbid/base/ethereum"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/base/metrics"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/ledger"
)

const (
	defaultDecimals     = 18
	defaultGasLimit     = uint64(21000)
	defaultPollInterval = time.Second
	defaultPollLimit    = 8 * time.Second
	defaultFinality     = 60 * time.Second
)

var met = metrics.New("ledger")

// txpool and validation errors of a node that refused a raw transaction
var rejections = []string{
	"nonce too low",
	"insufficient funds",
	"intrinsic gas too low",
	"transaction underpriced",
	"replacement transaction underpriced",
	"exceeds block gas limit",
	"invalid sender",
	"txpool is full",
	"oversized data",
	"negative value",
}

// the node already holds the transaction in its pool
var known = []string{
	"already known",
	"known transaction",
}

func containsAny(msg string, subs []string) bool {
	msg = strings.ToLower(msg)
	for _, sub := range subs {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

// isRejected reports whether a broadcast error proves the transaction was not
// accepted. Transport errors do not: the node may have taken it before failing.
func isRejected(err error) bool {
	if containsAny(err.Error(), known) {
		return false
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return true
	}
	return containsAny(err.Error(), rejections)
}

type Config struct {
	// Decimals scales decimal amounts to the ledger's integer unit
	Decimals int32
	// GasLimit of a native transfer
	GasLimit uint64
	// PollInterval is the first wait between receipt polls, doubled up to PollLimit
	PollInterval time.Duration
	PollLimit    time.Duration
	// Finality bounds how long Submit waits for a receipt
	Finality time.Duration
}

func (cfg *Config) withDefaults() Config {
	res := *cfg
	if res.Decimals <= 0 {
		res.Decimals = defaultDecimals
	}
	if res.GasLimit == 0 {
		res.GasLimit = defaultGasLimit
	}
	if res.PollInterval <= 0 {
		res.PollInterval = defaultPollInterval
	}
	if res.PollLimit <= 0 {
		res.PollLimit = defaultPollLimit
	}
	if res.Finality <= 0 {
		res.Finality = defaultFinality
	}
	return res
}

type impl struct {
	eth domain.EthClientRepo
	cfg Config

	chainIdMu sync.Mutex
	chainId   *big.Int
}

// New returns a ledger client over an ethereum json-rpc endpoint
func New(eth domain.EthClientRepo, cfg Config) ledger.Client {
	return &impl{
		eth: eth,
		cfg: cfg.withDefaults(),
	}
}

func (im *impl) getChainId(c ctx.Ctx) (*big.Int, error) {
	im.chainIdMu.Lock()
	defer im.chainIdMu.Unlock()
	if im.chainId != nil {
		return im.chainId, nil
	}
	id, err := im.eth.ChainID(c)
	if err != nil {
		c.WithField("err", err).Error("eth.ChainID failed")
		return nil, err
	}
	im.chainId = id
	return id, nil
}

func (im *impl) toUnits(amount decimal.Decimal) *big.Int {
	return amount.Shift(im.cfg.Decimals).BigInt()
}

func (im *impl) fromUnits(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, -im.cfg.Decimals)
}

func (im *impl) CheckFundable(c ctx.Ctx, address domain.Address) (bool, error) {
	defer met.BumpTime("time", "func", "checkFundable").End()

	addr, err := bEthereum.ToAddress(address)
	if err != nil {
		return false, err
	}
	balance, err := im.eth.BalanceAt(c, addr, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("eth.BalanceAt failed")
		return false, err
	}
	if balance.Sign() > 0 {
		return true, nil
	}
	nonce, err := im.eth.NonceAt(c, addr, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("eth.NonceAt failed")
		return false, err
	}
	return nonce > 0, nil
}

func (im *impl) Balance(c ctx.Ctx, address domain.Address) (decimal.Decimal, error) {
	addr, err := bEthereum.ToAddress(address)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := im.eth.BalanceAt(c, addr, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("eth.BalanceAt failed")
		return decimal.Zero, err
	}
	return im.fromUnits(balance), nil
}

func (im *impl) BuildTransfer(c ctx.Ctx, from, to domain.Address, amount decimal.Decimal) (*ledger.UnsignedTransfer, error) {
	defer met.BumpTime("time", "func", "buildTransfer").End()

	if !amount.IsPositive() {
		return nil, domain.ErrBadParamInput
	}
	fromAddr, err := bEthereum.ToAddress(from)
	if err != nil {
		return nil, err
	}
	toAddr, err := bEthereum.ToAddress(to)
	if err != nil {
		return nil, err
	}

	chainId, err := im.getChainId(c)
	if err != nil {
		return nil, err
	}
	nonce, err := im.eth.PendingNonceAt(c, fromAddr)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "from": from}).Error("eth.PendingNonceAt failed")
		return nil, err
	}
	gasPrice, err := im.eth.SuggestGasPrice(c)
	if err != nil {
		c.WithField("err", err).Error("eth.SuggestGasPrice failed")
		return nil, err
	}

	value := im.toUnits(amount)
	cost := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(im.cfg.GasLimit))
	cost.Add(cost, value)

	balance, err := im.eth.BalanceAt(c, fromAddr, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "from": from}).Error("eth.BalanceAt failed")
		return nil, err
	}
	if balance.Cmp(cost) < 0 {
		c.WithFields(log.Fields{
			"from":    from,
			"balance": balance.String(),
			"cost":    cost.String(),
		}).Info("insufficient funds")
		return nil, ledger.ErrInsufficientFunds
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      im.cfg.GasLimit,
		To:       &toAddr,
		Value:    value,
	})
	return &ledger.UnsignedTransfer{
		From:    from.ToLower(),
		To:      to.ToLower(),
		Amount:  amount,
		ChainId: chainId,
		Tx:      tx,
	}, nil
}

func (im *impl) Sign(c ctx.Ctx, tx *ledger.UnsignedTransfer, key *ecdsa.PrivateKey) (*ledger.SignedTransfer, error) {
	if key == nil {
		return nil, ledger.ErrSignerMismatch
	}
	if !bEthereum.KeyAddress(key).Equals(tx.From) {
		return nil, ledger.ErrSignerMismatch
	}
	signed, err := types.SignTx(tx.Tx, types.LatestSignerForChainID(tx.ChainId), key)
	if err != nil {
		c.WithField("err", err).Error("types.SignTx failed")
		return nil, err
	}
	return &ledger.SignedTransfer{
		From:  tx.From,
		Hash:  domain.TxHash(signed.Hash().Hex()),
		Nonce: signed.Nonce(),
		Tx:    signed,
	}, nil
}

func (im *impl) Submit(c ctx.Ctx, tx *ledger.SignedTransfer) (*ledger.SubmitResult, error) {
	defer met.BumpTime("time", "func", "submit").End()
	c = ctx.WithValue(c, "txHash", tx.Hash)

	if err := im.eth.SendTransaction(c, tx.Tx); err != nil && isRejected(err) {
		met.BumpSum("submit.rejected", 1)
		c.WithField("err", err).Warn("eth.SendTransaction rejected")
		return &ledger.SubmitResult{
			Status: ledger.TransferFailed,
			Hash:   tx.Hash,
			Reason: err.Error(),
		}, nil
	} else if err != nil {
		// the transfer may be in the pool, only its receipt tells
		met.BumpSum("submit.unknown", 1)
		c.WithField("err", err).Warn("eth.SendTransaction outcome unknown")
	}

	waitCtx, cancel := ctx.WithTimeout(c, im.cfg.Finality)
	defer cancel()

	b := backoff.NewExponential(im.cfg.PollInterval, im.cfg.PollLimit)
	for {
		status, reason, err := im.receiptStatus(waitCtx, tx.Hash)
		if err != nil && waitCtx.Err() == nil {
			c.WithField("err", err).Warn("receipt poll failed")
		}
		if err == nil && status != ledger.TransferPending {
			met.BumpSum("submit."+string(status), 1)
			return &ledger.SubmitResult{Status: status, Hash: tx.Hash, Reason: reason}, nil
		}
		if err := b.Backoff(waitCtx); err != nil {
			met.BumpSum("submit.pending", 1)
			c.WithField("attempts", b.Attempts()).Warn("transfer finality not observed in time")
			return &ledger.SubmitResult{Status: ledger.TransferPending, Hash: tx.Hash, Reason: ledger.ErrTimeout.Error()}, nil
		}
	}
}

func (im *impl) TransferStatus(c ctx.Ctx, hash domain.TxHash) (ledger.TransferStatus, error) {
	status, _, err := im.receiptStatus(c, hash)
	return status, err
}

func (im *impl) ConfirmedNonce(c ctx.Ctx, address domain.Address) (uint64, error) {
	addr, err := bEthereum.ToAddress(address)
	if err != nil {
		return 0, err
	}
	nonce, err := im.eth.NonceAt(c, addr, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("eth.NonceAt failed")
		return 0, err
	}
	return nonce, nil
}

func (im *impl) receiptStatus(c ctx.Ctx, hash domain.TxHash) (ledger.TransferStatus, string, error) {
	receipt, err := im.eth.TransactionReceipt(c, common.HexToHash(string(hash)))
	if errors.Is(err, ethereum.NotFound) {
		return ledger.TransferPending, "", nil
	} else if err != nil {
		return "", "", err
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		return ledger.TransferSucceeded, "", nil
	}
	return ledger.TransferFailed, "transfer reverted", nil
}
