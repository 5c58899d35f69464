package ledger

import (
	"crypto/ecdsa"
	"errors"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/swiftbid/base/ctx"
	bEthereum "github.com/x-xyz/swiftbid/base/ethereum"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/ledger"
	"github.com/x-xyz/swiftbid/domain/mocks"
)

var (
	mockCtx = ctx.Background()
	oneEth  = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	gwei    = big.NewInt(1000000000)
)

type ledgerSuite struct {
	suite.Suite
	eth  *mocks.EthClientRepo
	im   *impl
	key  *ecdsa.PrivateKey
	from domain.Address
	to   domain.Address
}

func (s *ledgerSuite) SetupTest() {
	s.eth = &mocks.EthClientRepo{}
	s.im = New(s.eth, Config{
		PollInterval: 5 * time.Millisecond,
		PollLimit:    10 * time.Millisecond,
		Finality:     50 * time.Millisecond,
	}).(*impl)

	key, _, err := bEthereum.GenerateKey()
	s.Require().NoError(err)
	s.key = key
	s.from = bEthereum.KeyAddress(key)
	s.to = domain.Address("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
}

func (s *ledgerSuite) TearDownTest() {
	s.eth.AssertExpectations(s.T())
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}

func (s *ledgerSuite) fromAddr() common.Address {
	return common.HexToAddress(string(s.from))
}

func (s *ledgerSuite) TestCheckFundable() {
	s.eth.On("BalanceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(big.NewInt(1), nil).Once()
	ok, err := s.im.CheckFundable(mockCtx, s.from)
	s.NoError(err)
	s.True(ok)

	// empty balance but has sent transactions
	s.eth.On("BalanceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(big.NewInt(0), nil).Once()
	s.eth.On("NonceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(uint64(3), nil).Once()
	ok, err = s.im.CheckFundable(mockCtx, s.from)
	s.NoError(err)
	s.True(ok)

	s.eth.On("BalanceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(big.NewInt(0), nil).Once()
	s.eth.On("NonceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(uint64(0), nil).Once()
	ok, err = s.im.CheckFundable(mockCtx, s.from)
	s.NoError(err)
	s.False(ok)

	_, err = s.im.CheckFundable(mockCtx, "garbage")
	s.Equal(domain.ErrInvalidAddress, err)
}

func (s *ledgerSuite) TestBalance() {
	s.eth.On("BalanceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(new(big.Int).Mul(oneEth, big.NewInt(2)), nil).Once()
	b, err := s.im.Balance(mockCtx, s.from)
	s.NoError(err)
	s.True(decimal.NewFromInt(2).Equal(b), b.String())
}

func (s *ledgerSuite) mockBuild(balance *big.Int) {
	s.eth.On("ChainID", mock.Anything).Return(big.NewInt(5), nil).Maybe()
	s.eth.On("PendingNonceAt", mock.Anything, s.fromAddr()).Return(uint64(7), nil).Once()
	s.eth.On("SuggestGasPrice", mock.Anything).Return(gwei, nil).Once()
	s.eth.On("BalanceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(balance, nil).Once()
}

func (s *ledgerSuite) TestBuildTransfer() {
	s.mockBuild(new(big.Int).Mul(oneEth, big.NewInt(10)))

	tx, err := s.im.BuildTransfer(mockCtx, s.from, s.to, decimal.RequireFromString("1.5"))
	s.Require().NoError(err)
	s.Equal(s.from, tx.From)
	s.Equal(s.to, tx.To)
	s.Equal(int64(5), tx.ChainId.Int64())
	s.Equal(uint64(7), tx.Tx.Nonce())
	s.Equal(uint64(21000), tx.Tx.Gas())
	s.Equal("1500000000000000000", tx.Tx.Value().String())
	s.Equal(common.HexToAddress(string(s.to)), *tx.Tx.To())
}

func (s *ledgerSuite) TestBuildTransferInsufficientFunds() {
	// covers the value but not the gas
	s.mockBuild(new(big.Int).Set(oneEth))

	_, err := s.im.BuildTransfer(mockCtx, s.from, s.to, decimal.NewFromInt(1))
	s.Equal(ledger.ErrInsufficientFunds, err)
}

func (s *ledgerSuite) TestBuildTransferBadParams() {
	_, err := s.im.BuildTransfer(mockCtx, s.from, s.to, decimal.Zero)
	s.Equal(domain.ErrBadParamInput, err)

	_, err = s.im.BuildTransfer(mockCtx, s.from, "nope", decimal.NewFromInt(1))
	s.Equal(domain.ErrInvalidAddress, err)
}

func (s *ledgerSuite) unsigned() *ledger.UnsignedTransfer {
	to := common.HexToAddress(string(s.to))
	return &ledger.UnsignedTransfer{
		From:    s.from,
		To:      s.to,
		Amount:  decimal.NewFromInt(1),
		ChainId: big.NewInt(5),
		Tx: types.NewTx(&types.LegacyTx{
			Nonce:    1,
			GasPrice: gwei,
			Gas:      21000,
			To:       &to,
			Value:    oneEth,
		}),
	}
}

func (s *ledgerSuite) TestSign() {
	signed, err := s.im.Sign(mockCtx, s.unsigned(), s.key)
	s.Require().NoError(err)
	s.Equal(domain.TxHash(signed.Tx.Hash().Hex()), signed.Hash)
	s.Equal(uint64(1), signed.Nonce)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(5)), signed.Tx)
	s.Require().NoError(err)
	s.True(s.from.Equals(domain.Address(sender.Hex())))

	other, _, err := bEthereum.GenerateKey()
	s.Require().NoError(err)
	_, err = s.im.Sign(mockCtx, s.unsigned(), other)
	s.Equal(ledger.ErrSignerMismatch, err)

	_, err = s.im.Sign(mockCtx, s.unsigned(), nil)
	s.Equal(ledger.ErrSignerMismatch, err)
}

func (s *ledgerSuite) signed() *ledger.SignedTransfer {
	signed, err := s.im.Sign(mockCtx, s.unsigned(), s.key)
	s.Require().NoError(err)
	return signed
}

func (s *ledgerSuite) TestSubmitSucceeded() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(nil).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(nil, ethereum.NotFound).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.True(res.Succeeded())
	s.Equal(tx.Hash, res.Hash)
}

func (s *ledgerSuite) TestSubmitReverted() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(nil).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil).Once()

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.Equal(ledger.TransferFailed, res.Status)
}

func (s *ledgerSuite) TestSubmitRejected() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(errors.New("nonce too low")).Once()

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.Equal(ledger.TransferFailed, res.Status)
	s.Equal("nonce too low", res.Reason)
}

type nodeError struct {
	msg  string
	code int
}

func (e *nodeError) Error() string  { return e.msg }
func (e *nodeError) ErrorCode() int { return e.code }

func (s *ledgerSuite) TestSubmitRejectedByNode() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(&nodeError{msg: "max fee per gas less than block base fee", code: -32000}).Once()

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.Equal(ledger.TransferFailed, res.Status)
}

func (s *ledgerSuite) TestSubmitBroadcastOutcomeUnknown() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(io.ErrUnexpectedEOF).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(nil, ethereum.NotFound)

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.Equal(ledger.TransferPending, res.Status)
	s.Equal(tx.Hash, res.Hash)
}

func (s *ledgerSuite) TestSubmitBroadcastLostButMined() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(errors.New("read tcp: connection reset by peer")).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.True(res.Succeeded())
}

func (s *ledgerSuite) TestSubmitAlreadyKnown() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(&nodeError{msg: "already known", code: -32000}).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.True(res.Succeeded())
}

func (s *ledgerSuite) TestIsRejected() {
	s.True(isRejected(errors.New("insufficient funds for gas * price + value")))
	s.True(isRejected(errors.New("Transaction underpriced")))
	s.True(isRejected(&nodeError{msg: "invalid opcode", code: -32000}))
	s.False(isRejected(&nodeError{msg: "already known", code: -32000}))
	s.False(isRejected(io.ErrUnexpectedEOF))
	s.False(isRejected(errors.New("context deadline exceeded")))
}

func (s *ledgerSuite) TestConfirmedNonce() {
	s.eth.On("NonceAt", mock.Anything, s.fromAddr(), (*big.Int)(nil)).Return(uint64(7), nil).Once()
	n, err := s.im.ConfirmedNonce(mockCtx, s.from)
	s.Require().NoError(err)
	s.Equal(uint64(7), n)

	_, err = s.im.ConfirmedNonce(mockCtx, "nope")
	s.Error(err)
}

func (s *ledgerSuite) TestSubmitTimeout() {
	tx := s.signed()
	s.eth.On("SendTransaction", mock.Anything, tx.Tx).Return(nil).Once()
	s.eth.On("TransactionReceipt", mock.Anything, tx.Tx.Hash()).Return(nil, ethereum.NotFound)

	res, err := s.im.Submit(mockCtx, tx)
	s.Require().NoError(err)
	s.Equal(ledger.TransferPending, res.Status)
	s.Equal(tx.Hash, res.Hash)
	s.Equal(ledger.ErrTimeout.Error(), res.Reason)
}

func (s *ledgerSuite) TestTransferStatus() {
	hash := common.HexToHash("0x01")
	s.eth.On("TransactionReceipt", mock.Anything, hash).Return(nil, ethereum.NotFound).Once()
	st, err := s.im.TransferStatus(mockCtx, domain.TxHash(hash.Hex()))
	s.NoError(err)
	s.Equal(ledger.TransferPending, st)

	s.eth.On("TransactionReceipt", mock.Anything, hash).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()
	st, err = s.im.TransferStatus(mockCtx, domain.TxHash(hash.Hex()))
	s.NoError(err)
	s.Equal(ledger.TransferSucceeded, st)

	boom := errors.New("boom")
	s.eth.On("TransactionReceipt", mock.Anything, hash).Return(nil, boom).Once()
	_, err = s.im.TransferStatus(mockCtx, domain.TxHash(hash.Hex()))
	s.Equal(boom, err)
}
