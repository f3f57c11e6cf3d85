package tip

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"tradefeed/internal/api"
	"tradefeed/internal/model"
)

// State is the tip flow position. The flow only moves forward:
// Idle -> Submitted -> Confirmed -> Recorded.
type State int

const (
	StateIdle State = iota
	StateSubmitted
	StateConfirmed
	StateRecorded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitted:
		return "submitted"
	case StateConfirmed:
		return "confirmed"
	case StateRecorded:
		return "recorded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrBadTransition reports a step attempted out of order.
var ErrBadTransition = errors.New("tip flow: invalid transition")

// Sender submits the on-chain stablecoin transfer and reports inclusion.
type Sender interface {
	Transfer(ctx context.Context, to string, amount *big.Int) (string, error)
	WaitMined(ctx context.Context, txHash string) error
}

// Recorder records a confirmed tip server-side.
type Recorder interface {
	RecordTip(ctx context.Context, postID int64, req api.RecordTipRequest) (model.Tip, error)
}

// Config fixes the tip parameters: the stablecoin contract, the amount in the
// token's smallest unit, and the parties.
type Config struct {
	PostID    int64
	Recipient string
	Tipper    string
	Amount    *big.Int
}

// Flow walks one tip through submit, confirm, and record. Each step may fail
// with a user-visible message and is never retried automatically; abandoning
// the flow before Recorded has no side effects beyond what already committed
// on-chain.
type Flow struct {
	sender   Sender
	recorder Recorder
	cfg      Config
	logger   *zap.Logger

	mu     sync.Mutex
	state  State
	txHash string
	tip    model.Tip
}

func NewFlow(sender Sender, recorder Recorder, cfg Config, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		sender:   sender,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current flow position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// TxHash returns the transfer hash once submitted.
func (f *Flow) TxHash() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.txHash
}

// Tip returns the recorded tip after the final step.
func (f *Flow) Tip() model.Tip {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tip
}

// Submit sends the on-chain transfer. Idle -> Submitted.
func (f *Flow) Submit(ctx context.Context) error {
	if err := f.require(StateIdle); err != nil {
		return err
	}

	txHash, err := f.sender.Transfer(ctx, f.cfg.Recipient, f.cfg.Amount)
	if err != nil {
		return fmt.Errorf("submit tip transfer: %w", err)
	}

	f.mu.Lock()
	f.txHash = txHash
	f.state = StateSubmitted
	f.mu.Unlock()

	f.logger.Info("tip submitted",
		zap.Int64("post_id", f.cfg.PostID),
		zap.String("tx_hash", txHash),
	)
	return nil
}

// AwaitConfirmation blocks until the transfer is mined. Submitted -> Confirmed.
func (f *Flow) AwaitConfirmation(ctx context.Context) error {
	if err := f.require(StateSubmitted); err != nil {
		return err
	}

	if err := f.sender.WaitMined(ctx, f.TxHash()); err != nil {
		return fmt.Errorf("confirm tip transfer: %w", err)
	}

	f.mu.Lock()
	f.state = StateConfirmed
	f.mu.Unlock()
	return nil
}

// Record reports the confirmed tip to the backend, exactly once, keyed by
// (post id, tx hash). Confirmed -> Recorded.
func (f *Flow) Record(ctx context.Context) error {
	if err := f.require(StateConfirmed); err != nil {
		return err
	}

	tip, err := f.recorder.RecordTip(ctx, f.cfg.PostID, api.RecordTipRequest{
		TipperAddress: f.cfg.Tipper,
		TxHash:        f.TxHash(),
	})
	if err != nil {
		return fmt.Errorf("record tip: %w", err)
	}

	f.mu.Lock()
	f.tip = tip
	f.state = StateRecorded
	f.mu.Unlock()

	f.logger.Info("tip recorded",
		zap.Int64("post_id", f.cfg.PostID),
		zap.Int64("tip_id", tip.ID),
	)
	return nil
}

// Run drives the flow end to end.
func (f *Flow) Run(ctx context.Context) error {
	if err := f.Submit(ctx); err != nil {
		return err
	}
	if err := f.AwaitConfirmation(ctx); err != nil {
		return err
	}
	return f.Record(ctx)
}

func (f *Flow) require(want State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != want {
		return fmt.Errorf("%w: in %s, want %s", ErrBadTransition, f.state, want)
	}
	return nil
}

// UserMessage converts a flow error into the string shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
