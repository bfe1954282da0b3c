package ledger

import (
	"context"
	"errors"
	"time"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"
	"cardvault/internal/services/cardgen"
	"cardvault/internal/services/collateral"
	"cardvault/internal/services/escrow"
	"cardvault/internal/services/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	cfg     Config
	factory *cardgen.Factory
	tokens  TokenLedger
	borrow  *collateral.Engine
	settle  *escrow.Engine
	store   CardStore
	emitter EventEmitter
	metrics MetricsCollector
	now     func() time.Time

	gate          gate
	owner         string
	cards         []*models.Card
	nativeReserve decimal.Decimal
}

// NewService builds the card registry.
func NewService(cfg Config, deps Dependencies) Service {
	if cfg.Owner == "" {
		panic("owner is required")
	}
	if cfg.TreasuryAccount == "" {
		panic("treasury account is required")
	}
	if deps.Tokens == nil {
		panic("token ledger is required")
	}
	if deps.Oracle == nil {
		panic("price oracle is required")
	}
	if deps.Rail == nil {
		panic("payment rail is required")
	}
	if deps.Store == nil {
		deps.Store = noopStore{}
	}
	if deps.Emitter == nil {
		deps.Emitter = noopEmitter{}
	}
	if deps.Metrics == nil {
		deps.Metrics = NoopMetricsCollector{}
	}

	cards := make([]*models.Card, len(cfg.InitialCards))
	for i, card := range cfg.InitialCards {
		if card == nil || card.ID != uint64(i) {
			panic("initial cards must be id-ordered and dense")
		}
		cards[i] = card.Clone()
	}

	reserve := treasuryReserve{tokens: deps.Tokens, account: cfg.TreasuryAccount}

	return &service{
		cfg:           cfg,
		factory:       cardgen.NewFactory(),
		tokens:        deps.Tokens,
		borrow:        collateral.NewEngine(deps.Oracle, reserve, cfg.Collateral),
		settle:        escrow.NewEngine(deps.Rail),
		store:         deps.Store,
		emitter:       deps.Emitter,
		metrics:       deps.Metrics,
		now:           time.Now,
		owner:         cfg.Owner,
		cards:         cards,
		nativeReserve: decimal.Zero,
	}
}

// treasuryReserve reads the borrow reserve fresh from the token ledger
// on every call.
type treasuryReserve struct {
	tokens  TokenLedger
	account string
}

func (t treasuryReserve) ReserveBalance(ctx context.Context) (decimal.Decimal, error) {
	return t.tokens.BalanceOf(ctx, t.account)
}

type noopStore struct{}

func (noopStore) SaveCards(context.Context, ...*models.Card) error { return nil }

type noopEmitter struct{}

func (noopEmitter) Emit(models.Event) {}

// --- deposits ---

func (s *service) DepositReserve(ctx context.Context, req DepositReserveRequest) (*DepositResult, error) {
	start := s.now()
	res, err := s.depositReserve(ctx, req)
	s.finish(OpDepositReserve, start, err)
	return res, err
}

func (s *service) depositReserve(ctx context.Context, req DepositReserveRequest) (*DepositResult, error) {
	if err := s.gate.enter(); err != nil {
		return nil, err
	}
	defer s.gate.exit()

	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if err := s.tokens.TransferFrom(ctx, req.Caller, s.cfg.TreasuryAccount, req.Amount); err != nil {
		return nil, domain.Wrap(domain.ErrTransferFailed, err)
	}

	s.emitter.Emit(models.NewEvent(models.EventValueDeposited, nil, req.Amount, models.NewJSON(map[string]interface{}{
		"target": "reserve",
		"caller": req.Caller,
	})))
	s.metrics.RecordAmount(OpDepositReserve, req.Amount)

	return &DepositResult{Amount: req.Amount, DepositedAt: s.now().UTC()}, nil
}

func (s *service) DepositNativeValue(ctx context.Context, req DepositNativeRequest) (*DepositResult, error) {
	start := s.now()
	res, err := s.depositNative(ctx, req)
	s.finish(OpDepositNative, start, err)
	return res, err
}

func (s *service) depositNative(_ context.Context, req DepositNativeRequest) (*DepositResult, error) {
	if err := s.gate.enter(); err != nil {
		return nil, err
	}
	defer s.gate.exit()

	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	s.gate.commit(func() {
		s.nativeReserve = s.nativeReserve.Add(req.Amount)
	})

	s.emitter.Emit(models.NewEvent(models.EventValueDeposited, nil, req.Amount, models.NewJSON(map[string]interface{}{
		"target": "native_reserve",
		"caller": req.Caller,
	})))
	s.metrics.RecordAmount(OpDepositNative, req.Amount)

	return &DepositResult{Amount: req.Amount, DepositedAt: s.now().UTC()}, nil
}

func (s *service) DepositCardCollateral(ctx context.Context, req CardDepositRequest) (*DepositResult, error) {
	start := s.now()
	res, err := s.depositCard(ctx, req, OpDepositCardCollateral)
	s.finish(OpDepositCardCollateral, start, err)
	return res, err
}

func (s *service) DepositCardSpendable(ctx context.Context, req CardDepositRequest) (*DepositResult, error) {
	start := s.now()
	res, err := s.depositCard(ctx, req, OpDepositCardSpendable)
	s.finish(OpDepositCardSpendable, start, err)
	return res, err
}

func (s *service) depositCard(ctx context.Context, req CardDepositRequest, op string) (*DepositResult, error) {
	if err := s.gate.enter(); err != nil {
		return nil, err
	}
	defer s.gate.exit()

	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	card, err := s.cardByID(req.CardID)
	if err != nil {
		return nil, err
	}
	staged := card.Clone()
	if !staged.Active() {
		return nil, domain.ErrCardInactive
	}

	if err := s.tokens.TransferFrom(ctx, req.Caller, s.cfg.TreasuryAccount, req.Amount); err != nil {
		return nil, domain.Wrap(domain.ErrTransferFailed, err)
	}

	target := "collateral"
	if op == OpDepositCardSpendable {
		staged.Spendable = staged.Spendable.Add(req.Amount)
		target = "spendable"
	} else {
		staged.Collateral = staged.Collateral.Add(req.Amount)
	}
	staged.UpdatedAt = s.now().UTC()

	s.commitCard(staged)
	s.persist(ctx, op, staged)
	s.emitter.Emit(models.NewEvent(models.EventValueDeposited, &staged.ID, req.Amount, models.NewJSON(map[string]interface{}{
		"target": target,
		"caller": req.Caller,
	})))
	s.metrics.RecordAmount(op, req.Amount)

	return &DepositResult{Amount: req.Amount, DepositedAt: s.now().UTC()}, nil
}

// --- owner-only mutations ---

func (s *service) GenerateCards(ctx context.Context, req GenerateCardsRequest) (*GenerateCardsResult, error) {
	start := s.now()
	res, err := s.generateCards(ctx, req)
	s.finish(OpGenerateCards, start, err)
	return res, err
}

func (s *service) generateCards(ctx context.Context, req GenerateCardsRequest) (*GenerateCardsResult, error) {
	if err := s.gate.enter(); err != nil {
		return nil, err
	}
	defer s.gate.exit()

	if err := s.requireOwner(req.Caller); err != nil {
		return nil, err
	}
	if req.Count <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.Count > cardgen.MaxBatchSize {
		return nil, domain.ErrBatchTooLarge
	}

	firstID := uint64(len(s.cards))
	batch, err := s.factory.GenerateBatch(firstID, req.Count)
	if err != nil {
		// Count bounds were checked above; the only failures left are
		// entropy reads, which are not the caller's fault.
		return nil, domain.Wrap(domain.ErrCardGeneration, err)
	}
	for i, card := range batch {
		card.ID = firstID + uint64(i)
	}

	s.gate.commit(func() {
		s.cards = append(s.cards, batch...)
	})

	s.persist(ctx, OpGenerateCards, batch...)
	for _, card := range batch {
		s.emitter.Emit(models.NewEvent(models.EventCardCreated, &card.ID, decimal.Zero, models.NewJSON(map[string]interface{}{
			"number":  card.MaskedNumber(),
			"network": string(card.Network),
		})))
	}

	return &GenerateCardsResult{FirstID: firstID, Count: len(batch)}, nil
}

func (s *service) Borrow(ctx context.Context, req BorrowRequest) (*collateral.BorrowResult, error) {
	start := s.now()
	res, err := s.borrowOp(ctx, req)
	s.finish(OpBorrow, start, err)
	return res, err
}

func (s *service) borrowOp(ctx context.Context, req BorrowRequest) (*collateral.BorrowResult, error) {
	if err := s.gate.enter(); err != nil {
		return nil, err
	}
	defer s.gate.exit()

	if err := s.requireOwner(req.Caller); err != nil {
		return nil, err
	}
	card, err := s.cardByID(req.CardID)
	if err != nil {
		return nil, err
	}
	staged := card.Clone()
	if err := guard.CheckCVV2(staged, req.CVV2); err != nil {
		return nil, err
	}

	result, err := s.borrow.Borrow(ctx, staged, req.Collateral, req.Leverage)
	if err != nil {
		return nil, err
	}

	s.commitCard(staged)
	s.persist(ctx, OpBorrow, staged)
	s.emitter.Emit(models.NewEvent(models.EventBorrowed, &staged.ID, result.Amount, models.NewJSON(map[string]interface{}{
		"collateral": req.Collateral.String(),
		"leverage":   req.Leverage,
		"price":      result.Price.String(),
	})))
	s.metrics.RecordAmount(OpBorrow, result.Amount)

	return &result, nil
}

func (s *service) RequestSpend(ctx context.Context, req SpendRequest) (*escrow.SpendRequest, error) {
	start := s.now()
	res, err := s.requestSpend(ctx, req)
	s.finish(OpRequestSpend, start, err)
	return res, err
}

func (s *service) requestSpend(ctx context.Context, req SpendRequest) (*escrow.SpendRequest, error) {
	if err := s.gate.enter(); err != nil {
		return nil, err
	}
	defer s.gate.exit()

	if err := s.requireOwner(req.Caller); err != nil {
		return nil, err
	}
	card, err := s.cardByID(req.CardID)
	if err != nil {
		return nil, err
	}
	staged := card.Clone()
	if err := guard.CheckPIN(staged, req.PIN); err != nil {
		return nil, err
	}
	if err := guard.CheckCVV2(staged, req.CVV2); err != nil {
		return nil, err
	}

	merchantRef := req.MerchantRef
	if merchantRef == "" {
		merchantRef = uuid.NewString()
	}

	request, err := s.settle.RequestSpend(staged, req.Amount, merchantRef)
	if err != nil {
		return nil, err
	}

	s.commitCard(staged)
	s.persist(ctx, OpRequestSpend, staged)
	s.emitter.Emit(models.NewEvent(models.EventSettlementRequested, &staged.ID, req.Amount, models.NewJSON(map[string]interface{}{
		"merchant_ref":     request.MerchantRef,
		"correlation_code": request.CorrelationCode,
	})))
	s.metrics.RecordAmount(OpRequestSpend, req.Amount)

	return &request, nil
}

func (s *service) ConfirmSettlement(ctx context.Context, req ConfirmSettlementRequest) (*escrow.Settlement, error) {
	start := s.now()
	res, err := s.confirmSettlement(ctx, req)
	s.finish(OpConfirmSettlement, start, err)
	return res, err
}

func (s *service) confirmSettlement(ctx context.Context, req ConfirmSettlementRequest) (*escrow.Settlement, error) {
	if err := s.gate.enter(); err != nil {
		return nil, err
	}
	defer s.gate.exit()

	if err := s.requireOwner(req.Caller); err != nil {
		return nil, err
	}
	card, err := s.cardByID(req.CardID)
	if err != nil {
		return nil, err
	}
	staged := card.Clone()
	if err := guard.CheckCVV2(staged, req.CVV2); err != nil {
		return nil, err
	}

	settlement, err := s.settle.Confirm(ctx, staged, req.Amount, req.Merchant, req.Success)
	if err != nil {
		return nil, err
	}

	s.commitCard(staged)
	s.persist(ctx, OpConfirmSettlement, staged)
	s.emitter.Emit(models.NewEvent(models.EventSettlementConfirmed, &staged.ID, req.Amount, models.NewJSON(map[string]interface{}{
		"merchant": req.Merchant,
		"success":  req.Success,
	})))
	if req.Success {
		s.emitter.Emit(models.NewEvent(models.EventSpendExecuted, &staged.ID, req.Amount, models.NewJSON(map[string]interface{}{
			"merchant": req.Merchant,
		})))
	}
	s.metrics.RecordAmount(OpConfirmSettlement, req.Amount)

	return &settlement, nil
}

func (s *service) TransferOwnership(_ context.Context, req TransferOwnershipRequest) error {
	start := s.now()
	err := s.transferOwnership(req)
	s.finish(OpTransferOwnership, start, err)
	return err
}

func (s *service) transferOwnership(req TransferOwnershipRequest) error {
	if err := s.gate.enter(); err != nil {
		return err
	}
	defer s.gate.exit()

	if err := s.requireOwner(req.Caller); err != nil {
		return err
	}
	if req.NewOwner == "" {
		return domain.ErrInvalidOwner
	}

	s.gate.commit(func() {
		s.owner = req.NewOwner
	})
	return nil
}

// --- helpers ---

// requireOwner must be called with the gate held.
func (s *service) requireOwner(caller string) error {
	if caller == "" || caller != s.owner {
		return domain.ErrNotOwner
	}
	return nil
}

// cardByID resolves a card id against the append-only collection. Safe
// without the state lock only while the caller holds the gate.
func (s *service) cardByID(id uint64) (*models.Card, error) {
	if id >= uint64(len(s.cards)) {
		return nil, domain.ErrInvalidCard
	}
	return s.cards[id], nil
}

// commitCard swaps the staged copy into the collection under the state
// write lock, so readers switch atomically from the old record to the
// fully mutated one.
func (s *service) commitCard(staged *models.Card) {
	s.gate.commit(func() {
		s.cards[staged.ID] = staged
	})
}

// persist writes card snapshots through to the store. The in-memory
// collection stays authoritative; failures are recorded, not surfaced.
func (s *service) persist(ctx context.Context, op string, cards ...*models.Card) {
	if err := s.store.SaveCards(ctx, cards...); err != nil {
		s.metrics.RecordError(op, "snapshot_failed")
	}
}

func (s *service) finish(op string, start time.Time, err error) {
	s.metrics.RecordOperationDuration(op, s.now().Sub(start))
	if err == nil {
		s.metrics.RecordOperationResult(op, "success")
		return
	}
	s.metrics.RecordOperationResult(op, "failure")
	var derr *domain.DomainError
	if errors.As(err, &derr) {
		s.metrics.RecordError(op, derr.Code)
	} else {
		s.metrics.RecordError(op, "internal")
	}
}
