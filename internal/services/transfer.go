package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

//go:generate mockgen -source=transfer.go -destination=transfer_mock.go -package=services

// UnitOfWork runs fn inside one storage transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransferCardStore loads cards with a row lock and persists balance changes.
// GetByIDForUpdate returns nil, nil when the card does not exist.
type TransferCardStore interface {
	GetByIDForUpdate(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error)
	Save(ctx context.Context, card *models.CardDB) error
}

// TransactionWriter persists transaction records.
type TransactionWriter interface {
	Save(ctx context.Context, txn *models.TransactionDB) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// TransferService moves money between two cards of the same owner.
type TransferService struct {
	uow          UnitOfWork
	cards        TransferCardStore
	transactions TransactionWriter
	kafkaWriter  KafkaWriter
	now          func() time.Time
}

// NewTransferService creates a new TransferService. kafkaWriter may be nil.
func NewTransferService(
	uow UnitOfWork,
	cards TransferCardStore,
	transactions TransactionWriter,
	kafkaWriter KafkaWriter,
) *TransferService {
	return &TransferService{
		uow:          uow,
		cards:        cards,
		transactions: transactions,
		kafkaWriter:  kafkaWriter,
		now:          time.Now,
	}
}

// Transfer debits fromCardID and credits toCardID by amount on behalf of username.
//
// Precondition failures return before any record is written. Once the checks
// pass a transaction record is always persisted: COMPLETED together with both
// card updates, or CANCELED on its own when any of those writes fails, in
// which case the original error is returned wrapped in ErrTransactionPersistence.
// Every call creates a new record; retries transfer again.
func (s *TransferService) Transfer(
	ctx context.Context,
	fromCardID, toCardID uuid.UUID,
	amount decimal.Decimal,
	username string,
) (*models.TransactionDB, error) {
	var txn *models.TransactionDB

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		from, to, err := s.lockCards(ctx, fromCardID, toCardID)
		if err != nil {
			return err
		}

		now := s.now()
		if err := ValidateTransfer(from, to, amount, username, now); err != nil {
			return err
		}

		txn = models.NewTransaction(from.CardID, to.CardID, amount, now)

		from.Balance = from.Balance.Sub(amount)
		to.Balance = to.Balance.Add(amount)

		if err := s.cards.Save(ctx, from); err != nil {
			return err
		}
		if err := s.cards.Save(ctx, to); err != nil {
			return err
		}

		txn.Status = models.TransactionCompleted
		return s.transactions.Save(ctx, txn)
	})

	if err == nil {
		logger.Log.Infow("transfer completed",
			"transaction_id", txn.TransactionID, "from", fromCardID, "to", toCardID, "amount", amount.String())
		s.publishTransaction(ctx, txn, username)
		return txn, nil
	}

	if txn == nil {
		logger.Log.Warnw("transfer rejected",
			"from", fromCardID, "to", toCardID, "amount", amount.String(), "username", username, "error", err)
		return nil, err
	}

	logger.Log.Errorw("transfer failed after validation, recording canceled transaction",
		"transaction_id", txn.TransactionID, "error", err)

	txn.Status = models.TransactionCanceled
	if auditErr := s.uow.Do(ctx, func(ctx context.Context) error {
		return s.transactions.Save(ctx, txn)
	}); auditErr != nil {
		logger.Log.Errorw("failed to record canceled transaction",
			"transaction_id", txn.TransactionID, "error", auditErr)
	} else {
		s.publishTransaction(ctx, txn, username)
	}

	return nil, fmt.Errorf("%w: %w", ErrTransactionPersistence, err)
}

// lockCards loads both cards with row locks taken in id order so concurrent
// transfers over the same pair cannot deadlock. Missing cards are reported
// source first.
func (s *TransferService) lockCards(ctx context.Context, fromCardID, toCardID uuid.UUID) (from, to *models.CardDB, err error) {
	if fromCardID == toCardID {
		from, err = s.cards.GetByIDForUpdate(ctx, fromCardID)
		if err != nil {
			return nil, nil, err
		}
		if from == nil {
			return nil, nil, cardNotFound(fromCardID)
		}
		return from, from, nil
	}

	first, second := fromCardID, toCardID
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}

	loaded := make(map[uuid.UUID]*models.CardDB, 2)
	for _, id := range []uuid.UUID{first, second} {
		card, err := s.cards.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		loaded[id] = card
	}

	from, to = loaded[fromCardID], loaded[toCardID]
	if from == nil {
		return nil, nil, cardNotFound(fromCardID)
	}
	if to == nil {
		return nil, nil, cardNotFound(toCardID)
	}
	return from, to, nil
}

// publishTransaction publishes a transaction outcome to Kafka.
func (s *TransferService) publishTransaction(ctx context.Context, txn *models.TransactionDB, username string) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	event := models.TransactionEvent{
		TransactionID: txn.TransactionID.String(),
		Timestamp:     txn.CreatedAt.Unix(),
		FromCardID:    txn.FromCardID.String(),
		ToCardID:      txn.ToCardID.String(),
		Amount:        txn.Amount.String(),
		Status:        string(txn.Status),
		Initiator:     username,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction published to Kafka", "transaction_id", txn.TransactionID, "status", txn.Status)
	}
}
