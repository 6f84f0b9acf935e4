package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// TransactionReader defines read operations over transaction records.
type TransactionReader interface {
	GetByID(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error)
	List(ctx context.Context, page models.PageRequest) ([]models.TransactionDB, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page models.PageRequest) ([]models.TransactionDB, int, error)
	ListByCard(ctx context.Context, cardID uuid.UUID, page models.PageRequest) ([]models.TransactionDB, int, error)
}

// TransactionDeleter removes transaction records.
type TransactionDeleter interface {
	Delete(ctx context.Context, transactionID uuid.UUID) error
}

// UsernameGetter looks a user up by username; a missing user is nil, nil.
type UsernameGetter interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// TransactionService exposes the transfer history.
type TransactionService struct {
	reader  TransactionReader
	deleter TransactionDeleter
	users   UsernameGetter
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader TransactionReader, deleter TransactionDeleter, users UsernameGetter) *TransactionService {
	return &TransactionService{
		reader:  reader,
		deleter: deleter,
		users:   users,
	}
}

// List returns a page of all transactions.
func (s *TransactionService) List(ctx context.Context, page models.PageRequest) (*models.Page[models.TransactionDB], error) {
	page = page.Normalize()
	items, total, err := s.reader.List(ctx, page)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "error", err)
		return nil, err
	}
	return newTransactionPage(items, page, total), nil
}

// GetByID returns a transaction or ErrTransactionNotFound.
func (s *TransactionService) GetByID(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error) {
	txn, err := s.reader.GetByID(ctx, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to get transaction", "transactionID", transactionID, "error", err)
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// ListByUser returns transactions touching any card owned by userID.
func (s *TransactionService) ListByUser(ctx context.Context, userID uuid.UUID, page models.PageRequest) (*models.Page[models.TransactionDB], error) {
	page = page.Normalize()
	items, total, err := s.reader.ListByUser(ctx, userID, page)
	if err != nil {
		logger.Log.Errorw("failed to list transactions by user", "userID", userID, "error", err)
		return nil, err
	}
	return newTransactionPage(items, page, total), nil
}

// ListByUsername returns the transactions of the principal username.
func (s *TransactionService) ListByUsername(ctx context.Context, username string, page models.PageRequest) (*models.Page[models.TransactionDB], error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.ListByUser(ctx, user.UserID, page)
}

// ListByCard returns transactions where cardID is the source or destination.
func (s *TransactionService) ListByCard(ctx context.Context, cardID uuid.UUID, page models.PageRequest) (*models.Page[models.TransactionDB], error) {
	page = page.Normalize()
	items, total, err := s.reader.ListByCard(ctx, cardID, page)
	if err != nil {
		logger.Log.Errorw("failed to list transactions by card", "cardID", cardID, "error", err)
		return nil, err
	}
	return newTransactionPage(items, page, total), nil
}

// Delete removes a transaction record.
func (s *TransactionService) Delete(ctx context.Context, transactionID uuid.UUID) error {
	if _, err := s.GetByID(ctx, transactionID); err != nil {
		return err
	}
	if err := s.deleter.Delete(ctx, transactionID); err != nil {
		logger.Log.Errorw("failed to delete transaction", "transactionID", transactionID, "error", err)
		return err
	}
	return nil
}

func newTransactionPage(items []models.TransactionDB, page models.PageRequest, total int) *models.Page[models.TransactionDB] {
	return &models.Page[models.TransactionDB]{Items: items, Page: page.Page, Size: page.Size, Total: total}
}
