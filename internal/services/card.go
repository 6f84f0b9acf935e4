package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// CardReader defines card read operations. Cards come back with their status
// already derived from the expiry date; a missing card is nil, nil.
type CardReader interface {
	GetByID(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error)
	List(ctx context.Context, page models.PageRequest) ([]models.CardDB, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.CardDB, int, error)
}

// CardWriter defines card write operations.
type CardWriter interface {
	GetByIDForUpdate(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error)
	Save(ctx context.Context, card *models.CardDB) error
	Delete(ctx context.Context, cardID uuid.UUID) error
}

// UserGetter looks a user up by id; a missing user is nil, nil.
type UserGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// CardNumberIssuer returns a fresh unique card number.
type CardNumberIssuer interface {
	Generate(ctx context.Context) (string, error)
}

// CardService manages cards: issuing, blocking, topping up and deleting.
type CardService struct {
	uow     UnitOfWork
	reader  CardReader
	writer  CardWriter
	users   UserGetter
	numbers CardNumberIssuer
	now     func() time.Time
}

// NewCardService creates a new CardService.
func NewCardService(
	uow UnitOfWork,
	reader CardReader,
	writer CardWriter,
	users UserGetter,
	numbers CardNumberIssuer,
) *CardService {
	return &CardService{
		uow:     uow,
		reader:  reader,
		writer:  writer,
		users:   users,
		numbers: numbers,
		now:     time.Now,
	}
}

// List returns a page of all cards.
func (s *CardService) List(ctx context.Context, page models.PageRequest) (*models.Page[models.CardDB], error) {
	page = page.Normalize()
	cards, total, err := s.reader.List(ctx, page)
	if err != nil {
		logger.Log.Errorw("failed to list cards", "error", err)
		return nil, err
	}
	return &models.Page[models.CardDB]{Items: cards, Page: page.Page, Size: page.Size, Total: total}, nil
}

// GetByID returns a card or ErrCardNotFound.
func (s *CardService) GetByID(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error) {
	card, err := s.reader.GetByID(ctx, cardID)
	if err != nil {
		logger.Log.Errorw("failed to get card", "cardID", cardID, "error", err)
		return nil, err
	}
	if card == nil {
		return nil, cardNotFound(cardID)
	}
	return card, nil
}

// ListByOwner returns a page of the cards owned by ownerID.
func (s *CardService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) (*models.Page[models.CardDB], error) {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	page = page.Normalize()
	cards, total, err := s.reader.ListByOwner(ctx, ownerID, page)
	if err != nil {
		logger.Log.Errorw("failed to list cards by owner", "ownerID", ownerID, "error", err)
		return nil, err
	}
	return &models.Page[models.CardDB]{Items: cards, Page: page.Page, Size: page.Size, Total: total}, nil
}

// Create issues a new ACTIVE card with zero balance for ownerID.
func (s *CardService) Create(ctx context.Context, ownerID uuid.UUID, expiryDate time.Time) (*models.CardDB, error) {
	if !expiryDate.After(s.now()) {
		return nil, validationError("expiry date must be in the future")
	}

	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	number, err := s.numbers.Generate(ctx)
	if err != nil {
		logger.Log.Errorw("failed to generate card number", "ownerID", ownerID, "error", err)
		return nil, err
	}

	card := models.NewCard(number, expiryDate, ownerID)
	if err := s.writer.Save(ctx, card); err != nil {
		logger.Log.Errorw("failed to save card", "ownerID", ownerID, "error", err)
		return nil, err
	}

	logger.Log.Infow("card issued", "cardID", card.CardID, "ownerID", ownerID, "number", card.MaskedNumber())
	return card, nil
}

// Block sets the card status to BLOCKED.
func (s *CardService) Block(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error) {
	var card *models.CardDB
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.lockCard(ctx, cardID)
		if err != nil {
			return err
		}
		card.Status = models.CardBlocked
		return s.writer.Save(ctx, card)
	})
	if err != nil {
		logger.Log.Errorw("failed to block card", "cardID", cardID, "error", err)
		return nil, err
	}
	return card, nil
}

// TopUp credits amount to a card owned by username.
func (s *CardService) TopUp(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal, username string) (*models.CardDB, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var card *models.CardDB
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.lockCard(ctx, cardID)
		if err != nil {
			return err
		}
		if card.OwnerUsername != username {
			return ErrTopUpForbidden
		}
		card.Balance = card.Balance.Add(amount)
		return s.writer.Save(ctx, card)
	})
	if err != nil {
		logger.Log.Errorw("failed to top up card", "cardID", cardID, "amount", amount.String(), "error", err)
		return nil, err
	}
	return card, nil
}

// Delete removes a card.
func (s *CardService) Delete(ctx context.Context, cardID uuid.UUID) error {
	if _, err := s.GetByID(ctx, cardID); err != nil {
		return err
	}
	if err := s.writer.Delete(ctx, cardID); err != nil {
		logger.Log.Errorw("failed to delete card", "cardID", cardID, "error", err)
		return err
	}
	return nil
}

func (s *CardService) lockCard(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error) {
	card, err := s.writer.GetByIDForUpdate(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, cardNotFound(cardID)
	}
	return card, nil
}

func (s *CardService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return err
	}
	if user == nil {
		return userNotFound(userID)
	}
	return nil
}
