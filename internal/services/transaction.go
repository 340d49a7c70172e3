package services

//go:generate mockgen -source=transaction.go -destination=transaction_mock.go -package=services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
	"github.com/sbilibin2017/finance-flow/internal/trxid"
)

// SequenceSource hands out strictly increasing, durable sequence values.
type SequenceSource interface {
	Next(ctx context.Context) (int64, error)
}

// TransactionWriter defines transaction insert and approval.
type TransactionWriter interface {
	Save(ctx context.Context, txn *models.TransactionDB) (*models.TransactionDB, error)
	Approve(ctx context.Context, id, approvedBy string, approvedAt time.Time) (*models.TransactionDB, error)
}

// TransactionReader defines transaction reads.
type TransactionReader interface {
	GetStatus(ctx context.Context, id string) (string, error)
	List(ctx context.Context) ([]models.TransactionDB, error)
}

// CategoryLister returns active categories for a transaction type. Create
// checks against it, so it should read the database rather than a cache.
type CategoryLister interface {
	ListActive(ctx context.Context, txnType string) ([]models.Category, error)
}

// AttachmentResolver stores uploads and removes them again on failure.
type AttachmentResolver interface {
	Resolve(ctx context.Context, up *Upload) (*string, error)
	Remove(ctx context.Context, ref string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// maxAmount is the first value that no longer fits NUMERIC(20,2).
var maxAmount = decimal.New(1, 18)

// TransactionService handles transaction creation, approval and listing.
type TransactionService struct {
	sequence    SequenceSource
	writer      TransactionWriter
	reader      TransactionReader
	categories  CategoryLister
	attachments AttachmentResolver
	kafkaWriter KafkaWriter
	now         func() time.Time
}

// NewTransactionService creates a new TransactionService.
// categories and kafkaWriter may be nil.
func NewTransactionService(
	sequence SequenceSource,
	writer TransactionWriter,
	reader TransactionReader,
	categories CategoryLister,
	attachments AttachmentResolver,
	kafkaWriter KafkaWriter,
) *TransactionService {
	return &TransactionService{
		sequence:    sequence,
		writer:      writer,
		reader:      reader,
		categories:  categories,
		attachments: attachments,
		kafkaWriter: kafkaWriter,
		now:         time.Now,
	}
}

// validate checks the submitted fields and returns a normalized row.
func validate(fields models.TransactionFields) (*models.TransactionDB, error) {
	txnType, ok := normalizeType(fields.Type)
	if !ok {
		return nil, invalid("type", "must be income or expense")
	}

	amountStr := strings.TrimSpace(fields.Amount)
	if amountStr == "" {
		return nil, invalid("amount", "is required")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, invalid("amount", "must be a number")
	}
	if !amount.IsPositive() {
		return nil, invalid("amount", "must be positive")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return nil, invalid("amount", "must have at most 2 decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return nil, invalid("amount", "must be less than 10^18")
	}

	currency := strings.ToUpper(strings.TrimSpace(fields.Currency))
	if currency == "" {
		return nil, invalid("currency", "is required")
	}

	dateStr := strings.TrimSpace(fields.Date)
	if dateStr == "" {
		return nil, invalid("date", "is required")
	}
	date, err := models.ParseDate(dateStr)
	if err != nil {
		return nil, invalid("date", "must be YYYY-MM-DD")
	}

	category := strings.TrimSpace(fields.Category)
	if category == "" {
		return nil, invalid("category", "is required")
	}

	party := strings.TrimSpace(fields.Party)
	if party == "" {
		return nil, invalid("party", "is required")
	}

	txn := &models.TransactionDB{
		Type:     txnType,
		Amount:   amount,
		Currency: currency,
		Date:     date,
		Category: category,
		Party:    party,
		Status:   models.StatusPending,
	}
	if desc := strings.TrimSpace(fields.Description); desc != "" {
		txn.Description = &desc
	}
	return txn, nil
}

// checkCategory replaces txn.Category with the catalog spelling of a matching
// active category of the same type.
func (s *TransactionService) checkCategory(ctx context.Context, txn *models.TransactionDB) error {
	if s.categories == nil {
		return nil
	}
	categories, err := s.categories.ListActive(ctx, txn.Type)
	if err != nil {
		return readError(err)
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, txn.Category) {
			txn.Category = c.Name
			return nil
		}
	}
	return invalid("category", "is not an active "+txn.Type+" category")
}

// discardAttachment removes an attachment whose transaction was never stored.
// It runs even when ctx is already cancelled.
func (s *TransactionService) discardAttachment(ctx context.Context, ref *string) {
	if ref == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := s.attachments.Remove(ctx, *ref); err != nil {
		logger.FromContext(ctx).Errorw("orphaned attachment", "receipt_url", *ref, "error", err)
	}
}

// Create validates fields, stores the optional upload, reserves a sequence
// value and inserts the new Pending transaction.
func (s *TransactionService) Create(ctx context.Context, fields models.TransactionFields, up *Upload) (*models.TransactionDB, error) {
	log := logger.FromContext(ctx)

	txn, err := validate(fields)
	if err != nil {
		log.Warnw("invalid transaction", "error", err)
		return nil, err
	}

	if err := s.checkCategory(ctx, txn); err != nil {
		log.Warnw("category check failed", "category", txn.Category, "type", txn.Type, "error", err)
		return nil, err
	}

	receiptURL, err := s.attachments.Resolve(ctx, up)
	if err != nil {
		return nil, err
	}
	txn.ReceiptURL = receiptURL

	// The sequence is only advanced once the attachment is safely stored.
	seq, err := s.sequence.Next(ctx)
	if err != nil {
		log.Errorw("failed to reserve transaction sequence", "error", err)
		s.discardAttachment(ctx, receiptURL)
		return nil, readError(err)
	}
	now := s.now()
	txn.ID = trxid.Format(now, seq)
	txn.CreatedAt = now

	saved, err := s.writer.Save(ctx, txn)
	if err != nil {
		log.Errorw("failed to save transaction", "id", txn.ID, "error", err)
		s.discardAttachment(ctx, receiptURL)
		return nil, writeError(err)
	}

	log.Infow("transaction created", "id", saved.ID, "type", saved.Type, "amount", saved.Amount.String())
	s.publishEvent(ctx, saved, "created")

	return saved, nil
}

// Approve moves a Pending transaction to Completed. Completed transactions
// are never re-stamped: they yield ErrAlreadyApproved.
func (s *TransactionService) Approve(ctx context.Context, id, approvedBy string) (*models.TransactionDB, error) {
	log := logger.FromContext(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid("id", "is required")
	}
	approvedBy = strings.TrimSpace(approvedBy)
	if approvedBy == "" {
		return nil, invalid("approved_by", "is required")
	}

	updated, err := s.writer.Approve(ctx, id, approvedBy, s.now())
	if err == nil {
		log.Infow("transaction approved", "id", id, "approved_by", approvedBy)
		s.publishEvent(ctx, updated, "approved")
		return updated, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Errorw("failed to approve transaction", "id", id, "error", err)
		return nil, writeError(err)
	}

	status, err := s.reader.GetStatus(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		log.Errorw("failed to read transaction status", "id", id, "error", err)
		return nil, readError(err)
	case status == models.StatusCompleted:
		log.Warnw("transaction already approved", "id", id, "approved_by", approvedBy)
		return nil, ErrAlreadyApproved
	default:
		return nil, ErrNotFound
	}
}

// List returns all transactions, most recent date first.
func (s *TransactionService) List(ctx context.Context) ([]models.TransactionDB, error) {
	txns, err := s.reader.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list transactions", "error", err)
		return nil, readError(err)
	}
	return txns, nil
}

// publishEvent publishes a transaction event to Kafka. Failures are logged only.
func (s *TransactionService) publishEvent(ctx context.Context, txn *models.TransactionDB, operation string) {
	log := logger.FromContext(ctx)
	if s.kafkaWriter == nil {
		log.Debugw("Kafka writer not configured, skipping publishing", "transaction_id", txn.ID)
		return
	}

	event := models.TransactionEvent{
		TransactionID: txn.ID,
		Timestamp:     s.now().Unix(),
		Operation:     operation,
		Type:          txn.Type,
		Amount:        txn.Amount.String(),
		Currency:      txn.Currency,
		Status:        txn.Status,
	}
	if txn.ApprovedBy != nil {
		event.ApprovedBy = *txn.ApprovedBy
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("Failed to marshal transaction event", "transaction_id", txn.ID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(txn.ID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		log.Errorw("Failed to publish transaction event", "transaction_id", txn.ID, "operation", operation, "error", err)
	} else {
		log.Infow("Transaction event published", "transaction_id", txn.ID, "operation", operation)
	}
}
