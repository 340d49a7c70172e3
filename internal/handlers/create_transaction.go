package handlers

//go:generate mockgen -source=create_transaction.go -destination=create_transaction_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
	"github.com/sbilibin2017/finance-flow/internal/services"
)

// receiptField is the multipart field carrying the optional receipt file.
const receiptField = "receipt"

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, fields models.TransactionFields, up *services.Upload) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for creating a transaction.
// The same names are used as multipart form fields.
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// income or expense
	// required: true
	// default: expense
	Type string `json:"type"`

	// Positive amount
	// required: true
	// default: 150000
	Amount json.Number `json:"amount" swaggertype:"string"`

	// Currency code
	// required: true
	// default: IDR
	Currency string `json:"currency"`

	// Transaction date, YYYY-MM-DD
	// required: true
	// default: 2024-05-07
	Date string `json:"date"`

	// Active category of the given type
	// required: true
	// default: Transport
	Category string `json:"category"`

	// Counterpart name
	// required: true
	// default: Taxi Co
	Party string `json:"party"`

	// Optional free text
	Description string `json:"description"`
}

func (req CreateTransactionRequest) fields() models.TransactionFields {
	return models.TransactionFields{
		Type:        req.Type,
		Amount:      req.Amount.String(),
		Currency:    req.Currency,
		Date:        req.Date,
		Category:    req.Category,
		Party:       req.Party,
		Description: req.Description,
	}
}

// CreateTransactionResponse represents a successful create response
// swagger:model CreateTransactionResponse
type CreateTransactionResponse struct {
	// Success message
	// default: Saved to DB!
	Message string `json:"message"`

	// Stored transaction
	Transaction *models.TransactionDB `json:"transaction"`

	// Generated transaction ID
	// default: TRX070524000001
	ID string `json:"id"`
}

// NewCreateTransactionHandler returns an HTTP handler for recording a transaction.
// @Summary Create transaction
// @Description Records a Pending transaction with an optional receipt file. Accepts multipart/form-data (file field "receipt") or a JSON body.
// @Tags transactions
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param type formData string true "income or expense"
// @Param amount formData string true "Positive amount"
// @Param currency formData string true "Currency code"
// @Param date formData string true "YYYY-MM-DD"
// @Param category formData string true "Category name"
// @Param party formData string true "Counterpart name"
// @Param description formData string false "Description"
// @Param receipt formData file false "Receipt file"
// @Success 201 {object} handlers.CreateTransactionResponse "Saved to DB!"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 500 {object} handlers.ErrorResponse "Attachment or storage write failed"
// @Failure 503 {object} handlers.ErrorResponse "Storage unavailable"
// @Router /api/transactions [post]
func NewCreateTransactionHandler(svc TransactionCreator, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		var (
			fields models.TransactionFields
			upload *services.Upload
		)

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "multipart/form-data":
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				log.Warnw("failed to parse multipart form", "error", err)
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid form data"})
				return
			}
			defer r.MultipartForm.RemoveAll()

			fields = models.TransactionFields{
				Type:        r.FormValue("type"),
				Amount:      r.FormValue("amount"),
				Currency:    r.FormValue("currency"),
				Date:        r.FormValue("date"),
				Category:    r.FormValue("category"),
				Party:       r.FormValue("party"),
				Description: r.FormValue("description"),
			}

			file, header, err := r.FormFile(receiptField)
			switch {
			case errors.Is(err, http.ErrMissingFile):
			case err != nil:
				log.Warnw("failed to read receipt file", "error", err)
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid receipt file"})
				return
			default:
				defer file.Close()
				upload = &services.Upload{Filename: header.Filename, Content: file}
			}

		default:
			var req CreateTransactionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				log.Warnw("failed to decode create transaction request", "error", err)
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
				return
			}
			fields = req.fields()
		}

		txn, err := svc.Create(ctx, fields, upload)
		if err != nil {
			log.Errorw("failed to create transaction", "error", err)
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, CreateTransactionResponse{
			Message:     "Saved to DB!",
			Transaction: txn,
			ID:          txn.ID,
		})
	}
}
