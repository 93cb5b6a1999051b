package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portssvc "github.com/SscSPs/litally_fintech_api/internal/core/ports/services"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
	"github.com/SscSPs/litally_fintech_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	accountService     portssvc.AccountReaderSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, as portssvc.AccountReaderSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		accountService:     as,
	}
}

// registerTransactionRoutes registers routes related to transactions. Status
// resolution is admin only.
func registerTransactionRoutes(
	rg *gin.RouterGroup,
	transactionService portssvc.TransactionSvcFacade,
	accountService portssvc.AccountReaderSvc,
	access middleware.AdminChecker,
) {
	h := newTransactionHandler(transactionService, accountService)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("/account/:accountID", h.listAccountTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID/status", middleware.AdminOnly(access), h.updateTransactionStatus)
	}
}

// createTransaction godoc
// @Summary Post a transaction
// @Description Sends the transaction through the payment gateway. The returned status is COMPLETED, FAILED or PENDING.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionEnvelope
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 502 {object} ErrorResponse "Payment gateway failure"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	// Only the owner or an admin may post against the account.
	if req.AccountID != "" {
		if _, err := h.accountService.GetAccountForUser(ctx, req.AccountID, userID); err != nil {
			respondWithError(c, err)
			return
		}
	}

	txn, err := h.transactionService.CreateTransaction(ctx, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)))
	c.JSON(http.StatusCreated, dto.TransactionEnvelope{
		Message:     creationMessage(txn.Status),
		Transaction: dto.ToTransactionResponse(txn),
	})
}

func creationMessage(status domain.TransactionStatus) string {
	switch status {
	case domain.StatusCompleted:
		return "Transaction created and completed successfully"
	case domain.StatusFailed:
		return "Transaction failed"
	default:
		return "Transaction created and pending confirmation"
	}
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Visible to the account owner and to admins
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionDetails(c.Request.Context(), c.Param("transactionID"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listAccountTransactions godoc
// @Summary List the transactions of an account
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /transactions/account/{accountID} [get]
func (h *transactionHandler) listAccountTransactions(c *gin.Context) {
	listTransactionsForAccount(c, h.accountService, h.transactionService)
}

// updateTransactionStatus godoc
// @Summary Resolve a pending transaction
// @Description Admin only. COMPLETED applies the amount to the account balance.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   status body dto.UpdateTransactionStatusRequest true "Target status"
// @Success 200 {object} dto.TransactionEnvelope
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Admin access required"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 409 {object} ErrorResponse "Transaction is not pending"
// @Security BearerAuth
// @Router /transactions/{transactionID}/status [put]
func (h *transactionHandler) updateTransactionStatus(c *gin.Context) {
	var req dto.UpdateTransactionStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.transactionService.UpdateTransactionStatus(c.Request.Context(), c.Param("transactionID"), req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TransactionEnvelope{
		Message:     fmt.Sprintf("Transaction status updated to %s successfully", txn.Status),
		Transaction: dto.ToTransactionResponse(txn),
	})
}
