package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/SscSPs/collections_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const accountEntity = "Account"

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	importService  portssvc.ImportSvc
	maxUploadBytes int64
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, is portssvc.ImportSvc, maxUploadBytes int64) *accountHandler {
	return &accountHandler{
		accountService: as,
		importService:  is,
		maxUploadBytes: maxUploadBytes,
	}
}

// registerAccountRoutes registers routes related to accounts. uploadMiddleware runs
// in front of the CSV upload only.
func registerAccountRoutes(rg *gin.RouterGroup, h *accountHandler, uploadMiddleware ...gin.HandlerFunc) {
	accounts := rg.Group("/accounts")
	{
		accounts.GET("/", h.listAccounts)
		accounts.POST("/", h.createAccount)
		accounts.POST("/upload-csv", append(uploadMiddleware, h.uploadCSV)...)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.PATCH("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.POST("/:id/consumers", h.linkConsumer)
		accounts.DELETE("/:id/consumers/:consumerID", h.unlinkConsumer)
	}
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts ordered by creation time. All filters are optional and combined with AND.
// @Tags accounts
// @Produce json
// @Param min_balance query number false "Minimum balance (inclusive)"
// @Param max_balance query number false "Maximum balance (inclusive)"
// @Param status query string false "Account status" Enums(IN_COLLECTION, PAID_IN_FULL, INACTIVE)
// @Param consumer_name query string false "Case-insensitive substring of a linked consumer's name"
// @Param cursor query string false "Pagination cursor"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or cursor"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/ [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := accountFilterFromParams(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var cursor *string
	if params.Cursor != "" {
		cursor = &params.Cursor
	}

	accounts, next, err := h.accountService.ListAccounts(c.Request.Context(), filter, cursor)
	if err != nil {
		writeServiceError(c, err, accountEntity, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts, next))
}

func accountFilterFromParams(params dto.ListAccountsParams) (domain.AccountFilter, error) {
	var filter domain.AccountFilter

	parseBound := func(name, raw string) (*decimal.Decimal, error) {
		if raw = strings.TrimSpace(raw); raw == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.New(name + " must be a number")
		}
		return &d, nil
	}

	var err error
	if filter.MinBalance, err = parseBound("min_balance", params.MinBalance); err != nil {
		return filter, err
	}
	if filter.MaxBalance, err = parseBound("max_balance", params.MaxBalance); err != nil {
		return filter, err
	}
	if params.Status != "" {
		status := domain.AccountStatus(params.Status)
		filter.Status = &status
	}
	filter.ConsumerName = params.ConsumerName
	return filter, nil
}

// createAccount godoc
// @Summary Create an account
// @Description Status defaults to IN_COLLECTION. The client must already exist.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "client_reference_no already exists"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/ [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, accountEntity, "Failed to create account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created",
		slog.Int64("account_id", account.ID), slog.String("client_reference_no", account.ClientReferenceNo))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account
// @Description Returns the account with its client, the client's agency and the linked consumers.
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id", accountEntity)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, accountEntity, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id", accountEntity)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, accountEntity, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Tags accounts
// @Param id path int true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id", accountEntity)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, accountEntity, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// linkConsumer godoc
// @Summary Link a consumer to an account
// @Description Linking an already linked consumer is a no-op answered with 200.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param link body dto.LinkConsumerRequest true "Consumer to link"
// @Success 201 {object} dto.AccountResponse "Link created"
// @Success 200 {object} dto.AccountResponse "Link already existed"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/consumers [post]
func (h *accountHandler) linkConsumer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", accountEntity)
	if !ok {
		return
	}
	var req dto.LinkConsumerRequest
	if !bindJSON(c, &req) {
		return
	}

	account, created, err := h.accountService.LinkConsumer(c.Request.Context(), id, req.ConsumerID)
	if err != nil {
		writeServiceError(c, err, accountEntity, "Failed to link consumer")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToAccountResponse(account))
}

// unlinkConsumer godoc
// @Summary Unlink a consumer from an account
// @Tags accounts
// @Param id path int true "Account ID"
// @Param consumerID path int true "Consumer ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/consumers/{consumerID} [delete]
func (h *accountHandler) unlinkConsumer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", accountEntity)
	if !ok {
		return
	}
	consumerID, ok := parseIDParam(c, "consumerID", "Account consumer link")
	if !ok {
		return
	}

	if err := h.accountService.UnlinkConsumer(c.Request.Context(), id, consumerID); err != nil {
		writeServiceError(c, err, "Account consumer link", "Failed to unlink consumer")
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadCSV godoc
// @Summary Import accounts from CSV
// @Description Reconciles accounts and consumers from a CSV with the columns "client reference no", "balance", "status", "consumer name", "consumer address" and "ssn". The whole file is validated before anything is written and is applied atomically.
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param collection_agency_id formData int true "Collection agency ID"
// @Param client_id formData int true "Client ID (must belong to the agency)"
// @Success 200 {object} domain.ImportResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/upload-csv [post]
func (h *accountHandler) uploadCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No file provided"})
		return
	}

	agencyID, ok := formIntParam(c, "collection_agency_id")
	if !ok {
		return
	}
	clientID, ok := formIntParam(c, "client_id")
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected error while importing CSV"})
		return
	}
	defer file.Close()

	logger.Info("Received CSV import",
		slog.String("filename", fileHeader.Filename), slog.Int64("size", fileHeader.Size),
		slog.Int64("collection_agency_id", agencyID), slog.Int64("client_id", clientID))

	result, err := h.importService.ImportAccountsCSV(c.Request.Context(), agencyID, clientID, file)
	if err != nil {
		if errors.Is(err, apperrors.ErrConfiguration) || errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrImport) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Unexpected error while importing CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Unexpected error while importing CSV"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// formIntParam reads a required integer multipart field, answering 400 when it is
// missing or malformed.
func formIntParam(c *gin.Context, name string) (int64, bool) {
	raw, exists := c.GetPostForm(name)
	if !exists {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: name + " is required"})
		return 0, false
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: name + " must be an integer"})
		return 0, false
	}
	return value, true
}
