package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rkartside/quoter-backend/api/middleware"
	"github.com/rkartside/quoter-backend/api/responses"
	"github.com/rkartside/quoter-backend/api/validators"
	"github.com/rkartside/quoter-backend/internal/quotes"
	"github.com/rkartside/quoter-backend/internal/rates"
	"github.com/rkartside/quoter-backend/pkg/enums"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
	"github.com/rkartside/quoter-backend/pkg/logger"
	"github.com/rkartside/quoter-backend/pkg/pagination"
)

const maxClientNameLen = 120

type createQuoteRequest struct {
	StoreID        string `json:"store_id" validate:"required"`
	ClientName     string `json:"client_name" validate:"required"`
	NumberOfSpaces int    `json:"number_of_spaces" validate:"required,min=1"`
	SaleAmount     int64  `json:"sale_amount" validate:"omitempty,min=0"`
}

type bulkQuoteIDsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

type bulkQuoteStatusRequest struct {
	IDs    []int64 `json:"ids" validate:"required,min=1"`
	Status string  `json:"status" validate:"required"`
}

func actorFromContext(r *http.Request) (quotes.Actor, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return quotes.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return quotes.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}

	role, err := enums.ParseMemberRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return quotes.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}

	actor := quotes.Actor{UserID: uid, Role: role}
	if storeID := middleware.StoreIDFromContext(r.Context()); storeID != "" {
		sid, err := uuid.Parse(storeID)
		if err != nil {
			return quotes.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid store id")
		}
		actor.ActiveStoreID = &sid
	}
	return actor, nil
}

// QuoteCreate prices the request against the store's configuration and
// persists the resulting quote as unconfirmed.
func QuoteCreate(quoteSvc quotes.Service, rateSvc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if quoteSvc == nil || rateSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := uuid.Parse(body.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		rateAmount, err := rateSvc.CalculateForStore(r.Context(), storeID, rates.CalculateInput{
			NumberOfSpaces: body.NumberOfSpaces,
			SaleAmount:     body.SaleAmount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := quoteSvc.Create(r.Context(), actor, quotes.CreateQuoteDTO{
			StoreID:        storeID,
			ClientName:     validators.SanitizeString(body.ClientName, maxClientNameLen),
			NumberOfSpaces: body.NumberOfSpaces,
			SaleAmount:     body.SaleAmount,
		}, rateAmount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// QuoteConfirm marks a quote as confirmed. Confirming twice is a no-op.
func QuoteConfirm(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		id, err := parseQuoteID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Confirm(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// QuoteList returns a filtered, sorted, paginated slice of quotes scoped to
// the actor's active store unless an admin asks for every store.
// defaultPageSize applies when the request omits page_size; values outside
// the pagination bounds fall back to the package default.
func QuoteList(svc quotes.Service, defaultPageSize int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		actor, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := listInputFromQuery(r, defaultPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// QuoteBulkDelete removes the listed quotes in one call.
func QuoteBulkDelete(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var body bulkQuoteIDsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.DeleteBulk(r.Context(), body.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"deleted": deleted})
	}
}

// QuoteBulkStatus applies a workflow status to the listed quotes.
func QuoteBulkStatus(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var body bulkQuoteStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseQuoteStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		updated, err := svc.UpdateStatusBulk(r.Context(), body.IDs, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"updated": updated, "status": status})
	}
}

func parseQuoteID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "quoteId"))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quote id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote id")
	}
	return id, nil
}

func listInputFromQuery(r *http.Request, defaultPageSize int) (quotes.ListInput, error) {
	if defaultPageSize < 1 || defaultPageSize > pagination.MaxPageSize {
		defaultPageSize = pagination.DefaultPageSize
	}
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return quotes.ListInput{}, err
	}
	pageSize, err := validators.ParseQueryInt(r, "page_size", defaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return quotes.ListInput{}, err
	}

	isConfirmed, err := validators.ParseQueryBool(r, "is_confirmed")
	if err != nil {
		return quotes.ListInput{}, err
	}
	allStores, err := validators.ParseQueryBool(r, "all_stores")
	if err != nil {
		return quotes.ListInput{}, err
	}
	dateFrom, err := validators.ParseQueryDate(r, "date_from")
	if err != nil {
		return quotes.ListInput{}, err
	}
	dateTo, err := validators.ParseQueryDate(r, "date_to")
	if err != nil {
		return quotes.ListInput{}, err
	}

	filters := quotes.ListFilters{
		ClientName:  validators.SanitizeString(r.URL.Query().Get("client_name"), maxClientNameLen),
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		IsConfirmed: isConfirmed,
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		sort, err := enums.ParseQuoteSortKey(raw)
		if err != nil {
			return quotes.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key")
		}
		filters.Sort = sort
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("direction")); raw != "" {
		direction, err := enums.ParseSortDirection(raw)
		if err != nil {
			return quotes.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort direction")
		}
		filters.Direction = direction
	}

	input := quotes.ListInput{
		Filters: filters,
		Page:    pagination.Params{Page: page, PageSize: pageSize},
	}
	if allStores != nil {
		input.AllStores = *allStores
	}
	return input, nil
}
