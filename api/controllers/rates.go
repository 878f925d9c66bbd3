package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rkartside/quoter-backend/api/responses"
	"github.com/rkartside/quoter-backend/api/validators"
	"github.com/rkartside/quoter-backend/internal/rates"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
	"github.com/rkartside/quoter-backend/pkg/logger"
)

type calculateRateRequest struct {
	StoreID        string `json:"store_id" validate:"required"`
	ClientName     string `json:"client_name" validate:"required"`
	NumberOfSpaces int    `json:"number_of_spaces" validate:"required,min=1"`
	SaleAmount     int64  `json:"sale_amount" validate:"omitempty,min=0"`
}

type calculateRateResponse struct {
	RateAmount int64 `json:"rate_amount"`
}

// RatesCalculate prices a prospective quote without persisting anything.
func RatesCalculate(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable"))
			return
		}

		var body calculateRateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := uuid.Parse(body.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		amount, err := svc.CalculateForStore(r.Context(), storeID, rates.CalculateInput{
			NumberOfSpaces: body.NumberOfSpaces,
			SaleAmount:     body.SaleAmount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, calculateRateResponse{RateAmount: amount})
	}
}
