package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

// Every contract endpoint answers with the whole aircraft so clients can
// refresh status and totals in one go.

// CreateContractHandler handles POST /api/v1/aircraft/{id}/contracts
func CreateContractHandler(contractSvc *services.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.CreateContractRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		aircraft, err := contractSvc.Create(r.Context(), p, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Contract created", dtos.NewAircraftResponse(*aircraft), http.StatusCreated)
	}
}

// LogProfitHandler handles POST /api/v1/aircraft/{id}/contracts/{contractId}/profits
func LogProfitHandler(contractSvc *services.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.LogProfitRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		aircraft, err := contractSvc.LogProfit(r.Context(), p, chi.URLParam(r, "id"), chi.URLParam(r, "contractId"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Profit logged", dtos.NewAircraftResponse(*aircraft))
	}
}

// FinishContractHandler handles PUT /api/v1/aircraft/{id}/contracts/{contractId}/finish
func FinishContractHandler(contractSvc *services.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		aircraft, err := contractSvc.Finish(r.Context(), p, chi.URLParam(r, "id"), chi.URLParam(r, "contractId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Contract finished", dtos.NewAircraftResponse(*aircraft))
	}
}

// DeleteContractHandler handles DELETE /api/v1/aircraft/{id}/contracts/{contractId}
func DeleteContractHandler(contractSvc *services.ContractService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		aircraft, err := contractSvc.Delete(r.Context(), p, chi.URLParam(r, "id"), chi.URLParam(r, "contractId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Contract deleted", dtos.NewAircraftResponse(*aircraft))
	}
}
