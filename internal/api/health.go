package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/models/entities"
)

// Pinger is implemented by cache backends that talk to a server.
type Pinger interface {
	Ping(ctx context.Context) error
}

func serviceStatus(err error, okDetails string) entities.ServiceStatus {
	if err != nil {
		return entities.ServiceStatus{Status: "down", Details: err.Error()}
	}
	return entities.ServiceStatus{Status: "ok", Details: okDetails}
}

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(orm *gorm.DB, sqlxDB *sqlx.DB, cache common.CacheInterface, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)

		var ormErr error
		if sqlDB, err := orm.DB(); err != nil {
			ormErr = err
		} else {
			ormErr = sqlDB.PingContext(ctx)
		}
		services["database"] = serviceStatus(ormErr, "GORM connected")
		services["sqlx"] = serviceStatus(sqlxDB.PingContext(ctx), "sqlx connected")

		if p, ok := cache.(Pinger); ok {
			services["redis"] = serviceStatus(p.Ping(ctx), "Redis connected")
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		if overallStatus != "ok" {
			common.RespondSuccess(w, initTime, "Degraded", resp, http.StatusServiceUnavailable)
			return
		}
		common.RespondSuccess(w, initTime, "Healthy", resp)
	}
}
