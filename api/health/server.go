package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// GetHealth reports overall liveness: the service itself plus its database
// and cache dependencies.
func (hrm *HealthRoutesManager) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus, dbErr := hrm.healthService.GetDatabaseHealthStatus(ctx)
	cacheStatus, cacheErr := hrm.healthService.GetCacheHealthStatus(ctx)

	data := map[string]any{
		"database": dbStatus,
		"cache":    cacheStatus,
	}

	if dbErr != nil || cacheErr != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("Service is degraded"),
			gecho.WithData(data),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(data),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	status := hrm.healthService.GetServerHealthStatus()

	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	status, err := hrm.healthService.GetDatabaseHealthStatus(r.Context())
	if err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("Database is unreachable"),
			gecho.WithData(status),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetCacheHealth(w http.ResponseWriter, r *http.Request) {
	status, err := hrm.healthService.GetCacheHealthStatus(r.Context())
	if err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("Cache is unreachable"),
			gecho.WithData(status),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}
