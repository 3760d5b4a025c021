// Package http provides health endpoints
package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"kristech/internal/core/version"
	"kristech/internal/modkit/httpkit"
	"kristech/internal/modkit/repokit"
	pnet "kristech/internal/platform/net"
	"kristech/internal/platform/store"
	ptime "kristech/internal/platform/time"
)

const (
	// StatusOK is the aggregate status when every dependency answers
	StatusOK = "ok"
	// StatusDegraded is the aggregate status when any dependency fails
	StatusDegraded = "degraded"

	healthy   = "healthy"
	unhealthy = "unhealthy"
)

// Deps are the handler dependencies
type Deps struct {
	StartedAt   time.Time
	Environment string
	Production  bool

	// DB is probed with SELECT NOW(); nil reports the database unhealthy
	DB repokit.Queryer

	// CheckTimeout bounds the database probe, default 2s
	CheckTimeout time.Duration
	Clock        ptime.Clock
}

type handlers struct {
	deps  Deps
	clock ptime.Clock
}

// Register mounts the health routes
func Register(r httpkit.Router, d Deps) {
	if d.CheckTimeout <= 0 {
		d.CheckTimeout = 2 * time.Second
	}
	h := &handlers{deps: d, clock: ptime.OrSystem(d.Clock)}

	r.Get("/", httpkit.Handle(h.health))
	r.Get("/system", httpkit.Handle(h.system))
	httpkit.Get(r, "/version", h.version)
}

//
// Swagger DTOs and route docs
//

// ServiceCheck is the state of one dependency
type ServiceCheck struct {
	Status    string `json:"status"              example:"healthy"`
	Message   string `json:"message"             example:"Database connection is working"`
	Timestamp string `json:"timestamp,omitempty" example:"2025-09-03T13:05:00.000Z"`
	Error     string `json:"error,omitempty"`
}

// Services groups the dependency checks
type Services struct {
	Database ServiceCheck `json:"database"`
	API      ServiceCheck `json:"api"`
}

// HealthResponse is the aggregate health payload
type HealthResponse struct {
	Status      string   `json:"status"      example:"ok"`
	Timestamp   string   `json:"timestamp"   example:"2025-09-03T13:05:00.000Z"`
	Uptime      float64  `json:"uptime"      example:"300.5"`
	Environment string   `json:"environment" example:"development"`
	Version     string   `json:"version"     example:"1.0.0"`
	Services    Services `json:"services"`
}

// MemoryStats is the subset of runtime memory stats worth showing
type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heapInuse"`
	NumGC      uint32 `json:"numGC"`
}

// SystemResponse describes the running process
type SystemResponse struct {
	GoVersion   string      `json:"goVersion"   example:"go1.24.0"`
	Platform    string      `json:"platform"    example:"linux"`
	Arch        string      `json:"arch"        example:"amd64"`
	CPUs        int         `json:"cpus"        example:"8"`
	Goroutines  int         `json:"goroutines"  example:"12"`
	Uptime      float64     `json:"uptime"      example:"300.5"`
	Memory      MemoryStats `json:"memory"`
	Environment string      `json:"environment" example:"development"`
	Timestamp   string      `json:"timestamp"   example:"2025-09-03T13:05:00.000Z"`
}

// ForbiddenResponse is the body of /health/system in production
type ForbiddenResponse struct {
	Error   string `json:"error"   example:"Forbidden"`
	Message string `json:"message" example:"System information not available in production"`
}

// swagger:route GET /health Health health
// @Summary Aggregate health of the database and the API process
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Failure 503 {object} HealthResponse "degraded"
// @Router /health [get]
func (h *handlers) health(r *http.Request) httpkit.Response {
	db := h.checkDB(r.Context())
	out := HealthResponse{
		Status:      StatusOK,
		Timestamp:   ptime.ISO(h.clock.Now()),
		Uptime:      h.uptime(),
		Environment: h.deps.Environment,
		Version:     version.Version(),
		Services: Services{
			Database: db,
			API:      ServiceCheck{Status: healthy, Message: "API is running"},
		},
	}
	if db.Status != healthy {
		out.Status = StatusDegraded
		return httpkit.Raw(http.StatusServiceUnavailable, out)
	}
	return httpkit.Raw(http.StatusOK, out)
}

func (h *handlers) checkDB(ctx context.Context) ServiceCheck {
	if h.deps.DB == nil {
		return ServiceCheck{Status: unhealthy, Message: "Database not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, h.deps.CheckTimeout)
	defer cancel()

	now, err := store.Scalar[time.Time](ctx, h.deps.DB, "SELECT NOW()")
	if err != nil {
		out := ServiceCheck{Status: unhealthy, Message: "Database connection failed"}
		if pnet.ErrorDetailExposed() {
			out.Error = err.Error()
		}
		return out
	}
	return ServiceCheck{Status: healthy, Message: "Database connection is working", Timestamp: ptime.ISO(now)}
}

func (h *handlers) uptime() float64 {
	return h.clock.Now().Sub(h.deps.StartedAt).Seconds()
}

// swagger:route GET /health/system Health system
// @Summary Go runtime information, unavailable in production
// @Tags Health
// @Produce json
// @Success 200 {object} SystemResponse "ok"
// @Failure 403 {object} ForbiddenResponse "production"
// @Router /health/system [get]
func (h *handlers) system(_ *http.Request) httpkit.Response {
	if h.deps.Production {
		return httpkit.Raw(http.StatusForbidden, ForbiddenResponse{
			Error:   "Forbidden",
			Message: "System information not available in production",
		})
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return httpkit.Raw(http.StatusOK, SystemResponse{
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUs:       runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
		Uptime:     h.uptime(),
		Memory: MemoryStats{
			Alloc:      ms.Alloc,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			HeapInuse:  ms.HeapInuse,
			NumGC:      ms.NumGC,
		},
		Environment: h.deps.Environment,
		Timestamp:   ptime.ISO(h.clock.Now()),
	})
}

// swagger:route GET /health/version Health version
// @Summary Build and version info
// @Tags Health
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /health/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
