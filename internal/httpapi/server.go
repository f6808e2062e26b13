// Package httpapi exposes the cafeteria bookkeeping as Connect unary
// procedures speaking JSON.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/cantineo/internal/auth"
	"github.com/mmynk/cantineo/internal/metrics"
	"github.com/mmynk/cantineo/internal/middleware"
	"github.com/mmynk/cantineo/internal/service"
	"github.com/mmynk/cantineo/internal/storage"
)

const defaultRequestTimeout = 5 * time.Second

// Options configures a Server. Store is required; everything else is
// optional.
type Options struct {
	Store storage.Store

	// Authenticator and JWT guard mutating procedures. Leaving Authenticator
	// nil disables authentication.
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager

	// Gatherer backs GET /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Metrics

	RequestTimeout time.Duration
	StaticPath     string

	// Now returns the current time; it defaults to time.Now.
	Now func() time.Time
}

// Server wires the procedures to the bookkeeping services.
type Server struct {
	store     storage.Store
	employees *service.EmployeeService
	meals     *service.MealService
	payments  *service.PaymentService
	settings  *service.SettingsService
	reports   *service.ReportService

	authenticator auth.Authenticator
	jwt           *auth.JWTManager
	gatherer      prometheus.Gatherer
	metrics       *metrics.Metrics
	timeout       time.Duration
	staticPath    string
	now           func() time.Time
}

// New builds the services on top of opts.Store.
func New(opts Options) *Server {
	settings := service.NewSettingsService(opts.Store)
	s := &Server{
		store:         opts.Store,
		employees:     service.NewEmployeeService(opts.Store, opts.Metrics),
		meals:         service.NewMealService(opts.Store, opts.Metrics),
		payments:      service.NewPaymentService(opts.Store, opts.Metrics),
		settings:      settings,
		reports:       service.NewReportService(opts.Store, settings, opts.Metrics),
		authenticator: opts.Authenticator,
		jwt:           opts.JWT,
		gatherer:      opts.Gatherer,
		metrics:       opts.Metrics,
		timeout:       opts.RequestTimeout,
		staticPath:    opts.StaticPath,
		now:           opts.Now,
	}
	if s.timeout <= 0 {
		s.timeout = defaultRequestTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler mounts every procedure next to the plain health, metrics and
// static routes, all behind CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	interceptors := []connect.Interceptor{
		middleware.LoggingInterceptor(s.metrics),
		middleware.TimeoutInterceptor(s.timeout),
	}
	read := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(interceptors...),
	}
	write := read
	if s.AuthEnabled() {
		write = []connect.HandlerOption{
			connect.WithCodec(jsonCodec{}),
			connect.WithInterceptors(append(interceptors, middleware.RequireAuth(s.jwt))...),
		}
	}

	mux.Handle(LoginProcedure, connect.NewUnaryHandler(LoginProcedure, s.login, read...))
	mux.Handle(GetSessionProcedure, connect.NewUnaryHandler(GetSessionProcedure, s.getSession, write...))

	mux.Handle(ListEmployeesProcedure, connect.NewUnaryHandler(ListEmployeesProcedure, s.listEmployees, read...))
	mux.Handle(GetEmployeeProcedure, connect.NewUnaryHandler(GetEmployeeProcedure, s.getEmployee, read...))
	mux.Handle(AddEmployeeProcedure, connect.NewUnaryHandler(AddEmployeeProcedure, s.addEmployee, write...))
	mux.Handle(RenameEmployeeProcedure, connect.NewUnaryHandler(RenameEmployeeProcedure, s.renameEmployee, write...))
	mux.Handle(DeleteEmployeeProcedure, connect.NewUnaryHandler(DeleteEmployeeProcedure, s.deleteEmployee, write...))
	mux.Handle(ListEmployeeMealsProcedure, connect.NewUnaryHandler(ListEmployeeMealsProcedure, s.listEmployeeMeals, read...))
	mux.Handle(ListEmployeePaymentsProcedure, connect.NewUnaryHandler(ListEmployeePaymentsProcedure, s.listEmployeePayments, read...))

	mux.Handle(ListMealsProcedure, connect.NewUnaryHandler(ListMealsProcedure, s.listMeals, read...))
	mux.Handle(SetMealsProcedure, connect.NewUnaryHandler(SetMealsProcedure, s.setMeals, write...))

	mux.Handle(RecordPaymentProcedure, connect.NewUnaryHandler(RecordPaymentProcedure, s.recordPayment, write...))
	mux.Handle(ListPaymentsProcedure, connect.NewUnaryHandler(ListPaymentsProcedure, s.listPayments, read...))

	mux.Handle(GetSettingsProcedure, connect.NewUnaryHandler(GetSettingsProcedure, s.getSettings, read...))
	mux.Handle(UpdateSettingsProcedure, connect.NewUnaryHandler(UpdateSettingsProcedure, s.updateSettings, write...))

	mux.Handle(GetDashboardProcedure, connect.NewUnaryHandler(GetDashboardProcedure, s.getDashboard, read...))
	mux.Handle(GetStatisticsProcedure, connect.NewUnaryHandler(GetStatisticsProcedure, s.getStatistics, read...))

	mux.HandleFunc("GET /healthz", s.healthz)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.staticPath != "" {
		mux.HandleFunc("GET /", s.static)
	}

	return middleware.CORS(mux)
}

// AuthEnabled reports whether mutating procedures require a session token.
func (s *Server) AuthEnabled() bool {
	return s.authenticator != nil && s.jwt != nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

// static serves files from the static directory, falling back to
// index.html for unknown paths.
func (s *Server) static(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/cantineo.") {
		http.NotFound(w, r)
		return
	}

	staticDir, err := filepath.Abs(s.staticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}
	filePath := filepath.Join(staticDir, filepath.Clean(urlPath))

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
		return
	}
	http.ServeFile(w, r, filePath)
}
