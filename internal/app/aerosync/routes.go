// Package aerosync предоставляет маршруты для основного приложения.
package aerosync

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aerosync-io/aerosync/internal/config"
	aircraftcreate "github.com/aerosync-io/aerosync/internal/http/handlers/aircraft/create"
	aircraftlist "github.com/aerosync-io/aerosync/internal/http/handlers/aircraft/list"
	aircraftread "github.com/aerosync-io/aerosync/internal/http/handlers/aircraft/read"
	aircraftremove "github.com/aerosync-io/aerosync/internal/http/handlers/aircraft/remove"
	aircraftupdate "github.com/aerosync-io/aerosync/internal/http/handlers/aircraft/update"
	airportcreate "github.com/aerosync-io/aerosync/internal/http/handlers/airport/create"
	airportlist "github.com/aerosync-io/aerosync/internal/http/handlers/airport/list"
	"github.com/aerosync-io/aerosync/internal/http/handlers/auth/login"
	"github.com/aerosync-io/aerosync/internal/http/handlers/auth/logout"
	"github.com/aerosync-io/aerosync/internal/http/handlers/crew/myflights"
	admindashboard "github.com/aerosync-io/aerosync/internal/http/handlers/dashboard/admin"
	crewdashboard "github.com/aerosync-io/aerosync/internal/http/handlers/dashboard/crew"
	engineerdashboard "github.com/aerosync-io/aerosync/internal/http/handlers/dashboard/engineer"
	schedulerdashboard "github.com/aerosync-io/aerosync/internal/http/handlers/dashboard/scheduler"
	"github.com/aerosync-io/aerosync/internal/http/handlers/flight/assigncrew"
	flightcreate "github.com/aerosync-io/aerosync/internal/http/handlers/flight/create"
	"github.com/aerosync-io/aerosync/internal/http/handlers/flight/crewlist"
	flightlist "github.com/aerosync-io/aerosync/internal/http/handlers/flight/list"
	flightread "github.com/aerosync-io/aerosync/internal/http/handlers/flight/read"
	flightremove "github.com/aerosync-io/aerosync/internal/http/handlers/flight/remove"
	flightupdate "github.com/aerosync-io/aerosync/internal/http/handlers/flight/update"
	"github.com/aerosync-io/aerosync/internal/http/handlers/health"
	engineeraircraft "github.com/aerosync-io/aerosync/internal/http/handlers/maintenance/aircraftlist"
	"github.com/aerosync-io/aerosync/internal/http/handlers/maintenance/jobclose"
	"github.com/aerosync-io/aerosync/internal/http/handlers/maintenance/jobcreate"
	"github.com/aerosync-io/aerosync/internal/http/handlers/maintenance/joblist"
	"github.com/aerosync-io/aerosync/internal/http/handlers/maintenance/jobread"
	routecreate "github.com/aerosync-io/aerosync/internal/http/handlers/route/create"
	routelist "github.com/aerosync-io/aerosync/internal/http/handlers/route/list"
	routeread "github.com/aerosync-io/aerosync/internal/http/handlers/route/read"
	routeremove "github.com/aerosync-io/aerosync/internal/http/handlers/route/remove"
	routeupdate "github.com/aerosync-io/aerosync/internal/http/handlers/route/update"
	usercreate "github.com/aerosync-io/aerosync/internal/http/handlers/user/create"
	"github.com/aerosync-io/aerosync/internal/http/middlewarectx"
	"github.com/aerosync-io/aerosync/internal/models"
	authservice "github.com/aerosync-io/aerosync/internal/services/auth"
	fleetservice "github.com/aerosync-io/aerosync/internal/services/fleet"
	maintenanceservice "github.com/aerosync-io/aerosync/internal/services/maintenance"
	scheduleservice "github.com/aerosync-io/aerosync/internal/services/schedule"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Конечные точки сгруппированы по ролям: каждая группа закрыта
// JWT-аутентификацией и проверкой роли из токена.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	authService *authservice.AuthService,
	fleetService *fleetservice.Service,
	scheduleService *scheduleservice.Service,
	maintenanceService *maintenanceservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Get("/health", health.New(logger).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, authService, cfg.AuthCookie, cfg.TokenTTL).ServeHTTP)
		r.Post("/logout", logout.New(logger, cfg.AuthCookie).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, cfg.CookieName, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.UserTypeAdmin))
				r.Get("/dashboard", admindashboard.New(logger, fleetService).ServeHTTP)
				r.Post("/users", usercreate.New(logger, authService).ServeHTTP)
				r.Post("/airports", airportcreate.New(logger, fleetService).ServeHTTP)
				r.Get("/airports", airportlist.New(logger, fleetService).ServeHTTP)
				r.Post("/routes", routecreate.New(logger, fleetService).ServeHTTP)
				r.Get("/routes", routelist.New(logger, fleetService).ServeHTTP)
				r.Get("/routes/{route_id}", routeread.New(logger, fleetService).ServeHTTP)
				r.Put("/routes/{route_id}", routeupdate.New(logger, fleetService).ServeHTTP)
				r.Delete("/routes/{route_id}", routeremove.New(logger, fleetService).ServeHTTP)
				r.Post("/aircraft", aircraftcreate.New(logger, fleetService).ServeHTTP)
				r.Get("/aircraft", aircraftlist.New(logger, fleetService).ServeHTTP)
				r.Get("/aircraft/{registration_number}", aircraftread.New(logger, fleetService).ServeHTTP)
				r.Put("/aircraft/{registration_number}", aircraftupdate.New(logger, fleetService).ServeHTTP)
				r.Delete("/aircraft/{registration_number}", aircraftremove.New(logger, fleetService).ServeHTTP)
			})

			r.Route("/scheduler", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.UserTypeScheduler))
				r.Get("/dashboard", schedulerdashboard.New(logger, scheduleService).ServeHTTP)
				r.Post("/flights", flightcreate.New(logger, scheduleService).ServeHTTP)
				r.Get("/flights", flightlist.New(logger, scheduleService).ServeHTTP)
				r.Get("/flights/{flight_number}/{date}", flightread.New(logger, scheduleService).ServeHTTP)
				r.Put("/flights/{flight_number}/{date}", flightupdate.New(logger, scheduleService).ServeHTTP)
				r.Delete("/flights/{flight_number}/{date}", flightremove.New(logger, scheduleService).ServeHTTP)
				r.Get("/flights/{flight_number}/{date}/crew", crewlist.New(logger, scheduleService).ServeHTTP)
				r.Post("/crew-schedules", assigncrew.New(logger, scheduleService).ServeHTTP)
			})

			r.Route("/crew", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.UserTypeCrew))
				r.Get("/dashboard", crewdashboard.New(logger, scheduleService).ServeHTTP)
				r.Get("/my-flights", myflights.New(logger, scheduleService).ServeHTTP)
			})

			r.Route("/engineer", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.UserTypeEngineer))
				r.Get("/dashboard", engineerdashboard.New(logger, maintenanceService).ServeHTTP)
				r.Get("/aircraft", engineeraircraft.New(logger, maintenanceService).ServeHTTP)
				r.Post("/jobs", jobcreate.New(logger, maintenanceService).ServeHTTP)
				r.Get("/jobs", joblist.New(logger, maintenanceService).ServeHTTP)
				r.Get("/jobs/{job_id}", jobread.New(logger, maintenanceService).ServeHTTP)
				r.Post("/jobs/{job_id}/close", jobclose.New(logger, maintenanceService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
