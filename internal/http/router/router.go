// Package router arma el árbol de rutas HTTP del directorio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/odic/internal/http/controllers"
	httperrors "github.com/dropDatabas3/odic/internal/http/errors"
	mw "github.com/dropDatabas3/odic/internal/http/middlewares"
	"github.com/dropDatabas3/odic/internal/rate"
)

// Deps contiene todo lo que el router necesita para armar las rutas.
type Deps struct {
	Realms  *controllers.RealmsController
	Users   *controllers.UsersController
	Clients *controllers.ClientsController
	Health  *controllers.HealthController

	// RegisterLimiter limita POST /v1/users (registro). Puede ser nil.
	RegisterLimiter rate.Limiter

	// Metrics expone /metrics si no es nil.
	Metrics *prometheus.Registry
}

// New construye el router con los middlewares base y todas las rutas
// del servicio.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithRecover())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	r.Get("/healthz", deps.Health.Healthz)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/realms", func(r chi.Router) {
			r.Get("/", deps.Realms.ListRealms)
			r.Post("/", deps.Realms.CreateRealm)

			r.Route("/{realmID}", func(r chi.Router) {
				r.Get("/", deps.Realms.GetRealm)
				r.Patch("/", deps.Realms.UpdateRealm)
				r.Delete("/", deps.Realms.DeleteRealm)

				r.Get("/users", deps.Realms.ListMembers)
				r.Post("/users", deps.Realms.AddMember)
				r.Delete("/users/{userID}", deps.Realms.RemoveMember)

				r.Route("/clients", func(r chi.Router) {
					r.Get("/", deps.Clients.ListClients)
					r.Post("/", deps.Clients.CreateClient)
					r.Get("/{clientID}", deps.Clients.GetClient)
					r.Patch("/{clientID}", deps.Clients.UpdateClient)
					r.Delete("/{clientID}", deps.Clients.DeleteClient)
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			// el registro es la única ruta abierta a abuso masivo,
			// va detrás del limiter
			r.With(mw.WithRateLimit(deps.RegisterLimiter)).Post("/", deps.Users.Register)

			r.Post("/login", deps.Users.Login)
			r.Get("/", deps.Users.ListUsers)
			r.Get("/{userID}", deps.Users.GetUser)
			r.Delete("/{userID}", deps.Users.DeleteUser)
		})
	})

	return r
}
