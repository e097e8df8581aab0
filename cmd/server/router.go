package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openlot/dealership-api/internal/api"
	apiMiddleware "github.com/openlot/dealership-api/internal/api/middleware"
	"github.com/openlot/dealership-api/internal/domain"
)

// setupRouter configures the application router with all routes and
// middleware. Read access to inventory, customers and services is public;
// write access requires an employee token, with destructive operations
// restricted to ADMIN.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	carHandler := api.NewCarHandler(app.carStore)
	customerHandler := api.NewCustomerHandler(app.customerStore, app.passwordHasher, app.passwordHasher)
	employeeHandler := api.NewEmployeeHandler(
		app.employeeStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
	)
	saleHandler := api.NewSaleHandler(app.saleService)
	serviceHandler := api.NewServiceHandler(app.serviceStore)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	requireAdmin := authMiddleware.RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		// Customer endpoints (public)
		r.Post("/customers/signup", customerHandler.Signup)
		r.Post("/customers/login", customerHandler.Login)
		r.Get("/customers", customerHandler.List)
		r.Get("/customers/{id}", customerHandler.Get)
		r.Put("/customers/{id}", customerHandler.Update)
		r.Delete("/customers/{id}", customerHandler.Delete)

		// Employee authentication (public)
		r.Post("/employees/signup", employeeHandler.Signup)
		r.Post("/employees/login", employeeHandler.Login)

		// Public read access to the lot and service catalog
		r.Get("/cars", carHandler.List)
		r.Get("/cars/{id}", carHandler.Get)
		r.Get("/services", serviceHandler.List)
		r.Get("/services/{id}", serviceHandler.Get)

		// Employee-only routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/employees", employeeHandler.List)
			r.Get("/employees/{id}", employeeHandler.Get)
			r.With(requireAdmin).Put("/employees/{id}", employeeHandler.Update)
			r.With(requireAdmin).Delete("/employees/{id}", employeeHandler.Delete)

			r.With(requireAdmin).Post("/cars", carHandler.Create)
			r.With(requireAdmin).Put("/cars/{id}", carHandler.Update)
			r.With(requireAdmin).Delete("/cars/{id}", carHandler.Delete)

			r.Post("/sales", saleHandler.Create)
			r.Get("/sales", saleHandler.List)
			r.Get("/sales/{id}", saleHandler.Get)
			r.Put("/sales/{id}", saleHandler.Update)
			r.With(requireAdmin).Delete("/sales/{id}", saleHandler.Delete)

			r.Post("/services", serviceHandler.Create)
			r.Put("/services/{id}", serviceHandler.Update)
			r.With(requireAdmin).Delete("/services/{id}", serviceHandler.Delete)
			r.Post("/services/add-customer", serviceHandler.AddCustomer)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
