package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crystara/crystara-backend/api/controllers"
	"github.com/crystara/crystara-backend/api/middleware"
	"github.com/crystara/crystara-backend/internal/orders"
	"github.com/crystara/crystara-backend/internal/payments"
	"github.com/crystara/crystara-backend/internal/profiles"
	"github.com/crystara/crystara-backend/pkg/config"
	"github.com/crystara/crystara-backend/pkg/db"
	"github.com/crystara/crystara-backend/pkg/logger"
	"github.com/crystara/crystara-backend/pkg/redis"
)

// NewRouter wires every route behind the shared middleware stack. Paths
// stay flat, the storefront calls them without a version prefix.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger db.Pinger,
	redisClient *redis.Client,
	paymentsSvc payments.Service,
	ordersSvc orders.Service,
	profilesSvc profiles.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	authn := middleware.Auth(cfg.Auth, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, redisClient, logg))
	})

	// Public checkout handshake, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.PaymentRateLimit(cfg.RateLimit, redisClient, logg))
		r.Post("/create-order", controllers.CreatePaymentOrder(paymentsSvc, logg))
		r.Post("/verify-payment", controllers.VerifyPayment(paymentsSvc, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(authn)

		r.With(middleware.Idempotency(redisClient, logg)).Post("/orders", controllers.PersistOrder(ordersSvc, logg))
		r.Get("/orders/user/history", controllers.UserOrderHistory(ordersSvc, logg))
		r.Get("/orders/{orderId}", controllers.GetOrder(ordersSvc, logg))

		r.Post("/onboarding/profile", controllers.SaveOnboardingProfile(profilesSvc, logg))
		r.Get("/onboarding/status", controllers.OnboardingStatus(profilesSvc, logg))

		r.Get("/profile", controllers.GetProfile(profilesSvc, logg))
		r.Patch("/profile", controllers.UpdateProfile(profilesSvc, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(authn, middleware.RequireAdmin(profilesSvc, logg))

		r.Get("/admin/orders", controllers.AdminListOrders(ordersSvc, logg))
		r.Get("/admin/orders/stats/overview", controllers.AdminOrderStats(ordersSvc, logg))
		r.Patch("/admin/orders/{orderId}", controllers.AdminUpdateOrderStatus(ordersSvc, logg))
	})

	return r
}
