package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Sanushoffl/thelivostore/internal/auth"
)

// Handlers collects the HTTP surface of every service so the router can be
// assembled in one place.
type Handlers struct {
	Accounts interface {
		Register(http.ResponseWriter, *http.Request)
		Login(http.ResponseWriter, *http.Request)
		AdminLogin(http.ResponseWriter, *http.Request)
		GetProfile(http.ResponseWriter, *http.Request)
		UpdateProfile(http.ResponseWriter, *http.Request)
	}
	Cart interface {
		Add(http.ResponseWriter, *http.Request)
		Update(http.ResponseWriter, *http.Request)
		Get(http.ResponseWriter, *http.Request)
	}
	Orders interface {
		PlaceOrder(http.ResponseWriter, *http.Request)
		PlaceOrderStripe(http.ResponseWriter, *http.Request)
		PlaceOrderRazorpay(http.ResponseWriter, *http.Request)
		VerifyStripe(http.ResponseWriter, *http.Request)
		VerifyRazorpay(http.ResponseWriter, *http.Request)
		ListAll(http.ResponseWriter, *http.Request)
		ListForUser(http.ResponseWriter, *http.Request)
		UpdateStatus(http.ResponseWriter, *http.Request)
		Delete(http.ResponseWriter, *http.Request)
		SalesAnalytics(http.ResponseWriter, *http.Request)
	}
	Products interface {
		Add(http.ResponseWriter, *http.Request)
		List(http.ResponseWriter, *http.Request)
		Single(http.ResponseWriter, *http.Request)
		Remove(http.ResponseWriter, *http.Request)
	}
	Reviews interface {
		Submit(http.ResponseWriter, *http.Request)
		ListForProduct(http.ResponseWriter, *http.Request)
	}
	SubCategories interface {
		Add(http.ResponseWriter, *http.Request)
		List(http.ResponseWriter, *http.Request)
		Rename(http.ResponseWriter, *http.Request)
		Remove(http.ResponseWriter, *http.Request)
	}
	LiveFeed http.HandlerFunc // nil disables /ws/orders
}

// NewRouter wires every route. User routes carry the "token" header with a
// user-scoped token, admin routes an admin-scoped one.
func NewRouter(h Handlers, tokens *auth.TokenManager, logger *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware(logger))

	r.HandleFunc("/health", healthHandler).Methods("GET")

	user := r.PathPrefix("/api/user").Subrouter()
	user.HandleFunc("/register", h.Accounts.Register).Methods("POST")
	user.HandleFunc("/login", h.Accounts.Login).Methods("POST")
	user.HandleFunc("/admin", h.Accounts.AdminLogin).Methods("POST")
	user.HandleFunc("/profile", tokens.RequireUser(h.Accounts.GetProfile)).Methods("GET")
	user.HandleFunc("/update-profile", tokens.RequireUser(h.Accounts.UpdateProfile)).Methods("POST")

	cart := r.PathPrefix("/api/cart").Subrouter()
	cart.HandleFunc("/add", tokens.RequireUser(h.Cart.Add)).Methods("POST")
	cart.HandleFunc("/update", tokens.RequireUser(h.Cart.Update)).Methods("POST")
	cart.HandleFunc("/get", tokens.RequireUser(h.Cart.Get)).Methods("POST")

	order := r.PathPrefix("/api/order").Subrouter()
	order.HandleFunc("/place", tokens.RequireUser(h.Orders.PlaceOrder)).Methods("POST")
	order.HandleFunc("/stripe", tokens.RequireUser(h.Orders.PlaceOrderStripe)).Methods("POST")
	order.HandleFunc("/razorpay", tokens.RequireUser(h.Orders.PlaceOrderRazorpay)).Methods("POST")
	order.HandleFunc("/verifyStripe", tokens.RequireUser(h.Orders.VerifyStripe)).Methods("POST")
	order.HandleFunc("/verifyRazorpay", tokens.RequireUser(h.Orders.VerifyRazorpay)).Methods("POST")
	order.HandleFunc("/userorders", tokens.RequireUser(h.Orders.ListForUser)).Methods("POST")
	order.HandleFunc("/list", tokens.RequireAdmin(h.Orders.ListAll)).Methods("POST")
	order.HandleFunc("/status", tokens.RequireAdmin(h.Orders.UpdateStatus)).Methods("POST")
	order.HandleFunc("/delete", tokens.RequireAdmin(h.Orders.Delete)).Methods("POST")
	order.HandleFunc("/sales-analytics", tokens.RequireAdmin(h.Orders.SalesAnalytics)).Methods("POST")

	product := r.PathPrefix("/api/product").Subrouter()
	product.HandleFunc("/add", tokens.RequireAdmin(h.Products.Add)).Methods("POST")
	product.HandleFunc("/remove", tokens.RequireAdmin(h.Products.Remove)).Methods("POST")
	product.HandleFunc("/list", h.Products.List).Methods("GET")
	product.HandleFunc("/single", h.Products.Single).Methods("POST")

	review := r.PathPrefix("/api/review").Subrouter()
	review.HandleFunc("/add", tokens.RequireUser(h.Reviews.Submit)).Methods("POST")
	review.HandleFunc("/get", h.Reviews.ListForProduct).Methods("POST")

	sub := r.PathPrefix("/api/subcategory").Subrouter()
	sub.HandleFunc("/add", tokens.RequireAdmin(h.SubCategories.Add)).Methods("POST")
	sub.HandleFunc("/update", tokens.RequireAdmin(h.SubCategories.Rename)).Methods("POST")
	sub.HandleFunc("/remove", tokens.RequireAdmin(h.SubCategories.Remove)).Methods("POST")
	sub.HandleFunc("/list", h.SubCategories.List).Methods("GET")

	if h.LiveFeed != nil {
		r.HandleFunc("/ws/orders", h.LiveFeed)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, map[string]interface{}{
		"success": true,
		"status":  "healthy",
	})
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).String(),
			}).Info("Request processed")
		})
	}
}
