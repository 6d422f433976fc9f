package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/hariharanp05/eaclothingfrontend/internal/auth"
	"github.com/hariharanp05/eaclothingfrontend/internal/backend"
	"github.com/hariharanp05/eaclothingfrontend/internal/checkout"
	"github.com/hariharanp05/eaclothingfrontend/internal/config"
	"github.com/hariharanp05/eaclothingfrontend/internal/handlers"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Backend API client (the only place persistent data lives)
	api := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	pricing := checkout.DefaultPricing()

	// 5. Setup Handlers
	shopHandler := &handlers.ShopHandler{
		Backend:      api,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	cartHandler := &handlers.CartHandler{
		Backend:      api,
		Templates:    templates,
		SessionStore: sessionStore,
		Pricing:      pricing,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		Backend:      api,
		Templates:    templates,
		SessionStore: sessionStore,
		Pricing:      pricing,
	}
	accountHandler := &handlers.AccountHandler{
		Verifier:     &auth.StubVerifier{},
		Backend:      api,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	adminHandler := &handlers.AdminHandler{
		Backend:      api,
		Admin:        auth.Admin{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash},
		SessionStore: sessionStore,
		Templates:    templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter guards the submission endpoints against double posts
	rateLimiter := handlers.NewRateLimiter(3 * time.Second)

	// Storefront
	mux.HandleFunc("/", shopHandler.Home)
	mux.HandleFunc("/shop", shopHandler.Shop)
	mux.HandleFunc("/product", shopHandler.ProductDetail)

	// Cart
	mux.HandleFunc("/cart", cartHandler.View)
	mux.HandleFunc("POST /cart/add", cartHandler.Add)
	mux.HandleFunc("POST /cart/update", cartHandler.Update)
	mux.HandleFunc("POST /cart/remove", cartHandler.Remove)
	mux.HandleFunc("POST /cart/clear", cartHandler.Clear)

	// Checkout wizard
	mux.HandleFunc("/checkout", checkoutHandler.Show)
	mux.HandleFunc("POST /checkout/shipping", rateLimiter.Middleware(checkoutHandler.SubmitShipping))
	mux.HandleFunc("POST /checkout/payment", checkoutHandler.SubmitPayment)
	mux.HandleFunc("POST /checkout/back", checkoutHandler.Back)
	mux.HandleFunc("POST /checkout/place", checkoutHandler.Place)
	mux.HandleFunc("/order-confirmation", checkoutHandler.Confirmation)

	// Customer account
	mux.HandleFunc("/login", accountHandler.LoginForm)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(accountHandler.Login))
	mux.HandleFunc("/signup", accountHandler.SignupForm)
	mux.HandleFunc("POST /signup", rateLimiter.Middleware(accountHandler.Signup))
	mux.HandleFunc("/logout", accountHandler.Logout)
	mux.HandleFunc("/account", accountHandler.Account)
	mux.HandleFunc("POST /account", accountHandler.UpdateProfile)
	mux.HandleFunc("/orders", accountHandler.MyOrders)

	// Admin
	mux.HandleFunc("/admin/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /admin/login", rateLimiter.Middleware(adminHandler.LoginPost))
	mux.HandleFunc("/admin/logout", adminHandler.Logout)

	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("/admin/products", adminHandler.AuthMiddleware(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", adminHandler.AuthMiddleware(adminHandler.NewProductForm))
	mux.HandleFunc("/admin/products/edit", adminHandler.AuthMiddleware(adminHandler.EditProductForm))
	mux.HandleFunc("POST /admin/products/save", adminHandler.AuthMiddleware(adminHandler.SaveProduct))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.AuthMiddleware(adminHandler.DeleteProduct))
	mux.HandleFunc("/admin/orders", adminHandler.AuthMiddleware(adminHandler.ListOrders))
	mux.HandleFunc("POST /admin/orders/update", adminHandler.AuthMiddleware(adminHandler.UpdateOrderStatus))
	mux.HandleFunc("/admin/customers", adminHandler.AuthMiddleware(adminHandler.ListCustomers))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
