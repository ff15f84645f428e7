package http

import (
	"github.com/go-chi/chi/v5"
	_ "github.com/robosite/storefront/docs" // Импорт сгенерированных файлов
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC,
	authUC usecase.AuthUC, adminUC usecase.AdminCatalogUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	authMw := NewAuthMiddleware(authUC, r.logger)

	r.router.Route("/api", func(api chi.Router) {
		api.Use(WithSession)

		registerProductRoutes(api, NewProductHandler(catalogUC, r.logger))
		registerCategoryRoutes(api, NewCategoryHandler(catalogUC, r.logger))
		registerAuthRoutes(api, NewAuthHandler(authUC, r.logger), authMw)
		registerSessionRoutes(api, NewSessionHandler(authUC, r.logger))
		registerCartRoutes(api, NewCartHandler(cartUC, r.logger))
		registerAdminRoutes(api, NewAdminHandler(adminUC, r.logger), authMw)
	})
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)
	})
}

func registerCategoryRoutes(router chi.Router, h *CategoryHandler) {
	router.Get("/categories/", h.listCategories)
}

func registerAuthRoutes(router chi.Router, h *AuthHandler, mw *AuthMiddleware) {
	router.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", h.register)
		auth.Post("/login", h.login)
		auth.With(mw.RequireUser).Get("/profile", h.profile)
	})
}

func registerSessionRoutes(router chi.Router, h *SessionHandler) {
	router.Route("/session", func(s chi.Router) {
		s.Get("/", h.currentSession)
		s.Post("/login", h.sessionLogin)
		s.Post("/logout", h.sessionLogout)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Get("/", h.getCart)
		cart.Post("/add", h.addToCart)
		cart.Put("/update", h.updateCartItem)
		cart.Delete("/remove", h.removeFromCart)
		cart.Post("/checkout", h.checkout)
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler, mw *AuthMiddleware) {
	router.Route("/admin", func(admin chi.Router) {
		admin.Use(mw.RequireAdmin)
		admin.Post("/products", h.createProduct)
		admin.Put("/products/{id}", h.updateProduct)
		admin.Delete("/products/{id}", h.deleteProduct)
		admin.Post("/products/{id}/image", h.attachImage)
	})
}
