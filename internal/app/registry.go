package app

import (
	"fmt"

	"github.com/vscooter54-cell/VScooter-sub000/internal/address"
	"github.com/vscooter54-cell/VScooter-sub000/internal/auth"
	"github.com/vscooter54-cell/VScooter-sub000/internal/cart"
	"github.com/vscooter54-cell/VScooter-sub000/internal/config"
	"github.com/vscooter54-cell/VScooter-sub000/internal/coupon"
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"
	"github.com/vscooter54-cell/VScooter-sub000/internal/order"
	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"
	"github.com/vscooter54-cell/VScooter-sub000/internal/payment"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pricing"
	"github.com/vscooter54-cell/VScooter-sub000/internal/product"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/gin-gonic/gin"
)

type modules struct {
	auth    auth.Service
	tokens  *auth.RedisTokenStore
	product product.Service
	cart    cart.Service
	address address.Service
	order   order.Service
}

func newPricing(cfg *config.Config, prices pricing.PriceSource, coupons pricing.CouponResolver, infra *Infra) (*pricing.Calculator, error) {
	rates, err := config.ParseTaxRates(cfg.TaxRates)
	if err != nil {
		return nil, err
	}
	shipping, err := pricing.NewShippingPolicy(cfg.ShippingMode, cfg.ShippingFlat, cfg.ShippingFreeThreshold)
	if err != nil {
		return nil, fmt.Errorf("shipping policy: %w", err)
	}
	return pricing.NewCalculator(pricing.Deps{
		Prices:   prices,
		Coupons:  coupons,
		Tax:      pricing.RateTax{Rates: rates},
		Shipping: shipping,
		Logger:   infra.Logger.Named("pricing"),
	}), nil
}

// buildModules wires repositories and services. The order module and its
// payment gateway are only built for the API process.
func buildModules(infra *Infra, withOrders bool) (*modules, error) {
	cfg := infra.Config
	log := infra.Logger
	queries := dbgen.New(infra.DB)

	// --- Repositories ---
	authRepo := auth.NewRepository(queries)
	productRepo := product.NewRepository(queries)
	couponRepo := coupon.NewRepository(queries)
	cartRepo := cart.NewRepository(queries)
	addressRepo := address.NewRepository(queries)

	// --- Services ---
	tokens := auth.NewRedisTokenStore(infra.Redis)
	authService := auth.NewService(auth.Deps{
		Repo:   authRepo,
		Tokens: tokens,
		Secret: cfg.JWTSecret,
		Logger: log.Named("auth"),
	})
	productService := product.NewService(productRepo, cfg.DefaultCurrency, log.Named("product"))
	couponService := coupon.NewService(coupon.Deps{
		Repo:   couponRepo,
		Cache:  coupon.NewRedisCache(infra.Redis, coupon.DefaultCacheTTL),
		Logger: log.Named("coupon"),
	})

	calculator, err := newPricing(cfg, productService, couponService, infra)
	if err != nil {
		return nil, err
	}

	cartService := cart.NewService(cart.Deps{
		DB:              infra.DB,
		Repo:            cartRepo,
		Pricer:          calculator,
		DefaultCurrency: cfg.DefaultCurrency,
		Logger:          log.Named("cart"),
	})
	addressService := address.NewService(addressRepo, log.Named("address"))

	m := &modules{
		auth:    authService,
		tokens:  tokens,
		product: productService,
		cart:    cartService,
		address: addressService,
	}

	if withOrders {
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("STRIPE_SECRET_KEY is not configured")
		}
		m.order = order.NewService(order.Deps{
			DB:       infra.DB,
			Repo:     order.NewRepository(queries),
			Outbox:   outbox.NewRepository(queries),
			Carts:    cartService,
			Payments: payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, log.Named("payment")),
			Logger:   log.Named("order"),
		})
	}

	return m, nil
}

func registerRoutes(router *gin.Engine, infra *Infra, m *modules) {
	log := infra.Logger
	authMw := middleware.AuthMiddleware(infra.Config.JWTSecret, m.tokens)

	// --- Handlers ---
	authHandler := auth.NewHandler(m.auth, log)
	productHandler := product.NewHandler(m.product, log)
	cartHandler := cart.NewHandler(m.cart, log)
	addressHandler := address.NewHandler(m.address, log)
	orderHandler := order.NewHandler(m.order, infra.Redis, log)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMw)
		product.RegisterRoutes(api, productHandler)
		cart.RegisterRoutes(api, cartHandler, authMw)
		address.RegisterRoutes(api, addressHandler, authMw)
		order.RegisterRoutes(api, orderHandler, infra.Redis, authMw)
	}
}
