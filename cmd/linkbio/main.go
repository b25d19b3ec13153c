package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	analyticsmodule "github.com/dmitrymomot/linkbio/modules/analytics"
	"github.com/dmitrymomot/linkbio/modules/api"
	billingmodule "github.com/dmitrymomot/linkbio/modules/billing"
	linksmodule "github.com/dmitrymomot/linkbio/modules/links"
	"github.com/dmitrymomot/linkbio/pkg/analytics"
	"github.com/dmitrymomot/linkbio/pkg/config"
	"github.com/dmitrymomot/linkbio/pkg/entitlement"
	"github.com/dmitrymomot/linkbio/pkg/httpserver"
	"github.com/dmitrymomot/linkbio/pkg/links"
	"github.com/dmitrymomot/linkbio/pkg/logger"
	"github.com/dmitrymomot/linkbio/pkg/pg"
	"github.com/dmitrymomot/linkbio/pkg/redis"
	"github.com/dmitrymomot/linkbio/pkg/staff"
	"github.com/dmitrymomot/linkbio/pkg/subscription"
)

type appConfig struct {
	AppEnv     string `env:"APP_ENV" envDefault:"production"`
	AuthHeader string `env:"AUTH_USER_HEADER" envDefault:"X-User-ID"` // identity header set by the auth gateway

	// DevPlanOverride forces every non-staff resolution to the named plan.
	// Applied only when AppEnv is development; ignored everywhere else.
	DevPlanOverride string `env:"DEV_PLAN_OVERRIDE"`

	// Paddle price ids per paid plan. Plans without a price are not
	// purchasable through checkout.
	PriceBasic   string `env:"PADDLE_PRICE_BASIC"`
	PricePremium string `env:"PADDLE_PRICE_PREMIUM"`

	Log    logger.Config
	PG     pg.Config
	Redis  redis.Config
	HTTP   httpserver.Config
	Paddle subscription.PaddleConfig
	Cache  subscription.CacheConfig
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.NewFromConfig(cfg.Log,
		logger.WithAttr(slog.String("service", "linkbio"), slog.String("env", cfg.AppEnv)),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	provider, err := subscription.NewPaddleProvider(cfg.Paddle)
	if err != nil {
		return err
	}

	subscriptionStore := subscription.NewCachedStore(subscription.NewPostgresStore(pool), redisClient, cfg.Cache)
	subscriptionSvc := subscription.NewService(subscriptionStore, provider, priceMap(cfg))
	staffSvc := staff.NewService(staff.NewPostgresStore(pool))

	catalog, err := entitlement.NewCatalog(ctx, entitlement.NewInMemSource(entitlement.DefaultPlans()))
	if err != nil {
		return err
	}
	resolver := entitlement.NewResolver(catalog, resolverOptions(cfg, log)...)
	entitlementSvc := entitlement.NewService(resolver, subscriptionSvc.Lookup(), staffSvc.Lookup())

	linksSvc := links.NewService(links.NewPostgresStore(pool), entitlementSvc.EffectiveCapabilities)
	clickStore := analytics.NewPostgresStore(pool)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(api.HeaderAuthenticator(cfg.AuthHeader))

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))

	r.Mount("/billing", billingmodule.Router(billingmodule.RouterOptions{
		Subscriptions: subscriptionSvc,
		Entitlements:  entitlementSvc,
		Log:           log,
	}))
	r.Mount("/links", linksmodule.Router(linksmodule.RouterOptions{
		Links: linksSvc,
		Log:   log,
	}))
	r.Mount("/analytics", analyticsmodule.Router(analyticsmodule.RouterOptions{
		Clicks:       clickStore,
		Entitlements: entitlementSvc,
		Log:          log,
	}))
	// Public pages are addressed by user id until the account system brings
	// profile usernames.
	r.Mount("/u", linksmodule.PublicRouter(linksmodule.PublicRouterOptions{
		Links:   linksSvc,
		Resolve: resolveUserByID,
		Clicks:  clickStore,
		Log:     log,
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("listening", "addr", cfg.HTTP.Addr)
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("server stopped")
		}),
	)
	return srv.Run(ctx, r)
}

func priceMap(cfg appConfig) subscription.PriceMap {
	prices := make(subscription.PriceMap, 2)
	if cfg.PriceBasic != "" {
		prices[string(entitlement.PlanBasic)] = cfg.PriceBasic
	}
	if cfg.PricePremium != "" {
		prices[string(entitlement.PlanPremium)] = cfg.PricePremium
	}
	return prices
}

func resolverOptions(cfg appConfig, log *slog.Logger) []entitlement.ResolverOption {
	if cfg.AppEnv != "development" || cfg.DevPlanOverride == "" {
		return nil
	}
	log.Warn("entitlement plan override active", logger.PlanID(cfg.DevPlanOverride))
	return []entitlement.ResolverOption{
		entitlement.WithPlanOverride(entitlement.PlanID(cfg.DevPlanOverride)),
	}
}

func resolveUserByID(_ context.Context, username string) (uuid.UUID, error) {
	return uuid.Parse(username)
}
