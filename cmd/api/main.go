package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/payment"
	"github.com/jhoicas/scoreking-api/internal/application/ports"
	"github.com/jhoicas/scoreking-api/internal/application/scraping"
	"github.com/jhoicas/scoreking-api/internal/application/usecase"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
	infragoogle "github.com/jhoicas/scoreking-api/internal/infrastructure/google"
	inframail "github.com/jhoicas/scoreking-api/internal/infrastructure/mail"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/memory"
	infrapaypal "github.com/jhoicas/scoreking-api/internal/infrastructure/paypal"
	"github.com/jhoicas/scoreking-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/scoreking-api/internal/infrastructure/redis"
	infrascraper "github.com/jhoicas/scoreking-api/internal/infrastructure/scraper"
	infrastripe "github.com/jhoicas/scoreking-api/internal/infrastructure/stripe"
	httpRouter "github.com/jhoicas/scoreking-api/internal/interfaces/http"
	"github.com/jhoicas/scoreking-api/pkg/config"
	"github.com/jhoicas/scoreking-api/pkg/jwt"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

// stores adaptadores de persistencia elegidos por STORE_DRIVER.
type stores struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	tokens   repository.PasswordResetTokenRepository
	payments repository.PaymentRepository
	tx       auth.ResetTxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	// Los roles deben existir antes de aceptar registros.
	if err := auth.EnsureRoles(ctx, st.roles, log.Component("bootstrap")); err != nil {
		log.Fatal().Err(err).Msg("sembrar roles")
	}

	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar JWT")
	}
	issuer = issuer.WithRememberTTL(cfg.Cookie.Remember)

	var mailer ports.Mailer
	if cfg.Mail.Host != "" {
		mailer = inframail.NewSMTPMailer(cfg.Mail)
	} else {
		mailer = inframail.NewLogMailer(log.Component("mail"))
	}

	authUC := auth.NewAuthUseCase(st.users, st.roles, issuer)
	federatedUC := auth.NewFederatedUseCase(st.users, st.roles, infragoogle.NewVerifier(cfg.Google.ClientID), issuer, cfg.Google.Timeout)
	resetUC := auth.NewPasswordResetUseCase(st.users, st.tokens, st.tx, mailer, cfg.Mail.Timeout, log.Component("password_reset"))
	settingsUC := usecase.NewSettingsUseCase(st.users)
	paymentUC := payment.NewPaymentUseCase(
		st.users, st.payments,
		infrastripe.NewGateway(cfg.Stripe),
		infrapaypal.NewClient(cfg.PayPal),
		payment.PayPalURLs{ReturnURL: cfg.PayPal.ReturnURL, CancelURL: cfg.PayPal.CancelURL},
		log.Component("payments"),
	)
	scrapingUC := scraping.NewScrapingUseCase(infrascraper.NewPythonRunner(cfg.Scraper.PythonBin), scraping.Config{
		MatchesPath: cfg.Scraper.MatchesPath,
		LeaguesPath: cfg.Scraper.LeaguesPath,
		Timeout:     cfg.Scraper.Timeout,
	})

	swaggerFile := "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err != nil {
		swaggerFile = ""
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Production:  cfg.App.IsProduction(),
		BodyLimit:   cfg.HTTP.BodyLimit,
		SwaggerFile: swaggerFile,
		AuthUC:      authUC,
		FederatedUC: federatedUC,
		ResetUC:     resetUC,
		SettingsUC:  settingsUC,
		PaymentUC:   paymentUC,
		ScrapingUC:  scrapingUC,
		Tokens:      issuer,
		Cookie:      cfg.Cookie,
		CORS:        cfg.CORS,
		RateLimit:   cfg.RateLimit,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	if cfg.HTTP.TLSEnabled() {
		// Mismo handler en un segundo listener con TLS.
		go func() {
			if err := app.ListenTLS(cfg.HTTP.TLSAddr(), cfg.HTTP.TLSCert, cfg.HTTP.TLSKey); err != nil {
				log.Error().Err(err).Msg("servidor HTTPS finalizado")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	var st *stores
	switch cfg.Store.Driver {
	case "memory":
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		st = &stores{
			users:    mem.Users(),
			roles:    mem.Roles(),
			tokens:   mem.ResetTokens(),
			payments: mem.Payments(),
			tx:       memory.NewTxRunner(mem),
			close:    func() {},
		}
	default:
		pool, err := postgres.Connect(ctx, cfg.DB, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		st = postgresStores(pool)
	}

	if cfg.Store.ResetTokenDriver == "redis" {
		pgTx, ok := st.tx.(*postgres.TxRunner)
		if !ok {
			log.Warn().Msg("RESET_TOKEN_STORE=redis requiere STORE_DRIVER=postgres; se ignora")
			return st, nil
		}
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			st.close()
			return nil, err
		}
		redisTokens := infraredis.NewResetTokenStore(rdb)
		st.tokens = redisTokens
		st.tx = pgTx.WithTokenStore(redisTokens)
		closePool := st.close
		st.close = func() {
			_ = rdb.Close()
			closePool()
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("códigos de recuperación en Redis")
	}
	return st, nil
}

func postgresStores(pool *pgxpool.Pool) *stores {
	return &stores{
		users:    postgres.NewUserRepository(pool),
		roles:    postgres.NewRoleRepository(pool),
		tokens:   postgres.NewPasswordResetTokenRepository(pool),
		payments: postgres.NewPaymentRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}
}
