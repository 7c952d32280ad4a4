package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/marketplace/base/config"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	bValidator "github.com/x-xyz/marketplace/base/validator"
	"github.com/x-xyz/marketplace/domain"
	mmiddleware "github.com/x-xyz/marketplace/middleware"
	"github.com/x-xyz/marketplace/service/notify"
	asset_delivery "github.com/x-xyz/marketplace/stores/asset/delivery/http"
	asset_usecase "github.com/x-xyz/marketplace/stores/asset/usecase"
	auth_delivery "github.com/x-xyz/marketplace/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/marketplace/stores/auth/usecase"
	hc_delivery "github.com/x-xyz/marketplace/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/marketplace/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/marketplace/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/marketplace/stores/listing/delivery/http"
	listing_usecase "github.com/x-xyz/marketplace/stores/listing/usecase"

	_ "github.com/x-xyz/marketplace/app/api/docs"
)

//	@title			X Marketplace API
//	@version		1.0
//	@description	Fixed price listings of non-fungible assets paid with fungible assets.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve token from #/auth/post_auth_sign and apply with bearer {token}
func main() {
	fs := config.Flags(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Log().WithField("err", err).Panic("parse flags failed")
	}
	cfg, err := config.Load(fs)
	if err != nil {
		log.Log().WithField("err", err).Panic("load config failed")
	}
	if err := log.Setup(cfg.Log); err != nil {
		log.Log().WithField("err", err).Panic("log.Setup failed")
	}
	defer log.Sync()
	metrics.Setup(cfg.Metrics())

	context := ctx.Background()
	if cfg.Debug {
		context.Info("Service RUN on DEBUG mode")
	}

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	// construct repository, usecase and delivery
	st, err := newStores(context, cfg)
	if err != nil {
		context.WithField("err", err).Panic("init store failed")
	}
	defer st.close()

	ledger := asset_usecase.New(st.ledger, st.tx)
	for _, r := range cfg.Sandbox.Registries {
		if err := ledger.UpsertRegistry(context, r); err != nil {
			context.WithFields(log.Fields{"err": err, "registry": r.Address}).Panic("ledger.UpsertRegistry failed")
		}
	}

	var notifier notify.Notifier = notify.NewLog()
	if cfg.Discord.BotKey != "" {
		notifier, err = notify.NewDiscord(notify.DiscordConfig{
			BotKey:    cfg.Discord.BotKey,
			ChannelId: cfg.Discord.ChannelId,
			SiteURL:   cfg.Discord.SiteURL,
			Workers:   cfg.Discord.Workers,
		})
		if err != nil {
			context.WithField("err", err).Panic("notify.NewDiscord failed")
		}
	}
	defer notifier.Close()

	listing := listing_usecase.New(listing_usecase.Config{
		Market:    domain.Address(cfg.Market.Address).ToLower(),
		IdLimit:   cfg.Market.IdLimit,
		InboxSize: cfg.Market.InboxSize,
	}, st.listings, st.activities, ledger, st.tx, notifier)
	defer listing.Close()

	auth := auth_usecase.New(cfg.Auth.JwtSecret, cfg.Auth.SignatureMsg, cfg.Auth.TokenTTL)
	hc := hc_usecase.New(hc_repo.New(st.pinger, cfg.Store.Driver))
	auth_middleware := auth_middleware.New(auth, cfg.Admin.Addresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, cfg.Auth.SignatureMsg)
	listing_delivery.New(e, listing, auth_middleware)
	if cfg.Sandbox.Enabled {
		context.Info("sandbox ledger endpoints enabled")
		asset_delivery.New(e, ledger, auth_middleware)
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
