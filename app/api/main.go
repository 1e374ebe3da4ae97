package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/rsandx/oasis-nft-port/base/ctx"
	"github.com/rsandx/oasis-nft-port/base/database/mongoclient"
	"github.com/rsandx/oasis-nft-port/base/log"
	bValidator "github.com/rsandx/oasis-nft-port/base/validator"
	"github.com/rsandx/oasis-nft-port/domain"
	"github.com/rsandx/oasis-nft-port/domain/listing"
	"github.com/rsandx/oasis-nft-port/domain/token"
	mmiddleware "github.com/rsandx/oasis-nft-port/middleware"
	"github.com/rsandx/oasis-nft-port/service/cache"
	"github.com/rsandx/oasis-nft-port/service/query"
	"github.com/rsandx/oasis-nft-port/service/settlement"
	auth_delivery "github.com/rsandx/oasis-nft-port/stores/auth/delivery/http"
	auth_middleware "github.com/rsandx/oasis-nft-port/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/rsandx/oasis-nft-port/stores/auth/usecase"
	market_delivery "github.com/rsandx/oasis-nft-port/stores/market/delivery/http"
	market_repository "github.com/rsandx/oasis-nft-port/stores/market/repository"
	market_usecase "github.com/rsandx/oasis-nft-port/stores/market/usecase"
	token_delivery "github.com/rsandx/oasis-nft-port/stores/token/delivery/http"
	token_repository "github.com/rsandx/oasis-nft-port/stores/token/repository"
	token_usecase "github.com/rsandx/oasis-nft-port/stores/token/usecase"
)

func init() {
	configFile := pflag.StringP("config", "c", "configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init storage
	var tokenRepo token.Repo
	var listingRepo listing.Repo
	switch backend := viper.GetString("storage.backend"); backend {
	case "mongo":
		context.Info("init mongo")
		uri := viper.GetString("mongo.uri")
		authDBName := viper.GetString("mongo.authDBName")
		dbName := viper.GetString("mongo.dbName")
		enableSSL := viper.GetBool("mongo.enableSSL")
		mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
		q := query.New(mongoClient)
		tokenRepo = token_repository.NewTokenRepo(q)
		listingRepo = market_repository.NewListingRepo(q)
	case "memory":
		context.Info("init in-memory storage")
		tokenRepo = token_repository.NewTokenRepoInMemory()
		listingRepo = market_repository.NewListingRepoInMemory()
	default:
		context.WithField("backend", backend).Panic("unknown storage backend")
	}

	// init view cache
	viewCache := cache.New(viper.GetInt("cache.sizeBytes"))

	// init settlement ledger
	ledger := settlement.NewLedger()
	genesis := viper.GetStringMapString("settlement.genesis")
	for account, balance := range genesis {
		value, err := decimal.NewFromString(balance)
		if err != nil {
			context.WithField("account", account).Panic("invalid genesis balance")
		}
		if err := ledger.Credit(context, domain.Address(account), value); err != nil {
			context.WithField("account", account).Panic("genesis credit failed")
		}
	}

	listingFee, err := decimal.NewFromString(viper.GetString("market.listingFee"))
	if err != nil {
		context.WithField("err", err).Panic("invalid market.listingFee")
	}

	// construct repository, usecase and delivery
	tokenUC := token_usecase.New(tokenRepo)
	marketUC := market_usecase.New(listingRepo, tokenUC, ledger, market_usecase.Config{
		MarketplaceAddress: domain.Address(viper.GetString("market.marketplaceAddress")),
		FeeAccount:         domain.Address(viper.GetString("market.feeAccount")),
		ListingFee:         listingFee,
		AllowSelfTrade:     viper.GetBool("market.allowSelfTrade"),
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))

	authMiddleware := auth_middleware.New(auth)

	auth_delivery.New(e, auth)
	token_delivery.New(e, authMiddleware, tokenUC)
	market_delivery.New(e, authMiddleware, marketUC, tokenUC, viewCache, viper.GetString("market.symbol"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "ok")
	})

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
