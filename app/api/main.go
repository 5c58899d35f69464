package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viney-shih/goroutines"
	"google.golang.org/api/option"

	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/database/mongoclient"
	"github.com/x-xyz/swiftbid/base/database/redisclient"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/base/metrics"
	bValidator "github.com/x-xyz/swiftbid/base/validator"
	"github.com/x-xyz/swiftbid/domain"
	"github.com/x-xyz/swiftbid/domain/keys"
	"github.com/x-xyz/swiftbid/domain/listing"
	mmiddleware "github.com/x-xyz/swiftbid/middleware"
	"github.com/x-xyz/swiftbid/service/cache"
	"github.com/x-xyz/swiftbid/service/cache/provider"
	"github.com/x-xyz/swiftbid/service/cache/provider/compound"
	"github.com/x-xyz/swiftbid/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/swiftbid/service/cache/provider/redis"
	"github.com/x-xyz/swiftbid/service/ledger"
	"github.com/x-xyz/swiftbid/service/notify"
	"github.com/x-xyz/swiftbid/service/query"
	"github.com/x-xyz/swiftbid/service/redis"
	"github.com/x-xyz/swiftbid/service/session"
	account_delivery "github.com/x-xyz/swiftbid/stores/account/delivery/http"
	account_repository "github.com/x-xyz/swiftbid/stores/account/repository"
	account_usecase "github.com/x-xyz/swiftbid/stores/account/usecase"
	auth_delivery "github.com/x-xyz/swiftbid/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/swiftbid/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/swiftbid/stores/auth/usecase"
	hc_delivery "github.com/x-xyz/swiftbid/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/swiftbid/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/swiftbid/stores/healthcheck/usecase"
	listing_delivery "github.com/x-xyz/swiftbid/stores/listing/delivery/http"
	listing_repository "github.com/x-xyz/swiftbid/stores/listing/repository"
	listing_usecase "github.com/x-xyz/swiftbid/stores/listing/usecase"
	settlement_repository "github.com/x-xyz/swiftbid/stores/settlement/repository"
	wallet_delivery "github.com/x-xyz/swiftbid/stores/wallet/delivery/http"
	wallet_repository "github.com/x-xyz/swiftbid/stores/wallet/repository"
	wallet_usecase "github.com/x-xyz/swiftbid/stores/wallet/usecase"
	web_resource_repository "github.com/x-xyz/swiftbid/stores/web_resource/repository"
	web_resource_usecase "github.com/x-xyz/swiftbid/stores/web_resource/usecase"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/x-xyz/swiftbid/app/api/docs"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Swiftbid API
//	@version		1.0
//	@description	API Document for the Swiftbid auction marketplace.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve a token from /auth/signin and apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// websocket upgrades cannot be gzipped
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Path(), "/events")
		},
	}))
	middL := mmiddleware.InitMiddleware(viper.GetString("cors.allowOrigin"))
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	mongoClient := mongoclient.MustConnect(mongoclient.Config{
		URI:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		EnableSSL:          viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: viper.GetFloat64("mongo.poolSizeMultiplier"),
	})
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))

	// init Redis service
	context.Info("init redis")
	redisName := viper.GetString("redis.name")
	redisPool := redisclient.MustConnect(redisclient.Config{
		URI:            viper.GetString("redis.uri"),
		Password:       viper.GetString("redis.password"),
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retry:          true,
	})
	redisCache := redis.New(redisName, metrics.New(redisName), &redis.Pools{
		Src: redisPool,
	})

	if viper.GetBool("mongo.ensureIndexes") {
		indexes := []query.Index{}
		indexes = append(indexes, listing_repository.Indexes...)
		indexes = append(indexes, settlement_repository.Indexes...)
		indexes = append(indexes, account_repository.Indexes...)
		indexes = append(indexes, wallet_repository.Indexes...)
		if err := q.EnsureIndexes(context, indexes); err != nil {
			context.WithField("err", err).Panic("EnsureIndexes failed")
		}
	}

	// init ledger
	context.Info("init ledger")
	eth, err := ledger.Dial(context, viper.GetString("ledger.rpcUrl"), viper.GetInt("ledger.maxInflight"))
	if err != nil {
		context.WithField("err", err).Panic("ledger.Dial failed")
	}
	ledgerClient := ledger.New(eth, ledger.Config{
		Decimals:     viper.GetInt32("ledger.decimals"),
		GasLimit:     viper.GetUint64("ledger.gasLimit"),
		PollInterval: viper.GetDuration("ledger.pollInterval"),
		PollLimit:    viper.GetDuration("ledger.pollLimit"),
		Finality:     viper.GetDuration("ledger.finality"),
	})
	connector := ledger.NewConnector(ledgerClient, viper.GetInt("ledger.slots"))

	// image store
	imageWriter := mustImageWriter(context)

	// notifiers
	notifyPool := goroutines.NewPool(viper.GetInt("notify.workers"))
	defer notifyPool.Release()
	notifiers := []listing.Notifier{notify.NewRedis(redisCache, keys.ChannelListingEvents)}
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		discord, err := notify.NewDiscord(notify.DiscordConfig{
			BotKey:     botKey,
			ChannelId:  viper.GetString("discord.channelId"),
			ListingUrl: viper.GetString("discord.listingUrl"),
		})
		if err != nil {
			context.WithField("err", err).Panic("notify.NewDiscord failed")
		}
		notifiers = append(notifiers, discord)
	}
	notifier := notify.NewMulti(notifyPool, notifiers...)

	// construct repository, usecase and delivery
	listCache := cache.New(cache.ServiceConfig{
		Ttl: viper.GetDuration("listing.listCacheTTL"),
		Pfx: keys.PfxListing,
		Cache: compound.NewCompound([]provider.Provider{
			primitive.NewPrimitive(keys.PfxListing, viper.GetInt("listing.localCacheMB")),
			redisProvider.NewRedis(redisCache),
		}),
	})
	hcRepo := hc_repo.New(q, redisCache)
	accountRepo := account_repository.New(q, redisCache)
	walletRepo := wallet_repository.New(q)
	listingRepo := listing_repository.New(q, listCache)
	settlementRepo := settlement_repository.New(q)

	hc := hc_usecase.New(hcRepo)
	account := account_usecase.New(&account_usecase.AccountUseCaseCfg{
		Repo:       accountRepo,
		BcryptCost: viper.GetInt("auth.bcryptCost"),
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTTL"))
	wallets := wallet_usecase.New(walletRepo, accountRepo, ledgerClient, wallet_usecase.Config{
		Passphrase: viper.GetString("wallet.passphrase"),
		ScryptN:    viper.GetInt("wallet.scryptN"),
		ScryptP:    viper.GetInt("wallet.scryptP"),
	})
	opener := session.NewOpener(wallets, connector)
	images := web_resource_usecase.NewImageUseCase(&web_resource_usecase.ImageUseCaseCfg{
		Writer:  imageWriter,
		MaxSize: viper.GetInt("images.maxSize"),
	})
	listings := listing_usecase.New(listingRepo, settlementRepo, images, notifier, listingConfig())

	// listing events fan out
	hub := listing_delivery.NewHub()
	hubCtx, stopHub := ctx.WithCancel(context)
	go hub.Run(hubCtx)
	go hub.Consume(hubCtx, redisCache)

	auth_middleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, account)
	account_delivery.New(e, account, auth, auth_middleware)
	wallet_delivery.New(e, wallets, auth_middleware)
	listing_delivery.New(e, listings, opener, hub, auth_middleware)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

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
	stopHub()

	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

func listingConfig() listing_usecase.Config {
	cfg := listing_usecase.Config{
		MaxBidAttempts:    viper.GetInt("listing.maxBidAttempts"),
		SettlementTimeout: viper.GetDuration("listing.settlementTimeout"),
		AbandonAfter:      viper.GetDuration("listing.abandonAfter"),
	}
	if m := viper.GetString("listing.buyNowMultiplier"); m != "" {
		cfg.BuyNowMultiplier = decimal.RequireFromString(m)
	}
	return cfg
}

// mustImageWriter picks the listing image store, gcs or ipfs
func mustImageWriter(context ctx.Ctx) domain.WebResourceWriterRepository {
	switch store := viper.GetString("images.store"); store {
	case "gcs":
		opts := []option.ClientOption{}
		if f := viper.GetString("gcs.credentialsFile"); f != "" {
			opts = append(opts, option.WithCredentialsFile(f))
		}
		client, err := storage.NewClient(context, opts...)
		if err != nil {
			context.WithField("err", err).Panic("storage.NewClient failed")
		}
		w, err := web_resource_repository.NewCloudStorageWriterRepo(&web_resource_repository.CloudStorageWriterRepoCfg{
			Timeout:      viper.GetDuration("gcs.timeout"),
			Client:       client,
			BucketName:   viper.GetString("gcs.bucket"),
			Url:          viper.GetString("gcs.url"),
			CacheControl: viper.GetString("gcs.cacheControl"),
		})
		if err != nil {
			context.WithField("err", err).Panic("NewCloudStorageWriterRepo failed")
		}
		return w
	case "ipfs":
		shell := ipfsapi.NewShell(viper.GetString("ipfs.apiUrl"))
		w, err := web_resource_repository.NewIpfsWriterRepo(shell, viper.GetString("ipfs.gatewayUrl"))
		if err != nil {
			context.WithField("err", err).Panic("NewIpfsWriterRepo failed")
		}
		return w
	default:
		context.WithField("store", store).Panic("unknown image store")
		return nil
	}
}
