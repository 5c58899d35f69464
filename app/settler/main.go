package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/database/mongoclient"
	"github.com/x-xyz/swiftbid/base/database/redisclient"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/base/metrics"
	"github.com/x-xyz/swiftbid/base/settler"
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
	account_repository "github.com/x-xyz/swiftbid/stores/account/repository"
	hc_delivery "github.com/x-xyz/swiftbid/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/swiftbid/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/swiftbid/stores/healthcheck/usecase"
	listing_repository "github.com/x-xyz/swiftbid/stores/listing/repository"
	listing_usecase "github.com/x-xyz/swiftbid/stores/listing/usecase"
	settlement_repository "github.com/x-xyz/swiftbid/stores/settlement/repository"
	wallet_repository "github.com/x-xyz/swiftbid/stores/wallet/repository"
	wallet_usecase "github.com/x-xyz/swiftbid/stores/wallet/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/settler/config.yaml", "path of the yaml config")
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

func main() {
	bgCtx, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()

	// init mongo client
	bgCtx.Info("init mongo")
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
	bgCtx.Info("init redis")
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

	// init ledger
	bgCtx.Info("init ledger")
	eth, err := ledger.Dial(bgCtx, viper.GetString("ledger.rpcUrl"), viper.GetInt("ledger.maxInflight"))
	if err != nil {
		bgCtx.WithField("err", err).Panic("ledger.Dial failed")
	}
	ledgerClient := ledger.New(eth, ledger.Config{
		Decimals:     viper.GetInt32("ledger.decimals"),
		GasLimit:     viper.GetUint64("ledger.gasLimit"),
		PollInterval: viper.GetDuration("ledger.pollInterval"),
		PollLimit:    viper.GetDuration("ledger.pollLimit"),
		Finality:     viper.GetDuration("ledger.finality"),
	})
	connector := ledger.NewConnector(ledgerClient, viper.GetInt("ledger.slots"))

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
			bgCtx.WithField("err", err).Panic("notify.NewDiscord failed")
		}
		notifiers = append(notifiers, discord)
	}

	listCache := cache.New(cache.ServiceConfig{
		Ttl: viper.GetDuration("listing.listCacheTTL"),
		Pfx: keys.PfxListing,
		Cache: compound.NewCompound([]provider.Provider{
			primitive.NewPrimitive(keys.PfxListing, viper.GetInt("listing.localCacheMB")),
			redisProvider.NewRedis(redisCache),
		}),
	})
	accountRepo := account_repository.New(q, redisCache)
	walletRepo := wallet_repository.New(q)
	listingRepo := listing_repository.New(q, listCache)
	settlementRepo := settlement_repository.New(q)

	wallets := wallet_usecase.New(walletRepo, accountRepo, ledgerClient, wallet_usecase.Config{
		Passphrase: viper.GetString("wallet.passphrase"),
		ScryptN:    viper.GetInt("wallet.scryptN"),
		ScryptP:    viper.GetInt("wallet.scryptP"),
	})
	opener := session.NewOpener(wallets, connector)

	listingCfg := listing_usecase.Config{
		MaxBidAttempts:    viper.GetInt("listing.maxBidAttempts"),
		SettlementTimeout: viper.GetDuration("listing.settlementTimeout"),
		AbandonAfter:      viper.GetDuration("listing.abandonAfter"),
	}
	if m := viper.GetString("listing.buyNowMultiplier"); m != "" {
		listingCfg.BuyNowMultiplier = decimal.RequireFromString(m)
	}
	// the settler never creates listings, no image store needed
	listings := listing_usecase.New(listingRepo, settlementRepo, nil, notify.NewMulti(notifyPool, notifiers...), listingCfg)

	watcher := settler.NewExpiryWatcher(&settler.ExpiryWatcherCfg{
		Listings:    listings,
		Opener:      opener,
		Settlements: settlementRepo,
		Interval:    viper.GetDuration("expiry.interval"),
		Batch:       viper.GetInt("expiry.batch"),
		Workers:     viper.GetInt("expiry.workers"),
		RetryAfter:  viper.GetDuration("expiry.retryAfter"),
		MaxAttempts: viper.GetInt("expiry.maxAttempts"),
	})
	reconciler := settler.NewReconciler(&settler.ReconcilerCfg{
		Listings:   listings,
		Connector:  connector,
		Redis:      redisCache,
		Schedule:   viper.GetString("reconciler.schedule"),
		StaleAfter: viper.GetDuration("reconciler.staleAfter"),
		Batch:      viper.GetInt("reconciler.batch"),
		LockTTL:    viper.GetDuration("reconciler.lockTTL"),
	})

	// health endpoint only
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	middL := mmiddleware.InitMiddleware("")
	e.Use(middL.AddContext())
	hc_delivery.New(e, hc_usecase.New(hc_repo.New(q, redisCache)))
	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the health server")
		}
	}()

	watcher.Start(bgCtx)
	if err := reconciler.Start(bgCtx); err != nil {
		bgCtx.WithField("err", err).Panic("reconciler.Start failed")
	}
	bgCtx.Info("settler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	cancel()
	reconciler.Stop()
	watcher.Wait()

	shutdownCtx, shutdownCancel := ctx.WithTimeout(ctx.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the health server")
	}
	log.Log().Info("settler stopped")
}
