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
	"github.com/nats-io/nats.go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/database/mongoclient"
	"github.com/x-xyz/escrowapi/base/database/redisclient"
	"github.com/x-xyz/escrowapi/base/goroutine"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/base/metrics"
	bValidator "github.com/x-xyz/escrowapi/base/validator"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/bid"
	"github.com/x-xyz/escrowapi/domain/custody"
	"github.com/x-xyz/escrowapi/domain/item"
	"github.com/x-xyz/escrowapi/domain/keys"
	"github.com/x-xyz/escrowapi/domain/notification"
	"github.com/x-xyz/escrowapi/domain/wallet"
	mmiddleware "github.com/x-xyz/escrowapi/middleware"
	"github.com/x-xyz/escrowapi/service/cache"
	"github.com/x-xyz/escrowapi/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/escrowapi/service/cache/provider/redis"
	"github.com/x-xyz/escrowapi/service/chain"
	"github.com/x-xyz/escrowapi/service/chain/contract"
	"github.com/x-xyz/escrowapi/service/executor"
	"github.com/x-xyz/escrowapi/service/lock"
	"github.com/x-xyz/escrowapi/service/query"
	"github.com/x-xyz/escrowapi/service/redis"
	auction_usecase "github.com/x-xyz/escrowapi/stores/auction/usecase"
	auth_delivery "github.com/x-xyz/escrowapi/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/escrowapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/escrowapi/stores/auth/usecase"
	bid_repository "github.com/x-xyz/escrowapi/stores/bid/repository"
	custody_delivery "github.com/x-xyz/escrowapi/stores/custody/delivery/http"
	custody_repository "github.com/x-xyz/escrowapi/stores/custody/repository"
	custody_usecase "github.com/x-xyz/escrowapi/stores/custody/usecase"
	hc_delivery "github.com/x-xyz/escrowapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/escrowapi/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/escrowapi/stores/healthcheck/usecase"
	item_delivery "github.com/x-xyz/escrowapi/stores/item/delivery/http"
	item_repository "github.com/x-xyz/escrowapi/stores/item/repository"
	item_usecase "github.com/x-xyz/escrowapi/stores/item/usecase"
	"github.com/x-xyz/escrowapi/stores/memory"
	notification_delivery "github.com/x-xyz/escrowapi/stores/notification/delivery/http"
	notification_ws "github.com/x-xyz/escrowapi/stores/notification/delivery/ws"
	notification_repository "github.com/x-xyz/escrowapi/stores/notification/repository"
	"github.com/x-xyz/escrowapi/stores/notification/sink"
	notification_usecase "github.com/x-xyz/escrowapi/stores/notification/usecase"
	settlement_usecase "github.com/x-xyz/escrowapi/stores/settlement/usecase"
	wallet_delivery "github.com/x-xyz/escrowapi/stores/wallet/delivery/http"
	wallet_repository "github.com/x-xyz/escrowapi/stores/wallet/repository"
	wallet_usecase "github.com/x-xyz/escrowapi/stores/wallet/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvPrefix("escrow")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if err := log.Init(log.Options{
		Level: viper.GetString("log.level"),
		File: &log.FileOptions{
			Path:       viper.GetString("log.file"),
			MaxSizeMB:  viper.GetInt("log.maxSizeMB"),
			MaxBackups: viper.GetInt("log.maxBackups"),
			MaxAgeDays: viper.GetInt("log.maxAgeDays"),
			Compress:   true,
		},
	}); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// stores is the persistence chosen by store.driver
type stores struct {
	tx            domain.Transactor
	items         item.Repo
	bids          bid.Repo
	wallets       wallet.Repo
	custody       custody.Repo
	notifications notification.Repo
	mongoClient   *mongoclient.Client
}

func mustInitStores(context ctx.Ctx) stores {
	if viper.GetString("store.driver") == "memory" {
		context.Warn("using in memory store, state is lost on restart")
		m := memory.New()
		return stores{
			tx:            m,
			items:         m.Items(),
			bids:          m.Bids(),
			wallets:       m.Wallets(),
			custody:       m.Custody(),
			notifications: m.Notifications(),
		}
	}

	context.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(
		viper.GetString("mongo.uri"),
		viper.GetString("mongo.authDBName"),
		viper.GetString("mongo.dbName"),
		viper.GetBool("mongo.enableSSL"),
		true,
		2,
	)
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
	return stores{
		tx:            q,
		items:         item_repository.New(q),
		bids:          bid_repository.New(q),
		wallets:       wallet_repository.New(q),
		custody:       custody_repository.New(q),
		notifications: notification_repository.New(q),
		mongoClient:   mongoClient,
	}
}

// cacheProvider prefers redis and falls back to an in process cache
func cacheProvider(name string, redisCache redis.Service) cache.Provider {
	if redisCache != nil {
		return redisProvider.NewRedis(redisCache)
	}
	return primitive.NewPrimitive(name, 32)
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
	e.Validator = bValidator.New()

	context := ctx.Background()
	st := mustInitStores(context)

	// init Redis service
	var redisCache redis.Service
	if uri := viper.GetString("redis.uri"); uri != "" {
		context.Info("init redis")
		redisName := viper.GetString("redis.name")
		redisPool := redisclient.MustConnectRedis(uri, viper.GetString("redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New(redisName, metrics.New(redisName), &redis.Pools{
			Src: redisPool,
		})
	}

	var locker lock.Locker
	switch viper.GetString("lock.driver") {
	case "redis":
		if redisCache == nil {
			context.Panic("lock.driver redis requires redis.uri")
		}
		locker = lock.NewRedis(&lock.RedisLockerCfg{
			Redis:      redisCache,
			TTL:        viper.GetDuration("lock.ttl"),
			RetryStart: 10 * time.Millisecond,
			RetryLimit: 200 * time.Millisecond,
		})
	default:
		locker = lock.NewLocal()
	}

	// notification sinks
	hub := notification_ws.NewHub()
	sinks := []notification.Sink{hub}
	if redisCache != nil {
		sinks = append(sinks, sink.NewRedis(redisCache))
	}
	if url := viper.GetString("nats.url"); url != "" {
		conn, err := nats.Connect(url, nats.Name(viper.GetString("app_name")))
		if err != nil {
			context.WithFields(log.Fields{"err": err, "url": url}).Panic("nats.Connect failed")
		}
		defer conn.Drain()
		natsSink, err := sink.NewJetStream(context, sink.JetStreamCfg{
			Conn:    conn,
			Stream:  viper.GetString("nats.stream"),
			Subject: viper.GetString("nats.subject"),
			MaxAge:  viper.GetDuration("nats.maxAge"),
		})
		if err != nil {
			context.WithField("err", err).Panic("sink.NewJetStream failed")
		}
		sinks = append(sinks, natsSink)
	}
	notifier := notification_usecase.New(&notification_usecase.NotificationUseCaseCfg{
		Repo:    st.notifications,
		Sinks:   sinks,
		Workers: viper.GetInt("notification.workers"),
	})

	marketplace := domain.Address(viper.GetString("marketplace.address")).ToLower()
	exec := executor.New(&executor.ExecutorCfg{
		Locker:     locker,
		Transactor: st.tx,
		Notifier:   notifier,
	})
	ledger := wallet_usecase.New(&wallet_usecase.WalletUseCaseCfg{
		Repo:       st.wallets,
		Escrow:     marketplace,
		Transactor: st.tx,
	})
	custodian := custody_usecase.New(&custody_usecase.CustodyUseCaseCfg{
		Repo:       st.custody,
		Operator:   marketplace,
		Transactor: st.tx,
	})

	// on chain listing verification
	var verifier custody.Verifier
	if viper.GetBool("chain.enabled") {
		chainId := domain.ChainId(viper.GetInt32("chain.chainId"))
		chainService, err := chain.NewClient(context, &chain.ClientCfg{
			RpcUrls: map[domain.ChainId]string{chainId: viper.GetString("chain.rpcUrl")},
		})
		if err != nil {
			context.WithField("err", err).Panic("chain.NewClient failed")
		}
		interfaceCache := cache.New(cache.ServiceConfig{
			Ttl:   24 * time.Hour,
			Pfx:   "chain",
			Cache: primitive.NewPrimitive(keys.PfxErc721Interface, 8),
		})
		verifier = custody_usecase.NewOnchainVerifier(contract.NewErc721(chainService, chainId, interfaceCache), marketplace)
	}

	auction := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		ItemRepo: st.items,
		BidRepo:  st.bids,
		Ledger:   ledger,
		Executor: exec,
	})
	settlement := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		ItemRepo:    st.items,
		BidRepo:     st.bids,
		Ledger:      ledger,
		Custodian:   custodian,
		Executor:    exec,
		Marketplace: marketplace,
	})
	items := item_usecase.New(&item_usecase.ItemUseCaseCfg{
		ItemRepo:    st.items,
		BidRepo:     st.bids,
		Custodian:   custodian,
		Auction:     auction,
		Settlement:  settlement,
		Executor:    exec,
		Verifier:    verifier,
		Marketplace: marketplace,
	})

	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret: viper.GetString("auth.jwtSecret"),
		Nonces: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("auth.nonceTtl"),
			Pfx:   keys.PfxNonce,
			Cache: cacheProvider(keys.PfxNonce, redisCache),
		}),
		SigningMsg: viper.GetString("auth.signatureMsg"),
		TokenTTL:   viper.GetDuration("auth.tokenTtl"),
	})
	authMiddleware := auth_middleware.New(auth, viper.GetStringSlice("auth.adminAddresses"))

	var listCache echo.MiddlewareFunc
	if ttl := viper.GetDuration("http.listCacheTtl"); ttl > 0 {
		listCache = mmiddleware.CacheHttp(cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   "http",
			Cache: cacheProvider("http", redisCache),
		}))
	}

	hc_delivery.New(e, hc_usecase.New(hc_repo.New(st.mongoClient, redisCache)))
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	item_delivery.New(e, items, authMiddleware, listCache)
	wallet_delivery.New(e, ledger, authMiddleware)
	custody_delivery.New(e, custodian, marketplace, authMiddleware)
	notification_delivery.New(e, notifier)
	notification_ws.New(e, hub)

	goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}, goroutine.WithName("http"))

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	hub.Close()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	notifier.Release()
}
