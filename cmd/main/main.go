package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shopkart-main/internal/app"
	"shopkart-main/internal/cart"
	"shopkart-main/internal/catalog"
	elasticService "shopkart-main/internal/elastic_search"
	"shopkart-main/internal/etl"
	handlersCart "shopkart-main/internal/handlers/cart"
	handlersProducts "shopkart-main/internal/handlers/products"
	handlersSupport "shopkart-main/internal/handlers/support"
	"shopkart-main/internal/kafka"
	"shopkart-main/internal/middleware"
	"shopkart-main/internal/notification"
	"shopkart-main/internal/support"

	_ "github.com/lib/pq"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
		c.CfgDB.Host, c.CfgDB.Port, c.CfgDB.Login, c.CfgDB.Password, c.CfgDB.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: "",
		DB:       0, // стандартная БД
	})

	// init elasticsearch
	esClient, err := elasticsearch.NewDefaultClient()
	if err != nil {
		logger.Fatalf("error to create elasticsearch client: %v", err)
	}

	esSvc := elasticService.NewService(esClient, logger, c.CfgES.Index)
	if err := esSvc.EnsureIndex(context.Background()); err != nil {
		logger.Errorf("Failed to ensure index: %v", err)
	}

	// init kafka producer
	producer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Warnf("error to close kafka producer: %v", err)
		}
	}()

	// init repository
	snapshotRepository := cart.NewRedisSnapshotRepository(redisClient, logger)
	productRepository := catalog.NewProductDBRepository(db, logger)
	supportRepository := support.NewSupportDBRepository(db, logger)

	// init ETL pipeline: выгрузка новых товаров в поисковый индекс
	pipeline := etl.NewPipeline(
		etl.NewPostgresExtractor(db, logger),
		etl.NewTransformer(logger),
		etl.NewElasticLoader(esSvc, logger, db),
		logger,
		c.ETLInterval,
	)
	go pipeline.Run(context.Background())

	notifier := notification.NewNotifier(logger)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// init handlers
	cartHandlers := handlersCart.NewCartHandler(
		logger, snapshotRepository, productRepository, esSvc, producer, notifier, c.CartKeyPrefix,
	)
	productHandlers := handlersProducts.NewProductHandler(logger, productRepository)
	supportHandlers := handlersSupport.NewSupportHandler(logger, supportRepository)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/cart/{clientID}", cartHandlers.GetCart).Methods("GET")
	api.HandleFunc("/cart/{clientID}", cartHandlers.Clear).Methods("DELETE")
	api.HandleFunc("/cart/{clientID}/count", cartHandlers.GetCount).Methods("GET")
	api.HandleFunc("/cart/{clientID}/checkout", cartHandlers.Checkout).Methods("POST")
	api.HandleFunc("/cart/{clientID}/item", cartHandlers.AddItem).Methods("POST")
	api.HandleFunc("/cart/{clientID}/item/{productID}", cartHandlers.RemoveItem).Methods("DELETE")
	api.HandleFunc("/cart/{clientID}/item/{productID}/quantity", cartHandlers.UpdateQuantity).Methods("PUT")
	api.HandleFunc("/cart/{clientID}/item/{productID}/save", cartHandlers.SaveForLater).Methods("POST")
	api.HandleFunc("/cart/{clientID}/item/{productID}/view", cartHandlers.ViewProduct).Methods("POST")
	api.HandleFunc("/cart/{clientID}/saved/{productID}/move-to-cart", cartHandlers.MoveToCart).Methods("POST")

	api.HandleFunc("/products", productHandlers.GetListing).Methods("GET")

	api.HandleFunc("/support", supportHandlers.Create).Methods("POST")

	r.Handle("/metrics", promhttp.Handler())

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		panic("can't start server: " + err.Error())
	}
}
