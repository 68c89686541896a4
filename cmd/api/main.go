package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "dealflow-backend/internal/adapter/http"
	axmw "dealflow-backend/internal/adapter/middleware"
	"dealflow-backend/internal/adapter/repository/mysql"
	"dealflow-backend/internal/config"
	"dealflow-backend/internal/domain/uow"
	"dealflow-backend/internal/infrastructure/cache"
	"dealflow-backend/internal/infrastructure/db"
	activityUC "dealflow-backend/internal/usecase/activity"
	buyerUC "dealflow-backend/internal/usecase/buyer"
	dealUC "dealflow-backend/internal/usecase/deal"
	matchingUC "dealflow-backend/internal/usecase/matching"
	offerUC "dealflow-backend/internal/usecase/offer"
	transactionUC "dealflow-backend/internal/usecase/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	deals := mysql.NewDealRepository(gdb)
	activities := mysql.NewActivityRepository(gdb)
	offers := mysql.NewOfferRepository(gdb)
	buyers := mysql.NewBuyerRepository(gdb)
	prefs := mysql.NewPreferencesRepository(gdb)
	txs := mysql.NewTransactionRepository(gdb)
	var tx uow.UnitOfWork = mysql.NewGormUoW(gdb)

	dealSvc := dealUC.NewUsecase(deals, buyers, tx)
	activitySvc := activityUC.NewUsecase(deals, activities)
	offerSvc := offerUC.NewUsecase(deals, offers)
	buyerSvc := buyerUC.NewUsecase(buyers, prefs, txs)
	transactionSvc := transactionUC.NewUsecase(buyers, txs)
	matchingSvc := matchingUC.NewUsecase(buyers, prefs)

	h := httpadp.NewHandler()
	dealH := httpadp.NewDealHandler(dealSvc)
	activityH := httpadp.NewActivityHandler(activitySvc)
	offerH := httpadp.NewOfferHandler(offerSvc)
	buyerH := httpadp.NewBuyerHandler(buyerSvc)
	transactionH := httpadp.NewTransactionHandler(transactionSvc)
	matchH := httpadp.NewMatchHandler(matchingSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(axmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/deals", dealH.CreateDeal)
	e.GET("/deals", dealH.ListDeals)
	e.GET("/deals/board", dealH.GetBoard)
	e.GET("/deals/stats", dealH.GetPipelineStats)
	e.GET("/deals/:deal_id", dealH.GetDeal)
	e.PATCH("/deals/:deal_id", dealH.UpdateDeal)

	e.POST("/deals/:deal_id/activities", activityH.LogActivity)
	e.GET("/deals/:deal_id/activities", activityH.ListActivities)
	e.GET("/deals/:deal_id/activities/summary", activityH.GetActivitySummary)

	e.POST("/deals/:deal_id/offers", offerH.CreateOffer)
	e.GET("/deals/:deal_id/offers", offerH.ListOffers)
	e.PATCH("/deals/:deal_id/offers/:offer_id", offerH.UpdateOffer)

	e.POST("/buyers", buyerH.CreateBuyer)
	e.GET("/buyers", buyerH.ListBuyers)
	e.GET("/buyers/attention", buyerH.ListNeedsAttention)
	e.GET("/buyers/:buyer_id", buyerH.GetBuyer)
	e.PATCH("/buyers/:buyer_id", buyerH.UpdateBuyer)
	e.PUT("/buyers/:buyer_id/preferences", buyerH.SetPreferences)
	e.GET("/buyers/:buyer_id/preferences", buyerH.GetPreferences)
	e.POST("/buyers/:buyer_id/qualify", buyerH.QualifyBuyer)
	e.POST("/buyers/:buyer_id/rescore", buyerH.RescoreBuyer)

	e.POST("/buyers/:buyer_id/transactions", transactionH.AddTransaction)
	e.GET("/buyers/:buyer_id/transactions", transactionH.ListTransactions)
	e.GET("/buyers/:buyer_id/transactions/analysis", transactionH.AnalyzeTransactions)

	e.POST("/match", matchH.MatchBuyers)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
