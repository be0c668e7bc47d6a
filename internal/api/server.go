package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/klublotto/klublotto-api/docs"
	v1 "github.com/klublotto/klublotto-api/internal/api/handler/v1"
	"github.com/klublotto/klublotto-api/internal/api/middleware"
	"github.com/klublotto/klublotto-api/internal/config"
	"github.com/klublotto/klublotto-api/internal/pkg/clock"
	"github.com/klublotto/klublotto-api/internal/repository"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
	"github.com/klublotto/klublotto-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, clk clock.Clock) *Server {
	if conf.API.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	playerSvc := initPlayerService(db, clk)
	ledgerSvc := initLedgerService(db, clk)
	roundSvc, seedSvc := initRoundServices(db, clk, conf.Lottery)
	wagerSvc := initWagerService(db, clk, conf.Lottery)

	authHandler := v1.NewAuthHandler(conf.API, initAuthService(db), playerSvc)
	roundHandler := v1.NewRoundHandler(roundSvc, seedSvc, wagerSvc)
	boardHandler := v1.NewBoardHandler(wagerSvc, playerSvc)
	ledgerHandler := v1.NewLedgerHandler(ledgerSvc, playerSvc)
	playerHandler := v1.NewPlayerHandler(playerSvc, ledgerSvc)

	s.MountHandlers(authHandler, roundHandler, boardHandler, ledgerHandler, playerHandler)

	return s
}

func initAuthService(db *gorm.DB) *service.AuthService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)

	return service.NewAuthService(repo)
}

func initPlayerService(db *gorm.DB, clk clock.Clock) *service.PlayerService {
	playerDAO := dao.NewPlayerDAO(db)
	repo := repository.NewPlayerRepository(playerDAO)

	return service.NewPlayerService(repo, clk)
}

func initLedgerService(db *gorm.DB, clk clock.Clock) *service.LedgerService {
	transactionDAO := dao.NewTransactionDAO(db)
	repo := repository.NewLedgerRepository(transactionDAO)
	playerRepo := repository.NewPlayerRepository(dao.NewPlayerDAO(db))

	return service.NewLedgerService(repo, playerRepo, clk)
}

func initRoundServices(db *gorm.DB, clk clock.Clock, conf *config.LotteryConfig) (*service.RoundService, *service.SeedService) {
	roundDAO := dao.NewRoundDAO(db)
	repo := repository.NewRoundRepository(roundDAO)

	return service.NewRoundService(repo, clk), service.NewSeedService(repo, clk, conf)
}

func initWagerService(db *gorm.DB, clk clock.Clock, conf *config.LotteryConfig) *service.WagerService {
	boardRepo := repository.NewBoardRepository(dao.NewBoardDAO(db))
	roundRepo := repository.NewRoundRepository(dao.NewRoundDAO(db))
	playerRepo := repository.NewPlayerRepository(dao.NewPlayerDAO(db))

	location, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		zap.L().Fatal("invalid lottery timezone", zap.String("timezone", conf.Timezone), zap.Error(err))
	}

	cutoff := service.Cutoff{
		Location: location,
		Weekday:  time.Weekday(conf.CutoffWeekday),
		Hour:     conf.CutoffHour,
	}

	return service.NewWagerService(boardRepo, roundRepo, playerRepo, clk, cutoff)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	roundHandler *v1.RoundHandler,
	boardHandler *v1.BoardHandler,
	ledgerHandler *v1.LedgerHandler,
	playerHandler *v1.PlayerHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.GET("/prices", v1.HandleGetPriceTable)
	}

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	players := s.Router.Group(basePath, verifyJWT)
	{
		players.GET("/players/me", playerHandler.HandleGetMe)
		players.GET("/players/me/balance", playerHandler.HandleGetMyBalance)

		players.GET("/rounds", roundHandler.HandleGetRoundHistory)
		players.GET("/rounds/active", roundHandler.HandleGetActiveRound)
		players.GET("/rounds/:roundID/boards", roundHandler.HandleListRoundBoards)

		players.POST("/boards", boardHandler.HandlePurchaseBoard)
		players.GET("/boards", boardHandler.HandleListMyBoards)
		players.POST("/boards/:boardID/stop-repeat", boardHandler.HandleStopRepeating)

		players.POST("/transactions", ledgerHandler.HandleSubmitDeposit)
		players.GET("/transactions", ledgerHandler.HandleListMyTransactions)
	}

	admin := s.Router.Group(basePath, verifyJWT, middleware.RequireAdmin())
	{
		admin.GET("/players", playerHandler.HandleListPlayers)
		admin.POST("/rounds/seed", roundHandler.HandleSeedRounds)
		admin.POST("/rounds/:roundID/close", roundHandler.HandleCloseRound)
		admin.GET("/transactions/pending", ledgerHandler.HandleListPending)
		admin.POST("/transactions/:transactionID/approve", ledgerHandler.HandleApproveTransaction)
		admin.POST("/transactions/:transactionID/reject", ledgerHandler.HandleRejectTransaction)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Klublotto API"
	docs.SwaggerInfo.Description = "Weekly numbers-lottery API for the club."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
