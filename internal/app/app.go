package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/lottery-rewards/internal/config"
	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
	"github.com/riskibarqy/lottery-rewards/internal/domain/reward"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	cacherepo "github.com/riskibarqy/lottery-rewards/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/lottery-rewards/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lottery-rewards/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/lottery-rewards/internal/platform/cache"
	idgen "github.com/riskibarqy/lottery-rewards/internal/platform/id"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
	"github.com/riskibarqy/lottery-rewards/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := newHandler(cfg, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.DemoAccountID)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func newHandler(cfg config.Config, logger *logging.Logger) *httpapi.Handler {
	accountRepo := memory.NewAccountRepository(memory.SeedAccount(cfg.DemoAccountID))
	var drawRepo draw.Repository = memory.NewDrawRepository(memory.SeedDraws()...)
	if cfg.CacheEnabled {
		drawRepo = cacherepo.NewDrawRepository(drawRepo, basecache.NewStore(cfg.CacheTTL))
	}

	var source random.Source = random.NewTimeSeeded()
	if cfg.RNGSeeded {
		source = random.NewPCGSource(cfg.RNGSeed)
	}

	numbers := lotto.DefaultRules()
	rewardRules := reward.DefaultRules()
	rewardRules.DailySpins = cfg.RewardDailySpins
	rewardRules.FreeTicketPoints = cfg.RewardFreeTicketPoints

	accountSvc := usecase.NewAccountService(
		accountRepo,
		drawRepo,
		account.Rules{StartingBalance: cfg.AccountStartingBalance},
		rewardRules,
		idgen.NewPrefixedGenerator("acc_"),
		cfg.DemoAccountID,
		logger,
	)
	ticketSvc := usecase.NewTicketService(
		accountRepo,
		drawRepo,
		numbers,
		ticket.Rules{Cost: cfg.TicketCost, PointsEarned: cfg.TicketPoints, ModifyCost: cfg.TicketModifyCost},
		source,
		idgen.NewUUIDGenerator(),
		logger,
	)
	drawSvc := usecase.NewDrawService(
		drawRepo,
		accountRepo,
		draw.NewEvaluator(numbers, draw.DefaultPrizeTable()),
		source,
		idgen.NewPrefixedGenerator("draw_"),
		cfg.SettlementWorkers,
		logger,
	)
	drawSvc.SetDefaultJackpot(cfg.DrawJackpot)
	rewardSvc := usecase.NewRewardService(
		accountRepo,
		reward.DefaultWheel(),
		reward.DefaultCatalog(),
		rewardRules,
		source,
		logger,
	)

	logger.Info("services ready",
		"demo_account_id", cfg.DemoAccountID,
		"rng_seeded", cfg.RNGSeeded,
		"draw_cache", cfg.CacheEnabled,
		"settlement_workers", cfg.SettlementWorkers,
	)
	return httpapi.NewHandler(accountSvc, ticketSvc, drawSvc, rewardSvc, logger)
}
