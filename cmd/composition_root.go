package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpadapter "jobmatch/internal/adapters/in/http"
	"jobmatch/internal/adapters/out/pgqueue"
	"jobmatch/internal/adapters/out/postgres"
	"jobmatch/internal/adapters/out/postgres/contractorrepo"
	"jobmatch/internal/adapters/out/postgres/jobrepo"
	"jobmatch/internal/adapters/out/redisq"
	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/jobs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infrastructure holds the connections opened by main.
type Infrastructure struct {
	GormDB *gorm.DB
	Redis  *redis.Client
	// PgxPool is required only when TASK_BACKEND=postgres.
	PgxPool *pgxpool.Pool
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	lifecycle  services.LifecycleStateMachine
	geo        services.GeoMatcher
	tasks      ports.TaskQueue
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewCompositionRoot selects the geo matcher strategy and the task backend once and
// shares them with every handler.
func NewCompositionRoot(cfg Config, infra Infrastructure, logger *slog.Logger) (CompositionRoot, error) {
	now := func() time.Time { return time.Now().UTC() }

	geo, err := services.NewGeoMatcher(cfg.GeoMatcher)
	if err != nil {
		return CompositionRoot{}, err
	}

	var tasks ports.TaskQueue
	switch cfg.TaskBackend {
	case TaskBackendRedis:
		tasks = redisq.NewTaskQueue(infra.Redis, cfg.TaskKeyPrefix, cfg.TaskLeaseTimeout, now)
	case TaskBackendPostgres:
		if infra.PgxPool == nil {
			return CompositionRoot{}, fmt.Errorf("task backend %q needs a pgx pool", cfg.TaskBackend)
		}
		tasks = pgqueue.NewTaskQueue(infra.PgxPool, cfg.TaskLeaseTimeout, now)
	default:
		return CompositionRoot{}, fmt.Errorf("unknown task backend %q", cfg.TaskBackend)
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     infra.GormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(infra.GormDB, now),
		lifecycle:  services.NewLifecycleStateMachine(now),
		geo:        geo,
		tasks:      tasks,
		notifier:   redisq.NewNotifier(infra.Redis, cfg.NotifyChannel),
		logger:     logger,
		now:        now,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) jobUoW() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(
		c.uow(), c.lifecycle, c.geo, c.tasks, c.notifier, c.logger, c.cfg.ImmediateJobTTL)
}

func (c *CompositionRoot) CreateClaimJobCommandHandler() commands.ClaimJobCommandHandler {
	return commands.NewClaimJobCommandHandler(c.uow(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSubmitQuoteCommandHandler() commands.SubmitQuoteCommandHandler {
	return commands.NewSubmitQuoteCommandHandler(c.uow(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelQuoteCommandHandler() commands.CancelQuoteCommandHandler {
	return commands.NewCancelQuoteCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAcceptQuoteCommandHandler() commands.AcceptQuoteCommandHandler {
	return commands.NewAcceptQuoteCommandHandler(
		c.uow(), c.lifecycle, c.tasks, c.notifier, c.logger, c.cfg.OfferConfirmationTimeout)
}

func (c *CompositionRoot) CreateConfirmOfferCommandHandler() commands.ConfirmOfferCommandHandler {
	return commands.NewConfirmOfferCommandHandler(c.jobUoW(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateExecutionCommandHandler() commands.ExecutionCommandHandler {
	return commands.NewExecutionCommandHandler(c.jobUoW(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	return commands.NewCancelJobCommandHandler(c.jobUoW(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateDisputeJobCommandHandler() commands.DisputeJobCommandHandler {
	return commands.NewDisputeJobCommandHandler(c.jobUoW(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateExpireUnclaimedJobCommandHandler() commands.ExpireUnclaimedJobCommandHandler {
	return commands.NewExpireUnclaimedJobCommandHandler(c.jobUoW(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateExpireUnconfirmedOfferCommandHandler() commands.ExpireUnconfirmedOfferCommandHandler {
	return commands.NewExpireUnconfirmedOfferCommandHandler(c.uow(), c.lifecycle, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMatchQueryHandler() queries.MatchQueryHandler {
	return queries.NewMatchQueryHandler(
		jobrepo.NewGormJobRepository(c.gormDB), contractorrepo.NewGormContractorDirectory(c.gormDB), c.geo, c.now)
}

// CreateServer wires every use case into the HTTP server.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateJob:    c.CreateCreateJobCommandHandler(),
		ClaimJob:     c.CreateClaimJobCommandHandler(),
		SubmitQuote:  c.CreateSubmitQuoteCommandHandler(),
		AcceptQuote:  c.CreateAcceptQuoteCommandHandler(),
		CancelQuote:  c.CreateCancelQuoteCommandHandler(),
		ConfirmOffer: c.CreateConfirmOfferCommandHandler(),
		Execution:    c.CreateExecutionCommandHandler(),
		CancelJob:    c.CreateCancelJobCommandHandler(),
		DisputeJob:   c.CreateDisputeJobCommandHandler(),
		GetJob:       c.CreateGetJobQueryHandler(),
		Match:        c.CreateMatchQueryHandler(),
	}, c.logger)
}

// CreateJobManager wires the task dispatcher and the expiry sweep.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expireUnclaimed := c.CreateExpireUnclaimedJobCommandHandler()
	dispatch := jobs.NewTaskDispatchJob(
		c.tasks,
		expireUnclaimed,
		c.CreateExpireUnconfirmedOfferCommandHandler(),
		jobs.DispatchConfig{
			Workers:      c.cfg.TaskWorkers,
			BatchSize:    c.cfg.TaskBatchSize,
			MaxAttempts:  c.cfg.TaskMaxAttempts,
			RetryBackoff: c.cfg.TaskRetryBackoff,
		},
		c.now,
		c.logger,
	)
	sweep := jobs.NewExpirySweepJob(
		jobrepo.NewGormJobRepository(c.gormDB), expireUnclaimed, c.cfg.ExpirySweepBatch, c.now, c.logger)
	return jobs.NewJobManager(dispatch, sweep)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}
