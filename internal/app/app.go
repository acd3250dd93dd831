package app

import (
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/yamlconfig"
	auditService "github.com/cmlabs-hris/payroll-engine/internal/service/audit"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
)

// App holds the services shared by the API server and the CLI.
type App struct {
	Config         *config.Config
	DB             *database.DB
	JWTService     jwt.Service
	ConfigRepo     payroll.PayrollConfigRepository
	PayrollService payroll.PayrollService
	AuditService   audit.AuditService
}

func New(cfg *config.Config) (*App, error) {
	db, err := database.NewPostgreSQLDBWithOptions(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	configRepo := postgresql.NewPayrollConfigRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)
	auditLogRepo := postgresql.NewAuditLogRepository(db)

	configProvider := selectConfigProvider(cfg, configRepo)
	locker := selectRunLocker(cfg, db)

	auditSvc := auditService.NewAuditService(auditLogRepo)
	payrollSvc := payrollService.NewPayrollService(
		configProvider,
		employeeRepo,
		runRepo,
		locker,
		fileStorage,
		auditSvc,
	)

	slog.Info("Payroll engine initialized",
		"config_source", cfg.Payroll.ConfigSource,
		"lock_mode", cfg.Payroll.LockMode,
		"storage", cfg.Storage.BasePath,
	)

	return &App{
		Config:         cfg,
		DB:             db,
		JWTService:     jwt.NewJWTService(cfg.JWT.Secret, 0),
		ConfigRepo:     configRepo,
		PayrollService: payrollSvc,
		AuditService:   auditSvc,
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func selectConfigProvider(cfg *config.Config, repo payroll.PayrollConfigRepository) payroll.ConfigProvider {
	if cfg.Payroll.ConfigSource == config.ConfigSourceFile {
		return yamlconfig.NewProvider(cfg.Payroll.ConfigFile)
	}
	return repo
}

// selectRunLocker picks the per-period lock. The local lock only serializes
// runs inside one process.
func selectRunLocker(cfg *config.Config, db *database.DB) payroll.RunLocker {
	if cfg.Payroll.LockMode == config.LockModeLocal {
		return payrollService.NewLocalRunLocker()
	}
	return postgresql.NewAdvisoryRunLocker(db)
}
