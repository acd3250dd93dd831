package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollConfigRepositoryImpl struct {
	db  *database.DB
	now func() time.Time
}

func NewPayrollConfigRepository(db *database.DB) payroll.PayrollConfigRepository {
	return &payrollConfigRepositoryImpl{db: db, now: time.Now}
}

// Current implements payroll.ConfigProvider.
func (r *payrollConfigRepositoryImpl) Current(ctx context.Context) (payroll.PayrollConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tax_bands, napsa_rate, napsa_ceiling, nhima_rate,
			   overtime_multiplier, working_hours, allowances_pre_tax, effective_from
		FROM payroll_configs
		WHERE effective_from <= $1
		ORDER BY effective_from DESC, id DESC
		LIMIT 1
	`

	var (
		cfg   payroll.PayrollConfig
		bands []byte
	)
	err := q.QueryRow(ctx, query, r.now()).Scan(
		&cfg.ID, &bands, &cfg.NapsaRate, &cfg.NapsaCeiling, &cfg.NhimaRate,
		&cfg.OvertimeMultiplier, &cfg.WorkingHours, &cfg.AllowancesPreTax, &cfg.EffectiveFrom,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollConfig{}, payroll.ErrConfigMissing
		}
		return payroll.PayrollConfig{}, fmt.Errorf("failed to get payroll config: %w", err)
	}

	if err := json.Unmarshal(bands, &cfg.TaxBands); err != nil {
		return payroll.PayrollConfig{}, fmt.Errorf("failed to decode tax bands: %w", err)
	}

	return cfg, nil
}

// Create implements payroll.PayrollConfigRepository.
func (r *payrollConfigRepositoryImpl) Create(ctx context.Context, cfg payroll.PayrollConfig) (payroll.PayrollConfig, error) {
	q := GetQuerier(ctx, r.db)

	if cfg.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return payroll.PayrollConfig{}, fmt.Errorf("failed to generate config id: %w", err)
		}
		cfg.ID = id.String()
	}
	if cfg.EffectiveFrom.IsZero() {
		cfg.EffectiveFrom = r.now()
	}

	bands, err := json.Marshal(cfg.TaxBands)
	if err != nil {
		return payroll.PayrollConfig{}, fmt.Errorf("failed to encode tax bands: %w", err)
	}

	query := `
		INSERT INTO payroll_configs (
			id, tax_bands, napsa_rate, napsa_ceiling, nhima_rate,
			overtime_multiplier, working_hours, allowances_pre_tax, effective_from
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = q.Exec(ctx, query,
		cfg.ID, bands, cfg.NapsaRate, cfg.NapsaCeiling, cfg.NhimaRate,
		cfg.OvertimeMultiplier, cfg.WorkingHours, cfg.AllowancesPreTax, cfg.EffectiveFrom,
	)
	if err != nil {
		return payroll.PayrollConfig{}, fmt.Errorf("failed to create payroll config: %w", err)
	}

	return cfg, nil
}
