package app

import (
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/yamlconfig"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
	"github.com/stretchr/testify/assert"
)

func TestSelectConfigProvider(t *testing.T) {
	cfg := &config.Config{Payroll: config.PayrollConfig{ConfigSource: config.ConfigSourceFile, ConfigFile: "payroll.yaml"}}
	assert.IsType(t, &yamlconfig.Provider{}, selectConfigProvider(cfg, nil))

	cfg.Payroll.ConfigSource = config.ConfigSourceDatabase
	assert.Nil(t, selectConfigProvider(cfg, nil))
}

func TestSelectRunLocker(t *testing.T) {
	cfg := &config.Config{Payroll: config.PayrollConfig{LockMode: config.LockModeLocal}}
	assert.IsType(t, &payrollService.LocalRunLocker{}, selectRunLocker(cfg, nil))

	cfg.Payroll.LockMode = config.LockModeAdvisory
	assert.NotNil(t, selectRunLocker(cfg, nil))
}
