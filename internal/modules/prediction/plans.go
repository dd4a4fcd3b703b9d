package prediction

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanConfig holds per-plan daily refresh budgets and which plans may refresh at all.
type PlanConfig struct {
	Plans         map[string]PlanLimits `yaml:"plans"`
	EntitledPlans []string              `yaml:"entitled_plans"`
}

type PlanLimits struct {
	PerDayCalls int `yaml:"per_day_calls"`
}

var inactiveSubscriptionStatuses = map[string]bool{
	"canceled":           true,
	"unpaid":             true,
	"incomplete_expired": true,
}

func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		Plans: map[string]PlanLimits{
			"free":  {PerDayCalls: 0},
			"pro":   {PerDayCalls: 20},
			"fleet": {PerDayCalls: 100},
		},
		EntitledPlans: []string{"free", "pro", "fleet"},
	}
}

// LoadPlanConfig reads a YAML plan file. Missing sections keep their defaults.
func LoadPlanConfig(path string) (PlanConfig, error) {
	cfg := DefaultPlanConfig()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read plan config: %w", err)
	}
	var file PlanConfig
	if err := yaml.Unmarshal(b, &file); err != nil {
		return cfg, fmt.Errorf("decode plan config %s: %w", path, err)
	}
	if len(file.Plans) > 0 {
		cfg.Plans = map[string]PlanLimits{}
		for name, limits := range file.Plans {
			cfg.Plans[normalizePlan(name)] = limits
		}
	}
	if len(file.EntitledPlans) > 0 {
		cfg.EntitledPlans = file.EntitledPlans
	}
	return cfg, nil
}

func normalizePlan(plan string) string {
	return strings.ToLower(strings.TrimSpace(plan))
}

// Budget returns the daily call budget; unknown plans get 0.
func (c PlanConfig) Budget(plan string) int {
	limits, ok := c.Plans[normalizePlan(plan)]
	if !ok || limits.PerDayCalls < 0 {
		return 0
	}
	return limits.PerDayCalls
}

func (c PlanConfig) Entitled(plan, subscriptionStatus string) bool {
	if inactiveSubscriptionStatuses[strings.ToLower(strings.TrimSpace(subscriptionStatus))] {
		return false
	}
	p := normalizePlan(plan)
	for _, allowed := range c.EntitledPlans {
		if normalizePlan(allowed) == p {
			return true
		}
	}
	return false
}
