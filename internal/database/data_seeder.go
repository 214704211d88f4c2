package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/locvowork/hrrecords/internal/domain"
	"github.com/locvowork/hrrecords/internal/logger"
	"github.com/locvowork/hrrecords/internal/service"
)

// DataSeeder fills the store with random valid employees. Records go through
// the employee service so every seeded row passes the normal checks.
type DataSeeder struct {
	svc service.EmployeeService
	tx  domain.TxManager
	rnd *rand.Rand
}

func NewDataSeeder(svc service.EmployeeService, tx domain.TxManager, seed int64) *DataSeeder {
	return &DataSeeder{svc: svc, tx: tx, rnd: rand.New(rand.NewSource(seed))}
}

var (
	firstNames = []string{"Harry", "Ron", "Hermione", "Ginny", "Neville", "Luna", "Draco", "Cho", "Cedric", "Fred", "George", "Percy"}
	lastNames  = []string{"Potter", "Weasley", "Granger", "Longbottom", "Lovegood", "Malfoy", "Chang", "Diggory", "Thomas", "Finnigan"}
)

// SeedStats reports what a seeding run did.
type SeedStats struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// SeedData creates count employees with ids s00001.. and skips ids or logins
// that are already taken.
func (ds *DataSeeder) SeedData(ctx context.Context, count int) (SeedStats, error) {
	start := time.Now()
	var stats SeedStats

	for i := 1; i <= count; i++ {
		first := firstNames[ds.rnd.Intn(len(firstNames))]
		last := lastNames[ds.rnd.Intn(len(lastNames))]
		id := fmt.Sprintf("s%05d", i)
		login := fmt.Sprintf("%s%s%d", strings.ToLower(first[:1]), strings.ToLower(last), i)
		name := first + " " + last
		salary := decimal.New(int64(ds.rnd.Intn(1_000_000)), -2)
		startDate := time.Date(2000+ds.rnd.Intn(25), time.Month(1+ds.rnd.Intn(12)), 1+ds.rnd.Intn(28), 0, 0, 0, 0, time.UTC).
			Format(domain.DateLayout)

		_, err := ds.svc.Create(ctx, &domain.EmployeeDTO{
			ID:        &id,
			Login:     &login,
			Name:      &name,
			Salary:    &salary,
			StartDate: &startDate,
		})
		if errors.Is(err, domain.ErrInvalidField) {
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("failed to seed employee %s: %w", id, err)
		}
		stats.Created++
	}

	logger.InfoLog(ctx, "Seeded %d employees (%d skipped) in %v", stats.Created, stats.Skipped, time.Since(start))
	return stats, nil
}

// ClearData removes every employee in one transaction.
func (ds *DataSeeder) ClearData(ctx context.Context) (int, error) {
	var removed int
	err := ds.tx.WithinTx(ctx, func(ctx context.Context, repo domain.EmployeeRepository) error {
		all, err := repo.FindAll(ctx)
		if err != nil {
			return err
		}
		for _, e := range all {
			if err := repo.Delete(ctx, e.ID); err != nil {
				return fmt.Errorf("failed to delete employee %s: %w", e.ID, err)
			}
		}
		removed = len(all)
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.InfoLog(ctx, "Cleared %d employees", removed)
	return removed, nil
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
	PresetXLarge SeedPreset = "xlarge"
)

// GetPresetCount returns the number of employees for a preset
func GetPresetCount(preset SeedPreset) int {
	switch preset {
	case PresetSmall:
		return 10
	case PresetMedium:
		return 100
	case PresetLarge:
		return 1000
	case PresetXLarge:
		return 10000
	default:
		return 100
	}
}
