/*
Package seed loads the sample data set through the storage contract.

PURPOSE:
  Every backend receives the same input in the same order, so a freshly
  seeded fixture store and a freshly seeded SQL database answer every read
  identically (ids included). Used by memory.Seeded, by the server on an
  empty database, and by the contract tests.

CONTENTS:
  content.go:  surahs 1-5, the seven verses of Al-Fatihah, hadith
               collections with a few hadiths, courses, community topics,
               users, discussions and today's prayer times for London.
  org.go:      a small organization: departments, positions, employees,
               attendance, leave, payroll, reviews, training, recruitment.

  Dates that matter to the dashboards (today's attendance, the current
  payroll month, open postings) are relative to the clock passed to Load.
*/
package seed

import (
	"context"
	"fmt"

	"github.com/warp/portal/storage"
)

// DefaultLocation is the prayer-time location seeded and used as the default.
const DefaultLocation = "London, United Kingdom"

// Load writes the full sample set into s. It stops at the first failure.
func Load(ctx context.Context, s storage.Storage, clock storage.Clock) error {
	if err := loadContent(ctx, s, clock); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	if err := loadOrganization(ctx, s, clock); err != nil {
		return fmt.Errorf("seed organization: %w", err)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
