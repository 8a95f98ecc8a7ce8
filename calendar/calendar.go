// Package calendar tracks business days for settlement-date arithmetic.
// Holidays come from the `holidays` table and are reloaded daily.
package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	_ "github.com/lib/pq"
	"github.com/rickar/cal/v2"
)

// Calendar wraps a business calendar whose holidays are loaded from Postgres.
// The zero holidays case still skips weekends.
type Calendar struct {
	dsn string

	mu  sync.RWMutex
	cal *cal.BusinessCalendar
}

func New(dsn string) *Calendar {
	return &Calendar{
		dsn: dsn,
		cal: cal.NewBusinessCalendar(),
	}
}

// LoadHolidays replaces the holiday set from the database. Expects a
// `holidays` table with a DATE column named date.
func (c *Calendar) LoadHolidays(ctx context.Context) error {
	db, err := sql.Open("postgres", c.dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT date FROM holidays`)
	if err != nil {
		return fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	newCal := cal.NewBusinessCalendar()

	var d time.Time
	count := 0
	for rows.Next() {
		if err := rows.Scan(&d); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		y, m, day := d.Date()
		h := &cal.Holiday{
			Name:      "holiday",
			Type:      cal.ObservancePublic,
			StartYear: y,
			EndYear:   y,
			Month:     m,
			Day:       day,
			Func:      cal.CalcDayOfMonth,
		}
		newCal.AddHoliday(h)
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}

	c.mu.Lock()
	c.cal = newCal
	c.mu.Unlock()
	log.Printf("loaded %d holidays from db", count)
	return nil
}

// ScheduleDailyReload registers a daily holiday reload with gocron. The
// caller starts the scheduler once, usually from main.
func (c *Calendar) ScheduleDailyReload() {
	gocron.Every(1).Day().Do(func() {
		if err := c.LoadHolidays(context.Background()); err != nil {
			log.Printf("holiday reload failed: %v", err)
		}
	})
}

// IsWorkday reports whether the date is a business day.
func (c *Calendar) IsWorkday(date time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cal.IsWorkday(date)
}

// SettlementDate moves the trade date forward by offset business days.
// A zero offset returns the trade date unchanged.
func (c *Calendar) SettlementDate(trade time.Time, offset int) time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d := trade
	for n := 0; n < offset; {
		d = d.AddDate(0, 0, 1)
		if c.cal.IsWorkday(d) {
			n++
		}
	}
	return d
}
