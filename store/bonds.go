package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"finmath"
)

// BondRepository persists bond definitions and their cash-flow schedules in
// Postgres. Bonds are still loaded into memory for calculation.
type BondRepository struct {
	db *sql.DB
}

// NewBondRepository opens a Postgres connection with the given DSN and pings
// it before returning.
func NewBondRepository(dsn string) (*BondRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &BondRepository{db: db}, nil
}

// Close releases the underlying connection pool.
func (r *BondRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the tables if they do not exist.
func (r *BondRepository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS index_types (
			id SERIAL PRIMARY KEY,
			code TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			description TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS bonds (
			id SERIAL PRIMARY KEY,
			ticker TEXT UNIQUE NOT NULL,
			issue_date DATE NOT NULL,
			maturity DATE NOT NULL,
			coupon NUMERIC NOT NULL,
			index_type_id INT REFERENCES index_types(id),
			"offset" INT DEFAULT 0,
			day_count_conv INT DEFAULT 1,
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS bond_cashflows (
			id SERIAL PRIMARY KEY,
			bond_id INT REFERENCES bonds(id) ON DELETE CASCADE,
			seq INT NOT NULL,
			date DATE NOT NULL,
			rate NUMERIC NOT NULL,
			amort NUMERIC NOT NULL,
			residual NUMERIC NOT NULL,
			amount NUMERIC NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			UNIQUE (bond_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS holidays (
			id SERIAL PRIMARY KEY,
			date DATE UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT 'holiday'
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	// minimal index catalog seed
	_, _ = r.db.ExecContext(ctx,
		`INSERT INTO index_types (code, name, description)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (code) DO NOTHING`, "CER", "CER", "inflation adjustment coefficient")
	return nil
}

// LoadAllBonds returns every active bond with its cash flows.
func (r *BondRepository) LoadAllBonds(ctx context.Context) ([]finmath.Bond, error) {
	type bondRow struct {
		id           int
		ticker       string
		issue        time.Time
		maturity     time.Time
		coupon       float64
		indexCode    sql.NullString
		offset       int
		dayCountConv sql.NullInt64
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.ticker, b.issue_date, b.maturity, b.coupon,
		       it.code, b."offset", COALESCE(b.day_count_conv, 1) as day_count_conv
		FROM bonds b
		LEFT JOIN index_types it ON it.id = b.index_type_id
		WHERE b.active = TRUE
		ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bondRows []bondRow
	for rows.Next() {
		var br bondRow
		if err := rows.Scan(&br.id, &br.ticker, &br.issue, &br.maturity, &br.coupon, &br.indexCode, &br.offset, &br.dayCountConv); err != nil {
			return nil, err
		}
		bondRows = append(bondRows, br)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// one query for all cash flows
	cfRows, err := r.db.QueryContext(ctx, `
		SELECT bond_id, seq, date, rate, amort, residual, amount
		FROM bond_cashflows
		ORDER BY bond_id, seq`)
	if err != nil {
		return nil, err
	}
	defer cfRows.Close()

	cfMap := make(map[int][]finmath.CouponFlow)
	for cfRows.Next() {
		var bondID, seq int
		var date time.Time
		var rate, amort, residual, amount float64
		if err := cfRows.Scan(&bondID, &seq, &date, &rate, &amort, &residual, &amount); err != nil {
			return nil, err
		}
		cfMap[bondID] = append(cfMap[bondID], finmath.CouponFlow{
			Date:     date,
			Rate:     rate,
			Amort:    amort,
			Residual: residual,
			Amount:   amount,
		})
	}
	if err := cfRows.Err(); err != nil {
		return nil, err
	}

	var bonds []finmath.Bond
	for _, br := range bondRows {
		dayCountConv := finmath.DayCount30_360
		if br.dayCountConv.Valid {
			dayCountConv = int(br.dayCountConv.Int64)
		}
		bonds = append(bonds, finmath.Bond{
			ID:           strconv.Itoa(br.id),
			Ticker:       br.ticker,
			IssueDate:    br.issue,
			Maturity:     br.maturity,
			Coupon:       br.coupon,
			Cashflow:     cfMap[br.id],
			Index:        br.indexCode.String,
			Offset:       br.offset,
			DayCountConv: dayCountConv,
		})
	}
	return bonds, nil
}

// LoadBond returns a single active bond by ticker, or sql.ErrNoRows.
func (r *BondRepository) LoadBond(ctx context.Context, ticker string) (*finmath.Bond, error) {
	var (
		id           int
		issue        time.Time
		maturity     time.Time
		coupon       float64
		indexCode    sql.NullString
		offset       int
		dayCountConv sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT b.id, b.issue_date, b.maturity, b.coupon,
		       it.code, b."offset", COALESCE(b.day_count_conv, 1)
		FROM bonds b
		LEFT JOIN index_types it ON it.id = b.index_type_id
		WHERE b.active = TRUE AND b.ticker = $1`, strings.ToUpper(ticker)).
		Scan(&id, &issue, &maturity, &coupon, &indexCode, &offset, &dayCountConv)
	if err != nil {
		return nil, err
	}

	cfRows, err := r.db.QueryContext(ctx, `
		SELECT date, rate, amort, residual, amount
		FROM bond_cashflows
		WHERE bond_id = $1
		ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer cfRows.Close()

	var flows []finmath.CouponFlow
	for cfRows.Next() {
		var cf finmath.CouponFlow
		if err := cfRows.Scan(&cf.Date, &cf.Rate, &cf.Amort, &cf.Residual, &cf.Amount); err != nil {
			return nil, err
		}
		flows = append(flows, cf)
	}
	if err := cfRows.Err(); err != nil {
		return nil, err
	}

	conv := finmath.DayCount30_360
	if dayCountConv.Valid {
		conv = int(dayCountConv.Int64)
	}
	return &finmath.Bond{
		ID:           strconv.Itoa(id),
		Ticker:       strings.ToUpper(ticker),
		IssueDate:    issue,
		Maturity:     maturity,
		Coupon:       coupon,
		Cashflow:     flows,
		Index:        indexCode.String,
		Offset:       offset,
		DayCountConv: conv,
	}, nil
}

// InsertBondWithCashflows upserts a bond and replaces its cash flows,
// returning the bond ID as a string.
func (r *BondRepository) InsertBondWithCashflows(ctx context.Context, bond *finmath.Bond) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var indexTypeID *int
	if bond.Index != "" {
		var id int
		err := tx.QueryRowContext(ctx,
			`INSERT INTO index_types (code, name)
			 VALUES ($1, $1)
			 ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
			 RETURNING id`, bond.Index).Scan(&id)
		if err != nil {
			return "", err
		}
		indexTypeID = &id
	}

	dayCountConv := bond.DayCountConv
	if dayCountConv == 0 {
		dayCountConv = finmath.DayCount30_360
	}

	var bondID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bonds (ticker, issue_date, maturity, coupon, index_type_id, "offset", day_count_conv)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker) DO UPDATE SET
			issue_date = EXCLUDED.issue_date,
			maturity = EXCLUDED.maturity,
			coupon = EXCLUDED.coupon,
			index_type_id = EXCLUDED.index_type_id,
			"offset" = EXCLUDED."offset",
			day_count_conv = EXCLUDED.day_count_conv,
			updated_at = now()
		RETURNING id`,
		bond.Ticker, bond.IssueDate, bond.Maturity, bond.Coupon, indexTypeID, bond.Offset, dayCountConv).
		Scan(&bondID)
	if err != nil {
		return "", err
	}

	// wipe previous cash flows so a reimport is always complete
	if _, err := tx.ExecContext(ctx, `DELETE FROM bond_cashflows WHERE bond_id = $1`, bondID); err != nil {
		return "", err
	}

	for i, cf := range bond.Cashflow {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bond_cashflows (bond_id, seq, date, rate, amort, residual, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			bondID, i+1, cf.Date, cf.Rate, cf.Amort, cf.Residual, cf.Amount); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return strconv.Itoa(bondID), nil
}

// SeedFromJSON imports a bonds JSON file. Existing bonds are updated by
// ticker, nothing is deleted.
func (r *BondRepository) SeedFromJSON(ctx context.Context, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var bonds []finmath.Bond
	if err := json.Unmarshal(payload, &bonds); err != nil {
		return err
	}
	for i := range bonds {
		bonds[i].Ticker = strings.ToUpper(bonds[i].Ticker)
		if _, err := r.InsertBondWithCashflows(ctx, &bonds[i]); err != nil {
			return fmt.Errorf("insert failed for ticker %s: %w", bonds[i].Ticker, err)
		}
	}
	return nil
}
