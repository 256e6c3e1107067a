package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquidityRange/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS pools (
	chain_id       BIGINT      NOT NULL,
	pool_address   TEXT        NOT NULL,
	token0         TEXT        NOT NULL,
	token1         TEXT        NOT NULL,
	symbol0        TEXT,
	symbol1        TEXT,
	decimals0      SMALLINT    NOT NULL,
	decimals1      SMALLINT    NOT NULL,
	fee            INTEGER     NOT NULL,
	tick_spacing   INTEGER     NOT NULL,
	sqrt_price_x96 NUMERIC,
	tick           INTEGER,
	liquidity      NUMERIC,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (chain_id, pool_address)
);

CREATE TABLE IF NOT EXISTS position_plans (
	id            BIGSERIAL PRIMARY KEY,
	chain_id      BIGINT           NOT NULL,
	pool_address  TEXT             NOT NULL,
	token0        TEXT             NOT NULL,
	token1        TEXT             NOT NULL,
	symbol0       TEXT,
	symbol1       TEXT,
	decimals0     SMALLINT         NOT NULL,
	decimals1     SMALLINT         NOT NULL,
	fee           INTEGER          NOT NULL,
	tick_spacing  INTEGER          NOT NULL,
	direction     TEXT             NOT NULL,
	tick_lower    INTEGER          NOT NULL,
	tick_upper    INTEGER          NOT NULL,
	current_price DOUBLE PRECISION NOT NULL,
	price_lower   DOUBLE PRECISION NOT NULL,
	price_upper   DOUBLE PRECISION NOT NULL,
	amount0       NUMERIC          NOT NULL,
	amount1       NUMERIC          NOT NULL,
	amount0_raw   NUMERIC          NOT NULL,
	amount1_raw   NUMERIC          NOT NULL,
	liquidity     DOUBLE PRECISION NOT NULL,
	range_state   TEXT             NOT NULL,
	created_at    TIMESTAMPTZ      NOT NULL
);

CREATE INDEX IF NOT EXISTS position_plans_pool_idx
	ON position_plans (chain_id, pool_address, created_at DESC);
`

// Store provides Postgres persistence for pools and position plans.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// UpsertPools inserts or updates pool metadata and the last seen state.
func (s *Store) UpsertPools(ctx context.Context, pools []model.PoolSnapshot) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range pools {
		batch.Queue(`
			INSERT INTO pools (
				chain_id, pool_address, token0, token1, symbol0, symbol1, decimals0, decimals1,
				fee, tick_spacing, sqrt_price_x96, tick, liquidity, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::numeric, $12, NULLIF($13, '')::numeric, now(), now())
			ON CONFLICT (chain_id, pool_address)
			DO UPDATE SET
				token0 = EXCLUDED.token0,
				token1 = EXCLUDED.token1,
				symbol0 = EXCLUDED.symbol0,
				symbol1 = EXCLUDED.symbol1,
				decimals0 = EXCLUDED.decimals0,
				decimals1 = EXCLUDED.decimals1,
				fee = EXCLUDED.fee,
				tick_spacing = EXCLUDED.tick_spacing,
				sqrt_price_x96 = EXCLUDED.sqrt_price_x96,
				tick = EXCLUDED.tick,
				liquidity = EXCLUDED.liquidity,
				updated_at = now()
		`,
			int64(p.ChainID),
			p.Meta.Address,
			p.Meta.Token0,
			p.Meta.Token1,
			p.Token0.Symbol,
			p.Token1.Symbol,
			int16(p.Token0.Decimals),
			int16(p.Token1.Decimals),
			int32(p.Meta.Fee),
			p.Meta.TickSpacing,
			p.State.SqrtPriceX96,
			p.State.Tick,
			p.State.Liquidity,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pools {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertPlans appends position plans. Plans are never updated in place.
func (s *Store) InsertPlans(ctx context.Context, plans []model.PositionPlan) error {
	if len(plans) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range plans {
		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("plan created_at %q: %w", p.CreatedAt, err)
		}
		batch.Queue(`
			INSERT INTO position_plans (
				chain_id, pool_address, token0, token1, symbol0, symbol1, decimals0, decimals1,
				fee, tick_spacing, direction, tick_lower, tick_upper, current_price, price_lower, price_upper,
				amount0, amount1, amount0_raw, amount1_raw, liquidity, range_state, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17::numeric,$18::numeric,$19::numeric,$20::numeric,$21,$22,$23)
		`,
			int64(p.ChainID),
			p.Pool,
			p.Token0,
			p.Token1,
			p.Symbol0,
			p.Symbol1,
			int16(p.Decimals0),
			int16(p.Decimals1),
			int32(p.Fee),
			p.TickSpacing,
			p.Direction,
			p.TickLower,
			p.TickUpper,
			p.CurrentPrice,
			p.PriceLower,
			p.PriceUpper,
			p.Amount0,
			p.Amount1,
			p.Amount0Raw,
			p.Amount1Raw,
			p.Liquidity,
			p.RangeState,
			createdAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range plans {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// planFilter builds the WHERE clause of a plan lookup. A zero chain ID
// matches every chain and an empty pool matches every pool.
func planFilter(chainID uint64, pool string) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if chainID != 0 {
		args = append(args, int64(chainID))
		conds = append(conds, fmt.Sprintf("chain_id = $%d", len(args)))
	}
	if pool != "" {
		args = append(args, pool)
		conds = append(conds, fmt.Sprintf("lower(pool_address) = lower($%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// LatestPlan returns the most recent plan stored for a pool. chainID 0 and an
// empty pool widen the lookup to any chain and any pool.
func (s *Store) LatestPlan(ctx context.Context, chainID uint64, pool string) (model.PositionPlan, bool, error) {
	where, args := planFilter(chainID, pool)
	var (
		p         model.PositionPlan
		decimals0 int16
		decimals1 int16
		fee       int32
		createdAt time.Time
	)
	row := s.pool.QueryRow(ctx, `
		SELECT chain_id, pool_address, token0, token1, COALESCE(symbol0, ''), COALESCE(symbol1, ''),
			decimals0, decimals1, fee, tick_spacing, direction, tick_lower, tick_upper,
			current_price, price_lower, price_upper, amount0::text, amount1::text,
			amount0_raw::text, amount1_raw::text, liquidity, range_state, created_at
		FROM position_plans
		`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, args...)
	var storedChainID int64
	err := row.Scan(
		&storedChainID, &p.Pool, &p.Token0, &p.Token1, &p.Symbol0, &p.Symbol1,
		&decimals0, &decimals1, &fee, &p.TickSpacing, &p.Direction, &p.TickLower, &p.TickUpper,
		&p.CurrentPrice, &p.PriceLower, &p.PriceUpper, &p.Amount0, &p.Amount1,
		&p.Amount0Raw, &p.Amount1Raw, &p.Liquidity, &p.RangeState, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PositionPlan{}, false, nil
		}
		return model.PositionPlan{}, false, err
	}
	p.ChainID = uint64(storedChainID)
	p.Decimals0 = uint8(decimals0)
	p.Decimals1 = uint8(decimals1)
	p.Fee = uint32(fee)
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return p, true, nil
}
