package pos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/omspos/oms-api/internal/authz"
)

type Repository interface {
	Bind(ctx context.Context, outletID, terminalID uuid.UUID, phone, nickname string) (*Session, error)
	Deposit(ctx context.Context, outletID, terminalID, staffID uuid.UUID, amount int64) (*Session, error)
	Settle(ctx context.Context, outletID, terminalID, staffID uuid.UUID) (*SettleResult, error)
	ListTransactions(ctx context.Context, filter authz.Filter, limit, offset int) ([]*Transaction, int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// terminalRow is the locked terminal snapshot used inside ledger
// transactions.
type terminalRow struct {
	ID            uuid.UUID     `db:"id"`
	OutletID      uuid.UUID     `db:"outlet_id"`
	Code          string        `db:"code"`
	Status        string        `db:"status"`
	BoundPlayerID uuid.NullUUID `db:"bound_player_id"`
}

// lockTerminal locks the outlet row first and then the terminal. Every
// ledger operation takes locks in the same order (outlet, terminal,
// wallet) so concurrent POS activity on one floor cannot deadlock.
func lockTerminal(ctx context.Context, tx *sqlx.Tx, outletID, terminalID uuid.UUID) (*terminalRow, error) {
	var lockedOutlet uuid.UUID
	err := tx.GetContext(ctx, &lockedOutlet,
		`SELECT id FROM outlets WHERE id = $1 FOR UPDATE`, outletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTerminalNotFound
		}
		return nil, fmt.Errorf("failed to lock outlet: %w", err)
	}

	var t terminalRow
	err = tx.GetContext(ctx, &t,
		`SELECT id, outlet_id, code, status, bound_player_id
		 FROM terminals WHERE id = $1 FOR UPDATE`, terminalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTerminalNotFound
		}
		return nil, fmt.Errorf("failed to lock terminal: %w", err)
	}
	if t.OutletID != outletID {
		return nil, ErrTerminalForeign
	}
	return &t, nil
}

func (r *postgresRepository) Bind(ctx context.Context, outletID, terminalID uuid.UUID, phone, nickname string) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t, err := lockTerminal(ctx, tx, outletID, terminalID)
	if err != nil {
		return nil, err
	}
	if t.Status != "Idle" {
		return nil, ErrTerminalUnavailable
	}

	var player Player
	err = tx.GetContext(ctx, &player,
		`INSERT INTO players (id, phone, nickname, created_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (phone) DO UPDATE SET phone = EXCLUDED.phone
		 RETURNING *`,
		uuid.New(), phone, nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	var wallet Wallet
	err = tx.GetContext(ctx, &wallet,
		`INSERT INTO wallets (id, player_id, outlet_id, balance, updated_at)
		 VALUES ($1, $2, $3, 0, NOW())
		 ON CONFLICT (player_id, outlet_id) DO UPDATE SET player_id = EXCLUDED.player_id
		 RETURNING *`,
		uuid.New(), player.ID, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert wallet: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE terminals SET status = 'Occupied', bound_player_id = $1, updated_at = NOW()
		 WHERE id = $2`,
		player.ID, terminalID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind terminal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &Session{
		TerminalID:     t.ID,
		TerminalCode:   t.Code,
		PlayerID:       player.ID,
		PlayerNickname: player.Nickname,
		Balance:        wallet.Balance,
	}, nil
}

func (r *postgresRepository) Deposit(ctx context.Context, outletID, terminalID, staffID uuid.UUID, amount int64) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t, err := lockTerminal(ctx, tx, outletID, terminalID)
	if err != nil {
		return nil, err
	}
	if t.Status != "Occupied" || !t.BoundPlayerID.Valid {
		return nil, ErrTerminalNotActive
	}
	playerID := t.BoundPlayerID.UUID

	var bcfBalance int64
	err = tx.GetContext(ctx, &bcfBalance,
		`SELECT bcf_balance FROM outlets WHERE id = $1`, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to read outlet float: %w", err)
	}
	if bcfBalance < amount {
		return nil, ErrInsufficientFloat
	}

	var wallet Wallet
	err = tx.GetContext(ctx, &wallet,
		`SELECT * FROM wallets WHERE player_id = $1 AND outlet_id = $2 FOR UPDATE`,
		playerID, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE outlets SET bcf_balance = bcf_balance - $1, updated_at = NOW() WHERE id = $2`,
		amount, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit outlet float: %w", err)
	}

	err = tx.GetContext(ctx, &wallet,
		`UPDATE wallets SET balance = balance + $1, updated_at = NOW()
		 WHERE player_id = $2 AND outlet_id = $3 RETURNING *`,
		amount, playerID, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	if err := insertTransaction(ctx, tx, outletID, terminalID, playerID, staffID, TypeDeposit, amount); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	var nickname string
	if err := r.db.GetContext(ctx, &nickname, `SELECT nickname FROM players WHERE id = $1`, playerID); err != nil {
		nickname = ""
	}

	return &Session{
		TerminalID:     t.ID,
		TerminalCode:   t.Code,
		PlayerID:       playerID,
		PlayerNickname: nickname,
		Balance:        wallet.Balance,
	}, nil
}

func (r *postgresRepository) Settle(ctx context.Context, outletID, terminalID, staffID uuid.UUID) (*SettleResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t, err := lockTerminal(ctx, tx, outletID, terminalID)
	if err != nil {
		return nil, err
	}
	if t.Status != "Occupied" || !t.BoundPlayerID.Valid {
		return nil, ErrTerminalNotActive
	}
	playerID := t.BoundPlayerID.UUID

	var wallet Wallet
	err = tx.GetContext(ctx, &wallet,
		`SELECT * FROM wallets WHERE player_id = $1 AND outlet_id = $2 FOR UPDATE`,
		playerID, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	returned := wallet.Balance

	_, err = tx.ExecContext(ctx,
		`UPDATE wallets SET balance = 0, updated_at = NOW()
		 WHERE player_id = $1 AND outlet_id = $2`,
		playerID, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to empty wallet: %w", err)
	}

	var bcfBalance int64
	err = tx.GetContext(ctx, &bcfBalance,
		`UPDATE outlets SET bcf_balance = bcf_balance + $1, updated_at = NOW()
		 WHERE id = $2 RETURNING bcf_balance`,
		returned, outletID)
	if err != nil {
		return nil, fmt.Errorf("failed to credit outlet float: %w", err)
	}

	// A zero-balance settle still leaves a ledger entry so the session's
	// close is visible in the transaction history.
	if err := insertTransaction(ctx, tx, outletID, terminalID, playerID, staffID, TypeWithdraw, returned); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE terminals SET status = 'Idle', bound_player_id = NULL, updated_at = NOW()
		 WHERE id = $1`, terminalID)
	if err != nil {
		return nil, fmt.Errorf("failed to release terminal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &SettleResult{
		TerminalID: terminalID,
		PlayerID:   playerID,
		Returned:   returned,
		BCFBalance: bcfBalance,
	}, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, outletID, terminalID, playerID, staffID uuid.UUID, txType string, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, outlet_id, terminal_id, player_id, staff_id, type, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
		uuid.New(), outletID, terminalID, playerID, staffID, txType, amount)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListTransactions(ctx context.Context, filter authz.Filter, limit, offset int) ([]*Transaction, int, error) {
	transactions := []*Transaction{}
	if filter.None {
		return transactions, 0, nil
	}

	where := ``
	args := []interface{}{}
	switch {
	case filter.All:
	case filter.OperatorID.Valid:
		where = ` WHERE outlet_id IN (SELECT id FROM outlets WHERE operator_id = $1)`
		args = append(args, filter.OperatorID.UUID)
	case filter.OutletID.Valid:
		where = ` WHERE outlet_id = $1`
		args = append(args, filter.OutletID.UUID)
	default:
		return transactions, 0, nil
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := fmt.Sprintf(`SELECT * FROM transactions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	if err := r.db.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, total, nil
}
