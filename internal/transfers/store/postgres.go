package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"fname-registry/internal/transfers/models"
	"fname-registry/pkg/platform/sentinel"
	txcontext "fname-registry/pkg/platform/tx"
)

const transferColumns = `id, timestamp, username, owner, "from", "to", user_signature, server_signature`

// PostgresStore reads and appends transfers in PostgreSQL. Statements run in
// the transaction carried by ctx when there is one.
type PostgresStore struct {
	db     *sql.DB
	txOpts *sql.TxOptions
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		txOpts: &sql.TxOptions{Isolation: sql.LevelSerializable},
	}
}

type dbQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) dbQuerier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// RunInTx runs fn in one serializable transaction.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return txcontext.Run(ctx, s.db, s.txOpts, fn)
}

func (s *PostgresStore) Insert(ctx context.Context, t *models.Transfer) (int64, error) {
	if t == nil {
		return 0, errors.New("transfer is required")
	}
	query := `
		INSERT INTO transfers (timestamp, username, owner, "from", "to", user_signature, server_signature)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := s.querier(ctx).QueryRowContext(ctx, query,
		t.Timestamp,
		t.Username,
		t.Owner.Bytes(),
		int64(t.From),
		int64(t.To),
		t.UserSignature,
		t.ServerSignature,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transfer: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Latest(ctx context.Context, username string) (*models.Transfer, error) {
	query := `SELECT ` + transferColumns + `
		FROM transfers
		WHERE username = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`
	t, err := scanTransfer(s.querier(ctx).QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, wrapNotFound(err, "find latest transfer")
	}
	return t, nil
}

func (s *PostgresStore) CurrentUsername(ctx context.Context, fid uint64) (string, error) {
	if fid == 0 {
		return "", sentinel.ErrNotFound
	}
	query := `
		SELECT username, "to"
		FROM transfers
		WHERE "from" = $1 OR "to" = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`
	var (
		username string
		to       int64
	)
	err := s.querier(ctx).QueryRowContext(ctx, query, int64(fid)).Scan(&username, &to)
	if err != nil {
		return "", wrapNotFound(err, "find current username")
	}
	if uint64(to) != fid {
		return "", sentinel.ErrNotFound
	}
	return username, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	t, err := scanTransfer(s.querier(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapNotFound(err, "find transfer by id")
	}
	return t, nil
}

func (s *PostgresStore) History(ctx context.Context, filter models.HistoryFilter) ([]*models.Transfer, error) {
	query, args := historyQuery(filter)
	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transfer history: %w", err)
	}
	defer rows.Close()

	transfers := make([]*models.Transfer, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer history: %w", err)
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer history: %w", err)
	}
	return transfers, nil
}

func historyQuery(filter models.HistoryFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(format string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}
	if filter.FromID != nil {
		add("id > $%d", *filter.FromID)
	}
	if filter.FromTs != nil {
		add("timestamp > $%d", *filter.FromTs)
	}
	if filter.Name != "" {
		add("username = $%d", filter.Name)
	}
	if filter.Fid != nil {
		add(`("from" = $%[1]d OR "to" = $%[1]d)`, int64(*filter.Fid))
	}

	var b strings.Builder
	b.WriteString("SELECT " + transferColumns + " FROM transfers")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	switch filter.Cursor() {
	case models.CursorByTimestamp:
		b.WriteString(" ORDER BY timestamp ASC, id ASC")
	default:
		b.WriteString(" ORDER BY id ASC")
	}
	args = append(args, models.PageSize)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))
	return b.String(), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransfer(row rowScanner) (*models.Transfer, error) {
	var (
		t        models.Transfer
		owner    []byte
		from, to int64
	)
	if err := row.Scan(&t.ID, &t.Timestamp, &t.Username, &owner, &from, &to, &t.UserSignature, &t.ServerSignature); err != nil {
		return nil, err
	}
	t.Owner = common.BytesToAddress(owner)
	t.From = uint64(from)
	t.To = uint64(to)
	return &t, nil
}

func wrapNotFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
