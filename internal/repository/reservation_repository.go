package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// The single overlap predicate, mirrored from model.DateRange.Overlaps:
// an existing reservation conflicts with [?, ?) iff
// checkin < existing.checkout AND existing.checkin < checkout.
// Checkout is exclusive on both sides, so boundary-touching stays
// (same-day turnover) never match.
const overlapCond = `? < checkout_date AND checkin_date < ?`

// ReservationRepo provides access to the reservations table. Expected
// schema:
//
//  reservations(id CHAR(36) PK, room INT REFERENCES rooms(number),
//               checkin_date DATE, checkout_date DATE,
//               user_id VARCHAR(64), user_info JSON,
//               created_at DATETIME, updated_at DATETIME)
//
// Insert and UpdateDates serialize conflicting writers by locking the
// candidate room's row (SELECT ... FOR UPDATE) and re-checking the
// no-overlap invariant while the lock is held. Writers on different
// rooms lock different rows and proceed without blocking each other.
// The wait for the row lock is bounded by lockWait; on expiry the
// attempt surfaces as ErrBusy.
type ReservationRepo struct {
    db       *sql.DB
    lockWait time.Duration
}

// NewReservationRepo returns a ReservationRepo bound to the given
// database. lockWait bounds how long a guarded write may wait for the
// room's write scope; zero or negative falls back to 5s.
func NewReservationRepo(db *sql.DB, lockWait time.Duration) *ReservationRepo {
    if lockWait <= 0 {
        lockWait = 5 * time.Second
    }
    return &ReservationRepo{db: db, lockWait: lockWait}
}

// FindOverlapping returns the reservations on a room whose interval
// overlaps rng, excluding excludeID when non-empty.
func (r *ReservationRepo) FindOverlapping(ctx context.Context, room int, rng model.DateRange, excludeID string) ([]model.Reservation, error) {
    query := `SELECT id, room, checkin_date, checkout_date, user_info, created_at, updated_at
              FROM reservations
              WHERE room = ? AND ` + overlapCond
    args := []interface{}{room, rng.Checkin, rng.Checkout}
    if excludeID != "" {
        query += ` AND id <> ?`
        args = append(args, excludeID)
    }
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, translate(err)
    }
    defer rows.Close()
    return scanReservations(rows)
}

// OverlappingRooms returns the distinct room numbers holding at least
// one reservation that overlaps rng. The availability engine subtracts
// this set from the candidate pool.
func (r *ReservationRepo) OverlappingRooms(ctx context.Context, rng model.DateRange) ([]int, error) {
    query := `SELECT DISTINCT room FROM reservations WHERE ` + overlapCond
    rows, err := r.db.QueryContext(ctx, query, rng.Checkin, rng.Checkout)
    if err != nil {
        return nil, translate(err)
    }
    defer rows.Close()
    var nums []int
    for rows.Next() {
        var n int
        if err := rows.Scan(&n); err != nil {
            return nil, translate(err)
        }
        nums = append(nums, n)
    }
    if err := rows.Err(); err != nil {
        return nil, translate(err)
    }
    return nums, nil
}

// Insert persists a new reservation. It locks the room row, re-checks
// that no committed reservation overlaps the requested interval and
// only then writes. A concurrent booking that slipped in between the
// caller's availability check and this call surfaces as ErrConflict.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
    ctx, cancel := context.WithTimeout(ctx, r.lockWait)
    defer cancel()

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return translate(err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := lockRoomTx(ctx, tx, res.Room); err != nil {
        return err
    }
    free, err := roomFreeTx(ctx, tx, res.Room, res.Range(), "")
    if err != nil {
        return err
    }
    if !free {
        return ErrConflict
    }

    userJSON, err := json.Marshal(res.User)
    if err != nil {
        return err
    }
    const ins = `INSERT INTO reservations (id, room, checkin_date, checkout_date, user_id, user_info, created_at, updated_at)
                 VALUES (?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(), UTC_TIMESTAMP())`
    if _, err := tx.ExecContext(ctx, ins, res.ID, res.Room, res.Checkin, res.Checkout, res.User.ID, userJSON); err != nil {
        return translate(err)
    }
    // Query back timestamps so the caller returns the persisted row.
    const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
    if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
        return translate(err)
    }
    if err := tx.Commit(); err != nil {
        return translate(err)
    }
    committed = true
    return nil
}

// UpdateDates moves a reservation to a new interval. The reservation's
// own row is excluded from the overlap re-check so a stay never
// conflicts with itself. Identity and room never change.
func (r *ReservationRepo) UpdateDates(ctx context.Context, id string, rng model.DateRange) (*model.Reservation, error) {
    ctx, cancel := context.WithTimeout(ctx, r.lockWait)
    defer cancel()

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, translate(err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var room int
    if err := tx.QueryRowContext(ctx, `SELECT room FROM reservations WHERE id = ?`, id).Scan(&room); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, translate(err)
    }
    if err := lockRoomTx(ctx, tx, room); err != nil {
        return nil, err
    }
    free, err := roomFreeTx(ctx, tx, room, rng, id)
    if err != nil {
        return nil, err
    }
    if !free {
        return nil, ErrConflict
    }

    const upd = `UPDATE reservations SET checkin_date = ?, checkout_date = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
    if _, err := tx.ExecContext(ctx, upd, rng.Checkin, rng.Checkout, id); err != nil {
        return nil, translate(err)
    }
    res, err := getByIDTx(ctx, tx, id)
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, translate(err)
    }
    committed = true
    return res, nil
}

// GetByID fetches one reservation by its UUID.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
    const q = `SELECT id, room, checkin_date, checkout_date, user_info, created_at, updated_at
               FROM reservations WHERE id = ?`
    return scanReservation(r.db.QueryRowContext(ctx, q, id))
}

// ListByUser returns a user's reservations ordered by checkin date.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
    const q = `SELECT id, room, checkin_date, checkout_date, user_info, created_at, updated_at
               FROM reservations WHERE user_id = ? ORDER BY checkin_date`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, translate(err)
    }
    defer rows.Close()
    return scanReservations(rows)
}

// Delete removes a reservation. Administrative action; it frees the
// room for future overlap checks.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
    result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
    if err != nil {
        return translate(err)
    }
    n, err := result.RowsAffected()
    if err != nil {
        return translate(err)
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// lockRoomTx acquires the per-room write scope: an exclusive row lock
// on the rooms row. Concurrent writers for the same room queue here;
// writers for other rooms are unaffected.
func lockRoomTx(ctx context.Context, tx *sql.Tx, room int) error {
    var n int
    err := tx.QueryRowContext(ctx, `SELECT number FROM rooms WHERE number = ? FOR UPDATE`, room).Scan(&n)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrNotFound
        }
        return translate(err)
    }
    return nil
}

// roomFreeTx re-checks the no-overlap invariant inside the transaction
// while the room lock is held.
func roomFreeTx(ctx context.Context, tx *sql.Tx, room int, rng model.DateRange, excludeID string) (bool, error) {
    query := `SELECT COUNT(*) FROM reservations WHERE room = ? AND ` + overlapCond
    args := []interface{}{room, rng.Checkin, rng.Checkout}
    if excludeID != "" {
        query += ` AND id <> ?`
        args = append(args, excludeID)
    }
    var n int
    if err := tx.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
        return false, translate(err)
    }
    return n == 0, nil
}

func getByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Reservation, error) {
    const q = `SELECT id, room, checkin_date, checkout_date, user_info, created_at, updated_at
               FROM reservations WHERE id = ?`
    return scanReservation(tx.QueryRowContext(ctx, q, id))
}

type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
    var res model.Reservation
    var userJSON []byte
    err := row.Scan(&res.ID, &res.Room, &res.Checkin, &res.Checkout, &userJSON, &res.CreatedAt, &res.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, translate(err)
    }
    if len(userJSON) > 0 {
        if err := json.Unmarshal(userJSON, &res.User); err != nil {
            return nil, err
        }
    }
    return &res, nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
    out := make([]model.Reservation, 0)
    for rows.Next() {
        var res model.Reservation
        var userJSON []byte
        if err := rows.Scan(&res.ID, &res.Room, &res.Checkin, &res.Checkout, &userJSON, &res.CreatedAt, &res.UpdatedAt); err != nil {
            return nil, translate(err)
        }
        if len(userJSON) > 0 {
            if err := json.Unmarshal(userJSON, &res.User); err != nil {
                return nil, err
            }
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, translate(err)
    }
    return out, nil
}

var _ ReservationStore = (*ReservationRepo)(nil)
