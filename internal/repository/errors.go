// Package repository defines the store contracts the booking core
// depends on and their MySQL and in-memory implementations. The
// sentinel errors below are the only failure shapes adapters may
// surface; driver-specific errors never leak past this package.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a looked-up record does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a guarded write lost a race to another
// writer: the overlap re-check under the room lock found a reservation
// that was not there when the caller checked availability. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrBusy is returned when the per-room serialization scope could not
// be acquired within its bounded wait. The operation did not happen;
// callers may retry or pick another room.
var ErrBusy = errors.New("busy")

// ErrStoreUnavailable wraps connectivity and other infrastructure
// failures of the backing store.
var ErrStoreUnavailable = errors.New("store unavailable")

// MySQL error numbers that map onto the store error kinds.
const (
    mysqlErrDuplicateEntry  = 1062
    mysqlErrLockWaitTimeout = 1205
    mysqlErrDeadlock        = 1213
)

// translate maps a driver error onto the sentinel kinds. A lock wait
// timeout or an expired context means the write scope could not be
// acquired in time (ErrBusy); a deadlock victim or duplicate key lost
// a race (ErrConflict); anything else is an infrastructure failure.
func translate(err error) error {
    if err == nil {
        return nil
    }
    if errors.Is(err, sql.ErrNoRows) {
        return ErrNotFound
    }
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        switch me.Number {
        case mysqlErrLockWaitTimeout:
            return ErrBusy
        case mysqlErrDeadlock, mysqlErrDuplicateEntry:
            return ErrConflict
        }
    }
    if errors.Is(err, context.DeadlineExceeded) {
        return ErrBusy
    }
    return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
