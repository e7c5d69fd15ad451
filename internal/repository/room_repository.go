package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RoomRepo provides read access to the rooms and room_types tables.
// Both tables hold reference data: created at provisioning time,
// immutable afterwards. Expected schema:
//
//  room_types(id BIGINT PK, name VARCHAR UNIQUE, guest_capacity INT, price DECIMAL(10,2))
//  rooms(number INT PK, type_id BIGINT REFERENCES room_types(id))
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// ListRooms returns every room joined with its type, ordered by room
// number ascending.
func (r *RoomRepo) ListRooms(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT r.number, rt.id, rt.name, rt.guest_capacity, rt.price
               FROM rooms r
               JOIN room_types rt ON rt.id = r.type_id
               ORDER BY r.number`
    return r.queryRooms(ctx, q)
}

// RoomsByType returns the rooms of a single type, ordered by room
// number ascending.
func (r *RoomRepo) RoomsByType(ctx context.Context, typeID uint64) ([]model.Room, error) {
    const q = `SELECT r.number, rt.id, rt.name, rt.guest_capacity, rt.price
               FROM rooms r
               JOIN room_types rt ON rt.id = r.type_id
               WHERE r.type_id = ?
               ORDER BY r.number`
    return r.queryRooms(ctx, q, typeID)
}

func (r *RoomRepo) queryRooms(ctx context.Context, query string, args ...interface{}) ([]model.Room, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, translate(err)
    }
    defer rows.Close()
    rooms := make([]model.Room, 0)
    for rows.Next() {
        var rm model.Room
        if err := rows.Scan(&rm.Number, &rm.Type.ID, &rm.Type.Name, &rm.Type.GuestCapacity, &rm.Type.Price); err != nil {
            return nil, translate(err)
        }
        rooms = append(rooms, rm)
    }
    if err := rows.Err(); err != nil {
        return nil, translate(err)
    }
    return rooms, nil
}

// ListRoomTypes returns every room type ordered by id.
func (r *RoomRepo) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
    const q = `SELECT id, name, guest_capacity, price FROM room_types ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, translate(err)
    }
    defer rows.Close()
    types := make([]model.RoomType, 0)
    for rows.Next() {
        var rt model.RoomType
        if err := rows.Scan(&rt.ID, &rt.Name, &rt.GuestCapacity, &rt.Price); err != nil {
            return nil, translate(err)
        }
        types = append(types, rt)
    }
    if err := rows.Err(); err != nil {
        return nil, translate(err)
    }
    return types, nil
}

// RoomTypeByName resolves a room type by its unique name. Returns
// ErrNotFound when the name does not exist.
func (r *RoomRepo) RoomTypeByName(ctx context.Context, name string) (*model.RoomType, error) {
    const q = `SELECT id, name, guest_capacity, price FROM room_types WHERE name = ?`
    var rt model.RoomType
    err := r.db.QueryRowContext(ctx, q, name).Scan(&rt.ID, &rt.Name, &rt.GuestCapacity, &rt.Price)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, translate(err)
    }
    return &rt, nil
}

var _ InventoryStore = (*RoomRepo)(nil)
