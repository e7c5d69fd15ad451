package model

// RoomType is a category of rooms sharing a capacity and a flat
// nightly price. Room types are reference data created at provisioning
// time and never modified afterwards.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – unique human-readable name (e.g. "Single", "Double").
//  GuestCapacity – maximum number of guests a room of this type sleeps.
//  Price         – flat price per night.
type RoomType struct {
    ID            uint64  `json:"id"`            // room_types.id
    Name          string  `json:"name"`          // room_types.name
    GuestCapacity uint32  `json:"guestCapacity"` // room_types.guest_capacity
    Price         float64 `json:"price"`         // room_types.price
}
