package model

// Room is a bookable physical unit. The room number is the primary
// identity; every room has exactly one type at a time. Rooms are
// reference data like room types.
//
// Fields:
//  Number – unique room number, the primary identity.
//  Type   – the room's type, joined from room_types.
type Room struct {
    Number int      `json:"number"` // rooms.number
    Type   RoomType `json:"type"`   // rooms.type_id -> room_types
}
