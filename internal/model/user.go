package model

// UserRef is a denormalized copy of the requesting user stored with a
// reservation. It is not a live foreign relation; the user entity
// itself lives outside this service.
type UserRef struct {
    ID            string `json:"id"`
    Name          string `json:"name"`
    Email         string `json:"email"`
    ContactNumber string `json:"contactNumber"`
}
