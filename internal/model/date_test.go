package model

import (
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
    t.Helper()
    d, err := ParseDate(s)
    require.NoError(t, err)
    return d
}

func rng(t *testing.T, checkin, checkout string) DateRange {
    t.Helper()
    return DateRange{Checkin: mustDate(t, checkin), Checkout: mustDate(t, checkout)}
}

func TestParseDate(t *testing.T) {
    d, err := ParseDate("2024-07-01")
    require.NoError(t, err)
    assert.Equal(t, "2024-07-01", d.String())

    _, err = ParseDate("2024-07-01T00:00:00Z")
    assert.Error(t, err)
    _, err = ParseDate("01/07/2024")
    assert.Error(t, err)
    _, err = ParseDate("")
    assert.Error(t, err)
}

func TestDateRangeValid(t *testing.T) {
    assert.True(t, rng(t, "2024-07-01", "2024-07-03").Valid())
    // zero-length and inverted ranges hold no nights
    assert.False(t, rng(t, "2024-07-01", "2024-07-01").Valid())
    assert.False(t, rng(t, "2024-07-03", "2024-07-01").Valid())
}

// TestDateRangeOverlaps pins the exclusive-checkout convention: two
// ranges overlap iff a1 < b2 AND b1 < a2. Checkout day equal to the
// other range's checkin day is same-day turnover, not a conflict.
func TestDateRangeOverlaps(t *testing.T) {
    cases := []struct {
        name    string
        a, b    DateRange
        overlap bool
    }{
        {"identical", rng(t, "2024-07-01", "2024-07-05"), rng(t, "2024-07-01", "2024-07-05"), true},
        {"partial tail", rng(t, "2024-07-01", "2024-07-05"), rng(t, "2024-07-03", "2024-07-06"), true},
        {"contained", rng(t, "2024-07-01", "2024-07-10"), rng(t, "2024-07-03", "2024-07-05"), true},
        {"single shared night", rng(t, "2024-07-01", "2024-07-03"), rng(t, "2024-07-02", "2024-07-04"), true},
        {"checkout touches checkin", rng(t, "2024-07-01", "2024-07-03"), rng(t, "2024-07-03", "2024-07-05"), false},
        {"checkin touches checkout", rng(t, "2024-07-03", "2024-07-05"), rng(t, "2024-07-01", "2024-07-03"), false},
        {"disjoint", rng(t, "2024-07-01", "2024-07-02"), rng(t, "2024-07-10", "2024-07-12"), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.overlap, tc.a.Overlaps(tc.b))
            // overlap is symmetric
            assert.Equal(t, tc.overlap, tc.b.Overlaps(tc.a))
        })
    }
}

func TestDateJSONRoundTrip(t *testing.T) {
    d := mustDate(t, "2024-07-01")
    b, err := json.Marshal(d)
    require.NoError(t, err)
    assert.Equal(t, `"2024-07-01"`, string(b))

    var back Date
    require.NoError(t, json.Unmarshal(b, &back))
    assert.True(t, back.Equal(d.Time))

    var bad Date
    assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &bad))
}
