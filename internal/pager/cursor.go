package pager

import "fmt"

// DefaultThreshold is how many slides before the end of the loaded content
// the next page is requested.
const DefaultThreshold = 8

// Cursor is the offset/limit pair identifying the next page to fetch.
type Cursor struct {
	Offset int
	Limit  int
}

// Valid reports whether the cursor can be sent to the data source.
func (c Cursor) Valid() bool {
	return c.Offset >= 0 && c.Limit > 0
}

func (c Cursor) String() string {
	return fmt.Sprintf("offset=%d limit=%d", c.Offset, c.Limit)
}

// Advance returns the cursor for the page after c.
func Advance(c Cursor) Cursor {
	return Cursor{Offset: c.Offset + c.Limit, Limit: c.Limit}
}

// NearEnd reports whether currentIndex is within threshold slides of the
// end of totalCount loaded slides.
func NearEnd(currentIndex, totalCount, threshold int) bool {
	return currentIndex >= totalCount-threshold
}
