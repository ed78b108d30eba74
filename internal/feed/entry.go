// Package feed holds the domain types shared by producers, the render engine
// and the link index.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an author display color.
type RGB struct {
	R, G, B uint8
}

// DefaultColor is used when an author has no usable color.
var DefaultColor = RGB{0xC0, 0xC0, 0xC0}

// Palette is the fixed set of author colors handed out to chatters that do
// not pick their own.
var Palette = []RGB{
	{0, 0, 255},
	{138, 43, 226},
	{95, 158, 160},
	{210, 105, 30},
	{255, 127, 80},
	{30, 144, 255},
	{178, 34, 34},
	{218, 165, 32},
	{0, 128, 0},
	{255, 105, 180},
	{255, 69, 0},
	{255, 0, 0},
	{46, 139, 87},
	{0, 255, 127},
	{173, 255, 47},
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor accepts "#rrggbb", "rrggbb" or "#rgb". Anything else yields
// DefaultColor and false.
func ParseColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return DefaultColor, false
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, true
}

// Author identifies who wrote an entry.
type Author struct {
	Name  string
	Color RGB
}

// Entry is one chat line. Entries are not mutated after creation.
type Entry struct {
	Timestamp time.Time
	Author    Author
	Text      string
}

// Clock formats the entry time as HH:MM:SS in local time.
func (e Entry) Clock() string {
	return e.Timestamp.Local().Format(time.TimeOnly)
}

// Before orders entries by timestamp.
func Before(a, b Entry) bool {
	return a.Timestamp.Before(b.Timestamp)
}
