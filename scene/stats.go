package scene

import (
	"fmt"
	"time"
)

// Stats describes the last update and render.
type Stats struct {
	Ticks    uint64
	Objects  int
	Vertices int
	Indices  int
	Pending  int
	Full     bool

	Update time.Duration
	Render time.Duration
}

func (stats Stats) String() string {
	full := ""
	if stats.Full {
		full = "\tFULL"
	}
	return fmt.Sprintf("Objects:\t%d\tVertices:\t%d\tUpdate:\t%v\tRender:\t%v%s",
		stats.Objects, stats.Vertices, stats.Update, stats.Render, full)
}
