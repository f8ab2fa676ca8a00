package env

import (
	"os"
)

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// GraphvizSmoke gates tests that run the real dot engine.
func GraphvizSmoke() bool {
	return os.Getenv("FLOWDRAW_GRAPHVIZ_TESTS") != ""
}
