package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("FINTRACK_TEST_MODE") == "" {
			_ = os.Setenv("FINTRACK_TEST_MODE", "1")
		}
	})
}
