package deps

import (
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/usecase"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	AllowedHosts []string      // Host headers allowed to reach the bookmark API
	AllowedCIDRS []string      // IPs allowed to reach the bookmark API and readyz
	TrustProxy   bool          // true if running behind a trusted reverse proxy
	Bookmarks    *usecase.Set  // the five bookmark use cases
	Store        domain.Pinger // backend probed by readyz
	ReadyTimeout time.Duration // upper bound for the readyz probe, 0 = 2s
}
