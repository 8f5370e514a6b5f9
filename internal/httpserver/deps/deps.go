package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scholarpath/scholarpath/internal/auth"
	"github.com/scholarpath/scholarpath/internal/bookmarks"
	"github.com/scholarpath/scholarpath/internal/logger"
	"github.com/scholarpath/scholarpath/internal/store"
	redisstore "github.com/scholarpath/scholarpath/internal/store/redis"
	"github.com/scholarpath/scholarpath/internal/summary"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Memory      *store.Memory      // In-memory entity/bookmark/user store
	RedisClient *redis.Client      // Redis client connection
	RedisStore  *redisstore.Store  // Write-through persistence + summary cache
	Bookmarks   *bookmarks.Manager // Bookmark manager
	Auth        *auth.Service      // Auth gate + session tokens

	Summarizer      summary.Summarizer // nil = summaries disabled
	SummaryTimeout  time.Duration      // per-call deadline for the collaborator
	SummaryCacheTTL time.Duration      // reuse window for generated summaries

	AllowedHosts []string // optional, restrict access to specific Host headers
	AdminCIDRS   []string // optional, restrict the admin surface to specific IPs/CIDRs
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	ReloadTrigger chan struct{} // Channel to trigger manual seed reload

	AuthRateBurst     int // rate limit on credential endpoints
	AuthRatePerMinute int
}
