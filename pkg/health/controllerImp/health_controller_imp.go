package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

const pingTimeout = 800 * time.Millisecond

type HealthCtrl struct {
	db           *gorm.DB
	customTables bool
}

func NewHealthCtrl(db *gorm.DB, customTables bool) *HealthCtrl {
	return &HealthCtrl{db: db, customTables: customTables}
}

type check struct {
	OK     bool   `json:"ok"`
	Source string `json:"source,omitempty"`
	Err    string `json:"err,omitempty"`
}

type healthResp struct {
	OK        bool             `json:"ok"`
	UptimeSec int              `json:"uptime_sec"`
	Checks    map[string]check `json:"checks"`
	Time      string           `json:"time"`
}

// Health reports the database and which advisory tables the engine runs on.
// Only a failed database makes the service unavailable.
func (h *HealthCtrl) Health(c echo.Context) error {
	db := h.pingDB(c.Request().Context())

	advisory := check{OK: true, Source: "default"}
	if h.customTables {
		advisory.Source = "custom"
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, healthResp{
		OK:        db.OK,
		UptimeSec: int(time.Since(appStart).Seconds()),
		Checks:    map[string]check{"database": db, "advisory": advisory},
		Time:      time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "no database"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: err.Error()}
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}
