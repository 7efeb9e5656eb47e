package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLogEntries はメモリ上に保持するログの上限です。
const maxLogEntries = 10000

// LogEntry は単一のリクエストログを表します。
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"statusCode"`
	ResponseTime time.Duration `json:"responseTime"`
}

// MonitoringService はAPIのモニタリング機能を提供します。
type MonitoringService struct {
	logs []LogEntry
	mu   sync.RWMutex
	now  func() time.Time
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]LogEntry, 0),
		now:  time.Now,
	}
}

// LogRequest はリクエストを記録します。
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if over := len(s.logs) - maxLogEntries; over > 0 {
		s.logs = append([]LogEntry(nil), s.logs[over:]...)
	}
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
// 管理APIとモニタリングAPI自体は記録しません。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: s.now().Sub(start),
		})
	}
}

// DashboardData はダッシュボードに表示する集計データです。
type DashboardData struct {
	TotalRequests    int              `json:"totalRequests"`
	Endpoints        map[string]int   `json:"endpoints"`
	StatusCodes      map[string]int   `json:"statusCodes"`
	AvgResponseTimes map[string]int64 `json:"avgResponseTimes"` // ミリ秒
	RecentErrors     []LogEntry       `json:"recentErrors"`
}

// GetDashboardData は直近periodHours時間のログを集計します。
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	since := s.now().Add(-time.Duration(periodHours) * time.Hour)

	data := DashboardData{
		Endpoints: make(map[string]int),
		StatusCodes: map[string]int{
			"2xx Success":      0,
			"4xx Client Error": 0,
			"5xx Server Error": 0,
		},
		AvgResponseTimes: make(map[string]int64),
		RecentErrors:     make([]LogEntry, 0),
	}
	totals := make(map[string]time.Duration)

	for _, log := range s.logs {
		if !log.Timestamp.After(since) {
			continue
		}
		data.TotalRequests++
		data.Endpoints[log.Path]++
		totals[log.Path] += log.ResponseTime

		switch {
		case log.StatusCode >= 200 && log.StatusCode < 300:
			data.StatusCodes["2xx Success"]++
		case log.StatusCode >= 400 && log.StatusCode < 500:
			data.StatusCodes["4xx Client Error"]++
		case log.StatusCode >= 500:
			data.StatusCodes["5xx Server Error"]++
			data.RecentErrors = append(data.RecentErrors, log)
		}
	}

	for path, total := range totals {
		data.AvgResponseTimes[path] = total.Milliseconds() / int64(data.Endpoints[path])
	}

	// 新しい順に最大10件
	sort.SliceStable(data.RecentErrors, func(i, j int) bool {
		return data.RecentErrors[i].Timestamp.After(data.RecentErrors[j].Timestamp)
	})
	if len(data.RecentErrors) > 10 {
		data.RecentErrors = data.RecentErrors[:10]
	}

	return data
}
