/**
* Name: 			handler.go
* Description: 		Gin HTTP / WebSocket 핸들러 의존성과 응답 타입
* Workflow: 		main에서 Deps 구성 -> New -> Register로 라우트 등록
 */
package handler

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"AwarenessSimulator_SecurityProject/internal/bridge"
	"AwarenessSimulator_SecurityProject/internal/config"
	"AwarenessSimulator_SecurityProject/internal/metrics"
	"AwarenessSimulator_SecurityProject/internal/models"
	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/render"
	"AwarenessSimulator_SecurityProject/internal/scenario"
	"AwarenessSimulator_SecurityProject/internal/speech"

	"github.com/prometheus/client_golang/prometheus"
)

// ScriptSource resolves a lesson step into a playable script (lms.Client).
type ScriptSource interface {
	FetchScript(ctx context.Context, token string, stepID int) (scenario.Script, error)
}

type Deps struct {
	Config   config.Config
	Registry *scenario.Registry
	Lessons  ScriptSource     // nil: 레슨 스텝 재생 비활성화
	Reporter *bridge.Reporter // nil: 완료 보고 없음
	Metrics  *metrics.Metrics
	Narrator speech.Narrator // nil: 음성 안내 비활성화
	Clock    playback.Clock
	Logger   *slog.Logger
}

type Handler struct {
	cfg      config.Config
	registry *scenario.Registry
	lessons  ScriptSource
	reporter *bridge.Reporter
	metrics  *metrics.Metrics
	narrator speech.Narrator
	renderer *render.Renderer
	clock    playback.Clock
	logger   *slog.Logger
}

func New(deps Deps) *Handler {
	h := &Handler{
		cfg:      deps.Config,
		registry: deps.Registry,
		lessons:  deps.Lessons,
		reporter: deps.Reporter,
		metrics:  deps.Metrics,
		narrator: deps.Narrator,
		renderer: render.NewRenderer(),
		clock:    deps.Clock,
		logger:   deps.Logger,
	}
	if h.registry == nil {
		h.registry = scenario.NewRegistry()
	}
	if h.metrics == nil {
		h.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}
	if h.reporter == nil {
		h.reporter = bridge.NewReporter(nil, nil, h.metrics)
	}
	if h.clock == nil {
		h.clock = playback.RealClock()
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if h.cfg.TimeUnit <= 0 {
		h.cfg.TimeUnit = time.Second
	}
	if h.cfg.RateLimit <= 0 {
		h.cfg.RateLimit = 5
	}
	if h.cfg.RateBurst <= 0 {
		h.cfg.RateBurst = 10
	}
	if h.cfg.RecordsDir == "" {
		h.cfg.RecordsDir = filepath.Join("data", "records")
	}
	return h
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

// 시나리오 목록 항목
type ScenarioSummary struct {
	Key       string        `json:"key" example:"friends_impersonation"`
	Title     string        `json:"title" example:"A friend asks for money"`
	Kind      scenario.Kind `json:"kind" example:"chat"`
	Contact   string        `json:"contact" example:"Alex"`
	StepCount int           `json:"step_count" example:"6"`
}

type ScenarioListResponse struct {
	Scenarios []ScenarioSummary `json:"scenarios"`
}

// 시나리오 첫 화면 미리보기
type PreviewResponse struct {
	Key  string      `json:"key"`
	Pane render.Pane `json:"pane"`
	HTML string      `json:"html"`
}

// 시뮬레이션 기록 목록 응답 (Wrapper)
type HistoryResponse struct {
	History    []models.Attempt `json:"history"`
	TotalScore int              `json:"total_score" example:"150"`
}

type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Scenarios int    `json:"scenarios" example:"4"`
}
