package handler

import (
	"log"
	"net/http"

	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/render"
	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/gin-gonic/gin"
)

// ListScenarios godoc
// @Summary      내장 시나리오 목록
// @Description  레슨 없이 재생할 수 있는 내장 시나리오 목록을 키 순서로 반환합니다.
// @Tags         Scenario
// @Produce      json
// @Success      200 {object} handler.ScenarioListResponse
// @Router       /api/scenarios [get]
func (h *Handler) ListScenarios(c *gin.Context) {
	scripts := h.registry.List()
	list := make([]ScenarioSummary, 0, len(scripts))
	for _, s := range scripts {
		list = append(list, ScenarioSummary{
			Key:       s.Key,
			Title:     s.Title,
			Kind:      s.Kind,
			Contact:   s.ContactName(),
			StepCount: s.StepCount(),
		})
	}
	c.JSON(http.StatusOK, ScenarioListResponse{Scenarios: list})
}

// PreviewScenario godoc
// @Summary      시나리오 첫 화면 미리보기
// @Description  재생을 시작하지 않은 상태의 화면(Pane)과 HTML 조각을 반환합니다.
// @Description  검증에 실패한 시나리오는 "unavailable" 화면을 반환합니다.
// @Tags         Scenario
// @Produce      json
// @Param        key path      string  true  "시나리오 키 (예: delivery_notification)"
// @Success      200 {object} handler.PreviewResponse
// @Failure      404 {object} handler.ErrorResponse "시나리오 없음"
// @Failure      500 {object} handler.ErrorResponse "렌더링 실패"
// @Router       /api/scenarios/{key} [get]
func (h *Handler) PreviewScenario(c *gin.Context) {
	key := c.Param("key")
	script, ok := h.registry.Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
		return
	}

	pane := render.Unavailable()
	if err := scenario.Validate(script); err == nil {
		pane = h.renderer.Render(previewSnapshot(script), script)
	} else {
		log.Printf("PreviewScenario(): Scenario %s is invalid: %v", key, err)
	}
	fragment, err := render.HTML(pane)
	if err != nil {
		log.Printf("PreviewScenario(): Failed to render %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render scenario"})
		return
	}
	c.JSON(http.StatusOK, PreviewResponse{Key: key, Pane: pane, HTML: string(fragment)})
}

// 첫 화면: 이메일은 판정 대기, 채팅은 첫 메시지 입력 중
func previewSnapshot(script scenario.Script) playback.Snapshot {
	snap := playback.Snapshot{Kind: script.Kind, Phase: playback.PhaseAwaitingDecision}
	if script.Kind == scenario.KindChat {
		snap.Phase = playback.PhasePresenting
		snap.Typing = true
	}
	return snap
}

// Healthz godoc
// @Summary      상태 확인
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Scenarios: len(h.registry.List())})
}
