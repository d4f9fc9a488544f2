package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"AwarenessSimulator_SecurityProject/internal/auth"
	"AwarenessSimulator_SecurityProject/internal/lms"
	"AwarenessSimulator_SecurityProject/internal/render"
	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleScenarioConnection godoc
// @Summary      시나리오 재생 WebSocket 연결
// @Description  레슨 스텝(step) 또는 내장 시나리오(scenario)를 재생하는 WebSocket 연결을 시작합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  서버는 상태가 바뀔 때마다 `{"type":"pane", ...}` 텍스트 프레임을 보내고,
// @Description  클라이언트는 `{"action":"decide","option":"1"}`, `{"action":"restart"}`, `{"action":"retry"}`를 보냅니다.
// @Description  `voice=1`이면 상대방 메시지의 음성(LINEAR16, 16kHz)을 바이너리 프레임으로 보냅니다.
// @Description  인증은 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Tags         WebSocket (Scenario)
// @Param        token    query     string  true   "레슨 서비스가 발급한 JWT 토큰"
// @Param        step     query     int     false  "레슨 스텝 ID (simulation_chat / simulation_email)"
// @Param        scenario query     string  false  "내장 시나리오 키 (예: friends_impersonation)"
// @Param        voice    query     int     false  "1이면 음성 안내"
// @Success      101      {string}  string  "101 Switching Protocols (WebSocket으로 프로토콜 전환 성공)"
// @Failure      400      {object}  handler.ErrorResponse "잘못된 파라미터 (step, scenario)"
// @Failure      401      {object}  handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Failure      404      {object}  handler.ErrorResponse "레슨 스텝 없음"
// @Failure      502      {object}  handler.ErrorResponse "레슨 서비스 오류"
// @Router       /ws/scenario [get]
func (h *Handler) HandleScenarioConnection(c *gin.Context) {

	// URL Query 파라미터 추출
	tokenString := c.Query("token")
	stepParam := c.Query("step")
	scenarioKey := c.Query("scenario")
	voice := c.Query("voice") == "1"

	// 사용자 토큰 검증
	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	participant := claims.Participant()

	// 시나리오 결정: 레슨 스텝 또는 내장 시나리오
	var script scenario.Script
	var stepID int
	var scriptErr error
	switch {
	case stepParam != "":
		stepID, err = strconv.Atoi(stepParam)
		if err != nil || stepID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step id"})
			return
		}
		if h.lessons == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson steps are not available"})
			return
		}
		script, scriptErr = h.lessons.FetchScript(c.Request.Context(), tokenString, stepID)
		switch {
		case scriptErr == nil, errors.Is(scriptErr, scenario.ErrInvalidScenario):
		case errors.Is(scriptErr, lms.ErrStepNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson step not found"})
			return
		case errors.Is(scriptErr, lms.ErrNotSimulation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson step is not a simulation"})
			return
		default:
			log.Printf("HandleScenarioConnection(): Failed to fetch step %d: %v", stepID, scriptErr)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch lesson step"})
			return
		}
	case scenarioKey != "":
		var ok bool
		script, ok = h.registry.Get(scenarioKey)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scenario key"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "step or scenario is required"})
		return
	}
	if scriptErr == nil {
		scriptErr = scenario.Validate(script)
	}
	log.Printf("HandleScenarioConnection(): User %s connected, scenario: %s, step: %d, voice: %t", participant, script.Key, stepID, voice)

	// WebSocket 연결 업그레이드과 종료
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("HandleScenarioConnection(): Failed to upgrade to WebSocket: User %s with %v", participant, err)
		return
	}
	defer conn.Close()

	// 검증 실패 시 재생하지 않고 안내 화면만 전송
	if scriptErr != nil {
		log.Printf("HandleScenarioConnection(): Scenario unavailable for user %s: %v", participant, scriptErr)
		sendUnavailable(conn)
		return
	}

	h.manageScenarioSession(conn, sessionParams{
		participant: participant,
		token:       tokenString,
		stepID:      stepID,
		script:      script,
		voice:       voice,
	})
}

func sendUnavailable(conn *websocket.Conn) {
	pane := render.Unavailable()
	if err := conn.WriteJSON(Frame{Type: FramePane, Pane: &pane}); err != nil {
		log.Printf("sendUnavailable(): Error sending frame: %v", err)
		return
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, render.UnavailableMessage))
}
