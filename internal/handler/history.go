package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"AwarenessSimulator_SecurityProject/internal/middleware"
	"AwarenessSimulator_SecurityProject/internal/storage"

	"github.com/gin-gonic/gin"
)

// GetHistory godoc
// @Summary      사용자 시뮬레이션 기록 조회
// @Description  사용자의 과거 시나리오 재생(채팅/이메일) 기록 목록을 최신순으로, 누적 점수와 함께 반환합니다.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.HistoryResponse "history: [기록 배열]"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Failure      500 {object} handler.ErrorResponse "DB 조회 실패 등 서버 오류"
// @Router       /api/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	participant := c.GetString(middleware.ContextParticipant)

	attempts, err := storage.GetAttemptsByParticipant(c.Request.Context(), participant)
	if err != nil {
		log.Printf("GetHistory(): Failed to fetch attempts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}
	total, err := storage.TotalScore(c.Request.Context(), participant)
	if err != nil {
		log.Printf("GetHistory(): Failed to sum score: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{History: attempts, TotalScore: total})
}

// GetTranscript godoc
// @Summary      재생 기록(대화 내용) 조회
// @Description  특정 세션의 대화 내용과 이벤트 로그(JSON)를 반환합니다.
// @Description  <br> **[인증]** Header에 `Authorization: Bearer ...`를 넣거나, URL 파라미터 `?token=...`을 사용하세요.
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Param        filename path      string  true  "기록 파일명 (예: session_uuid.json)"
// @Param        token    query     string  false "JWT 토큰 (Header 사용 불가 시)"
// @Success      200      {file}    file    "archiver.Summary JSON"
// @Failure      401      {object}  handler.ErrorResponse "인증 실패"
// @Failure      404      {object}  handler.ErrorResponse "해당 파일을 찾을 수 없음"
// @Router       /api/history/transcripts/{filename} [get]
func (h *Handler) GetTranscript(c *gin.Context) {
	participant := c.GetString(middleware.ContextParticipant)
	filename := c.Param("filename")

	cleanFilename := filepath.Base(filename)
	filePath := filepath.Join(h.cfg.RecordsDir, participant, cleanFilename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transcript not found"})
		return
	}

	c.File(filePath)
}
