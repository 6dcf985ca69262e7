package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"academy_backend/internal/config"
	"academy_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func transcodeCallbackRouter(callbackToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Transcoder.CallbackToken = callbackToken
	c := NewVideoController(&service.VideoService{Cfg: cfg})

	r := gin.New()
	r.POST("/api/callbacks/transcode", c.TranscodeCallback)
	return r
}

func postCallback(r *gin.Engine, headerToken string) *httptest.ResponseRecorder {
	body := `{"videoId":1,"status":"complete","hlsUrl":"http://cdn/v1.m3u8"}`
	req := httptest.NewRequest(http.MethodPost, "/api/callbacks/transcode", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if headerToken != "" {
		req.Header.Set("X-Callback-Token", headerToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTranscodeCallbackRejectsWrongToken(t *testing.T) {
	r := transcodeCallbackRouter("s3cret")

	assert.Equal(t, http.StatusUnauthorized, postCallback(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, postCallback(r, "wrong").Code)
}

func TestTranscodeCallbackClosedWithoutToken(t *testing.T) {
	r := transcodeCallbackRouter("")

	// 未配置令牌时接口关闭，即使请求带空令牌也拒绝
	assert.Equal(t, http.StatusUnauthorized, postCallback(r, "anything").Code)
}
