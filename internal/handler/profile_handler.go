package handler

import (
	"net/http"
	"strconv"

	"Lee_Feed/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{svc: service.NewProfileService()}
}

// Search 用户名模糊搜索
func (h *ProfileHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	users, err := h.svc.SearchUsers(c.Query("q"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Profile 公开主页：基本信息 + 关注/粉丝数
func (h *ProfileHandler) Profile(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	profile, err := h.svc.Profile(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
