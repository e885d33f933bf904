package handler

import (
	"net/http"
	"strconv"

	"Lee_Feed/internal/service"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	svc *service.ModerationService
}

func NewModerationHandler() *ModerationHandler {
	return &ModerationHandler{svc: service.NewModerationService()}
}

// Report 用户举报帖子
func (h *ModerationHandler) Report(c *gin.Context) {
	viewer := viewerFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.SubmitReport(c.Request.Context(), viewer, postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Report submitted"})
}

// Reported 待处理队列：按 pending 举报数降序
func (h *ModerationHandler) Reported(c *gin.Context) {
	viewer := viewerFromCtx(c)

	posts, err := h.svc.ListReported(c.Request.Context(), viewer)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// ApproveDelete 审核通过：软删帖子并终结其全部 pending 举报
func (h *ModerationHandler) ApproveDelete(c *gin.Context) {
	viewer := viewerFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.ApproveDelete(c.Request.Context(), viewer, postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post deleted"})
}

// Dismiss 驳回举报，帖子保留
func (h *ModerationHandler) Dismiss(c *gin.Context) {
	viewer := viewerFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Dismiss(c.Request.Context(), viewer, postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Report dismissed"})
}
