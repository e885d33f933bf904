package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Lee_Feed/internal/service"
)

type PostLikeHandler struct {
	svc *service.PostLikeService
}

func NewPostLikeHandler() *PostLikeHandler {
	return &PostLikeHandler{
		svc: service.NewPostLikeService(),
	}
}

func (h *PostLikeHandler) Like(c *gin.Context) {
	viewer := viewerFromCtx(c)
	pid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	changed, err := h.svc.Like(c.Request.Context(), viewer.ID, pid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "changed": changed})
}

func (h *PostLikeHandler) Unlike(c *gin.Context) {
	viewer := viewerFromCtx(c)
	pid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	changed, err := h.svc.Unlike(c.Request.Context(), viewer.ID, pid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "changed": changed})
}

func (h *PostLikeHandler) IsLiked(c *gin.Context) {
	viewer := viewerFromCtx(c)
	pid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	liked, err := h.svc.IsLiked(c.Request.Context(), viewer.ID, pid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "liked": liked})
}

func (h *PostLikeHandler) Count(c *gin.Context) {
	viewer := viewerFromCtx(c)
	pid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	cnt, err := h.svc.GetCountWithLock(c.Request.Context(), viewer.ID, pid)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "count": cnt})
}
