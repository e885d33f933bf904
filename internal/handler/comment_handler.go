package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Lee_Feed/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
}

type CommentReq struct {
	Content string `json:"content" binding:"required"`
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{svc: service.NewCommentService()}
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	pid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	comment, err := h.svc.CreateComment(c.Request.Context(), viewerFromCtx(c), pid, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "comment": comment})
}

func (h *CommentHandler) List(c *gin.Context) {
	pid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	comments, err := h.svc.ListByPost(c.Request.Context(), pid, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "comments": comments})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	cid, _ := strconv.ParseUint(c.Param("comment_id"), 10, 64)

	if err := h.svc.DeleteComment(c.Request.Context(), viewerFromCtx(c), cid); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
