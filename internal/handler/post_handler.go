package handler

import (
	"net/http"
	"strconv"

	"Lee_Feed/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

type PostContentReq struct {
	Content string `json:"content" binding:"required"`
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		svc: service.NewPostService(),
	}
}

// Create 发帖接口
func (h *PostHandler) Create(c *gin.Context) {
	viewer := viewerFromCtx(c)

	var req PostContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), viewer, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post created successfully", "post": post})
}

// Update 编辑接口，仅作者
func (h *PostHandler) Update(c *gin.Context) {
	viewer := viewerFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req PostContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.UpdatePost(c.Request.Context(), viewer, postID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post updated", "post": post})
}

// Delete 删帖接口，作者或 admin
func (h *PostHandler) Delete(c *gin.Context) {
	viewer := viewerFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.DeletePost(c.Request.Context(), viewer, postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post deleted"})
}

// Get 单帖查询
func (h *PostHandler) Get(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	post, err := h.svc.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}
