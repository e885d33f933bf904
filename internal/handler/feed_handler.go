package handler

import (
	"net/http"
	"strconv"

	"Lee_Feed/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{svc: service.NewFeedService()}
}

// List feed 读接口。参数都可缺省，规整（分页/排序白名单/TTL 钳制）在服务层做。
// 命中缓存时原样回写缓存字节。
func (h *FeedHandler) List(c *gin.Context) {
	viewer := viewerFromCtx(c)

	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	ttl, _ := strconv.Atoi(c.Query("ttl"))
	targetID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	payload, err := h.svc.ListFeed(c.Request.Context(), viewer, service.FeedQuery{
		Page:     page,
		PerPage:  perPage,
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir"),
		TargetID: targetID,
		TTL:      ttl,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
