package handler

import (
	"Lee_Feed/internal/middleware"
	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"

	"github.com/gin-gonic/gin"
)

// viewerFromCtx 取认证中间件注入的身份
func viewerFromCtx(c *gin.Context) model.Viewer {
	if v, ok := c.Get(middleware.ContextViewerKey); ok {
		if viewer, ok2 := v.(model.Viewer); ok2 {
			return viewer
		}
	}
	return model.Viewer{}
}

// respondErr 错误分类统一映射状态码
func respondErr(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"msg": err.Error()})
}
