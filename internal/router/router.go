package router

import (
	"Lee_Feed/internal/handler"
	"Lee_Feed/internal/middleware"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(smtpCfg pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	emailSvc := service.NewEmailService(smtpCfg)

	user := handler.NewUserHandler(emailSvc)
	email := handler.NewEmailHandler(emailSvc)
	feed := handler.NewFeedHandler()
	post := handler.NewPostHandler()
	moderation := handler.NewModerationHandler()
	follow := handler.NewFollowHandler()
	like := handler.NewPostLikeHandler()
	comment := handler.NewCommentHandler()
	profile := handler.NewProfileHandler()

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/code", email.SendCode)
		emailGroup.POST("/verify", email.VerifyCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 搜索和主页，登录可见
	profileGroup := r.Group("/api/user")
	profileGroup.Use(middleware.AuthMiddleware())
	{
		profileGroup.GET("/search", profile.Search)
		profileGroup.GET("/:id/profile", profile.Profile)
	}

	// 首页 feed
	feedGroup := r.Group("/api/feed")
	feedGroup.Use(middleware.AuthMiddleware())
	{
		feedGroup.GET("", feed.List)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/create", post.Create)
		postGroup.GET("/:id", post.Get)
		postGroup.PUT("/:id", post.Update)
		postGroup.DELETE("/:id", post.Delete)
		postGroup.POST("/:id/report", moderation.Report)

		postGroup.POST("/:id/like", like.Like)
		postGroup.DELETE("/:id/like", like.Unlike)
		postGroup.GET("/:id/like", like.IsLiked)
		postGroup.GET("/:id/like-count", like.Count)

		postGroup.POST("/:id/comment", comment.Create)
		postGroup.GET("/:id/comments", comment.List)
	}

	commentGroup := r.Group("/api/comment")
	commentGroup.Use(middleware.AuthMiddleware())
	{
		commentGroup.DELETE("/:comment_id", comment.Delete)
	}

	// 审核相关接口，权限校验在 service 层按角色表做
	moderationGroup := r.Group("/api/moderation")
	moderationGroup.Use(middleware.AuthMiddleware())
	{
		moderationGroup.GET("/reported", moderation.Reported)
		moderationGroup.POST("/post/:id/approve", moderation.ApproveDelete)
		moderationGroup.POST("/post/:id/dismiss", moderation.Dismiss)
	}

	// 用户关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(middleware.AuthMiddleware())
	{
		followGroup.POST("/", follow.Follow)
		followGroup.GET("/followings", follow.ListFollowings)
		followGroup.GET("/followers", follow.ListFollowers)
		followGroup.GET("/relation", follow.Relation)
	}

	return r
}
