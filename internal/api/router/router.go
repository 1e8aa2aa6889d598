package router

import (
	"vidtube/internal/api/handler"
	"vidtube/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 账号模块 ---
	users := v1.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh-token", authHandler.RefreshToken)

		// 频道主页公开可见，登录后附带观察者标记
		users.GET("/c/:username", middleware.OptionalAuth(), userHandler.GetChannelProfile)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.POST("/logout", authHandler.Logout)
			usersAuth.GET("/me", authHandler.Me)
			usersAuth.GET("/history", userHandler.GetWatchHistory)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（不需要登录）
		videos.GET("", videoHandler.GetFeed)
		videos.GET("/search", videoHandler.Search)

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("", videoHandler.Publish)
			videosAuth.GET("/:id", videoHandler.GetDetail)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", commentHandler.List)

		commentsAuth := comments.Group("", middleware.AuthRequired())
		{
			commentsAuth.POST("/:videoId", commentHandler.Add)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", middleware.AuthRequired())
	{
		likes.POST("/video/:videoId", likeHandler.Toggle)
		likes.GET("/videos", likeHandler.ListLikedVideos)
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", middleware.AuthRequired())
	{
		subscriptions.POST("/:channelId", subscriptionHandler.Toggle)
		subscriptions.GET("/:channelId/subscribers", subscriptionHandler.ListSubscribers)
		subscriptions.GET("/channels", subscriptionHandler.ListSubscribedChannels)
	}

	// --- 创作者后台模块 ---
	dashboard := v1.Group("/dashboard", middleware.AuthRequired())
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/videos", dashboardHandler.GetVideos)
	}
}
