package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/handler"
	"github.com/memonote/memonote-backend/internal/middleware"
	"github.com/memonote/memonote-backend/pkg/jwt"
)

// Handlers groups everything Setup wires into the router
type Handlers struct {
	Auth      *handler.AuthHandler
	Memo      *handler.MemoHandler
	Comment   *handler.CommentHandler
	Relation  *handler.RelationHandler
	Tag       *handler.TagHandler
	User      *handler.UserHandler
	DevToken  *handler.DevTokenHandler
	Feed      *handler.FeedHandler
	SysConfig *handler.SysConfigHandler
}

// Setup registers all API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	router.GET("/rss", h.Feed.RSS)

	api := router.Group("/api/v1")

	// Public endpoints; a valid token still resolves the viewer.
	public := api.Group("")
	public.Use(middleware.OptionalJWTAuth(jwtManager))
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)
		public.POST("/auth/refresh", h.Auth.Refresh)

		public.GET("/memos", h.Memo.List)
		public.GET("/memos/:id", h.Memo.Get)

		public.GET("/comments", h.Comment.List)
		public.POST("/comments", h.Comment.Add)
	}

	// Authenticated endpoints
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtManager))
	{
		authed.POST("/memos", h.Memo.Create)
		authed.PUT("/memos/:id", h.Memo.Update)
		authed.DELETE("/memos/:id", h.Memo.Delete)
		authed.POST("/memos/:id/archive", h.Memo.Archive)
		authed.POST("/memos/:id/restore", h.Memo.Restore)
		authed.POST("/relations", h.Relation.Update)

		authed.DELETE("/comments/:id", h.Comment.Delete)

		authed.GET("/tags", h.Tag.List)
		authed.POST("/tags/rename", h.Tag.Rename)
		authed.DELETE("/tags/:name", h.Tag.Delete)

		authed.GET("/users/me", h.Auth.Profile)
		authed.PATCH("/users/me", h.Auth.UpdateProfile)
		authed.POST("/users/me/password", h.Auth.ChangePassword)
		authed.GET("/users/me/statistics", h.User.Statistics)
		authed.GET("/users/me/statistics/daily", h.User.Heatmap)
		authed.POST("/users/me/mentions/read", h.User.MarkMentionedRead)

		authed.GET("/users/me/token", h.DevToken.Get)
		authed.POST("/users/me/token/enable", h.DevToken.Enable)
		authed.POST("/users/me/token/reset", h.DevToken.Reset)
		authed.POST("/users/me/token/disable", h.DevToken.Disable)
	}

	// Admin endpoints
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(jwtManager), middleware.AdminOnly())
	{
		admin.POST("/comments/:id/approve", h.Comment.Approve)
		admin.POST("/memos/:id/approve-comments", h.Comment.ApproveByMemo)
		admin.GET("/sys-config", h.SysConfig.List)
		admin.PUT("/sys-config", h.SysConfig.Set)
	}
}
