package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	commentControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/comment"
	"github.com/202320020818/Fruit-and-sweets-1/middleware"
)

func SetupCommentRoutes(r *gin.Engine, db *gorm.DB) {
	comment := r.Group("/api/comment")
	comment.Use(middleware.ValidateToken)
	{
		comment.POST("/create", commentControllers.CreateComment(db))
		comment.GET("/post/:postId", commentControllers.GetPostComments(db))
		comment.PUT("/like/:id", commentControllers.LikeComment(db))
		comment.DELETE("/:id", commentControllers.DeleteComment(db))
	}
}
