package commentControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/models"
)

type CreateCommentInput struct {
	PostID  string `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// POST /api/comment/create
func CreateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CreateCommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "error": err.Error()})
			return
		}

		comment := models.Comment{
			PostID:  input.PostID,
			UserID:  userID,
			Content: input.Content,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating comment", "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Comment created successfully", "data": comment})
	}
}

// GET /api/comment/post/:postId
func GetPostComments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID := c.Param("postId")
		if postID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "postId is required"})
			return
		}

		var comments []models.Comment
		if err := db.Where("post_id = ?", postID).
			Preload("Likes").
			Order("created_at DESC").
			Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching comments", "error": err.Error()})
			return
		}
		if comments == nil {
			comments = []models.Comment{}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
	}
}

// PUT /api/comment/like/:id
// Toggles the caller's like and keeps the counter in step.
func LikeComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid comment ID format"})
			return
		}

		var comment models.Comment
		if err := db.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Comment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching comment", "error": err.Error()})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var like models.CommentLike
			findErr := tx.Where("comment_id = ? AND user_id = ?", comment.ID, userID).First(&like).Error
			switch {
			case findErr == nil:
				if err := tx.Delete(&like).Error; err != nil {
					return err
				}
				return tx.Model(&comment).Update("number_of_likes", gorm.Expr("number_of_likes - 1")).Error
			case errors.Is(findErr, gorm.ErrRecordNotFound):
				if err := tx.Create(&models.CommentLike{CommentID: comment.ID, UserID: userID}).Error; err != nil {
					return err
				}
				return tx.Model(&comment).Update("number_of_likes", gorm.Expr("number_of_likes + 1")).Error
			default:
				return findErr
			}
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating like", "error": err.Error()})
			return
		}

		if err := db.Preload("Likes").First(&comment, comment.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching comment", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": comment})
	}
}

// DELETE /api/comment/:id
// Only the author can remove their comment here; admins go through the
// dashboard routes with the API key.
func DeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid comment ID format"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Comment{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting comment", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Comment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted successfully"})
	}
}

// GET /admin/comments
func GetAllComments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comments []models.Comment
		if err := db.Preload("Likes").Order("created_at DESC").Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching comments", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
	}
}

// DELETE /admin/comments/:id
func AdminDeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid comment ID format"})
			return
		}

		result := db.Delete(&models.Comment{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting comment", "error": result.Error.Error()})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Comment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted successfully"})
	}
}
