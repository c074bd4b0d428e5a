package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"chirp/models"
	"chirp/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TweetController struct {
	db           *gorm.DB
	tweetService *services.TweetService
	hubService   *services.HubService
}

func NewTweetController(db *gorm.DB, storage services.MediaStorage, hubService *services.HubService) *TweetController {
	return &TweetController{
		db:           db,
		tweetService: services.NewTweetService(db, storage),
		hubService:   hubService,
	}
}

func (tc *TweetController) getUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	if id, ok := userID.(uint); ok {
		return id, true
	}
	return 0, false
}

// GetFeed returns one page of the public timeline, newest first. An
// unparseable or out-of-range page number clamps to the nearest valid
// page instead of failing.
func (tc *TweetController) GetFeed(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	feed, err := tc.tweetService.GetFeed(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": feed})
}

func (tc *TweetController) GetTweet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tweet ID"})
		return
	}

	tweet, err := tc.tweetService.GetByID(uint(id))
	if err != nil {
		tc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tweet})
}

// CreateTweet posts a new tweet for the authenticated user. The body is
// multipart form data: a "text" field and an optional "image" file.
func (tc *TweetController) CreateTweet(c *gin.Context) {
	userID, exists := tc.getUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateTweetRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	tweet, err := tc.tweetService.Create(userID, req.Text, image)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	tc.hubService.BroadcastFeedEvent("tweet_created", tweet)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tweet posted successfully",
		"data":    tweet,
	})
}

// UpdateTweet edits a tweet's text and/or image. Omitted fields keep
// their current values. Only the author may edit.
func (tc *TweetController) UpdateTweet(c *gin.Context) {
	userID, exists := tc.getUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tweet ID"})
		return
	}

	var req models.UpdateTweetRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	tweet, err := tc.tweetService.Update(uint(id), userID, req.Text, image)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	tc.hubService.BroadcastFeedEvent("tweet_updated", tweet)

	c.JSON(http.StatusOK, gin.H{
		"message": "Tweet updated successfully",
		"data":    tweet,
	})
}

// DeleteTweet permanently removes a tweet. Only the author may delete.
func (tc *TweetController) DeleteTweet(c *gin.Context) {
	userID, exists := tc.getUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tweet ID"})
		return
	}

	if err := tc.tweetService.Delete(uint(id), userID); err != nil {
		tc.respondError(c, err)
		return
	}

	tc.hubService.BroadcastFeedEvent("tweet_deleted", gin.H{"id": uint(id)})

	c.JSON(http.StatusOK, gin.H{"message": "Tweet deleted successfully"})
}

func (tc *TweetController) respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, services.ErrTweetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
	case errors.Is(err, services.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own tweets"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
