package services

import (
	"errors"
	"log"
	"mime/multipart"

	"fitness-club-backend/models"
	"fitness-club-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPostNotFound = errors.New("post not found")

// SocialService owns the feed. Likes and comments count as social
// interactions for the *author* of the post — receiving engagement is what
// progresses the social dimension, handing out likes is free.
type SocialService struct {
	DB          *gorm.DB
	store       ProgressionStore
	progression *ProgressionService
}

func NewSocialService(db *gorm.DB, store ProgressionStore, progression *ProgressionService) *SocialService {
	return &SocialService{DB: db, store: store, progression: progression}
}

// CreatePost publishes a feed post, uploading the optional photo to media
// storage first.
func (s *SocialService) CreatePost(userID, body string, photo *multipart.FileHeader) (*models.Post, error) {
	post := &models.Post{
		ID:     uuid.NewString(),
		UserID: userID,
		Body:   body,
	}

	if photo != nil {
		url, err := utils.StoreUpload(photo, "posts/"+post.ID)
		if err != nil {
			return nil, err
		}
		post.PhotoURL = &url
	}

	if err := s.DB.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Feed returns recent posts, newest first.
func (s *SocialService) Feed(page, size int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	var posts []models.Post
	err := s.DB.Order("created_at DESC").
		Limit(size).Offset((page - 1) * size).
		Find(&posts).Error
	return posts, err
}

// Like records a like once per (post, user) and credits the author's social
// counter on the first like only.
func (s *SocialService) Like(userID, postID string) error {
	var post models.Post
	if err := s.DB.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	like := models.PostLike{
		ID:     uuid.NewString(),
		PostID: postID,
		UserID: userID,
	}
	res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil // already liked, idempotent
	}

	s.DB.Model(&post).UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	s.creditAuthor(post.UserID, userID)
	return nil
}

// Comment adds a comment and credits the author's social counter.
func (s *SocialService) Comment(userID, postID, body string) (*models.Comment, error) {
	var post models.Post
	if err := s.DB.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		ID:     uuid.NewString(),
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := s.DB.Create(comment).Error; err != nil {
		return nil, err
	}

	s.DB.Model(&post).UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))
	s.creditAuthor(post.UserID, userID)
	return comment, nil
}

// Comments lists a post's comments, oldest first.
func (s *SocialService) Comments(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.DB.Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// creditAuthor bumps the author's social counter and awards social XP.
// Self-engagement doesn't count.
func (s *SocialService) creditAuthor(authorID, actorID string) {
	if authorID == actorID {
		return
	}
	if err := s.store.IncrementCounter(authorID, "social_interactions", 1); err != nil {
		log.Printf("⚠️ social counter not updated for %s: %v", authorID, err)
		return
	}
	if _, err := s.progression.RecordActivity(authorID, SocialXP, "social"); err != nil {
		log.Printf("⚠️ progression not recorded for social credit (user %s): %v", authorID, err)
	}
}
