package repository

import (
	"time"

	"alumni_portal_service/internal/gallery/domain"

	"gorm.io/gorm"
)

// GalleryRepository definition gallery store
type GalleryRepository interface {
	AutoMigrate() error
	Create(item *domain.GalleryItem) error
	GetByID(id uint) (*domain.GalleryItem, error)
	Delete(id uint) error
	ListViews(viewerID string) ([]domain.ItemView, error)
	ReplaceReaction(itemID uint, memberID, reactionType string) error
	RemoveReaction(itemID uint, memberID string) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository create GalleryRepository
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

// AutoMigrate 根據模型建表
func (r *galleryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.GalleryItem{}, &domain.GalleryReaction{})
}

func (r *galleryRepository) Create(item *domain.GalleryItem) error {
	return r.db.Create(item).Error
}

func (r *galleryRepository) GetByID(id uint) (*domain.GalleryItem, error) {
	var item domain.GalleryItem
	if err := r.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.GalleryReaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.GalleryItem{}, id).Error
	})
}

type itemRow struct {
	ID        uint
	Title     string
	MediaURL  string
	MediaType string
	CreatedAt time.Time
	MemberID  string
	FirstName string
	LastName  string
	AvatarURL *string
}

type reactionRow struct {
	ItemID   uint
	Type     string
	Count    int
	MemberID string
}

// ListViews 相簿牆：項目+上傳者、反應統計各一次查詢後組裝
func (r *galleryRepository) ListViews(viewerID string) ([]domain.ItemView, error) {
	var items []itemRow
	if err := r.db.Table("gallery_item").
		Select("gallery_item.id, gallery_item.title, gallery_item.media_url, gallery_item.media_type, gallery_item.created_at, member.member_id, member.first_name, member.last_name, member.avatar_url").
		Joins("JOIN member ON member.member_id = gallery_item.uploader_id").
		Order("gallery_item.created_at DESC, gallery_item.id DESC").
		Scan(&items).Error; err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return []domain.ItemView{}, nil
	}

	itemIDs := make([]uint, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	var reactions []reactionRow
	if err := r.db.Table("gallery_reaction").
		Select("item_id, type, COUNT(*) AS count, MAX(CASE WHEN member_id = ? THEN member_id ELSE '' END) AS member_id", viewerID).
		Where("item_id IN ?", itemIDs).
		Group("item_id, type").
		Scan(&reactions).Error; err != nil {
		return nil, err
	}

	reactionsByItem := map[uint][]domain.ReactionSummary{}
	for _, row := range reactions {
		reactionsByItem[row.ItemID] = append(reactionsByItem[row.ItemID], domain.ReactionSummary{
			Type:    row.Type,
			Count:   row.Count,
			Reacted: row.MemberID == viewerID,
		})
	}

	views := make([]domain.ItemView, 0, len(items))
	for _, item := range items {
		view := domain.ItemView{
			ID:        item.ID,
			Title:     item.Title,
			MediaURL:  item.MediaURL,
			MediaType: item.MediaType,
			CreatedAt: item.CreatedAt,
			Uploader: domain.Uploader{
				MemberID:  item.MemberID,
				FirstName: item.FirstName,
				LastName:  item.LastName,
				AvatarURL: item.AvatarURL,
			},
			Reactions: reactionsByItem[item.ID],
		}
		if view.Reactions == nil {
			view.Reactions = []domain.ReactionSummary{}
		}
		views = append(views, view)
	}
	return views, nil
}

// ReplaceReaction 同一人對同一項目只留一個反應，先刪後插
func (r *galleryRepository) ReplaceReaction(itemID uint, memberID, reactionType string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ? AND member_id = ?", itemID, memberID).
			Delete(&domain.GalleryReaction{}).Error; err != nil {
			return err
		}
		return tx.Create(&domain.GalleryReaction{
			ItemID:   itemID,
			MemberID: memberID,
			Type:     reactionType,
		}).Error
	})
}

func (r *galleryRepository) RemoveReaction(itemID uint, memberID string) error {
	return r.db.Where("item_id = ? AND member_id = ?", itemID, memberID).
		Delete(&domain.GalleryReaction{}).Error
}
