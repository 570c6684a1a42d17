package models

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

type Review struct {
	Base
	Author   string       `gorm:"size:100;not null" json:"author"`
	Rating   int          `gorm:"not null" json:"rating"`
	Comment  string       `gorm:"size:2000;not null" json:"comment"`
	Source   string       `gorm:"size:30;not null;index" json:"source"` // website, google, tripadvisor, yelp
	Date     string       `gorm:"size:10" json:"date"`
	Status   ReviewStatus `gorm:"size:20;not null;index" json:"status"`
	Featured bool         `gorm:"not null;default:false" json:"featured"`
	Response string       `gorm:"size:2000" json:"response"` // reply shown under the review
}
