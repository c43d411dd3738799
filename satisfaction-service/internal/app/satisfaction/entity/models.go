package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultRole = "director"

// Review - один ответ на опрос удовлетворённости, после создания не изменяется
type Review struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	StoreID  int                `json:"storeId" bson:"storeId"`
	Score    float64            `json:"score" bson:"score"` // от 0 до 5 включительно
	Datetime time.Time          `json:"datetime" bson:"datetime"`
}

// User - учётная запись директора
// В Password всегда лежит bcrypt хэш, наружу он не сериализуется
type User struct {
	ID        string    `json:"id" bson:"-" gorm:"primaryKey;type:uuid"`
	Email     string    `json:"email" bson:"email" gorm:"column:email;not null;index"`
	Role      string    `json:"role" bson:"role" gorm:"column:role;not null"`
	Password  string    `json:"-" bson:"password" gorm:"column:password;not null"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

// ReportSummary - агрегат по отфильтрованным отзывам, нигде не хранится
type ReportSummary struct {
	AverageScore float64 `json:"averageScore"`
	Visitors     int     `json:"visitors"`
}

type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED
	ReviewID  string    `json:"review_id"`
	StoreID   int       `json:"store_id"`
	Score     float64   `json:"score"`
	Datetime  time.Time `json:"datetime"`
	Timestamp time.Time `json:"timestamp"`
}

type ReportDigestEvent struct {
	EventType    string    `json:"event_type"` // REPORT_DIGEST
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	AverageScore float64   `json:"average_score"`
	Visitors     int       `json:"visitors"`
	Timestamp    time.Time `json:"timestamp"`
}
