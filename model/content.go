/*
Package model holds the canonical in-memory shape of every business object.

PURPOSE:
  Two entity families share one storage contract but never reference each
  other:
  - Content (content.go): Quran surahs and verses, hadith, courses, community
    topics and discussions, users, prayer times. Read heavy, seeded once.
  - Organization (org.go): departments, positions, employees and everything
    hanging off an employee (attendance, leave, payroll, reviews, training,
    recruitment). Mutable and relationship heavy.

  Types are pure data. Struct tags carry the JSON wire names used by the
  browser client and the `validate` rules enforced by the storage layer.

IDENTITY:
  ID fields are surrogate keys assigned by the storage adapter on create.
  Natural keys (Surah.Number, Employee.EmployeeID, User.Username) are separate.

SEE ALSO:
  - views.go: Denormalized read shapes and aggregates
  - ../storage: The contract that reads and writes these types
*/
package model

import "time"

// =============================================================================
// QURAN
// =============================================================================

type RevelationType string

const (
	RevelationMeccan  RevelationType = "Meccan"
	RevelationMedinan RevelationType = "Medinan"
)

// Surah is a chapter of the Quran. Number is the stable 1..114 ordinal.
type Surah struct {
	ID                     int64          `json:"id"`
	Number                 int            `json:"number" validate:"min=1,max=114"`
	Name                   string         `json:"name" validate:"required"`
	EnglishName            string         `json:"englishName" validate:"required"`
	EnglishNameTranslation string         `json:"englishNameTranslation"`
	RevelationType         RevelationType `json:"revelationType" validate:"omitempty,oneof=Meccan Medinan"`
	VersesCount            int            `json:"versesCount" validate:"min=1"`
}

// Verse belongs to exactly one surah; (SurahID, Number) is unique.
type Verse struct {
	ID          int64   `json:"id"`
	SurahID     int64   `json:"surahId" validate:"gt=0"`
	Number      int     `json:"number" validate:"min=1"`
	Text        string  `json:"text" validate:"required"`
	Translation string  `json:"translation"`
	AudioURL    *string `json:"audioUrl,omitempty" validate:"omitempty,url"`
}

// =============================================================================
// HADITH
// =============================================================================

type HadithCollection struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required"`
	EnglishName  string `json:"englishName" validate:"required"`
	Description  string `json:"description"`
	TotalHadiths int    `json:"totalHadiths" validate:"min=0"`
}

type Hadith struct {
	ID           int64   `json:"id"`
	CollectionID int64   `json:"collectionId" validate:"gt=0"`
	Number       int     `json:"number" validate:"min=1"`
	Text         string  `json:"text" validate:"required"`
	Translation  string  `json:"translation"`
	Chapter      *string `json:"chapter,omitempty"`
	Grade        *string `json:"grade,omitempty"`
}

// =============================================================================
// COURSES
// =============================================================================

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
	LevelAll          CourseLevel = "all_levels"
)

type Course struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title" validate:"required"`
	Description  string      `json:"description"`
	Level        CourseLevel `json:"level" validate:"oneof=beginner intermediate advanced all_levels"`
	Duration     string      `json:"duration"`
	ImageURL     *string     `json:"imageUrl,omitempty"`
	InstructorID int64       `json:"instructorId" validate:"gt=0"`
	Rating       *Rating     `json:"rating,omitempty" validate:"omitempty,min=0,max=50"`
	ReviewCount  *int        `json:"reviewCount,omitempty" validate:"omitempty,min=0"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// =============================================================================
// COMMUNITY
// =============================================================================

type Topic struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	PostsCount  int     `json:"postsCount" validate:"min=0"`
}

type DiscussionStatus string

const (
	DiscussionAnswered  DiscussionStatus = "answered"
	DiscussionOpen      DiscussionStatus = "discussion"
	DiscussionKnowledge DiscussionStatus = "knowledge"
)

type Discussion struct {
	ID            int64            `json:"id"`
	TopicID       int64            `json:"topicId" validate:"gt=0"`
	UserID        int64            `json:"userId" validate:"gt=0"`
	Title         string           `json:"title" validate:"required"`
	Content       string           `json:"content" validate:"required"`
	Status        DiscussionStatus `json:"status" validate:"oneof=answered discussion knowledge"`
	CommentsCount int              `json:"commentsCount"`
	ViewsCount    int              `json:"viewsCount"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// User is a portal account. Password holds a hash and never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required,max=64"`
	Password     string    `json:"-" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	FullName     *string   `json:"fullName,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PrayerTime is keyed by (Date, Location). Times are local "HH:MM" strings.
type PrayerTime struct {
	ID       int64  `json:"id"`
	Date     Date   `json:"date" validate:"required"`
	Location string `json:"location" validate:"required"`
	Fajr     string `json:"fajr" validate:"required"`
	Dhuhr    string `json:"dhuhr" validate:"required"`
	Asr      string `json:"asr" validate:"required"`
	Maghrib  string `json:"maghrib" validate:"required"`
	Isha     string `json:"isha" validate:"required"`
}
