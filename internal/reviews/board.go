package reviews

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

const (
	DefaultRating = 5
	MaxRating     = 5

	TagRoyal  = "Royal Review"
	TagValued = "Valued Guest"
)

var validate = validator.New()

// Review is a guest testimonial as shown on the storefront.
type Review struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission is a new review. A zero Rating means DefaultRating.
type Submission struct {
	Name    string `validate:"required,max=60"`
	Rating  int    `validate:"gte=0,lte=5"`
	Comment string `validate:"required,max=500"`
}

// Summary is the headline figure above the review list.
type Summary struct {
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// Board keeps reviews newest first. Reviews live only as long as the process.
type Board struct {
	mu      sync.RWMutex
	reviews []Review
	now     func() time.Time
}

func NewBoard(seed []Review) *Board {
	b := &Board{now: time.Now}
	b.reviews = append(b.reviews, seed...)
	return b
}

// Default seeds the board with the storefront's launch testimonials.
func Default() *Board {
	now := time.Now().UTC()
	return NewBoard([]Review{
		{ID: uuid.New(), Name: "Ali Ahmed", Rating: 5, Comment: "The Royal Platter was out of this world! Best meat in town.", Tag: "Must Try", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: uuid.New(), Name: "Sana Khan", Rating: 4, Comment: "Amazing truffle burger, but delivery was 5 mins late. Still 5 stars for taste!", Tag: "Foodie", CreatedAt: now.Add(-7 * 24 * time.Hour)},
		{ID: uuid.New(), Name: "Hamza Malik", Rating: 5, Comment: "Authentic royal vibes. The saffron milk cake is a masterpiece.", Tag: "Sweet Tooth", CreatedAt: now.Add(-72 * time.Hour)},
	})
}

// List returns every review, newest submission first.
func (b *Board) List() []Review {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Review{}, b.reviews...)
}

// Summary averages every rating to one decimal place.
func (b *Board) Summary() Summary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.reviews) == 0 {
		return Summary{Average: decimal.Zero}
	}
	var total int64
	for _, r := range b.reviews {
		total += int64(r.Rating)
	}
	avg := decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(len(b.reviews)))).Round(1)
	return Summary{Average: avg, Count: len(b.reviews)}
}

// Submit validates and prepends a review. Five star reviews are tagged as
// royal, the rest as valued guests.
func (b *Board) Submit(ctx context.Context, in Submission) (Review, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validate.Struct(in); err != nil {
		return Review{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "name and comment are required, rating must be 1 to 5")
	}
	if in.Rating == 0 {
		in.Rating = DefaultRating
	}

	tag := TagValued
	if in.Rating == MaxRating {
		tag = TagRoyal
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	review := Review{
		ID:        uuid.New(),
		Name:      in.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Tag:       tag,
		CreatedAt: b.now().UTC(),
	}
	b.reviews = append([]Review{review}, b.reviews...)
	return review, nil
}
