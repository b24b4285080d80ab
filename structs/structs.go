package structs

import (
	"github.com/golang-jwt/jwt/v5"
)

// SiteSettings holds the fixed hero/about/vision fields of the content
// document. Anything a client sends outside these fields is dropped.
type SiteSettings struct {
	HeroVideoURL   string `json:"heroVideoUrl" bson:"heroVideoUrl"`
	HeroPosterURL  string `json:"heroPosterUrl" bson:"heroPosterUrl"`
	VisionImageURL string `json:"visionImageUrl" bson:"visionImageUrl"`
	AboutMediaType string `json:"aboutMediaType" bson:"aboutMediaType"`
	AboutMediaURL  string `json:"aboutMediaUrl" bson:"aboutMediaUrl"`
	AboutPosterURL string `json:"aboutPosterUrl" bson:"aboutPosterUrl"`
	VisionTitle    string `json:"visionTitle" bson:"visionTitle"`
	VisionSubtitle string `json:"visionSubtitle" bson:"visionSubtitle"`
	VisionQuote    string `json:"visionQuote" bson:"visionQuote"`
	VisionBody     string `json:"visionBody" bson:"visionBody"`
}

type Results struct {
	Heading  string `json:"heading" bson:"heading"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
	Items    []any  `json:"items" bson:"items"`
}

// ContentDoc is the singleton site content document. The list fields carry
// free-form records; only the "id" key of each record is contractual, so they
// stay untyped for wire compatibility with existing clients.
type ContentDoc struct {
	Settings SiteSettings `json:"settings" bson:"settings"`
	Events   []any        `json:"events" bson:"events"`
	Judges   []any        `json:"judges" bson:"judges"`
	Sponsors []any        `json:"sponsors" bson:"sponsors"`
	Gallery  []any        `json:"gallery" bson:"gallery"`
	FAQ      []any        `json:"faq" bson:"faq"`
	Formats  []any        `json:"formats" bson:"formats"`
	Results  Results      `json:"results" bson:"results"`
}

// Registration is a participant sign-up. Event fields are a denormalized
// snapshot of the referenced event taken at submission time.
type Registration struct {
	ID            string `json:"id" bson:"id"`
	Role          string `json:"role" bson:"role"`
	EventID       string `json:"eventId" bson:"eventId"`
	FullName      string `json:"fullName" bson:"fullName"`
	Email         string `json:"email" bson:"email"`
	Nationality   string `json:"nationality" bson:"nationality"`
	City          string `json:"city" bson:"city"`
	Age           string `json:"age" bson:"age"`
	StageName     string `json:"stageName" bson:"stageName"`
	Instagram     string `json:"instagram" bson:"instagram"`
	Experience    string `json:"experience" bson:"experience"`
	SoundCloud    string `json:"soundCloud" bson:"soundCloud"`
	DemoFile      string `json:"demoFile" bson:"demoFile"`
	Source        string `json:"source" bson:"source"`
	EventTitle    string `json:"eventTitle" bson:"eventTitle"`
	EventDate     string `json:"eventDate" bson:"eventDate"`
	EventLocation string `json:"eventLocation" bson:"eventLocation"`
	EventStatus   string `json:"eventStatus" bson:"eventStatus"`
	CreatedAt     string `json:"createdAt" bson:"createdAt"`
}

// JWT claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
