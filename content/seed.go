package content

import (
	"context"
	"errors"
	"time"

	"mixmasters/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureContent creates the singleton document on first boot. The example
// events/judges/gallery and the FAQ text are seeded only when the document is
// first inserted: an admin who later clears a section must not see the seeds
// come back on restart.
func EnsureContent(ctx context.Context) error {
	err := db.ContentCollection.FindOne(ctx, bson.M{"_id": DocID}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	doc := DefaultContent()
	doc.FAQ = faqSeed()
	doc.Events = eventSeed()
	doc.Judges = judgeSeed()
	doc.Gallery = gallerySeed()

	now := time.Now().UTC()
	fields := fieldSet(doc, now)
	fields["_id"] = DocID
	fields["createdAt"] = now

	_, err = db.ContentCollection.InsertOne(ctx, fields)
	if mongo.IsDuplicateKeyError(err) {
		// Another instance created and seeded the document first.
		return nil
	}
	return err
}

func faqSeed() []any {
	return []any{
		map[string]any{
			"q": "When is the competition held?",
			"a": "The Mix Masters Club DJ Competition will be held on 22 May 2026.",
		},
		map[string]any{
			"q": "Where is the competition taking place?",
			"a": "The event will be hosted at HardRock Cafe, Singapore.",
		},
		map[string]any{
			"q": "What is Mix Masters Club?",
			"a": "Mix Masters Club is a one-time global DJ competition, bringing together DJs from different countries to compete live on one stage. This is not a recurring tournament or league; it is a single, high-impact showcase focused on DJ skill, creativity, and crowd control.",
		},
		map[string]any{
			"q": "Is this an international competition?",
			"a": "Yes. DJs participating in Mix Masters Club represent countries including Canada, the United States, Europe, Australia, India, Malaysia, Sri Lanka, and more.",
		},
		map[string]any{
			"q": "What are the prizes?",
			"a": "A total prize pool of up to SGD 20,000 will be given out. Full details will be announced soon.",
		},
		map[string]any{
			"q": "How are DJs judged?",
			"a": "DJs are evaluated by a panel of experienced industry professionals, including established DJs and music curators. Judging is based on technical skill, music selection, transitions and flow, creativity, and live crowd engagement. This is not a popularity or social media-based contest.",
		},
		map[string]any{
			"q": "Who can participate?",
			"a": "Participation is by application or invitation, subject to eligibility criteria set by the organisers. Full details will be announced soon.",
		},
		map[string]any{
			"q": "What music genres are allowed?",
			"a": "This is primarily a Tamil DJ battle. The competition focuses on DJ performance quality, not a single genre. DJs are encouraged to showcase their strongest musical identity while respecting the event guidelines.",
		},
		map[string]any{
			"q": "When will more details be released?",
			"a": "Details on competition format, judging criteria, and final DJ line-up will be announced closer to the event date via the official website and social channels.",
		},
	}
}

func eventSeed() []any {
	return []any{
		map[string]any{
			"id":          "mainsession-2026",
			"title":       "Main Event – Night Circuit",
			"slug":        "main-event-night-circuit",
			"date":        "2026-05-22",
			"location":    "Hard Rock Cafe, Singapore",
			"status":      "Active",
			"mediaType":   "video",
			"mediaUrl":    "https://cdn.coverr.co/videos/coverr-nightclub-neon-dj-performance-1578/1080p.mp4",
			"posterUrl":   "https://images.unsplash.com/photo-1522851457198-d820fd909c09?auto=format&fit=crop&q=80&w=1200",
			"image":       "https://images.unsplash.com/photo-1522851457198-d820fd909c09?auto=format&fit=crop&q=80&w=1200",
			"isMainEvent": true,
			"description": "The flagship mix battle, with DJs representing the global Tamil community.",
			"price":       "SGD 20,000 prize pool",
		},
		map[string]any{
			"id":          "afterglow-qualifier",
			"title":       "Afterglow Qualifier",
			"slug":        "afterglow-qualifier",
			"date":        "2026-05-19",
			"location":    "Singapore Arts Club",
			"status":      "Upcoming",
			"mediaType":   "image",
			"mediaUrl":    "https://images.unsplash.com/photo-1470229722913-7ea2d9863438?auto=format&fit=crop&q=80&w=1200",
			"posterUrl":   "https://images.unsplash.com/photo-1522851457198-d820fd909c09?auto=format&fit=crop&q=80&w=1200",
			"image":       "https://images.unsplash.com/photo-1522851457198-d820fd909c09?auto=format&fit=crop&q=80&w=1200",
			"isMainEvent": false,
			"description": "Qualify for the showcase with your most daring set.",
			"price":       "Early bird: SGD 35",
		},
	}
}

func judgeSeed() []any {
	return []any{
		map[string]any{
			"id":        "judge-arya",
			"name":      "Arya Patel",
			"title":     "Global Selector",
			"country":   "Singapore",
			"mediaType": "image",
			"mediaUrl":  "https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?auto=format&fit=crop&q=80&w=1200",
			"image":     "https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?auto=format&fit=crop&q=80&w=1200",
			"quote":     "Precision, grit, and crowd chemistry.",
		},
		map[string]any{
			"id":        "judge-samar",
			"name":      "Samar Iyer",
			"title":     "Bass Architect",
			"country":   "India",
			"mediaType": "image",
			"mediaUrl":  "https://images.unsplash.com/photo-1598387993441-a364f854c3e1?auto=format&fit=crop&q=80&w=1200",
			"image":     "https://images.unsplash.com/photo-1598387993441-a364f854c3e1?auto=format&fit=crop&q=80&w=1200",
			"quote":     "The best mixes tell a story and honor the room.",
		},
	}
}

func gallerySeed() []any {
	return []any{
		map[string]any{
			"id":           "gallery-electric",
			"type":         "video",
			"url":          "https://cdn.coverr.co/videos/coverr-dancing-crowd-at-a-music-festival-5149/1080p.mp4",
			"poster":       "https://images.unsplash.com/photo-1470229722913-7ea2d9863438?auto=format&fit=crop&q=80&w=1200",
			"instagramUrl": "https://instagram.com/mixmastersclub",
		},
		map[string]any{
			"id":           "gallery-light",
			"type":         "image",
			"url":          "https://images.unsplash.com/photo-1545128485-c400e7702796?auto=format&fit=crop&q=80&w=1200",
			"poster":       "",
			"instagramUrl": "https://instagram.com/mixmastersclub",
		},
	}
}
