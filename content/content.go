package content

import (
	"context"
	"errors"
	"time"

	"mixmasters/db"
	"mixmasters/rdx"
	"mixmasters/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocID is the _id of the singleton content document.
const DocID = "site_content_v1"

const publicCacheKey = "content:public"

func DefaultContent() structs.ContentDoc {
	return structs.ContentDoc{
		Settings: structs.SiteSettings{AboutMediaType: "video"},
		Events:   []any{},
		Judges:   []any{},
		Sponsors: []any{},
		Gallery:  []any{},
		FAQ:      []any{},
		Formats:  []any{},
		Results:  structs.Results{Items: []any{}},
	}
}

// Sanitize normalizes an arbitrary payload (JSON body or raw Mongo document)
// into the canonical content shape. Settings string fields default to "",
// aboutMediaType collapses to "image" only when it is exactly that, list
// fields must be arrays or are replaced wholesale with empty ones, and any
// unrecognized top-level key is dropped.
func Sanitize(payload map[string]any) structs.ContentDoc {
	doc := DefaultContent()

	if settings, ok := asMap(payload["settings"]); ok {
		doc.Settings = structs.SiteSettings{
			HeroVideoURL:   str(settings["heroVideoUrl"]),
			HeroPosterURL:  str(settings["heroPosterUrl"]),
			VisionImageURL: str(settings["visionImageUrl"]),
			AboutMediaType: aboutMediaType(settings["aboutMediaType"]),
			AboutMediaURL:  str(settings["aboutMediaUrl"]),
			AboutPosterURL: str(settings["aboutPosterUrl"]),
			VisionTitle:    str(settings["visionTitle"]),
			VisionSubtitle: str(settings["visionSubtitle"]),
			VisionQuote:    str(settings["visionQuote"]),
			VisionBody:     str(settings["visionBody"]),
		}
	}

	doc.Events = listOr(payload["events"])
	doc.Judges = listOr(payload["judges"])
	doc.Sponsors = listOr(payload["sponsors"])
	doc.Gallery = listOr(payload["gallery"])
	doc.FAQ = listOr(payload["faq"])
	doc.Formats = listOr(payload["formats"])

	if results, ok := asMap(payload["results"]); ok {
		doc.Results = structs.Results{
			Heading:  str(results["heading"]),
			Subtitle: str(results["subtitle"]),
			Items:    listOr(results["items"]),
		}
	}

	return doc
}

// Read returns the sanitized singleton document, or the defaults when it does
// not exist yet.
func Read(ctx context.Context) (structs.ContentDoc, error) {
	var raw bson.M
	err := db.ContentCollection.FindOne(ctx, bson.M{"_id": DocID}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return DefaultContent(), nil
		}
		return structs.ContentDoc{}, err
	}
	return Sanitize(raw), nil
}

// WriteDoc replaces the full document. There is no field-level update path:
// every caller supplies the complete sanitized content, and concurrent
// writers race read-modify-write with last-write-wins.
func WriteDoc(ctx context.Context, doc structs.ContentDoc) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set":         fieldSet(doc, now),
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := db.ContentCollection.UpdateOne(ctx, bson.M{"_id": DocID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	_ = rdx.RdxDel(publicCacheKey)
	return nil
}

func fieldSet(doc structs.ContentDoc, now time.Time) bson.M {
	return bson.M{
		"settings":  doc.Settings,
		"events":    doc.Events,
		"judges":    doc.Judges,
		"sponsors":  doc.Sponsors,
		"gallery":   doc.Gallery,
		"faq":       doc.FAQ,
		"formats":   doc.Formats,
		"results":   doc.Results,
		"updatedAt": now,
	}
}

// PickMainEvent returns the event flagged for the homepage hero, falling back
// to the first event. First match wins when more than one is flagged.
func PickMainEvent(events []any) any {
	for _, item := range events {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if flagged, _ := rec["isMainEvent"].(bool); flagged {
			return rec
		}
	}
	if len(events) > 0 {
		return events[0]
	}
	return nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func aboutMediaType(v any) string {
	if str(v) == "image" {
		return "image"
	}
	return "video"
}

// asMap and asList accept both decoded-JSON and decoded-BSON shapes; the
// Mongo driver hands back bson.D documents and primitive.A arrays inside an
// interface value.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case bson.M:
		return m, true
	case bson.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case primitive.A:
		return l, true
	}
	return nil, false
}

func listOr(v any) []any {
	list, ok := asList(v)
	if !ok {
		return []any{}
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i] = normalize(item)
	}
	return out
}

// normalize rewrites BSON container types into plain maps and slices so list
// records always marshal as JSON objects.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
