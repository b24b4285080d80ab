package content

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSanitizeEmptyPayload(t *testing.T) {
	doc := Sanitize(map[string]any{})

	if doc.Settings.AboutMediaType != "video" {
		t.Errorf("aboutMediaType = %q, want video", doc.Settings.AboutMediaType)
	}
	for name, list := range map[string][]any{
		"events":   doc.Events,
		"judges":   doc.Judges,
		"sponsors": doc.Sponsors,
		"gallery":  doc.Gallery,
		"faq":      doc.FAQ,
		"formats":  doc.Formats,
	} {
		if list == nil || len(list) != 0 {
			t.Errorf("%s = %v, want empty list", name, list)
		}
	}
	if doc.Results.Items == nil || len(doc.Results.Items) != 0 {
		t.Errorf("results.items = %v, want empty list", doc.Results.Items)
	}
}

func TestSanitizeSevenKeysAlwaysPresent(t *testing.T) {
	doc := Sanitize(map[string]any{"events": []any{map[string]any{"id": "e1"}}})

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"settings", "events", "judges", "sponsors", "gallery", "faq", "formats", "results"} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
}

func TestSanitizeAboutMediaType(t *testing.T) {
	cases := map[any]string{
		"image":  "image",
		"video":  "video",
		"banner": "video",
		nil:      "video",
		42:       "video",
	}
	for in, want := range cases {
		doc := Sanitize(map[string]any{"settings": map[string]any{"aboutMediaType": in}})
		if got := doc.Settings.AboutMediaType; got != want {
			t.Errorf("aboutMediaType(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeSettingsPassthrough(t *testing.T) {
	doc := Sanitize(map[string]any{"settings": map[string]any{
		"heroVideoUrl": "/uploads/hero.mp4",
		"visionTitle":  "The Vision",
		"bogusField":   "dropped",
	}})

	if doc.Settings.HeroVideoURL != "/uploads/hero.mp4" {
		t.Errorf("heroVideoUrl = %q", doc.Settings.HeroVideoURL)
	}
	if doc.Settings.VisionTitle != "The Vision" {
		t.Errorf("visionTitle = %q", doc.Settings.VisionTitle)
	}
	if doc.Settings.HeroPosterURL != "" {
		t.Errorf("heroPosterUrl = %q, want empty default", doc.Settings.HeroPosterURL)
	}
}

func TestSanitizeListCoercion(t *testing.T) {
	doc := Sanitize(map[string]any{
		"events": "not a list",
		"judges": map[string]any{"id": "j1"},
		"faq":    []any{map[string]any{"q": "Q", "a": "A"}},
	})

	if len(doc.Events) != 0 {
		t.Errorf("events = %v, want empty after coercion", doc.Events)
	}
	if len(doc.Judges) != 0 {
		t.Errorf("judges = %v, want empty after coercion", doc.Judges)
	}
	if len(doc.FAQ) != 1 {
		t.Fatalf("faq = %v, want one record", doc.FAQ)
	}
}

func TestSanitizeResults(t *testing.T) {
	doc := Sanitize(map[string]any{"results": map[string]any{
		"heading": "Winners",
		"items":   "nope",
	}})
	if doc.Results.Heading != "Winners" || doc.Results.Subtitle != "" {
		t.Errorf("results = %+v", doc.Results)
	}
	if len(doc.Results.Items) != 0 {
		t.Errorf("results.items = %v, want empty", doc.Results.Items)
	}

	doc = Sanitize(map[string]any{"results": "nope"})
	if doc.Results.Items == nil {
		t.Error("non-object results should fall back to defaults")
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	payload := map[string]any{
		"settings": map[string]any{"heroVideoUrl": "/uploads/a.mp4", "aboutMediaType": "image"},
		"events":   []any{map[string]any{"id": "e1", "title": "Night Circuit", "isMainEvent": true}},
		"results":  map[string]any{"heading": "H", "items": []any{map[string]any{"place": "1st"}}},
	}

	first := Sanitize(payload)

	raw, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(raw, &roundTrip); err != nil {
		t.Fatal(err)
	}
	second := Sanitize(roundTrip)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("sanitize not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestSanitizeBSONShapes(t *testing.T) {
	// Mongo hands back bson.D documents and primitive.A arrays.
	doc := Sanitize(bson.M{
		"settings": bson.D{{Key: "heroVideoUrl", Value: "/uploads/h.mp4"}},
		"events": primitive.A{
			bson.D{{Key: "id", Value: "e1"}, {Key: "tags", Value: primitive.A{"tamil", "battle"}}},
		},
	})

	if doc.Settings.HeroVideoURL != "/uploads/h.mp4" {
		t.Errorf("heroVideoUrl = %q", doc.Settings.HeroVideoURL)
	}
	rec, ok := doc.Events[0].(map[string]any)
	if !ok {
		t.Fatalf("event record is %T, want map", doc.Events[0])
	}
	if rec["id"] != "e1" {
		t.Errorf("id = %v", rec["id"])
	}
	tags, ok := rec["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v (%T), want normalized slice", rec["tags"], rec["tags"])
	}
}

func TestPickMainEvent(t *testing.T) {
	first := map[string]any{"id": "a", "isMainEvent": false}
	flagged := map[string]any{"id": "b", "isMainEvent": true}
	alsoFlagged := map[string]any{"id": "c", "isMainEvent": true}

	if got := PickMainEvent([]any{first, flagged, alsoFlagged}); !reflect.DeepEqual(got, flagged) {
		t.Errorf("PickMainEvent = %v, want first flagged event", got)
	}
	if got := PickMainEvent([]any{first}); !reflect.DeepEqual(got, first) {
		t.Errorf("PickMainEvent fallback = %v, want first event", got)
	}
	if got := PickMainEvent(nil); got != nil {
		t.Errorf("PickMainEvent(nil) = %v, want nil", got)
	}
}

func TestSeedShapes(t *testing.T) {
	if n := len(faqSeed()); n != 9 {
		t.Errorf("faq seed has %d entries, want 9", n)
	}
	events := eventSeed()
	if len(events) != 2 {
		t.Fatalf("event seed has %d entries, want 2", len(events))
	}
	main, ok := events[0].(map[string]any)
	if !ok || main["isMainEvent"] != true || main["status"] != "Active" {
		t.Errorf("first seed event should be the active main event: %v", events[0])
	}
	if len(judgeSeed()) != 2 || len(gallerySeed()) != 2 {
		t.Error("judge and gallery seeds should have 2 entries each")
	}
}
