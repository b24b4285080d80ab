package registrations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mixmasters/content"
	"mixmasters/db"
	"mixmasters/mailer"
	"mixmasters/media"
	"mixmasters/structs"
	"mixmasters/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create admits a public sign-up: validate the payload, require a live
// ("Active") event, reject duplicates, persist, then notify by email. The
// registration stands even when every email fails.
func Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	payload := sanitizePayload(body)
	if payload.EventID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "eventId is required")
		return
	}
	if payload.FullName == "" || payload.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "fullName and email are required")
		return
	}

	doc, err := content.Read(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	activeEvent := FindActiveEvent(doc.Events, payload.EventID)
	if activeEvent == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Selected event is not active")
		return
	}

	email := strings.ToLower(payload.Email)

	// No unique index backs this check; two identical submissions arriving
	// together can both pass it. Duplicates that slip through are handled by
	// admin review.
	var existing structs.Registration
	err = db.RegistrationsCollection.FindOne(r.Context(), bson.M{
		"email":   email,
		"eventId": payload.EventID,
	}).Decode(&existing)
	if err == nil {
		utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
			"message":        "You have already registered for this event.",
			"registrationId": existing.ID,
		})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check registration")
		return
	}

	registration := payload
	registration.ID = uuid.NewString()
	registration.Email = email
	registration.EventTitle = recStr(activeEvent, "title")
	registration.EventDate = recStr(activeEvent, "date")
	registration.EventLocation = recStr(activeEvent, "location")
	registration.EventStatus = recStr(activeEvent, "status")
	registration.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if _, err := db.RegistrationsCollection.InsertOne(r.Context(), registration); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save registration")
		return
	}

	sent := mailer.SendRegistrationEmails(registration)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"message":        "Registration submitted",
		"registrationId": registration.ID,
		"emailSent":      sent,
	})
}

// List returns all registrations, newest first.
func List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.RegistrationsCollection.Find(r.Context(), bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load registrations")
		return
	}
	defer cursor.Close(r.Context())

	var list []structs.Registration
	if err := cursor.All(r.Context(), &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse registrations")
		return
	}
	if list == nil {
		list = []structs.Registration{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// Delete removes a registration and, best-effort, the demo file it uploaded.
func Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var removed structs.Registration
	err := db.RegistrationsCollection.FindOneAndDelete(r.Context(), bson.M{"id": id}).Decode(&removed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Registration not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete registration")
		return
	}

	if removed.DemoFile != "" {
		media.ScheduleRemoval(removed.DemoFile)
	}
	w.WriteHeader(http.StatusNoContent)
}

// FindActiveEvent returns the event matching eventID whose status is
// case-insensitively "active", or nil.
func FindActiveEvent(events []any, eventID string) map[string]any {
	for _, item := range events {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if fmt.Sprint(rec["id"]) != eventID {
			continue
		}
		if strings.EqualFold(recStr(rec, "status"), "active") {
			return rec
		}
	}
	return nil
}

// sanitizePayload coerces the free-form submission into a registration:
// role collapses to "artist" unless exactly "patron", profile fields are
// trimmed strings, source defaults to "website".
func sanitizePayload(body map[string]any) structs.Registration {
	role := "artist"
	if s, _ := body["role"].(string); s == "patron" {
		role = "patron"
	}

	source := trimmed(body, "source")
	if source == "" {
		source = "website"
	}

	return structs.Registration{
		Role:        role,
		EventID:     stringish(body["eventId"]),
		FullName:    trimmed(body, "fullName"),
		Email:       trimmed(body, "email"),
		Nationality: trimmed(body, "nationality"),
		City:        trimmed(body, "city"),
		Age:         trimmed(body, "age"),
		StageName:   trimmed(body, "stageName"),
		Instagram:   trimmed(body, "instagram"),
		Experience:  trimmed(body, "experience"),
		SoundCloud:  trimmed(body, "soundCloud"),
		DemoFile:    trimmed(body, "demoFile"),
		Source:      source,
	}
}

func trimmed(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return strings.TrimSpace(s)
}

func stringish(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func recStr(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}
