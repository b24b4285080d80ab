package resources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mixmasters/content"
	"mixmasters/media"
	"mixmasters/structs"
	"mixmasters/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Keys is the fixed allow-list of named sub-collections exposed via generic
// CRUD. Routes are registered per key, so anything else 404s at the router.
var Keys = []string{"events", "judges", "sponsors", "gallery", "faq", "formats"}

func listRef(doc *structs.ContentDoc, resource string) *[]any {
	switch resource {
	case "events":
		return &doc.Events
	case "judges":
		return &doc.Judges
	case "sponsors":
		return &doc.Sponsors
	case "gallery":
		return &doc.Gallery
	case "faq":
		return &doc.FAQ
	case "formats":
		return &doc.Formats
	}
	return nil
}

func List(resource string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		doc, err := content.Read(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, *listRef(&doc, resource))
	}
}

func Create(resource string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		doc, err := content.Read(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
			return
		}

		record := NewRecord(body)
		ref := listRef(&doc, resource)
		*ref = append(*ref, record)

		if err := content.WriteDoc(r.Context(), doc); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save record")
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, record)
	}
}

func Update(resource string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")
		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		doc, err := content.Read(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
			return
		}

		ref := listRef(&doc, resource)
		idx, existing := FindByID(*ref, id)
		if idx < 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Record not found")
			return
		}

		if stale := StaleMediaURLs(existing, body); len(stale) > 0 {
			media.ScheduleRemoval(stale...)
		}

		merged := MergeRecord(existing, body)
		(*ref)[idx] = merged

		if err := content.WriteDoc(r.Context(), doc); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save record")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, merged)
	}
}

func Delete(resource string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := ps.ByName("id")

		doc, err := content.Read(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
			return
		}

		ref := listRef(&doc, resource)
		next, removed := RemoveByID(*ref, id)
		if removed == nil {
			utils.RespondWithError(w, http.StatusNotFound, "Record not found")
			return
		}
		*ref = next

		if err := content.WriteDoc(r.Context(), doc); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete record")
			return
		}

		media.ScheduleRecordCleanup(removed)
		w.WriteHeader(http.StatusNoContent)
	}
}

// NewRecord copies the caller's fields and forces a fresh generated id.
func NewRecord(body map[string]any) map[string]any {
	record := make(map[string]any, len(body)+1)
	for k, v := range body {
		record[k] = v
	}
	record["id"] = uuid.NewString()
	return record
}

// FindByID returns the first list element whose id matches, by string
// comparison. Index -1 when absent.
func FindByID(list []any, id string) (int, map[string]any) {
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if fmt.Sprint(rec["id"]) == id {
			return i, rec
		}
	}
	return -1, nil
}

// MergeRecord shallow-merges patch over existing; the original id always
// survives.
func MergeRecord(existing, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(patch))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	merged["id"] = existing["id"]
	return merged
}

// RemoveByID drops the first matching element, returning the shortened list
// and the removed record (nil when nothing matched).
func RemoveByID(list []any, id string) ([]any, map[string]any) {
	idx, rec := FindByID(list, id)
	if idx < 0 {
		return list, nil
	}
	next := make([]any, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	return next, rec
}

// StaleMediaURLs lists stored media URLs the patch replaces with a different
// value; those files are scheduled for best-effort deletion.
func StaleMediaURLs(existing, patch map[string]any) []string {
	var stale []string
	for _, field := range media.RecordMediaFields {
		newV, ok := patch[field].(string)
		if !ok {
			continue
		}
		if oldV, ok := existing[field].(string); ok && oldV != "" && oldV != newV {
			stale = append(stale, oldV)
		}
	}
	return stale
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	return body, true
}
