package content

import (
	"encoding/json"
	"net/http"
	"time"

	"mixmasters/rdx"
	"mixmasters/structs"
	"mixmasters/utils"

	"github.com/julienschmidt/httprouter"
)

// GetPublicContent serves the full sanitized document without auth. The
// response is CDN-cacheable and additionally cached in Redis for two minutes;
// every content write invalidates the cache key.
func GetPublicContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Cache-Control", "public, s-maxage=120, stale-while-revalidate=600")

	if cached, err := rdx.RdxGet(publicCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	doc, err := Read(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to encode content")
		return
	}
	_ = rdx.RdxSet(publicCacheKey, string(payload), 2*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func GetMainEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doc, err := Read(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=300, stale-while-revalidate=3600")
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"mainEvent": PickMainEvent(doc.Events),
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func GetContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doc, err := Read(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// UpdateContent replaces the whole document with the sanitized payload.
func UpdateContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	doc := Sanitize(payload)
	if err := WriteDoc(r.Context(), doc); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update content")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Content updated",
		"content": doc,
	})
}

func GetResults(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doc, err := Read(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc.Results)
}

// UpdateResults replaces only the results sub-object, via a full-document
// write like every other mutation.
func UpdateResults(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	doc, err := Read(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}

	doc.Results = structs.Results{
		Heading:  str(body["heading"]),
		Subtitle: str(body["subtitle"]),
		Items:    listOr(body["items"]),
	}

	if err := WriteDoc(r.Context(), doc); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update results")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, doc.Results)
}
