package mockstore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// New builds the REST router over db. Collections spring into existence on
// first write, exactly like the hosted mock backend:
//
//	GET    /api/{collection}          list, optional ?field=value filters
//	GET    /api/{collection}/{id}     fetch one
//	POST   /api/{collection}          create, server assigns id
//	PUT    /api/{collection}/{id}     whole-record replace
//	DELETE /api/{collection}/{id}     delete
//
// A filtered list that matches nothing answers 404, which clients are
// expected to treat as an empty result.
func New(db *gorm.DB) *chi.Mux {
	s := &server{db: db}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/{collection}", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.replace)
		r.Delete("/{id}", s.remove)
	})
	return r
}

type server struct {
	db *gorm.DB
}

type document = map[string]any

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var records []Record
	result := s.db.Where(&Record{Collection: collection}).Order("id").Find(&records)
	if result.Error != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filters := r.URL.Query()
	docs := make([]document, 0, len(records))
	for _, rec := range records {
		var doc document
		if err := json.Unmarshal(rec.Doc, &doc); err != nil {
			continue
		}
		if matchesFilters(doc, filters) {
			docs = append(docs, doc)
		}
	}

	if len(filters) > 0 && len(docs) == 0 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// matchesFilters compares each query parameter against the document's
// top-level field of the same name, both rendered as strings.
func matchesFilters(doc document, filters map[string][]string) bool {
	for field, wanted := range filters {
		got, ok := doc[field]
		if !ok {
			return false
		}
		if fmt.Sprintf("%v", got) != wanted[0] {
			return false
		}
	}
	return true
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var doc document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	rec := Record{Collection: collection}
	if result := s.db.Create(&rec); result.Error != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	doc["id"] = strconv.FormatUint(uint64(rec.ID), 10)
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	}

	raw, _ := json.Marshal(doc)
	rec.Doc = raw
	if result := s.db.Save(&rec); result.Error != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *server) find(w http.ResponseWriter, r *http.Request) (*Record, bool) {
	collection := chi.URLParam(r, "collection")
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return nil, false
	}

	var rec Record
	result := s.db.Where(&Record{Collection: collection}).First(&rec, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			http.Error(w, "Not found", http.StatusNotFound)
		} else {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return nil, false
	}
	return &rec, true
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.find(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(rec.Doc)
}

func (s *server) replace(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.find(w, r)
	if !ok {
		return
	}

	var doc document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	// The store owns the id; a replace cannot move a document.
	doc["id"] = strconv.FormatUint(uint64(rec.ID), 10)

	raw, _ := json.Marshal(doc)
	rec.Doc = raw
	if result := s.db.Save(rec); result.Error != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) remove(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.find(w, r)
	if !ok {
		return
	}
	if result := s.db.Delete(rec); result.Error != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(rec.Doc)
}
