package router

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeAPI - API данных в памяти с тем же протоколом, что и настоящий.
type fakeAPI struct {
	mu sync.Mutex

	briefs     map[int]map[string]any
	frameworks map[string]map[string]any
	responses  map[int]map[string]any
	eligible   bool
	services   []map[string]any
	nextID     int

	updateError  any
	submitStatus int
	submitError  any

	updates []map[string]any
	submits int
	audits  []map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		briefs:     map[int]map[string]any{testBriefID: liveBrief()},
		frameworks: map[string]map[string]any{testFramework: liveFramework()},
		responses:  map[int]map[string]any{},
		eligible:   true,
		nextID:     9000,
	}
}

func liveBrief() map[string]any {
	return map[string]any{
		"id":                                testBriefID,
		"title":                             "I need a developer",
		"status":                            "live",
		"frameworkSlug":                     testFramework,
		"frameworkName":                     "Digital Outcomes and Specialists 4",
		"frameworkFramework":                "digital-outcomes-and-specialists",
		"lotSlug":                           "digital-specialists",
		"specialistRole":                    "developer",
		"startDate":                         "2017-04-25",
		"budgetRange":                       "£600 to £700",
		"essentialRequirements":             []any{"Essential one", "Essential two"},
		"niceToHaveRequirements":            []any{"Nice one"},
		"evaluationType":                    []any{"Interview"},
		"clarificationQuestionsAreClosed":   false,
		"clarificationQuestionsPublishedBy": "2017-05-01T00:00:00.000000Z",
		"applicationsClosedAt":              "2017-05-08T23:59:59.000000Z",
		"users": []any{
			map[string]any{"id": 1, "emailAddress": "buyer@example.com", "active": true},
			map[string]any{"id": 2, "emailAddress": "former@example.com", "active": false},
		},
	}
}

func liveFramework() map[string]any {
	return map[string]any{
		"slug":      testFramework,
		"name":      "Digital Outcomes and Specialists 4",
		"framework": "digital-outcomes-and-specialists",
		"status":    "live",
	}
}

func (f *fakeAPI) addResponse(id int, status string, data map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	response := map[string]any{
		"id":         id,
		"briefId":    testBriefID,
		"supplierId": testSupplier.SupplierID,
		"status":     status,
		"brief": map[string]any{
			"id":                   testBriefID,
			"title":                "I need a developer",
			"status":               f.briefs[testBriefID]["status"],
			"frameworkSlug":        testFramework,
			"frameworkFramework":   "digital-outcomes-and-specialists",
			"applicationsClosedAt": "2017-05-08T23:59:59.000000Z",
		},
	}
	for key, value := range data {
		response[key] = value
	}
	f.responses[id] = response
}

func (f *fakeAPI) setBrief(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.briefs[testBriefID][key] = value
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func notFound(t *testing.T, w http.ResponseWriter) {
	writeJSON(t, w, http.StatusNotFound, map[string]any{"error": "Not found"})
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	var body map[string]any
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func (f *fakeAPI) routes(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /briefs/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		brief, ok := f.briefs[id]
		if !ok {
			notFound(t, w)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"briefs": brief})
	})

	mux.HandleFunc("GET /briefs/{id}/services", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		services := []any{}
		if f.eligible {
			services = append(services, map[string]any{"id": "1"})
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"services": services})
	})

	mux.HandleFunc("GET /frameworks/{slug}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		framework, ok := f.frameworks[r.PathValue("slug")]
		if !ok {
			notFound(t, w)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"frameworks": framework})
	})

	mux.HandleFunc("GET /suppliers/{id}/frameworks/{slug}", func(w http.ResponseWriter, r *http.Request) {
		supplierID, _ := strconv.Atoi(r.PathValue("id"))
		writeJSON(t, w, http.StatusOK, map[string]any{"frameworkInterest": map[string]any{
			"supplierId":    supplierID,
			"frameworkSlug": r.PathValue("slug"),
			"onFramework":   true,
		}})
	})

	mux.HandleFunc("GET /services", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		services := f.services
		if services == nil {
			services = []map[string]any{}
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"services": services})
	})

	mux.HandleFunc("GET /brief-responses", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		query := r.URL.Query()
		var statuses []string
		if raw := query.Get("status"); raw != "" {
			statuses = strings.Split(raw, ",")
		}
		ids := make([]int, 0, len(f.responses))
		for id := range f.responses {
			ids = append(ids, id)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ids)))

		found := []any{}
		for _, id := range ids {
			response := f.responses[id]
			if brief := query.Get("brief_id"); brief != "" && strconv.Itoa(response["briefId"].(int)) != brief {
				continue
			}
			if supplier := query.Get("supplier_id"); supplier != "" && strconv.Itoa(response["supplierId"].(int)) != supplier {
				continue
			}
			if len(statuses) > 0 && !contains(statuses, response["status"].(string)) {
				continue
			}
			found = append(found, response)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"briefResponses": found})
	})

	mux.HandleFunc("POST /brief-responses", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		f.mu.Lock()
		defer f.mu.Unlock()
		payload, _ := body["briefResponses"].(map[string]any)
		f.nextID++
		response := map[string]any{
			"id":         f.nextID,
			"briefId":    int(payload["briefId"].(float64)),
			"supplierId": int(payload["supplierId"].(float64)),
			"status":     "draft",
		}
		f.responses[f.nextID] = response
		writeJSON(t, w, http.StatusCreated, map[string]any{"briefResponses": response})
	})

	mux.HandleFunc("GET /brief-responses/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		response, ok := f.responses[id]
		if !ok {
			notFound(t, w)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"briefResponses": response})
	})

	mux.HandleFunc("POST /brief-responses/{id}", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.updates = append(f.updates, body)
		if f.updateError != nil {
			writeJSON(t, w, http.StatusBadRequest, map[string]any{"error": f.updateError})
			return
		}
		id, _ := strconv.Atoi(r.PathValue("id"))
		response, ok := f.responses[id]
		if !ok {
			notFound(t, w)
			return
		}
		data, _ := body["briefResponses"].(map[string]any)
		for key, value := range data {
			response[key] = value
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"briefResponses": response})
	})

	mux.HandleFunc("POST /brief-responses/{id}/submit", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.submits++
		if f.submitStatus != 0 {
			writeJSON(t, w, f.submitStatus, map[string]any{"error": f.submitError})
			return
		}
		id, _ := strconv.Atoi(r.PathValue("id"))
		response, ok := f.responses[id]
		if !ok {
			notFound(t, w)
			return
		}
		response["status"] = "submitted"
		writeJSON(t, w, http.StatusOK, map[string]any{"briefResponses": response})
	})

	mux.HandleFunc("POST /audit-events", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		f.mu.Lock()
		defer f.mu.Unlock()
		event, _ := body["auditEvents"].(map[string]any)
		f.audits = append(f.audits, event)
		writeJSON(t, w, http.StatusCreated, map[string]any{"auditEvents": event})
	})

	return mux
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

// fakeNotify - сервис уведомлений, запоминающий отправленные письма.
type fakeNotify struct {
	mu     sync.Mutex
	emails []map[string]any
	fail   bool
}

func (n *fakeNotify) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	n.emails = append(n.emails, body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(`{"id":"740e5834-3a29-46b4-9a6f-16142fde533a"}`))
}

func (n *fakeNotify) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, email := range n.emails {
		out = append(out, email["email_address"].(string))
	}
	return out
}
