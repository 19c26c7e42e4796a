package web

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
)

const (
	fakeToken    = "fake-access-token"
	fakePassword = "senha-secreta-123"
)

var fakeRoles = []map[string]any{
	{"id": 1, "nome": "líder", "descricao": "Responsável pela célula", "ativo": 1},
	{"id": 5, "nome": "Membro", "descricao": "Membro da célula", "ativo": 1},
}

// fakeAPI is an in-memory stand-in for the cell REST API.
type fakeAPI struct {
	mu         sync.Mutex
	records    map[string]map[int64]map[string]any
	nextID     int64
	calls      map[string]int
	failSave   bool
	failDelete bool
	failList   bool
	hold       chan struct{} // when set, saves wait until it is closed
	arrived    chan struct{} // receives once per held save
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		records: map[string]map[int64]map[string]any{"membros": {}, "relatorios": {}},
		calls:   map[string]int{},
	}
}

func (f *fakeAPI) seed(resource string, rec map[string]any) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec["id"] = f.nextID
	f.records[resource][f.nextID] = rec
	return f.nextID
}

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeAPI) record(resource string, id int64) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[resource][id]
	return rec, ok
}

func (f *fakeAPI) size(resource string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records[resource])
}

func writeFake(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/")
	if rest == "login" && r.Method == http.MethodPost {
		var body struct{ Email, Password string }
		json.NewDecoder(r.Body).Decode(&body)
		if body.Password != fakePassword {
			writeFake(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		writeFake(w, http.StatusOK, map[string]any{"access_token": fakeToken, "token_type": "Bearer"})
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+fakeToken {
		writeFake(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	resource, rawID, _ := strings.Cut(rest, "/")
	f.mu.Lock()
	f.calls[r.Method+" "+resource]++
	f.mu.Unlock()

	if resource == "cargos" {
		writeFake(w, http.StatusOK, map[string]any{"data": fakeRoles})
		return
	}
	if _, ok := f.records[resource]; !ok {
		http.NotFound(w, r)
		return
	}
	var id int64
	if rawID != "" {
		n, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		id = n
	}

	switch {
	case r.Method == http.MethodGet && id == 0:
		f.list(w, resource)
	case r.Method == http.MethodGet:
		rec, ok := f.record(resource, id)
		if !ok {
			writeFake(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeFake(w, http.StatusOK, decorate(resource, rec))
	case r.Method == http.MethodPost, r.Method == http.MethodPut:
		f.save(w, r, resource, id)
	case r.Method == http.MethodDelete:
		f.mu.Lock()
		fail := f.failDelete
		_, ok := f.records[resource][id]
		if !fail && ok {
			delete(f.records[resource], id)
		}
		f.mu.Unlock()
		switch {
		case fail:
			writeFake(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		case !ok:
			writeFake(w, http.StatusNotFound, map[string]string{"error": "not found"})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeAPI) list(w http.ResponseWriter, resource string) {
	f.mu.Lock()
	if f.failList {
		f.mu.Unlock()
		writeFake(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	ids := make([]int64, 0, len(f.records[resource]))
	for id := range f.records[resource] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, decorate(resource, f.records[resource][id]))
	}
	f.mu.Unlock()
	writeFake(w, http.StatusOK, map[string]any{"data": out})
}

func (f *fakeAPI) save(w http.ResponseWriter, r *http.Request, resource string, id int64) {
	f.mu.Lock()
	hold, arrived := f.hold, f.arrived
	f.mu.Unlock()
	if hold != nil {
		arrived <- struct{}{}
		<-hold
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFake(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		writeFake(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	status := http.StatusOK
	if id == 0 {
		f.nextID++
		id = f.nextID
		status = http.StatusCreated
	} else if _, ok := f.records[resource][id]; !ok {
		writeFake(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	body["id"] = id
	f.records[resource][id] = body
	writeFake(w, status, decorate(resource, body))
}

// decorate adds the read-side role list to members.
func decorate(resource string, rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	if resource != "membros" {
		return out
	}
	out["cargos"] = []map[string]any{}
	cargo, _ := strconv.Atoi(displayValue(rec["cargo_id"]))
	for _, r := range fakeRoles {
		if r["id"] == cargo {
			out["cargos"] = []map[string]any{{"id": cargo, "nome": r["nome"]}}
		}
	}
	return out
}
