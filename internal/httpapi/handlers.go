package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/huangsam/workwell/core"
	"github.com/huangsam/workwell/internal/contract"
	"github.com/huangsam/workwell/schema"
)

// maxBodyBytes bounds request bodies; comments are capped well below this.
const maxBodyBytes = 64 << 10

type handler struct {
	svc *core.Service
}

// ratingsRequest is the body of POST /api/score and POST /api/recommendations.
type ratingsRequest struct {
	Stress     int    `json:"stress"`
	Happiness  int    `json:"happiness"`
	Anxiety    int    `json:"anxiety"`
	Motivation int    `json:"motivation"`
	Comment    string `json:"comment"`
}

func (r ratingsRequest) ratings() schema.Ratings {
	return schema.Ratings{Stress: r.Stress, Happiness: r.Happiness, Anxiety: r.Anxiety, Motivation: r.Motivation}
}

// recordRequest is the body of POST /api/records.
type recordRequest struct {
	ratingsRequest
	EmployeeID int64 `json:"employee_id"`
	CompanyID  int64 `json:"company_id"`
	SectorID   int64 `json:"sector_id"`
	Anonymous  bool  `json:"anonymous"`
}

// sectorRequest is the body of POST /api/sectors/{company}.
type sectorRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// sentimentRequest is the body of POST /api/sentiment.
type sentimentRequest struct {
	Text string `json:"text"`
}

// decode reads a JSON body into dst, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// companyID parses the {company} path variable, writing a 400 on failure.
func companyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["company"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "company must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", core.ErrInvalidInput, name)
	}
	return v, nil
}

// health handles GET /api/health
func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listSectors handles GET /api/sectors/{company}
func (h *handler) listSectors(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}
	sectors, err := h.svc.Sectors(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sectors)
}

// addSector handles POST /api/sectors/{company}
func (h *handler) addSector(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}
	var req sectorRequest
	if !decode(w, r, &req) {
		return
	}
	sector, err := h.svc.AddSector(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sector)
}

// submitRecord handles POST /api/records
func (h *handler) submitRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.Submit(r.Context(), schema.SubmitRequest{
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
		SectorID:   req.SectorID,
		Ratings:    req.ratings(),
		Comment:    req.Comment,
		Anonymous:  req.Anonymous,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// score handles POST /api/score
func (h *handler) score(w http.ResponseWriter, r *http.Request) {
	var req ratingsRequest
	if !decode(w, r, &req) {
		return
	}
	a, sentiment, err := h.svc.Assess(r.Context(), req.ratings(), req.Comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		schema.Assessment
		Sentiment *schema.SentimentJudgment `json:"sentiment,omitempty"`
	}{a, sentiment})
}

// sentiment handles POST /api/sentiment
func (h *handler) sentiment(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	j, err := h.svc.Classify(r.Context(), contract.TruncateRunes(req.Text, contract.MaxCommentRunes))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// recommend handles POST /api/recommendations
func (h *handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req ratingsRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.svc.Recommend(r.Context(), req.ratings(), req.Comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// heatmap handles GET /api/heatmap/{company}?days=&metric=&limit=
func (h *handler) heatmap(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}
	days, err := queryInt(r, "days", contract.DefaultDays)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	hm, err := h.svc.Heatmap(r.Context(), id, days, schema.Metric(r.URL.Query().Get("metric")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if limit > 0 {
		hm.Sectors = core.RankSectors(hm.Sectors, hm.Metric, limit)
	}
	writeJSON(w, http.StatusOK, hm)
}

// statistics handles GET /api/statistics/{company}?days=
func (h *handler) statistics(w http.ResponseWriter, r *http.Request) {
	id, ok := companyID(w, r)
	if !ok {
		return
	}
	days, err := queryInt(r, "days", contract.DefaultDays)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	st, err := h.svc.Statistics(r.Context(), id, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
