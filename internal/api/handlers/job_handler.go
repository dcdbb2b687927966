package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/isdelr/job-portal-be/internal/models"
	"github.com/isdelr/job-portal-be/internal/services"
)

// JobHandler handles HTTP requests for a user's tracked jobs.
type JobHandler struct {
	jobs             services.JobServiceProvider
	ownerScopedReads bool
}

// NewJobHandler creates a new JobHandler. With ownerScopedReads, Get only
// returns jobs owned by the caller and must sit behind auth.Guard.
func NewJobHandler(jobs services.JobServiceProvider, ownerScopedReads bool) *JobHandler {
	return &JobHandler{jobs: jobs, ownerScopedReads: ownerScopedReads}
}

// Create handles the request to create a new job.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload services.JobInput
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), id.UserID, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"newJob":  job,
		"message": "Job created successfully",
	})
}

// Get handles the request to get a single job by its ID.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	var (
		job *models.Job
		err error
	)
	if h.ownerScopedReads {
		id, idErr := currentIdentity(r)
		if idErr != nil {
			writeError(w, r, idErr)
			return
		}
		job, err = h.jobs.GetOwnedJob(r.Context(), jobID, id.UserID)
	} else {
		job, err = h.jobs.GetJob(r.Context(), jobID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobDetails": job})
}

// queryInt parses an integer query parameter. Anything unparsable becomes
// zero, which the store pages coerce to their defaults.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// List handles filtered, paginated listing of the caller's jobs.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	list, err := h.jobs.ListJobs(r.Context(), id.UserID, services.ListQuery{
		Status:   q.Get("status"),
		WorkType: q.Get("work_type"),
		Search:   q.Get("search"),
		PageNo:   queryInt(r, "pageNo"),
		Limit:    queryInt(r, "limit"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	jobs := list.Jobs
	if jobs == nil {
		jobs = []models.Job{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"jobDetails": jobs,
		"totalJobs":  list.Total,
	})
}

// Update handles the request to update a job owned by the caller.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload services.JobUpdateInput
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.jobs.UpdateJob(r.Context(), chi.URLParam(r, "id"), id.UserID, payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"job":     job,
		"message": "Job updated successfully",
	})
}

// Delete handles the request to delete a job owned by the caller.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.jobs.DeleteJob(r.Context(), chi.URLParam(r, "id"), id.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}

// Stats returns the caller's status and monthly job counts.
func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := currentIdentity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.jobs.Stats(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
